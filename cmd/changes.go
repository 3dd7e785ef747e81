package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/corviu/corviu-go/internal/api"
	"github.com/corviu/corviu-go/internal/view"
)

var changesCmd = &cobra.Command{
	Use:   "changes",
	Short: "Show the change digest for the configured project",
	RunE:  runChanges,
}

func runChanges(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Project == "" {
		return fmt.Errorf("no project configured (run `corviu seed --save` or edit %s)", configPathHint())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	s, err := api.New(cfg.Endpoint, cfg.Credential).FetchChangeSummary(ctx, cfg.Project)
	if err != nil {
		return err
	}
	view.NewTextView("changes", view.KindChanges, os.Stdout).ShowChanges(s)
	return nil
}
