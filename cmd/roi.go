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

var roiCmd = &cobra.Command{
	Use:   "roi",
	Short: "Show ROI metrics for the configured project",
	RunE:  runROI,
}

func runROI(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Project == "" {
		return fmt.Errorf("no project configured (run `corviu seed --save` or edit %s)", configPathHint())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	m, err := api.New(cfg.Endpoint, cfg.Credential).FetchROIMetrics(ctx, cfg.Project)
	if err != nil {
		return err
	}
	view.NewTextView("roi", view.KindROI, os.Stdout).ShowROI(m)
	return nil
}
