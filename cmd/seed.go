package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/corviu/corviu-go/internal/api"
	"github.com/corviu/corviu-go/internal/config"
)

var seedSave bool

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Create a demo project with sample changes",
	RunE:  runSeed,
}

func init() {
	seedCmd.Flags().BoolVar(&seedSave, "save", false, "Store the demo project id in the config")
}

func runSeed(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	r, err := api.New(cfg.Endpoint, cfg.Credential).SeedDemoProject(ctx)
	if err != nil {
		return err
	}
	if !r.Success {
		return fmt.Errorf("seed failed: %s", r.Message)
	}

	fmt.Printf("Demo project created: %s\n", r.ProjectID)
	if r.Message != "" {
		fmt.Println(r.Message)
	}

	if seedSave {
		cfg.Project = r.ProjectID
		if err := config.Save(cfg, config.ConfigPath()); err != nil {
			return err
		}
		fmt.Println("Project saved to config. Run `corviu watch` to start the live digest.")
	}
	return nil
}
