package cmd

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/corviu/corviu-go/internal/api"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Probe service health and show client configuration",
	RunE:  runStatus,
}

func runStatus(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("corviu status")
	fmt.Printf("Endpoint:  %s\n", cfg.Endpoint)
	projectMark := "✗ (none)"
	if cfg.Project != "" {
		projectMark = cfg.Project
	}
	fmt.Printf("Project:   %s\n", projectMark)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	h, err := api.New(cfg.Endpoint, cfg.Credential).HealthCheck(ctx)
	if err != nil {
		fmt.Printf("Service:   ✗ unreachable (%v)\n", err)
		return nil
	}

	mark := "✗"
	if h.Operational() {
		mark = "✓"
	}
	fmt.Printf("Service:   %s %s %s (%s)\n", mark, h.Service, h.Version, h.Status)

	if len(h.Checks) > 0 {
		fmt.Println("Checks:")
		names := make([]string, 0, len(h.Checks))
		for n := range h.Checks {
			names = append(names, n)
		}
		sort.Strings(names)
		for _, n := range names {
			fmt.Printf("  %-12s %s\n", n, h.Checks[n])
		}
	}
	return nil
}
