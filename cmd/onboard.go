package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/corviu/corviu-go/internal/config"
)

var (
	onboardEndpoint string
	onboardProject  string
	onboardToken    string
	onboardForce    bool
)

var onboardCmd = &cobra.Command{
	Use:   "onboard",
	Short: "Create the corviu config file",
	RunE:  runOnboard,
}

func init() {
	onboardCmd.Flags().StringVar(&onboardEndpoint, "endpoint", config.DefaultEndpoint, "Service base URL")
	onboardCmd.Flags().StringVar(&onboardProject, "project", "", "Project id to watch")
	onboardCmd.Flags().StringVar(&onboardToken, "token", "", "Credential token")
	onboardCmd.Flags().BoolVar(&onboardForce, "force", false, "Overwrite an existing config")
}

func runOnboard(_ *cobra.Command, _ []string) error {
	path := config.ConfigPath()
	if _, err := os.Stat(path); err == nil && !onboardForce {
		fmt.Printf("Config already exists: %s (use --force to overwrite)\n", path)
		return nil
	}

	cfg := config.DefaultConfig()
	cfg.Endpoint = onboardEndpoint
	cfg.Project = onboardProject
	cfg.Credential = onboardToken
	if err := config.Save(&cfg, path); err != nil {
		return err
	}

	fmt.Printf("Wrote %s\n", path)
	if cfg.Project == "" {
		fmt.Println("No project configured yet — run `corviu seed --save` for a demo project,")
		fmt.Println("or set \"project\" in the config.")
	}
	fmt.Println("Then run `corviu watch` to start the live digest.")
	return nil
}
