package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/corviu/corviu-go/internal/api"
)

var (
	changeElement  string
	changeType     string
	changeDesc     string
	changeCost     float64
	changeSchedule float64
	changeTrades   []string
)

var changeCmd = &cobra.Command{
	Use:   "change",
	Short: "Work with individual changes",
}

var changeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record a manual change against the configured project",
	RunE:  runChangeAdd,
}

func init() {
	changeAddCmd.Flags().StringVar(&changeElement, "element", "", "Element name (required)")
	changeAddCmd.Flags().StringVar(&changeType, "type", "architectural", "Change type: structural, mep, architectural")
	changeAddCmd.Flags().StringVar(&changeDesc, "description", "", "Change description")
	changeAddCmd.Flags().Float64Var(&changeCost, "cost", 0, "Cost impact in dollars")
	changeAddCmd.Flags().Float64Var(&changeSchedule, "days", 0, "Schedule impact in days")
	changeAddCmd.Flags().StringSliceVar(&changeTrades, "trades", nil, "Affected trades")
	changeAddCmd.MarkFlagRequired("element")

	changeCmd.AddCommand(changeAddCmd)
}

func runChangeAdd(_ *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Project == "" {
		return fmt.Errorf("no project configured (run `corviu seed --save` or edit %s)", configPathHint())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	r, err := api.New(cfg.Endpoint, cfg.Credential).CreateChange(ctx, cfg.Project, api.ChangeDraft{
		ElementName:    changeElement,
		ChangeType:     changeType,
		Description:    changeDesc,
		CostImpact:     changeCost,
		ScheduleImpact: changeSchedule,
		AffectedTrades: changeTrades,
	})
	if err != nil {
		return err
	}
	fmt.Printf("Change recorded: %s\n", r.ChangeID)
	return nil
}
