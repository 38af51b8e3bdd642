package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var compareMetrics []string

var compareCmd = &cobra.Command{
	Use:   "compare [warehouse_id]...",
	Short: "Compare warehouses across metrics",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		comparison, err := a.pipeline.CompareWarehouses(ctx, args, compareMetrics)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), comparison.Comparison)
		return nil
	},
}

func init() {
	compareCmd.Flags().StringSliceVar(&compareMetrics, "metrics", nil,
		"metrics to compare (defaults to risk_score, incidents, infrastructure, performance)")
}
