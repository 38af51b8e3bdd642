package main

import (
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:   "profile [warehouse_id]",
	Short: "Print the full risk profile of one warehouse",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		profile, err := a.pipeline.WarehouseProfile(ctx, args[0])
		if err != nil {
			return err
		}
		return printJSON(cmd, profile)
	},
}
