package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/fleetsight/fleetsight-api/internal/pipeline"
)

var (
	askRecommend   bool
	askNoTemplates bool
	askJSON        bool
)

var askCmd = &cobra.Command{
	Use:   "ask [question]",
	Short: "Answer one question about the fleet",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer a.close(ctx)

		opts := pipeline.Options{
			UseTemplates:            !askNoTemplates,
			GenerateRecommendations: askRecommend,
		}
		resp := a.pipeline.Process(ctx, strings.Join(args, " "), opts)

		if askJSON {
			return printJSON(cmd, resp)
		}

		fmt.Fprintln(cmd.OutOrStdout(), resp.Answer)
		if len(resp.Recommendations) > 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "\nRecommendations:")
			for _, rec := range resp.Recommendations {
				fmt.Fprintf(cmd.OutOrStdout(), "  [%s] %s: %s\n",
					rec.Priority, rec.WarehouseID, strings.Join(rec.Actions, "; "))
			}
		}
		return nil
	},
}

func init() {
	askCmd.Flags().BoolVar(&askRecommend, "recommend", false, "include prioritized recommendations for risk queries")
	askCmd.Flags().BoolVar(&askNoTemplates, "no-templates", false, "always generate a fresh graph query")
	askCmd.Flags().BoolVar(&askJSON, "json", false, "print the full response as JSON")
}

func printJSON(cmd *cobra.Command, v any) error {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
	return nil
}
