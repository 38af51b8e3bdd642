package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/fleetsight/fleetsight-api/internal/config"
	"github.com/fleetsight/fleetsight-api/internal/graph"
)

var initSchemaCmd = &cobra.Command{
	Use:   "init-schema",
	Short: "Apply graph constraints and indexes",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		runner, err := graph.NewNeo4jRunner(ctx, cfg.Neo4jURI, cfg.Neo4jUser, cfg.Neo4jPassword, cfg.Neo4jDatabase)
		if err != nil {
			return err
		}
		defer func() { _ = runner.Close(ctx) }()

		if err := runner.ApplySchema(ctx); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Schema applied.")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initSchemaCmd)
}
