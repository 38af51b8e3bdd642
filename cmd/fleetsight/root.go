package main

import (
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "fleetsight",
	Short: "Graph-backed risk analysis for warehouse fleets",
	Long: `FleetSight answers natural-language questions about a warehouse fleet
by translating them into graph queries, executing them against Neo4j,
and synthesizing the results into written analysis.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(batchCmd)
	rootCmd.AddCommand(profileCmd)
	rootCmd.AddCommand(compareCmd)
}
