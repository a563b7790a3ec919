package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check the classification service",
	Args:  cobra.NoArgs,
	RunE:  runHealth,
}

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show document collection statistics",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	rootCmd.AddCommand(healthCmd)
	rootCmd.AddCommand(statsCmd)
}

func runHealth(cmd *cobra.Command, _ []string) error {
	if healthService == nil {
		return errors.New("health service not configured")
	}

	health, err := healthService.Check(cmd.Context())
	if err != nil {
		return fmt.Errorf("service unreachable: %w", err)
	}

	name := health.Service
	if name == "" {
		name = "service"
	}
	cmd.Printf("%s: %s\n", name, health.Status)
	if !health.Healthy() {
		return fmt.Errorf("service reported status %q", health.Status)
	}
	return nil
}

func runStats(cmd *cobra.Command, _ []string) error {
	if healthService == nil {
		return errors.New("health service not configured")
	}

	stats, err := healthService.Stats(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	cmd.Printf("Collection: %s\n", stats.Collection)
	cmd.Printf("Documents:  %d\n", stats.Count)
	return nil
}
