package cli

import (
	"bufio"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docintake/internal/core/domain"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage client configuration",
	Long: `View and change the client configuration stored in config.toml.

Keys:
  server.url                  classification service base URL
  server.timeout_seconds      per-request timeout
  server.requests_per_second  outgoing request rate (0 disables throttling)
  server.breaker_failures     consecutive failures before pausing requests (0 disables)
  search.n_results            number of search results requested
  upload.reset_delay_ms       how long a processed result stays before reset
  storage.dir                 directory of the local database`,
	RunE: runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Args:  cobra.NoArgs,
	RunE:  runConfigShow,
}

var configSetCmd = &cobra.Command{
	Use:   "set [key] [value]",
	Short: "Set a configuration value",
	Args:  cobra.ExactArgs(2),
	RunE:  runConfigSet,
}

var configWizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Interactive setup wizard",
	Long:  `Prompts for every configuration key. Press enter to keep the current value.`,
	Args:  cobra.NoArgs,
	RunE:  runConfigWizard,
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configWizardCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  URL: %s\n", settings.ServerURL)
	cmd.Printf("  Timeout: %s\n", settings.Timeout)
	cmd.Printf("  Requests/second: %s\n", formatRate(settings.RequestsPerSecond))
	cmd.Printf("  Breaker failures: %s\n", formatBreaker(settings.BreakerFailures))
	cmd.Println()

	cmd.Println("[Search]")
	cmd.Printf("  Results: %d\n", settings.SearchResults)
	cmd.Println()

	cmd.Println("[Upload]")
	cmd.Printf("  Reset delay: %s\n", settings.ResetDelay)
	cmd.Println()

	cmd.Println("[Storage]")
	dir := settings.StorageDir
	if dir == "" {
		dir = "(default)"
	}
	cmd.Printf("  Directory: %s\n", dir)

	return nil
}

func runConfigSet(cmd *cobra.Command, args []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	if err := settingsService.Set(args[0], args[1]); err != nil {
		return fmt.Errorf("failed to set %s: %w", args[0], err)
	}
	cmd.Printf("Set %s\n", args[0])
	return nil
}

func runConfigWizard(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Intake Settings Wizard")
	cmd.Println("======================")
	cmd.Println()

	reader := bufio.NewReader(cmd.InOrStdin())
	changed := 0
	for _, key := range domain.SettingKeys() {
		current := settings.Value(key)
		cmd.Printf("%s [%s]: ", key, current)
		input := readLine(reader)
		if input == "" || input == current {
			continue
		}
		if err := settingsService.Set(key, input); err != nil {
			cmd.Printf("  Skipped: %v\n", err)
			continue
		}
		changed++
	}

	cmd.Println()
	cmd.Printf("Configuration complete, %d value(s) changed.\n", changed)
	return nil
}

func formatRate(rps float64) string {
	if rps <= 0 {
		return "unlimited"
	}
	return strconv.FormatFloat(rps, 'f', -1, 64)
}

func formatBreaker(n int) string {
	if n <= 0 {
		return "disabled"
	}
	return strconv.Itoa(n)
}

//nolint:errcheck // CLI helper, error ignored for UX
func readLine(reader *bufio.Reader) string {
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}
