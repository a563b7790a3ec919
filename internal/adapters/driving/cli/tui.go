package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docintake/internal/adapters/driving/tui"
	"github.com/custodia-labs/docintake/internal/logger"
)

// tuiCmd represents the tui command.
var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive terminal UI",
	Long: `Launch the interactive terminal user interface.

The TUI lets you stage and submit documents, browse recent documents and
categories, search the collection, read stored documents, and chat with
the assistant globally or about a single document.

Controls:
  ↑/k, ↓/j - Navigate
  Enter    - Select / Submit
  Esc      - Back / Cancel
  ?        - Toggle help
  q        - Quit`,
	RunE: runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

// tuiPorts builds the TUI ports from the configured services.
func tuiPorts() *tui.Ports {
	ports := &tui.Ports{
		Upload:        uploadService,
		Recent:        recentService,
		Categories:    categoryService,
		Search:        searchService,
		Document:      documentService,
		Health:        healthService,
		Settings:      settingsService,
		Notifications: notifications,
	}
	if newChat != nil {
		ports.NewChat = tui.ChatFactory(newChat)
	}
	if settingsService != nil {
		if settings, err := settingsService.Get(); err == nil {
			ports.ResetDelay = settings.ResetDelay
			ports.ServerURL = settings.ServerURL
		}
	}
	return ports
}

// tuiLogPath is where verbose output goes while the terminal is taken over.
func tuiLogPath() string {
	dir := flagConfigDir
	if dir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return filepath.Join(os.TempDir(), "intake-tui.log")
		}
		dir = filepath.Join(home, ".docintake")
	}
	return filepath.Join(dir, "tui.log")
}

func runTUI(cmd *cobra.Command, _ []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in TUI: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
			err = errors.New("TUI panicked")
		}
	}()

	if logger.IsVerbose() {
		restore, logErr := logger.ToFile(tuiLogPath())
		if logErr != nil {
			return logErr
		}
		defer func() { _ = restore() }()
	}

	app, err := tui.NewApp(tuiPorts())
	if err != nil {
		return fmt.Errorf("failed to create TUI: %w", err)
	}

	if err := app.WithContext(cmd.Context()).Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	return nil
}
