// Package cli provides the cobra command tree for the intake client.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/docintake/internal/core/domain"
	"github.com/custodia-labs/docintake/internal/core/ports/driving"
	"github.com/custodia-labs/docintake/internal/logger"
)

// version is set at build time via SetVersion.
var version = "dev"

// Options are resolved from persistent flags before services are built.
type Options struct {
	// ConfigDir overrides the configuration directory.
	ConfigDir string

	// ServerURL overrides server.url for this invocation only.
	ServerURL string

	// Interactive is set for the TUI, whose notifications are queued
	// instead of printed.
	Interactive bool
}

// Services is everything the commands drive.
type Services struct {
	Upload     driving.UploadService
	Recent     driving.RecentService
	Categories driving.CategoryService
	Search     driving.SearchService
	Document   driving.DocumentService
	Health     driving.HealthService
	Settings   driving.SettingsService

	// NewChat creates an independent conversation for scope.
	NewChat func(scope domain.ChatScope) driving.ChatService

	// Notifications carries queued notifications in interactive mode.
	Notifications <-chan domain.Notification

	// Close releases storage and other resources. May be nil.
	Close func() error
}

// Bootstrap builds services for one invocation.
type Bootstrap func(ctx context.Context, opts Options) (*Services, error)

var (
	bootstrap Bootstrap
	services  *Services

	uploadService   driving.UploadService
	recentService   driving.RecentService
	categoryService driving.CategoryService
	searchService   driving.SearchService
	documentService driving.DocumentService
	healthService   driving.HealthService
	settingsService driving.SettingsService
	newChat         func(scope domain.ChatScope) driving.ChatService
	notifications   <-chan domain.Notification
)

var (
	flagVerbose   bool
	flagConfigDir string
	flagServerURL string
)

// skipBootstrap marks commands that run without services.
const skipBootstrap = "skip-bootstrap"

var rootCmd = &cobra.Command{
	Use:   "intake",
	Short: "Document intake client for the classification service",
	Long: `intake submits documents to a classification service and browses the results.

Upload a PDF, image or text file to have it classified, routed and indexed,
then search the collection semantically, browse documents by category, or
chat with an assistant about everything processed or a single document.`,
	SilenceUsage:      true,
	PersistentPreRunE: initServices,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "print request and pipeline details to stderr")
	rootCmd.PersistentFlags().StringVar(&flagConfigDir, "config-dir", "", "configuration directory (default ~/.docintake)")
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "classification service URL for this invocation")
}

// SetVersion sets the version reported by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetBootstrap registers the function that builds services.
func SetBootstrap(b Bootstrap) {
	bootstrap = b
}

// SetServices installs services directly, bypassing bootstrap.
func SetServices(s *Services) {
	services = s
	if s == nil {
		s = &Services{}
	}
	uploadService = s.Upload
	recentService = s.Recent
	categoryService = s.Categories
	searchService = s.Search
	documentService = s.Document
	healthService = s.Health
	settingsService = s.Settings
	newChat = s.NewChat
	notifications = s.Notifications
}

// Execute runs the root command, then releases services whether or not
// the command failed.
func Execute() error {
	return ExecuteContext(context.Background())
}

// ExecuteContext runs the root command with ctx, which commands use for
// every request to the service. Services are released afterwards.
func ExecuteContext(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	return errors.Join(err, closeServices())
}

func initServices(cmd *cobra.Command, _ []string) error {
	logger.SetVerbose(flagVerbose)

	if cmd.Annotations[skipBootstrap] != "" || bootstrap == nil {
		return nil
	}

	opts := Options{
		ConfigDir:   flagConfigDir,
		ServerURL:   flagServerURL,
		Interactive: cmd == tuiCmd,
	}
	s, err := bootstrap(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("initialising: %w", err)
	}
	SetServices(s)
	return nil
}

func closeServices() error {
	if services == nil || services.Close == nil {
		return nil
	}
	err := services.Close()
	services.Close = nil
	return err
}
