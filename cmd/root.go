// Package cmd holds the logictree command line.
package cmd

import (
	"context"
	"fmt"
	"logictree/config"
	"logictree/editor"
	"logictree/logging"
	"logictree/sample"
	"logictree/terminal"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	envFile      string
	logFile      string
	historyLimit int
)

// requestTimeout bounds one sample request.
const requestTimeout = 60 * time.Second

var rootCmd = &cobra.Command{
	Use:   "logictree",
	Short: "Edit a logic tree in the terminal",
	Long: `logictree is a terminal mind-map editor for logic trees.

  Tab      add a child to the selected node
  Delete   delete the selected node
  Enter    edit the selected label (Alt+Enter or Ctrl+J for a new line)
  Ctrl+Z   undo
  Ctrl+Y   redo
  Ctrl+G   replace the tree with a generated sample problem
  Ctrl+Q   quit`,
	SilenceUsage: true,
	RunE:         runEditor,
}

// Execute runs the root command. It is called by main.main().
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Path to a .env file with API settings")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file (default: LOGICTREE_LOG_FILE or a temp file)")
	rootCmd.Flags().IntVar(&historyLimit, "history-limit", 0, "Maximum undo steps, 0 for unlimited (default: LOGICTREE_HISTORY_LIMIT)")
}

// setup loads configuration and builds the logger. Flags override the
// environment.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	if err := config.LoadEnvFile(envFile); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if cmd.Flags().Changed("log-file") {
		cfg.LogFile = logFile
	}
	if cmd.Flags().Changed("history-limit") {
		cfg.HistoryLimit = historyLimit
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile, cfg.IsDevelopment())
	if err != nil {
		return nil, nil, err
	}
	return cfg, logger, nil
}

// newSampleClient reads the API settings from the environment on every
// request, so edits to the environment apply without a restart.
func newSampleClient(logger *zap.Logger) *sample.Client {
	settings := func() sample.Settings {
		api := config.LoadAPI()
		return sample.Settings{
			URL:       api.URL,
			APIKey:    api.Key,
			Model:     api.Model,
			MaxTokens: api.MaxTokens,
		}
	}
	httpClient := &http.Client{Timeout: requestTimeout}
	return sample.NewClient(settings, httpClient, logger.Named("sample"))
}

func runEditor(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync()

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize screen: %w", err)
	}
	defer screen.Fini()

	w, h := screen.Size()
	ctrl := editor.NewController(
		editor.WithLogger(logger.Named("editor")),
		editor.WithHistoryLimit(cfg.HistoryLimit),
		editor.WithViewport(terminal.CanvasSize(w, h)),
	)

	logger.Info("editor started",
		zap.Int("history_limit", cfg.HistoryLimit),
		zap.String("log_file", cfg.LogFile))

	app := terminal.New(screen, ctrl, newSampleClient(logger), logger.Named("terminal"))
	if err := app.Run(cmd.Context()); err != nil {
		logger.Error("editor stopped", zap.Error(err))
		return err
	}
	logger.Info("editor stopped")
	return nil
}
