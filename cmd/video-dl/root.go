package main

import (
	"context"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/videodl/video-dl/internal/app"
	"github.com/videodl/video-dl/internal/domain"
	"github.com/videodl/video-dl/internal/infrastructure"
	"github.com/videodl/video-dl/pkg/logger"
)

// cliApp holds the global flags and the resources shared by subcommands
type cliApp struct {
	configPath string
	logLevel   string
	logFormat  string
	historyDB  string
	noHistory  bool

	// started is set once flag parsing succeeded and a command began running
	started bool
	logger  *zap.Logger
	history domain.HistoryRepository
}

func newRootCmd(a *cliApp) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   app.AppName,
		Short: "Download videos from YouTube, TikTok and Reddit",
		Long: `video-dl downloads videos and inspects their metadata by driving yt-dlp.

Supported platforms: YouTube, TikTok, Reddit.`,
		SilenceErrors: true,
		SilenceUsage:  true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			a.started = true
			log, err := logger.New(logger.Config{Level: a.logLevel, Format: a.logFormat, OutputPath: "stderr"})
			if err != nil {
				return &domain.InvalidValueError{Key: "--log-level", Value: a.logLevel, Reason: "use debug, info, warn or error"}
			}
			a.logger = log
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "Config file (default "+app.DefaultConfigPath()+")")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "warn", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "console", "Log format: console or json")
	rootCmd.PersistentFlags().StringVar(&a.historyDB, "history-db", "", "History database (default "+app.DefaultHistoryPath()+")")
	rootCmd.PersistentFlags().BoolVar(&a.noHistory, "no-history", false, "Don't record invocations in the history database")

	rootCmd.AddCommand(newDownloadCmd(a))
	rootCmd.AddCommand(newBatchCmd(a))
	rootCmd.AddCommand(newInfoCmd(a))
	rootCmd.AddCommand(newConfigCmd(a))
	rootCmd.AddCommand(newHistoryCmd(a))
	rootCmd.AddCommand(newDepsCmd(a))
	rootCmd.AddCommand(newLogsCmd(a))

	return rootCmd
}

// execute runs the command line and classifies parsing failures as usage errors
func execute(ctx context.Context, args []string) error {
	return executeWith(ctx, args, os.Stdout, os.Stderr)
}

func executeWith(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	a := &cliApp{logger: zap.NewNop()}
	defer a.close()

	rootCmd := newRootCmd(a)
	rootCmd.SetArgs(args)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)

	err := rootCmd.ExecuteContext(ctx)
	if err != nil && !a.started {
		return &domain.UsageError{Err: err}
	}
	return err
}

func (a *cliApp) configStore() *app.ConfigStore {
	return app.NewConfigStore(a.configPath)
}

func (a *cliApp) loadConfig() (*domain.Configuration, error) {
	return a.configStore().Load()
}

// openHistory opens the history database, or returns nil when disabled
func (a *cliApp) openHistory() (domain.HistoryRepository, error) {
	if a.noHistory {
		return nil, nil
	}
	if a.history != nil {
		return a.history, nil
	}
	path := a.historyDB
	if path == "" {
		path = app.DefaultHistoryPath()
	}
	repo, err := infrastructure.NewSQLiteHistoryRepository(path)
	if err != nil {
		return nil, err
	}
	a.history = repo
	return repo, nil
}

// newService wires a download service for cfg. History is best effort here.
func (a *cliApp) newService(cfg *domain.Configuration) *app.DownloadService {
	runner := infrastructure.NewProcessRunner(cfg.ExecutablePath(), logger.NewToolLog(app.DefaultToolLogDir()), a.logger)

	history, err := a.openHistory()
	if err != nil {
		a.logger.Warn("History disabled", zap.Error(err))
		history = nil
	}

	return app.NewDownloadService(cfg, runner, history, infrastructure.NewNotificationService(a.logger), a.logger)
}

func (a *cliApp) close() {
	if a.history != nil {
		a.history.Close()
		a.history = nil
	}
	if a.logger != nil {
		a.logger.Sync()
	}
}
