package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"ActionCountdown/internal/app"
	"ActionCountdown/internal/config"
	"ActionCountdown/internal/infrastructure/browser"
	"ActionCountdown/internal/logging"
)

var errNotTerminal = errors.New("tui needs an interactive terminal")

type rootOptions struct {
	configPath string
	envFile    string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "actioncountdown",
		Short:         "Countdown calendar of daily actions from a published sheet",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", os.Getenv("COUNTDOWN_CONFIG"), "YAML config file")
	root.PersistentFlags().StringVarP(&opts.envFile, "env-file", "e", os.Getenv("COUNTDOWN_ENV_FILE"), "environment file")

	root.AddCommand(
		newServeCmd(opts),
		newExportCmd(opts),
		newTUICmd(opts),
	)
	return root
}

// bootstrap loads config and builds the application. The returned closer
// flushes the log file, if any. Interactive commands own the terminal, so
// console logging is dropped unless a log file is configured.
func bootstrap(opts *rootOptions, interactive bool) (*app.Application, *slog.Logger, io.Closer, error) {
	cfg := config.LoadFrom(opts.configPath, opts.envFile)
	logger, closer := logging.FromConfig(cfg.Logging)
	if interactive && cfg.Logging.File == "" {
		logger = logging.NewWithWriter(io.Discard, cfg.Logging.Level)
	}

	application, err := app.New(cfg, logger)
	if err != nil {
		closer.Close()
		return nil, nil, nil, err
	}
	return application, logger, closer, nil
}

func newServeCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the countdown pages over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, logger, closer, err := bootstrap(opts, false)
			if err != nil {
				return fail(err)
			}
			defer closer.Close()

			if err := application.Serve(cmd.Context()); err != nil {
				logger.Error("server stopped", "error", err)
				return fail(err)
			}
			logger.Info("server stopped")
			return nil
		},
	}
}

func newExportCmd(opts *rootOptions) *cobra.Command {
	var (
		dir   string
		watch bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the countdown pages as a static site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			application, logger, closer, err := bootstrap(opts, false)
			if err != nil {
				return fail(err)
			}
			defer closer.Close()

			if watch {
				if err := application.Watch(cmd.Context(), dir); err != nil {
					logger.Error("watch stopped", "error", err)
					return fail(err)
				}
				return nil
			}

			if err := application.Export(cmd.Context(), dir); err != nil {
				logger.Error("export failed", "error", err)
				return fail(err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), color.GreenString("✔ exported"))
			return nil
		},
	}
	cmd.Flags().StringVarP(&dir, "out", "o", "", "output directory (default from config)")
	cmd.Flags().BoolVarP(&watch, "watch", "w", false, "re-export on every revalidation interval")
	return cmd
}

func newTUICmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Browse the countdown in the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !isTerminal(os.Stdout.Fd()) {
				return fail(errNotTerminal)
			}

			application, logger, closer, err := bootstrap(opts, true)
			if err != nil {
				return fail(err)
			}
			defer closer.Close()

			if err := application.TUI(cmd.Context(), browser.NewOpener()); err != nil {
				logger.Error("tui stopped", "error", err)
				return fail(err)
			}
			return nil
		},
	}
}

func isTerminal(fd uintptr) bool {
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// reportedError marks errors already printed by a command.
type reportedError struct{ error }

func (e reportedError) Unwrap() error { return e.error }

func fail(err error) error {
	fmt.Fprintln(os.Stderr, color.RedString("✖ %s", err))
	return reportedError{err}
}

// execute runs cmd and prints errors cobra raised before any RunE could
// report them, such as unknown commands or flags.
func execute(ctx context.Context, cmd *cobra.Command, stderr io.Writer) error {
	err := cmd.ExecuteContext(ctx)
	var reported reportedError
	if err != nil && !errors.As(err, &reported) {
		fmt.Fprintln(stderr, color.RedString("✖ %s", err))
	}
	return err
}
