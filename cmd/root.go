// cmd/root.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jackchuka/nmclean/internal/config"
	"github.com/jackchuka/nmclean/internal/logger"
)

// ErrPartialFailure marks a removal batch that finished with per-directory errors.
var ErrPartialFailure = errors.New("some directories could not be removed")

var (
	cfgFile  string
	logLevel string
	logFile  string

	cfg       *config.Config
	log       logger.Logger = logger.Discard
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "nmclean",
	Short: "Find and remove node_modules directories",
	Long: `
  ┌┐┌┌┬┐┌─┐┬  ┌─┐┌─┐┌┐┌
  │││││││  │  ├┤ ├─┤│││
  ┘└┘┴ ┴└─┘┴─┘└─┘┴ ┴┘└┘

  Scans a directory tree for node_modules folders, reports their
  size and whether they have been touched in the last month, and
  removes the ones you pick. Run without a subcommand to choose
  interactively.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		mode, err := cfg.Mode()
		if err != nil {
			return err
		}
		opts, err := removalOptions(cmd, mode)
		if err != nil {
			return err
		}
		return runRemoval(cmd.Context(), cmd.OutOrStdout(), opts)
	},
}

// Execute runs the CLI and exits with 0 on success, 2 when a removal batch
// had failures and 1 for any other error.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		log.Errorf("%v", err)
	}
	if logCloser != nil {
		logCloser.Close()
	}
	os.Exit(exitCode(err))
}

func exitCode(err error) int {
	switch {
	case err == nil:
		return 0
	case errors.Is(err, ErrPartialFailure):
		return 2
	default:
		return 1
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $XDG_CONFIG_HOME/nmclean/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "debug, info, warn or error (overrides config file)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write logs to this file (overrides config file)")
	addSearchFlags(rootCmd)
}

func initConfig() {
	if cfgFile == "" {
		cfgFile = config.DefaultConfigPath()
	}

	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		os.Exit(1)
	}

	// Flags override the config file
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if logFile != "" {
		cfg.LogFile = config.ExpandHome(logFile)
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config %s: %v\n", cfgFile, err)
		os.Exit(1)
	}

	if err := setupLogger(os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "Error opening log file: %v\n", err)
		os.Exit(1)
	}
}

// setupLogger builds the console logger and, when configured, tees it into
// a rotating log file.
func setupLogger(w io.Writer) error {
	console := logger.NewConsole(w, logger.ParseLevel(cfg.LogLevel))
	if cfg.LogFile != "" {
		sink, err := logger.NewFileSink(cfg.LogFile)
		if err != nil {
			return err
		}
		console.Tee(sink)
		logCloser = sink
	}
	log = console
	return nil
}
