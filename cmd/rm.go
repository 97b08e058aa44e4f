// cmd/rm.go
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/jackchuka/nmclean/internal/backup"
	"github.com/jackchuka/nmclean/internal/cleaner"
	"github.com/jackchuka/nmclean/internal/config"
	"github.com/jackchuka/nmclean/internal/filelock"
	"github.com/jackchuka/nmclean/internal/model"
	"github.com/jackchuka/nmclean/internal/scanner"
	"github.com/jackchuka/nmclean/tui"
)

var errNoTTY = errors.New("interactive mode needs a terminal, use --mode all or --mode unused")

// Swapped in tests.
var (
	stdin         io.Reader = os.Stdin
	isInteractive           = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	removeDir cleaner.RemoveFunc = os.RemoveAll
)

var rmCmd = &cobra.Command{
	Use:   "rm",
	Short: "Remove node_modules directories",
	Example: `  nmclean rm -m unused --backup
  nmclean rm -p ~/code -d 2 -m all --dry-run`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		modeName := cfg.DefaultMode
		if cmd.Flags().Changed("mode") {
			modeName, _ = cmd.Flags().GetString("mode")
		}
		mode, err := model.ParseRemovalMode(modeName)
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

func init() {
	rootCmd.AddCommand(rmCmd)

	addSearchFlags(rmCmd)
	rmCmd.Flags().StringP("mode", "m", "interactive", "all, unused or interactive (overrides default_mode)")
	rmCmd.Flags().Bool("dry-run", false, "show what would be removed without touching anything")
	rmCmd.Flags().Bool("backup", false, "zip the selected directories before removing them")
}

func addSearchFlags(c *cobra.Command) {
	c.Flags().StringP("path", "p", "", "directory to scan (overrides scan_root)")
	c.Flags().IntP("depth", "d", -1, "maximum nesting depth, -1 for unlimited (overrides max_depth)")
}

// searchConfig starts from the config file and applies -p and -d when given.
func searchConfig(c *cobra.Command) (model.SearchConfig, error) {
	sc := cfg.SearchConfig()
	if c.Flags().Changed("path") {
		p, _ := c.Flags().GetString("path")
		sc.StartPath = config.ExpandHome(p)
	}
	if c.Flags().Changed("depth") {
		sc.MaxDepth, _ = c.Flags().GetInt("depth")
	}
	if err := sc.Validate(); err != nil {
		return sc, fmt.Errorf("%w: %v", scanner.ErrScanRoot, err)
	}
	return sc, nil
}

func removalOptions(c *cobra.Command, mode model.RemovalMode) (model.RemovalOptions, error) {
	sc, err := searchConfig(c)
	if err != nil {
		return model.RemovalOptions{}, err
	}
	// absent on the root command, where both stay false
	dryRun, _ := c.Flags().GetBool("dry-run")
	withBackup, _ := c.Flags().GetBool("backup")

	return model.RemovalOptions{
		Search: sc,
		Mode:   mode,
		DryRun: dryRun,
		Backup: withBackup,
	}, nil
}

// lockRoot resolves the start path to the absolute, symlink-free form the
// run lock is keyed on, so every spelling of one directory shares a lock.
// Overlapping roots (a parent and one of its children) still get distinct locks.
func lockRoot(start string) (string, error) {
	root, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("%w: %v", scanner.ErrScanRoot, err)
	}
	root, err = filepath.EvalSymlinks(root)
	if err != nil {
		return "", fmt.Errorf("%w: %v", scanner.ErrScanRoot, err)
	}
	return root, nil
}

// runRemoval wires the terminal collaborators into a Cleaner, runs one batch
// and prints its report.
func runRemoval(ctx context.Context, out io.Writer, opts model.RemovalOptions) error {
	if opts.Mode == model.ModeInteractive && !isInteractive() {
		return errNoTTY
	}

	if !opts.DryRun {
		root, err := lockRoot(opts.Search.StartPath)
		if err != nil {
			return err
		}
		lock, err := filelock.RunLock(root)
		if err != nil {
			return err
		}
		defer lock.Unlock()
	}

	log.Infof("scanning %s for %s directories", opts.Search.StartPath, opts.Search.Name())
	c := cleaner.New(removalDeps(out, opts))
	result, err := c.Run(ctx, opts)
	if err != nil {
		return err
	}

	switch result.Outcome {
	case model.OutcomeDryRun:
		fmt.Fprintf(out, "Dry run: %d directories (%s) would be removed\n",
			len(result.Selected), model.FormatSize(model.TotalSize(result.Selected)))
		fmt.Fprint(out, tui.PathList(result.Selected, terminalWidth(out)))
	case model.OutcomeCompleted:
		if result.HasErrors() {
			return fmt.Errorf("%w: %d of %d failed", ErrPartialFailure, len(result.Errors), len(result.Selected))
		}
		log.Successf("freed %s", model.FormatSize(result.BytesFreed))
	}
	return nil
}

func removalDeps(out io.Writer, opts model.RemovalOptions) cleaner.Deps {
	deps := cleaner.Deps{
		Scanner:  scanner.New(log),
		Progress: tui.NewProgressPrinter(out),
		Remove:   removeDir,
		Log:      log,
	}
	if opts.Mode == model.ModeInteractive {
		deps.Selector = tui.NewPicker(stdin, out)
		deps.Confirmer = tui.NewPrompt(stdin, out)
	}
	if opts.Backup {
		deps.Archiver = backup.NewArchiver(config.ExpandHome(cfg.BackupDir), log)
	}
	return deps
}
