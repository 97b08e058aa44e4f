// cmd/list.go
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/x/term"
	"github.com/spf13/cobra"

	"github.com/jackchuka/nmclean/internal/scanner"
	"github.com/jackchuka/nmclean/tui"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List node_modules directories grouped by size",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		sc, err := searchConfig(cmd)
		if err != nil {
			return err
		}

		log.Infof("scanning %s for %s directories", sc.StartPath, sc.Name())
		s := scanner.New(log, scanner.WithProgress(func(done, total int) {
			log.Debugf("inspected %d/%d", done, total)
		}))
		targets, err := s.Scan(cmd.Context(), sc)
		if err != nil {
			return err
		}
		if len(targets) == 0 {
			log.Warnf("no %s directories found", sc.Name())
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, scanner.Summarize(targets))
		fmt.Fprintln(out)
		tui.RenderTargets(out, targets, terminalWidth(out))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	addSearchFlags(listCmd)
}

// terminalWidth returns the column count of w, or 0 when w is not a terminal.
func terminalWidth(w io.Writer) int {
	f, ok := w.(*os.File)
	if !ok {
		return 0
	}
	width, _, err := term.GetSize(f.Fd())
	if err != nil {
		return 0
	}
	return width
}
