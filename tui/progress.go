package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/mattn/go-isatty"

	"github.com/jackchuka/nmclean/internal/model"
)

// ProgressPrinter reports removal progress as a bar line and prints the
// batch summary once removal ends. On a terminal the bar redraws in place.
type ProgressPrinter struct {
	out    io.Writer
	bar    progress.Model
	inline bool
}

func NewProgressPrinter(out io.Writer) *ProgressPrinter {
	inline := false
	if f, ok := out.(*os.File); ok {
		inline = isatty.IsTerminal(f.Fd())
	}
	return &ProgressPrinter{
		out:    out,
		bar:    progress.New(progress.WithDefaultGradient(), progress.WithWidth(30)),
		inline: inline,
	}
}

func (p *ProgressPrinter) Start(total int) {
	fmt.Fprintf(p.out, "%s\n", styleTitle.Render(fmt.Sprintf("Removing %d directories", total)))
}

func (p *ProgressPrinter) Update(current, total int, bytesFreed int64) {
	pct := 1.0
	if total > 0 {
		pct = float64(current) / float64(total)
	}
	line := fmt.Sprintf("%s %d/%d  %s freed", p.bar.ViewAs(pct), current, total, model.FormatSize(bytesFreed))

	if !p.inline {
		fmt.Fprintln(p.out, line)
		return
	}
	fmt.Fprintf(p.out, "\r%s", line)
	if current >= total {
		fmt.Fprintln(p.out)
	}
}

func (p *ProgressPrinter) Done(result *model.RemovalResult) {
	if p.inline && result.Outcome == model.OutcomeCancelled {
		fmt.Fprintln(p.out)
	}
	fmt.Fprint(p.out, RenderResult(result))
}

// RenderResult is the end-of-batch summary: counts, bytes freed, backup
// location and one line per failed path.
func RenderResult(r *model.RemovalResult) string {
	var s string
	attempted := len(r.Selected)

	switch r.Outcome {
	case model.OutcomeCancelled:
		s += styleDanger.Render("Cancelled") + fmt.Sprintf(": removed %d of %d directories, freed %s\n",
			r.Removed, attempted, model.FormatSize(r.BytesFreed))
	default:
		s += styleSuccess.Render("Done") + fmt.Sprintf(": removed %d of %d directories, freed %s\n",
			r.Removed, attempted, model.FormatSize(r.BytesFreed))
	}

	if r.BackupPath != "" {
		s += styleDim.Render("Backup: ") + r.BackupPath + "\n"
	}

	if r.HasErrors() {
		s += styleDanger.Render(fmt.Sprintf("%s %d failed:", iconWarning, len(r.Errors))) + "\n"
		for _, e := range r.Errors {
			s += "  " + e.Path + ": " + styleDim.Render(e.Err.Error()) + "\n"
		}
	}
	return s
}
