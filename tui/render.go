package tui

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/x/ansi"

	"github.com/jackchuka/nmclean/internal/model"
)

const barWidth = 12

// RenderTargets writes the grouped tree view: one section per size group,
// largest first, each entry with its size, last-modified date and status.
// Lines are cut to width columns; width <= 0 disables truncation.
func RenderTargets(w io.Writer, targets []model.Target, width int) {
	if len(targets) == 0 {
		return
	}
	groups := model.GroupBySize(targets)

	var largest int64
	for _, t := range targets {
		largest = max(largest, t.Size)
	}

	for _, g := range model.SizeGroupsDescending {
		items := groups[g]
		if len(items) == 0 {
			continue
		}
		header := fmt.Sprintf("%s %s", styleTableHdr.Render(g.Label()),
			styleDim.Render(fmt.Sprintf("· %d, %s", len(items), model.FormatSize(model.TotalSize(items)))))
		fmt.Fprintln(w, header)

		for i, t := range items {
			branch := iconBranch
			if i == len(items)-1 {
				branch = iconLastLeaf
			}
			fmt.Fprintln(w, clip(renderTargetLine(branch, t, largest), width))
		}
		fmt.Fprintln(w)
	}
}

func renderTargetLine(branch string, t model.Target, largest int64) string {
	icon, status := styleInUse.Render(iconInUse), styleInUse.Render("in use")
	barColor := colorCleanGreen
	if t.Unused {
		icon, status = styleUnused.Render(iconUnused), styleUnused.Render("unused")
		barColor = colorDirtyAmber
	}

	parts := []string{
		styleDim.Render(branch),
		icon,
		styleSize.Render(padLeft(model.FormatSize(t.Size), 10)),
		renderHBar(t.Size, largest, barWidth, barColor),
		styleDim.Render(t.LastModified.Format("2006-01-02")),
		padRight(status, 6),
		stylePath.Render(t.Path),
	}
	return strings.Join(parts, " ")
}

func clip(line string, width int) string {
	if width <= 0 {
		return line
	}
	return ansi.Truncate(line, width, "…")
}

// PathList truncates each path for compact listings such as dry-run output.
func PathList(targets []model.Target, width int) string {
	var b strings.Builder
	for _, t := range targets {
		line := fmt.Sprintf("  %s  %s", padLeft(model.FormatSize(t.Size), 10), t.Path)
		if width > 0 {
			line = truncateWithEllipsis(line, width)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}
