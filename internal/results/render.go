package results

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/jakoblorz/go-depextract/internal/tui"
)

var (
	sectionStyle = lipgloss.NewStyle().MarginBottom(1)
	pathStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD"))
	cursorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#7D56F4")).Bold(true)
)

// RenderOptions controls how Render lays out a report
type RenderOptions struct {
	Width int
	// IncludeCursor highlights an include row; -1 for none
	IncludeCursor int
}

// Render draws the report as three sections: selected files, dependencies
// and include/require references.
func Render(report Report, opts RenderOptions) string {
	if report.Empty() {
		return tui.SubtleStyle.Render(EmptyMessage)
	}

	var sections []string

	if len(report.Selected) > 0 {
		var b strings.Builder
		b.WriteString(sectionTitle(tui.BadgeBlue, "Selected", fmt.Sprintf("%d files", len(report.Selected))))
		for _, path := range report.Selected {
			b.WriteString("\n  " + pathStyle.Render(truncate(path, opts.Width-2)))
		}
		sections = append(sections, sectionStyle.Render(b.String()))
	}

	if len(report.Dependencies) > 0 {
		var b strings.Builder
		b.WriteString(sectionTitle(tui.BadgeOrange, "Dependencies", fmt.Sprintf("%d files", len(report.Dependencies))))
		for _, dep := range report.Dependencies {
			b.WriteString("\n  " + pathStyle.Render(truncate(dep.FilePath, opts.Width-2)))
			ref := fmt.Sprintf("%s (%s) from %s", dep.ClassName, dep.RefType, ShortPath(dep.ReferencedBy))
			b.WriteString("\n    " + tui.DescStyle.Render(truncate(ref, opts.Width-4)))
		}
		sections = append(sections, sectionStyle.Render(b.String()))
	}

	if len(report.Includes) > 0 {
		var b strings.Builder
		b.WriteString(sectionTitle(tui.BadgeGray, "Include/Require", fmt.Sprintf("%d references", len(report.Includes))))
		for _, inc := range report.Includes {
			b.WriteString("\n" + includeLine(inc, inc.Index == opts.IncludeCursor, opts.Width))
		}
		sections = append(sections, b.String())
	}

	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func sectionTitle(badge lipgloss.Style, name, count string) string {
	return badge.Render(name) + " " + tui.SubtleStyle.Render(count)
}

func includeLine(inc IncludeEntry, focused bool, width int) string {
	box := tui.UncheckedStyle.Render("[ ]")
	if inc.Checked {
		box = tui.CheckedStyle.Render("[✓]")
	}

	prefix := "  "
	if focused {
		prefix = cursorStyle.Render("> ")
	}

	path := inc.Path
	if !inc.Resolved {
		path += " (unresolved)"
	}

	src := "from " + inc.Source
	if inc.Line > 0 {
		src = fmt.Sprintf("from %s:%d", inc.Source, inc.Line)
	}

	return prefix + box + " " + tui.BadgeGray.Render(inc.Type) + " " +
		pathStyle.Render(truncate(path, width-20)) + " " + tui.DescStyle.Render(src)
}

func truncate(s string, width int) string {
	r := []rune(s)
	if width <= 0 || len(r) <= width {
		return s
	}
	if width <= 3 {
		return string(r[:width])
	}
	return string(r[:width-3]) + "..."
}
