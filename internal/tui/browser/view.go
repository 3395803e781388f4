package browser

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jakoblorz/go-depextract/internal/results"
	"github.com/jakoblorz/go-depextract/internal/session"
	"github.com/jakoblorz/go-depextract/internal/treeview"
	"github.com/jakoblorz/go-depextract/internal/tui"
)

var (
	dirStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2F6FDB")).Bold(true)
	forcedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#D9822B"))
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#DDDDDD"))
	paneStyle   = lipgloss.NewStyle().BorderStyle(lipgloss.NormalBorder()).BorderLeft(true).BorderForeground(lipgloss.Color("#444444"))
)

// View renders the browser
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.form != nil {
		return tui.BorderStyle.Render(m.form.View()) + "\n" + m.statusBar()
	}

	body := lipgloss.JoinHorizontal(lipgloss.Top, m.treePane(), m.resultsPane())
	return body + "\n" + m.statusBar() + "\n" + m.help.View(m.keys)
}

func (m Model) treePane() string {
	width := m.treeWidth()
	s := m.session

	project := s.Project()
	if project == "" {
		project = "no project"
	}
	lines := []string{
		tui.HeaderStyle.Render("depextract") + " " + tui.SubtleStyle.Render(truncate(project, width-14)),
	}

	switch {
	case m.searching || s.Filter().HasTerm():
		lines = append(lines, m.search.View())
	case s.View() != nil:
		lines = append(lines, tui.SubtleStyle.Render("/ to search"))
	default:
		lines = append(lines, "")
	}

	lines = append(lines, m.treeRows(width)...)

	return lipgloss.NewStyle().
		Width(width).
		Height(m.treeHeight() + treeTop).
		MaxHeight(m.treeHeight() + treeTop).
		Render(strings.Join(lines, "\n"))
}

func (m Model) treeRows(width int) []string {
	s := m.session
	view := s.View()

	switch {
	case view == nil:
		if s.Busy(session.OpScan) {
			return []string{tui.SubtleStyle.Render("Scanning...")}
		}
		return []string{tui.SubtleStyle.Render("Press e to enter a project path or o to browse")}
	case s.Tree().FileCount() == 0:
		return []string{tui.SubtleStyle.Render("No PHP files found")}
	case view.Len() == 0:
		return []string{tui.SubtleStyle.Render("No files match the search")}
	}

	start, end := view.VisibleRange(m.treeHeight())
	out := make([]string, 0, end-start)
	for i := start; i < end; i++ {
		row, _ := view.Row(i)
		out = append(out, m.treeRow(row, i == view.Cursor(), width))
	}
	return out
}

func (m Model) treeRow(row treeview.Row, cursor bool, width int) string {
	label := truncate(row.Label(), width-len([]rune(row.Indent()))-6)

	var marker string
	switch {
	case row.IsDir() && row.Forced:
		marker = forcedStyle.Render(row.Marker())
	case row.IsDir():
		marker = tui.SubtleStyle.Render(row.Marker())
	case row.Checked:
		marker = tui.CheckedStyle.Render(row.Marker())
	default:
		marker = tui.UncheckedStyle.Render(row.Marker())
	}

	switch {
	case cursor && m.focus == paneTree:
		label = tui.SelectedStyle.Render(label)
	case row.IsDir():
		label = dirStyle.Render(label)
	}

	prefix := "  "
	if cursor {
		prefix = tui.FocusedStyle.Render("> ")
	}
	return prefix + row.Indent() + marker + " " + label
}

func (m Model) resultsPane() string {
	report := results.Present(m.session.Store())

	title := tui.HeaderStyle.Render("Results")
	if report.DepCountLabel != "" {
		title += " " + tui.BadgeOrange.Render(report.DepCountLabel)
	}
	if m.focus == paneResults {
		title += " " + tui.FocusedStyle.Render("●")
	}

	return paneStyle.Render(title + "\n" + m.results.View())
}

func (m Model) statusBar() string {
	s := m.session
	report := results.Present(s.Store())

	status := s.Status()
	if s.AnyBusy() {
		status = m.spinner.View() + " " + status
	}

	stats := report.Stats + " | Output: " + s.OutputPlaceholder()
	return statusStyle.Render(truncate(status, m.width)) + "\n" + tui.SubtleStyle.Render(truncate(stats, m.width))
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
