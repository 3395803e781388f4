package treeview

import "strings"

const (
	IndicatorCollapsed = "▸"
	IndicatorExpanded  = "▾"
	CheckboxOn         = "[✓]"
	CheckboxOff        = "[ ]"
)

// Indent returns the leading whitespace for a row
func (r Row) Indent() string {
	return strings.Repeat("  ", r.Depth)
}

// Marker returns the expand indicator for directories and the checkbox for
// files
func (r Row) Marker() string {
	if r.Node.IsDir {
		if r.Expanded {
			return IndicatorExpanded
		}
		return IndicatorCollapsed
	}
	if r.Checked {
		return CheckboxOn
	}
	return CheckboxOff
}

// Label returns the display name; directories get a trailing slash
func (r Row) Label() string {
	if r.Node.IsDir {
		return r.Node.Name + "/"
	}
	return r.Node.Name
}

// String renders the row as plain text
func (r Row) String() string {
	return r.Indent() + r.Marker() + " " + r.Label()
}

// FormatRows renders rows as plain text, one per line
func FormatRows(rows []Row) string {
	var b strings.Builder
	for _, row := range rows {
		b.WriteString(row.String())
		b.WriteString("\n")
	}
	return b.String()
}
