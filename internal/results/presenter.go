package results

import (
	"fmt"
	"strings"

	"github.com/jakoblorz/go-depextract/internal/models"
	"github.com/jakoblorz/go-depextract/internal/selection"
)

// EmptyMessage is shown when nothing is selected and no analysis is loaded
const EmptyMessage = "Select files from the tree and press a to analyze"

// IncludeEntry is one include/require reference as shown in the results pane
type IncludeEntry struct {
	Index    int
	Type     string
	Path     string
	Source   string
	Line     int
	Checked  bool
	Resolved bool
}

// Report is the full, derived content of the results pane
type Report struct {
	Selected      []string
	Dependencies  []models.DependencyRecord
	Includes      []IncludeEntry
	DepCountLabel string
	Stats         string
	ExportCount   int
}

// Empty reports whether the pane should show the empty state
func (r Report) Empty() bool {
	return len(r.Selected) == 0 && len(r.Dependencies) == 0
}

// Present derives a report from the current store state. It is recomputed
// from scratch on every call.
func Present(store *selection.Store) Report {
	report := Report{
		Selected:     store.SortedSelectedFiles(),
		Dependencies: store.Dependencies(),
		ExportCount:  store.ExportCount(),
	}

	for i, inc := range store.Includes() {
		report.Includes = append(report.Includes, IncludeEntry{
			Index:    i,
			Type:     inc.Type,
			Path:     inc.DisplayPath(),
			Source:   ShortPath(inc.SourceFile),
			Line:     inc.Line,
			Checked:  store.IsIncludeChecked(i),
			Resolved: inc.IsResolved(),
		})
	}

	if n := len(report.Dependencies); n > 0 {
		report.DepCountLabel = fmt.Sprintf("%d deps", n)
	}
	report.Stats = fmt.Sprintf("Selected: %d | Dependencies: %d | Total: %d",
		len(report.Selected), len(report.Dependencies), report.ExportCount)

	return report
}

// ShortPath keeps the last two segments of a path
func ShortPath(p string) string {
	if p == "" {
		return ""
	}
	parts := strings.Split(p, "/")
	if len(parts) <= 2 {
		return p
	}
	return ".../" + strings.Join(parts[len(parts)-2:], "/")
}
