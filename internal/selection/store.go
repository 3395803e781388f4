package selection

import (
	"sort"

	"github.com/jakoblorz/go-depextract/internal/models"
)

// Store holds the selection state of one session: files the user checked,
// the dependencies and includes of the latest analysis, and which includes
// are opted into export.
//
// Store is not safe for concurrent use. It is owned by the UI event loop.
type Store struct {
	selected      map[string]struct{}
	selectedOrder []string

	dependencies    []models.DependencyRecord
	includes        []models.IncludeRecord
	checkedIncludes map[int]struct{}
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{
		selected:        make(map[string]struct{}),
		checkedIncludes: make(map[int]struct{}),
	}
}

// ToggleFile adds path to the selection or removes it, returning whether it
// is selected afterwards. Removing the last selected file also drops the
// analysis, which described a selection that no longer exists.
func (s *Store) ToggleFile(path string) bool {
	if _, ok := s.selected[path]; ok {
		delete(s.selected, path)
		for i, p := range s.selectedOrder {
			if p == path {
				s.selectedOrder = append(s.selectedOrder[:i], s.selectedOrder[i+1:]...)
				break
			}
		}
		if len(s.selected) == 0 {
			s.ClearAnalysis()
		}
		return false
	}

	s.selected[path] = struct{}{}
	s.selectedOrder = append(s.selectedOrder, path)
	return true
}

// IsSelected reports whether path is checked
func (s *Store) IsSelected(path string) bool {
	_, ok := s.selected[path]
	return ok
}

// SelectedFiles returns selected paths in the order they were checked
func (s *Store) SelectedFiles() []string {
	return append([]string(nil), s.selectedOrder...)
}

// SortedSelectedFiles returns selected paths in lexical order
func (s *Store) SortedSelectedFiles() []string {
	out := s.SelectedFiles()
	sort.Strings(out)
	return out
}

// SelectedCount returns the number of selected files
func (s *Store) SelectedCount() int {
	return len(s.selectedOrder)
}

// ReplaceAnalysis swaps in the result of a new analysis. Checked include
// indices always refer to the previous list and are cleared.
func (s *Store) ReplaceAnalysis(deps []models.DependencyRecord, includes []models.IncludeRecord) {
	s.dependencies = append([]models.DependencyRecord(nil), deps...)
	s.includes = append([]models.IncludeRecord(nil), includes...)
	s.checkedIncludes = make(map[int]struct{})
}

// ClearAnalysis drops dependencies, includes and checked includes
func (s *Store) ClearAnalysis() {
	s.ReplaceAnalysis(nil, nil)
}

// Reset returns the store to its initial state, as after a new scan
func (s *Store) Reset() {
	s.selected = make(map[string]struct{})
	s.selectedOrder = nil
	s.ClearAnalysis()
}

// HasAnalysis reports whether the last analysis produced any records
func (s *Store) HasAnalysis() bool {
	return len(s.dependencies) > 0 || len(s.includes) > 0
}

// Dependencies returns the current dependency records
func (s *Store) Dependencies() []models.DependencyRecord {
	return append([]models.DependencyRecord(nil), s.dependencies...)
}

// DependencyCount returns the number of dependency records
func (s *Store) DependencyCount() int {
	return len(s.dependencies)
}

// Includes returns the current include records
func (s *Store) Includes() []models.IncludeRecord {
	return append([]models.IncludeRecord(nil), s.includes...)
}

// IncludeCount returns the number of include records
func (s *Store) IncludeCount() int {
	return len(s.includes)
}

// ToggleInclude flips whether include i is exported and returns the new
// state. Indices outside the current include list are ignored.
func (s *Store) ToggleInclude(i int) bool {
	if i < 0 || i >= len(s.includes) {
		return false
	}
	if _, ok := s.checkedIncludes[i]; ok {
		delete(s.checkedIncludes, i)
		return false
	}
	s.checkedIncludes[i] = struct{}{}
	return true
}

// IsIncludeChecked reports whether include i is opted into export
func (s *Store) IsIncludeChecked(i int) bool {
	_, ok := s.checkedIncludes[i]
	return ok
}

// CheckedIncludes returns the checked indices in ascending order
func (s *Store) CheckedIncludes() []int {
	out := make([]int, 0, len(s.checkedIncludes))
	for i := range s.checkedIncludes {
		out = append(out, i)
	}
	sort.Ints(out)
	return out
}

// CheckResolvedIncludes checks every include that has a resolved path and
// returns how many are checked afterwards.
func (s *Store) CheckResolvedIncludes() int {
	for i, inc := range s.includes {
		if inc.IsResolved() {
			s.checkedIncludes[i] = struct{}{}
		}
	}
	return len(s.checkedIncludes)
}

// ResolvedExportSet returns the de-duplicated union of selected files,
// dependency files, and resolved paths of checked includes. Order: selected
// files as checked, then dependencies, then includes by index.
func (s *Store) ResolvedExportSet() []string {
	seen := make(map[string]struct{}, len(s.selectedOrder)+len(s.dependencies))
	out := make([]string, 0, len(s.selectedOrder)+len(s.dependencies))

	add := func(path string) {
		if path == "" {
			return
		}
		if _, ok := seen[path]; ok {
			return
		}
		seen[path] = struct{}{}
		out = append(out, path)
	}

	for _, p := range s.selectedOrder {
		add(p)
	}
	for _, dep := range s.dependencies {
		add(dep.FilePath)
	}
	for _, i := range s.CheckedIncludes() {
		if inc := s.includes[i]; inc.IsResolved() {
			add(inc.Resolved)
		}
	}

	return out
}

// ExportCount returns len(ResolvedExportSet())
func (s *Store) ExportCount() int {
	return len(s.ResolvedExportSet())
}
