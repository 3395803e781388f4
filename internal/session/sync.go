package session

import (
	"context"

	"github.com/jakoblorz/go-depextract/internal/export"
	"github.com/jakoblorz/go-depextract/internal/models"
)

// Scan starts a scan of path and waits for it
func (s *Session) Scan(ctx context.Context, path string) error {
	s.project = path
	job, err := s.StartScan()
	if err != nil {
		return err
	}
	return s.FinishScan(job.Run(ctx))
}

// Analyze runs an analysis of the current selection and waits for it
func (s *Session) Analyze(ctx context.Context) error {
	job, err := s.StartAnalyze()
	if err != nil {
		return err
	}
	return s.FinishAnalyze(job.Run(ctx))
}

// Export copies the export set and waits for the outcome
func (s *Session) Export(ctx context.Context) (*export.Outcome, error) {
	job, err := s.StartExport()
	if err != nil {
		return nil, err
	}
	done := job.Run(ctx)
	if err := s.FinishExport(done); err != nil {
		return nil, err
	}
	return done.Outcome, nil
}

// LoadSettings fetches settings and waits for them
func (s *Session) LoadSettings(ctx context.Context) error {
	return s.FinishSettings(s.StartLoadSettings().Run(ctx))
}

// SaveSettings stores mappings and waits for the collaborator
func (s *Session) SaveSettings(ctx context.Context, mappings []models.PrefixMapping) error {
	job, err := s.StartSaveSettings(mappings)
	if err != nil {
		return err
	}
	return s.FinishSettings(job.Run(ctx))
}

// Select marks each path as selected. Paths already selected stay
// selected; unknown paths are rejected before anything changes.
func (s *Session) Select(paths ...string) error {
	if s.tree == nil {
		return models.NewValidationError("select", "project not scanned yet")
	}
	for _, p := range paths {
		if !s.tree.Contains(p) {
			return models.NewValidationError("select", "unknown file: "+p)
		}
	}
	for _, p := range paths {
		if !s.store.IsSelected(p) {
			s.store.ToggleFile(p)
		}
	}
	return nil
}

// CheckIncludes checks the includes at the given indices. Indices out of
// range are ignored, matching the store.
func (s *Session) CheckIncludes(indices ...int) {
	for _, i := range indices {
		if !s.store.IsIncludeChecked(i) {
			s.store.ToggleInclude(i)
		}
	}
}
