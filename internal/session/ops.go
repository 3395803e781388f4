package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jakoblorz/go-depextract/internal/backend"
	"github.com/jakoblorz/go-depextract/internal/export"
	"github.com/jakoblorz/go-depextract/internal/filetree"
	"github.com/jakoblorz/go-depextract/internal/models"
	"github.com/jakoblorz/go-depextract/internal/treeview"
)

// ErrStale is returned by the Finish methods when a result belongs to an
// operation that has since been superseded.
var ErrStale = errors.New("stale response discarded")

func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// errMessage strips the op prefix of collaborator errors for status lines
func errMessage(err error) string {
	var ee *models.ExternalCallError
	if errors.As(err, &ee) && ee.Err != nil {
		return ee.Err.Error()
	}
	var ve *models.ValidationError
	if errors.As(err, &ve) {
		return ve.Reason
	}
	return err.Error()
}

// ScanJob is a started scan. Run is safe to call from any goroutine.
type ScanJob struct {
	Ticket  Ticket
	Request backend.ScanRequest

	client  backend.Client
	timeout time.Duration
}

// ScanDone carries a scan response back to the session
type ScanDone struct {
	Ticket Ticket
	Result *backend.ScanResult
	Err    error
}

func (j *ScanJob) Run(ctx context.Context) ScanDone {
	ctx, cancel := withTimeout(ctx, j.timeout)
	defer cancel()

	res, err := j.client.Scan(ctx, j.Request)
	return ScanDone{Ticket: j.Ticket, Result: res, Err: err}
}

// StartScan begins scanning the current project. A scan supersedes any
// scan, analysis or export still in flight.
func (s *Session) StartScan() (*ScanJob, error) {
	if s.project == "" {
		s.status = "Select a project directory first"
		return nil, models.NewValidationError("scan", "no project directory selected")
	}

	s.invalidate(OpAnalyze, OpExport)
	s.status = "Scanning project..."
	return &ScanJob{
		Ticket: s.begin(OpScan),
		Request: backend.ScanRequest{
			Path:      s.project,
			Framework: s.framework,
			Mappings:  s.mappings,
		},
		client:  s.client,
		timeout: s.timeout,
	}, nil
}

// FinishScan applies a scan response. On success the previous tree, view,
// selection and analysis are all replaced, and analyses or exports started
// against the old tree become stale.
func (s *Session) FinishScan(done ScanDone) error {
	if !s.current(done.Ticket) {
		return ErrStale
	}
	if done.Err != nil {
		s.status = "Scan error: " + errMessage(done.Err)
		s.logger.Error("scan failed", "project", s.project, "error", done.Err)
		return done.Err
	}

	tree, err := filetree.New(done.Result.Tree)
	if err != nil {
		s.status = "Scan error: " + err.Error()
		return fmt.Errorf("failed to load scanned tree: %w", err)
	}

	s.tree = tree
	s.treeGen++
	s.invalidate(OpAnalyze, OpExport)
	s.store.Reset()
	s.view = treeview.New(tree, s.filter, s.store)
	s.status = fmt.Sprintf("Scanned %d files, indexed %d classes", done.Result.FileCount, done.Result.Indexed)
	s.logger.Info("scan applied", "project", s.project, "files", done.Result.FileCount, "indexed", done.Result.Indexed)
	return nil
}

// AnalyzeJob is a started analysis
type AnalyzeJob struct {
	Ticket  Ticket
	Request backend.AnalyzeRequest

	client  backend.Client
	timeout time.Duration
}

// AnalyzeDone carries an analysis response back to the session
type AnalyzeDone struct {
	Ticket Ticket
	Result *backend.AnalyzeResult
	Err    error
}

func (j *AnalyzeJob) Run(ctx context.Context) AnalyzeDone {
	ctx, cancel := withTimeout(ctx, j.timeout)
	defer cancel()

	res, err := j.client.Analyze(ctx, j.Request)
	return AnalyzeDone{Ticket: j.Ticket, Result: res, Err: err}
}

// StartAnalyze begins analyzing the selected files
func (s *Session) StartAnalyze() (*AnalyzeJob, error) {
	if s.tree == nil {
		s.status = "Scan a project first"
		return nil, models.NewValidationError("analyze", "project not scanned yet")
	}
	if s.store.SelectedCount() == 0 {
		s.status = "No files selected"
		return nil, models.NewValidationError("analyze", "No files selected")
	}

	s.status = "Analyzing dependencies..."
	return &AnalyzeJob{
		Ticket: s.begin(OpAnalyze),
		Request: backend.AnalyzeRequest{
			Files:         s.store.SelectedFiles(),
			ParseIncludes: s.parseIncludes,
		},
		client:  s.client,
		timeout: s.timeout,
	}, nil
}

// FinishAnalyze replaces the analysis with the response. A response that
// arrives after the selection was emptied is dropped.
func (s *Session) FinishAnalyze(done AnalyzeDone) error {
	if !s.current(done.Ticket) {
		return ErrStale
	}
	if done.Err != nil {
		s.status = "Analysis error: " + errMessage(done.Err)
		s.logger.Error("analysis failed", "error", done.Err)
		return done.Err
	}
	if s.store.SelectedCount() == 0 {
		s.logger.Debug("discarding analysis for empty selection")
		return ErrStale
	}

	s.store.ReplaceAnalysis(done.Result.Dependencies, done.Result.Includes)

	deps, incs := s.store.DependencyCount(), s.store.IncludeCount()
	s.status = fmt.Sprintf("Found %d dependencies", deps)
	if incs > 0 {
		s.status += fmt.Sprintf(", %d includes", incs)
	}
	s.logger.Info("analysis applied", "dependencies", deps, "includes", incs)
	return nil
}

// ExportJob is a started export
type ExportJob struct {
	Ticket  Ticket
	Request *export.Request

	coordinator *export.Coordinator
	timeout     time.Duration
}

// ExportDone carries an export outcome back to the session
type ExportDone struct {
	Ticket  Ticket
	Outcome *export.Outcome
	Err     error
}

func (j *ExportJob) Run(ctx context.Context) ExportDone {
	ctx, cancel := withTimeout(ctx, j.timeout)
	defer cancel()

	outcome, err := j.coordinator.Run(ctx, j.Request)
	return ExportDone{Ticket: j.Ticket, Outcome: outcome, Err: err}
}

// StartExport validates and snapshots the export set for the current
// output directory.
func (s *Session) StartExport() (*ExportJob, error) {
	req, err := s.export.Prepare(s.OutputDir())
	if err != nil {
		s.status = errMessage(err)
		return nil, err
	}

	s.status = "Copying files..."
	return &ExportJob{
		Ticket:      s.begin(OpExport),
		Request:     req,
		coordinator: s.export,
		timeout:     s.timeout,
	}, nil
}

// FinishExport reports an export outcome. Selection state is not touched.
func (s *Session) FinishExport(done ExportDone) error {
	if !s.current(done.Ticket) {
		return ErrStale
	}
	if done.Err != nil {
		s.status = "Copy error: " + errMessage(done.Err)
		s.logger.Error("export failed", "error", done.Err)
		return done.Err
	}

	s.status = done.Outcome.Summary()
	return nil
}

// BrowseTarget tells what a picked directory is used for
type BrowseTarget int

const (
	BrowseProject BrowseTarget = iota
	BrowseOutput
)

// BrowseJob is a started directory pick
type BrowseJob struct {
	Ticket Ticket
	Target BrowseTarget

	client  backend.Client
	timeout time.Duration
}

// BrowseDone carries the picked directory back; an empty Path is a cancel
type BrowseDone struct {
	Ticket Ticket
	Target BrowseTarget
	Path   string
	Err    error
}

func (j *BrowseJob) Run(ctx context.Context) BrowseDone {
	ctx, cancel := withTimeout(ctx, j.timeout)
	defer cancel()

	path, err := j.client.Browse(ctx)
	return BrowseDone{Ticket: j.Ticket, Target: j.Target, Path: path, Err: err}
}

// StartBrowse asks the collaborator for a directory. Browsing has no
// deadline since it waits on the user.
func (s *Session) StartBrowse(target BrowseTarget) *BrowseJob {
	s.status = "Opening folder dialog..."
	return &BrowseJob{
		Ticket: s.begin(OpBrowse),
		Target: target,
		client: s.client,
	}
}

// FinishBrowse applies the picked directory
func (s *Session) FinishBrowse(done BrowseDone) error {
	if !s.current(done.Ticket) {
		return ErrStale
	}
	if done.Err != nil {
		s.status = "Error: " + errMessage(done.Err)
		return done.Err
	}
	if done.Path == "" {
		s.status = "No directory selected"
		return nil
	}

	switch done.Target {
	case BrowseOutput:
		s.SetOutputDir(done.Path)
	default:
		s.project = done.Path
		s.status = "Project directory selected"
	}
	return nil
}

// SettingsJob loads or saves collaborator settings
type SettingsJob struct {
	Ticket Ticket
	// Save is nil for a load
	Save []models.PrefixMapping

	client  backend.Client
	timeout time.Duration
}

// SettingsDone carries the settings after a load or save
type SettingsDone struct {
	Ticket   Ticket
	Saved    bool
	Settings *backend.Settings
	Err      error
}

func (j *SettingsJob) Run(ctx context.Context) SettingsDone {
	ctx, cancel := withTimeout(ctx, j.timeout)
	defer cancel()

	if j.Save != nil {
		if err := j.client.SaveSettings(ctx, j.Save); err != nil {
			return SettingsDone{Ticket: j.Ticket, Err: err}
		}
		return SettingsDone{Ticket: j.Ticket, Saved: true, Settings: &backend.Settings{Mappings: j.Save}}
	}

	settings, err := j.client.GetSettings(ctx)
	return SettingsDone{Ticket: j.Ticket, Settings: settings, Err: err}
}

// StartLoadSettings fetches the collaborator's settings
func (s *Session) StartLoadSettings() *SettingsJob {
	return &SettingsJob{
		Ticket:  s.begin(OpSettings),
		client:  s.client,
		timeout: s.timeout,
	}
}

// StartSaveSettings validates and saves prefix mappings
func (s *Session) StartSaveSettings(mappings []models.PrefixMapping) (*SettingsJob, error) {
	for _, m := range mappings {
		if err := m.Validate(); err != nil {
			s.status = "Settings error: " + err.Error()
			return nil, models.NewValidationError("settings", err.Error())
		}
	}
	if mappings == nil {
		mappings = []models.PrefixMapping{}
	}

	return &SettingsJob{
		Ticket:  s.begin(OpSettings),
		Save:    mappings,
		client:  s.client,
		timeout: s.timeout,
	}, nil
}

// FinishSettings applies loaded or saved settings to the next scan
func (s *Session) FinishSettings(done SettingsDone) error {
	if !s.current(done.Ticket) {
		return ErrStale
	}
	if done.Err != nil {
		s.status = "Settings error: " + errMessage(done.Err)
		return done.Err
	}

	s.mappings = done.Settings.Mappings
	if done.Saved {
		s.status = "Settings saved"
		return nil
	}
	if done.Settings.Framework.IsValid() {
		s.framework = done.Settings.Framework
	}
	s.status = "Settings loaded"
	return nil
}
