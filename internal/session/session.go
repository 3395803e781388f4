package session

import (
	"io"
	"log/slog"
	"time"

	"github.com/jakoblorz/go-depextract/internal/backend"
	"github.com/jakoblorz/go-depextract/internal/export"
	"github.com/jakoblorz/go-depextract/internal/filetree"
	"github.com/jakoblorz/go-depextract/internal/filter"
	"github.com/jakoblorz/go-depextract/internal/models"
	"github.com/jakoblorz/go-depextract/internal/selection"
	"github.com/jakoblorz/go-depextract/internal/treeview"
)

// Op names a collaborator operation the session can have in flight
type Op string

const (
	OpScan     Op = "scan"
	OpAnalyze  Op = "analyze"
	OpExport   Op = "export"
	OpBrowse   Op = "browse"
	OpSettings Op = "settings"
)

// Ticket identifies one started operation. Results carrying an outdated
// ticket are discarded. Tree is the tree generation the operation was
// started against; analysis and export results for an older tree are stale.
type Ticket struct {
	Op         Op
	Generation uint64
	Tree       uint64
}

// Options configures a session
type Options struct {
	Framework     models.Framework
	Mappings      []models.PrefixMapping
	ParseIncludes bool
	Timeout       time.Duration
	HidePatterns  []string
	Logger        *slog.Logger
	Now           func() time.Time
}

// Session owns all front end state: the scanned tree, the view over it,
// the selection and the export destination. It is driven from a single
// goroutine; collaborator calls run through jobs that never touch it.
type Session struct {
	client backend.Client
	logger *slog.Logger
	now    func() time.Time

	framework     models.Framework
	mappings      []models.PrefixMapping
	parseIncludes bool
	timeout       time.Duration

	project string
	dest    export.Destination

	tree   *filetree.Model
	filter *filter.Engine
	store  *selection.Store
	view   *treeview.Renderer
	export *export.Coordinator

	generations map[Op]uint64
	treeGen     uint64
	busy        map[Op]bool
	status      string
}

// New creates a session talking to client
func New(client backend.Client, opts Options) *Session {
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Framework == "" {
		opts.Framework = models.DefaultFramework
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 30 * time.Second
	}

	store := selection.NewStore()
	return &Session{
		client:        client,
		logger:        opts.Logger,
		now:           opts.Now,
		framework:     opts.Framework,
		mappings:      opts.Mappings,
		parseIncludes: opts.ParseIncludes,
		timeout:       opts.Timeout,
		filter:        filter.New(opts.HidePatterns...),
		store:         store,
		export:        export.NewCoordinator(store, client, opts.Logger),
		generations:   make(map[Op]uint64),
		busy:          make(map[Op]bool),
	}
}

// Store returns the selection store
func (s *Session) Store() *selection.Store {
	return s.store
}

// View returns the tree renderer, or nil before the first scan
func (s *Session) View() *treeview.Renderer {
	return s.view
}

// Tree returns the scanned tree, or nil before the first scan
func (s *Session) Tree() *filetree.Model {
	return s.tree
}

// Filter returns the filter engine
func (s *Session) Filter() *filter.Engine {
	return s.filter
}

// Coordinator returns the export coordinator
func (s *Session) Coordinator() *export.Coordinator {
	return s.export
}

// Status returns the last status message
func (s *Session) Status() string {
	return s.status
}

// SetStatus replaces the status message
func (s *Session) SetStatus(msg string) {
	s.status = msg
}

// Busy reports whether op is in flight; its trigger should be disabled
func (s *Session) Busy(op Op) bool {
	return s.busy[op]
}

// AnyBusy reports whether any operation is in flight
func (s *Session) AnyBusy() bool {
	for _, b := range s.busy {
		if b {
			return true
		}
	}
	return false
}

// Timeout is the per-call deadline for collaborator calls
func (s *Session) Timeout() time.Duration {
	return s.timeout
}

// Project returns the project path
func (s *Session) Project() string {
	return s.project
}

// SetProject sets the project path to scan next
func (s *Session) SetProject(path string) {
	s.project = path
}

// Framework returns the framework sent with scans
func (s *Session) Framework() models.Framework {
	return s.framework
}

// SetFramework changes the framework used by the next scan
func (s *Session) SetFramework(f models.Framework) {
	s.framework = f
}

// Mappings returns the prefix mappings sent with scans
func (s *Session) Mappings() []models.PrefixMapping {
	return s.mappings
}

// ParseIncludes reports whether analysis asks for include references
func (s *Session) ParseIncludes() bool {
	return s.parseIncludes
}

// SetParseIncludes toggles include parsing for the next analysis
func (s *Session) SetParseIncludes(v bool) {
	s.parseIncludes = v
}

// OutputDir returns the directory an export started now would use
func (s *Session) OutputDir() string {
	return s.dest.Resolve(s.project, s.now())
}

// OutputPlaceholder returns the hint for the output directory field
func (s *Session) OutputPlaceholder() string {
	return s.dest.Placeholder(s.project, s.now())
}

// OutputIsAuto reports whether the output directory is auto-derived
func (s *Session) OutputIsAuto() bool {
	return s.dest.IsAuto()
}

// SetOutputDir pins the output directory
func (s *Session) SetOutputDir(path string) {
	s.dest.Set(path)
	if s.dest.IsAuto() {
		s.status = "Output reset to auto-generate"
		return
	}
	s.status = "Output directory selected"
}

// ResetOutputDir switches back to the auto-derived output directory
func (s *Session) ResetOutputDir() {
	s.dest.Reset()
	s.status = "Output reset to auto-generate"
}

// SetFilterTerm applies a search term and rebuilds the view
func (s *Session) SetFilterTerm(term string) {
	s.filter.SetTerm(term)
	if s.view != nil {
		s.view.Rebuild()
	}
}

func (s *Session) begin(op Op) Ticket {
	s.generations[op]++
	s.busy[op] = true
	return Ticket{Op: op, Generation: s.generations[op], Tree: s.treeGen}
}

// treeBound ops read the selection and so depend on the scanned tree
func treeBound(op Op) bool {
	return op == OpAnalyze || op == OpExport
}

// current reports whether t is the latest ticket for its op and, if so,
// clears the busy flag.
func (s *Session) current(t Ticket) bool {
	if s.generations[t.Op] != t.Generation {
		s.logger.Debug("discarding stale response", "op", t.Op, "generation", t.Generation, "current", s.generations[t.Op])
		return false
	}
	s.busy[t.Op] = false
	if treeBound(t.Op) && t.Tree != s.treeGen {
		s.logger.Debug("discarding response for replaced tree", "op", t.Op, "tree", t.Tree, "current", s.treeGen)
		return false
	}
	return true
}

// invalidate makes every in-flight op result stale
func (s *Session) invalidate(ops ...Op) {
	for _, op := range ops {
		if s.busy[op] {
			s.logger.Debug("invalidating in-flight operation", "op", op)
		}
		s.generations[op]++
		s.busy[op] = false
	}
}
