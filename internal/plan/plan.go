package plan

import (
	"context"
	"fmt"
	"sort"

	"github.com/jakoblorz/go-depextract/internal/models"
	"github.com/jakoblorz/go-depextract/internal/session"
)

// Plan is a saved selection that can be replayed without the UI: which
// project to scan, which files to pick and which includes to keep.
type Plan struct {
	ID            string           `yaml:"-"`
	FilePath      string           `yaml:"-"`
	Project       string           `yaml:"project"`
	Framework     models.Framework `yaml:"framework,omitempty"`
	ParseIncludes bool             `yaml:"parse_includes"`
	Output        string           `yaml:"output,omitempty"`
	// Includes lists the resolved include paths to check after analysis
	Includes []string `yaml:"includes,omitempty"`

	Files []string `yaml:"-"`
	Notes string   `yaml:"-"`
}

// Validate checks that the plan can be replayed
func (p *Plan) Validate() error {
	if p.Project == "" {
		return fmt.Errorf("plan has no project")
	}
	if len(p.Files) == 0 {
		return fmt.Errorf("plan selects no files")
	}
	if p.Framework != "" && !p.Framework.IsValid() {
		return fmt.Errorf("invalid framework: %s", p.Framework)
	}
	return nil
}

// Capture records the session's current project, selection and checked
// includes as a plan.
func Capture(s *session.Session) *Plan {
	p := &Plan{
		Project:       s.Project(),
		Framework:     s.Framework(),
		ParseIncludes: s.ParseIncludes(),
		Files:         s.Store().SelectedFiles(),
	}
	if !s.OutputIsAuto() {
		p.Output = s.OutputDir()
	}

	includes := s.Store().Includes()
	for _, i := range s.Store().CheckedIncludes() {
		if inc := includes[i]; inc.IsResolved() {
			p.Includes = append(p.Includes, inc.Resolved)
		}
	}
	sort.Strings(p.Includes)
	return p
}

// Apply replays the plan on s: scan, select, analyze and check includes.
// Exporting is left to the caller.
func (p *Plan) Apply(ctx context.Context, s *session.Session) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if p.Framework != "" {
		s.SetFramework(p.Framework)
	}
	s.SetParseIncludes(p.ParseIncludes)
	if p.Output != "" {
		s.SetOutputDir(p.Output)
	}

	if err := s.Scan(ctx, p.Project); err != nil {
		return fmt.Errorf("failed to scan %s: %w", p.Project, err)
	}
	if err := s.Select(p.Files...); err != nil {
		return fmt.Errorf("failed to select plan files: %w", err)
	}
	if err := s.Analyze(ctx); err != nil {
		return fmt.Errorf("failed to analyze selection: %w", err)
	}

	want := make(map[string]bool, len(p.Includes))
	for _, inc := range p.Includes {
		want[inc] = true
	}
	var indices []int
	for i, inc := range s.Store().Includes() {
		if inc.IsResolved() && want[inc.Resolved] {
			indices = append(indices, i)
		}
	}
	s.CheckIncludes(indices...)
	return nil
}
