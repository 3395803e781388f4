package export

import (
	"bytes"
	"fmt"
	"text/template"
	"time"

	"github.com/Masterminds/sprig/v3"

	"github.com/jakoblorz/go-depextract/internal/selection"
)

// EntryKind tells why a file is part of an export
type EntryKind string

const (
	KindSelected   EntryKind = "selected"
	KindDependency EntryKind = "dependency"
	KindInclude    EntryKind = "include"
)

// ManifestEntry is one file of the export set
type ManifestEntry struct {
	Path   string
	Kind   EntryKind
	Reason string
}

// Manifest is the data handed to manifest templates
type Manifest struct {
	Project     string
	Destination string
	Generated   time.Time
	Entries     []ManifestEntry
}

// Files returns the entry paths in export order
func (m Manifest) Files() []string {
	out := make([]string, len(m.Entries))
	for i, e := range m.Entries {
		out[i] = e.Path
	}
	return out
}

// Count returns the number of entries of kind
func (m Manifest) Count(kind EntryKind) int {
	n := 0
	for _, e := range m.Entries {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

const DefaultManifestTemplate = `# export manifest
project:     {{ .Project | default "-" }}
destination: {{ .Destination | default "-" }}
generated:   {{ .Generated | date "2006-01-02 15:04:05" }}
files:       {{ len .Entries }} ({{ .Count "selected" }} selected, {{ .Count "dependency" }} dependencies, {{ .Count "include" }} includes)
{{ range .Entries }}
{{ printf "%-10s" (upper (print .Kind)) }} {{ .Path }}{{ if .Reason }}  <- {{ .Reason }}{{ end }}
{{- end }}
`

// BuildManifest lists the export set with the reason each file is in it.
// Entries follow the same order and de-duplication as the export set.
func BuildManifest(store *selection.Store, project, dest string, now time.Time) Manifest {
	m := Manifest{Project: project, Destination: dest, Generated: now}
	seen := make(map[string]bool)
	add := func(e ManifestEntry) {
		if seen[e.Path] {
			return
		}
		seen[e.Path] = true
		m.Entries = append(m.Entries, e)
	}

	for _, path := range store.SelectedFiles() {
		add(ManifestEntry{Path: path, Kind: KindSelected})
	}
	for _, dep := range store.Dependencies() {
		add(ManifestEntry{
			Path:   dep.FilePath,
			Kind:   KindDependency,
			Reason: fmt.Sprintf("%s (%s) from %s", dep.ClassName, dep.RefType, dep.ReferencedBy),
		})
	}
	includes := store.Includes()
	for _, i := range store.CheckedIncludes() {
		inc := includes[i]
		if !inc.IsResolved() {
			continue
		}
		add(ManifestEntry{
			Path:   inc.Resolved,
			Kind:   KindInclude,
			Reason: fmt.Sprintf("%s from %s", inc.Type, inc.SourceFile),
		})
	}
	return m
}

// ParseManifestTemplate parses text with the sprig function map
func ParseManifestTemplate(text string) (*template.Template, error) {
	tmpl, err := template.New("manifest").Funcs(sprig.TxtFuncMap()).Parse(text)
	if err != nil {
		return nil, fmt.Errorf("failed to parse manifest template: %w", err)
	}
	return tmpl, nil
}

// RenderManifest executes tmpl against m. A nil template uses the default.
func RenderManifest(tmpl *template.Template, m Manifest) (string, error) {
	if tmpl == nil {
		var err error
		tmpl, err = ParseManifestTemplate(DefaultManifestTemplate)
		if err != nil {
			return "", err
		}
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, m); err != nil {
		return "", fmt.Errorf("failed to render manifest: %w", err)
	}
	return buf.String(), nil
}
