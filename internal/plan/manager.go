package plan

import (
	"bufio"
	"bytes"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/adrg/frontmatter"
	gonanoid "github.com/matoous/go-nanoid/v2"
	"go.yaml.in/yaml/v3"

	"github.com/jakoblorz/go-depextract/internal/filesystem"
)

const idAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

// Manager reads and writes plan files
type Manager struct {
	fs  filesystem.FileSystem
	dir string
}

// NewManager creates a plan manager storing plans in dir
func NewManager(fs filesystem.FileSystem, dir string) *Manager {
	return &Manager{
		fs:  fs,
		dir: dir,
	}
}

// GenerateID generates a short unique plan id like "plan-x3k9q2ab"
func (m *Manager) GenerateID() (string, error) {
	id, err := gonanoid.Generate(idAlphabet, 8)
	if err != nil {
		return "", fmt.Errorf("failed to generate ID: %w", err)
	}
	return "plan-" + id, nil
}

// Read reads a single plan file
func (m *Manager) Read(filePath string) (*Plan, error) {
	data, err := m.fs.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	return m.Parse(filePath, data)
}

// filesHeading separates the free-form notes from the file list
const filesHeading = "## Files"

// Parse parses a plan from bytes. The front matter holds the options, the
// body lists one selected file per "- " line below the files heading. Text
// above the heading is kept as notes, list lines included. Plans without
// the heading take every "- " line as a file.
func (m *Manager) Parse(filePath string, data []byte) (*Plan, error) {
	var p Plan
	rest, err := frontmatter.Parse(bytes.NewReader(data), &p)
	if err != nil {
		return nil, fmt.Errorf("failed to parse frontmatter: %w", err)
	}

	var lines []string
	scanner := bufio.NewScanner(bytes.NewReader(rest))
	for scanner.Scan() {
		lines = append(lines, strings.TrimSpace(scanner.Text()))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read plan body: %w", err)
	}

	start := 0
	for i := len(lines) - 1; i >= 0; i-- {
		if lines[i] == filesHeading {
			start = i + 1
			break
		}
	}

	var notes []string
	for i, line := range lines {
		switch {
		case line == "" || i == start-1:
		case i >= start && strings.HasPrefix(line, "- "):
			if f := strings.TrimSpace(strings.TrimPrefix(line, "- ")); f != "" {
				p.Files = append(p.Files, f)
			}
		default:
			notes = append(notes, line)
		}
	}
	p.Notes = strings.Join(notes, "\n")

	if err := p.Validate(); err != nil {
		return nil, err
	}

	p.ID = strings.TrimSuffix(filepath.Base(filePath), ".md")
	p.FilePath = filePath
	return &p, nil
}

// Render returns the file content for p
func (m *Manager) Render(p *Plan) ([]byte, error) {
	matter, err := yaml.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("failed to encode frontmatter: %w", err)
	}

	var buf bytes.Buffer
	buf.WriteString("---\n")
	buf.Write(matter)
	buf.WriteString("---\n\n")
	if p.Notes != "" {
		buf.WriteString(p.Notes)
		buf.WriteString("\n\n")
	}
	buf.WriteString(filesHeading)
	buf.WriteString("\n\n")
	for _, f := range p.Files {
		buf.WriteString("- ")
		buf.WriteString(f)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// Write stores p as <dir>/<id>.md, generating an id when p has none
func (m *Manager) Write(p *Plan) error {
	if err := p.Validate(); err != nil {
		return err
	}

	if p.ID == "" {
		id, err := m.GenerateID()
		if err != nil {
			return err
		}
		p.ID = id
	}

	if !m.fs.Exists(m.dir) {
		if err := m.fs.MkdirAll(m.dir, 0755); err != nil {
			return fmt.Errorf("failed to create plan directory: %w", err)
		}
	}

	data, err := m.Render(p)
	if err != nil {
		return err
	}

	filePath := filepath.Join(m.dir, p.ID+".md")
	if err := m.fs.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan file: %w", err)
	}

	p.FilePath = filePath
	return nil
}
