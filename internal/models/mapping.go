package models

import (
	"fmt"
	"strings"
)

// PrefixMapping maps a class name prefix to the directory holding its files
type PrefixMapping struct {
	Prefix string `json:"prefix" yaml:"prefix"`
	Dir    string `json:"dir" yaml:"dir"`
}

// Validate checks that both sides of the mapping are present
func (m PrefixMapping) Validate() error {
	if strings.TrimSpace(m.Prefix) == "" {
		return fmt.Errorf("mapping prefix cannot be empty")
	}
	if strings.TrimSpace(m.Dir) == "" {
		return fmt.Errorf("mapping for prefix %q has no directory", m.Prefix)
	}
	return nil
}

// String renders the mapping as "prefix=dir"
func (m PrefixMapping) String() string {
	return m.Prefix + "=" + m.Dir
}

// ParsePrefixMapping parses "Prefix=dir" (or "Prefix -> dir")
func ParsePrefixMapping(s string) (PrefixMapping, error) {
	sep := "="
	if strings.Contains(s, "->") {
		sep = "->"
	}
	prefix, dir, ok := strings.Cut(s, sep)
	if !ok {
		return PrefixMapping{}, fmt.Errorf("invalid mapping %q (expected Prefix=dir)", s)
	}
	m := PrefixMapping{Prefix: strings.TrimSpace(prefix), Dir: strings.TrimSpace(dir)}
	if err := m.Validate(); err != nil {
		return PrefixMapping{}, err
	}
	return m, nil
}

// ParsePrefixMappings parses one mapping per non-blank line
func ParsePrefixMappings(text string) ([]PrefixMapping, error) {
	var mappings []PrefixMapping
	for i, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		m, err := ParsePrefixMapping(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
		mappings = append(mappings, m)
	}
	return mappings, nil
}

// FormatPrefixMappings is the inverse of ParsePrefixMappings
func FormatPrefixMappings(mappings []PrefixMapping) string {
	lines := make([]string, 0, len(mappings))
	for _, m := range mappings {
		lines = append(lines, m.String())
	}
	return strings.Join(lines, "\n")
}

// DefaultZF1Mappings returns the mappings the analyzer ships with
func DefaultZF1Mappings() []PrefixMapping {
	return []PrefixMapping{
		{Prefix: "Parent_", Dir: "parents/"},
		{Prefix: "DbTable_", Dir: "dbs/"},
		{Prefix: "Service_", Dir: "services/"},
		{Prefix: "Model_", Dir: "models/"},
		{Prefix: "Form_", Dir: "forms/"},
	}
}
