package models

// DependencyRecord is a file the analyzer found to be required by a selected
// file. Dependencies are always exported and cannot be toggled.
type DependencyRecord struct {
	FilePath     string `json:"filePath"`
	ClassName    string `json:"className"`
	RefType      string `json:"refType"`
	ReferencedBy string `json:"referencedBy"`
}

// IncludeRecord is a textual include/require statement. Resolved is empty
// when the analyzer could not map RawPath to a project file.
type IncludeRecord struct {
	Type       string `json:"type"`
	RawPath    string `json:"rawPath"`
	Resolved   string `json:"resolved,omitempty"`
	Line       int    `json:"line,omitempty"`
	SourceFile string `json:"sourceFile"`
}

// IsResolved reports whether the include maps to a real project path
func (r IncludeRecord) IsResolved() bool {
	return r.Resolved != ""
}

// DisplayPath is the resolved path when known, the raw expression otherwise
func (r IncludeRecord) DisplayPath() string {
	if r.Resolved != "" {
		return r.Resolved
	}
	return r.RawPath
}
