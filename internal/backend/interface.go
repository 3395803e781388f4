package backend

import (
	"context"

	"github.com/jakoblorz/go-depextract/internal/models"
)

// Client is the set of collaborator operations the front end relies on:
// scanning a project, analyzing a selection, copying files, picking a
// directory and persisting settings.
type Client interface {
	Copier

	Scan(ctx context.Context, req ScanRequest) (*ScanResult, error)
	Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error)

	// Browse asks the collaborator for a directory. An empty path means the
	// user cancelled.
	Browse(ctx context.Context) (string, error)

	GetSettings(ctx context.Context) (*Settings, error)
	SaveSettings(ctx context.Context, mappings []models.PrefixMapping) error
}

// Copier copies project files into an output directory
type Copier interface {
	Copy(ctx context.Context, req CopyRequest) (*CopyResult, error)
}

// ScanRequest asks the collaborator to scan and index a project
type ScanRequest struct {
	Path      string                 `json:"path"`
	Framework models.Framework       `json:"framework"`
	Mappings  []models.PrefixMapping `json:"mappings,omitempty"`
}

// ScanResult is the scanned project tree
type ScanResult struct {
	Tree      *models.TreeNode `json:"tree"`
	FileCount int              `json:"fileCount"`
	Indexed   int              `json:"indexed"`
}

// AnalyzeRequest asks for the dependencies of the selected files
type AnalyzeRequest struct {
	Files         []string `json:"files"`
	ParseIncludes bool     `json:"parseIncludes"`
}

// AnalyzeResult holds the dependencies and include references of a selection
type AnalyzeResult struct {
	Dependencies []models.DependencyRecord `json:"dependencies"`
	Includes     []models.IncludeRecord    `json:"includes"`
}

// CopyRequest asks for files to be copied into OutputDir
type CopyRequest struct {
	Files     []string `json:"files"`
	OutputDir string   `json:"outputDir"`
}

// CopyResult lists what was copied and the per-file failures
type CopyResult struct {
	Copied []string `json:"copied"`
	Errors []string `json:"errors"`
}

// Settings are the collaborator's current scan settings
type Settings struct {
	Framework models.Framework       `json:"framework"`
	Mappings  []models.PrefixMapping `json:"mappings"`
}
