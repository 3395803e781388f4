package backend

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/jakoblorz/go-depextract/internal/filetree"
	"github.com/jakoblorz/go-depextract/internal/models"
)

// MockClient implements Client in memory for testing
type MockClient struct {
	mu        sync.RWMutex
	projects  map[string][]string
	deps      map[string][]models.DependencyRecord
	includes  map[string][]models.IncludeRecord
	failCopy  map[string]string
	settings  Settings
	browse    string
	scanned   string
	calls     map[string]int
	lastCopy  *CopyRequest
	lastScan  *ScanRequest
	analyzeRq *AnalyzeRequest

	// Hooks for testing error scenarios
	ScanError         error
	AnalyzeError      error
	CopyError         error
	BrowseError       error
	GetSettingsError  error
	SaveSettingsError error
}

// NewMockClient creates a new MockClient with the default ZF1 settings
func NewMockClient() *MockClient {
	return &MockClient{
		projects: make(map[string][]string),
		deps:     make(map[string][]models.DependencyRecord),
		includes: make(map[string][]models.IncludeRecord),
		failCopy: make(map[string]string),
		calls:    make(map[string]int),
		settings: Settings{
			Framework: models.DefaultFramework,
			Mappings:  models.DefaultZF1Mappings(),
		},
	}
}

// AddProject registers a project whose scan returns files
func (m *MockClient) AddProject(path string, files ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.projects[path] = append([]string(nil), files...)
}

// AddDependency records that analyzing from yields dep
func (m *MockClient) AddDependency(from string, dep models.DependencyRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if dep.ReferencedBy == "" {
		dep.ReferencedBy = from
	}
	m.deps[from] = append(m.deps[from], dep)
}

// AddInclude records an include statement found in source
func (m *MockClient) AddInclude(source string, inc models.IncludeRecord) {
	m.mu.Lock()
	defer m.mu.Unlock()

	inc.SourceFile = source
	m.includes[source] = append(m.includes[source], inc)
}

// FailCopyOf makes Copy report a per-file error for path
func (m *MockClient) FailCopyOf(path, reason string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.failCopy[path] = reason
}

// SetBrowseResult sets the directory Browse returns; "" simulates cancel
func (m *MockClient) SetBrowseResult(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.browse = path
}

// Calls returns how often op was invoked
func (m *MockClient) Calls(op string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.calls[op]
}

// TotalCalls returns the number of calls across all operations
func (m *MockClient) TotalCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	n := 0
	for _, c := range m.calls {
		n += c
	}
	return n
}

// LastCopy returns the most recent copy request
func (m *MockClient) LastCopy() *CopyRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.lastCopy
}

// LastScan returns the most recent scan request
func (m *MockClient) LastScan() *ScanRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.lastScan
}

// LastAnalyze returns the most recent analyze request
func (m *MockClient) LastAnalyze() *AnalyzeRequest {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.analyzeRq
}

func (m *MockClient) record(op string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.calls[op]++
}

func (m *MockClient) Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	m.record("scan")
	if m.ScanError != nil {
		return nil, models.NewExternalCallError("scan", m.ScanError)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastScan = &req
	files, exists := m.projects[req.Path]
	if !exists {
		return nil, models.NewExternalCallError("scan", fmt.Errorf("scan failed: %s not found", req.Path))
	}
	m.scanned = req.Path

	indexed := 0
	for _, deps := range m.deps {
		indexed += len(deps)
	}

	return &ScanResult{
		Tree:      filetree.Build(files),
		FileCount: len(files),
		Indexed:   indexed,
	}, nil
}

func (m *MockClient) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	m.record("analyze")
	if m.AnalyzeError != nil {
		return nil, models.NewExternalCallError("analyze", m.AnalyzeError)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.analyzeRq = &req
	if m.scanned == "" {
		return nil, models.NewExternalCallError("analyze", fmt.Errorf("project not scanned yet"))
	}
	if len(req.Files) == 0 {
		return nil, models.NewExternalCallError("analyze", fmt.Errorf("no files selected"))
	}

	res := &AnalyzeResult{
		Dependencies: []models.DependencyRecord{},
		Includes:     []models.IncludeRecord{},
	}
	seen := make(map[string]bool)
	for _, f := range req.Files {
		seen[f] = true
	}
	for _, f := range req.Files {
		for _, dep := range m.deps[f] {
			if seen[dep.FilePath] {
				continue
			}
			seen[dep.FilePath] = true
			res.Dependencies = append(res.Dependencies, dep)
		}
		if req.ParseIncludes {
			res.Includes = append(res.Includes, m.includes[f]...)
		}
	}
	return res, nil
}

func (m *MockClient) Copy(ctx context.Context, req CopyRequest) (*CopyResult, error) {
	m.record("copy")
	if m.CopyError != nil {
		return nil, models.NewExternalCallError("copy", m.CopyError)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.lastCopy = &CopyRequest{
		Files:     append([]string(nil), req.Files...),
		OutputDir: req.OutputDir,
	}
	if req.OutputDir == "" {
		return nil, models.NewExternalCallError("copy", fmt.Errorf("output directory is required"))
	}
	if len(req.Files) == 0 {
		return nil, models.NewExternalCallError("copy", fmt.Errorf("no files to copy"))
	}

	res := &CopyResult{Copied: []string{}, Errors: []string{}}
	for _, f := range req.Files {
		if reason, failed := m.failCopy[f]; failed {
			res.Errors = append(res.Errors, fmt.Sprintf("%s: %s", f, reason))
			continue
		}
		res.Copied = append(res.Copied, f)
	}
	return res, nil
}

func (m *MockClient) Browse(ctx context.Context) (string, error) {
	m.record("browse")
	if m.BrowseError != nil {
		return "", models.NewExternalCallError("browse", m.BrowseError)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.browse, nil
}

func (m *MockClient) GetSettings(ctx context.Context) (*Settings, error) {
	m.record("settings")
	if m.GetSettingsError != nil {
		return nil, models.NewExternalCallError("settings", m.GetSettingsError)
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	return &Settings{
		Framework: m.settings.Framework,
		Mappings:  append([]models.PrefixMapping(nil), m.settings.Mappings...),
	}, nil
}

func (m *MockClient) SaveSettings(ctx context.Context, mappings []models.PrefixMapping) error {
	m.record("settings")
	if m.SaveSettingsError != nil {
		return models.NewExternalCallError("settings", m.SaveSettingsError)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.settings.Mappings = append([]models.PrefixMapping(nil), mappings...)
	return nil
}

// Projects returns the registered project paths in sorted order
func (m *MockClient) Projects() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.projects))
	for p := range m.projects {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}
