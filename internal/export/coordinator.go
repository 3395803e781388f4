package export

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/jakoblorz/go-depextract/internal/backend"
	"github.com/jakoblorz/go-depextract/internal/models"
	"github.com/jakoblorz/go-depextract/internal/selection"
)

// Outcome is the result of an export that reached the copier. A non-empty
// Errors list is a partial success, not a failure.
type Outcome struct {
	Destination string
	Requested   int
	Copied      []string
	Errors      []string
}

// Partial reports whether some files failed to copy
func (o *Outcome) Partial() bool {
	return len(o.Errors) > 0
}

// Summary renders the outcome as a status line
func (o *Outcome) Summary() string {
	msg := fmt.Sprintf("Copied %d files to %s", len(o.Copied), o.Destination)
	if len(o.Errors) > 0 {
		msg += fmt.Sprintf(" (%d errors)", len(o.Errors))
	}
	return msg
}

// Coordinator turns the current selection into a copy request
type Coordinator struct {
	store  *selection.Store
	copier backend.Copier
	logger *slog.Logger
}

// NewCoordinator creates a coordinator reading from store and writing
// through copier
func NewCoordinator(store *selection.Store, copier backend.Copier, logger *slog.Logger) *Coordinator {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Coordinator{store: store, copier: copier, logger: logger}
}

// ComputeExportFiles returns the de-duplicated set of files an export
// would copy right now
func (c *Coordinator) ComputeExportFiles() []string {
	return c.store.ResolvedExportSet()
}

// Request is a validated export, detached from the store so it can run
// off the event loop.
type Request struct {
	Destination string
	Files       []string
}

// Prepare checks the local preconditions of an export and snapshots the
// export set. It never calls out.
func (c *Coordinator) Prepare(dest string) (*Request, error) {
	dest = strings.TrimSpace(dest)
	if dest == "" {
		return nil, models.NewValidationError("export", "Select a project directory first")
	}
	files := c.ComputeExportFiles()
	if len(files) == 0 {
		return nil, models.NewValidationError("export", "No files to copy")
	}
	return &Request{Destination: dest, Files: files}, nil
}

// Run sends a prepared request to the copier. It does not read or modify
// the store.
func (c *Coordinator) Run(ctx context.Context, req *Request) (*Outcome, error) {
	c.logger.Info("exporting files", "count", len(req.Files), "destination", req.Destination)

	res, err := c.copier.Copy(ctx, backend.CopyRequest{Files: req.Files, OutputDir: req.Destination})
	if err != nil {
		return nil, fmt.Errorf("failed to copy files: %w", err)
	}

	outcome := &Outcome{
		Destination: req.Destination,
		Requested:   len(req.Files),
		Copied:      res.Copied,
		Errors:      res.Errors,
	}
	if outcome.Partial() {
		c.logger.Warn("export finished with errors", "copied", len(outcome.Copied), "errors", len(outcome.Errors))
	}
	return outcome, nil
}

// Export copies the current export set to dest. Validation failures never
// reach the copier. The store is not modified.
func (c *Coordinator) Export(ctx context.Context, dest string) (*Outcome, error) {
	req, err := c.Prepare(dest)
	if err != nil {
		return nil, err
	}
	return c.Run(ctx, req)
}
