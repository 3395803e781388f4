package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"

	"github.com/jakoblorz/go-depextract/internal/models"
)

const (
	requestIDAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
	requestIDLength   = 10

	// RequestIDHeader carries the per-call id, logged on both sides
	RequestIDHeader = "X-Request-ID"

	maxResponseBytes = 64 << 20
)

var (
	ErrEmptyServerURL = errors.New("server URL cannot be empty")
)

// HTTPClient implements Client against the extractor's JSON API
type HTTPClient struct {
	base   *url.URL
	http   *http.Client
	logger *slog.Logger
}

// HTTPOption customizes an HTTPClient
type HTTPOption func(*HTTPClient)

// WithHTTPClient replaces the underlying http.Client
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(h *HTTPClient) {
		h.http = c
	}
}

// WithLogger sets the logger used for per-request logging
func WithLogger(l *slog.Logger) HTTPOption {
	return func(h *HTTPClient) {
		h.logger = l
	}
}

// NewHTTPClient creates a client for the server at serverURL
func NewHTTPClient(serverURL string, opts ...HTTPOption) (*HTTPClient, error) {
	if strings.TrimSpace(serverURL) == "" {
		return nil, ErrEmptyServerURL
	}
	base, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse server URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("unsupported server URL scheme: %q", base.Scheme)
	}

	c := &HTTPClient{
		base:   base,
		http:   &http.Client{},
		logger: slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

func (c *HTTPClient) Scan(ctx context.Context, req ScanRequest) (*ScanResult, error) {
	var res ScanResult
	if err := c.do(ctx, "scan", http.MethodPost, req, &res); err != nil {
		return nil, err
	}
	if res.Tree == nil {
		return nil, models.NewExternalCallError("scan", errors.New("response has no tree"))
	}
	return &res, nil
}

func (c *HTTPClient) Analyze(ctx context.Context, req AnalyzeRequest) (*AnalyzeResult, error) {
	var res AnalyzeResult
	if err := c.do(ctx, "analyze", http.MethodPost, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Copy(ctx context.Context, req CopyRequest) (*CopyResult, error) {
	var res CopyResult
	if err := c.do(ctx, "copy", http.MethodPost, req, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) Browse(ctx context.Context) (string, error) {
	var res struct {
		Path string `json:"path"`
	}
	if err := c.do(ctx, "browse", http.MethodPost, struct{}{}, &res); err != nil {
		return "", err
	}
	return res.Path, nil
}

func (c *HTTPClient) GetSettings(ctx context.Context) (*Settings, error) {
	var res Settings
	if err := c.do(ctx, "settings", http.MethodGet, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) SaveSettings(ctx context.Context, mappings []models.PrefixMapping) error {
	req := struct {
		Mappings []models.PrefixMapping `json:"mappings"`
	}{Mappings: mappings}
	if req.Mappings == nil {
		req.Mappings = []models.PrefixMapping{}
	}

	var res struct {
		Status string `json:"status"`
	}
	if err := c.do(ctx, "settings", http.MethodPost, req, &res); err != nil {
		return err
	}
	if res.Status != "ok" {
		return models.NewExternalCallError("settings", fmt.Errorf("unexpected status %q", res.Status))
	}
	return nil
}

// do performs one API call. Any transport failure, non-JSON body or populated
// "error" field is returned as a models.ExternalCallError.
func (c *HTTPClient) do(ctx context.Context, op, method string, in, out any) error {
	id, err := gonanoid.Generate(requestIDAlphabet, requestIDLength)
	if err != nil {
		return fmt.Errorf("failed to generate request id: %w", err)
	}

	start := time.Now()
	err = c.roundTrip(ctx, op, method, id, in, out)
	attrs := []any{"op", op, "request_id", id, "duration", time.Since(start)}
	if err != nil {
		c.logger.Warn("backend call failed", append(attrs, "error", err)...)
		return models.NewExternalCallError(op, err)
	}
	c.logger.Debug("backend call", attrs...)
	return nil
}

func (c *HTTPClient) roundTrip(ctx context.Context, op, method, id string, in, out any) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	endpoint := c.base.JoinPath("api", op)
	req, err := http.NewRequestWithContext(ctx, method, endpoint.String(), body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(RequestIDHeader, id)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return fmt.Errorf("failed to read response: %w", err)
	}

	var apiErr struct {
		Error string `json:"error"`
	}
	if json.Unmarshal(data, &apiErr) == nil && apiErr.Error != "" {
		return errors.New(apiErr.Error)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %s", resp.Status)
	}

	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
