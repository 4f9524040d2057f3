// Package apiclient is the HTTP client of the document API that performs
// Word operations (batch find/replace, merge, content extraction) and Excel
// operations (find/replace within a sheet range, merge).
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestIDHeader carries a per-request id for correlating server logs.
const RequestIDHeader = "X-Request-ID"

// Defaults for NewClient
const (
	DefaultTimeout    = 60 * time.Second
	DefaultRetries    = 2
	DefaultRetryDelay = 500 * time.Millisecond
)

// Extraction types accepted by Extract.
const (
	ExtractText  ExtractType = "text"
	ExtractTable ExtractType = "table"
)

// ErrNoDocuments is returned when an upload call gets no files.
var ErrNoDocuments = errors.New("no documents to upload")

// ExtractType selects what Extract returns.
type ExtractType string

// File is one uploaded document.
type File struct {
	Name string
	Data []byte
}

// ReadFile loads a document from disk for upload.
func ReadFile(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return File{Name: filepath.Base(path), Data: data}, nil
}

// Replacement is one find/replace pair.
type Replacement struct {
	FindText    string `json:"find_text"`
	ReplaceText string `json:"replace_text"`
}

// FindReplaceRequest is the JSON "request" field of a batch find/replace.
type FindReplaceRequest struct {
	Replacements []Replacement `json:"replacements"`
	UseRegex     bool          `json:"use_regex"`
	SheetRange   string        `json:"sheet_range,omitempty"` // Excel only
}

// ExtractResult is the response of Extract. Content holds a list of
// paragraphs for text extraction and a list of tables for table extraction.
type ExtractResult struct {
	Content json.RawMessage `json:"extracted_content"`
}

// Paragraphs decodes text extraction content.
func (r *ExtractResult) Paragraphs() ([]string, error) {
	var out []string
	if err := json.Unmarshal(r.Content, &out); err != nil {
		return nil, fmt.Errorf("decode paragraphs: %w", err)
	}
	return out, nil
}

// Tables decodes table extraction content as rows of cells.
func (r *ExtractResult) Tables() ([][][]string, error) {
	var out [][][]string
	if err := json.Unmarshal(r.Content, &out); err != nil {
		return nil, fmt.Errorf("decode tables: %w", err)
	}
	return out, nil
}

// Client talks to the document API.
type Client struct {
	BaseURL    string
	HTTP       *http.Client
	Retries    int           // Extra attempts for transport errors and temporary statuses
	RetryDelay time.Duration // Delay before the first retry, doubled for each further one
}

// NewClient creates a Client for baseURL. A zero timeout uses DefaultTimeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTP:       &http.Client{Timeout: timeout},
		Retries:    DefaultRetries,
		RetryDelay: DefaultRetryDelay,
	}
}

// Status returns the service banner of GET /api/status.
func (c *Client) Status(ctx context.Context) (string, error) {
	body, err := c.do(ctx, http.MethodGet, "/api/status", "", nil)
	if err != nil {
		return "", err
	}
	var payload struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decode status: %w", err)
	}
	return payload.Message, nil
}

// FindReplace runs one find/replace over a single document and returns the
// modified document.
func (c *Client) FindReplace(ctx context.Context, file File, r Replacement, useRegex bool) ([]byte, error) {
	return c.upload(ctx, "/api/word/find-replace", "file", []File{file}, map[string]string{
		"find_text":    r.FindText,
		"replace_text": r.ReplaceText,
		"use_regex":    fmt.Sprint(useRegex),
	})
}

// BatchFindReplace applies req to every file and returns a zip archive of
// the modified documents.
func (c *Client) BatchFindReplace(ctx context.Context, files []File, req FindReplaceRequest) ([]byte, error) {
	return c.batchFindReplace(ctx, "/api/word/batch-find-replace", files, req)
}

func (c *Client) batchFindReplace(ctx context.Context, path string, files []File, req FindReplaceRequest) ([]byte, error) {
	if len(req.Replacements) == 0 {
		return nil, errors.New("at least one replacement is required")
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}
	return c.upload(ctx, path, "files", files, map[string]string{
		"request": string(payload),
	})
}

// Merge concatenates files, in order, into one document.
func (c *Client) Merge(ctx context.Context, files []File) ([]byte, error) {
	return c.upload(ctx, "/api/word/merge", "files", files, nil)
}

// Extract pulls text paragraphs or tables out of files.
func (c *Client) Extract(ctx context.Context, files []File, kind ExtractType) (*ExtractResult, error) {
	if kind != ExtractText && kind != ExtractTable {
		return nil, fmt.Errorf("unknown extract type %q", kind)
	}
	body, err := c.upload(ctx, "/api/word/extract", "files", files, map[string]string{
		"extract_type": string(kind),
	})
	if err != nil {
		return nil, err
	}
	var res ExtractResult
	if err := json.Unmarshal(body, &res); err != nil {
		return nil, fmt.Errorf("decode extract result: %w", err)
	}
	return &res, nil
}

func (c *Client) upload(ctx context.Context, path, field string, files []File, fields map[string]string) ([]byte, error) {
	if len(files) == 0 {
		return nil, ErrNoDocuments
	}

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, f := range files {
		part, err := mw.CreateFormFile(field, f.Name)
		if err != nil {
			return nil, fmt.Errorf("create form file: %w", err)
		}
		if _, err := part.Write(f.Data); err != nil {
			return nil, fmt.Errorf("write form file: %w", err)
		}
	}
	for k, v := range fields {
		if err := mw.WriteField(k, v); err != nil {
			return nil, fmt.Errorf("write field %s: %w", k, err)
		}
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("close multipart body: %w", err)
	}

	return c.do(ctx, http.MethodPost, path, mw.FormDataContentType(), buf.Bytes())
}

// do sends the request, retrying transport failures and temporary statuses.
// The body is buffered so every attempt resends the same bytes.
func (c *Client) do(ctx context.Context, method, path, contentType string, body []byte) ([]byte, error) {
	endpoint, err := url.JoinPath(c.BaseURL, path)
	if err != nil {
		return nil, fmt.Errorf("invalid base URL %q: %w", c.BaseURL, err)
	}
	hc := c.HTTP
	if hc == nil {
		hc = http.DefaultClient
	}
	requestID := uuid.NewString()

	delay := c.RetryDelay
	var lastErr error
	for attempt := 0; attempt <= c.Retries; attempt++ {
		if attempt > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		var reader io.Reader
		if body != nil {
			reader = bytes.NewReader(body)
		}
		req, err := http.NewRequestWithContext(ctx, method, endpoint, reader)
		if err != nil {
			return nil, err
		}
		if contentType != "" {
			req.Header.Set("Content-Type", contentType)
		}
		req.Header.Set(RequestIDHeader, requestID)

		data, err := c.roundTrip(hc, req)
		if err == nil {
			return data, nil
		}
		lastErr = err

		var apiErr *APIError
		if errors.As(err, &apiErr) && !apiErr.Temporary() {
			return nil, err
		}
		if ctx.Err() != nil {
			return nil, err
		}
	}
	return nil, lastErr
}

func (c *Client) roundTrip(hc *http.Client, req *http.Request) ([]byte, error) {
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, newAPIError(resp, data)
	}
	return data, nil
}
