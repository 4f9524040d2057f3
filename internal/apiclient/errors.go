package apiclient

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// APIError is returned when the document API answers with a non-2xx status.
type APIError struct {
	StatusCode int
	Detail     string
	RequestID  string
}

func (e *APIError) Error() string {
	if e == nil {
		return "API error"
	}
	detail := strings.TrimSpace(e.Detail)
	if detail == "" {
		return fmt.Sprintf("HTTP %d", e.StatusCode)
	}
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, detail)
}

// Temporary reports whether retrying the request may succeed.
func (e *APIError) Temporary() bool {
	switch e.StatusCode {
	case http.StatusTooManyRequests, http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		return true
	}
	return false
}

// maxDetailLen caps details taken from HTML error pages.
const maxDetailLen = 200

// newAPIError extracts a human readable detail from an error body: the
// "detail" field of a JSON body, the title or text of an HTML page, or the
// status text as a last resort.
func newAPIError(resp *http.Response, body []byte) *APIError {
	e := &APIError{
		StatusCode: resp.StatusCode,
		RequestID:  resp.Request.Header.Get(RequestIDHeader),
	}
	if d := jsonDetail(body); d != "" {
		e.Detail = d
	} else if d := htmlDetail(resp.Header.Get("Content-Type"), body); d != "" {
		e.Detail = d
	} else {
		e.Detail = http.StatusText(resp.StatusCode)
	}
	return e
}

func jsonDetail(body []byte) string {
	var payload struct {
		Detail json.RawMessage `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err != nil || len(payload.Detail) == 0 {
		return ""
	}
	var s string
	if err := json.Unmarshal(payload.Detail, &s); err == nil {
		return strings.TrimSpace(s)
	}
	// validation errors carry a structured detail
	return strings.TrimSpace(string(payload.Detail))
}

func htmlDetail(contentType string, body []byte) string {
	if !strings.Contains(contentType, "html") && !bytes.Contains(bytes.ToLower(body), []byte("<html")) {
		return ""
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return ""
	}
	if title := normSpace(doc.Find("title").First().Text()); title != "" {
		return truncate(title)
	}
	if h1 := normSpace(doc.Find("h1").First().Text()); h1 != "" {
		return truncate(h1)
	}
	return truncate(normSpace(doc.Find("body").Text()))
}

func normSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func truncate(s string) string {
	r := []rune(s)
	if len(r) <= maxDetailLen {
		return s
	}
	return string(r[:maxDetailLen]) + "..."
}
