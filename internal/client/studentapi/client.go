// Package studentapi is the HTTP client students-web uses to reach the
// record service. It is constructed once with a bound base address and
// injected into the web handlers. Calls are never retried.
package studentapi

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/aanand-mishra/students-app/internal/types"
)

// ErrNotFound matches (errors.Is) a StatusError carrying 404.
var ErrNotFound = errors.New("student not found")

// StatusError is returned for every response outside the expected
// success status. Transport failures are reported with StatusBadGateway.
type StatusError struct {
	StatusCode int
	Body       string
	Err        error
}

func (e *StatusError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("student api: status %d: %v", e.StatusCode, e.Err)
	}
	return fmt.Sprintf("student api: status %d", e.StatusCode)
}

func (e *StatusError) Unwrap() error { return e.Err }

func (e *StatusError) Is(target error) bool {
	return target == ErrNotFound && e.StatusCode == http.StatusNotFound
}

// StatusCode extracts the upstream status from err, or 0 if err did not
// come from this client.
func StatusCode(err error) int {
	var se *StatusError
	if errors.As(err, &se) {
		return se.StatusCode
	}
	return 0
}

// Config holds client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
	// Transport defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
}

// New validates the base URL and builds the client.
func New(cfg Config) (*Client, error) {
	base, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("base url %q must be absolute", cfg.BaseURL)
	}
	// resolve "api/students" below the base path, not beside it
	if !strings.HasSuffix(base.Path, "/") {
		base.Path += "/"
	}

	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL: base,
		httpClient: &http.Client{
			Timeout:   timeout,
			Transport: cfg.Transport,
		},
	}, nil
}

// List fetches all students, or only those whose name contains search
// when it is not blank.
func (c *Client) List(ctx context.Context, search string) ([]types.Student, error) {
	ref := &url.URL{Path: "api/students"}
	if strings.TrimSpace(search) != "" {
		ref.RawQuery = url.Values{"searchString": {search}}.Encode()
	}

	students := make([]types.Student, 0)
	if err := c.do(ctx, http.MethodGet, ref, nil, http.StatusOK, &students); err != nil {
		return nil, err
	}
	return students, nil
}

func (c *Client) Get(ctx context.Context, id int64) (types.Student, error) {
	var student types.Student
	err := c.do(ctx, http.MethodGet, studentRef(id), nil, http.StatusOK, &student)
	return student, err
}

func (c *Client) Create(ctx context.Context, student types.Student) (types.Student, error) {
	var created types.Student
	err := c.do(ctx, http.MethodPost, &url.URL{Path: "api/students"}, student, http.StatusCreated, &created)
	return created, err
}

func (c *Client) Update(ctx context.Context, id int64, student types.Student) error {
	return c.do(ctx, http.MethodPut, studentRef(id), student, http.StatusNoContent, nil)
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	return c.do(ctx, http.MethodDelete, studentRef(id), nil, http.StatusNoContent, nil)
}

func studentRef(id int64) *url.URL {
	return &url.URL{Path: "api/students/" + strconv.FormatInt(id, 10)}
}

func (c *Client) do(ctx context.Context, method string, ref *url.URL, in any, want int, out any) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL.ResolveReference(ref).String(), body)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &StatusError{StatusCode: http.StatusBadGateway, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != want {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return &StatusError{StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &StatusError{StatusCode: http.StatusBadGateway, Err: fmt.Errorf("decode response: %w", err)}
	}
	return nil
}
