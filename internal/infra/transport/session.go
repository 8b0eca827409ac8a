// Where: internal/infra/transport/session.go
// What: Authenticated HTTP session for backend adapters.
// Why: Adapters supply only path, query, body, and content type.
package transport

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"sort"
	"strings"

	"github.com/poruru-code/fieldsync/internal/domain/field"
)

const (
	ContentTypeJSON = "application/json"
	ContentTypeXML  = "application/xml"

	maxDebugBody = 4096
)

// Session sends authenticated requests relative to a base address.
type Session struct {
	baseURL string
	auth    Authenticator
	client  *http.Client
	debug   *log.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Session) {
		if client != nil {
			s.client = client
		}
	}
}

// WithDebugLogger traces every request and response to logger.
func WithDebugLogger(logger *log.Logger) Option {
	return func(s *Session) {
		s.debug = logger
	}
}

// NewSession validates baseURL and returns a Session.
func NewSession(baseURL string, auth Authenticator, opts ...Option) (*Session, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if parsed.Scheme == "" || parsed.Host == "" {
		return nil, fmt.Errorf("base url %q must include scheme and host", baseURL)
	}
	s := &Session{
		baseURL: strings.TrimRight(parsed.String(), "/"),
		auth:    auth,
		client:  http.DefaultClient,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// BaseURL returns the normalized base address.
func (s *Session) BaseURL() string {
	return s.baseURL
}

// Request describes one backend call.
type Request struct {
	Method      string
	Path        string
	Query       url.Values
	Accept      string
	ContentType string
	Body        []byte
}

// Response is a successful backend reply.
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// Do sends req. Any non-2xx status is returned as *field.RemoteError
// carrying the status code and response body.
func (s *Session) Do(ctx context.Context, req Request) (Response, error) {
	target := s.URL(req.Path, req.Query)

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, target, body)
	if err != nil {
		return Response{}, fmt.Errorf("build %s %s: %w", req.Method, target, err)
	}
	if req.Accept != "" {
		httpReq.Header.Set("Accept", req.Accept)
	}
	if req.ContentType != "" {
		httpReq.Header.Set("Content-Type", req.ContentType)
	}
	if s.auth != nil {
		s.auth.Apply(httpReq)
	}
	s.traceRequest(httpReq, req.Body)

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return Response{}, fmt.Errorf("%s %s: %w", req.Method, target, err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return Response{}, fmt.Errorf("read %s %s response: %w", req.Method, target, err)
	}
	s.traceResponse(resp, payload)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return Response{}, &field.RemoteError{
			Method:     req.Method,
			URL:        target,
			StatusCode: resp.StatusCode,
			Body:       string(payload),
		}
	}
	return Response{StatusCode: resp.StatusCode, Header: resp.Header, Body: payload}, nil
}

// Get fetches path as JSON.
func (s *Session) Get(ctx context.Context, path string, query url.Values) (Response, error) {
	return s.Do(ctx, Request{Method: http.MethodGet, Path: path, Query: query, Accept: ContentTypeJSON})
}

// Patch sends a partial update.
func (s *Session) Patch(ctx context.Context, path, contentType string, body []byte) (Response, error) {
	return s.Do(ctx, Request{Method: http.MethodPatch, Path: path, Accept: ContentTypeJSON, ContentType: contentType, Body: body})
}

// Put replaces the resource at path.
func (s *Session) Put(ctx context.Context, path, contentType string, body []byte) (Response, error) {
	return s.Do(ctx, Request{Method: http.MethodPut, Path: path, Accept: ContentTypeJSON, ContentType: contentType, Body: body})
}

// URL joins path and query onto the base address.
func (s *Session) URL(path string, query url.Values) string {
	target := s.baseURL + "/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		target += "?" + query.Encode()
	}
	return target
}

func (s *Session) traceRequest(req *http.Request, body []byte) {
	if s.debug == nil {
		return
	}
	s.debug.Printf("> %s %s", req.Method, req.URL.String())
	s.traceHeaders(">", req.Header)
	s.traceBody(">", body)
}

func (s *Session) traceResponse(resp *http.Response, body []byte) {
	if s.debug == nil {
		return
	}
	s.debug.Printf("< %s", resp.Status)
	s.traceHeaders("<", resp.Header)
	s.traceBody("<", body)
}

func (s *Session) traceHeaders(prefix string, header http.Header) {
	names := make([]string, 0, len(header))
	for name := range header {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		value := strings.Join(header.Values(name), ", ")
		if _, ok := redactedHeaders[http.CanonicalHeaderKey(name)]; ok {
			value = "[redacted]"
		}
		s.debug.Printf("%s %s: %s", prefix, name, value)
	}
}

func (s *Session) traceBody(prefix string, body []byte) {
	if len(body) == 0 {
		return
	}
	if len(body) > maxDebugBody {
		s.debug.Printf("%s %s... (%d bytes)", prefix, body[:maxDebugBody], len(body))
		return
	}
	s.debug.Printf("%s %s", prefix, body)
}
