package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"
	"golang.org/x/time/rate"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
	"github.com/custodia-labs/docdeck-cli/internal/core/ports/driven"
	"github.com/custodia-labs/docdeck-cli/internal/logger"
)

// Ensure Client implements the interfaces.
var (
	_ driven.DocumentStore    = (*Client)(nil)
	_ driven.LanguageStore    = (*Client)(nil)
	_ driven.ContentStore     = (*Client)(nil)
	_ driven.DocumentImporter = (*Client)(nil)
)

const (
	// DefaultTimeout is the default HTTP request timeout. Downloads are
	// not bounded by it; they follow the caller's context.
	DefaultTimeout = 60 * time.Second

	// HeaderRequestID carries a per-request id for server-side tracing.
	HeaderRequestID = "X-Request-ID"
)

// Config configures a Client.
type Config struct {
	// BaseURL is the API root, e.g. http://localhost:8000/api.
	BaseURL string

	// Token is sent as a bearer token when set.
	Token string

	// RatePerSecond throttles outgoing requests. Zero disables throttling.
	RatePerSecond int

	// UserAgent is sent with every request.
	UserAgent string

	// HTTPClient is the base client. Defaults to http.DefaultClient.
	HTTPClient *http.Client
}

// Client is the REST implementation of driven.DocumentStore.
type Client struct {
	base      *url.URL
	http      *http.Client
	download  *http.Client
	limiter   *rate.Limiter
	userAgent string
}

// NewClient creates a new API client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("%w: base URL required", domain.ErrInvalidInput)
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/") + "/")
	if err != nil {
		return nil, fmt.Errorf("parsing base URL: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("%w: base URL must be http or https", domain.ErrInvalidInput)
	}

	hc := cfg.HTTPClient
	if hc == nil {
		hc = http.DefaultClient
	}
	if cfg.Token != "" {
		ctx := context.WithValue(context.Background(), oauth2.HTTPClient, hc)
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token, TokenType: "Bearer"})
		hc = oauth2.NewClient(ctx, ts)
	}

	api := *hc
	api.Timeout = DefaultTimeout
	dl := *hc
	dl.Timeout = 0

	c := &Client{
		base:      base,
		http:      &api,
		download:  &dl,
		userAgent: cfg.UserAgent,
	}
	if cfg.RatePerSecond > 0 {
		c.limiter = rate.NewLimiter(rate.Limit(cfg.RatePerSecond), cfg.RatePerSecond)
	}
	return c, nil
}

// FetchDocuments lists the owner's documents.
func (c *Client) FetchDocuments(ctx context.Context, ownerID string) ([]domain.Document, error) {
	var wire []wireDocument
	if err := c.doJSON(ctx, http.MethodPost, "documents", ownerRequest{Auth0ID: ownerID}, &wire); err != nil {
		return nil, err
	}
	docs := make([]domain.Document, 0, len(wire))
	for _, w := range wire {
		docs = append(docs, w.toDomain(ownerID))
	}
	return docs, nil
}

// DeleteDocuments deletes the documents in one request.
func (c *Client) DeleteDocuments(ctx context.Context, docs []domain.Document) error {
	req := deleteRequest{Documents: make([]wireDocument, 0, len(docs))}
	for _, d := range docs {
		req.Documents = append(req.Documents, fromDomain(d))
	}
	return c.doJSON(ctx, http.MethodDelete, "documents", req, nil)
}

// Reload asks the server to re-process the owner's files.
func (c *Client) Reload(ctx context.Context, ownerID string) error {
	return c.doJSON(ctx, http.MethodPost, "files/reload", ownerRequest{Auth0ID: ownerID}, nil)
}

// SetLanguage changes the owner's language.
func (c *Client) SetLanguage(ctx context.Context, update domain.LanguageUpdate) error {
	req := languageRequest{
		Language: languageKey{Key: update.Language.String()},
		Auth0ID:  update.OwnerID,
	}
	return c.doJSON(ctx, http.MethodPost, "language", req, nil)
}

// GetLanguage reads the owner's language.
func (c *Client) GetLanguage(ctx context.Context, ownerID string) (domain.Language, error) {
	var lang string
	path := "language?" + url.Values{"auth0_id": {ownerID}}.Encode()
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &lang); err != nil {
		return "", err
	}
	if lang == "" {
		return "", domain.ErrNotFound
	}
	return domain.Language(lang), nil
}

// Download streams a document. The caller must close the reader.
func (c *Client) Download(ctx context.Context, _, filename string) (io.ReadCloser, int64, error) {
	path := "documents/download/" + url.PathEscape(filename) + "/"
	req, err := c.newRequest(ctx, http.MethodGet, path, nil, "")
	if err != nil {
		return nil, 0, err
	}
	resp, err := c.send(c.download, req)
	if err != nil {
		return nil, 0, err
	}
	return resp.Body, resp.ContentLength, nil
}

// Put uploads a document as multipart form data.
func (c *Client) Put(ctx context.Context, doc domain.Document, content io.Reader) error {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	done := make(chan struct{})
	go func() {
		defer close(done)
		err := mw.WriteField("user", doc.OwnerID)
		if err == nil {
			var part io.Writer
			part, err = mw.CreateFormFile("files", doc.Filename)
			if err == nil {
				_, err = io.Copy(part, content)
			}
		}
		if err == nil {
			err = mw.Close()
		}
		pw.CloseWithError(err)
	}()

	req, err := c.newRequest(ctx, http.MethodPost, "documents/upload", pr, mw.FormDataContentType())
	if err != nil {
		pr.CloseWithError(err)
		<-done
		return err
	}
	resp, err := c.send(c.download, req)
	if err != nil {
		// The transport may never have read the body.
		pr.CloseWithError(err)
		<-done
		return err
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)
	return nil
}

// doJSON sends body as JSON and decodes the response into out when non-nil.
func (c *Client) doJSON(ctx context.Context, method, path string, body, out any) error {
	var r io.Reader
	contentType := ""
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding request: %w", err)
		}
		r = bytes.NewReader(data)
		contentType = "application/json"
	}

	req, err := c.newRequest(ctx, method, path, r, contentType)
	if err != nil {
		return err
	}
	resp, err := c.send(c.http, req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s: %w", method, path, err)
	}
	return nil
}

func (c *Client) newRequest(ctx context.Context, method, path string, body io.Reader, contentType string) (*http.Request, error) {
	u, err := c.base.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("building URL: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set(HeaderRequestID, uuid.NewString())
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}
	return req, nil
}

// send waits for the limiter, performs the request and turns non-2xx
// responses into *APIError. On success the caller owns resp.Body.
func (c *Client) send(hc *http.Client, req *http.Request) (*http.Response, error) {
	if c.limiter != nil {
		if err := c.limiter.Wait(req.Context()); err != nil {
			return nil, err
		}
	}

	start := time.Now()
	resp, err := hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.URL.Path, err)
	}
	logger.Debug("%s %s -> %d (%s)", req.Method, req.URL.Path, resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}

	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return nil, &APIError{
		Method:     req.Method,
		Path:       req.URL.Path,
		StatusCode: resp.StatusCode,
		Body:       strings.TrimSpace(string(body)),
		RequestID:  req.Header.Get(HeaderRequestID),
	}
}
