package e2etest

import (
	"bytes"
	"context"
	"encoding/json"
	"github.com/PuerkitoBio/goquery"
	"github.com/kritsada/personaguess/internal/errors"
	"io"
	"log/slog"
	"net/http"
	"time"
)

type Client struct {
	client *http.Client
	url    string
}

// NewClient creates a cookie-aware HTTP client for exercising the server.
func NewClient(url string) (*Client, error) {
	jar, err := newUnsafeCookieJar()
	if err != nil {
		return nil, errors.Wrap(err, "create unsafe cookie jar")
	}
	return &Client{
		client: &http.Client{Jar: jar},
		url:    url,
	}, nil
}

// WaitForReady calls the specified endpoint until it gets a HTTP 200 Success
// response or until the context is cancelled or the 1-second timeout is reached.
func (c *Client) WaitForReady(ctx context.Context, urlPath string) error {
	timeout := 1 * time.Second
	startTime := time.Now()
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	for {
		if req, err = http.NewRequestWithContext(
			ctx,
			http.MethodGet,
			c.url+urlPath,
			nil,
		); err != nil {
			return errors.Wrap(err, "create request")
		}

		if resp, err = c.client.Do(req); err == nil {
			if resp.StatusCode == http.StatusOK {
				if err = resp.Body.Close(); err != nil {
					return errors.Wrap(err, "close response body")
				}
				return nil
			}
			if err = resp.Body.Close(); err != nil {
				return errors.Wrap(err, "close response body")
			}
		}
		select {
		case <-ctx.Done():
			return errors.Wrap(ctx.Err(), "context cancelled")
		default:
			if time.Since(startTime) >= timeout {
				return errors.New("timeout waiting for endpoint to be ready")
			}
			time.Sleep(100 * time.Millisecond) //nolint:mnd // 100ms
		}
	}
}

// Get fetches a URL and returns the response.
func (c *Client) Get(ctx context.Context, urlPath string) (*http.Response, error) {
	var (
		err  error
		req  *http.Request
		resp *http.Response
	)
	if req, err = c.newRequestWithContext(ctx, http.MethodGet, urlPath, nil); err != nil {
		return nil, errors.Wrap(err, "create request with context")
	}
	if resp, err = c.client.Do(req); err != nil {
		return nil, errors.Wrap(err, "do request")
	}
	return resp, nil
}

// GetDoc fetches a URL and returns a goquery document.
func (c *Client) GetDoc(ctx context.Context, urlPath string) (*goquery.Document, error) {
	var (
		err  error
		resp *http.Response
		doc  *goquery.Document
	)
	if resp, err = c.Get(ctx, urlPath); err != nil {
		return nil, errors.Wrap(err, "client get")
	}
	defer func() {
		_ = resp.Body.Close()
	}()
	if http.StatusOK != resp.StatusCode {
		return nil, errors.New("unexpected status code", slog.Int("status", resp.StatusCode))
	}
	if doc, err = goquery.NewDocumentFromReader(resp.Body); err != nil {
		return nil, errors.Wrap(err, "create document from reader")
	}
	return doc, nil
}

// GetJSON fetches a URL and decodes the JSON response into out. It returns
// the status code so callers can assert on error responses too.
func (c *Client) GetJSON(ctx context.Context, urlPath string, out any) (int, error) {
	resp, err := c.Get(ctx, urlPath)
	if err != nil {
		return 0, errors.Wrap(err, "client get")
	}
	return decodeJSONResponse(resp, out)
}

// PostJSON posts a JSON body to a URL and decodes the JSON response into out.
// It returns the status code so callers can assert on error responses too.
func (c *Client) PostJSON(ctx context.Context, urlPath string, body any, out any) (int, error) {
	var (
		err     error
		encoded []byte
		req     *http.Request
		resp    *http.Response
	)
	if encoded, err = json.Marshal(body); err != nil {
		return 0, errors.Wrap(err, "marshal request body")
	}
	if req, err = c.newRequestWithContext(ctx, http.MethodPost, urlPath, bytes.NewReader(encoded)); err != nil {
		return 0, errors.Wrap(err, "create request with context")
	}
	req.Header.Set("Content-Type", "application/json")
	if resp, err = c.client.Do(req); err != nil {
		return 0, errors.Wrap(err, "do request")
	}
	return decodeJSONResponse(resp, out)
}

func decodeJSONResponse(resp *http.Response, out any) (int, error) {
	defer func() {
		_ = resp.Body.Close()
	}()
	if out == nil {
		if _, err := io.Copy(io.Discard, resp.Body); err != nil {
			return resp.StatusCode, errors.Wrap(err, "drain response body")
		}
		return resp.StatusCode, nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return resp.StatusCode, errors.Wrap(err, "decode response body")
	}
	return resp.StatusCode, nil
}

// newRequestWithContext creates a new HTTP request to the server that respects the given context.
func (c *Client) newRequestWithContext(
	ctx context.Context,
	method, urlPath string,
	body io.Reader,
) (*http.Request, error) {
	var (
		req *http.Request
		err error
	)
	if req, err = http.NewRequest(method, c.url+urlPath, body); err != nil {
		return nil, errors.Wrap(err, "create request")
	}
	return req.WithContext(ctx), nil
}
