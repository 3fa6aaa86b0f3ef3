// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package httputil provides HTTP helpers shared by the upstream clients.
package httputil

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/sitefetch/internal/errs"
)

// Request describes one GET against an upstream API. Source names the API
// in error messages.
type Request struct {
	Source    string
	URL       string
	UserAgent string
	Accept    string
}

// Get executes r and returns the response body. A transport failure or any
// status other than 200 is returned as an *errs.UpstreamError; the caller
// is expected to abort the run rather than retry.
func Get(ctx context.Context, client *http.Client, r Request) ([]byte, error) {
	resp, err := Open(ctx, client, r)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &errs.UpstreamError{Source: r.Source, URL: r.URL, Err: fmt.Errorf("reading body: %w", err)}
	}
	return data, nil
}

// Open executes r and returns the response with its body unread. The
// caller closes the body.
func Open(ctx context.Context, client *http.Client, r Request) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.URL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	if r.UserAgent != "" {
		req.Header.Set("User-Agent", r.UserAgent)
	}
	if r.Accept != "" {
		req.Header.Set("Accept", r.Accept)
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, &errs.UpstreamError{Source: r.Source, URL: r.URL, Err: err}
	}
	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		resp.Body.Close()
		return nil, &errs.UpstreamError{Source: r.Source, URL: r.URL, StatusCode: resp.StatusCode}
	}
	return resp, nil
}
