// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package fetch retrieves raw snapshots from the upstream APIs: the
// directory and course API and the publication export. Every call fails
// fast; a single failed request aborts the stage that issued it.
package fetch

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/rs/zerolog"
	"golang.org/x/text/encoding/charmap"

	"github.com/pdiddy/sitefetch/internal/httputil"
	"github.com/pdiddy/sitefetch/pkg/types"
)

// Source names used in upstream errors.
const (
	SourceDirectory   = "directory API"
	SourceCourses     = "course API"
	SourceExport      = "publication export"
	SourceBibTeX      = "BibTeX export"
	SourceProfilePics = "profile picture"
)

// Client talks to the upstream APIs.
type Client struct {
	HTTP      *http.Client
	Upstream  types.UpstreamConfig
	UserAgent string
	Logger    zerolog.Logger
}

// New returns a Client configured from cfg.
func New(cfg types.Config, logger zerolog.Logger) *Client {
	return &Client{
		HTTP:      &http.Client{Timeout: cfg.HTTP.Timeout},
		Upstream:  cfg.Upstream,
		UserAgent: cfg.HTTP.UserAgent,
		Logger:    logger,
	}
}

func (c *Client) get(ctx context.Context, source, rawURL, accept string) ([]byte, error) {
	c.Logger.Debug().Str("source", source).Str("url", rawURL).Msg("GET")
	return httputil.Get(ctx, c.HTTP, httputil.Request{
		Source:    source,
		URL:       rawURL,
		UserAgent: c.UserAgent,
		Accept:    accept,
	})
}

func (c *Client) peopleURL() string {
	return c.Upstream.DirectoryBase + "/api/orgunit/v22/id/" + strconv.Itoa(c.Upstream.OrgUnitID) + "?persons=true"
}

func (c *Client) lecturerURL(oid int, semester string) string {
	q := url.Values{}
	q.Set("semester", semester)
	return c.Upstream.DirectoryBase + "/api/course/lecturer/" + strconv.Itoa(oid) + "?" + q.Encode()
}

// exportURL builds a per-person query against one of the export scripts.
func (c *Client) exportURL(script string, p types.Person) string {
	q := url.Values{}
	q.Set("zuname", p.LastName)
	q.Set("vorname", p.FirstName)
	q.Set("inst", c.Upstream.Institute)
	q.Set("abt", c.Upstream.Department)
	q.Set("func", "1")
	return c.Upstream.PublicationBase + "/" + script + "?" + q.Encode()
}

// latin1 wraps r so that ISO-8859-1 bytes are read as UTF-8.
func latin1(r io.Reader) io.Reader {
	return charmap.ISO8859_1.NewDecoder().Reader(r)
}
