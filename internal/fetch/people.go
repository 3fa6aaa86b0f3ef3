// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package fetch

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/pdiddy/sitefetch/pkg/types"
)

type orgUnitResponse struct {
	Employees []types.Person `json:"employees"`
}

// People returns the members of the configured organisational unit.
// Identifiers are left empty.
func (c *Client) People(ctx context.Context) ([]types.Person, error) {
	data, err := c.get(ctx, SourceDirectory, c.peopleURL(), "application/json")
	if err != nil {
		return nil, err
	}

	var resp orgUnitResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing %s response: %w", SourceDirectory, err)
	}
	c.Logger.Info().Int("people", len(resp.Employees)).Msg("fetched organisational unit members")
	return resp.Employees, nil
}

// Picture downloads the profile picture at uri, a path relative to the
// directory API base.
func (c *Client) Picture(ctx context.Context, uri string) ([]byte, error) {
	target := uri
	if !strings.HasPrefix(uri, "http://") && !strings.HasPrefix(uri, "https://") {
		target = c.Upstream.DirectoryBase + uri
	}
	return c.get(ctx, SourceProfilePics, target, "image/*")
}
