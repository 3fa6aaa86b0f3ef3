// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package people

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/pdiddy/sitefetch/internal/content"
	"github.com/pdiddy/sitefetch/internal/errs"
	"github.com/pdiddy/sitefetch/pkg/types"
)

// File names of a profile unit and of the template it is built from.
const (
	ProfileFile = "_index.md"
	AvatarFile  = "avatar.jpg"
)

// templateSubdir is the template's location below the template directory.
var templateSubdir = filepath.Join("authors", "user")

// Template is the profile page every member's page starts from.
type Template struct {
	Meta   map[string]any
	Body   string
	Avatar []byte
}

// LoadTemplate reads the profile template and default avatar from dir.
func LoadTemplate(dir string) (Template, error) {
	base := filepath.Join(dir, templateSubdir)

	f, err := os.Open(filepath.Join(base, ProfileFile))
	if errors.Is(err, os.ErrNotExist) {
		return Template{}, &errs.NotFoundError{Resource: "profile template", ID: filepath.Join(base, ProfileFile)}
	}
	if err != nil {
		return Template{}, fmt.Errorf("opening profile template: %w", err)
	}
	defer f.Close()

	meta, body, err := content.Decode(f)
	if err != nil {
		return Template{}, fmt.Errorf("reading profile template: %w", err)
	}

	avatar, err := os.ReadFile(filepath.Join(base, AvatarFile))
	if errors.Is(err, os.ErrNotExist) {
		return Template{}, &errs.NotFoundError{Resource: "default avatar", ID: filepath.Join(base, AvatarFile)}
	}
	if err != nil {
		return Template{}, fmt.Errorf("reading default avatar: %w", err)
	}
	return Template{Meta: meta, Body: body, Avatar: avatar}, nil
}

// Pair is one contact line on a profile page.
type Pair struct {
	Key   string `yaml:"key"`
	Value string `yaml:"value"`
	Link  string `yaml:"link"`
}

// Pairs lists the contact lines of p: mail always, phone when known.
func Pairs(p types.Person) []Pair {
	pairs := []Pair{{Key: "Mail", Value: p.Email, Link: "mailto:" + p.Email}}
	if p.Phone != "" {
		pairs = append(pairs, Pair{Key: "Phone", Value: p.Phone, Link: "tel:" + p.Phone})
	}
	return pairs
}

// ProfileUnit builds the content unit of p from tmpl. A nil avatar falls
// back to the template default.
func ProfileUnit(p types.Person, tmpl Template, avatar []byte) (content.Unit, error) {
	meta := maps.Clone(tmpl.Meta)
	if meta == nil {
		meta = map[string]any{}
	}
	meta["name"] = p.Name()
	meta["authors"] = []string{p.Identifier}
	meta["role"] = p.PrecedingTitles
	meta["email"] = p.Email
	meta["pairs"] = Pairs(p)

	index, err := content.Encode(meta, tmpl.Body)
	if err != nil {
		return content.Unit{}, fmt.Errorf("encoding profile of %s: %w", p.Identifier, err)
	}
	if avatar == nil {
		avatar = tmpl.Avatar
	}
	return content.Unit{
		ID: p.Identifier,
		Files: []content.File{
			{Name: AvatarFile, Data: avatar},
			{Name: ProfileFile, Data: index},
		},
	}, nil
}

// PictureSource downloads profile pictures.
type PictureSource interface {
	Picture(ctx context.Context, uri string) ([]byte, error)
}

// Writer stores profile units for a list of people.
type Writer struct {
	Store    *content.Store
	Template Template
	Pictures PictureSource
	Logger   zerolog.Logger
}

// Write stores a profile unit for every person. Pictures are only
// downloaded for units the store will write.
func (w *Writer) Write(ctx context.Context, people []types.Person) (content.Summary, error) {
	var summary content.Summary
	for _, p := range people {
		writes, err := w.Store.Writes(p.Identifier)
		if err != nil {
			return summary, err
		}
		if !writes {
			w.Logger.Debug().Str("id", p.Identifier).Msg("skipped existing profile")
			summary.Skipped++
			continue
		}

		var avatar []byte
		if p.PictureURI != "" {
			pic, err := w.Pictures.Picture(ctx, p.PictureURI)
			if err != nil {
				return summary, err
			}
			avatar = pic
		}

		u, err := ProfileUnit(p, w.Template, avatar)
		if err != nil {
			return summary, err
		}
		o, err := w.Store.Put(u)
		if err != nil {
			return summary, err
		}
		summary.Add(o)
	}
	w.Logger.Info().
		Int("created", summary.Created).
		Int("overwritten", summary.Overwritten).
		Int("skipped", summary.Skipped).
		Msg("profiles stored")
	return summary, nil
}
