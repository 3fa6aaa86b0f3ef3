// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package people

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/sitefetch/internal/content"
	"github.com/pdiddy/sitefetch/internal/errs"
	"github.com/pdiddy/sitefetch/internal/logging"
	"github.com/pdiddy/sitefetch/pkg/types"
)

const templateIndex = `---
name: Template User
authors:
  - user
role: Researcher
superuser: false
organizations:
  - name: Business Informatics Group
    url: https://big.tuwien.ac.at
---

Biography goes here.
`

func samplePeople() []types.Person {
	return []types.Person{
		{OID: 1, FirstName: "Jürgen", LastName: "Müller", Email: "jm@example.org", Phone: "+43 1", PictureURI: "/pic/1", PrecedingTitles: "Dr."},
		{OID: 2, FirstName: "Ada", LastName: "Lovelace", Email: "al@example.org"},
		{OID: 3, FirstName: "Grace", LastName: "Hopper", Email: "gh@example.org"},
	}
}

func ids(people []types.Person) []string {
	out := make([]string, len(people))
	for i, p := range people {
		out[i] = p.Identifier
	}
	return out
}

func writeTemplate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	base := filepath.Join(dir, "authors", "user")
	require.NoError(t, os.MkdirAll(base, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(base, ProfileFile), []byte(templateIndex), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(base, AvatarFile), []byte("DEFAULT"), 0o644))
	return dir
}

type fakePictures struct {
	calls []string
	err   error
}

func (f *fakePictures) Picture(_ context.Context, uri string) ([]byte, error) {
	f.calls = append(f.calls, uri)
	if f.err != nil {
		return nil, f.err
	}
	return []byte("PIC" + uri), nil
}

func TestIdentify(t *testing.T) {
	in := samplePeople()
	got := Identify(in)

	assert.Equal(t, []string{"juergen-mueller", "ada-lovelace", "grace-hopper"}, ids(got))
	assert.Empty(t, in[0].Identifier, "input is not mutated")
}

func TestWhitelist(t *testing.T) {
	people := Identify(samplePeople())

	got := Whitelist(people, []string{"Grace Hopper", "Jürgen Müller", "Nobody Here"})
	assert.Equal(t, []string{"juergen-mueller", "grace-hopper"}, ids(got))

	assert.Empty(t, Whitelist(people, nil))
}

func TestExclude(t *testing.T) {
	people := Identify(samplePeople())

	got := Exclude(people, []string{"ada lovelace"})
	assert.Equal(t, []string{"juergen-mueller", "grace-hopper"}, ids(got))

	assert.Len(t, Exclude(people, nil), 3)
}

func TestPairs(t *testing.T) {
	p := samplePeople()
	assert.Equal(t, []Pair{
		{Key: "Mail", Value: "jm@example.org", Link: "mailto:jm@example.org"},
		{Key: "Phone", Value: "+43 1", Link: "tel:+43 1"},
	}, Pairs(p[0]))
	assert.Equal(t, []Pair{
		{Key: "Mail", Value: "al@example.org", Link: "mailto:al@example.org"},
	}, Pairs(p[1]))
}

func TestLoadTemplate(t *testing.T) {
	tmpl, err := LoadTemplate(writeTemplate(t))
	require.NoError(t, err)
	assert.Equal(t, "Template User", tmpl.Meta["name"])
	assert.Equal(t, "Biography goes here.\n", tmpl.Body)
	assert.Equal(t, []byte("DEFAULT"), tmpl.Avatar)

	_, err = LoadTemplate(t.TempDir())
	assert.ErrorIs(t, err, errs.ErrNotFound)

	noAvatar := writeTemplate(t)
	require.NoError(t, os.Remove(filepath.Join(noAvatar, "authors", "user", AvatarFile)))
	_, err = LoadTemplate(noAvatar)
	var notFound *errs.NotFoundError
	require.ErrorAs(t, err, &notFound)
	assert.Equal(t, "default avatar", notFound.Resource)
}

func TestProfileUnit(t *testing.T) {
	tmpl, err := LoadTemplate(writeTemplate(t))
	require.NoError(t, err)
	p := Identify(samplePeople())[0]

	u, err := ProfileUnit(p, tmpl, []byte("PIC"))
	require.NoError(t, err)
	assert.Equal(t, "juergen-mueller", u.ID)
	require.Len(t, u.Files, 2)
	assert.Equal(t, content.File{Name: AvatarFile, Data: []byte("PIC")}, u.Files[0])

	meta, body, err := content.Decode(strings.NewReader(string(u.Files[1].Data)))
	require.NoError(t, err)
	assert.Equal(t, "Jürgen Müller", meta["name"])
	assert.Equal(t, []any{"juergen-mueller"}, meta["authors"])
	assert.Equal(t, "Dr.", meta["role"])
	assert.Equal(t, "jm@example.org", meta["email"])
	assert.Equal(t, false, meta["superuser"], "template keys are kept")
	assert.Equal(t, "Biography goes here.\n", body)

	pairs, ok := meta["pairs"].([]any)
	require.True(t, ok)
	require.Len(t, pairs, 2)
	assert.Equal(t, map[string]any{"key": "Phone", "value": "+43 1", "link": "tel:+43 1"}, pairs[1])

	// The template itself is not modified.
	assert.Equal(t, "Template User", tmpl.Meta["name"])
}

func TestProfileUnitDefaultAvatar(t *testing.T) {
	tmpl, err := LoadTemplate(writeTemplate(t))
	require.NoError(t, err)

	u, err := ProfileUnit(Identify(samplePeople())[1], tmpl, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("DEFAULT"), u.Files[0].Data)
}

func TestWriterSkipsExistingProfiles(t *testing.T) {
	tmpl, err := LoadTemplate(writeTemplate(t))
	require.NoError(t, err)

	store := &content.Store{Root: t.TempDir(), Logger: logging.Nop}
	pics := &fakePictures{}
	w := &Writer{Store: store, Template: tmpl, Pictures: pics, Logger: logging.Nop}
	people := Identify(samplePeople())

	summary, err := w.Write(context.Background(), people)
	require.NoError(t, err)
	assert.Equal(t, content.Summary{Created: 3}, summary)
	assert.Equal(t, []string{"/pic/1"}, pics.calls)

	avatar, err := os.ReadFile(filepath.Join(store.Root, "juergen-mueller", AvatarFile))
	require.NoError(t, err)
	assert.Equal(t, "PIC/pic/1", string(avatar))
	avatar, err = os.ReadFile(filepath.Join(store.Root, "ada-lovelace", AvatarFile))
	require.NoError(t, err)
	assert.Equal(t, "DEFAULT", string(avatar))

	// Second run: nothing downloaded, nothing written.
	summary, err = w.Write(context.Background(), people)
	require.NoError(t, err)
	assert.Equal(t, content.Summary{Skipped: 3}, summary)
	assert.Len(t, pics.calls, 1)

	// Override: everything rewritten.
	store.Override = true
	summary, err = w.Write(context.Background(), people)
	require.NoError(t, err)
	assert.Equal(t, content.Summary{Overwritten: 3}, summary)
	assert.Len(t, pics.calls, 2)
}

func TestWriterUncheckableStoreAborts(t *testing.T) {
	tmpl, err := LoadTemplate(writeTemplate(t))
	require.NoError(t, err)

	root := filepath.Join(t.TempDir(), "people")
	require.NoError(t, os.WriteFile(root, []byte("not a directory"), 0o644))
	pics := &fakePictures{}
	w := &Writer{Store: &content.Store{Root: root, Logger: logging.Nop}, Template: tmpl, Pictures: pics, Logger: logging.Nop}

	summary, err := w.Write(context.Background(), Identify(samplePeople()))
	assert.Error(t, err)
	assert.Equal(t, content.Summary{}, summary)
	assert.Empty(t, pics.calls)
}

func TestWriterPictureFailureAborts(t *testing.T) {
	tmpl, err := LoadTemplate(writeTemplate(t))
	require.NoError(t, err)

	store := &content.Store{Root: t.TempDir(), Logger: logging.Nop}
	boom := errors.New("boom")
	w := &Writer{Store: store, Template: tmpl, Pictures: &fakePictures{err: boom}, Logger: logging.Nop}

	_, err = w.Write(context.Background(), Identify(samplePeople()))
	assert.ErrorIs(t, err, boom)
	assert.NoDirExists(t, filepath.Join(store.Root, "juergen-mueller"))
}
