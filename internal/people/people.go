// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package people derives identifiers for organisational unit members,
// filters them by the configured name lists, and renders their profile
// pages.
package people

import (
	"github.com/pdiddy/sitefetch/internal/identifier"
	"github.com/pdiddy/sitefetch/pkg/types"
)

// Identify returns a copy of people with every Identifier derived from the
// display name.
func Identify(people []types.Person) []types.Person {
	out := make([]types.Person, len(people))
	for i, p := range people {
		p.Identifier = identifier.Normalize(p.Name())
		out[i] = p
	}
	return out
}

// Whitelist keeps the people whose identifier matches one of names after
// normalization. Order follows people.
func Whitelist(people []types.Person, names []string) []types.Person {
	allowed := identifier.Set(names)
	return filter(people, func(p types.Person) bool { return allowed[p.Identifier] })
}

// Exclude drops the people whose identifier matches one of names after
// normalization. Order follows people.
func Exclude(people []types.Person, names []string) []types.Person {
	denied := identifier.Set(names)
	return filter(people, func(p types.Person) bool { return !denied[p.Identifier] })
}

func filter(people []types.Person, keep func(types.Person) bool) []types.Person {
	out := make([]types.Person, 0, len(people))
	for _, p := range people {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}
