// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Person is a member of the organisational unit as returned by the
// directory API. Identifier is derived from the display name and is
// unique within a run.
type Person struct {
	// Identifier is the normalized display name (e.g. "juergen-mueller").
	Identifier string `json:"identifier" yaml:"identifier"`

	// OID is the upstream numeric person id referenced by course lecturer lists.
	OID int `json:"oid" yaml:"oid"`

	FirstName       string `json:"first_name" yaml:"first_name"`
	LastName        string `json:"last_name" yaml:"last_name"`
	Email           string `json:"main_email" yaml:"main_email"`
	Phone           string `json:"main_phone_number" yaml:"main_phone_number"`
	PictureURI      string `json:"picture_uri" yaml:"picture_uri"`
	PrecedingTitles string `json:"preceding_titles" yaml:"preceding_titles"`
}

// Name returns "first last".
func (p Person) Name() string {
	return p.FirstName + " " + p.LastName
}
