// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package content

import (
	"bytes"
	"fmt"
	"io"

	"github.com/adrg/frontmatter"
	"go.yaml.in/yaml/v3"
)

const delimiter = "---\n"

// yamlFormat decodes with yaml/v3 so nested mappings come back as
// map[string]any.
var yamlFormat = frontmatter.NewFormat("---", "---", yaml.Unmarshal)

// Encode renders meta as a YAML front matter block followed by body.
func Encode(meta any, body string) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(delimiter)

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(meta); err != nil {
		return nil, fmt.Errorf("marshaling front matter: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("marshaling front matter: %w", err)
	}

	buf.WriteString(delimiter)
	if body != "" {
		buf.WriteString("\n")
		buf.WriteString(body)
	}
	return buf.Bytes(), nil
}

// Decode splits a front matter document into its metadata and body.
func Decode(r io.Reader) (map[string]any, string, error) {
	meta := map[string]any{}
	body, err := frontmatter.Parse(r, &meta, yamlFormat)
	if err != nil {
		return nil, "", fmt.Errorf("parsing front matter: %w", err)
	}
	return meta, string(bytes.TrimLeft(body, "\n")), nil
}
