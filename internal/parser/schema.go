package parser

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/jsonschema-go/jsonschema"
)

//go:embed schemas/*.json
var embedded embed.FS

// schemaSet resolves schema documents by file name, preferring an override
// directory over the embedded copies.
type schemaSet struct {
	dir string
}

func newSchemaSet(dir string) schemaSet { return schemaSet{dir: dir} }

func (s schemaSet) read(name string) ([]byte, error) {
	if s.dir != "" {
		b, err := os.ReadFile(filepath.Join(s.dir, name))
		if err == nil {
			return b, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, err
		}
	}
	return embedded.ReadFile("schemas/" + name)
}

func (s schemaSet) compile(name string) (*jsonschema.Resolved, error) {
	b, err := s.read(name)
	if err != nil {
		return nil, fmt.Errorf("load schema %s: %w", name, err)
	}
	var doc jsonschema.Schema
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("decode schema %s: %w", name, err)
	}
	rs, err := doc.Resolve(nil)
	if err != nil {
		return nil, fmt.Errorf("resolve schema %s: %w", name, err)
	}
	return rs, nil
}

// schemaClaim decodes text as JSON and validates it. The decoded document is
// returned so callers need not parse twice.
func schemaClaim(rs *jsonschema.Resolved, text string) (any, bool) {
	var doc any
	if err := json.Unmarshal([]byte(text), &doc); err != nil {
		return nil, false
	}
	if err := rs.Validate(doc); err != nil {
		return nil, false
	}
	return doc, true
}
