package core

import (
	"encoding/json"
	"io"

	"github.com/redactyl/baseguard/internal/baseline"
)

// MarshalDetails pretty-prints issue details as JSON for humans or pipelines.
func MarshalDetails(w io.Writer, details []Detail) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(details)
}

// UnmarshalDetails decodes details JSON, useful for ingestion tests.
func UnmarshalDetails(r io.Reader) ([]Detail, error) {
	var ds []Detail
	if err := json.NewDecoder(r).Decode(&ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// WriteSnapshot writes snap in the canonical baseline file encoding.
func WriteSnapshot(w io.Writer, snap Snapshot) error {
	return baseline.Encode(w, snap)
}
