package combo

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"
)

// Load reads and parses a combo dataset file.
func Load(path string) ([]Combo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, &LoadError{Code: ErrCodeNotFound, Path: path, Message: "dataset file not found", Err: err}
		}
		return nil, &LoadError{Code: ErrCodeRead, Path: path, Message: fmt.Sprintf("failed to read dataset: %v", err), Err: err}
	}

	combos, err := Parse(data)
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			le.Path = path
		}
		return nil, err
	}
	return combos, nil
}

// Parse decodes a dataset document.
//
// The document is decoded twice: once generically for the schema check, and
// once into []Combo with unknown fields rejected.
func Parse(data []byte) ([]Combo, error) {
	var doc any
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("failed to parse YAML: %v", err), Err: err}
	}
	if doc == nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: "dataset document is empty"}
	}

	if err := CheckSchema(doc); err != nil {
		return nil, &LoadError{Code: ErrCodeSchema, Message: err.Error(), Err: err}
	}

	var combos []Combo
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&combos); err != nil {
		return nil, &LoadError{Code: ErrCodeParse, Message: fmt.Sprintf("failed to decode combos: %v", err), Err: err}
	}

	normalizeIDs(combos)
	return combos, nil
}

// normalizeIDs rewrites every waza id into NFC form in place.
func normalizeIDs(combos []Combo) {
	for _, c := range combos {
		for i := range c {
			c[i].ID = norm.NFC.String(c[i].ID)
		}
	}
}
