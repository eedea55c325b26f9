package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/roach88/hosei/internal/combo"
)

// W builds a waza without a Hosei, as the loader would produce it.
func W(id string, dm uint64) combo.Waza {
	return combo.Waza{ID: id, DM: dm}
}

// C builds a combo from waza in order.
func C(ws ...combo.Waza) combo.Combo {
	return combo.Combo(ws)
}

// Dataset builds a dataset from combos in order.
func Dataset(cs ...combo.Combo) []combo.Combo {
	return cs
}

// WriteDataset writes content to combo.yaml inside a fresh temp directory
// and returns the file path.
func WriteDataset(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "combo.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write dataset: %v", err)
	}
	return path
}

// MajorityYAML is a closed dataset where two combos agree on a 2.25 ratio
// and one outlier does not. The winning factor is 150.
const MajorityYAML = `
- - {id: A, dm: 100}
  - {id: B, dm: 325}
- - {id: B, dm: 200}
  - {id: A, dm: 650}
- - {id: C, dm: 100}
  - {id: A, dm: 170}
`

// OpenYAML violates closure: B follows A but never starts a combo.
const OpenYAML = `
- - {id: A, dm: 100}
- - {id: A, dm: 100}
  - {id: B, dm: 250}
`
