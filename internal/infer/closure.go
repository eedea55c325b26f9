package infer

import (
	"sort"

	"github.com/roach88/hosei/internal/combo"
)

// ResultMap maps a waza id to its result entry. Every entry carries a Hosei.
type ResultMap map[string]combo.Waza

// IDs returns the keys in ascending order.
func (m ResultMap) IDs() []string {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Sorted returns the entries ordered by id.
func (m ResultMap) Sorted() []combo.Waza {
	out := make([]combo.Waza, 0, len(m))
	for _, id := range m.IDs() {
		out = append(out, m[id])
	}
	return out
}

// BuildResultMap creates one all-1.0 entry per id that starts a multi-step
// combo and verifies closure over the follow-up ids.
//
// When the same id starts several combos, the last occurrence provides the
// entry's damage. Combos shorter than two are ignored.
func BuildResultMap(combos []combo.Combo) (ResultMap, error) {
	results := make(ResultMap)
	followUps := make(map[string]struct{})

	for _, c := range combos {
		if !c.IsMultiStep() {
			continue
		}
		base := c.Base()
		results[base.ID] = base.WithHosei()
		for _, w := range c[1:] {
			followUps[w.ID] = struct{}{}
		}
	}

	var missing []string
	for id := range followUps {
		if _, ok := results[id]; !ok {
			missing = append(missing, id)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return nil, NewClosureError(missing)
	}

	return results, nil
}
