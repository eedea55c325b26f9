package combo

// Hosei holds the multiplicative correction factors of one waza.
// Only Base is inferred; the others stay at the identity value 1.0.
type Hosei struct {
	Base   float64 `yaml:"base" json:"base"`
	First  float64 `yaml:"first" json:"first"`
	Multi  float64 `yaml:"multi" json:"multi"`
	Bonus  float64 `yaml:"bonus" json:"bonus"`
	Repeat float64 `yaml:"repeat" json:"repeat"`
}

// NewHosei returns a Hosei with every factor set to 1.0.
func NewHosei() Hosei {
	return Hosei{
		Base:   1.0,
		First:  1.0,
		Multi:  1.0,
		Bonus:  1.0,
		Repeat: 1.0,
	}
}

// Waza is one action in a combo.
// HS is nil on load and only set on result entries.
type Waza struct {
	ID string `yaml:"id" json:"id"`
	DM uint64 `yaml:"dm" json:"dm"`
	HS *Hosei `yaml:"hs,omitempty" json:"hs,omitempty"`
}

// WithHosei returns a copy of w carrying a fresh all-1.0 Hosei.
func (w Waza) WithHosei() Waza {
	hs := NewHosei()
	return Waza{ID: w.ID, DM: w.DM, HS: &hs}
}

// Combo is an ordered chain of waza.
type Combo []Waza

// IsMultiStep reports whether the combo has a base and a follow-up.
// Combos shorter than two take no part in inference.
func (c Combo) IsMultiStep() bool {
	return len(c) >= 2
}

// Base returns the first waza. It panics on an empty combo.
func (c Combo) Base() Waza {
	return c[0]
}

// FollowUp returns the second waza. It panics unless IsMultiStep.
func (c Combo) FollowUp() Waza {
	return c[1]
}
