package infer

import (
	"log/slog"

	"github.com/roach88/hosei/internal/combo"
	"github.com/roach88/hosei/internal/prime"
)

// Options configures a Run.
type Options struct {
	// Logger receives per-combo debug detail and the final selection.
	// Defaults to slog.Default().
	Logger *slog.Logger
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.Default()
}

// Observation records what one multi-step combo contributed to the vote.
type Observation struct {
	Combo      int      `json:"combo"`
	BaseID     string   `json:"base_id"`
	FollowUpID string   `json:"follow_up_id"`
	Scaled     uint64   `json:"scaled"`
	Factors    []uint64 `json:"factors"`
	Pairs      []Pair   `json:"pairs"`
}

// Result is the outcome of a successful Run.
type Result struct {
	// Entries holds one waza per combo starter, with Hosei.Base set.
	Entries ResultMap `json:"entries"`

	// Winner is the selected co-factor and its vote count.
	Winner Vote `json:"winner"`

	// Base is Winner.Factor / FactorScale.
	Base float64 `json:"base"`

	// Observations lists every multi-step combo in dataset order.
	Observations []Observation `json:"observations"`

	// Tally holds the complete vote.
	Tally Tally `json:"-"`
}

// BaseFromFactor converts a winning co-factor to a Hosei.Base multiplier.
func BaseFromFactor(factor uint64) float64 {
	return float64(factor) / FactorScale
}

// Run infers the base correction factor for combos.
//
// Closure is checked before any ratio is computed, so an inconsistent
// dataset fails without partial work. Any degenerate combo aborts the run.
func Run(combos []combo.Combo, opts Options) (*Result, error) {
	log := opts.logger()

	entries, err := BuildResultMap(combos)
	if err != nil {
		return nil, err
	}
	log.Debug("result map built", "entries", len(entries), "combos", len(combos))

	observations, tally, err := observeAll(combos, log)
	if err != nil {
		return nil, err
	}
	if len(observations) == 0 {
		return nil, NewNoInferenceError("dataset has no multi-step combos")
	}

	winner, err := tally.Select()
	if err != nil {
		return nil, err
	}
	base := BaseFromFactor(winner.Factor)
	log.Info("correction factor selected",
		"factor", winner.Factor,
		"votes", winner.Count,
		"base", base,
		"observations", len(observations),
		"candidates", tally.Len())

	applyBase(entries, base)

	return &Result{
		Entries:      entries,
		Winner:       winner,
		Base:         base,
		Observations: observations,
		Tally:        tally,
	}, nil
}

// observeAll reduces the multi-step combos into observations and a tally.
func observeAll(combos []combo.Combo, log *slog.Logger) ([]Observation, Tally, error) {
	tally := NewTally()
	var observations []Observation

	for i, c := range combos {
		if !c.IsMultiStep() {
			continue
		}
		obs, err := observe(i, c)
		if err != nil {
			return nil, Tally{}, err
		}
		log.Debug("combo observed",
			"combo", i,
			"base", obs.BaseID,
			"follow_up", obs.FollowUpID,
			"scaled", obs.Scaled,
			"factors", len(obs.Factors),
			"pairs", len(obs.Pairs))
		tally = tally.Add(obs.Pairs)
		observations = append(observations, obs)
	}
	return observations, tally, nil
}

// observe computes one combo's scaled ratio, factors and candidate pairs.
func observe(index int, c combo.Combo) (Observation, error) {
	scaled, err := ScaledRatio(c)
	if err != nil {
		return Observation{}, atCombo(err, index)
	}
	factors := prime.Factorize(scaled)
	pairs := SplitPairs(factors)
	return Observation{
		Combo:      index,
		BaseID:     c.Base().ID,
		FollowUpID: c.FollowUp().ID,
		Scaled:     scaled,
		Factors:    factors,
		Pairs:      pairs,
	}, nil
}

// applyBase overwrites Hosei.Base on every entry. Only Base changes.
func applyBase(entries ResultMap, base float64) {
	for id, w := range entries {
		hs := combo.NewHosei()
		if w.HS != nil {
			hs = *w.HS
		}
		hs.Base = base
		w.HS = &hs
		entries[id] = w
	}
}

// atCombo stamps a combo index onto an *Error.
func atCombo(err error, index int) error {
	if ie, ok := err.(*Error); ok {
		ie.Combo = index
	}
	return err
}
