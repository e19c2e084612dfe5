package generator

import (
	"math"
	"math/rand"

	"fakexlsx/domain/series"
	"fakexlsx/internal/errors"
)

// ValueGenerator draws one random value per ColumnSpec from an injected source.
type ValueGenerator struct {
	rng *rand.Rand
}

// NewValueGenerator wraps rng. The generator is not safe for concurrent use.
func NewValueGenerator(rng *rand.Rand) *ValueGenerator {
	return &ValueGenerator{rng: rng}
}

// NewSeededValueGenerator is NewValueGenerator over rand.NewSource(seed).
func NewSeededValueGenerator(seed int64) *ValueGenerator {
	return NewValueGenerator(rand.New(rand.NewSource(seed)))
}

// Generate returns one value conforming to spec. An empty candidate list and
// an unknown kind both yield nil without an error.
func (g *ValueGenerator) Generate(spec series.ColumnSpec) (series.Value, error) {
	switch spec.Kind {
	case series.KindInteger:
		lo, hi, err := bounds(spec)
		if err != nil {
			return nil, err
		}
		return g.intBetween(int64(math.Ceil(lo)), int64(math.Floor(hi)))
	case series.KindFloat:
		lo, hi, err := bounds(spec)
		if err != nil {
			return nil, err
		}
		return roundWithin(lo+g.rng.Float64()*(hi-lo), lo, hi), nil
	case series.KindString:
		if len(spec.Candidates) == 0 {
			return nil, nil
		}
		return spec.Candidates[g.rng.Intn(len(spec.Candidates))], nil
	default:
		return nil, nil
	}
}

func (g *ValueGenerator) intBetween(lo, hi int64) (series.Value, error) {
	if lo > hi {
		return nil, errors.ConfigInvalidf("no integer in range %d-%d", lo, hi)
	}
	span := uint64(hi - lo)
	if span == math.MaxUint64 {
		return lo + int64(g.rng.Uint64()), nil
	}
	return lo + int64(g.uint64n(span+1)), nil
}

// uint64n returns a uniform value in [0, n) without modulo bias.
func (g *ValueGenerator) uint64n(n uint64) uint64 {
	if n <= math.MaxInt64 {
		return uint64(g.rng.Int63n(int64(n)))
	}
	limit := math.MaxUint64 - math.MaxUint64%n
	for {
		v := g.rng.Uint64()
		if v < limit {
			return v % n
		}
	}
}

func bounds(spec series.ColumnSpec) (float64, float64, error) {
	if spec.Range == nil {
		return 0, 0, errors.ConfigInvalidf("column %q: %s column has no range", spec.Name, spec.Kind)
	}
	lo, hi := spec.Range.Lo, spec.Range.Hi
	if math.IsNaN(lo) || math.IsNaN(hi) || math.IsInf(lo, 0) || math.IsInf(hi, 0) {
		return 0, 0, errors.ConfigInvalidf("column %q: range bounds must be finite", spec.Name)
	}
	if lo > hi {
		return 0, 0, errors.ConfigInvalidf("column %q: lower bound %v exceeds upper bound %v", spec.Name, lo, hi)
	}
	return lo, hi, nil
}

// roundWithin rounds x to 2 decimals, stepping back inside [lo, hi] when the
// rounding crosses a bound.
func roundWithin(x, lo, hi float64) float64 {
	r := math.Round(x*100) / 100
	if r > hi {
		r = math.Floor(hi*100) / 100
	}
	if r < lo {
		r = math.Ceil(lo*100) / 100
	}
	if r < lo || r > hi {
		// No 2-decimal value fits between the bounds.
		return x
	}
	return r
}
