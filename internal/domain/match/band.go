package match

import (
	"math"

	"github.com/kailas-cloud/recordex/internal/domain"
)

// Tolerance is the fixed fraction applied on both sides of a target value.
const Tolerance = 0.1

// Band is an inclusive numeric interval around a target value.
type Band struct {
	lo float64
	hi float64
}

// NewBand builds the tolerance band [v*(1-Tolerance), v*(1+Tolerance)].
// The target must be finite and positive.
func NewBand(v float64) (Band, error) {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Band{}, domain.Invalidf("value must be finite")
	}
	if v <= 0 {
		return Band{}, domain.Invalidf("value must be positive")
	}
	return Band{lo: v * (1 - Tolerance), hi: v * (1 + Tolerance)}, nil
}

// Lo returns the inclusive lower bound.
func (b Band) Lo() float64 { return b.lo }

// Hi returns the inclusive upper bound.
func (b Band) Hi() float64 { return b.hi }

// Contains reports whether x lies inside the band.
func (b Band) Contains(x float64) bool { return x >= b.lo && x <= b.hi }
