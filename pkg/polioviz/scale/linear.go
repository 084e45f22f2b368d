// Package scale maps data values onto pixel positions.
package scale

import "math"

// Linear is an affine mapping from a domain interval onto a range interval.
// The zero value maps everything to 0.
type Linear struct {
	d0, d1 float64
	r0, r1 float64
	clamp  bool
}

// NewLinear returns a scale mapping [d0, d1] onto [r0, r1].
func NewLinear(d0, d1, r0, r1 float64) Linear {
	return Linear{d0: d0, d1: d1, r0: r0, r1: r1}
}

// Domain returns the domain endpoints.
func (s Linear) Domain() (float64, float64) { return s.d0, s.d1 }

// Range returns the range endpoints.
func (s Linear) Range() (float64, float64) { return s.r0, s.r1 }

// Degenerate reports whether the domain is a single value.
func (s Linear) Degenerate() bool { return s.d0 == s.d1 }

// Clamped returns a copy of s whose Map and Invert stay within range and domain.
func (s Linear) Clamped() Linear {
	s.clamp = true
	return s
}

// Map converts a domain value to a range value. A degenerate domain maps
// every value to the middle of the range.
func (s Linear) Map(v float64) float64 {
	if s.Degenerate() {
		return (s.r0 + s.r1) / 2
	}
	t := (v - s.d0) / (s.d1 - s.d0)
	if s.clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return s.r0 + t*(s.r1-s.r0)
}

// Invert converts a range value back to a domain value. A degenerate domain
// inverts every value to its single domain value; a degenerate range inverts
// to the domain start.
func (s Linear) Invert(px float64) float64 {
	if s.Degenerate() || s.r0 == s.r1 {
		return s.d0
	}
	t := (px - s.r0) / (s.r1 - s.r0)
	if s.clamp {
		t = math.Max(0, math.Min(1, t))
	}
	return s.d0 + t*(s.d1-s.d0)
}

// Nice returns a copy of s whose domain is extended outward to multiples of
// the tick step for roughly count ticks.
func (s Linear) Nice(count int) Linear {
	if count <= 0 || s.Degenerate() {
		return s
	}
	start, stop := s.d0, s.d1
	reversed := stop < start
	if reversed {
		start, stop = stop, start
	}

	var prestep float64
	for iter := 0; iter < 10; iter++ {
		step := tickIncrement(start, stop, count)
		if step == prestep {
			if reversed {
				s.d0, s.d1 = stop, start
			} else {
				s.d0, s.d1 = start, stop
			}
			return s
		}
		switch {
		case step > 0:
			start = math.Floor(start/step) * step
			stop = math.Ceil(stop/step) * step
		case step < 0:
			start = math.Ceil(start*step) / step
			stop = math.Floor(stop*step) / step
		default:
			return s
		}
		prestep = step
	}
	return s
}

// Ticks returns roughly count evenly spaced round values within the domain.
func (s Linear) Ticks(count int) []float64 {
	return Ticks(s.d0, s.d1, count)
}
