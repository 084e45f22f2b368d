package scale

import (
	"errors"
	"math"

	"github.com/ukaji3/polioviz-go/pkg/polioviz/models"
)

// ErrEmptyDomain indicates a scale was requested for a series without data.
var ErrEmptyDomain = errors.New("empty scale domain")

// NiceCount is the tick count used when rounding vertical domains.
const NiceCount = 10

// CoverageMax is the fixed upper bound of the coverage domain, in percent.
const CoverageMax = 100

// Upper selects the upper bound of a vertical domain.
type Upper struct {
	value    float64
	observed bool
}

// Observed takes the upper bound from the largest value in the series.
var Observed = Upper{observed: true}

// Fixed uses v as the upper bound regardless of the data.
func Fixed(v float64) Upper {
	return Upper{value: v}
}

// Time builds the shared horizontal scale from the year extent of the series
// onto [0, innerWidth].
func Time(series models.Series, innerWidth float64) (Linear, error) {
	lo, hi, ok := series.YearExtent()
	if !ok {
		return Linear{}, ErrEmptyDomain
	}
	return NewLinear(float64(lo), float64(hi), 0, innerWidth), nil
}

// Build builds a vertical scale with domain [0, upper] mapped onto
// [rangeLow, rangeHigh]. An observed upper bound needs at least one value;
// an all-zero series widens to [0, 1].
func Build(series models.Series, upper Upper, rangeLow, rangeHigh float64, nice bool) (Linear, error) {
	max := upper.value
	if upper.observed {
		var ok bool
		max, ok = series.Max()
		if !ok {
			return Linear{}, ErrEmptyDomain
		}
		if max <= 0 {
			max = 1
		}
	}
	if math.IsNaN(max) || math.IsInf(max, 0) {
		return Linear{}, ErrEmptyDomain
	}

	s := NewLinear(0, max, rangeLow, rangeHigh)
	if nice {
		s = s.Nice(NiceCount)
	}
	return s, nil
}

// Incidence builds the inverted incidence scale over the observed maximum.
func Incidence(series models.Series, innerHeight float64) (Linear, error) {
	return Build(series, Observed, innerHeight, 0, true)
}

// Coverage builds the inverted coverage scale, fixed to [0, 100] percent.
// Values above 100 lie outside the domain.
func Coverage(innerHeight float64) Linear {
	s, _ := Build(nil, Fixed(CoverageMax), innerHeight, 0, true)
	return s
}
