package models

import (
	"encoding/json"
	"math"
)

// Field names the quantity a series carries.
type Field string

const (
	// FieldIncidence is the count of new cases per year.
	FieldIncidence Field = "incidence"
	// FieldCoverage is the vaccinated share of the target population, in percent.
	FieldCoverage Field = "coverage"
)

// Valid reports whether f is a known field.
func (f Field) Valid() bool {
	return f == FieldIncidence || f == FieldCoverage
}

// YearValue is one point of a series. Value is NaN when the year has no data.
type YearValue struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
}

type yearValueJSON struct {
	Year  int      `json:"year"`
	Value *float64 `json:"value"`
}

// HasValue reports whether the point carries data.
func (p YearValue) HasValue() bool {
	return !math.IsNaN(p.Value)
}

// MarshalJSON encodes a missing value as null.
func (p YearValue) MarshalJSON() ([]byte, error) {
	out := yearValueJSON{Year: p.Year}
	if p.HasValue() {
		v := p.Value
		out.Value = &v
	}
	return json.Marshal(out)
}

// UnmarshalJSON decodes a null value as NaN.
func (p *YearValue) UnmarshalJSON(data []byte) error {
	var in yearValueJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	p.Year = in.Year
	p.Value = math.NaN()
	if in.Value != nil {
		p.Value = *in.Value
	}
	return nil
}

// Series is a long-format sequence of points ordered by ascending year.
type Series []YearValue

// Years returns the year of every point, in order.
func (s Series) Years() []int {
	years := make([]int, len(s))
	for i, p := range s {
		years[i] = p.Year
	}
	return years
}

// YearExtent returns the smallest and largest year. ok is false for an empty series.
func (s Series) YearExtent() (lo, hi int, ok bool) {
	if len(s) == 0 {
		return 0, 0, false
	}
	lo, hi = s[0].Year, s[0].Year
	for _, p := range s[1:] {
		if p.Year < lo {
			lo = p.Year
		}
		if p.Year > hi {
			hi = p.Year
		}
	}
	return lo, hi, true
}

// Max returns the largest value, ignoring NaN. ok is false when no point has data.
func (s Series) Max() (max float64, ok bool) {
	for _, p := range s {
		if !p.HasValue() {
			continue
		}
		if !ok || p.Value > max {
			max = p.Value
			ok = true
		}
	}
	return max, ok
}

// Valid returns the points that carry data.
func (s Series) Valid() Series {
	var out Series
	for _, p := range s {
		if p.HasValue() {
			out = append(out, p)
		}
	}
	return out
}

// Segments splits the series into runs of consecutive points with data.
// Lines are drawn per segment so a missing year leaves a gap.
func (s Series) Segments() []Series {
	var (
		out []Series
		cur Series
	)
	for _, p := range s {
		if !p.HasValue() {
			if len(cur) > 0 {
				out = append(out, cur)
				cur = nil
			}
			continue
		}
		cur = append(cur, p)
	}
	if len(cur) > 0 {
		out = append(out, cur)
	}
	return out
}

// At returns the point for year.
func (s Series) At(year int) (YearValue, bool) {
	for _, p := range s {
		if p.Year == year {
			return p, true
		}
	}
	return YearValue{}, false
}
