package models

import (
	"encoding/json"
	"math"
	"testing"
)

func TestSeriesMaxIgnoresNaN(t *testing.T) {
	tests := []struct {
		series   Series
		max      float64
		expected bool
	}{
		{Series{{1980, 3}, {1981, math.NaN()}, {1982, 7}}, 7, true},
		{Series{{1980, math.NaN()}}, 0, false},
		{nil, 0, false},
	}
	for _, tt := range tests {
		max, ok := tt.series.Max()
		if ok != tt.expected || max != tt.max {
			t.Errorf("Max(%v) = (%v, %v), expected (%v, %v)", tt.series, max, ok, tt.max, tt.expected)
		}
	}
}

func TestSeriesSegments(t *testing.T) {
	nan := math.NaN()
	s := Series{{1980, 1}, {1981, 2}, {1982, nan}, {1983, nan}, {1984, 5}, {1985, nan}}

	segs := s.Segments()
	if len(segs) != 2 {
		t.Fatalf("Expected 2 segments, got %d", len(segs))
	}
	if len(segs[0]) != 2 || len(segs[1]) != 1 || segs[1][0].Year != 1984 {
		t.Errorf("Unexpected segments %v", segs)
	}
	if len(s.Valid()) != 3 {
		t.Errorf("Expected 3 valid points, got %d", len(s.Valid()))
	}
}

func TestYearValueJSON(t *testing.T) {
	var p YearValue
	if err := json.Unmarshal([]byte(`{"year":1981,"value":null}`), &p); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if p.Year != 1981 || p.HasValue() {
		t.Errorf("Expected 1981 without value, got %+v", p)
	}
}

func TestFrameWithSeries(t *testing.T) {
	f := Frame{Title: "x"}
	if !f.Empty() {
		t.Errorf("Expected new frame to be empty")
	}
	g := f.WithSeries(FieldCoverage, Series{{1980, 90}})
	if f.Coverage != nil {
		t.Errorf("WithSeries modified the original frame")
	}
	if g.Empty() || len(g.Series(FieldCoverage)) != 1 || g.Series(FieldIncidence) != nil {
		t.Errorf("Unexpected frame %+v", g)
	}
}
