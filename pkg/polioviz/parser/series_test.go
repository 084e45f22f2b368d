package parser

import (
	"errors"
	"math"
	"strings"
	"testing"

	"github.com/ukaji3/polioviz-go/pkg/polioviz/models"
)

func mustReadCSV(t *testing.T, data string) *models.Table {
	t.Helper()
	table, err := ReadCSV(strings.NewReader(data), "test.csv", "Cname")
	if err != nil {
		t.Fatalf("ReadCSV failed: %v", err)
	}
	return table
}

func TestExtractAfghanistan(t *testing.T) {
	table := mustReadCSV(t, "Cname,1980,1981,1982\nAfghanistan,100,,50\n")

	series, err := Extract(table, 0, models.FieldIncidence)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(series) != 3 {
		t.Fatalf("Expected 3 points, got %d", len(series))
	}

	expected := []struct {
		year  int
		value float64
	}{
		{1980, 100},
		{1981, math.NaN()},
		{1982, 50},
	}
	for i, tt := range expected {
		got := series[i]
		if got.Year != tt.year {
			t.Errorf("series[%d].Year = %d, expected %d", i, got.Year, tt.year)
		}
		if math.IsNaN(tt.value) {
			if got.HasValue() {
				t.Errorf("series[%d].Value = %v, expected NaN", i, got.Value)
			}
			continue
		}
		if got.Value != tt.value {
			t.Errorf("series[%d].Value = %v, expected %v", i, got.Value, tt.value)
		}
	}
}

func TestExtractKeepsOnlyYearColumns(t *testing.T) {
	table := mustReadCSV(t,
		"WHO_REGION,ISO_code,Cname,Disease,2018,2017,0,1e3,1980.5,x2000\n"+
			"EMR,AFG,Afghanistan,polio,21,14,7,9,3,1\n")

	series, err := Extract(table, 0, models.FieldIncidence)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}

	years := series.Years()
	expected := []int{1000, 2017, 2018}
	if len(years) != len(expected) {
		t.Fatalf("Years() = %v, expected %v", years, expected)
	}
	for i := range expected {
		if years[i] != expected[i] {
			t.Errorf("Years()[%d] = %d, expected %d", i, years[i], expected[i])
		}
	}
	if p, _ := series.At(2018); p.Value != 21 {
		t.Errorf("value for 2018 = %v, expected 21", p.Value)
	}
}

func TestExtractIncludeZeroYear(t *testing.T) {
	table := mustReadCSV(t, "Cname,0,1\nX,5,6\n")

	series, err := Options{IncludeZeroYear: true}.Extract(table, 0, models.FieldCoverage)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(series) != 2 || series[0].Year != 0 || series[0].Value != 5 {
		t.Errorf("Extract with IncludeZeroYear = %v, expected year 0 first", series)
	}

	series, err = Extract(table, 0, models.FieldCoverage)
	if err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if len(series) != 1 || series[0].Year != 1 {
		t.Errorf("Extract = %v, expected only year 1", series)
	}
}

func TestExtractIndexError(t *testing.T) {
	table := mustReadCSV(t, "Cname,1980\nA,1\n")

	tests := []int{-1, 1, 42}
	for _, idx := range tests {
		_, err := Extract(table, idx, models.FieldIncidence)
		if !errors.Is(err, ErrIndexOutOfRange) {
			t.Errorf("Extract(%d) error = %v, expected ErrIndexOutOfRange", idx, err)
		}
		var ie *IndexError
		if !errors.As(err, &ie) || ie.Index != idx || ie.Len != 1 {
			t.Errorf("Extract(%d) error = %#v, expected IndexError{%d, 1}", idx, err, idx)
		}
	}

	if _, err := Extract(nil, 0, models.FieldIncidence); !errors.Is(err, ErrIndexOutOfRange) {
		t.Errorf("Extract(nil) error = %v, expected ErrIndexOutOfRange", err)
	}
}

func TestExtractUnknownField(t *testing.T) {
	table := mustReadCSV(t, "Cname,1980\nA,1\n")
	if _, err := Extract(table, 0, models.Field("deaths")); !errors.Is(err, ErrUnknownField) {
		t.Errorf("Extract error = %v, expected ErrUnknownField", err)
	}
}

func TestExtractDoesNotMutateTable(t *testing.T) {
	table := mustReadCSV(t, "Cname,1982,1980\nA,2,1\n")
	before := strings.Join(table.Columns, ",")

	if _, err := Extract(table, 0, models.FieldIncidence); err != nil {
		t.Fatalf("Extract failed: %v", err)
	}
	if after := strings.Join(table.Columns, ","); after != before {
		t.Errorf("Columns changed from %q to %q", before, after)
	}
}

func TestCoerceValue(t *testing.T) {
	tests := []struct {
		input    string
		expected float64
	}{
		{"123", 123},
		{" 45.5 ", 45.5},
		{"-3", -3},
		{"1e2", 100},
		{"", math.NaN()},
		{"  ", math.NaN()},
		{"n/a", math.NaN()},
		{"Inf", math.NaN()},
	}

	for _, tt := range tests {
		result := coerceValue(tt.input)
		if math.IsNaN(tt.expected) {
			if !math.IsNaN(result) {
				t.Errorf("coerceValue(%q) = %v, expected NaN", tt.input, result)
			}
			continue
		}
		if result != tt.expected {
			t.Errorf("coerceValue(%q) = %v, expected %v", tt.input, result, tt.expected)
		}
	}
}

func TestParseYear(t *testing.T) {
	tests := []struct {
		header   string
		year     int
		expected bool
	}{
		{"1980", 1980, true},
		{" 2018 ", 2018, true},
		{"0", 0, false},
		{"", 0, false},
		{"Cname", 0, false},
		{"NaN", 0, false},
		{"Infinity", 0, false},
		{"1980.5", 0, false},
	}

	for _, tt := range tests {
		year, ok := Options{}.parseYear(tt.header)
		if ok != tt.expected || year != tt.year {
			t.Errorf("parseYear(%q) = (%d, %v), expected (%d, %v)",
				tt.header, year, ok, tt.year, tt.expected)
		}
	}
}
