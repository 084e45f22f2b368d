package parser

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/ukaji3/polioviz-go/pkg/polioviz/models"
)

// Options configures series extraction.
type Options struct {
	// IncludeZeroYear keeps a column whose header parses to 0. By default such
	// a header is treated as non-numeric and dropped.
	IncludeZeroYear bool
}

// Extract reshapes row rowIndex of table into a long-format series for field.
func Extract(table *models.Table, rowIndex int, field models.Field) (models.Series, error) {
	return Options{}.Extract(table, rowIndex, field)
}

// Extract reshapes row rowIndex of table into a long-format series for field.
// Only year columns are kept, in ascending year order. A cell that is empty
// or not a finite number yields a NaN value for its year.
func (o Options) Extract(table *models.Table, rowIndex int, field models.Field) (models.Series, error) {
	if !field.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	if rowIndex < 0 || rowIndex >= table.Len() {
		return nil, &IndexError{Index: rowIndex, Len: table.Len()}
	}

	row := table.Rows[rowIndex]
	columns := o.YearColumns(table.Columns)

	series := make(models.Series, 0, len(columns))
	for _, col := range columns {
		series = append(series, models.YearValue{
			Year:  col.Year,
			Value: coerceValue(row[col.Header]),
		})
	}
	return series, nil
}

// YearColumn is a header recognised as a year.
type YearColumn struct {
	Header string
	Year   int
}

// YearColumns returns the year headers among columns, sorted by year.
// A later duplicate of the same header is ignored.
func (o Options) YearColumns(columns []string) []YearColumn {
	seen := make(map[string]bool, len(columns))
	var out []YearColumn
	for _, h := range columns {
		if seen[h] {
			continue
		}
		seen[h] = true
		if year, ok := o.parseYear(h); ok {
			out = append(out, YearColumn{Header: h, Year: year})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// parseYear reports whether header is a finite integral number, and non-zero
// unless IncludeZeroYear is set.
func (o Options) parseYear(header string) (int, bool) {
	s := strings.TrimSpace(header)
	if s == "" {
		return 0, false
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, false
	}
	if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
		return 0, false
	}
	if v == 0 && !o.IncludeZeroYear {
		return 0, false
	}
	return int(v), true
}

// coerceValue parses a cell as a number. Empty, non-numeric, and non-finite
// cells become NaN.
func coerceValue(cell string) float64 {
	s := strings.TrimSpace(cell)
	if s == "" {
		return math.NaN()
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsInf(v, 0) {
		return math.NaN()
	}
	return v
}
