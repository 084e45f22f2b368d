package render

import (
	"math"
	"strconv"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var printer = message.NewPrinter(language.English)

// formatYear prints a year tick without digit grouping.
func formatYear(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// formatValue prints a value tick with digit grouping ("12,000").
func formatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e15 {
		return printer.Sprintf("%d", int64(v))
	}
	return printer.Sprintf("%v", math.Round(v*1e6)/1e6)
}
