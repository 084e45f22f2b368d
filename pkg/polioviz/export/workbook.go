// Package export writes chart data to Excel workbooks.
package export

import (
	"fmt"
	"sort"

	"github.com/ukaji3/polioviz-go/pkg/polioviz/models"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/render"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/scale"
	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet holding the long-format table.
const SheetName = "Series"

// Workbook builds a workbook with one row per year (Year, Incidence,
// Coverage) and a line chart: incidence on the primary axis, coverage on a
// secondary axis fixed to 0..100. Missing values are left blank and shown
// as gaps.
func Workbook(f models.Frame) (*excelize.File, error) {
	wb := excelize.NewFile()
	if err := wb.SetSheetName("Sheet1", SheetName); err != nil {
		wb.Close()
		return nil, err
	}

	header := []interface{}{"Year", "Incidence", "Coverage"}
	if err := wb.SetSheetRow(SheetName, "A1", &header); err != nil {
		wb.Close()
		return nil, err
	}

	years := years(f.Incidence, f.Coverage)
	for i, year := range years {
		row := []interface{}{year, cellValue(f.Incidence, year), cellValue(f.Coverage, year)}
		for col, v := range row {
			if v == nil {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, i+2)
			if err := wb.SetCellValue(SheetName, cell, v); err != nil {
				wb.Close()
				return nil, err
			}
		}
	}

	if len(years) > 0 {
		if err := addChart(wb, f, len(years)); err != nil {
			wb.Close()
			return nil, err
		}
	}
	return wb, nil
}

// WriteFile saves the workbook for f to path.
func WriteFile(path string, f models.Frame) error {
	wb, err := Workbook(f)
	if err != nil {
		return err
	}
	defer wb.Close()
	return wb.SaveAs(path)
}

func addChart(wb *excelize.File, f models.Frame, n int) error {
	last := n + 1
	categories := fmt.Sprintf("%s!$A$2:$A$%d", SheetName, last)
	marker := excelize.ChartMarker{Symbol: "circle", Size: 5}

	zero, full := 0.0, float64(scale.CoverageMax)
	incidenceAxis := excelize.ChartAxis{
		Minimum: &zero,
		Title:   []excelize.RichTextRun{{Text: render.IncidenceAxisLabel}},
	}
	if y, err := scale.Incidence(f.Incidence, 1); err == nil {
		_, hi := y.Domain()
		incidenceAxis.Maximum = &hi
	}

	primary := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       SheetName + "!$B$1",
			Categories: categories,
			Values:     fmt.Sprintf("%s!$B$2:$B$%d", SheetName, last),
			Marker:     marker,
		}},
		Title:        []excelize.RichTextRun{{Text: f.Title}},
		Dimension:    excelize.ChartDimension{Width: 960, Height: 480},
		Legend:       excelize.ChartLegend{Position: "bottom"},
		XAxis:        excelize.ChartAxis{Title: []excelize.RichTextRun{{Text: render.XAxisLabel}}},
		YAxis:        incidenceAxis,
		ShowBlanksAs: "gap",
	}
	secondary := &excelize.Chart{
		Type: excelize.Line,
		Series: []excelize.ChartSeries{{
			Name:       SheetName + "!$C$1",
			Categories: categories,
			Values:     fmt.Sprintf("%s!$C$2:$C$%d", SheetName, last),
			Marker:     marker,
		}},
		YAxis: excelize.ChartAxis{
			Secondary: true,
			Minimum:   &zero,
			Maximum:   &full,
			Title:     []excelize.RichTextRun{{Text: render.CoverageAxisLabel}},
		},
	}
	return wb.AddChart(SheetName, "E2", primary, secondary)
}

func years(series ...models.Series) []int {
	seen := make(map[int]bool)
	var out []int
	for _, s := range series {
		for _, p := range s {
			if !seen[p.Year] {
				seen[p.Year] = true
				out = append(out, p.Year)
			}
		}
	}
	sort.Ints(out)
	return out
}

// cellValue returns the value for year, or nil when the cell stays blank.
func cellValue(s models.Series, year int) interface{} {
	p, ok := s.At(year)
	if !ok || !p.HasValue() {
		return nil
	}
	return p.Value
}
