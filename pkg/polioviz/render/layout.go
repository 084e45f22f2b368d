// Package render lays out and draws the incidence/coverage chart.
package render

import (
	"errors"
	"math"
	"sort"

	"github.com/ukaji3/polioviz-go/pkg/polioviz/models"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/scale"
)

// Axis labels.
const (
	XAxisLabel         = "Year"
	IncidenceAxisLabel = "New Polio Cases"
	CoverageAxisLabel  = "Polio Vaccine Coverage"
)

// XTickCount is the requested number of year ticks.
const XTickCount = 9

// Margin is the space around the plot area, in pixels.
type Margin struct {
	Top, Right, Bottom, Left int
}

// Dimensions is the chart size and its margins.
type Dimensions struct {
	Width, Height int
	Margin        Margin
	// XTicks is the requested number of year ticks; 0 means XTickCount.
	XTicks int
}

// DefaultDimensions returns a 1200x700 chart with wide side margins for the axis labels.
func DefaultDimensions() Dimensions {
	return Dimensions{
		Width:  1200,
		Height: 700,
		Margin: Margin{Top: 100, Right: 200, Bottom: 100, Left: 200},
	}
}

// Inner returns the plot area size.
func (d Dimensions) Inner() (width, height float64) {
	width = float64(d.Width - d.Margin.Left - d.Margin.Right)
	height = float64(d.Height - d.Margin.Top - d.Margin.Bottom)
	return math.Max(0, width), math.Max(0, height)
}

// Tick is an axis tick at a pixel position inside the plot area.
type Tick struct {
	Value float64 `json:"value"`
	Label string  `json:"label"`
	Pos   float64 `json:"pos"`
}

// Axis is a scale with its ticks.
type Axis struct {
	Label string       `json:"label"`
	Scale scale.Linear `json:"-"`
	Ticks []Tick       `json:"ticks"`
}

// Point is a data point placed in the plot area.
type Point struct {
	Year  int     `json:"year"`
	Value float64 `json:"value"`
	X     float64 `json:"x"`
	Y     float64 `json:"y"`
}

// Layer is one series drawn against its own vertical axis. Points without
// data are left out; Segments breaks the line where they were.
type Layer struct {
	Field    models.Field `json:"field"`
	Axis     Axis         `json:"axis"`
	Points   []Point      `json:"points"`
	Segments [][]Point    `json:"segments"`
}

// Plot is the full chart geometry. X is nil when no series has a year;
// a layer is nil when its series is missing or has no value to scale.
type Plot struct {
	Title      string     `json:"title"`
	Dimensions Dimensions `json:"dimensions"`
	X          *Axis      `json:"x,omitempty"`
	Incidence  *Layer     `json:"incidence,omitempty"`
	Coverage   *Layer     `json:"coverage,omitempty"`
}

// Layout computes the chart geometry for a frame. Both vertical scales
// share one horizontal scale spanning the years of every available series.
func Layout(f models.Frame, dims Dimensions) Plot {
	innerW, innerH := dims.Inner()
	p := Plot{Title: f.Title, Dimensions: dims}

	x, err := scale.Time(unionYears(f.Incidence, f.Coverage), innerW)
	if errors.Is(err, scale.ErrEmptyDomain) {
		return p
	}
	count := dims.XTicks
	if count <= 0 {
		count = XTickCount
	}
	p.X = &Axis{Label: XAxisLabel, Scale: x, Ticks: ticks(x, count, formatYear)}

	if y, err := scale.Incidence(f.Incidence, innerH); err == nil {
		p.Incidence = layer(models.FieldIncidence, IncidenceAxisLabel, f.Incidence, x, y)
	}
	if len(f.Coverage) > 0 {
		y := scale.Coverage(innerH).Clamped()
		p.Coverage = layer(models.FieldCoverage, CoverageAxisLabel, f.Coverage, x, y)
	}
	return p
}

func layer(field models.Field, label string, s models.Series, x, y scale.Linear) *Layer {
	l := &Layer{
		Field: field,
		Axis:  Axis{Label: label, Scale: y, Ticks: ticks(y, scale.NiceCount, formatValue)},
	}
	for _, seg := range s.Segments() {
		pts := make([]Point, len(seg))
		for i, p := range seg {
			pts[i] = Point{Year: p.Year, Value: p.Value, X: x.Map(float64(p.Year)), Y: y.Map(p.Value)}
		}
		l.Points = append(l.Points, pts...)
		l.Segments = append(l.Segments, pts)
	}
	return l
}

func ticks(s scale.Linear, count int, format func(float64) string) []Tick {
	d0, d1 := s.Domain()
	values := scale.Ticks(d0, d1, count)
	out := make([]Tick, len(values))
	for i, v := range values {
		out[i] = Tick{Value: v, Label: format(v), Pos: s.Map(v)}
	}
	return out
}

// unionYears returns one point per distinct year across the series.
func unionYears(series ...models.Series) models.Series {
	seen := make(map[int]bool)
	var out models.Series
	for _, s := range series {
		for _, p := range s {
			if !seen[p.Year] {
				seen[p.Year] = true
				out = append(out, models.YearValue{Year: p.Year, Value: p.Value})
			}
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Year < out[j].Year })
	return out
}

// Readout is the data under a horizontal pixel position.
type Readout struct {
	Year int `json:"year"`
	// Incidence and Coverage are NaN when the year has no data.
	Incidence float64 `json:"-"`
	Coverage  float64 `json:"-"`
	X         float64 `json:"x"`
}

// Nearest returns the values for the year closest to pixel px in the plot
// area. ok is false when the plot has no horizontal axis.
func (p Plot) Nearest(px float64) (r Readout, ok bool) {
	if p.X == nil {
		return Readout{}, false
	}
	target := p.X.Scale.Invert(px)

	best, bestD := 0, math.Inf(1)
	for _, l := range []*Layer{p.Incidence, p.Coverage} {
		if l == nil {
			continue
		}
		for _, pt := range l.Points {
			if d := math.Abs(float64(pt.Year) - target); d < bestD {
				best, bestD = pt.Year, d
			}
		}
	}
	if math.IsInf(bestD, 1) {
		return Readout{}, false
	}

	r = Readout{Year: best, Incidence: math.NaN(), Coverage: math.NaN(), X: p.X.Scale.Map(float64(best))}
	if v, found := valueAt(p.Incidence, best); found {
		r.Incidence = v
	}
	if v, found := valueAt(p.Coverage, best); found {
		r.Coverage = v
	}
	return r, true
}

func valueAt(l *Layer, year int) (float64, bool) {
	if l == nil {
		return 0, false
	}
	for _, pt := range l.Points {
		if pt.Year == year {
			return pt.Value, true
		}
	}
	return 0, false
}
