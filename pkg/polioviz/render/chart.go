package render

import (
	"fmt"
	"io"
	"strings"

	"github.com/ukaji3/polioviz-go/pkg/polioviz/scale"
	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Format is an output image format.
type Format string

const (
	// FormatSVG renders a scalable vector image.
	FormatSVG Format = "svg"
	// FormatPNG renders a raster image.
	FormatPNG Format = "png"
)

// ParseFormat returns the format named by s (case-insensitive).
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(strings.TrimSpace(s))) {
	case FormatSVG:
		return FormatSVG, nil
	case FormatPNG:
		return FormatPNG, nil
	}
	return "", fmt.Errorf("invalid format: %s (must be svg or png)", s)
}

// ContentType returns the MIME type of the format.
func (f Format) ContentType() string {
	if f == FormatPNG {
		return "image/png"
	}
	return "image/svg+xml"
}

var (
	incidenceColor = drawing.ColorFromHex("d62728")
	coverageColor  = drawing.ColorFromHex("1f77b4")
)

// lineStyle draws a line with a dot at every point.
func lineStyle(col drawing.Color) chart.Style {
	return chart.Style{
		StrokeWidth: 2,
		StrokeColor: col,
		DotWidth:    3,
		DotColor:    col,
	}
}

// Chart converts a plot into a go-chart definition. go-chart draws its
// primary Y axis on the right, so coverage is primary and incidence is
// secondary.
func Chart(p Plot) chart.Chart {
	m := p.Dimensions.Margin
	ch := chart.Chart{
		Title:      p.Title,
		Width:      p.Dimensions.Width,
		Height:     p.Dimensions.Height,
		Background: chart.Style{Padding: chart.Box{Top: m.Top, Left: m.Left, Right: m.Right, Bottom: m.Bottom}},
		XAxis:      chart.XAxis{Name: XAxisLabel},
		YAxis: chart.YAxis{
			Name:  CoverageAxisLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: scale.CoverageMax},
		},
		YAxisSecondary: chart.YAxis{
			Name:  IncidenceAxisLabel,
			Range: &chart.ContinuousRange{Min: 0, Max: 1},
		},
	}

	xMin, xMax := 0.0, 1.0
	if p.X != nil {
		xMin, xMax = p.X.Scale.Domain()
		if p.X.Scale.Degenerate() {
			// Keeps a lone year in the middle, like the degenerate scale.
			xMin, xMax = xMin-0.5, xMax+0.5
		}
		ch.XAxis.Ticks = chartTicks(p.X.Ticks)
	}
	ch.XAxis.Range = &chart.ContinuousRange{Min: xMin, Max: xMax}

	if l := p.Incidence; l != nil {
		d0, d1 := l.Axis.Scale.Domain()
		ch.YAxisSecondary.Range = &chart.ContinuousRange{Min: d0, Max: d1}
		ch.YAxisSecondary.Ticks = chartTicks(l.Axis.Ticks)
		ch.Series = append(ch.Series, layerSeries(l, "Incidence", chart.YAxisSecondary, incidenceColor)...)
	}
	if l := p.Coverage; l != nil {
		ch.YAxis.Ticks = chartTicks(l.Axis.Ticks)
		ch.Series = append(ch.Series, layerSeries(l, "Coverage (%)", chart.YAxisPrimary, coverageColor)...)
	}

	if len(ch.Series) == 0 {
		// go-chart refuses to draw without a series.
		ch.Series = []chart.Series{chart.ContinuousSeries{
			XValues: []float64{xMin, xMax},
			YValues: []float64{0, 0},
			Style:   chart.Style{StrokeColor: drawing.ColorTransparent},
		}}
	} else {
		ch.Elements = []chart.Renderable{chart.Legend(&ch)}
	}
	return ch
}

// layerSeries returns one go-chart series per segment; only the first
// carries the name so the legend lists the layer once.
func layerSeries(l *Layer, name string, axis chart.YAxisType, col drawing.Color) []chart.Series {
	lo, hi := l.Axis.Scale.Domain()
	out := make([]chart.Series, 0, len(l.Segments))
	for i, seg := range l.Segments {
		s := chart.ContinuousSeries{
			YAxis:   axis,
			Style:   lineStyle(col),
			XValues: make([]float64, len(seg)),
			YValues: make([]float64, len(seg)),
		}
		if i == 0 {
			s.Name = name
		}
		for j, pt := range seg {
			s.XValues[j] = float64(pt.Year)
			s.YValues[j] = clamp(pt.Value, lo, hi)
		}
		out = append(out, s)
	}
	return out
}

func chartTicks(ticks []Tick) []chart.Tick {
	if len(ticks) == 0 {
		return nil
	}
	out := make([]chart.Tick, len(ticks))
	for i, t := range ticks {
		out[i] = chart.Tick{Value: t.Value, Label: t.Label}
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Render draws the plot to w in the given format.
func Render(w io.Writer, p Plot, format Format) error {
	ch := Chart(p)
	provider := chart.SVG
	if format == FormatPNG {
		provider = chart.PNG
	}
	if err := ch.Render(provider, w); err != nil {
		return fmt.Errorf("render %s: %w", format, err)
	}
	return nil
}
