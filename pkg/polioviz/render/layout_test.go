package render

import (
	"math"
	"testing"

	"github.com/ukaji3/polioviz-go/pkg/polioviz/models"
)

func testDims() Dimensions {
	return Dimensions{
		Width:  1000,
		Height: 600,
		Margin: Margin{Top: 100, Right: 100, Bottom: 100, Left: 100},
	}
}

func afghanistan() models.Frame {
	return models.Frame{
		Title: "Afghanistan Polio Incidence",
		Incidence: models.Series{
			{Year: 1980, Value: 100},
			{Year: 1981, Value: math.NaN()},
			{Year: 1982, Value: 50},
		},
		Coverage: models.Series{
			{Year: 1980, Value: 20},
			{Year: 1981, Value: 40},
			{Year: 1982, Value: 130},
		},
	}
}

func TestLayoutGeometry(t *testing.T) {
	p := Layout(afghanistan(), testDims())

	if p.X == nil || p.Incidence == nil || p.Coverage == nil {
		t.Fatalf("Expected all axes, got %+v", p)
	}

	inc := p.Incidence
	if len(inc.Points) != 2 {
		t.Fatalf("Expected NaN point to be dropped, got %d points", len(inc.Points))
	}
	if len(inc.Segments) != 2 {
		t.Errorf("Expected the gap to split the line, got %d segments", len(inc.Segments))
	}

	tests := []struct {
		name string
		got  Point
		x, y float64
	}{
		{"incidence 1980", inc.Points[0], 0, 0},
		{"incidence 1982", inc.Points[1], 800, 200},
		{"coverage 1980", p.Coverage.Points[0], 0, 320},
		{"coverage 1981", p.Coverage.Points[1], 400, 240},
		{"coverage 1982 clamped", p.Coverage.Points[2], 800, 0},
	}
	for _, tt := range tests {
		if math.Abs(tt.got.X-tt.x) > 1e-9 || math.Abs(tt.got.Y-tt.y) > 1e-9 {
			t.Errorf("%s at (%v, %v), expected (%v, %v)", tt.name, tt.got.X, tt.got.Y, tt.x, tt.y)
		}
	}
}

func TestLayoutTicks(t *testing.T) {
	f := models.Frame{Incidence: models.Series{{Year: 1980, Value: 1234}, {Year: 2018, Value: 5}}}
	p := Layout(f, testDims())

	xt := p.X.Ticks
	if len(xt) != 8 || xt[0].Label != "1980" || xt[len(xt)-1].Label != "2015" {
		t.Errorf("Unexpected year ticks %+v", xt)
	}

	yt := p.Incidence.Axis.Ticks
	if last := yt[len(yt)-1]; last.Value != 1300 || last.Label != "1,300" || last.Pos != 0 {
		t.Errorf("Unexpected top incidence tick %+v", last)
	}
	if p.Coverage != nil {
		t.Errorf("Expected no coverage layer without coverage data")
	}
}

func TestLayoutEmptyFrame(t *testing.T) {
	p := Layout(models.Frame{Title: "Select a Country Below..."}, testDims())
	if p.X != nil || p.Incidence != nil || p.Coverage != nil {
		t.Errorf("Expected blank plot, got %+v", p)
	}
	if _, ok := p.Nearest(10); ok {
		t.Errorf("Expected no readout on a blank plot")
	}
}

func TestLayoutAllMissingIncidence(t *testing.T) {
	f := models.Frame{
		Incidence: models.Series{{Year: 1980, Value: math.NaN()}},
		Coverage:  models.Series{{Year: 1980, Value: 80}},
	}
	p := Layout(f, testDims())
	if p.Incidence != nil {
		t.Errorf("Expected incidence layer to be skipped")
	}
	if p.Coverage == nil || p.Coverage.Points[0].X != 400 {
		t.Errorf("Expected single coverage point centred, got %+v", p.Coverage)
	}
}

func TestNearest(t *testing.T) {
	p := Layout(afghanistan(), testDims())

	r, ok := p.Nearest(390)
	if !ok {
		t.Fatalf("Expected a readout")
	}
	if r.Year != 1981 || r.X != 400 {
		t.Errorf("Nearest(390) = %+v, expected year 1981 at x=400", r)
	}
	if !math.IsNaN(r.Incidence) || r.Coverage != 40 {
		t.Errorf("Nearest(390) values = (%v, %v), expected (NaN, 40)", r.Incidence, r.Coverage)
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		input    float64
		expected string
	}{
		{0, "0"},
		{100, "100"},
		{12000, "12,000"},
		{0.2, "0.2"},
	}
	for _, tt := range tests {
		if got := formatValue(tt.input); got != tt.expected {
			t.Errorf("formatValue(%v) = %q, expected %q", tt.input, got, tt.expected)
		}
	}
	if got := formatYear(1995); got != "1995" {
		t.Errorf("formatYear(1995) = %q, expected \"1995\"", got)
	}
}
