package parser

import (
	"testing"
)

const lineChartXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<c:chartSpace xmlns:c="http://schemas.openxmlformats.org/drawingml/2006/chart" xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main">
  <c:chart>
    <c:title><c:tx><c:rich><a:p><a:r><a:t>Afghanistan </a:t></a:r><a:r><a:t>Polio Incidence</a:t></a:r></a:p></c:rich></c:tx></c:title>
    <c:plotArea>
      <c:lineChart>
        <c:ser>
          <c:tx><c:strRef><c:f>Series!$B$1</c:f><c:strCache><c:pt idx="0"><c:v>Incidence</c:v></c:pt></c:strCache></c:strRef></c:tx>
          <c:cat><c:numRef><c:f>Series!$A$2:$A$4</c:f></c:numRef></c:cat>
          <c:val><c:numRef><c:f>Series!$B$2:$B$4</c:f></c:numRef></c:val>
        </c:ser>
      </c:lineChart>
      <c:lineChart>
        <c:ser>
          <c:tx><c:strRef><c:f>Series!$C$1</c:f></c:strRef></c:tx>
          <c:val><c:numRef><c:f>Series!$C$2:$C$4</c:f></c:numRef></c:val>
        </c:ser>
      </c:lineChart>
      <c:catAx><c:axId val="1"/></c:catAx>
      <c:valAx><c:scaling><c:orientation val="minMax"/></c:scaling></c:valAx>
      <c:valAx><c:scaling><c:max val="100"/><c:min val="0"/></c:scaling></c:valAx>
    </c:plotArea>
  </c:chart>
</c:chartSpace>`

func TestParseChartXML(t *testing.T) {
	chart := parseChartXML([]byte(lineChartXML))

	if chart.Title != "Afghanistan Polio Incidence" {
		t.Errorf("Expected title 'Afghanistan Polio Incidence', got %q", chart.Title)
	}
	if len(chart.ChartTypes) != 2 || chart.ChartTypes[0] != "Line" {
		t.Errorf("Expected two Line plots, got %v", chart.ChartTypes)
	}
	if len(chart.Series) != 2 {
		t.Fatalf("Expected 2 series, got %d", len(chart.Series))
	}
	if chart.Series[0].Name != "Incidence" || chart.Series[0].YRange != "Series!$B$2:$B$4" {
		t.Errorf("Unexpected first series: %+v", chart.Series[0])
	}
	if chart.Series[1].NameRange != "Series!$C$1" {
		t.Errorf("Expected name range 'Series!$C$1', got %q", chart.Series[1].NameRange)
	}

	if len(chart.ValueAxes) != 2 {
		t.Fatalf("Expected 2 value axes, got %d", len(chart.ValueAxes))
	}
	if chart.ValueAxes[0].Max != nil {
		t.Errorf("Expected automatic primary max, got %v", *chart.ValueAxes[0].Max)
	}
	secondary := chart.ValueAxes[1]
	if secondary.Min == nil || secondary.Max == nil || *secondary.Min != 0 || *secondary.Max != 100 {
		t.Errorf("Expected secondary axis [0,100], got %+v", secondary)
	}
}
