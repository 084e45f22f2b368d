package models

// ChartSeries represents series metadata for a workbook chart.
type ChartSeries struct {
	// Name is the series display name.
	Name string `json:"name"`
	// NameRange is the range reference for the series name.
	NameRange string `json:"name_range,omitempty"`
	// XRange is the range reference for X axis values.
	XRange string `json:"x_range,omitempty"`
	// YRange is the range reference for Y axis values.
	YRange string `json:"y_range,omitempty"`
}

// ValueAxis represents one value axis of a workbook chart.
type ValueAxis struct {
	// Title is the axis title.
	Title string `json:"title,omitempty"`
	// Min is the fixed minimum, nil when automatic.
	Min *float64 `json:"min,omitempty"`
	// Max is the fixed maximum, nil when automatic.
	Max *float64 `json:"max,omitempty"`
}

// Chart represents chart metadata read back from a workbook.
type Chart struct {
	// Path is the chart part inside the package (e.g., xl/charts/chart1.xml).
	Path string `json:"path"`
	// ChartTypes lists the plot types in the chart (e.g., Line).
	ChartTypes []string `json:"chart_types"`
	// Title is the chart title.
	Title string `json:"title,omitempty"`
	// Series is the list of series included in the chart, across plot types.
	Series []ChartSeries `json:"series"`
	// ValueAxes lists the value axes in document order.
	ValueAxes []ValueAxis `json:"value_axes,omitempty"`
}
