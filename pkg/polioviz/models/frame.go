package models

// Frame is everything one render pass draws for the current selection.
// Incidence and Coverage stay nil until their dataset has arrived, so a frame
// may be rendered with either, both, or neither series.
type Frame struct {
	// Version is the selection token the frame was built for.
	Version uint64 `json:"version"`
	// Country is the selected country; zero before any selection.
	Country Country `json:"country"`
	// Title is the chart title.
	Title string `json:"title"`
	// Incidence is the new-case series, or nil when unavailable.
	Incidence Series `json:"incidence"`
	// Coverage is the vaccine coverage series, or nil when unavailable.
	Coverage Series `json:"coverage"`
}

// Series returns the series for field.
func (f Frame) Series(field Field) Series {
	switch field {
	case FieldIncidence:
		return f.Incidence
	case FieldCoverage:
		return f.Coverage
	}
	return nil
}

// WithSeries returns a copy of f carrying s for field.
func (f Frame) WithSeries(field Field, s Series) Frame {
	switch field {
	case FieldIncidence:
		f.Incidence = s
	case FieldCoverage:
		f.Coverage = s
	}
	return f
}

// Empty reports whether neither series has any point.
func (f Frame) Empty() bool {
	return len(f.Incidence) == 0 && len(f.Coverage) == 0
}
