// Package polioviz charts polio incidence against vaccine coverage per country.
package polioviz

import (
	"fmt"

	"github.com/caarlos0/env/v11"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/parser"
	"github.com/ukaji3/polioviz-go/pkg/polioviz/render"
)

// Config holds dataset locations, chart geometry, and server settings.
type Config struct {
	IncidencePath string `env:"POLIOVIZ_INCIDENCE_PATH" envDefault:"data/polio_incidence.csv"`
	CoveragePath  string `env:"POLIOVIZ_COVERAGE_PATH"  envDefault:"data/polio_coverage_estimates.csv"`
	// CountriesPath is an optional "code,name" CSV listing countries in row order.
	CountriesPath string `env:"POLIOVIZ_COUNTRIES_PATH"`
	Sheet         string `env:"POLIOVIZ_SHEET"`
	IDColumn      string `env:"POLIOVIZ_ID_COLUMN"   envDefault:"Cname"`
	CodeColumn    string `env:"POLIOVIZ_CODE_COLUMN" envDefault:"ISO_code"`
	// IncludeZeroYear keeps a "0" column header as a year.
	IncludeZeroYear bool `env:"POLIOVIZ_INCLUDE_ZERO_YEAR"`

	Width        int `env:"POLIOVIZ_WIDTH"         envDefault:"1200"`
	Height       int `env:"POLIOVIZ_HEIGHT"        envDefault:"700"`
	MarginTop    int `env:"POLIOVIZ_MARGIN_TOP"    envDefault:"100"`
	MarginRight  int `env:"POLIOVIZ_MARGIN_RIGHT"  envDefault:"200"`
	MarginBottom int `env:"POLIOVIZ_MARGIN_BOTTOM" envDefault:"100"`
	MarginLeft   int `env:"POLIOVIZ_MARGIN_LEFT"   envDefault:"200"`
	XTicks       int `env:"POLIOVIZ_X_TICKS"       envDefault:"9"`

	Addr string `env:"POLIOVIZ_ADDR" envDefault:":8080"`
}

// LoadConfig reads the configuration from POLIOVIZ_* environment variables.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	return cfg, nil
}

// Dimensions returns the chart geometry.
func (c Config) Dimensions() render.Dimensions {
	return render.Dimensions{
		Width:  c.Width,
		Height: c.Height,
		Margin: render.Margin{
			Top:    c.MarginTop,
			Right:  c.MarginRight,
			Bottom: c.MarginBottom,
			Left:   c.MarginLeft,
		},
		XTicks: c.XTicks,
	}
}

// Validate checks that the chart leaves a positive plot area.
func (c Config) Validate() error {
	w, h := c.Dimensions().Inner()
	if w <= 0 || h <= 0 {
		return fmt.Errorf("chart %dx%d leaves no room inside its margins", c.Width, c.Height)
	}
	return nil
}

// LoadOptions returns the table loading options.
func (c Config) LoadOptions() parser.LoadOptions {
	return parser.LoadOptions{IDColumn: c.IDColumn, Sheet: c.Sheet}
}

// ExtractOptions returns the series extraction options.
func (c Config) ExtractOptions() parser.Options {
	return parser.Options{IncludeZeroYear: c.IncludeZeroYear}
}
