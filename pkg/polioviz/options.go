package polioviz

import (
	"log"

	"github.com/ukaji3/polioviz-go/pkg/polioviz/countries"
)

// Options configures Open.
type Options struct {
	// Registry overrides the country table. If nil, the table comes from
	// Config.CountriesPath, then from the incidence table's code column,
	// then from the built-in list.
	Registry *countries.Registry
	// Strict turns a registry/table row mismatch into an error.
	// If nil, mismatches are logged and loading continues.
	Strict *bool
	// Logger receives load warnings. If nil, the standard logger is used.
	Logger *log.Logger
}

// DefaultOptions returns default open options.
func DefaultOptions() Options {
	return Options{}
}

// ShouldFailOnMismatch returns whether a row mismatch aborts Open.
func (o Options) ShouldFailOnMismatch() bool {
	if o.Strict != nil {
		return *o.Strict
	}
	return false
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return log.Default()
}
