// Package countries resolves country codes to table rows.
package countries

import (
	_ "embed"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ukaji3/polioviz-go/pkg/polioviz/models"
)

//go:embed countries.csv
var defaultCSV string

// ErrUnknownCountry indicates a code absent from the registry.
var ErrUnknownCountry = errors.New("unknown country")

// ErrRowMismatch indicates a table row that does not belong to the registry
// entry at the same position.
var ErrRowMismatch = errors.New("table row does not match country list")

// ErrDuplicateCode indicates a code listed twice.
var ErrDuplicateCode = errors.New("duplicate country code")

// UnknownCountryError reports the code that failed to resolve.
type UnknownCountryError struct {
	Code string
}

func (e *UnknownCountryError) Error() string {
	return fmt.Sprintf("unknown country code %q", e.Code)
}

func (e *UnknownCountryError) Unwrap() error {
	return ErrUnknownCountry
}

// MismatchError reports a row whose identifier is not the expected country.
type MismatchError struct {
	Table string
	Row   int
	Want  models.Country
	Got   string
}

func (e *MismatchError) Error() string {
	return fmt.Sprintf("%s row %d: expected %s (%s), got %q", e.Table, e.Row, e.Want.Name, e.Want.Code, e.Got)
}

func (e *MismatchError) Unwrap() error {
	return ErrRowMismatch
}

// Registry is an ordered country code table. The position of a country in
// the registry is its row index in the datasets. Entries without a code hold
// their row but cannot be selected.
type Registry struct {
	entries []models.Country
	index   map[string]int
}

// New builds a registry from entries in row order. An entry with a blank
// code keeps its row position and is left out of Lookup, Resolve, and
// Countries.
func New(entries []models.Country) (*Registry, error) {
	r := &Registry{
		entries: make([]models.Country, 0, len(entries)),
		index:   make(map[string]int, len(entries)),
	}
	for _, c := range entries {
		c.Code = normalize(c.Code)
		c.Name = strings.TrimSpace(c.Name)
		if c.Code != "" {
			if _, dup := r.index[c.Code]; dup {
				return nil, fmt.Errorf("%w: %s", ErrDuplicateCode, c.Code)
			}
			r.index[c.Code] = len(r.entries)
		}
		r.entries = append(r.entries, c)
	}
	return r, nil
}

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the built-in registry of WHO member states.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Read(strings.NewReader(defaultCSV))
		if err != nil {
			panic(fmt.Sprintf("countries: embedded table: %v", err))
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Read parses a "code,name" CSV with a header line.
func Read(rd io.Reader) (*Registry, error) {
	cr := csv.NewReader(rd)
	cr.FieldsPerRecord = 2

	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) > 0 {
		records = records[1:]
	}

	entries := make([]models.Country, 0, len(records))
	for _, rec := range records {
		entries = append(entries, models.Country{Code: rec[0], Name: rec[1]})
	}
	return New(entries)
}

// Load reads a registry from a "code,name" CSV file.
func Load(path string) (*Registry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Read(f)
}

// FromTable builds a registry from a table's own code column, naming each
// country by the table's identifier column. Rows without a code, such as
// regional totals, keep their position so every code resolves to its own row.
func FromTable(t *models.Table, codeColumn string) (*Registry, error) {
	if !t.HasColumn(codeColumn) {
		return nil, fmt.Errorf("code column %q not found in %s", codeColumn, t.Name)
	}
	entries := make([]models.Country, 0, t.Len())
	for i, row := range t.Rows {
		entries = append(entries, models.Country{Code: row[codeColumn], Name: t.ID(i)})
	}
	return New(entries)
}

// Len returns the number of selectable countries.
func (r *Registry) Len() int {
	return len(r.index)
}

// Rows returns the number of table rows the registry describes, including
// rows without a code.
func (r *Registry) Rows() int {
	return len(r.entries)
}

// Countries returns the selectable entries in row order.
func (r *Registry) Countries() []models.Country {
	out := make([]models.Country, 0, len(r.index))
	for _, c := range r.entries {
		if c.Code != "" {
			out = append(out, c)
		}
	}
	return out
}

// Lookup returns the country for code.
func (r *Registry) Lookup(code string) (models.Country, bool) {
	i, ok := r.index[normalize(code)]
	if !ok {
		return models.Country{}, false
	}
	return r.entries[i], true
}

// Resolve returns the row index for code.
func (r *Registry) Resolve(code string) (int, error) {
	i, ok := r.index[normalize(code)]
	if !ok {
		return -1, &UnknownCountryError{Code: code}
	}
	return i, nil
}

// Validate checks that row i of t identifies entry i, by name or by code.
// Every mismatching row is reported; rows past the end of the registry are
// ignored.
func (r *Registry) Validate(t *models.Table) error {
	var errs []error
	for i, want := range r.entries {
		got := strings.TrimSpace(t.ID(i))
		if strings.EqualFold(got, want.Name) || strings.EqualFold(got, want.Code) {
			continue
		}
		errs = append(errs, &MismatchError{Table: t.Name, Row: i, Want: want, Got: got})
	}
	return errors.Join(errs...)
}

func normalize(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
