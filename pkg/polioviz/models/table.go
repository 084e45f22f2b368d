// Package models defines data structures for incidence and coverage charts.
package models

// RawRow maps a column header to the raw cell text of one table row.
type RawRow map[string]string

// Table is a wide-format dataset with one row per country and one column per year.
type Table struct {
	// Name is the source name (file base name or sheet name).
	Name string `json:"name"`
	// Columns lists the headers in file order.
	Columns []string `json:"columns"`
	// IDColumn is the header identifying the country of each row.
	IDColumn string `json:"id_column"`
	// Rows holds one RawRow per data line, in file order.
	Rows []RawRow `json:"rows"`
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// ID returns the identifier cell of row i, or "" when i is out of range.
func (t *Table) ID(i int) string {
	if t == nil || i < 0 || i >= len(t.Rows) {
		return ""
	}
	return t.Rows[i][t.IDColumn]
}

// HasColumn reports whether the table carries the given header.
func (t *Table) HasColumn(name string) bool {
	if t == nil {
		return false
	}
	for _, c := range t.Columns {
		if c == name {
			return true
		}
	}
	return false
}

// Column returns the cells of one column in row order.
func (t *Table) Column(name string) []string {
	if t == nil {
		return nil
	}
	out := make([]string, len(t.Rows))
	for i, row := range t.Rows {
		out[i] = row[name]
	}
	return out
}
