package countries

import (
	"errors"
	"strings"
	"testing"

	"github.com/ukaji3/polioviz-go/pkg/polioviz/models"
)

func TestDefaultRegistry(t *testing.T) {
	r := Default()
	if r.Len() != 194 {
		t.Errorf("Expected 194 countries, got %d", r.Len())
	}

	tests := []struct {
		code     string
		index    int
		expected string
	}{
		{"AFG", 0, "Afghanistan"},
		{"afg", 0, "Afghanistan"},
		{" ZWE ", 193, "Zimbabwe"},
	}

	for _, tt := range tests {
		idx, err := r.Resolve(tt.code)
		if err != nil {
			t.Errorf("Resolve(%q) failed: %v", tt.code, err)
			continue
		}
		if idx != tt.index {
			t.Errorf("Resolve(%q) = %d, expected %d", tt.code, idx, tt.index)
		}
		if c, _ := r.Lookup(tt.code); c.Name != tt.expected {
			t.Errorf("Lookup(%q) = %q, expected %q", tt.code, c.Name, tt.expected)
		}
	}
}

func TestResolveUnknown(t *testing.T) {
	_, err := Default().Resolve("XXX")
	if !errors.Is(err, ErrUnknownCountry) {
		t.Fatalf("Expected ErrUnknownCountry, got %v", err)
	}
	var ue *UnknownCountryError
	if !errors.As(err, &ue) || ue.Code != "XXX" {
		t.Errorf("Expected UnknownCountryError for XXX, got %#v", err)
	}
}

func TestNewDuplicate(t *testing.T) {
	_, err := New([]models.Country{{Code: "AFG", Name: "Afghanistan"}, {Code: "afg", Name: "Again"}})
	if !errors.Is(err, ErrDuplicateCode) {
		t.Errorf("Expected ErrDuplicateCode, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	r, err := Read(strings.NewReader("code,name\nAFG,Afghanistan\nALB,Albania\nDZA,Algeria\n"))
	if err != nil {
		t.Fatalf("Read failed: %v", err)
	}

	table := &models.Table{
		Name:     "incidence.csv",
		IDColumn: "Cname",
		Columns:  []string{"Cname"},
		Rows: []models.RawRow{
			{"Cname": "afghanistan"},
			{"Cname": "ALB"},
			{"Cname": "Angola"},
		},
	}

	err = r.Validate(table)
	if !errors.Is(err, ErrRowMismatch) {
		t.Fatalf("Expected ErrRowMismatch, got %v", err)
	}
	var me *MismatchError
	if !errors.As(err, &me) || me.Row != 2 || me.Got != "Angola" || me.Want.Code != "DZA" {
		t.Errorf("Unexpected mismatch: %#v", me)
	}

	table.Rows[2]["Cname"] = "Algeria"
	if err := r.Validate(table); err != nil {
		t.Errorf("Expected valid table, got %v", err)
	}
}

func TestFromTable(t *testing.T) {
	table := &models.Table{
		Name:     "coverage.csv",
		IDColumn: "Cname",
		Columns:  []string{"ISO_code", "Cname", "2018"},
		Rows: []models.RawRow{
			{"ISO_code": "AGO", "Cname": "Angola"},
			{"ISO_code": "AFG", "Cname": "Afghanistan"},
		},
	}

	r, err := FromTable(table, "ISO_code")
	if err != nil {
		t.Fatalf("FromTable failed: %v", err)
	}
	if idx, _ := r.Resolve("AFG"); idx != 1 {
		t.Errorf("Resolve(AFG) = %d, expected 1", idx)
	}
	if err := r.Validate(table); err != nil {
		t.Errorf("Expected table-derived registry to validate, got %v", err)
	}

	if _, err := FromTable(table, "code"); err == nil {
		t.Errorf("Expected error for missing code column")
	}
}

func TestFromTableBlankCode(t *testing.T) {
	table := &models.Table{
		Name:     "incidence.csv",
		IDColumn: "Cname",
		Columns:  []string{"Cname", "ISO_code", "1980"},
		Rows: []models.RawRow{
			{"Cname": "Afghanistan", "ISO_code": "AFG"},
			{"Cname": "Region total", "ISO_code": ""},
			{"Cname": "Albania", "ISO_code": "ALB"},
		},
	}

	r, err := FromTable(table, "ISO_code")
	if err != nil {
		t.Fatalf("FromTable failed: %v", err)
	}

	tests := []struct {
		code     string
		want     int
		wantName string
	}{
		{"AFG", 0, "Afghanistan"},
		{"ALB", 2, "Albania"},
	}
	for _, tt := range tests {
		idx, err := r.Resolve(tt.code)
		if err != nil {
			t.Fatalf("Resolve(%q) failed: %v", tt.code, err)
		}
		if idx != tt.want {
			t.Errorf("Resolve(%q) = %d, expected %d", tt.code, idx, tt.want)
		}
		if got := table.ID(idx); got != tt.wantName {
			t.Errorf("Resolve(%q) points at row %q", tt.code, got)
		}
	}

	if r.Len() != 2 || r.Rows() != 3 {
		t.Errorf("Len() = %d, Rows() = %d, expected 2 and 3", r.Len(), r.Rows())
	}
	for _, c := range r.Countries() {
		if c.Code == "" {
			t.Errorf("Countries() listed a row without a code: %+v", c)
		}
	}
	if _, err := r.Resolve(""); err == nil {
		t.Errorf("Expected a blank code to stay unresolvable")
	}
	if err := r.Validate(table); err != nil {
		t.Errorf("Expected table-derived registry to validate, got %v", err)
	}
}
