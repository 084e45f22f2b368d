package models

// Country is one entry of the country code table.
type Country struct {
	// Code is the ISO 3166-1 alpha-3 code (e.g., "AFG").
	Code string `json:"code"`
	// Name is the display name (e.g., "Afghanistan").
	Name string `json:"name"`
}
