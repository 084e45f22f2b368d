package polioviz

import (
	"errors"
	"fmt"
)

// ErrFileNotFound indicates a dataset file does not exist.
var ErrFileNotFound = errors.New("file not found")

// DatasetError represents a failure loading one dataset.
type DatasetError struct {
	Dataset string // "incidence", "coverage", "countries"
	Path    string
	Err     error
}

func (e *DatasetError) Error() string {
	return fmt.Sprintf("load %s dataset %q: %v", e.Dataset, e.Path, e.Err)
}

func (e *DatasetError) Unwrap() error {
	return e.Err
}

// NewDatasetError creates a new DatasetError.
func NewDatasetError(dataset, path string, err error) *DatasetError {
	return &DatasetError{
		Dataset: dataset,
		Path:    path,
		Err:     err,
	}
}
