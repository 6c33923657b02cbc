package contract

import "fmt"

// ConfigError indicates invalid or unresolvable configuration, such as
// scoring weights that do not sum to 1.0. It is fatal and surfaced before
// any analyzer touches record data.
type ConfigError struct {
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "invalid configuration: " + e.Reason
}

// NewConfigError builds a ConfigError with a formatted reason.
func NewConfigError(format string, args ...any) *ConfigError {
	return &ConfigError{Reason: fmt.Sprintf(format, args...)}
}

// DataShapeError indicates a required field was absent or malformed in a
// raw record. The engine does not attempt partial scoring on malformed
// input; the error names the offending analyzer and record.
type DataShapeError struct {
	Component string // analyzer name, e.g. "activity"
	Field     string // record field that failed validation
	Index     int    // position of the record in its sequence
}

// Error implements the error interface.
func (e *DataShapeError) Error() string {
	return fmt.Sprintf("%s: record %d is missing required field %q", e.Component, e.Index, e.Field)
}

// NewDataShapeError builds a DataShapeError for the given analyzer, record
// index and field.
func NewDataShapeError(component, field string, index int) *DataShapeError {
	return &DataShapeError{Component: component, Field: field, Index: index}
}
