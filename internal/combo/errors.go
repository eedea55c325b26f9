package combo

import (
	"errors"
	"fmt"
)

// LoadErrorCode categorizes dataset load failures.
type LoadErrorCode string

const (
	// ErrCodeNotFound indicates the dataset file does not exist.
	ErrCodeNotFound LoadErrorCode = "LOAD_NOT_FOUND"

	// ErrCodeRead indicates the file exists but could not be read.
	ErrCodeRead LoadErrorCode = "LOAD_READ"

	// ErrCodeParse indicates malformed YAML, unknown fields or an empty document.
	ErrCodeParse LoadErrorCode = "LOAD_PARSE"

	// ErrCodeSchema indicates well-formed YAML that does not match the dataset schema.
	ErrCodeSchema LoadErrorCode = "LOAD_SCHEMA"
)

// LoadError is returned for every failure to turn a file into combos.
type LoadError struct {
	Code    LoadErrorCode
	Path    string
	Message string
	Err     error
}

func (e *LoadError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

// IsLoadError returns true if err is or wraps a *LoadError.
func IsLoadError(err error) bool {
	var le *LoadError
	return errors.As(err, &le)
}

// LoadErrorCodeOf returns the code of a wrapped *LoadError, or "" if err is not one.
func LoadErrorCodeOf(err error) LoadErrorCode {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Code
	}
	return ""
}
