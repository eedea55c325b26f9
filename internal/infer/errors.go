package infer

import (
	"errors"
	"fmt"
	"strings"
)

// ErrorCode categorizes inference failures.
type ErrorCode string

const (
	// ErrCodeClosureViolation indicates a follow-up waza that never starts a combo.
	ErrCodeClosureViolation ErrorCode = "CLOSURE_VIOLATION"

	// ErrCodeDegenerateCombo indicates a combo whose ratio cannot be computed
	// (zero base damage, negative ratio, ratio too large to factorize).
	ErrCodeDegenerateCombo ErrorCode = "DEGENERATE_COMBO"

	// ErrCodeNoInference indicates there was nothing to vote on.
	ErrCodeNoInference ErrorCode = "NO_INFERENCE"
)

// Error is returned for every inference failure.
type Error struct {
	// Code identifies the error category.
	Code ErrorCode

	// Message is a human-readable description.
	Message string

	// Combo is the index of the offending combo in the dataset, or -1.
	Combo int

	// IDs lists the waza ids involved (missing ids for closure violations).
	IDs []string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s", e.Code, e.Message)
	if e.Combo >= 0 {
		fmt.Fprintf(&b, " (combo %d)", e.Combo)
	}
	if len(e.IDs) > 0 {
		fmt.Fprintf(&b, " [%s]", strings.Join(e.IDs, ", "))
	}
	return b.String()
}

// NewClosureError creates an Error for follow-up ids missing from the result map.
func NewClosureError(missing []string) *Error {
	return &Error{
		Code:    ErrCodeClosureViolation,
		Message: fmt.Sprintf("%d follow-up waza never start a multi-step combo", len(missing)),
		Combo:   -1,
		IDs:     missing,
	}
}

// NewDegenerateError creates an Error for a combo that cannot be observed.
func NewDegenerateError(combo int, message string, ids ...string) *Error {
	return &Error{
		Code:    ErrCodeDegenerateCombo,
		Message: message,
		Combo:   combo,
		IDs:     ids,
	}
}

// NewNoInferenceError creates an Error for an empty vote.
func NewNoInferenceError(message string) *Error {
	return &Error{
		Code:    ErrCodeNoInference,
		Message: message,
		Combo:   -1,
	}
}

// CodeOf returns the code of a wrapped *Error, or "" if err is not one.
func CodeOf(err error) ErrorCode {
	var ie *Error
	if errors.As(err, &ie) {
		return ie.Code
	}
	return ""
}

// IsClosureError returns true if err is a closure violation.
func IsClosureError(err error) bool {
	return CodeOf(err) == ErrCodeClosureViolation
}

// IsDegenerateError returns true if err is a degenerate combo error.
func IsDegenerateError(err error) bool {
	return CodeOf(err) == ErrCodeDegenerateCombo
}

// IsNoInferenceError returns true if err reports that nothing could be inferred.
func IsNoInferenceError(err error) bool {
	return CodeOf(err) == ErrCodeNoInference
}
