package cli

import (
	"errors"

	"github.com/roach88/hosei/internal/combo"
	"github.com/roach88/hosei/internal/infer"
	"github.com/roach88/hosei/internal/store"
)

// Error code constants - unified across all CLI commands.
const (
	ErrCodeGeneric  = "E001" // Generic/unknown error
	ErrCodeParse    = "E002" // Malformed YAML, unknown field or empty document
	ErrCodeSchema   = "E003" // Dataset does not match the combo schema
	ErrCodeRead     = "E004" // File exists but could not be read
	ErrCodeNotFound = "E005" // Path not found

	ErrCodeClosure     = "E010" // Follow-up waza never starts a combo
	ErrCodeDegenerate  = "E011" // Combo ratio cannot be computed
	ErrCodeNoInference = "E012" // Nothing to vote on

	ErrCodeDatabase    = "E020" // Database open/read/write failed
	ErrCodeRunNotFound = "E021" // Stored run id unknown
)

// failure is a classified command error.
type failure struct {
	Code     string
	ExitCode int
	Message  string
	Details  interface{}
}

// classify maps an error from the load/infer/store pipeline to a CLI error
// code and exit code. Load and database problems are command errors; a
// dataset that loads but cannot be inferred is a failure.
func classify(err error) failure {
	var loadErr *combo.LoadError
	if errors.As(err, &loadErr) {
		f := failure{ExitCode: ExitCommandError, Message: loadErr.Error()}
		switch loadErr.Code {
		case combo.ErrCodeNotFound:
			f.Code = ErrCodeNotFound
		case combo.ErrCodeRead:
			f.Code = ErrCodeRead
		case combo.ErrCodeSchema:
			f.Code = ErrCodeSchema
		default:
			f.Code = ErrCodeParse
		}
		return f
	}

	var inferErr *infer.Error
	if errors.As(err, &inferErr) {
		f := failure{ExitCode: ExitFailure, Message: inferErr.Error()}
		if len(inferErr.IDs) > 0 {
			f.Details = inferErr.IDs
		}
		switch inferErr.Code {
		case infer.ErrCodeClosureViolation:
			f.Code = ErrCodeClosure
		case infer.ErrCodeDegenerateCombo:
			f.Code = ErrCodeDegenerate
		default:
			f.Code = ErrCodeNoInference
		}
		return f
	}

	if errors.Is(err, store.ErrRunNotFound) {
		return failure{Code: ErrCodeRunNotFound, ExitCode: ExitCommandError, Message: err.Error()}
	}

	var dbErr *databaseError
	if errors.As(err, &dbErr) {
		return failure{Code: ErrCodeDatabase, ExitCode: ExitCommandError, Message: err.Error()}
	}

	return failure{Code: ErrCodeGeneric, ExitCode: ExitCommandError, Message: err.Error()}
}

// databaseError marks errors that came from the run store.
type databaseError struct {
	Op  string
	Err error
}

func (e *databaseError) Error() string {
	return e.Op + ": " + e.Err.Error()
}

func (e *databaseError) Unwrap() error {
	return e.Err
}

// reportFailure writes err through the formatter and returns the ExitError
// the command should return.
func reportFailure(formatter *OutputFormatter, err error) error {
	f := classify(err)
	_ = formatter.Error(f.Code, f.Message, f.Details)
	exitErr := WrapExitError(f.ExitCode, f.Code, err)
	exitErr.Reported = true
	return exitErr
}
