package service

import (
	"fmt"
	"net/http"
)

// Machine-readable error codes exposed to the transport layer.
const (
	CodeValidation              = "VALIDATION_ERROR"
	CodeNotFound                = "NOT_FOUND"
	CodeSurveyFinalized         = "SURVEY_FINALIZED"
	CodeCrossReferenceMismatch  = "CROSS_REFERENCE_MISMATCH"
	CodeHasDependents           = "HAS_DEPENDENTS"
	CodeDuplicateKey            = "DUPLICATE_KEY"
	CodeQualitativeRequired     = "QUALITATIVE_REQUIRED"
	CodeQuantitativeNotAllowed  = "QUANTITATIVE_NOT_ALLOWED"
	CodeInvalidDevice           = "INVALID_DEVICE"
	CodeJustificationRequired   = "JUSTIFICATION_REQUIRED"
	CodeInvalidLibraryReference = "INVALID_LIBRARY_REFERENCE"
	CodeConfigurationMissing    = "CONFIGURATION_MISSING"
	CodeInternal                = "INTERNAL_ERROR"
)

// Error is a logical/state conflict surfaced to callers with a stable code
// and an HTTP status class. These are never retried automatically.
type Error struct {
	Code    string
	Status  int
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is matches errors sharing the same code, so sentinel comparisons via
// errors.Is work for dynamically built instances too.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	return ok && t.Code == e.Code
}

var (
	// ErrSurveyFinalized rejects any mutation in a finalized environment
	// subtree.
	ErrSurveyFinalized = &Error{Code: CodeSurveyFinalized, Status: http.StatusConflict, Message: "survey is finalized; the environment subtree is immutable"}

	// ErrQualitativeRequired rejects quantitative measurements recorded
	// before a qualitative assessment exists.
	ErrQualitativeRequired = &Error{Code: CodeQualitativeRequired, Status: http.StatusConflict, Message: "qualitative assessment must exist before quantitative measurement"}

	// ErrQuantitativeNotAllowed rejects measurements for hazards whose
	// library entry does not permit quantitative evaluation.
	ErrQuantitativeNotAllowed = &Error{Code: CodeQuantitativeNotAllowed, Status: http.StatusConflict, Message: "hazard library entry does not allow quantitative measurement"}

	// ErrJustificationRequired rejects alto/critico assessments without a
	// technical justification.
	ErrJustificationRequired = &Error{Code: CodeJustificationRequired, Status: http.StatusBadRequest, Message: "technical justification is required for alto and critico classifications"}

	// ErrInvalidDevice rejects measurements referencing a missing or
	// inactive instrument.
	ErrInvalidDevice = &Error{Code: CodeInvalidDevice, Status: http.StatusBadRequest, Message: "measurement device does not exist or is inactive"}

	// ErrInvalidLibraryReference rejects hazards referencing a missing or
	// inactive hazard library entry.
	ErrInvalidLibraryReference = &Error{Code: CodeInvalidLibraryReference, Status: http.StatusBadRequest, Message: "hazard library entry does not exist or is inactive"}
)

func notFoundError(entity string) *Error {
	return &Error{Code: CodeNotFound, Status: http.StatusNotFound, Message: entity + " not found"}
}

func validationError(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}

func duplicateKeyError(format string, args ...any) *Error {
	return &Error{Code: CodeDuplicateKey, Status: http.StatusConflict, Message: fmt.Sprintf(format, args...)}
}

func hasDependentsError(parent, child string) *Error {
	return &Error{Code: CodeHasDependents, Status: http.StatusConflict, Message: fmt.Sprintf("%s cannot be deleted while %s records exist", parent, child)}
}

func crossReferenceError(format string, args ...any) *Error {
	return &Error{Code: CodeCrossReferenceMismatch, Status: http.StatusBadRequest, Message: fmt.Sprintf(format, args...)}
}
