package types

import "fmt"

// ErrorCode classifies the recoverable failures the engine surfaces. There
// are no fatal classes; every failure is caught at its operation boundary.
type ErrorCode string

const (
	CodeGenerationEmpty    ErrorCode = "GENERATION_EMPTY"
	CodeGenerationFailed   ErrorCode = "GENERATION_FAILED"
	CodeCoachFailed        ErrorCode = "COACH_FAILED"
	CodeImportInvalid      ErrorCode = "IMPORT_INVALID"
	CodeStorageReadCorrupt ErrorCode = "STORAGE_READ_CORRUPT"
	CodeStorageWriteFailed ErrorCode = "STORAGE_WRITE_FAILED"
)

// PlanError provides structured error information for session failures.
type PlanError struct {
	Code    ErrorCode
	Message string
	Err     error
}

func (e *PlanError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *PlanError) Unwrap() error {
	return e.Err
}

// NewPlanError creates a new structured plan error.
func NewPlanError(code ErrorCode, message string, err error) *PlanError {
	return &PlanError{Code: code, Message: message, Err: err}
}
