package utils

import (
	"errors"
	"fmt"
	"net/http"
)

type Code string

// Pipeline failure taxonomy. Client-side failures (bad source, unsupported
// upload, broken transcode input) map to 400; engine and persistence
// failures map to 500.
const (
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeAcquisition      Code = "ACQUISITION_FAILED"
	CodeUnsupportedMedia Code = "UNSUPPORTED_MEDIA"
	CodeConversion       Code = "CONVERSION_FAILED"
	CodeTranscription    Code = "TRANSCRIPTION_FAILED"
	CodePersistence      Code = "PERSISTENCE_FAILED"
	CodeInternal         Code = "INTERNAL"
)

// AppError is the unified error contract across layers.
type AppError struct {
	Code    Code
	Op      string // operation name, ex: "TranscribeService.FromURL"
	Message string // safe message
	Err     error  // wrapped cause
}

func (e *AppError) Error() string {
	if e == nil {
		return "<nil>"
	}
	switch {
	case e.Op != "" && e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Message, e.Err)
	case e.Op != "" && e.Message != "":
		return fmt.Sprintf("%s: %s", e.Op, e.Message)
	case e.Op != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	case e.Message != "":
		return e.Message
	case e.Err != nil:
		return e.Err.Error()
	default:
		return "error"
	}
}

func (e *AppError) Unwrap() error { return e.Err }

func E(code Code, op, msg string, err error) error {
	return &AppError{Code: code, Op: op, Message: msg, Err: err}
}

func IsCode(err error, code Code) bool {
	var ae *AppError
	if errors.As(err, &ae) {
		return ae.Code == code
	}
	return false
}

func HTTPStatus(err error) int {
	var ae *AppError
	if errors.As(err, &ae) {
		switch ae.Code {
		case CodeInvalidArgument, CodeAcquisition, CodeUnsupportedMedia, CodeConversion:
			return http.StatusBadRequest
		default:
			return http.StatusInternalServerError
		}
	}
	return http.StatusInternalServerError
}

// Detail renders the user-facing message including the underlying cause.
func Detail(err error) string {
	var ae *AppError
	if errors.As(err, &ae) {
		switch {
		case ae.Message != "" && ae.Err != nil:
			return ae.Message + ": " + ae.Err.Error()
		case ae.Message != "":
			return ae.Message
		case ae.Err != nil:
			return ae.Err.Error()
		}
	}
	return http.StatusText(HTTPStatus(err))
}
