package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/jonathan/resume-analyzer/internal/analyzer"
	"github.com/jonathan/resume-analyzer/internal/ingestion"
)

// Error kinds produced by the HTTP layer in addition to the analyzer's kinds.
const (
	KindPayloadTooLarge      = "payload_too_large"
	KindUnsupportedMediaType = "unsupported_media_type"
	KindRateLimited          = "rate_limited"
	KindNotFound             = "not_found"
	KindMethodNotAllowed     = "method_not_allowed"
)

// ErrRequest represents a request rejected before analysis
type ErrRequest struct {
	Status  int
	Kind    string
	Message string
}

func (e *ErrRequest) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func badRequest(format string, args ...any) *ErrRequest {
	return &ErrRequest{Status: http.StatusBadRequest, Kind: analyzer.KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

func tooLarge(format string, args ...any) *ErrRequest {
	return &ErrRequest{Status: http.StatusRequestEntityTooLarge, Kind: KindPayloadTooLarge, Message: fmt.Sprintf(format, args...)}
}

func unsupportedMedia(format string, args ...any) *ErrRequest {
	return &ErrRequest{Status: http.StatusUnsupportedMediaType, Kind: KindUnsupportedMediaType, Message: fmt.Sprintf(format, args...)}
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		reqErr        *ErrRequest
		inputErr      *analyzer.InvalidInputError
		validationErr validator.ValidationErrors
		formatErr     *ingestion.UnsupportedFormatError
		sizeErr       *ingestion.TooLargeError
		extractErr    *ingestion.ExtractionError
		maxBytesErr   *http.MaxBytesError
	)
	switch {
	case errors.As(err, &reqErr):
		return reqErr.Status
	case errors.As(err, &inputErr), errors.As(err, &validationErr), errors.As(err, &extractErr):
		return http.StatusBadRequest
	case errors.As(err, &formatErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &sizeErr), errors.As(err, &maxBytesErr):
		return http.StatusRequestEntityTooLarge
	default:
		return http.StatusInternalServerError
	}
}

// errorKind returns the machine-readable kind reported for err
func errorKind(err error) string {
	var reqErr *ErrRequest
	if errors.As(err, &reqErr) {
		return reqErr.Kind
	}
	switch HTTPStatus(err) {
	case http.StatusBadRequest:
		return analyzer.KindInvalidInput
	case http.StatusUnsupportedMediaType:
		return KindUnsupportedMediaType
	case http.StatusRequestEntityTooLarge:
		return KindPayloadTooLarge
	default:
		return analyzer.Kind(err)
	}
}

// errorMessage returns the message shown to clients. Internal errors are not described.
func errorMessage(err error) string {
	var validationErr validator.ValidationErrors
	switch {
	case HTTPStatus(err) == http.StatusInternalServerError:
		return "internal error while analyzing the resume"
	case errors.As(err, &validationErr) && len(validationErr) > 0:
		return fmt.Sprintf("field '%s' failed '%s' validation", validationErr[0].Field(), validationErr[0].Tag())
	default:
		return err.Error()
	}
}
