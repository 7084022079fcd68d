package utils

import (
	"errors"
	"net/http"

	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
)

// Sentinels classifying every failure the API reports. AppError.Err holds
// one of them, so errors.Is works on the wrapped value.
var (
	ErrBadRequest     = errors.New(constants.ErrorBadRequest)
	ErrValidation     = errors.New(constants.ErrorValidation)
	ErrProvider       = errors.New(constants.ErrorProvider)
	ErrAutomation     = errors.New(constants.ErrorAutomation)
	ErrParse          = errors.New(constants.ErrorParse)
	ErrPersistence    = errors.New(constants.ErrorPersistence)
	ErrInternalServer = errors.New(constants.ErrorInternalServer)
)

// AppError is an error ready to be written as an HTTP response.
type AppError struct {
	Err        error  // sentinel
	StatusCode int    // HTTP status code
	Message    string // sent to the client as "error"
	DevInfo    string // logged, never sent
	Details    any    // sent to the client as "details" when non-nil
}

func (e *AppError) Error() string { return e.Message }

func (e *AppError) Unwrap() error { return e.Err }

// Detailer is implemented by errors that carry a client-visible payload,
// such as the body returned by a failing provider.
type Detailer interface {
	ErrorDetails() any
}

// DetailsOf returns the client-visible details of err: the payload of the
// first Detailer in the chain, or the error text otherwise.
func DetailsOf(err error) any {
	if err == nil {
		return nil
	}
	var d Detailer
	if errors.As(err, &d) {
		if details := d.ErrorDetails(); details != nil {
			return details
		}
	}
	return err.Error()
}

// New creates an AppError without details.
func New(err error, statusCode int, message string) *AppError {
	return &AppError{Err: err, StatusCode: statusCode, Message: message}
}

// NewWithDetails creates an AppError that exposes details to the client.
func NewWithDetails(err error, statusCode int, message string, details any) *AppError {
	return &AppError{Err: err, StatusCode: statusCode, Message: message, Details: details}
}

func NewValidationError(message string) *AppError {
	return New(ErrValidation, http.StatusBadRequest, message)
}

func NewBadRequestError(message string) *AppError {
	return New(ErrBadRequest, http.StatusBadRequest, message)
}

// NewProviderError wraps a failed remote analysis call. The provider payload
// (or the transport error text) is forwarded to the client as details.
func NewProviderError(message string, cause error) *AppError {
	return withCause(NewWithDetails(ErrProvider, http.StatusInternalServerError, message, DetailsOf(cause)), cause)
}

// NewParseError reports an uploaded dataset that could not be parsed.
func NewParseError(message string, cause error) *AppError {
	return withCause(NewWithDetails(ErrParse, http.StatusInternalServerError, message, DetailsOf(cause)), cause)
}

// NewAutomationError reports a failure of the Instagram automation.
func NewAutomationError(statusCode int, message string) *AppError {
	return New(ErrAutomation, statusCode, message)
}

// NewPersistenceError reports a failed write. The driver error is kept for
// the log only.
func NewPersistenceError(err error) *AppError {
	return withCause(New(ErrPersistence, http.StatusInternalServerError, constants.MsgInternalServerError), err)
}

func NewInternalServerError(err error) *AppError {
	return withCause(New(ErrInternalServer, http.StatusInternalServerError, constants.MsgInternalServerError), err)
}

func withCause(appErr *AppError, cause error) *AppError {
	if cause != nil {
		appErr.DevInfo = cause.Error()
	}
	return appErr
}

// ParseError converts any error into an AppError. AppErrors pass through;
// sentinels and driver errors get their usual status; anything else is a 500.
func ParseError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}

	switch {
	case errors.Is(err, ErrValidation):
		return NewValidationError(err.Error())
	case errors.Is(err, ErrBadRequest):
		return NewBadRequestError(err.Error())
	case errors.Is(err, ErrProvider):
		return NewProviderError(constants.MsgInternalServerError, err)
	case errors.Is(err, ErrParse):
		return NewParseError(constants.MsgDatasetParseFailed, err)
	case errors.Is(err, ErrAutomation):
		return NewAutomationError(http.StatusInternalServerError, err.Error())
	case IsDatabaseError(err):
		return NewPersistenceError(err)
	default:
		return NewInternalServerError(err)
	}
}

// IsDatabaseError reports whether err came from one of the SQL drivers or
// was already classified as a persistence failure.
func IsDatabaseError(err error) bool {
	var pqErr *pq.Error
	var myErr *mysql.MySQLError
	return errors.As(err, &pqErr) || errors.As(err, &myErr) || errors.Is(err, ErrPersistence)
}
