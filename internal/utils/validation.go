package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// ValidationMessenger is implemented by request types that report every
// validation failure with a single fixed message.
type ValidationMessenger interface {
	ValidationMessage() string
}

// InitValidator builds the shared validator. Field names in messages are
// taken from the json tag so they match what clients send.
func InitValidator() {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(jsonFieldName)
		validate = v
		log.Debug().Msg("Validator initialized")
	})
}

func jsonFieldName(fld reflect.StructField) string {
	name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	return name
}

// DecodeJSON reads a single JSON value from the request body into v.
// Unknown fields are ignored and an empty body leaves v untouched, so the
// validation tags decide the response for both.
func DecodeJSON(r *http.Request, v interface{}) error {
	r.Body = http.MaxBytesReader(nil, r.Body, constants.MaxRequestBodySize)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return decodeFailure(err)
	}

	if dec.More() {
		return NewBadRequestError("Request body must only contain a single JSON object")
	}
	return nil
}

// decodeFailure maps a json.Decoder error to a client-facing AppError.
func decodeFailure(err error) error {
	var (
		tooLarge    *http.MaxBytesError
		syntaxErr   *json.SyntaxError
		typeErr     *json.UnmarshalTypeError
		unmarshalTo *json.InvalidUnmarshalError
	)

	switch {
	case errors.As(err, &tooLarge):
		return NewBadRequestError(constants.MsgRequestBodyTooLarge)
	case errors.Is(err, io.ErrUnexpectedEOF):
		return NewBadRequestError(constants.MsgMalformedJSON)
	case errors.As(err, &syntaxErr):
		return NewBadRequestError(fmt.Sprintf("%s (at position %d)", constants.MsgMalformedJSON, syntaxErr.Offset))
	case errors.As(err, &typeErr) && typeErr.Field != "":
		return NewValidationError(fmt.Sprintf("%s must be a %s", typeErr.Field, typeErr.Type))
	case errors.As(err, &typeErr):
		return NewBadRequestError(fmt.Sprintf("Request body contains incorrect JSON type (at position %d)", typeErr.Offset))
	case errors.As(err, &unmarshalTo):
		// Programming error: v was not a non-nil pointer.
		return NewInternalServerError(err)
	default:
		return NewBadRequestError("Error decoding JSON: " + err.Error())
	}
}

// ValidateStruct runs the validate tags of v. Types implementing
// ValidationMessenger get their fixed message; otherwise a single failure
// names its field and several failures are returned as per-field details.
func ValidateStruct(v interface{}) error {
	InitValidator()

	err := validate.Struct(v)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return NewBadRequestError(err.Error())
	}

	if messenger, ok := v.(ValidationMessenger); ok {
		return NewValidationError(messenger.ValidationMessage())
	}

	if len(fieldErrs) == 1 {
		return NewValidationError(fieldErrs[0].Field() + ": " + fieldMessage(fieldErrs[0]))
	}

	details := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = fieldMessage(fe)
	}
	return NewWithDetails(ErrValidation, http.StatusBadRequest, "Multiple validation errors", details)
}

// DecodeAndValidate decodes a JSON request body and validates it
func DecodeAndValidate(r *http.Request, v interface{}) error {
	if err := DecodeJSON(r, v); err != nil {
		return err
	}
	return ValidateStruct(v)
}

func fieldMessage(fe validator.FieldError) string {
	param := strings.ReplaceAll(fe.Param(), " ", ", ")
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters long"
	}

	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "required_without_all":
		return "This field is required when none of " + param + " are set"
	case "min":
		return "Must be at least " + param + unit
	case "max":
		return "Must be at most " + param + unit
	case "oneof":
		return "Must be one of: " + param
	case "url":
		return "Must be a valid URL"
	default:
		return fmt.Sprintf("Failed validation on the '%s' tag", fe.Tag())
	}
}
