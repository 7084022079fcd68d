package utils

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
)

// The front-end reads successful payloads as the top-level JSON value,
// informational successes as {"message"} and failures as {"error","details"}.

// ErrorBody is the JSON shape of every failure response.
type ErrorBody struct {
	Error   string `json:"error"`
	Details any    `json:"details,omitempty"`
}

// MessageBody is the JSON shape of informational success responses.
type MessageBody struct {
	Message string `json:"message"`
}

var marshalFailureBody = []byte(`{"error":"Failed to generate response"}`)

// JSON writes data as the response body.
func JSON(w http.ResponseWriter, statusCode int, data any) {
	SendJSON(w, statusCode, data)
}

// RawJSON forwards an already encoded document unchanged.
func RawJSON(w http.ResponseWriter, statusCode int, body json.RawMessage) {
	write(w, statusCode, body)
}

func Message(w http.ResponseWriter, statusCode int, message string) {
	SendJSON(w, statusCode, MessageBody{Message: message})
}

// Error writes {"error": message}, with details when they are non-nil.
func Error(w http.ResponseWriter, statusCode int, message string, details any) {
	SendJSON(w, statusCode, ErrorBody{Error: message, Details: details})
}

// ErrorFromAppError writes err and logs server-side failures. DevInfo never
// reaches the client.
func ErrorFromAppError(w http.ResponseWriter, err *AppError) {
	if err.StatusCode >= http.StatusInternalServerError {
		LogAppError(err)
	}
	Error(w, err.StatusCode, err.Message, err.Details)
}

// SendJSON marshals data and writes it. A value that cannot be marshaled
// turns into a fixed 500 body.
func SendJSON(w http.ResponseWriter, statusCode int, data any) {
	body, err := json.Marshal(data)
	if err != nil {
		log.Error().Err(err).Msg("Failed to marshal JSON response")
		write(w, http.StatusInternalServerError, marshalFailureBody)
		return
	}
	write(w, statusCode, body)
}

func write(w http.ResponseWriter, statusCode int, body []byte) {
	w.Header().Set(constants.HeaderContentType, constants.ContentTypeJSON)
	w.WriteHeader(statusCode)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("Failed to write JSON response")
	}
}

func BadRequest(w http.ResponseWriter, message string) {
	Error(w, constants.StatusBadRequest, message, nil)
}

// NotFound uses the generic message when message is empty.
func NotFound(w http.ResponseWriter, message string) {
	if message == "" {
		message = constants.MsgResourceNotFound
	}
	Error(w, constants.StatusNotFound, message, nil)
}

func MethodNotAllowed(w http.ResponseWriter) {
	Error(w, constants.StatusMethodNotAllowed, constants.MsgMethodNotAllowed, nil)
}

func TooManyRequests(w http.ResponseWriter) {
	Error(w, constants.StatusTooManyRequests, constants.MsgRateLimited, nil)
}

// InternalServerError logs err and writes the generic 500 body.
func InternalServerError(w http.ResponseWriter, err error) {
	log.Error().Err(err).Msg("Internal server error")
	Error(w, constants.StatusInternalServerError, constants.MsgInternalServerError, nil)
}
