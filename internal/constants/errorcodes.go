// Package constants provides shared constant values used throughout the application.
//
// The errorcodes.go file defines constants related to error handling, categorization,
// and messaging. The user-facing messages are part of the public contract: front-end
// clients match on them, so they are kept byte-for-byte stable.
package constants

// Error Types define the categories of errors that can occur in the application.
// These are used for internal error classification and handling.
const (
	// ErrorValidation indicates that a required field was missing or empty.
	ErrorValidation = "validation error"

	// ErrorBadRequest indicates that the request was malformed.
	ErrorBadRequest = "invalid request"

	// ErrorProvider indicates that the remote analysis or transcription call failed.
	ErrorProvider = "analysis provider error"

	// ErrorAutomation indicates that the social platform automation reported a failure.
	ErrorAutomation = "automation failure"

	// ErrorParse indicates that an uploaded dataset could not be parsed.
	ErrorParse = "dataset parse error"

	// ErrorPersistence indicates that writing to the store failed.
	ErrorPersistence = "persistence error"

	// ErrorInternalServer indicates an unexpected internal error.
	ErrorInternalServer = "internal server error"
)

// Instagram Messages are returned by the automation endpoints.
const (
	MsgCredentialsRequired   = "Username and password are required."
	MsgAllFieldsRequired     = "All fields are required."
	MsgLoggedInAs            = "Logged in as %s"
	MsgPostUploaded          = "Post uploaded successfully!"
	MsgPostFailed            = "Failed to upload post."
	MsgPostError             = "An error occurred while uploading the post."
	MsgLoginFailedFallback   = "Login failed."
	MsgAutomationUnavailable = "Automation browser is unavailable."
)

// Analysis Messages are returned by the analysis endpoints.
const (
	MsgInputTextRequired   = "Input text is required for analysis."
	MsgAnalysisFailed      = "Failed to process analysis."
	MsgPredictionFailed    = "Failed to process the analysis."
	MsgCSVDataMissing      = "CSV data is empty or missing."
	MsgNoAudioUploaded     = "No audio file uploaded"
	MsgTranscriptionFailed = "Failed to transcribe audio"
	MsgNoDatasetUploaded   = "No dataset file uploaded."
	MsgDatasetParseFailed  = "Error parsing CSV file."
	MsgDatasetFailed       = "Failed to process dataset file"
)

// Generic Messages define standardized messages that can be safely presented to users.
const (
	// MsgInternalServerError provides a generic server error message.
	MsgInternalServerError = "An internal server error occurred"

	// MsgUnexpectedError is returned when a handler panics.
	MsgUnexpectedError = "An unexpected error occurred while processing your request"

	// MsgRequestBodyTooLarge indicates that the request payload exceeds size limits.
	MsgRequestBodyTooLarge = "Request body too large"

	// MsgMalformedJSON indicates that the request body contains invalid JSON.
	MsgMalformedJSON = "Request body contains malformed JSON"

	// MsgResourceNotFound indicates that the requested resource does not exist.
	MsgResourceNotFound = "The requested resource could not be found"

	// MsgMethodNotAllowed indicates that the HTTP method is not supported for the endpoint.
	MsgMethodNotAllowed = "This method is not allowed for this resource"

	// MsgRateLimited is returned with 429 responses.
	MsgRateLimited = "Rate limit exceeded. Please try again later."

	// MsgServiceUnhealthy is returned by the health check when the store is unreachable.
	MsgServiceUnhealthy = "Service is not healthy"
)

// Logger Constants define values used for structured logging.
const (
	// LogCategoryAutomation is the log category for Instagram automation events.
	LogCategoryAutomation = "automation"

	// LogCategoryScheduler is the log category for scheduled job events.
	LogCategoryScheduler = "scheduler"

	// LogEventLogin is the log event type for automation logins.
	LogEventLogin = "login"

	// LogEventPost is the log event type for automation posts.
	LogEventPost = "post"

	// LogRedactedValue is used to replace sensitive values in logs.
	LogRedactedValue = "[REDACTED]"
)
