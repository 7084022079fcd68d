// Package constants provides shared constant values used throughout the application.
//
// The general_const.go file defines routing paths, request field names and context
// keys. These constants keep the public HTTP contract in one place so handlers,
// routes and tests agree on the exact paths and field names clients depend on.
package constants

// Base Routes define the root URL paths for different parts of the API.
const (
	// APIBasePath is the root path prefix for all API endpoints.
	APIBasePath = "/api"

	// HealthPath is the endpoint for health checks and system status.
	HealthPath = "/health"

	// VersionPath reports the running build.
	VersionPath = "/version"
)

// Instagram Routes expose the automation client.
const (
	InstagramLoginPath = "/api/instagram/login"
	InstagramPostPath  = "/api/instagram/post"
)

// Analysis Routes expose sentiment and emotion analysis.
const (
	AnalyzePath                   = "/api/analyze"
	PredictPath                   = "/api/predict"
	PredictPatientsSentimentsPath = "/api/predictPatientsSentiments"
	UploadDatasetPath             = "/api/uploadDataset"
	TranscribePath                = "/transcribe"
)

// Multipart Form Fields name the file parts accepted by the upload endpoints.
const (
	// FormFieldAudio carries the audio clip for /transcribe.
	FormFieldAudio = "audio"

	// FormFieldDataset carries the CSV file for /api/uploadDataset.
	FormFieldDataset = "dataset"
)

// Patient Dataset Headers are the exact column names expected in a patient batch.
// Header matching is case and spelling exact.
const (
	PatientHeaderName      = "Name"
	PatientHeaderAge       = "Age"
	PatientHeaderSentiment = "Sentiment"
	PatientHeaderType      = "Type"
	PatientHeaderCountry   = "Country"
	PatientHeaderCity      = "City"
	PatientHeaderState     = "State"
	PatientHeaderGender    = "Gender"
)

// Context Key Names are used for structured log fields.
const (
	RequestIDContextKey = "request_id"
	UsernameContextKey  = "username"
)
