// Package handlers provides HTTP request handlers for the SENTIFY service.
// This file defines the service interfaces the handlers depend on, so that
// each handler can be tested against a mock implementation.
package handlers

import (
	"context"
	"encoding/json"

	"github.com/iamyashsharma43/SENTIFY/internal/clients"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

// AnalysisServiceInterface defines the methods required from AnalysisService.
type AnalysisServiceInterface interface {
	// Analyze runs sentiment and emotion analysis and stores the result.
	//
	// Parameters:
	//   - ctx: The request context
	//   - req: The answers or caption to analyze
	//
	// Returns:
	//   - The combined statement with its sentiment and emotions
	//   - An error if the provider or the store fails
	Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResult, error)
}

// PatientServiceInterface defines the methods required from PatientService.
type PatientServiceInterface interface {
	// ProcessRows analyzes every row and returns one result per row, in order.
	// Failed rows are returned as placeholders.
	ProcessRows(ctx context.Context, rows []models.PatientRow) []models.RowResult
}

// DatasetServiceInterface defines the methods required from DatasetService.
type DatasetServiceInterface interface {
	ParseUpload(ctx context.Context, upload *models.UploadedFile) ([]map[string]string, error)
}

// TranscriptionServiceInterface defines the methods required from TranscriptionService.
type TranscriptionServiceInterface interface {
	Transcribe(ctx context.Context, upload *models.UploadedFile) (json.RawMessage, error)
}

// AutomationServiceInterface defines the methods required from AutomationService.
type AutomationServiceInterface interface {
	Login(ctx context.Context, creds models.Credentials) clients.LoginResult
	Post(ctx context.Context, creds models.Credentials, payload models.PostPayload) (clients.PostResult, error)
}

// HealthChecker reports whether the store is reachable.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
