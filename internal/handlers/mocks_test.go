package handlers_test

import (
	"context"
	"encoding/json"
	"os"

	"github.com/stretchr/testify/mock"

	"github.com/iamyashsharma43/SENTIFY/internal/clients"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

type MockAnalysisService struct {
	mock.Mock
}

func (m *MockAnalysisService) Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResult, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnalysisResult), args.Error(1)
}

type MockPatientService struct {
	mock.Mock
}

func (m *MockPatientService) ProcessRows(ctx context.Context, rows []models.PatientRow) []models.RowResult {
	args := m.Called(ctx, rows)
	return args.Get(0).([]models.RowResult)
}

// MockDatasetService records whether the upload file existed when it was called.
type MockDatasetService struct {
	mock.Mock
	sawFile bool
	path    string
}

func (m *MockDatasetService) ParseUpload(ctx context.Context, upload *models.UploadedFile) ([]map[string]string, error) {
	m.path = upload.Path
	_, err := os.Stat(upload.Path)
	m.sawFile = err == nil
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]map[string]string), args.Error(1)
}

type MockTranscriptionService struct {
	mock.Mock
	path string
}

func (m *MockTranscriptionService) Transcribe(ctx context.Context, upload *models.UploadedFile) (json.RawMessage, error) {
	m.path = upload.Path
	args := m.Called(ctx, upload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

type MockAutomationService struct {
	mock.Mock
}

func (m *MockAutomationService) Login(ctx context.Context, creds models.Credentials) clients.LoginResult {
	args := m.Called(ctx, creds)
	return args.Get(0).(clients.LoginResult)
}

func (m *MockAutomationService) Post(ctx context.Context, creds models.Credentials, payload models.PostPayload) (clients.PostResult, error) {
	args := m.Called(ctx, creds, payload)
	return args.Get(0).(clients.PostResult), args.Error(1)
}

type MockHealthChecker struct {
	mock.Mock
}

func (m *MockHealthChecker) HealthCheck(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
