package service_test

import (
	"context"
	"encoding/json"
	"io"

	"github.com/stretchr/testify/mock"

	"github.com/iamyashsharma43/SENTIFY/internal/clients"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

// MockAnalyzer is a mock implementation of clients.SentimentAnalyzer
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *MockAnalyzer) AnalyzeEmotions(ctx context.Context, text string) (models.Emotions, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Emotions), args.Error(1)
}

// MockTranscriber is a mock implementation of clients.Transcriber
type MockTranscriber struct {
	mock.Mock
	body []byte
}

func (m *MockTranscriber) Transcribe(ctx context.Context, audio io.Reader, contentType string) (json.RawMessage, error) {
	m.body, _ = io.ReadAll(audio)
	args := m.Called(ctx, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// MockAnalysisRepository is a mock implementation of repository.AnalysisRepository
type MockAnalysisRepository struct {
	mock.Mock
}

func (m *MockAnalysisRepository) Create(ctx context.Context, analysis *models.Analysis) error {
	args := m.Called(ctx, analysis)
	return args.Error(0)
}

// MockPatientSentimentRepository is a mock implementation of repository.PatientSentimentRepository
type MockPatientSentimentRepository struct {
	mock.Mock
}

func (m *MockPatientSentimentRepository) Create(ctx context.Context, ps *models.PatientSentiment) error {
	args := m.Called(ctx, ps)
	return args.Error(0)
}

// MockArchiver is a mock implementation of storage.Archiver
type MockArchiver struct {
	mock.Mock
}

func (m *MockArchiver) Archive(ctx context.Context, kind, path, originalName, contentType string) (string, error) {
	args := m.Called(ctx, kind, path, originalName, contentType)
	return args.String(0), args.Error(1)
}

// MockAutomator is a mock implementation of clients.Automator
type MockAutomator struct {
	mock.Mock
}

func (m *MockAutomator) Login(ctx context.Context, creds models.Credentials) clients.LoginResult {
	args := m.Called(ctx, creds)
	return args.Get(0).(clients.LoginResult)
}

func (m *MockAutomator) Post(ctx context.Context, creds models.Credentials, payload models.PostPayload) (clients.PostResult, error) {
	args := m.Called(ctx, creds, payload)
	return args.Get(0).(clients.PostResult), args.Error(1)
}
