package models_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

func TestCredentials_NeverLogsPassword(t *testing.T) {
	creds := models.Credentials{Username: "sunny", Password: "hunter2"}

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Info().Object("credentials", creds).Msg("login")

	assert.Contains(t, buf.String(), `"username":"sunny"`)
	assert.Contains(t, buf.String(), "[REDACTED]")
	assert.NotContains(t, buf.String(), "hunter2")
	assert.NotContains(t, fmt.Sprintf("%v", creds), "hunter2")
}

func TestPostRequest_DecodeAndLog(t *testing.T) {
	body := `{"username":"sunny","password":"hunter2","imageUrl":"https://example.com/a.jpg","caption":"hello"}`

	var req models.PostRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))
	assert.Equal(t, "sunny", req.Username)
	assert.Equal(t, "hunter2", req.Password)
	assert.Equal(t, "https://example.com/a.jpg", req.ImageURL)
	assert.Equal(t, "hello", req.Caption)

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Info().Object("post", req).Msg("post")

	assert.NotContains(t, buf.String(), "hunter2")
	assert.Contains(t, buf.String(), `"caption_length":5`)
}

func TestValidationMessages(t *testing.T) {
	assert.Equal(t, "Username and password are required.", (&models.Credentials{}).ValidationMessage())
	assert.Equal(t, "All fields are required.", (&models.PostRequest{}).ValidationMessage())
	assert.Equal(t, "Input text is required for analysis.", (&models.AnalysisRequest{}).ValidationMessage())
	assert.Equal(t, "CSV data is empty or missing.", (&models.PatientBatchRequest{}).ValidationMessage())
}
