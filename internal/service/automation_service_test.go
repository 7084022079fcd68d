package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamyashsharma43/SENTIFY/internal/clients"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
	"github.com/iamyashsharma43/SENTIFY/internal/service"
)

func TestAutomationService(t *testing.T) {
	creds := models.Credentials{Username: "sentify", Password: "hunter2"}
	payload := models.PostPayload{ImageURL: "https://example.com/a.jpg", Caption: "hello"}

	t.Run("login", func(t *testing.T) {
		automator := new(MockAutomator)
		automator.On("Login", context.Background(), creds).Return(clients.LoginResult{Success: true, Username: "sentify"})

		result := service.NewAutomationService(automator).Login(context.Background(), creds)

		assert.True(t, result.Success)
		assert.Equal(t, "sentify", result.Username)
	})

	t.Run("post", func(t *testing.T) {
		automator := new(MockAutomator)
		automator.On("Post", context.Background(), creds, payload).Return(clients.PostResult{Success: false, Error: "share button missing"}, nil)

		result, err := service.NewAutomationService(automator).Post(context.Background(), creds, payload)

		require.NoError(t, err)
		assert.False(t, result.Success)
		assert.Equal(t, "share button missing", result.Error)
	})
}
