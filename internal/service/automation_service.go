package service

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/clients"
	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

// AutomationService runs Instagram logins and posts for the HTTP handlers
// and the scheduled job.
type AutomationService struct {
	automator clients.Automator
}

// NewAutomationService creates a new AutomationService.
func NewAutomationService(automator clients.Automator) *AutomationService {
	return &AutomationService{automator: automator}
}

// Login signs in and reports the outcome.
func (s *AutomationService) Login(ctx context.Context, creds models.Credentials) clients.LoginResult {
	log.Info().
		Str("category", constants.LogCategoryAutomation).
		Object("credentials", creds).
		Msg("Instagram login requested")

	return s.automator.Login(ctx, creds)
}

// Post publishes an image with a caption.
//
// Returns:
//   - The automation outcome; a failed login or UI flow is reported here
//   - An error when the post could not be attempted at all
func (s *AutomationService) Post(ctx context.Context, creds models.Credentials, payload models.PostPayload) (clients.PostResult, error) {
	log.Info().
		Str("category", constants.LogCategoryAutomation).
		Object("credentials", creds).
		Str("image_url", payload.ImageURL).
		Msg("Instagram post requested")

	return s.automator.Post(ctx, creds, payload)
}
