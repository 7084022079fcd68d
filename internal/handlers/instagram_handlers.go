package handlers

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
	"github.com/iamyashsharma43/SENTIFY/internal/utils"
)

// InstagramHandler exposes the Instagram automation endpoints.
type InstagramHandler struct {
	automation AutomationServiceInterface
}

// NewInstagramHandler creates a new InstagramHandler.
func NewInstagramHandler(automation AutomationServiceInterface) *InstagramHandler {
	return &InstagramHandler{automation: automation}
}

// Login signs in to Instagram with the supplied credentials.
//
// Responds 200 {"message": "Logged in as <username>"} on success, 400 when a
// credential is missing and 401 with the failure reason otherwise.
func (h *InstagramHandler) Login(w http.ResponseWriter, r *http.Request) {
	var creds models.Credentials
	if err := utils.DecodeAndValidate(r, &creds); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	result := h.automation.Login(r.Context(), creds)
	if !result.Success {
		reason := result.Error
		if reason == "" {
			reason = constants.MsgLoginFailedFallback
		}
		utils.ErrorFromAppError(w, utils.NewAutomationError(constants.StatusUnauthorized, reason))
		return
	}

	utils.Message(w, http.StatusOK, fmt.Sprintf(constants.MsgLoggedInAs, result.Username))
}

// Post publishes an image with a caption.
func (h *InstagramHandler) Post(w http.ResponseWriter, r *http.Request) {
	var req models.PostRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	result, err := h.automation.Post(r.Context(), req.Credentials, req.PostPayload)
	if err != nil {
		log.Error().Err(err).Object("request", req).Msg("Instagram post could not be attempted")
		utils.ErrorFromAppError(w, utils.NewAutomationError(constants.StatusInternalServerError, constants.MsgPostError))
		return
	}
	if !result.Success {
		log.Warn().Str("reason", result.Error).Object("request", req).Msg("Instagram post failed")
		utils.ErrorFromAppError(w, utils.NewAutomationError(constants.StatusInternalServerError, constants.MsgPostFailed))
		return
	}

	utils.Message(w, http.StatusOK, constants.MsgPostUploaded)
}
