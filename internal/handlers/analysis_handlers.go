package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
	"github.com/iamyashsharma43/SENTIFY/internal/utils"
)

// AnalysisHandler exposes the free-text and patient batch analysis endpoints.
type AnalysisHandler struct {
	analysis AnalysisServiceInterface
	patients PatientServiceInterface
}

// NewAnalysisHandler creates a new AnalysisHandler.
func NewAnalysisHandler(analysis AnalysisServiceInterface, patients PatientServiceInterface) *AnalysisHandler {
	return &AnalysisHandler{
		analysis: analysis,
		patients: patients,
	}
}

// Analyze handles POST /api/analyze. At least one of feeling, challenge,
// improve or checkCaption must be non-empty.
func (h *AnalysisHandler) Analyze(w http.ResponseWriter, r *http.Request) {
	var req models.AnalysisRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	result, err := h.analysis.Analyze(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, failure(constants.MsgAnalysisFailed, err, true))
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

// Predict handles POST /api/predict. Unlike Analyze it does not require any
// input field; empty answers are sent to the provider as they are.
func (h *AnalysisHandler) Predict(w http.ResponseWriter, r *http.Request) {
	var req models.AnalysisRequest
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	result, err := h.analysis.Analyze(r.Context(), &req)
	if err != nil {
		utils.ErrorFromAppError(w, failure(constants.MsgPredictionFailed, err, false))
		return
	}

	utils.JSON(w, http.StatusOK, result)
}

// PredictPatients handles POST /api/predictPatientsSentiments.
// The response has one entry per input row in input order; rows that could
// not be analyzed carry the error placeholder.
//
// The batch grows with the number of rows, so the server-wide write deadline
// is lifted for this response; the client's connection bounds it instead.
func (h *AnalysisHandler) PredictPatients(w http.ResponseWriter, r *http.Request) {
	var req models.PatientBatchRequest
	if err := utils.DecodeAndValidate(r, &req); err != nil {
		utils.ErrorFromAppError(w, utils.ParseError(err))
		return
	}

	clearWriteDeadline(w, len(req.CSVData))

	utils.JSON(w, http.StatusOK, h.patients.ProcessRows(r.Context(), req.CSVData))
}

// failure builds the 500 response for a failed component call. With
// withDetails the provider payload, or the error text, is included.
func failure(message string, err error, withDetails bool) *utils.AppError {
	var details any
	if withDetails {
		details = utils.DetailsOf(err)
	}
	appErr := utils.NewWithDetails(err, http.StatusInternalServerError, message, details)
	appErr.DevInfo = err.Error()
	return appErr
}

// clearWriteDeadline removes the connection's write deadline. Writers that
// cannot change it, such as test recorders, are left alone.
func clearWriteDeadline(w http.ResponseWriter, rows int) {
	err := http.NewResponseController(w).SetWriteDeadline(time.Time{})
	if err != nil && !errors.Is(err, http.ErrNotSupported) {
		log.Warn().Err(err).Int("rows", rows).Msg("Could not lift write deadline for patient batch")
	}
}
