package handlers

import (
	"errors"
	"net/http"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/utils"
)

// UploadHandler handles the multipart audio and dataset endpoints.
// Uploaded files live only for the duration of the request.
type UploadHandler struct {
	transcription TranscriptionServiceInterface
	datasets      DatasetServiceInterface
	store         uploadStore
}

// NewUploadHandler creates a new UploadHandler.
//
// Parameters:
//   - transcription: Forwards audio to the speech provider
//   - datasets: Parses CSV datasets
//   - dir: Directory temporary upload files are written to
//   - maxSize: Maximum accepted request size in bytes
func NewUploadHandler(transcription TranscriptionServiceInterface, datasets DatasetServiceInterface, dir string, maxSize int64) *UploadHandler {
	if maxSize <= 0 {
		maxSize = constants.MaxUploadSize
	}
	return &UploadHandler{
		transcription: transcription,
		datasets:      datasets,
		store:         uploadStore{dir: dir, maxSize: maxSize},
	}
}

// Transcribe handles POST /transcribe with a multipart "audio" part and
// returns the provider's transcription body unchanged.
func (h *UploadHandler) Transcribe(w http.ResponseWriter, r *http.Request) {
	upload, cleanup, err := h.store.save(w, r, constants.FormFieldAudio)
	defer cleanup()
	if err != nil {
		h.uploadFailed(w, err, constants.MsgNoAudioUploaded, constants.MsgTranscriptionFailed)
		return
	}

	body, err := h.transcription.Transcribe(r.Context(), upload)
	if err != nil {
		utils.ErrorFromAppError(w, failure(constants.MsgTranscriptionFailed, err, false))
		return
	}

	utils.RawJSON(w, http.StatusOK, body)
}

// UploadDataset handles POST /api/uploadDataset with a multipart "dataset"
// part and responds {"data": [...]} with one object per CSV record.
func (h *UploadHandler) UploadDataset(w http.ResponseWriter, r *http.Request) {
	upload, cleanup, err := h.store.save(w, r, constants.FormFieldDataset)
	defer cleanup()
	if err != nil {
		h.uploadFailed(w, err, constants.MsgNoDatasetUploaded, constants.MsgDatasetFailed)
		return
	}

	rows, err := h.datasets.ParseUpload(r.Context(), upload)
	if err != nil {
		if errors.Is(err, utils.ErrParse) {
			utils.ErrorFromAppError(w, utils.NewParseError(constants.MsgDatasetParseFailed, err))
			return
		}
		utils.ErrorFromAppError(w, failure(constants.MsgDatasetFailed, err, false))
		return
	}

	utils.JSON(w, http.StatusOK, map[string]any{"data": rows})
}

func (h *UploadHandler) uploadFailed(w http.ResponseWriter, err error, missingMsg, failedMsg string) {
	var maxBytesErr *http.MaxBytesError
	switch {
	case errors.Is(err, errNoUpload):
		utils.BadRequest(w, missingMsg)
	case errors.As(err, &maxBytesErr):
		utils.BadRequest(w, constants.MsgRequestBodyTooLarge)
	default:
		utils.ErrorFromAppError(w, failure(failedMsg, err, false))
	}
}
