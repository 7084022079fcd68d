package service

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/clients"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
	"github.com/iamyashsharma43/SENTIFY/internal/storage"
)

// TranscriptionService forwards uploaded audio to the speech provider.
type TranscriptionService struct {
	transcriber clients.Transcriber
	archiver    storage.Archiver
}

// NewTranscriptionService creates a new TranscriptionService.
func NewTranscriptionService(transcriber clients.Transcriber, archiver storage.Archiver) *TranscriptionService {
	if archiver == nil {
		archiver = storage.NopArchiver{}
	}
	return &TranscriptionService{transcriber: transcriber, archiver: archiver}
}

// Transcribe sends the uploaded audio with its declared MIME type and returns
// the provider's response untouched. The upload is archived first when
// archiving is enabled; archive failures are only logged.
func (s *TranscriptionService) Transcribe(ctx context.Context, upload *models.UploadedFile) (json.RawMessage, error) {
	if object, err := s.archiver.Archive(ctx, "audio", upload.Path, upload.OriginalName, upload.MimeType); err != nil {
		log.Warn().Err(err).Str("file", upload.OriginalName).Msg("Failed to archive audio upload")
	} else if object != "" {
		log.Info().Str("object", object).Msg("Audio upload archived")
	}

	f, err := os.Open(upload.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open audio: %w", err)
	}
	defer f.Close()

	return s.transcriber.Transcribe(ctx, f, upload.MimeType)
}
