// Package clients holds the outbound integrations: the sentiment/emotion and
// speech provider, its local fallback and cache, and the Instagram automation.
package clients

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/iamyashsharma43/SENTIFY/internal/models"
	"github.com/iamyashsharma43/SENTIFY/internal/utils"
)

// SentimentAnalyzer produces a sentiment label and an emotion vector for a text.
type SentimentAnalyzer interface {
	AnalyzeSentiment(ctx context.Context, text string) (string, error)
	AnalyzeEmotions(ctx context.Context, text string) (models.Emotions, error)
}

// Transcriber turns an audio stream into the provider's transcription document.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader, contentType string) (json.RawMessage, error)
}

// Provider operations, used in errors and logs.
const (
	OpAnalyzeSentiment = "analyze_sentiment"
	OpAnalyzeEmotions  = "analyze_emotions"
	OpTranscribe       = "transcribe"
)

// ProviderError is returned by every failed provider call.
// Payload holds the provider's JSON error body when one was received;
// otherwise Message holds the transport error text.
type ProviderError struct {
	Operation  string
	StatusCode int
	Payload    json.RawMessage
	Message    string
}

func (e *ProviderError) Error() string {
	switch {
	case e.StatusCode != 0 && len(e.Payload) > 0:
		return fmt.Sprintf("%s failed with status %d: %s", e.Operation, e.StatusCode, utils.TruncateString(string(e.Payload), 200))
	case e.StatusCode != 0:
		return fmt.Sprintf("%s failed with status %d", e.Operation, e.StatusCode)
	default:
		return fmt.Sprintf("%s failed: %s", e.Operation, e.Message)
	}
}

// Is lets errors.Is(err, utils.ErrProvider) match any ProviderError.
func (e *ProviderError) Is(target error) bool {
	return target == utils.ErrProvider
}

// ErrorDetails implements utils.Detailer. The provider body is passed through
// untouched so callers see the same details the provider reported.
func (e *ProviderError) ErrorDetails() any {
	if len(e.Payload) > 0 {
		return e.Payload
	}
	return e.Message
}
