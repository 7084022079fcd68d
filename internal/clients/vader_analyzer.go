package clients

import (
	"context"
	"encoding/json"
	"io"

	"github.com/jonreiter/govader"

	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

// VADER compound score thresholds for the positive and negative labels.
const (
	vaderPositiveThreshold = 0.20
	vaderNegativeThreshold = -0.20
)

// VaderAnalyzer scores text locally with VADER. It is meant for development
// without provider credentials and is rejected in production.
//
// VADER has no emotion model, so AnalyzeEmotions maps the polarity scores
// onto joy and sadness and reports zero for the remaining emotions.
type VaderAnalyzer struct {
	analyzer *govader.SentimentIntensityAnalyzer
}

// NewVaderAnalyzer creates a VADER analyzer.
func NewVaderAnalyzer() *VaderAnalyzer {
	return &VaderAnalyzer{analyzer: govader.NewSentimentIntensityAnalyzer()}
}

// AnalyzeSentiment returns positive, negative or neutral from the compound score.
func (v *VaderAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &ProviderError{Operation: OpAnalyzeSentiment, Message: err.Error()}
	}

	score := v.analyzer.PolarityScores(text).Compound
	switch {
	case score >= vaderPositiveThreshold:
		return "positive", nil
	case score <= vaderNegativeThreshold:
		return "negative", nil
	default:
		return "neutral", nil
	}
}

// AnalyzeEmotions approximates the provider's emotion vector from polarity.
func (v *VaderAnalyzer) AnalyzeEmotions(ctx context.Context, text string) (models.Emotions, error) {
	if err := ctx.Err(); err != nil {
		return nil, &ProviderError{Operation: OpAnalyzeEmotions, Message: err.Error()}
	}

	s := v.analyzer.PolarityScores(text)
	return models.Emotions{
		"joy":     s.Positive,
		"sadness": s.Negative,
		"anger":   0,
		"fear":    0,
		"disgust": 0,
	}, nil
}

// Transcribe always fails: speech recognition needs the remote provider.
func (v *VaderAnalyzer) Transcribe(_ context.Context, _ io.Reader, _ string) (json.RawMessage, error) {
	return nil, &ProviderError{Operation: OpTranscribe, Message: "speech recognition is not available with the vader provider"}
}
