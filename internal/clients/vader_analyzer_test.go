package clients_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamyashsharma43/SENTIFY/internal/clients"
	"github.com/iamyashsharma43/SENTIFY/internal/utils"
)

func TestVaderAnalyzer_Labels(t *testing.T) {
	v := clients.NewVaderAnalyzer()
	ctx := context.Background()

	tests := []struct {
		text string
		want string
	}{
		{text: "I love this wonderful, amazing day!", want: "positive"},
		{text: "This is terrible, awful and I hate it.", want: "negative"},
		{text: "The meeting is at noon.", want: "neutral"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			label, err := v.AnalyzeSentiment(ctx, tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, label)
		})
	}
}

func TestVaderAnalyzer_Emotions(t *testing.T) {
	v := clients.NewVaderAnalyzer()

	emotions, err := v.AnalyzeEmotions(context.Background(), "I am so happy and grateful")

	require.NoError(t, err)
	assert.Len(t, emotions, 5)
	assert.Greater(t, emotions["joy"], emotions["sadness"])
	for name, score := range emotions {
		assert.GreaterOrEqual(t, score, 0.0, name)
		assert.LessOrEqual(t, score, 1.0, name)
	}
}

func TestVaderAnalyzer_CanceledContext(t *testing.T) {
	v := clients.NewVaderAnalyzer()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := v.AnalyzeSentiment(ctx, "text")
	assert.True(t, errors.Is(err, utils.ErrProvider))
}

func TestVaderAnalyzer_TranscribeUnsupported(t *testing.T) {
	_, err := clients.NewVaderAnalyzer().Transcribe(context.Background(), strings.NewReader("x"), "audio/wav")

	var pe *clients.ProviderError
	require.True(t, errors.As(err, &pe))
	assert.Equal(t, clients.OpTranscribe, pe.Operation)
}
