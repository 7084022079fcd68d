package models_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

func TestAnalysisRequest_CombinedStatement(t *testing.T) {
	tests := []struct {
		name string
		req  models.AnalysisRequest
		want string
	}{
		{
			name: "caption is used verbatim",
			req:  models.AnalysisRequest{Feeling: "ignored", CheckCaption: "Sunny day at the beach!"},
			want: "Sunny day at the beach!",
		},
		{
			name: "answers are joined",
			req:  models.AnalysisRequest{Feeling: "happy", Challenge: "work", Improve: "sleep"},
			want: "happy. work. sleep",
		},
		{
			name: "absent answers render empty",
			req:  models.AnalysisRequest{Feeling: "tired"},
			want: "tired. . ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.req.CombinedStatement())
		})
	}
}

func TestEmotions_ValueAndScan(t *testing.T) {
	emotions := models.Emotions{"joy": 0.8, "sadness": 0.1}

	v, err := emotions.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `{"joy":0.8,"sadness":0.1}`, v.(string))

	var fromBytes models.Emotions
	require.NoError(t, fromBytes.Scan([]byte(`{"anger":0.5}`)))
	assert.Equal(t, models.Emotions{"anger": 0.5}, fromBytes)

	var fromString models.Emotions
	require.NoError(t, fromString.Scan(`{"fear":0.25}`))
	assert.Equal(t, models.Emotions{"fear": 0.25}, fromString)

	var fromNil models.Emotions = models.Emotions{"x": 1}
	require.NoError(t, fromNil.Scan(nil))
	assert.Nil(t, fromNil)

	var bad models.Emotions
	assert.Error(t, bad.Scan(42))
	assert.Error(t, bad.Scan("not json"))
}

func TestEmotions_NilValue(t *testing.T) {
	var emotions models.Emotions
	v, err := emotions.Value()
	require.NoError(t, err)
	assert.Nil(t, v)

	b, err := json.Marshal(models.AnalysisResult{Sentiment: "neutral"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"combinedStatement":"","sentiment":"neutral","emotions":null}`, string(b))
}

func TestNewAnalysis(t *testing.T) {
	result := &models.AnalysisResult{
		CombinedStatement: "good. fine. more",
		Sentiment:         "positive",
		Emotions:          models.Emotions{"joy": 0.9},
	}

	analysis := models.NewAnalysis(result)

	assert.Equal(t, result.CombinedStatement, analysis.CombinedStatement)
	assert.Equal(t, "positive", analysis.Sentiment)
	assert.Equal(t, result.Emotions, analysis.Emotions)
	assert.WithinDuration(t, time.Now(), analysis.CreatedAt, time.Second)
	assert.Equal(t, "analyses", analysis.TableName())
	assert.NoError(t, analysis.Validate())

	analysis.CombinedStatement = ""
	assert.ErrorIs(t, analysis.Validate(), models.ErrEmptyStatement)
}
