package clients

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/config"
	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

// WatsonClient calls IBM Watson Natural Language Understanding and Speech to Text.
// It is safe for concurrent use.
type WatsonClient struct {
	httpClient     *http.Client
	nluURL         string
	nluKey         string
	speechURL      string
	speechKey      string
	version        string
	maxRetries     int
	initialBackoff time.Duration
}

// WatsonOption customizes a WatsonClient.
type WatsonOption func(*WatsonClient)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) WatsonOption {
	return func(w *WatsonClient) { w.httpClient = c }
}

// WithInitialBackoff sets the delay before the first retry. It doubles on each attempt.
func WithInitialBackoff(d time.Duration) WatsonOption {
	return func(w *WatsonClient) { w.initialBackoff = d }
}

// NewWatsonClient creates a client from the analysis settings.
func NewWatsonClient(cfg *config.AnalysisSettings, opts ...WatsonOption) *WatsonClient {
	w := &WatsonClient{
		httpClient:     &http.Client{Timeout: cfg.Timeout},
		nluURL:         strings.TrimRight(cfg.URL, "/"),
		nluKey:         cfg.APIKey,
		speechURL:      strings.TrimRight(cfg.SpeechURL, "/"),
		speechKey:      cfg.SpeechAPIKey,
		version:        cfg.Version,
		maxRetries:     cfg.MaxRetries,
		initialBackoff: constants.AnalysisInitialBackoff,
	}
	if w.speechURL == "" {
		w.speechURL = w.nluURL
	}
	if w.speechKey == "" {
		w.speechKey = w.nluKey
	}
	if w.version == "" {
		w.version = constants.DefaultWatsonVersion
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

type analyzeRequest struct {
	Text     string          `json:"text"`
	Features analyzeFeatures `json:"features"`
}

type analyzeFeatures struct {
	Sentiment *documentFeature `json:"sentiment,omitempty"`
	Emotion   *documentFeature `json:"emotion,omitempty"`
}

type documentFeature struct {
	Document bool `json:"document"`
}

type analyzeResponse struct {
	Sentiment *struct {
		Document struct {
			Label string  `json:"label"`
			Score float64 `json:"score"`
		} `json:"document"`
	} `json:"sentiment"`
	Emotion *struct {
		Document struct {
			Emotion map[string]float64 `json:"emotion"`
		} `json:"document"`
	} `json:"emotion"`
}

// AnalyzeSentiment returns the document-level sentiment label.
func (w *WatsonClient) AnalyzeSentiment(ctx context.Context, text string) (string, error) {
	resp, err := w.analyze(ctx, OpAnalyzeSentiment, analyzeRequest{
		Text:     text,
		Features: analyzeFeatures{Sentiment: &documentFeature{Document: true}},
	})
	if err != nil {
		return "", err
	}
	if resp.Sentiment == nil || resp.Sentiment.Document.Label == "" {
		return "", &ProviderError{Operation: OpAnalyzeSentiment, Message: "response has no sentiment.document.label"}
	}
	return resp.Sentiment.Document.Label, nil
}

// AnalyzeEmotions returns the document-level emotion scores.
func (w *WatsonClient) AnalyzeEmotions(ctx context.Context, text string) (models.Emotions, error) {
	resp, err := w.analyze(ctx, OpAnalyzeEmotions, analyzeRequest{
		Text:     text,
		Features: analyzeFeatures{Emotion: &documentFeature{Document: true}},
	})
	if err != nil {
		return nil, err
	}
	if resp.Emotion == nil || resp.Emotion.Document.Emotion == nil {
		return nil, &ProviderError{Operation: OpAnalyzeEmotions, Message: "response has no emotion.document.emotion"}
	}
	return models.Emotions(resp.Emotion.Document.Emotion), nil
}

// Transcribe sends the audio as the request body with its declared content type
// and returns the provider's response verbatim. Retries need a seekable reader;
// a plain io.Reader gets a single attempt.
func (w *WatsonClient) Transcribe(ctx context.Context, audio io.Reader, contentType string) (json.RawMessage, error) {
	endpoint := w.speechURL + "/v1/recognize"

	retries := w.maxRetries
	seeker, canRewind := audio.(io.Seeker)
	if !canRewind {
		retries = 0
	}

	body, err := w.do(ctx, OpTranscribe, retries, func() (*http.Request, error) {
		if canRewind {
			if _, err := seeker.Seek(0, io.SeekStart); err != nil {
				return nil, err
			}
		}
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, io.NopCloser(audio))
		if err != nil {
			return nil, err
		}
		req.Header.Set(constants.HeaderContentType, contentType)
		req.SetBasicAuth(constants.WatsonAPIKeyUser, w.speechKey)
		return req, nil
	})
	if err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

func (w *WatsonClient) analyze(ctx context.Context, op string, payload analyzeRequest) (*analyzeResponse, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal analyze request: %w", err)
	}

	endpoint := w.nluURL + "/v1/analyze?version=" + url.QueryEscape(w.version)

	body, err := w.do(ctx, op, w.maxRetries, func() (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(raw))
		if err != nil {
			return nil, err
		}
		req.Header.Set(constants.HeaderContentType, constants.ContentTypeJSON)
		req.SetBasicAuth(constants.WatsonAPIKeyUser, w.nluKey)
		return req, nil
	})
	if err != nil {
		return nil, err
	}

	var resp analyzeResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, &ProviderError{Operation: op, Message: "invalid response body: " + err.Error()}
	}
	return &resp, nil
}

// do sends the request built by newReq, retrying transport errors and 5xx
// responses with exponential backoff. Non-2xx responses become ProviderErrors.
func (w *WatsonClient) do(ctx context.Context, op string, retries int, newReq func() (*http.Request, error)) ([]byte, error) {
	backoff := w.initialBackoff
	start := time.Now()

	for attempt := 0; ; attempt++ {
		req, err := newReq()
		if err != nil {
			return nil, &ProviderError{Operation: op, Message: err.Error()}
		}

		body, status, err := w.send(req)
		retryable := err != nil || status >= http.StatusInternalServerError

		if err == nil && status >= 200 && status < 300 {
			log.Debug().
				Str("operation", op).
				Int("attempts", attempt+1).
				Dur("duration", time.Since(start)).
				Msg("Provider call succeeded")
			return body, nil
		}

		if !retryable || attempt >= retries || ctx.Err() != nil {
			return nil, newProviderError(op, status, body, err)
		}

		log.Warn().
			Str("operation", op).
			Int("attempt", attempt+1).
			Int("status", status).
			Dur("backoff", backoff).
			Msg("Provider call failed, will retry")

		select {
		case <-ctx.Done():
			return nil, newProviderError(op, status, body, ctx.Err())
		case <-time.After(backoff):
		}
		backoff *= 2
	}
}

func (w *WatsonClient) send(req *http.Request) ([]byte, int, error) {
	resp, err := w.httpClient.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, resp.StatusCode, fmt.Errorf("failed to read response: %w", err)
	}
	return body, resp.StatusCode, nil
}

func newProviderError(op string, status int, body []byte, err error) *ProviderError {
	pe := &ProviderError{Operation: op, StatusCode: status}
	if err != nil {
		pe.Message = err.Error()
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			pe.Message = urlErr.Err.Error()
		}
	}
	if len(body) > 0 && json.Valid(body) {
		pe.Payload = json.RawMessage(body)
	} else if len(body) > 0 && pe.Message == "" {
		pe.Message = string(body)
	}
	if pe.Message == "" && len(pe.Payload) == 0 {
		pe.Message = http.StatusText(status)
	}
	return pe
}
