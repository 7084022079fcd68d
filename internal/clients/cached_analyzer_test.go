package clients_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/iamyashsharma43/SENTIFY/internal/clients"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

// MockAnalyzer is a testify mock of clients.SentimentAnalyzer
type MockAnalyzer struct {
	mock.Mock
}

func (m *MockAnalyzer) AnalyzeSentiment(ctx context.Context, text string) (string, error) {
	args := m.Called(ctx, text)
	return args.String(0), args.Error(1)
}

func (m *MockAnalyzer) AnalyzeEmotions(ctx context.Context, text string) (models.Emotions, error) {
	args := m.Called(ctx, text)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(models.Emotions), args.Error(1)
}

// memoryStore is an in-memory clients.CacheStore
type memoryStore struct {
	mu      sync.Mutex
	data    map[string]string
	ttls    map[string]time.Duration
	failGet bool
	failSet bool
}

func newMemoryStore() *memoryStore {
	return &memoryStore{data: map[string]string{}, ttls: map[string]time.Duration{}}
}

func (s *memoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failGet {
		return "", false, errors.New("connection refused")
	}
	v, ok := s.data[key]
	return v, ok, nil
}

func (s *memoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.failSet {
		return errors.New("connection refused")
	}
	s.data[key] = value
	s.ttls[key] = ttl
	return nil
}

func TestCachedAnalyzer_SentimentHitsCacheOnSecondCall(t *testing.T) {
	next := new(MockAnalyzer)
	next.On("AnalyzeSentiment", mock.Anything, "same text").Return("positive", nil).Once()
	store := newMemoryStore()

	c := clients.NewCachedAnalyzer(next, store, time.Hour, "test:")

	for i := 0; i < 2; i++ {
		label, err := c.AnalyzeSentiment(context.Background(), "same text")
		require.NoError(t, err)
		assert.Equal(t, "positive", label)
	}

	next.AssertExpectations(t)
	require.Len(t, store.data, 1)
	for key, ttl := range store.ttls {
		assert.Contains(t, key, "test:sentiment:")
		assert.Equal(t, time.Hour, ttl)
	}
}

func TestCachedAnalyzer_EmotionsRoundTrip(t *testing.T) {
	emotions := models.Emotions{"joy": 0.4, "anger": 0.1}
	next := new(MockAnalyzer)
	next.On("AnalyzeEmotions", mock.Anything, "text").Return(emotions, nil).Once()

	c := clients.NewCachedAnalyzer(next, newMemoryStore(), 0, "")

	first, err := c.AnalyzeEmotions(context.Background(), "text")
	require.NoError(t, err)
	second, err := c.AnalyzeEmotions(context.Background(), "text")
	require.NoError(t, err)

	assert.Equal(t, emotions, first)
	assert.Equal(t, emotions, second)
	next.AssertExpectations(t)
}

func TestCachedAnalyzer_ErrorsAreNotCached(t *testing.T) {
	providerErr := &clients.ProviderError{Operation: clients.OpAnalyzeSentiment, Message: "timeout"}
	next := new(MockAnalyzer)
	next.On("AnalyzeSentiment", mock.Anything, "text").Return("", providerErr).Twice()
	store := newMemoryStore()

	c := clients.NewCachedAnalyzer(next, store, time.Minute, "p:")

	_, err := c.AnalyzeSentiment(context.Background(), "text")
	assert.ErrorIs(t, err, providerErr)
	_, err = c.AnalyzeSentiment(context.Background(), "text")
	assert.Error(t, err)

	assert.Empty(t, store.data)
	next.AssertExpectations(t)
}

func TestCachedAnalyzer_StoreFailureFallsThrough(t *testing.T) {
	next := new(MockAnalyzer)
	next.On("AnalyzeSentiment", mock.Anything, "text").Return("negative", nil).Twice()
	store := newMemoryStore()
	store.failGet = true
	store.failSet = true

	c := clients.NewCachedAnalyzer(next, store, time.Minute, "p:")

	for i := 0; i < 2; i++ {
		label, err := c.AnalyzeSentiment(context.Background(), "text")
		require.NoError(t, err)
		assert.Equal(t, "negative", label)
	}
	next.AssertExpectations(t)
}
