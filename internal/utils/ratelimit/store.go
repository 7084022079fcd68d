package ratelimit

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// DefaultCategory is used for categories without an explicit rate.
const DefaultCategory = "default"

type bucketKey struct {
	category string
	client   string
}

// Store hands out one Limiter per (category, client) pair, so spending the
// analysis budget leaves the automation budget untouched.
type Store struct {
	mu       sync.RWMutex
	limiters map[bucketKey]*Limiter
	rates    map[string]Rate

	sweepEvery time.Duration
	maxIdle    time.Duration
	now        func() time.Time

	done     chan struct{}
	stopOnce sync.Once
}

// NewStore returns a Store whose unknown categories use defaultRate. When
// sweepEvery is positive a goroutine drops limiters unused for maxIdle;
// Stop ends it.
func NewStore(defaultRate Rate, sweepEvery, maxIdle time.Duration) *Store {
	s := &Store{
		limiters:   make(map[bucketKey]*Limiter),
		rates:      map[string]Rate{DefaultCategory: defaultRate},
		sweepEvery: sweepEvery,
		maxIdle:    maxIdle,
		now:        time.Now,
		done:       make(chan struct{}),
	}
	if sweepEvery > 0 {
		go s.sweep()
	}
	return s
}

// GetLimiter returns the limiter for clientID within category, creating it
// on first use.
func (s *Store) GetLimiter(clientID, category string) *Limiter {
	key := bucketKey{category: category, client: clientID}

	s.mu.RLock()
	l, ok := s.limiters[key]
	s.mu.RUnlock()
	if ok {
		return l
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if l, ok = s.limiters[key]; ok {
		return l
	}
	rate, ok := s.rates[category]
	if !ok {
		rate = s.rates[DefaultCategory]
	}
	l = newLimiterAt(rate.RequestsPerSecond, rate.Burst, s.now)
	s.limiters[key] = l
	return l
}

// SetRate configures category. Limiters already handed out keep their rate.
func (s *Store) SetRate(category string, rate Rate) {
	s.mu.Lock()
	s.rates[category] = rate
	s.mu.Unlock()
}

// Len returns the number of tracked limiters.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.limiters)
}

// Stop ends the sweeper. It is safe to call more than once.
func (s *Store) Stop() {
	s.stopOnce.Do(func() { close(s.done) })
}

func (s *Store) sweep() {
	t := time.NewTicker(s.sweepEvery)
	defer t.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-t.C:
			s.cleanup()
		}
	}
}

func (s *Store) cleanup() {
	cutoff := s.now().Add(-s.maxIdle)

	s.mu.Lock()
	defer s.mu.Unlock()

	before := len(s.limiters)
	for key, l := range s.limiters {
		if l.idleSince(cutoff) {
			delete(s.limiters, key)
		}
	}
	if pruned := before - len(s.limiters); pruned > 0 {
		log.Debug().Int("removed", pruned).Int("remaining", len(s.limiters)).Msg("Pruned idle rate limiters")
	}
}
