package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/clients"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
	"github.com/iamyashsharma43/SENTIFY/internal/repository"
)

// PatientService analyzes patient batches row by row.
type PatientService struct {
	analyzer  clients.SentimentAnalyzer
	repo      repository.PatientSentimentRepository
	processor RowProcessor
}

// NewPatientService creates a new PatientService.
//
// Parameters:
//   - analyzer: The sentiment and emotion provider
//   - repo: Repository each analyzed row is written to
//   - processor: Strategy that walks the batch; nil selects SequentialProcessor
//
// Returns:
//   - A new PatientService instance
func NewPatientService(analyzer clients.SentimentAnalyzer, repo repository.PatientSentimentRepository, processor RowProcessor) *PatientService {
	if processor == nil {
		processor = SequentialProcessor{}
	}
	return &PatientService{
		analyzer:  analyzer,
		repo:      repo,
		processor: processor,
	}
}

// ProcessRows analyzes the Sentiment text of every row, stores each result
// and returns one RowResult per input row, in input order.
//
// A row whose analysis or persistence fails is returned as a degraded
// placeholder; the batch itself never fails.
func (s *PatientService) ProcessRows(ctx context.Context, rows []models.PatientRow) []models.RowResult {
	start := time.Now()

	results := s.processor.Process(ctx, rows, s.processRow)

	degraded := 0
	for _, r := range results {
		if r.IsDegraded() {
			degraded++
		}
	}

	log.Info().
		Int("rows", len(rows)).
		Int("degraded", degraded).
		Dur("duration", time.Since(start)).
		Msg("Patient batch processed")

	return results
}

func (s *PatientService) processRow(ctx context.Context, row models.PatientRow) models.RowResult {
	result, err := s.analyzeRow(ctx, row)
	if err != nil {
		log.Error().
			Err(err).
			Str("name", string(row.Name)).
			Msg("Error processing patient row")
		return models.NewDegradedRowResult(row)
	}
	return result
}

func (s *PatientService) analyzeRow(ctx context.Context, row models.PatientRow) (models.RowResult, error) {
	text := string(row.Sentiment)

	sentiment, err := s.analyzer.AnalyzeSentiment(ctx, text)
	if err != nil {
		return models.RowResult{}, err
	}

	emotions, err := s.analyzer.AnalyzeEmotions(ctx, text)
	if err != nil {
		return models.RowResult{}, err
	}

	result := models.NewRowResult(row, sentiment, emotions)
	if err := s.repo.Create(ctx, models.NewPatientSentiment(result)); err != nil {
		return models.RowResult{}, fmt.Errorf("failed to save patient sentiment: %w", err)
	}

	return result, nil
}
