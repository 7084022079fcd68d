// Package service provides business logic for the SENTIFY service.
// It orchestrates the provider clients, repositories and upload handling
// behind the HTTP handlers and the scheduled job.
//
// This file implements the analysis service, which builds the combined
// statement, asks the provider for sentiment and emotions and stores the result.
package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/iamyashsharma43/SENTIFY/internal/clients"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
	"github.com/iamyashsharma43/SENTIFY/internal/repository"
	"github.com/iamyashsharma43/SENTIFY/internal/utils"
)

// AnalysisService analyzes free-text answers and captions.
type AnalysisService struct {
	analyzer clients.SentimentAnalyzer
	repo     repository.AnalysisRepository
}

// NewAnalysisService creates a new AnalysisService.
//
// Parameters:
//   - analyzer: The sentiment and emotion provider
//   - repo: Repository the finished analyses are written to
//
// Returns:
//   - A new AnalysisService instance
func NewAnalysisService(analyzer clients.SentimentAnalyzer, repo repository.AnalysisRepository) *AnalysisService {
	return &AnalysisService{
		analyzer: analyzer,
		repo:     repo,
	}
}

// Analyze runs sentiment and emotion analysis on the request's combined
// statement and persists the result.
//
// Parameters:
//   - ctx: Context for the operation
//   - req: The answers or caption to analyze
//
// Returns:
//   - The combined statement with its sentiment label and emotion scores
//   - A provider error when either analysis fails, or a persistence error
//     when the result cannot be stored
//
// Every successful call writes one row, so identical requests are stored
// once each.
func (s *AnalysisService) Analyze(ctx context.Context, req *models.AnalysisRequest) (*models.AnalysisResult, error) {
	statement := req.CombinedStatement()

	var (
		sentiment string
		emotions  models.Emotions
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		sentiment, err = s.analyzer.AnalyzeSentiment(gctx, statement)
		return err
	})
	g.Go(func() error {
		var err error
		emotions, err = s.analyzer.AnalyzeEmotions(gctx, statement)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	result := &models.AnalysisResult{
		CombinedStatement: statement,
		Sentiment:         sentiment,
		Emotions:          emotions,
	}

	if err := s.repo.Create(ctx, models.NewAnalysis(result)); err != nil {
		return nil, utils.NewPersistenceError(fmt.Errorf("failed to save analysis: %w", err))
	}

	log.Info().
		Str("sentiment", sentiment).
		Int("statement_length", len(statement)).
		Msg("Analysis completed")

	return result, nil
}
