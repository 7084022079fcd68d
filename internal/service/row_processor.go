package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

// RowFunc analyzes a single patient row. It never fails; errors are folded
// into a degraded RowResult.
type RowFunc func(ctx context.Context, row models.PatientRow) models.RowResult

// RowProcessor applies a RowFunc to every row of a batch. Results are
// returned in input order.
type RowProcessor interface {
	Process(ctx context.Context, rows []models.PatientRow, fn RowFunc) []models.RowResult
}

// NewRowProcessor picks the sequential processor for concurrency <= 1 and a
// bounded concurrent processor otherwise.
func NewRowProcessor(concurrency int) RowProcessor {
	if concurrency <= 1 {
		return SequentialProcessor{}
	}
	if concurrency > constants.MaxBatchConcurrency {
		concurrency = constants.MaxBatchConcurrency
	}
	return ConcurrentProcessor{Limit: concurrency}
}

// SequentialProcessor handles rows one after another.
type SequentialProcessor struct{}

// Process implements RowProcessor.
func (SequentialProcessor) Process(ctx context.Context, rows []models.PatientRow, fn RowFunc) []models.RowResult {
	results := make([]models.RowResult, 0, len(rows))
	for _, row := range rows {
		results = append(results, fn(ctx, row))
	}
	return results
}

// ConcurrentProcessor handles up to Limit rows at a time.
type ConcurrentProcessor struct {
	Limit int
}

// Process implements RowProcessor.
func (p ConcurrentProcessor) Process(ctx context.Context, rows []models.PatientRow, fn RowFunc) []models.RowResult {
	results := make([]models.RowResult, len(rows))

	var g errgroup.Group
	g.SetLimit(max(p.Limit, 1))

	for i, row := range rows {
		g.Go(func() error {
			results[i] = fn(ctx, row)
			return nil
		})
	}
	_ = g.Wait()

	return results
}
