package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/database"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

// AnalysisRepository defines methods for persisting analyses
type AnalysisRepository interface {
	Create(ctx context.Context, analysis *models.Analysis) error
}

// SQLAnalysisRepository is a database/sql implementation of AnalysisRepository
type SQLAnalysisRepository struct {
	db *database.Pool
}

// NewAnalysisRepository creates a new AnalysisRepository
func NewAnalysisRepository(db *database.Pool) AnalysisRepository {
	return &SQLAnalysisRepository{db: db}
}

// Create inserts an analysis and sets its ID
func (r *SQLAnalysisRepository) Create(ctx context.Context, analysis *models.Analysis) error {
	if err := analysis.Validate(); err != nil {
		return err
	}

	query := `
        INSERT INTO ` + constants.TableAnalyses + ` (` + constants.ColumnCombinedStatement + `, ` + constants.ColumnSentiment + `, ` + constants.ColumnEmotions + `, ` + constants.ColumnCreatedAt + `)
        VALUES ($1, $2, $3, $4)`

	id, err := r.db.InsertReturningID(ctx, nil, query, constants.ColumnAnalysisID,
		analysis.CombinedStatement,
		analysis.Sentiment,
		analysis.Emotions,
		analysis.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create analysis: %w", err)
	}
	analysis.ID = id

	log.Info().
		Int64(constants.ColumnAnalysisID, analysis.ID).
		Str(constants.ColumnSentiment, analysis.Sentiment).
		Msg("Analysis saved")

	return nil
}
