package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/database"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

// PatientSentimentRepository defines methods for persisting analyzed patient rows
type PatientSentimentRepository interface {
	Create(ctx context.Context, record *models.PatientSentiment) error
}

// SQLPatientSentimentRepository is a database/sql implementation of PatientSentimentRepository
type SQLPatientSentimentRepository struct {
	db *database.Pool
}

// NewPatientSentimentRepository creates a new PatientSentimentRepository
func NewPatientSentimentRepository(db *database.Pool) PatientSentimentRepository {
	return &SQLPatientSentimentRepository{db: db}
}

// Create inserts a patient sentiment record and sets its ID
func (r *SQLPatientSentimentRepository) Create(ctx context.Context, record *models.PatientSentiment) error {
	query := `
        INSERT INTO ` + constants.TablePatientSentiments + ` (
            ` + constants.ColumnName + `, ` + constants.ColumnAge + `, ` + constants.ColumnSentiment + `, ` + constants.ColumnEmotions + `,
            ` + constants.ColumnType + `, ` + constants.ColumnCountry + `, ` + constants.ColumnCity + `, ` + constants.ColumnState + `,
            ` + constants.ColumnGender + `, ` + constants.ColumnCreatedAt + `
        )
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	id, err := r.db.InsertReturningID(ctx, nil, query, constants.ColumnPatientSentimentID,
		record.Name,
		record.Age,
		record.Sentiment,
		record.Emotions,
		record.Type,
		record.Country,
		record.City,
		record.State,
		record.Gender,
		record.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create patient sentiment: %w", err)
	}
	record.ID = id

	log.Debug().
		Int64(constants.ColumnPatientSentimentID, record.ID).
		Str(constants.ColumnSentiment, record.Sentiment).
		Msg("Patient sentiment saved")

	return nil
}
