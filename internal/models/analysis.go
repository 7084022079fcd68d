// Package models provides data structures for the SENTIFY service.
// This file contains the sentiment analysis request, result and persisted record.
package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
)

// Emotions maps an emotion name (joy, sadness, fear, disgust, anger) to a score in [0,1].
// A nil Emotions marshals to JSON null, which is how degraded rows report missing emotions.
type Emotions map[string]float64

// Value implements driver.Valuer so Emotions can be stored in a JSON column.
func (e Emotions) Value() (driver.Value, error) {
	if e == nil {
		return nil, nil
	}
	b, err := json.Marshal(map[string]float64(e))
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements sql.Scanner for JSON and JSONB columns.
func (e *Emotions) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*e = nil
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("cannot scan %T into Emotions", src)
	}

	var m map[string]float64
	if err := json.Unmarshal(raw, &m); err != nil {
		return fmt.Errorf("invalid emotions JSON: %w", err)
	}
	*e = m
	return nil
}

// AnalysisRequest is the body accepted by /api/analyze and /api/predict.
// At least one field must be non-empty for /api/analyze.
type AnalysisRequest struct {
	Feeling      string `json:"feeling" validate:"required_without_all=Challenge Improve CheckCaption"`
	Challenge    string `json:"challenge"`
	Improve      string `json:"improve"`
	CheckCaption string `json:"checkCaption"`
}

// ValidationMessage implements utils.ValidationMessenger.
func (r *AnalysisRequest) ValidationMessage() string {
	return constants.MsgInputTextRequired
}

// CombinedStatement returns the text sent to the analysis provider.
// A caption is analyzed verbatim; otherwise the three answers are joined
// as "{feeling}. {challenge}. {improve}" with absent answers left empty.
func (r *AnalysisRequest) CombinedStatement() string {
	if r.CheckCaption != "" {
		return r.CheckCaption
	}
	return fmt.Sprintf("%s. %s. %s", r.Feeling, r.Challenge, r.Improve)
}

// AnalysisResult is the response body of a successful analysis.
type AnalysisResult struct {
	CombinedStatement string   `json:"combinedStatement"`
	Sentiment         string   `json:"sentiment"`
	Emotions          Emotions `json:"emotions"`
}

// Analysis is a persisted row of the analyses table.
type Analysis struct {
	ID                int64     `json:"id" db:"analysis_id"`
	CombinedStatement string    `json:"combined_statement" db:"combined_statement"`
	Sentiment         string    `json:"sentiment" db:"sentiment"`
	Emotions          Emotions  `json:"emotions" db:"emotions"`
	CreatedAt         time.Time `json:"created_at" db:"created_at"`
}

// NewAnalysis creates an Analysis from a finished result.
func NewAnalysis(result *AnalysisResult) *Analysis {
	return &Analysis{
		CombinedStatement: result.CombinedStatement,
		Sentiment:         result.Sentiment,
		Emotions:          result.Emotions,
		CreatedAt:         time.Now(),
	}
}

// TableName returns the database table name for the Analysis model.
func (a *Analysis) TableName() string {
	return constants.TableAnalyses
}

// ErrEmptyStatement is returned when an analysis is persisted without text.
var ErrEmptyStatement = errors.New("combined statement must not be empty")

// Validate checks the record before it is written.
func (a *Analysis) Validate() error {
	if a.CombinedStatement == "" {
		return ErrEmptyStatement
	}
	return nil
}
