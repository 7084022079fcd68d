package models

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
)

// Text is a string field that also accepts JSON numbers and booleans.
// Spreadsheet exports frequently send Age as a number; it is kept in its
// textual form so the original value round-trips unchanged.
type Text string

// UnmarshalJSON implements json.Unmarshaler.
func (t *Text) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		*t = ""
		return nil
	}

	switch b[0] {
	case '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*t = Text(s)
		return nil
	case '{', '[':
		return fmt.Errorf("expected a string or number, got %s", b[:1])
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err == nil {
		*t = Text(n.String())
		return nil
	}

	var flag bool
	if err := json.Unmarshal(b, &flag); err != nil {
		return fmt.Errorf("expected a string or number: %w", err)
	}
	*t = Text(fmt.Sprint(flag))
	return nil
}

// PatientRow is one record of a patient batch, keyed by the exact CSV headers.
type PatientRow struct {
	Name      Text `json:"Name"`
	Age       Text `json:"Age"`
	Sentiment Text `json:"Sentiment"`
	Type      Text `json:"Type"`
	Country   Text `json:"Country"`
	City      Text `json:"City"`
	State     Text `json:"State"`
	Gender    Text `json:"Gender"`
}

// PatientRowFromRecord builds a row from a parsed CSV record.
// Missing headers produce empty fields.
func PatientRowFromRecord(record map[string]string) PatientRow {
	return PatientRow{
		Name:      Text(record[constants.PatientHeaderName]),
		Age:       Text(record[constants.PatientHeaderAge]),
		Sentiment: Text(record[constants.PatientHeaderSentiment]),
		Type:      Text(record[constants.PatientHeaderType]),
		Country:   Text(record[constants.PatientHeaderCountry]),
		City:      Text(record[constants.PatientHeaderCity]),
		State:     Text(record[constants.PatientHeaderState]),
		Gender:    Text(record[constants.PatientHeaderGender]),
	}
}

// PatientBatchRequest is the body accepted by /api/predictPatientsSentiments.
type PatientBatchRequest struct {
	CSVData []PatientRow `json:"csvData" validate:"required,min=1"`
}

// ValidationMessage implements utils.ValidationMessenger.
func (r *PatientBatchRequest) ValidationMessage() string {
	return constants.MsgCSVDataMissing
}

// RowResult is the per-row outcome of a patient batch.
type RowResult struct {
	Name      string   `json:"name"`
	Age       string   `json:"age"`
	Sentiment string   `json:"sentiment"`
	Emotions  Emotions `json:"emotions"`
	Type      string   `json:"type"`
	Country   string   `json:"country"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Gender    string   `json:"gender"`
}

// NewRowResult combines a row's descriptive fields with its analysis.
func NewRowResult(row PatientRow, sentiment string, emotions Emotions) RowResult {
	return RowResult{
		Name:      string(row.Name),
		Age:       string(row.Age),
		Sentiment: sentiment,
		Emotions:  emotions,
		Type:      string(row.Type),
		Country:   string(row.Country),
		City:      string(row.City),
		State:     string(row.State),
		Gender:    string(row.Gender),
	}
}

// NewDegradedRowResult returns the placeholder for a row whose analysis or
// persistence failed. Emotions stay nil and render as JSON null.
func NewDegradedRowResult(row PatientRow) RowResult {
	return NewRowResult(row, constants.SentimentErrorPlaceholder, nil)
}

// IsDegraded reports whether the row carries the failure placeholder.
func (r RowResult) IsDegraded() bool {
	return r.Sentiment == constants.SentimentErrorPlaceholder && r.Emotions == nil
}

// PatientSentiment is a persisted row of the patient_sentiments table.
type PatientSentiment struct {
	ID        int64     `json:"id" db:"patient_sentiment_id"`
	Name      string    `json:"name" db:"name"`
	Age       string    `json:"age" db:"age"`
	Sentiment string    `json:"sentiment" db:"sentiment"`
	Emotions  Emotions  `json:"emotions" db:"emotions"`
	Type      string    `json:"type" db:"type"`
	Country   string    `json:"country" db:"country"`
	City      string    `json:"city" db:"city"`
	State     string    `json:"state" db:"state"`
	Gender    string    `json:"gender" db:"gender"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// NewPatientSentiment creates a record from an analyzed row.
func NewPatientSentiment(result RowResult) *PatientSentiment {
	return &PatientSentiment{
		Name:      result.Name,
		Age:       result.Age,
		Sentiment: result.Sentiment,
		Emotions:  result.Emotions,
		Type:      result.Type,
		Country:   result.Country,
		City:      result.City,
		State:     result.State,
		Gender:    result.Gender,
		CreatedAt: time.Now(),
	}
}

// TableName returns the database table name for the PatientSentiment model.
func (p *PatientSentiment) TableName() string {
	return constants.TablePatientSentiments
}
