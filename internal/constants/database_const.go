// Package constants provides shared constant values used throughout the application.
//
// The database_const.go file defines constants related to database structures,
// including table names and column names. These constants keep the migrations
// and repositories in agreement about the schema.
package constants

// Table Names define the names of database tables used in the application.
const (
	// TableAnalyses stores combined statements with their sentiment and emotions.
	TableAnalyses = "analyses"

	// TablePatientSentiments stores one analyzed patient row per record.
	TablePatientSentiments = "patient_sentiments"

	// TableSchemaMigrations records which migrations have been applied.
	TableSchemaMigrations = "schema_migrations"
)

// Common Column Names define frequently used database column names.
const (
	// ColumnCreatedAt is the column name for record creation timestamps.
	ColumnCreatedAt = "created_at"

	// ColumnSentiment holds the provider's sentiment label.
	ColumnSentiment = "sentiment"

	// ColumnEmotions holds the provider's emotion vector serialized as JSON.
	ColumnEmotions = "emotions"
)

// Analyses Columns.
const (
	ColumnAnalysisID        = "analysis_id"
	ColumnCombinedStatement = "combined_statement"
)

// Patient Sentiments Columns.
const (
	ColumnPatientSentimentID = "patient_sentiment_id"
	ColumnName               = "name"
	ColumnAge                = "age"
	ColumnType               = "type"
	ColumnCountry            = "country"
	ColumnCity               = "city"
	ColumnState              = "state"
	ColumnGender             = "gender"
)
