package service

import (
	"bufio"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/models"
	"github.com/iamyashsharma43/SENTIFY/internal/storage"
	"github.com/iamyashsharma43/SENTIFY/internal/utils"
)

// utf8BOM is stripped from the start of the header row.
const utf8BOM = "\ufeff"

// ParseError reports a CSV file that could not be parsed.
type ParseError struct {
	Line   int
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("line %d: %s", e.Line, e.Detail)
}

// Is lets errors.Is(err, utils.ErrParse) match any ParseError.
func (e *ParseError) Is(target error) bool {
	return target == utils.ErrParse
}

// ErrorDetails implements utils.Detailer.
func (e *ParseError) ErrorDetails() any {
	return map[string]any{"line": e.Line, "message": e.Detail}
}

// DatasetService parses uploaded CSV datasets into header-keyed records.
type DatasetService struct {
	archiver storage.Archiver
	lenient  bool
}

// NewDatasetService creates a new DatasetService.
//
// Parameters:
//   - archiver: Receives a copy of each upload before it is parsed
//   - lenient: Skip rows whose column count differs from the header instead of failing
//
// Returns:
//   - A new DatasetService instance
func NewDatasetService(archiver storage.Archiver, lenient bool) *DatasetService {
	if archiver == nil {
		archiver = storage.NopArchiver{}
	}
	return &DatasetService{archiver: archiver, lenient: lenient}
}

// ParseUpload archives the uploaded file and parses it.
// An archive failure is logged and does not fail the upload.
func (s *DatasetService) ParseUpload(ctx context.Context, upload *models.UploadedFile) ([]map[string]string, error) {
	if object, err := s.archiver.Archive(ctx, "datasets", upload.Path, upload.OriginalName, upload.MimeType); err != nil {
		log.Warn().Err(err).Str("file", upload.OriginalName).Msg("Failed to archive dataset upload")
	} else if object != "" {
		log.Info().Str("object", object).Msg("Dataset upload archived")
	}

	f, err := os.Open(upload.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset: %w", err)
	}
	defer f.Close()

	return s.ParseDataset(f)
}

// ParseDataset reads CSV from r. The first record is the header and every
// following record becomes a map from header to cell. Cells are not coerced.
//
// Blank lines are ignored and a UTF-8 BOM before the header is removed.
// An empty input yields an empty, non-nil slice.
//
// Returns:
//   - The parsed records in file order
//   - A *ParseError for malformed CSV, or in strict mode for a row whose
//     column count differs from the header. Lenient mode also accepts stray
//     quotes inside fields.
func (s *DatasetService) ParseDataset(r io.Reader) ([]map[string]string, error) {
	rows, skipped, err := s.parse(r)
	if err != nil {
		return nil, err
	}

	if skipped > 0 {
		log.Warn().
			Int("skipped_rows", skipped).
			Int("parsed_rows", len(rows)).
			Msg("Skipped malformed dataset rows")
	}
	return rows, nil
}

func (s *DatasetService) parse(r io.Reader) ([]map[string]string, int, error) {
	br := bufio.NewReader(r)
	if prefix, err := br.Peek(len(utf8BOM)); err == nil && string(prefix) == utf8BOM {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = s.lenient

	rows := make([]map[string]string, 0)

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return rows, 0, nil
	}
	if err != nil {
		return nil, 0, toParseError(err)
	}

	skipped := 0
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, 0, toParseError(err)
		}

		if len(record) != len(header) {
			line, _ := reader.FieldPos(0)
			if !s.lenient {
				return nil, 0, &ParseError{
					Line:   line,
					Detail: fmt.Sprintf("expected %d fields, got %d", len(header), len(record)),
				}
			}
			skipped++
			continue
		}

		row := make(map[string]string, len(header))
		for i, name := range header {
			row[name] = record[i]
		}
		rows = append(rows, row)
	}

	return rows, skipped, nil
}

func toParseError(err error) error {
	var csvErr *csv.ParseError
	if errors.As(err, &csvErr) {
		return &ParseError{Line: csvErr.Line, Detail: csvErr.Err.Error()}
	}
	return &ParseError{Detail: err.Error()}
}
