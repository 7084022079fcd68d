package handlers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/iamyashsharma43/SENTIFY/internal/constants"
	"github.com/iamyashsharma43/SENTIFY/internal/models"
)

// errNoUpload reports a multipart request without the expected file part.
var errNoUpload = errors.New("no file uploaded")

// uploadStore writes multipart file parts to a temp directory.
type uploadStore struct {
	dir     string
	maxSize int64
}

// save copies the named multipart part to a uniquely named file under dir.
// The returned cleanup removes the file and any spilled multipart parts and
// must be called on every path; it is safe to call when save fails.
func (s uploadStore) save(w http.ResponseWriter, r *http.Request, field string) (*models.UploadedFile, func(), error) {
	cleanup := func() {
		if r.MultipartForm != nil {
			_ = r.MultipartForm.RemoveAll()
		}
	}

	r.Body = http.MaxBytesReader(w, r.Body, s.maxSize)
	if err := r.ParseMultipartForm(constants.MaxMultipartMemory); err != nil {
		if errors.Is(err, http.ErrNotMultipart) || errors.Is(err, http.ErrMissingBoundary) {
			return nil, cleanup, errNoUpload
		}
		return nil, cleanup, fmt.Errorf("failed to read multipart form: %w", err)
	}

	part, header, err := r.FormFile(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, cleanup, errNoUpload
	}
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to read %s part: %w", field, err)
	}
	defer part.Close()

	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return nil, cleanup, fmt.Errorf("failed to create upload directory: %w", err)
	}

	path := filepath.Join(s.dir, uuid.NewString())
	out, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_EXCL, 0o600)
	if err != nil {
		return nil, cleanup, fmt.Errorf("failed to create upload file: %w", err)
	}

	removeAll := func() {
		cleanup()
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn().Err(err).Str("path", path).Msg("Failed to remove upload")
		}
	}

	size, err := io.Copy(out, part)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return nil, removeAll, fmt.Errorf("failed to store upload: %w", err)
	}

	mimeType := header.Header.Get(constants.HeaderContentType)
	if mimeType == "" {
		mimeType = constants.ContentTypeOctetStream
	}

	return &models.UploadedFile{
		Path:         path,
		MimeType:     mimeType,
		OriginalName: header.Filename,
		Size:         size,
	}, removeAll, nil
}
