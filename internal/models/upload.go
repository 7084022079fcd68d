package models

// UploadedFile is a multipart upload spooled to a temporary file.
// The handler that created it removes Path on every exit path.
type UploadedFile struct {
	Path         string
	MimeType     string
	OriginalName string
	Size         int64
}
