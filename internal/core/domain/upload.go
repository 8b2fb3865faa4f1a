package domain

import "time"

// UploadedFile is a file kept in the upload area.
type UploadedFile struct {
	Name    string
	Size    int64
	ModTime time.Time
}
