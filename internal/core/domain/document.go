package domain

import (
	"fmt"
	"path"
	"strings"
	"time"
)

// Document is a file record held by the document store for one owner.
// Documents are immutable once fetched.
type Document struct {
	// ID is the store's opaque identifier. It may be empty.
	ID string

	// OwnerID identifies the user the document belongs to.
	OwnerID string

	// Filename is the unique key of the document within a listing.
	Filename string

	// FileSize is the size in bytes.
	FileSize int64

	// Language is the language the document was indexed with.
	Language Language

	// UploadedAt is when the store received the document.
	UploadedAt time.Time
}

// Key returns the selection key of the document.
func (d Document) Key() string {
	return d.Filename
}

// FileType returns the lower-cased extension of the filename without the dot.
// Filenames without an extension return an empty string.
func (d Document) FileType() string {
	ext := path.Ext(d.Filename)
	if ext == "" {
		return ""
	}
	return strings.ToLower(strings.TrimPrefix(ext, "."))
}

const (
	kibibyte = 1024
	mebibyte = 1024 * kibibyte
)

// FormatFileSize renders a byte count the way the document list shows it.
// Sizes under one megabyte are shown in whole kilobytes, sizes of a gigabyte
// or more in gigabytes, everything else in megabytes with two decimals.
func FormatFileSize(size int64) string {
	mb := float64(size) / mebibyte
	switch {
	case mb < 1:
		return fmt.Sprintf("%.0f KB", float64(size)/kibibyte)
	case mb >= 1024:
		return fmt.Sprintf("%.2f GB", mb/1024)
	default:
		return fmt.Sprintf("%.2f MB", mb)
	}
}
