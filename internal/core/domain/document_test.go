package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDocument_Key(t *testing.T) {
	doc := Document{ID: "7", Filename: "report.pdf"}
	assert.Equal(t, "report.pdf", doc.Key())
}

func TestDocument_FileType(t *testing.T) {
	tests := []struct {
		filename string
		expected string
	}{
		{"a.txt", "txt"},
		{"Report.PDF", "pdf"},
		{"archive.tar.gz", "gz"},
		{"README", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, Document{Filename: tt.filename}.FileType())
		})
	}
}

func TestFormatFileSize(t *testing.T) {
	tests := []struct {
		name     string
		size     int64
		expected string
	}{
		{"zero", 0, "0 KB"},
		{"small", 1000, "1 KB"},
		{"just under a megabyte", 1024*1024 - 1, "1024 KB"},
		{"one megabyte", 1024 * 1024, "1.00 MB"},
		{"two million bytes", 2000000, "1.91 MB"},
		{"just under a gigabyte", 1024*1024*1024 - 1024*1024, "1023.00 MB"},
		{"one gigabyte", 1024 * 1024 * 1024, "1.00 GB"},
		{"five gigabytes", 5 * 1024 * 1024 * 1024, "5.00 GB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, FormatFileSize(tt.size))
		})
	}
}
