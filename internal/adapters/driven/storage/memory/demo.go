package memory

import (
	"strconv"
	"time"

	"github.com/custodia-labs/docdeck-cli/internal/core/domain"
)

// DemoOwnerID owns the documents of a demo store.
const DemoOwnerID = "demo"

// NewDemoStore returns a store holding a handful of sample documents
// for ownerID, or DemoOwnerID when ownerID is empty.
func NewDemoStore(ownerID string) *DocumentStore {
	if ownerID == "" {
		ownerID = DemoOwnerID
	}
	uploaded := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	s := NewDocumentStore()
	for i, d := range []struct {
		name string
		size int64
	}{
		{"annual-report-2023.pdf", 4_718_592},
		{"meeting-notes.docx", 48_210},
		{"product-roadmap.pptx", 12_582_912},
		{"customer-survey.xlsx", 356_864},
		{"README.txt", 2_048},
		{"training-video.mp4", 1_395_864_371},
	} {
		s.Add(domain.Document{
			ID:         strconv.Itoa(i + 1),
			OwnerID:    ownerID,
			Filename:   d.name,
			FileSize:   d.size,
			Language:   domain.LanguageEnglish,
			UploadedAt: uploaded.Add(time.Duration(i) * time.Hour),
		})
	}
	return s
}
