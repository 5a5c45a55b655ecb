package services

import (
	"alfredoptarigan/profile-screener/internal/models"
)

// MockDocuments is the built-in dataset used when a caller asks for the
// mock policy on an empty store. Contents are plain-text résumés.
func MockDocuments() []models.Document {
	docs := make([]models.Document, 0, len(syntheticProfiles))
	for _, profile := range syntheticProfiles {
		docs = append(docs, models.Document{
			Name:    profile.Slug + ".pdf",
			Content: []byte(profile.Resume),
		})
	}
	return docs
}
