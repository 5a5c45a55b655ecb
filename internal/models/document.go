package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Document is a candidate profile as read from an object store.
type Document struct {
	Name    string
	Content []byte
}

type ExtractedText struct {
	SourceDocument string `json:"source_document"`
	Text           string `json:"text"`
	Length         int    `json:"length"`
	Method         string `json:"method"`
}

// ProfileInfo describes a stored object without its content.
type ProfileInfo struct {
	Name       string    `json:"filename"`
	Size       int64     `json:"size"`
	UploadedAt time.Time `json:"uploaded_at"`
}

// ProfileObject backs the database object store.
type ProfileObject struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string    `gorm:"type:text;uniqueIndex;not null" json:"name"`
	ContentType string    `gorm:"type:text" json:"content_type"`
	Size        int64     `json:"size"`
	Content     []byte    `json:"-"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (ProfileObject) TableName() string {
	return "profile_objects"
}

func (p *ProfileObject) BeforeCreate(_ *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
