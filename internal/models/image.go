package models

import "time"

type Image struct {
	ID           string
	OwnerID      string
	FolderID     *string
	PublicID     string
	URL          string
	OriginalName string
	MimeType     string
	SizeBytes    int64
	Author       *string
	Title        *string
	Subject      *string
	Theme        *string
	Description  *string
	Tags         []string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ImageMetadata is a partial update: nil fields are untouched, non-nil fields
// overwrite. Tags replace the whole list, never merge.
type ImageMetadata struct {
	Author      *string
	Title       *string
	Subject     *string
	Theme       *string
	Description *string
	Tags        []string
}

// Empty reports whether the update would touch nothing.
func (m ImageMetadata) Empty() bool {
	return m.Author == nil && m.Title == nil && m.Subject == nil &&
		m.Theme == nil && m.Description == nil && m.Tags == nil
}
