package models

import "time"

// Owner is an authenticated account. Every folder and image belongs to
// exactly one owner; nothing is shared across owners.
type Owner struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
