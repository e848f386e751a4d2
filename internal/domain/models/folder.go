package models

import (
	"time"
)

// Folder is a single node in a user's folder hierarchy.
// Path is derived from the parent chain on read and never stored, so a
// rename anywhere in the chain can never leave descendants stale.
type Folder struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"user_id" db:"user_id"`
	ParentID  *string   `json:"parent_id" db:"parent_id"` // NULL = root level
	Name      string    `json:"name" db:"name"`
	Path      string    `json:"path,omitempty"` // Computed display path, not stored in DB
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// FolderContents is a folder together with its immediate children.
type FolderContents struct {
	Folder  *Folder  `json:"folder,omitempty"`
	Folders []Folder `json:"folders"`
	Images  []Image  `json:"images"`
}
