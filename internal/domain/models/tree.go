package models

import "time"

// FolderTreeNode represents a folder in the tree with nested children
type FolderTreeNode struct {
	ID         string            `json:"id"`
	Name       string            `json:"name"`
	ParentID   *string           `json:"parent_id"`
	Path       string            `json:"path"`
	CreatedAt  time.Time         `json:"created_at"`
	Subfolders []*FolderTreeNode `json:"subfolders"` // Pointers for proper nesting
}
