package models

import (
	"fmt"
)

// SearchField defines which image fields to match against
type SearchField string

const (
	// SearchFieldName searches the image display name
	SearchFieldName SearchField = "name"

	// SearchFieldOriginalName searches the filename the image was uploaded as
	SearchFieldOriginalName SearchField = "original_name"
)

// Default search configuration values
const (
	DefaultSearchLimit  = 20
	DefaultSearchOffset = 0
	MaxSearchLimit      = 100
)

// SearchOptions configures how image metadata is searched.
// The match is a case-insensitive substring against the selected fields.
type SearchOptions struct {
	// Query is the search string (required, already trimmed by the caller)
	Query string

	// UserID scopes the search to one owner (required)
	UserID string

	// Fields specifies which image fields to search
	// Default: [SearchFieldName, SearchFieldOriginalName]
	Fields []SearchField

	// FolderIDs optionally restricts results to images whose folder is in
	// this set (a subtree expanded by the caller). nil = no folder scope.
	FolderIDs []string

	// Pagination
	Limit  int // Number of results to return (default: 20)
	Offset int // Number of results to skip (default: 0)
}

// ApplyDefaults fills in default values for unset fields
func (opts *SearchOptions) ApplyDefaults() {
	if len(opts.Fields) == 0 {
		opts.Fields = []SearchField{SearchFieldName, SearchFieldOriginalName}
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultSearchLimit
	}
	if opts.Offset < 0 {
		opts.Offset = DefaultSearchOffset
	}
}

// Validate checks that required fields are set and values are reasonable
func (opts *SearchOptions) Validate() error {
	if opts.Query == "" {
		return fmt.Errorf("search query cannot be empty")
	}
	if opts.UserID == "" {
		return fmt.Errorf("search requires an owner")
	}
	if opts.Limit < 0 {
		return fmt.Errorf("limit cannot be negative")
	}
	if opts.Limit > MaxSearchLimit {
		return fmt.Errorf("limit cannot exceed %d (requested: %d)", MaxSearchLimit, opts.Limit)
	}
	if opts.Offset < 0 {
		return fmt.Errorf("offset cannot be negative")
	}

	for _, field := range opts.Fields {
		switch field {
		case SearchFieldName, SearchFieldOriginalName:
			// Valid fields
		default:
			return fmt.Errorf("invalid search field: %q (supported: name, original_name)", field)
		}
	}

	return nil
}

// SearchResults contains one page of matches with pagination metadata
type SearchResults struct {
	// Results is the list of matching images, newest first
	Results []Image

	// TotalCount is the total number of matches (regardless of limit/offset)
	TotalCount int

	// HasMore indicates if there are more results beyond this page
	HasMore bool

	Offset int
	Limit  int
}

// NewSearchResults creates a SearchResults with calculated HasMore flag
func NewSearchResults(results []Image, totalCount int, opts *SearchOptions) *SearchResults {
	hasMore := (opts.Offset + len(results)) < totalCount

	return &SearchResults{
		Results:    results,
		TotalCount: totalCount,
		HasMore:    hasMore,
		Offset:     opts.Offset,
		Limit:      opts.Limit,
	}
}
