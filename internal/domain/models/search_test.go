package models

import (
	"strings"
	"testing"
)

func TestSearchOptions_ApplyDefaults(t *testing.T) {
	tests := []struct {
		name     string
		input    *SearchOptions
		expected *SearchOptions
	}{
		{
			name: "applies all defaults",
			input: &SearchOptions{
				Query:  "sunset",
				UserID: "user-1",
			},
			expected: &SearchOptions{
				Query:  "sunset",
				UserID: "user-1",
				Fields: []SearchField{SearchFieldName, SearchFieldOriginalName},
				Limit:  20,
				Offset: 0,
			},
		},
		{
			name: "preserves custom values",
			input: &SearchOptions{
				Query:  "sunset",
				UserID: "user-1",
				Fields: []SearchField{SearchFieldName},
				Limit:  50,
				Offset: 10,
			},
			expected: &SearchOptions{
				Query:  "sunset",
				UserID: "user-1",
				Fields: []SearchField{SearchFieldName},
				Limit:  50,
				Offset: 10,
			},
		},
		{
			name: "corrects invalid limit to default",
			input: &SearchOptions{
				Query:  "sunset",
				UserID: "user-1",
				Limit:  0,
			},
			expected: &SearchOptions{
				Query:  "sunset",
				UserID: "user-1",
				Fields: []SearchField{SearchFieldName, SearchFieldOriginalName},
				Limit:  20,
				Offset: 0,
			},
		},
		{
			name: "corrects negative offset to default",
			input: &SearchOptions{
				Query:  "sunset",
				UserID: "user-1",
				Offset: -5,
			},
			expected: &SearchOptions{
				Query:  "sunset",
				UserID: "user-1",
				Fields: []SearchField{SearchFieldName, SearchFieldOriginalName},
				Limit:  20,
				Offset: 0,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.input.ApplyDefaults()

			if tt.input.Limit != tt.expected.Limit {
				t.Errorf("Limit = %d, want %d", tt.input.Limit, tt.expected.Limit)
			}
			if tt.input.Offset != tt.expected.Offset {
				t.Errorf("Offset = %d, want %d", tt.input.Offset, tt.expected.Offset)
			}
			if len(tt.input.Fields) != len(tt.expected.Fields) {
				t.Fatalf("Fields = %v, want %v", tt.input.Fields, tt.expected.Fields)
			}
			for i, field := range tt.input.Fields {
				if field != tt.expected.Fields[i] {
					t.Errorf("Fields[%d] = %q, want %q", i, field, tt.expected.Fields[i])
				}
			}
		})
	}
}

func TestSearchOptions_Validate(t *testing.T) {
	tests := []struct {
		name    string
		opts    *SearchOptions
		wantErr bool
		errMsg  string
	}{
		{
			name: "valid options",
			opts: &SearchOptions{
				Query:  "sunset",
				UserID: "user-1",
				Fields: []SearchField{SearchFieldName},
				Limit:  20,
			},
			wantErr: false,
		},
		{
			name: "empty query",
			opts: &SearchOptions{
				UserID: "user-1",
			},
			wantErr: true,
			errMsg:  "query cannot be empty",
		},
		{
			name: "missing owner",
			opts: &SearchOptions{
				Query: "sunset",
			},
			wantErr: true,
			errMsg:  "owner",
		},
		{
			name: "negative limit",
			opts: &SearchOptions{
				Query:  "sunset",
				UserID: "user-1",
				Limit:  -1,
			},
			wantErr: true,
			errMsg:  "limit cannot be negative",
		},
		{
			name: "limit over cap",
			opts: &SearchOptions{
				Query:  "sunset",
				UserID: "user-1",
				Limit:  MaxSearchLimit + 1,
			},
			wantErr: true,
			errMsg:  "limit cannot exceed",
		},
		{
			name: "negative offset",
			opts: &SearchOptions{
				Query:  "sunset",
				UserID: "user-1",
				Offset: -1,
			},
			wantErr: true,
			errMsg:  "offset cannot be negative",
		},
		{
			name: "invalid field",
			opts: &SearchOptions{
				Query:  "sunset",
				UserID: "user-1",
				Fields: []SearchField{"mime_type"},
			},
			wantErr: true,
			errMsg:  "invalid search field",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if tt.errMsg != "" && !strings.Contains(err.Error(), tt.errMsg) {
					t.Errorf("error %q does not contain %q", err.Error(), tt.errMsg)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewSearchResults(t *testing.T) {
	tests := []struct {
		name        string
		resultCount int
		totalCount  int
		offset      int
		wantHasMore bool
	}{
		{name: "first page of many", resultCount: 20, totalCount: 50, offset: 0, wantHasMore: true},
		{name: "last page", resultCount: 10, totalCount: 50, offset: 40, wantHasMore: false},
		{name: "single page", resultCount: 5, totalCount: 5, offset: 0, wantHasMore: false},
		{name: "empty results", resultCount: 0, totalCount: 0, offset: 0, wantHasMore: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results := make([]Image, tt.resultCount)
			opts := &SearchOptions{Offset: tt.offset, Limit: 20}

			sr := NewSearchResults(results, tt.totalCount, opts)

			if sr.HasMore != tt.wantHasMore {
				t.Errorf("HasMore = %v, want %v", sr.HasMore, tt.wantHasMore)
			}
			if sr.TotalCount != tt.totalCount {
				t.Errorf("TotalCount = %d, want %d", sr.TotalCount, tt.totalCount)
			}
		})
	}
}
