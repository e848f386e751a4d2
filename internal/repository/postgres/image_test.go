package postgres

import "testing"

func TestEscapeLikePattern(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{name: "plain text untouched", input: "sunset", want: "sunset"},
		{name: "percent escaped", input: "100%", want: `100\%`},
		{name: "underscore escaped", input: "IMG_0001", want: `IMG\_0001`},
		{name: "backslash escaped first", input: `a\b`, want: `a\\b`},
		{name: "all metacharacters", input: `\%_`, want: `\\\%\_`},
		{name: "empty string", input: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := escapeLikePattern(tt.input); got != tt.want {
				t.Errorf("escapeLikePattern(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNewTableNames(t *testing.T) {
	tests := []struct {
		prefix      string
		wantFolders string
		wantImages  string
	}{
		{prefix: "dev_", wantFolders: "dev_folders", wantImages: "dev_images"},
		{prefix: "test_", wantFolders: "test_folders", wantImages: "test_images"},
		{prefix: "", wantFolders: "folders", wantImages: "images"},
	}

	for _, tt := range tests {
		t.Run("prefix "+tt.prefix, func(t *testing.T) {
			tables := NewTableNames(tt.prefix)
			if tables.Folders != tt.wantFolders {
				t.Errorf("Folders = %q, want %q", tables.Folders, tt.wantFolders)
			}
			if tables.Images != tt.wantImages {
				t.Errorf("Images = %q, want %q", tables.Images, tt.wantImages)
			}
		})
	}
}
