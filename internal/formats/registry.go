package formats

import (
	"embed"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"gopkg.in/yaml.v3"
)

//go:embed config/formats.yaml
var configFiles embed.FS

// ImageFormat describes one accepted raster image format
type ImageFormat struct {
	MimeType   string   `yaml:"mime_type"`
	Extensions []string `yaml:"extensions"`
	Aliases    []string `yaml:"aliases"` // alternative MIME spellings (e.g. image/jpg)
}

type formatsFile struct {
	Formats []ImageFormat `yaml:"formats"`
}

// Registry holds the accepted image formats, loaded once from the
// embedded YAML file.
type Registry struct {
	byMime map[string]ImageFormat
	mu     sync.RWMutex
}

// NewRegistry loads the embedded format list
func NewRegistry() (*Registry, error) {
	data, err := configFiles.ReadFile("config/formats.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to read format config: %w", err)
	}

	var file formatsFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal format config: %w", err)
	}
	if len(file.Formats) == 0 {
		return nil, fmt.Errorf("format config lists no formats")
	}

	r := &Registry{byMime: make(map[string]ImageFormat)}
	for _, f := range file.Formats {
		r.byMime[f.MimeType] = f
		for _, alias := range f.Aliases {
			r.byMime[alias] = f
		}
	}

	return r, nil
}

// IsAllowed reports whether a MIME type names an accepted image format.
// Matching is case-insensitive and ignores media type parameters.
func (r *Registry) IsAllowed(mimeType string) bool {
	_, ok := r.lookup(mimeType)
	return ok
}

// CanonicalMime returns the canonical MIME spelling for an accepted type
func (r *Registry) CanonicalMime(mimeType string) (string, bool) {
	f, ok := r.lookup(mimeType)
	if !ok {
		return "", false
	}
	return f.MimeType, true
}

// AllowedExtension reports whether a filename carries an extension that
// belongs to an accepted format.
func (r *Registry) AllowedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext == "" {
		return false
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, f := range r.byMime {
		for _, e := range f.Extensions {
			if e == ext {
				return true
			}
		}
	}
	return false
}

// AllowedTypes returns the canonical MIME types, for error messages
func (r *Registry) AllowedTypes() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var types []string
	for _, f := range r.byMime {
		if !seen[f.MimeType] {
			seen[f.MimeType] = true
			types = append(types, f.MimeType)
		}
	}
	return types
}

func (r *Registry) lookup(mimeType string) (ImageFormat, bool) {
	normalized := strings.ToLower(strings.TrimSpace(mimeType))
	if i := strings.Index(normalized, ";"); i >= 0 {
		normalized = strings.TrimSpace(normalized[:i])
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byMime[normalized]
	return f, ok
}
