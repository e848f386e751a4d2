package formats

import "testing"

func TestRegistry_CanonicalMime(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	tests := []struct {
		name      string
		mimeType  string
		want      string
		wantOK    bool
	}{
		{name: "canonical jpeg", mimeType: "image/jpeg", want: "image/jpeg", wantOK: true},
		{name: "jpg alias resolves to jpeg", mimeType: "image/jpg", want: "image/jpeg", wantOK: true},
		{name: "png", mimeType: "image/png", want: "image/png", wantOK: true},
		{name: "gif", mimeType: "image/gif", want: "image/gif", wantOK: true},
		{name: "bmp", mimeType: "image/bmp", want: "image/bmp", wantOK: true},
		{name: "webp", mimeType: "image/webp", want: "image/webp", wantOK: true},
		{name: "uppercase is normalized", mimeType: "IMAGE/PNG", want: "image/png", wantOK: true},
		{name: "media type parameters are ignored", mimeType: "image/png; charset=binary", want: "image/png", wantOK: true},
		{name: "surrounding whitespace", mimeType: "  image/gif  ", want: "image/gif", wantOK: true},
		{name: "pdf is rejected", mimeType: "application/pdf", wantOK: false},
		{name: "svg is rejected", mimeType: "image/svg+xml", wantOK: false},
		{name: "empty string", mimeType: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := registry.CanonicalMime(tt.mimeType)
			if ok != tt.wantOK {
				t.Fatalf("CanonicalMime(%q) ok = %v, want %v", tt.mimeType, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("CanonicalMime(%q) = %q, want %q", tt.mimeType, got, tt.want)
			}
			if registry.IsAllowed(tt.mimeType) != tt.wantOK {
				t.Errorf("IsAllowed(%q) = %v, want %v", tt.mimeType, !tt.wantOK, tt.wantOK)
			}
		})
	}
}

func TestRegistry_AllowedExtension(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	tests := []struct {
		filename string
		want     bool
	}{
		{"photo.jpg", true},
		{"photo.JPEG", true},
		{"diagram.png", true},
		{"anim.gif", true},
		{"old.bmp", true},
		{"modern.webp", true},
		{"doc.pdf", false},
		{"archive.tar.gz", false},
		{"noextension", false},
		{"", false},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			if got := registry.AllowedExtension(tt.filename); got != tt.want {
				t.Errorf("AllowedExtension(%q) = %v, want %v", tt.filename, got, tt.want)
			}
		})
	}
}

func TestRegistry_AllowedTypes(t *testing.T) {
	registry, err := NewRegistry()
	if err != nil {
		t.Fatalf("NewRegistry() error = %v", err)
	}

	types := registry.AllowedTypes()
	if len(types) != 5 {
		t.Fatalf("expected 5 canonical types, got %v", types)
	}
	seen := make(map[string]bool)
	for _, mt := range types {
		if seen[mt] {
			t.Errorf("duplicate canonical type %q", mt)
		}
		seen[mt] = true
	}
	if !seen["image/jpeg"] {
		t.Error("image/jpeg missing from allowed types")
	}
}
