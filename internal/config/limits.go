package config

const (
	// MaxFolderNameLength is the maximum length for folder names.
	// Limited to 100 to keep full paths readable in the client tree view.
	MaxFolderNameLength = 100

	// MaxImageNameLength is the maximum length for image display names.
	MaxImageNameLength = 200

	// MaxImageSizeBytes is the upload size ceiling per image (10 MiB).
	MaxImageSizeBytes = 10 << 20

	// DefaultPage is the page number used when the client omits one.
	DefaultPage = 1

	// DefaultPageSize is the page size used when the client omits one.
	DefaultPageSize = 20

	// MaxPageSize caps a single page of results.
	MaxPageSize = 100
)
