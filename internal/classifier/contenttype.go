package classifier

import (
	"mime"
	"path/filepath"
	"strings"
)

// TypeResolver guesses a content type such as "image/png" from a filename.
// An empty string means no guess is possible.
type TypeResolver interface {
	ContentType(filename string) string
}

// ResolverFunc adapts a function to TypeResolver
type ResolverFunc func(filename string) string

// ContentType implements TypeResolver
func (f ResolverFunc) ContentType(filename string) string {
	return f(filename)
}

// builtinTypes covers common personal-folder formats the platform tables
// frequently lack.
var builtinTypes = map[string]string{
	".heic": "image/heic",
	".heif": "image/heif",
	".webp": "image/webp",
	".avif": "image/avif",
	".bmp":  "image/bmp",
	".tif":  "image/tiff",
	".tiff": "image/tiff",
	".svg":  "image/svg+xml",
	".ico":  "image/x-icon",
	".raw":  "image/x-raw",
	".cr2":  "image/x-canon-cr2",
	".nef":  "image/x-nikon-nef",
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
	".webm": "video/webm",
	".wmv":  "video/x-ms-wmv",
	".flv":  "video/x-flv",
	".mp3":  "audio/mpeg",
	".wav":  "audio/wav",
	".flac": "audio/flac",
	".aac":  "audio/aac",
	".ogg":  "audio/ogg",
	".opus": "audio/opus",
	".m4a":  "audio/mp4",
	".aiff": "audio/aiff",
	".csv":  "text/csv",
	".md":   "text/markdown",
	".json": "application/json",
	".xml":  "application/xml",
}

// ExtensionResolver looks a filename's extension up in an override table,
// then the built-in table, then the platform MIME registry.
type ExtensionResolver struct {
	overrides map[string]string
	platform  bool
}

// NewExtensionResolver creates a resolver with optional extension overrides.
// Keys are normalized like rule extensions.
func NewExtensionResolver(overrides map[string]string) *ExtensionResolver {
	normalized := make(map[string]string, len(overrides))
	for ext, ct := range overrides {
		if n := NormalizeExtension(ext); n != "" {
			normalized[n] = strings.ToLower(strings.TrimSpace(ct))
		}
	}
	return &ExtensionResolver{overrides: normalized, platform: true}
}

// WithoutPlatform disables the platform MIME registry lookup, making results
// independent of the host's mime.types files.
func (r *ExtensionResolver) WithoutPlatform() *ExtensionResolver {
	r.platform = false
	return r
}

// ContentType implements TypeResolver
func (r *ExtensionResolver) ContentType(filename string) string {
	ext := Extension(filename)
	if ext == "" {
		return ""
	}
	if ct, ok := r.overrides[ext]; ok {
		return ct
	}
	if ct, ok := builtinTypes[ext]; ok {
		return ct
	}
	if r.platform {
		return mime.TypeByExtension(ext)
	}
	return ""
}

// Extension returns the lower-cased final extension of filename including
// the dot. Dotfiles without a further extension, like ".bashrc", have none.
func Extension(filename string) string {
	base := filepath.Base(filename)
	ext := filepath.Ext(base)
	if ext == base || ext == "." {
		return ""
	}
	return strings.ToLower(ext)
}

// TypePrefix returns the coarse part of a content type: "image" for
// "image/png; charset=binary".
func TypePrefix(contentType string) string {
	ct := strings.TrimSpace(contentType)
	if ct == "" {
		return ""
	}
	if i := strings.IndexAny(ct, "/;"); i >= 0 {
		ct = ct[:i]
	}
	return strings.ToLower(strings.TrimSpace(ct))
}
