package extractor

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/futig/rag-backend/internal/entity"
)

// Extractor turns the raw bytes of one file type into plain UTF-8 text.
type Extractor interface {
	Extract(content []byte) (string, error)
	FileType() string
}

type Factory struct{}

func NewFactory() *Factory {
	return &Factory{}
}

// Create picks an extractor by content type, falling back to the file extension.
func (f *Factory) Create(filename, contentType string) (Extractor, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		mediaType = ""
	}

	switch mediaType {
	case "application/pdf":
		return NewPDFExtractor(), nil
	case "text/plain":
		return NewTextExtractor("text/plain"), nil
	case "text/markdown", "text/x-markdown":
		return NewTextExtractor("text/markdown"), nil
	}

	switch ext := strings.ToLower(filepath.Ext(filename)); ext {
	case ".pdf":
		return NewPDFExtractor(), nil
	case ".txt":
		return NewTextExtractor("text/plain"), nil
	case ".md", ".markdown":
		return NewTextExtractor("text/markdown"), nil
	default:
		return nil, fmt.Errorf("%w: %s (allowed: pdf, txt, md)", entity.ErrUnsupportedFileType, describe(mediaType, ext))
	}
}

// Extract returns the trimmed text of a file and the file type it was read as.
// NUL bytes are dropped: they are valid UTF-8 but Postgres text rejects them.
func (f *Factory) Extract(filename, contentType string, content []byte) (string, string, error) {
	ex, err := f.Create(filename, contentType)
	if err != nil {
		return "", "", err
	}

	text, err := ex.Extract(content)
	if err != nil {
		return "", "", err
	}

	text = strings.TrimSpace(strings.ReplaceAll(text, "\x00", ""))
	if text == "" {
		return "", "", entity.ErrEmptyDocument
	}

	return text, ex.FileType(), nil
}

func describe(mediaType, ext string) string {
	if mediaType != "" && mediaType != "application/octet-stream" {
		return mediaType
	}
	if ext != "" {
		return ext
	}
	return "unknown"
}
