package extractor

import (
	"bytes"
	"fmt"
	"unicode/utf8"

	"github.com/futig/rag-backend/internal/entity"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

type TextExtractor struct {
	fileType string
}

func NewTextExtractor(fileType string) *TextExtractor {
	return &TextExtractor{fileType: fileType}
}

func (e *TextExtractor) Extract(content []byte) (string, error) {
	content = bytes.TrimPrefix(content, utf8BOM)
	if !utf8.Valid(content) {
		return "", fmt.Errorf("%w: file is not valid UTF-8 text", entity.ErrUnsupportedFileType)
	}
	return string(content), nil
}

func (e *TextExtractor) FileType() string {
	return e.fileType
}
