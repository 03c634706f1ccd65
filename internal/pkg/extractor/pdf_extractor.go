package extractor

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/futig/rag-backend/internal/entity"
	"github.com/ledongthuc/pdf"
)

type PDFExtractor struct{}

func NewPDFExtractor() *PDFExtractor {
	return &PDFExtractor{}
}

func (e *PDFExtractor) Extract(content []byte) (text string, err error) {
	// the pdf reader panics on some malformed inputs
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: malformed pdf: %v", entity.ErrUnsupportedFileType, r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return "", fmt.Errorf("%w: read pdf: %w", entity.ErrUnsupportedFileType, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: extract pdf text: %w", entity.ErrUnsupportedFileType, err)
	}

	var b strings.Builder
	if _, err := io.Copy(&b, plain); err != nil {
		return "", fmt.Errorf("%w: extract pdf text: %w", entity.ErrUnsupportedFileType, err)
	}

	return b.String(), nil
}

func (e *PDFExtractor) FileType() string {
	return "application/pdf"
}
