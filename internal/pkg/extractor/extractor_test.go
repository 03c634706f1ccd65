package extractor

import (
	"testing"

	"github.com/futig/rag-backend/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFactory_ExtractText(t *testing.T) {
	f := NewFactory()

	cases := []struct {
		name, filename, contentType, wantType string
	}{
		{"by content type", "notes", "text/plain; charset=utf-8", "text/plain"},
		{"markdown by extension", "README.md", "application/octet-stream", "text/markdown"},
		{"txt by extension", "faq.TXT", "", "text/plain"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			text, fileType, err := f.Extract(tc.filename, tc.contentType, []byte("\xEF\xBB\xBF  Политика возврата: 30 дней\n"))
			require.NoError(t, err)
			assert.Equal(t, "Политика возврата: 30 дней", text)
			assert.Equal(t, tc.wantType, fileType)
		})
	}
}

func TestFactory_RejectsUnsupportedType(t *testing.T) {
	_, _, err := NewFactory().Extract("report.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", []byte("PK"))
	require.ErrorIs(t, err, entity.ErrUnsupportedFileType)

	_, _, err = NewFactory().Extract("image", "", []byte{0x89, 'P', 'N', 'G'})
	require.ErrorIs(t, err, entity.ErrUnsupportedFileType)
}

func TestFactory_RejectsInvalidUTF8(t *testing.T) {
	_, _, err := NewFactory().Extract("bad.txt", "text/plain", []byte{0xff, 0xfe, 0xfd})
	require.ErrorIs(t, err, entity.ErrUnsupportedFileType)
}

func TestFactory_EmptyDocument(t *testing.T) {
	_, _, err := NewFactory().Extract("empty.txt", "text/plain", []byte(" \n\t "))
	require.ErrorIs(t, err, entity.ErrEmptyDocument)
}

func TestFactory_DropsNULBytes(t *testing.T) {
	f := NewFactory()

	text, fileType, err := f.Extract("padded.txt", "text/plain", []byte("re\x00turns\x00\x00 in 30 days\x00"))
	require.NoError(t, err)
	assert.Equal(t, "returns in 30 days", text)
	assert.Equal(t, "text/plain", fileType)

	_, _, err = f.Extract("zeros.txt", "text/plain", []byte("\x00\x00\x00"))
	require.ErrorIs(t, err, entity.ErrEmptyDocument)
}

func TestPDFExtractor_RejectsGarbage(t *testing.T) {
	_, err := NewPDFExtractor().Extract([]byte("this is not a pdf"))
	require.ErrorIs(t, err, entity.ErrUnsupportedFileType)
}
