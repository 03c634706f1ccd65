package bot

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/futig/rag-backend/internal/entity"
)

type fileURLResolver interface {
	GetFileDirectURL(fileID string) (string, error)
}

// FileDownloader fetches files sent to the bot through the Bot API file endpoint
type FileDownloader struct {
	api     fileURLResolver
	client  *http.Client
	maxSize int64
}

func NewFileDownloader(api fileURLResolver, client *http.Client, maxSize int64) *FileDownloader {
	return &FileDownloader{
		api:     api,
		client:  client,
		maxSize: maxSize,
	}
}

// Download returns the file content. Files over maxSize are rejected without
// reading them in full.
func (d *FileDownloader) Download(ctx context.Context, fileID string) ([]byte, error) {
	// the URL embeds the bot token and must not be logged
	fileURL, err := d.api.GetFileDirectURL(fileID)
	if err != nil {
		return nil, fmt.Errorf("resolve file: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fileURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := d.client.Do(req)
	if err != nil {
		var urlErr *url.Error
		if errors.As(err, &urlErr) {
			err = urlErr.Err
		}
		return nil, fmt.Errorf("fetch file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch file: unexpected status %d", resp.StatusCode)
	}

	content, err := io.ReadAll(io.LimitReader(resp.Body, d.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	if int64(len(content)) > d.maxSize {
		return nil, fmt.Errorf("%w: more than %d bytes", entity.ErrFileTooLarge, d.maxSize)
	}

	return content, nil
}
