// Package encode converts staged files into transport payloads.
package encode

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"golang.org/x/sync/errgroup"

	"github.com/doc-scanner/client/internal/models"
)

// Encode fully buffers one staged file and base64-encodes its bytes.
// The returned payload carries only the raw base64 data, never a
// data-URL prefix.
func Encode(f models.StagedFile) (models.EncodedFilePayload, error) {
	rc, err := f.Source.Open()
	if err != nil {
		return models.EncodedFilePayload{}, fmt.Errorf("reading %s: %w", f.Name, err)
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return models.EncodedFilePayload{}, fmt.Errorf("reading %s: %w", f.Name, err)
	}

	return models.EncodedFilePayload{
		FileName:   f.Name,
		Base64Data: base64.StdEncoding.EncodeToString(data),
		Size:       int64(len(data)),
	}, nil
}

// EncodeAll encodes every staged file concurrently. The returned slice
// preserves the input order regardless of completion order; downstream
// result association is positional. Any single failure cancels the
// remaining encodings and fails the whole batch.
func EncodeAll(ctx context.Context, files []models.StagedFile) ([]models.EncodedFilePayload, error) {
	payloads := make([]models.EncodedFilePayload, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		i, f := i, f
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			p, err := Encode(f)
			if err != nil {
				return err
			}
			payloads[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return payloads, nil
}
