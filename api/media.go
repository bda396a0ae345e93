package api

import (
	"context"

	"github.com/angelmondragon/wandermart-backend/pkg/types"
)

// UploadFile returns a data URL for payload that can be stored on any
// image or qualification field.
func (b *Backend) UploadFile(ctx context.Context, payload []byte, filename string) types.Envelope[string] {
	return call(ctx, b, "media.upload", func(context.Context) (string, error) {
		return b.app.Media.EncodeDataURL(payload, filename)
	})
}
