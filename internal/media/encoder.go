// Package media turns uploaded files into data URLs that can be stored
// inline on users, posts and products.
package media

import (
	"encoding/base64"
	"strings"

	"github.com/angelmondragon/wandermart-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/wandermart-backend/pkg/errors"
)

type Encoder struct {
	maxBytes int64
}

func NewEncoder(cfg config.MediaConfig) *Encoder {
	return &Encoder{maxBytes: cfg.MaxUploadBytes()}
}

// EncodeDataURL returns data:<mime>;base64,<payload>. A zero limit means
// uploads are unbounded.
func (e *Encoder) EncodeDataURL(payload []byte, filename string) (string, error) {
	if len(payload) == 0 {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "file is empty")
	}
	if e.maxBytes > 0 && int64(len(payload)) > e.maxBytes {
		return "", pkgerrors.Newf(pkgerrors.CodeValidation, "file exceeds the %d MB upload limit", e.maxBytes>>20).
			WithDetails(map[string]any{"size": len(payload), "limit": e.maxBytes})
	}
	mediaType := sniffMimeType(payload, filename)
	if !isAllowed(mediaType) {
		return "", pkgerrors.Newf(pkgerrors.CodeValidation, "unsupported file type %s; upload %s", mediaType, allowedDescription())
	}

	var b strings.Builder
	b.Grow(len(mediaType) + base64.StdEncoding.EncodedLen(len(payload)) + 13)
	b.WriteString("data:")
	b.WriteString(mediaType)
	b.WriteString(";base64,")
	b.WriteString(base64.StdEncoding.EncodeToString(payload))
	return b.String(), nil
}

// EncodeAll encodes several uploads, stopping at the first failure.
func (e *Encoder) EncodeAll(files map[string][]byte, order []string) ([]string, error) {
	urls := make([]string, 0, len(order))
	for _, name := range order {
		url, err := e.EncodeDataURL(files[name], name)
		if err != nil {
			return nil, err
		}
		urls = append(urls, url)
	}
	return urls, nil
}
