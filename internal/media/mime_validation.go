package media

import (
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

type mimeGroup string

const (
	mimeGroupImages mimeGroup = "images"
	mimeGroupPDFs   mimeGroup = "pdfs"
)

var mimeGroupNames = map[mimeGroup]string{
	mimeGroupImages: "images",
	mimeGroupPDFs:   "PDFs",
}

var mimeGroupTypes = map[mimeGroup][]string{
	mimeGroupImages: {"image/png", "image/jpeg", "image/webp", "image/gif"},
	mimeGroupPDFs:   {"application/pdf"},
}

// acceptedGroups covers photos on posts, products and avatars plus the
// qualification documents merchants attach to their application.
var acceptedGroups = []mimeGroup{mimeGroupImages, mimeGroupPDFs}

var allowedTypes = buildAllowedTypes()

func buildAllowedTypes() map[string]struct{} {
	set := make(map[string]struct{})
	for _, group := range acceptedGroups {
		for _, value := range mimeGroupTypes[group] {
			set[value] = struct{}{}
		}
	}
	return set
}

func allowedDescription() string {
	names := make([]string, 0, len(acceptedGroups))
	for _, group := range acceptedGroups {
		names = append(names, mimeGroupNames[group])
	}
	return humanReadableList(names)
}

func humanReadableList(items []string) string {
	switch len(items) {
	case 0:
		return ""
	case 1:
		return items[0]
	case 2:
		return fmt.Sprintf("%s or %s", items[0], items[1])
	default:
		return fmt.Sprintf("%s, or %s", strings.Join(items[:len(items)-1], ", "), items[len(items)-1])
	}
}

// sniffMimeType trusts the payload bytes first and only falls back to the
// filename extension when the content is not recognised.
func sniffMimeType(payload []byte, filename string) string {
	detected := mimetype.Detect(payload)
	mediaType, _, err := mime.ParseMediaType(detected.String())
	if err == nil && mediaType != "application/octet-stream" && mediaType != "text/plain" {
		return strings.ToLower(mediaType)
	}
	if ext := filepath.Ext(filename); ext != "" {
		if byExt := mime.TypeByExtension(strings.ToLower(ext)); byExt != "" {
			if parsed, _, err := mime.ParseMediaType(byExt); err == nil {
				return strings.ToLower(parsed)
			}
		}
	}
	return "application/octet-stream"
}

func isAllowed(mediaType string) bool {
	_, ok := allowedTypes[mediaType]
	return ok
}
