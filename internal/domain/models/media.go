package models

import (
	"fmt"
	"strings"
)

type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

func ParseMediaKind(s string) (MediaKind, error) {
	switch k := MediaKind(strings.ToLower(strings.TrimSpace(s))); k {
	case MediaKindImage, MediaKindVideo:
		return k, nil
	default:
		return "", fmt.Errorf("invalid media type '%s', must be one of: [%s %s]", s, MediaKindImage, MediaKindVideo)
	}
}

// MimePrefix is the content type family an upload of this kind must belong to.
func (k MediaKind) MimePrefix() string {
	return string(k) + "/"
}

// UploadResult is what the media host hands back for one stored file.
type UploadResult struct {
	URL         string    `json:"url"`
	Kind        MediaKind `json:"type"`
	StoragePath string    `json:"storage_path"`
	FileSize    int64     `json:"file_size"`
	MimeType    string    `json:"mime_type,omitempty"`
}
