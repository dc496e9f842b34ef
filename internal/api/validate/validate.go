package validate

import (
	"encoding/base64"
	"fmt"
	"strings"
)

// maxImageBytes caps decoded identification photos at 8 MiB.
const maxImageBytes = 8 << 20

// maxNeedLen caps free-text need/guidance queries.
const maxNeedLen = 2000

func NonEmpty(field, v string) error {
	if v == "" {
		return fmt.Errorf("%s is required", field)
	}
	return nil
}

func MaxLen(field, v string, limit int) error {
	if len(v) > limit {
		return fmt.Errorf("%s exceeds %d characters", field, limit)
	}
	return nil
}

// Need validates a free-text query for guidance and recommendations.
func Need(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("query text is required")
	}
	return MaxLen("query", v, maxNeedLen)
}

// ImagePayload decodes a base64 identification photo and enforces the size
// cap. It accepts both raw base64 and data URLs.
func ImagePayload(encoded string) ([]byte, error) {
	if encoded == "" {
		return nil, fmt.Errorf("image is required")
	}
	if i := strings.Index(encoded, ";base64,"); i >= 0 {
		encoded = encoded[i+len(";base64,"):]
	}
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("image is not valid base64")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("image is empty")
	}
	if len(data) > maxImageBytes {
		return nil, fmt.Errorf("image exceeds %d bytes", maxImageBytes)
	}
	return data, nil
}

// MimeType restricts uploads to the image types the analyzer accepts.
func MimeType(v string) error {
	switch v {
	case "", "image/jpeg", "image/png", "image/webp", "image/heic":
		return nil
	}
	return fmt.Errorf("unsupported image type %q", v)
}

// Limit bounds a requested result count; zero means "use the default".
func Limit(v, max int) error {
	if v < 0 {
		return fmt.Errorf("limit must not be negative")
	}
	if v > max {
		return fmt.Errorf("limit exceeds maximum of %d", max)
	}
	return nil
}
