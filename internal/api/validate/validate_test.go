package validate

import (
	"encoding/base64"
	"strings"
	"testing"
)

func TestNeed(t *testing.T) {
	if err := Need("help me sleep"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := Need("   "); err == nil {
		t.Fatal("expected error for blank query")
	}
	if err := Need(strings.Repeat("a", 2001)); err == nil {
		t.Fatal("expected error for oversized query")
	}
}

func TestImagePayload(t *testing.T) {
	raw := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	encoded := base64.StdEncoding.EncodeToString(raw)

	data, err := ImagePayload(encoded)
	if err != nil || len(data) != 4 {
		t.Fatalf("raw base64: (%d bytes, %v)", len(data), err)
	}

	data, err = ImagePayload("data:image/jpeg;base64," + encoded)
	if err != nil || len(data) != 4 {
		t.Fatalf("data URL: (%d bytes, %v)", len(data), err)
	}

	if _, err := ImagePayload(""); err == nil {
		t.Fatal("expected error for empty image")
	}
	if _, err := ImagePayload("!!!not base64!!!"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
}

func TestMimeType(t *testing.T) {
	for _, ok := range []string{"", "image/jpeg", "image/png", "image/webp"} {
		if err := MimeType(ok); err != nil {
			t.Errorf("%q: unexpected error %v", ok, err)
		}
	}
	for _, bad := range []string{"image/gif", "application/pdf", "text/html"} {
		if err := MimeType(bad); err == nil {
			t.Errorf("%q: expected error", bad)
		}
	}
}

func TestLimit(t *testing.T) {
	if err := Limit(0, 25); err != nil {
		t.Fatalf("zero limit: %v", err)
	}
	if err := Limit(-1, 25); err == nil {
		t.Fatal("expected error for negative limit")
	}
	if err := Limit(26, 25); err == nil {
		t.Fatal("expected error for limit above maximum")
	}
}
