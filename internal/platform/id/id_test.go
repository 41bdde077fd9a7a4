package id

import (
	"encoding/base32"
	"strings"
	"testing"
)

func TestNewIDShape(t *testing.T) {
	generated, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}
	if len(generated) != 26 {
		t.Fatalf("id length = %d, want 26", len(generated))
	}
	if generated != strings.ToLower(generated) {
		t.Fatalf("id %q is not lowercase", generated)
	}
	if strings.ContainsAny(generated, "=") {
		t.Fatalf("id %q carries padding", generated)
	}
}

func TestNewIDDecodesToUUIDv4(t *testing.T) {
	generated, err := NewID()
	if err != nil {
		t.Fatalf("new id: %v", err)
	}

	raw, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(strings.ToUpper(generated))
	if err != nil {
		t.Fatalf("decode id: %v", err)
	}
	if len(raw) != 16 {
		t.Fatalf("decoded length = %d, want 16", len(raw))
	}
	if version := raw[6] >> 4; version != 4 {
		t.Fatalf("uuid version = %d, want 4", version)
	}
	if variant := raw[8] & 0xC0; variant != 0x80 {
		t.Fatalf("uuid variant = 0x%X, want 0x80", variant)
	}
}

func TestNewIDValuesDiffer(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 32; i++ {
		generated, err := NewID()
		if err != nil {
			t.Fatalf("new id: %v", err)
		}
		if seen[generated] {
			t.Fatalf("id %q repeated", generated)
		}
		seen[generated] = true
	}
}
