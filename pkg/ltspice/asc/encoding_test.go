package asc

import (
	"errors"
	"strings"
	"testing"
)

func TestDecodeBytesUTF8(t *testing.T) {
	text, err := DecodeBytes([]byte("Version 4\nSHEET 1 880 680\n"))
	if err != nil {
		t.Fatalf("Failed to decode UTF-8: %v", err)
	}
	if !strings.HasPrefix(text, "Version 4") {
		t.Errorf("Unexpected decoded text: %q", text)
	}
}

func TestDecodeBytesUTF16LE(t *testing.T) {
	text, err := DecodeBytes(utf16le("Version 4\nWIRE 0 0 16 0\n"))
	if err != nil {
		t.Fatalf("Failed to decode UTF-16LE: %v", err)
	}
	if !strings.HasPrefix(text, "Version 4") {
		t.Errorf("Unexpected decoded text: %q", text)
	}
}

func TestDecodeBytesNormalizesMicro(t *testing.T) {
	text, err := DecodeBytes([]byte("Version 4\nSYMATTR Value 3µ\n"))
	if err != nil {
		t.Fatalf("Failed to decode: %v", err)
	}
	if !strings.Contains(text, "3u") {
		t.Errorf("Expected micro sign normalized, got %q", text)
	}
	if strings.Contains(text, "µ") {
		t.Errorf("Micro sign survived normalization: %q", text)
	}
}

func TestDecodeBytesMacRoman(t *testing.T) {
	// 0xB5 is the micro sign in Mac-Roman and invalid as a UTF-8 start of
	// this sequence, forcing the charmap fallback.
	raw := append([]byte("Version 4\nSYMATTR Value 3"), 0xB5, '\n')
	text, err := DecodeBytes(raw)
	if err != nil {
		t.Fatalf("Failed to decode Mac-Roman: %v", err)
	}
	if !strings.Contains(text, "3u") {
		t.Errorf("Expected 0xB5 to decode to micro then normalize to 'u', got %q", text)
	}
}

func TestDecodeBytesRejectsNonSchematic(t *testing.T) {
	cases := [][]byte{
		nil,
		{},
		[]byte("V"),
		[]byte("hello"),
		[]byte("Xersion 4\n"),
		{'V', 0x01, 'r'},
	}
	for _, raw := range cases {
		if _, err := DecodeBytes(raw); !errors.Is(err, ErrNotSchematic) {
			t.Errorf("DecodeBytes(%q) error = %v, want ErrNotSchematic", raw, err)
		}
	}
}
