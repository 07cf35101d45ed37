package feed

import (
	"bytes"
	"io"
	"testing"
)

func TestDecodeCharsetWindows1251(t *testing.T) {
	// "Привет" in windows-1251
	input := []byte{0xCF, 0xF0, 0xE8, 0xE2, 0xE5, 0xF2}

	reader, err := decodeCharset("windows-1251", bytes.NewReader(input))
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	decoded, err := io.ReadAll(reader)
	if err != nil {
		t.Fatalf("Expected no error reading decoded stream, got %v", err)
	}
	if string(decoded) != "Привет" {
		t.Errorf("Expected decoded UTF-8 'Привет', got %q", string(decoded))
	}
}

func TestDecodeCharsetUnknownLabel(t *testing.T) {
	if _, err := decodeCharset("not-a-charset", bytes.NewReader(nil)); err == nil {
		t.Error("Expected error for unknown charset label")
	}
}
