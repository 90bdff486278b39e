package normalize

import (
	"bytes"
	"errors"
	"testing"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantBytes []byte
		wantKind  Kind
	}{
		{
			name:      "plain text is trimmed",
			input:     "  hello world \n",
			wantBytes: []byte("hello world"),
			wantKind:  KindText,
		},
		{
			name:      "data uri prefix is stripped",
			input:     "data:image/png;base64,AAAA",
			wantBytes: []byte("AAAA"),
			wantKind:  KindBase64,
		},
		{
			name:      "bare base64 kept verbatim",
			input:     "AAAA",
			wantBytes: []byte("AAAA"),
			wantKind:  KindBase64,
		},
		{
			name:      "data uri with structured mime",
			input:     "data:application/vnd.ms-excel;base64,UEsDBA==",
			wantBytes: []byte("UEsDBA=="),
			wantKind:  KindBase64,
		},
		{
			name:      "invalid base64 falls back to text",
			input:     "not base64!!",
			wantBytes: []byte("not base64!!"),
			wantKind:  KindText,
		},
		{
			name:      "whitespace only text is permitted",
			input:     "   ",
			wantBytes: []byte(""),
			wantKind:  KindText,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Normalize(TextInput(tt.input))
			if err != nil {
				t.Fatalf("Normalize() error = %v", err)
			}

			if !bytes.Equal(got.Bytes, tt.wantBytes) {
				t.Errorf("Normalize() bytes = %q, want %q", got.Bytes, tt.wantBytes)
			}
			if got.Kind != tt.wantKind {
				t.Errorf("Normalize() kind = %q, want %q", got.Kind, tt.wantKind)
			}
		})
	}
}

func TestNormalizeBinary(t *testing.T) {
	raw := []byte{0x89, 0x50, 0x4e, 0x47, 0x00}

	got, err := Normalize(BinaryInput(raw))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if !bytes.Equal(got.Bytes, raw) {
		t.Error("Normalize() must pass binary buffers through verbatim")
	}
	if got.Kind != KindBase64 {
		t.Errorf("Normalize() binary kind = %q, want %q", got.Kind, KindBase64)
	}
}

func TestNormalizeEmpty(t *testing.T) {
	tests := []struct {
		name  string
		input Input
	}{
		{name: "empty text", input: TextInput("")},
		{name: "nil binary", input: BinaryInput(nil)},
		{name: "empty binary", input: BinaryInput([]byte{})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !tt.input.Empty() {
				t.Error("Empty() = false, want true")
			}
			if _, err := Normalize(tt.input); !errors.Is(err, ErrEmptyContent) {
				t.Errorf("Normalize() error = %v, want ErrEmptyContent", err)
			}
		})
	}
}

// Equivalent submissions must canonicalize identically: a prefixed data URI
// and its bare payload are the same content.
func TestNormalizeDataURIEquivalence(t *testing.T) {
	prefixed, err := Normalize(TextInput("data:image/png;base64,AAAA"))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	bare, err := Normalize(TextInput("AAAA"))
	if err != nil {
		t.Fatalf("Normalize() error = %v", err)
	}

	if !bytes.Equal(prefixed.Bytes, bare.Bytes) {
		t.Errorf("canonical bytes differ: %q vs %q", prefixed.Bytes, bare.Bytes)
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"  padded text  ",
		"data:text/plain;base64,aGVsbG8=",
		"aGVsbG8=",
		"plain text with spaces inside",
	}

	for _, in := range inputs {
		first, err := Normalize(TextInput(in))
		if err != nil {
			t.Fatalf("Normalize(%q) error = %v", in, err)
		}

		second, err := Normalize(TextInput(string(first.Bytes)))
		if err != nil {
			t.Fatalf("Normalize(Normalize(%q)) error = %v", in, err)
		}

		if !bytes.Equal(first.Bytes, second.Bytes) {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, first.Bytes, second.Bytes)
		}
	}
}
