package digest

import (
	"strings"
	"testing"
)

func TestCompute(t *testing.T) {
	tests := []struct {
		name    string
		salt    string
		content []byte
	}{
		{
			name:    "plain text",
			salt:    "salt-1",
			content: []byte("hello world"),
		},
		{
			name:    "empty content",
			salt:    "salt-2",
			content: nil,
		},
		{
			name:    "binary content",
			salt:    "salt-3",
			content: []byte{0x00, 0xff, 0x10, 0x80},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Compute(tt.salt, tt.content)

			if len(d) != 64 {
				t.Errorf("Compute() digest length = %d, want 64", len(d))
			}

			if d != strings.ToLower(d) {
				t.Errorf("Compute() digest not lowercase hex: %s", d)
			}

			if again := Compute(tt.salt, tt.content); again != d {
				t.Errorf("Compute() not deterministic: %s != %s", again, d)
			}
		})
	}
}

func TestComputeSaltSeparatesContent(t *testing.T) {
	content := []byte("same content")

	d1 := Compute("salt-a", content)
	d2 := Compute("salt-b", content)

	if d1 == d2 {
		t.Error("Compute() identical content under different salts must differ")
	}
}

func TestComputeContentSensitivity(t *testing.T) {
	salt := "fixed-salt"

	d1 := Compute(salt, []byte("amount: 100"))
	d2 := Compute(salt, []byte("amount: 500"))

	if d1 == d2 {
		t.Error("Compute() tampered content produced identical digest")
	}
}

func TestGenerateSaltUniqueness(t *testing.T) {
	const n = 10000

	seen := make(map[string]struct{}, n)
	for i := 0; i < n; i++ {
		salt := GenerateSalt()
		if salt == "" {
			t.Fatal("GenerateSalt() returned empty salt")
		}
		if _, dup := seen[salt]; dup {
			t.Fatalf("GenerateSalt() produced duplicate salt %s after %d calls", salt, i)
		}
		seen[salt] = struct{}{}
	}
}

func BenchmarkCompute(b *testing.B) {
	salt := GenerateSalt()
	content := []byte(strings.Repeat("payload ", 128))

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		Compute(salt, content)
	}
}
