package hash

import (
	"strings"
	"testing"
)

func TestHashLengthPolicy(t *testing.T) {
	tests := []struct {
		name     string
		password string
		wantErr  bool
	}{
		{
			name:     "well above minimum",
			password: "integrity-first-2024",
			wantErr:  false,
		},
		{
			name:     "exactly eight characters",
			password: "8chars!!",
			wantErr:  false,
		},
		{
			name:     "seven characters rejected",
			password: "7chars!",
			wantErr:  true,
		},
		{
			name:     "empty rejected",
			password: "",
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			hashed, err := Hash(tt.password)

			if tt.wantErr {
				if err == nil {
					t.Error("Hash() accepted a password below the minimum length")
				}
				return
			}

			if err != nil {
				t.Fatalf("Hash() error = %v", err)
			}
			if hashed == tt.password {
				t.Error("Hash() returned the plaintext password")
			}
			if !strings.HasPrefix(hashed, "$2a$12$") {
				t.Errorf("Hash() output is not a cost-12 bcrypt hash: %s", hashed)
			}
		})
	}
}

func TestHashIsSalted(t *testing.T) {
	const password = "verify-twice-store-once"

	first, err := Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}
	second, err := Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	if first == second {
		t.Error("Hash() produced identical output twice; bcrypt salt missing")
	}

	if err := Compare(first, password); err != nil {
		t.Errorf("Compare() rejected first hash: %v", err)
	}
	if err := Compare(second, password); err != nil {
		t.Errorf("Compare() rejected second hash: %v", err)
	}
}

func TestCompare(t *testing.T) {
	const password = "tamper-evident-archive"

	hashed, err := Hash(password)
	if err != nil {
		t.Fatalf("Hash() error = %v", err)
	}

	tests := []struct {
		name      string
		candidate string
		wantErr   bool
	}{
		{name: "matching password", candidate: password, wantErr: false},
		{name: "wrong password", candidate: "tamper-evident-archiv3", wantErr: true},
		{name: "case mismatch", candidate: strings.ToUpper(password), wantErr: true},
		{name: "empty candidate", candidate: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Compare(hashed, tt.candidate)
			if tt.wantErr && err == nil {
				t.Error("Compare() accepted a wrong password")
			}
			if !tt.wantErr && err != nil {
				t.Errorf("Compare() error = %v", err)
			}
		})
	}
}

func TestCompareMalformedHash(t *testing.T) {
	if err := Compare("not-a-bcrypt-hash", "whatever-password"); err == nil {
		t.Error("Compare() accepted a malformed stored hash")
	}
}
