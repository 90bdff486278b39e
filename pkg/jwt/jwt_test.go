package jwt

import (
	"strings"
	"testing"
	"time"
)

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		expiration time.Duration
		secret     string
	}{
		{
			name:       "document owner id",
			userID:     "9c2d1d5a-7e04-4c35-9d2b-4a1f08c6e7aa",
			expiration: 30 * time.Minute,
			secret:     "chronoseal-unit-secret",
		},
		{
			name:       "near-immediate expiry",
			userID:     "owner-short-lived",
			expiration: 500 * time.Millisecond,
			secret:     "chronoseal-unit-secret",
		},
		{
			name:       "week-long session",
			userID:     "owner-long-lived",
			expiration: 7 * 24 * time.Hour,
			secret:     "another-secret",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			token, err := GenerateToken(tt.userID, tt.expiration, tt.secret)
			if err != nil {
				t.Fatalf("GenerateToken() error = %v", err)
			}

			if strings.Count(token, ".") != 2 {
				t.Errorf("GenerateToken() produced malformed JWT: %q", token)
			}

			claims, err := ValidateToken(token, tt.secret)
			if err != nil {
				t.Fatalf("ValidateToken() error = %v", err)
			}
			if claims.UserID != tt.userID {
				t.Errorf("claims user id = %q, want %q", claims.UserID, tt.userID)
			}
			if claims.Subject != tt.userID {
				t.Errorf("claims subject = %q, want %q", claims.Subject, tt.userID)
			}
		})
	}
}

func TestTokenTypes(t *testing.T) {
	const (
		userID = "type-check-owner"
		secret = "chronoseal-unit-secret"
	)

	access, err := GenerateToken(userID, time.Hour, secret)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	refresh, err := GenerateRefreshToken(userID, 24*time.Hour, secret)
	if err != nil {
		t.Fatalf("GenerateRefreshToken() error = %v", err)
	}

	accessClaims, err := ValidateToken(access, secret)
	if err != nil {
		t.Fatalf("ValidateToken(access) error = %v", err)
	}
	if accessClaims.TokenType != "access" {
		t.Errorf("access token type = %q, want %q", accessClaims.TokenType, "access")
	}

	refreshClaims, err := ValidateToken(refresh, secret)
	if err != nil {
		t.Fatalf("ValidateToken(refresh) error = %v", err)
	}
	if refreshClaims.TokenType != "refresh" {
		t.Errorf("refresh token type = %q, want %q", refreshClaims.TokenType, "refresh")
	}
}

func TestValidateTokenRejections(t *testing.T) {
	const secret = "chronoseal-unit-secret"

	valid, err := GenerateToken("rejection-owner", time.Hour, secret)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	expired, err := GenerateToken("rejection-owner", -time.Minute, secret)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}

	tests := []struct {
		name   string
		token  string
		secret string
	}{
		{name: "already expired", token: expired, secret: secret},
		{name: "signed with different secret", token: valid, secret: "rotated-secret"},
		{name: "truncated token", token: valid[:len(valid)/2], secret: secret},
		{name: "not a jwt at all", token: "chronoseal", secret: secret},
		{name: "empty token", token: "", secret: secret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ValidateToken(tt.token, tt.secret); err == nil {
				t.Error("ValidateToken() accepted an invalid token")
			}
		})
	}
}

func TestTokenLifetimeClaims(t *testing.T) {
	const (
		userID = "lifetime-owner"
		secret = "chronoseal-unit-secret"
	)
	expiration := 45 * time.Minute

	issuedLow := time.Now().Add(-time.Second)
	token, err := GenerateToken(userID, expiration, secret)
	if err != nil {
		t.Fatalf("GenerateToken() error = %v", err)
	}
	issuedHigh := time.Now().Add(time.Second)

	claims, err := ValidateToken(token, secret)
	if err != nil {
		t.Fatalf("ValidateToken() error = %v", err)
	}

	if iat := claims.IssuedAt.Time; iat.Before(issuedLow) || iat.After(issuedHigh) {
		t.Errorf("IssuedAt = %v, want within [%v, %v]", iat, issuedLow, issuedHigh)
	}
	if nbf := claims.NotBefore.Time; nbf.Before(issuedLow) || nbf.After(issuedHigh) {
		t.Errorf("NotBefore = %v, want within [%v, %v]", nbf, issuedLow, issuedHigh)
	}

	exp := claims.ExpiresAt.Time
	if exp.Before(issuedLow.Add(expiration)) || exp.After(issuedHigh.Add(expiration)) {
		t.Errorf("ExpiresAt = %v, want issued time plus %v", exp, expiration)
	}
}

func BenchmarkValidateToken(b *testing.B) {
	token, err := GenerateToken("benchmark-owner", time.Hour, "chronoseal-unit-secret")
	if err != nil {
		b.Fatalf("GenerateToken() error = %v", err)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		if _, err := ValidateToken(token, "chronoseal-unit-secret"); err != nil {
			b.Fatalf("ValidateToken() error = %v", err)
		}
	}
}
