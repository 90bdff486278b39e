package domain

import "time"

type VerifyDocumentRequest struct {
	Content string `json:"content" validate:"required"`
}

// AuditTrail describes a single verification run. It is built fresh on
// every verify call, returned to the caller and never persisted.
type AuditTrail struct {
	DocumentID       string    `json:"document_id"`
	OwnerID          string    `json:"owner_id"`
	OriginalDigest   string    `json:"original_digest"`
	RecomputedDigest string    `json:"recomputed_digest"`
	Match            bool      `json:"match"`
	StoredAt         time.Time `json:"stored_at"`
	VerifiedAt       time.Time `json:"verified_at"`
	ElapsedMS        float64   `json:"elapsed_ms"`
}

type VerificationResult struct {
	Match      bool        `json:"match"`
	AuditTrail *AuditTrail `json:"audit_trail"`
}

type BatchVerifyItem struct {
	ID      string `json:"id" validate:"required"`
	Content string `json:"content" validate:"required"`
}

type BatchVerifyRequest struct {
	Items []BatchVerifyItem `json:"items" validate:"required,min=1"`
}

// BatchVerifyResult carries either a verdict or a per-item error, never both.
type BatchVerifyResult struct {
	ID         string      `json:"id"`
	Match      bool        `json:"match"`
	Error      string      `json:"error,omitempty"`
	AuditTrail *AuditTrail `json:"audit_trail,omitempty"`
}

type BatchVerifyResponse struct {
	SuccessCount int                  `json:"success_count"`
	FailCount    int                  `json:"fail_count"`
	Results      []*BatchVerifyResult `json:"results"`
}
