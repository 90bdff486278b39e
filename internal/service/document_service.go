package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"chronoseal-server/internal/domain"
	"chronoseal-server/internal/normalize"
	"chronoseal-server/internal/repository"
	"chronoseal-server/pkg/digest"
)

// The persistence layer assigns ids in the hyphenated lowercase uuid form
// only; anything else fails fast here instead of querying storage. This is
// stricter than uuid.Parse, which also accepts braced, urn-prefixed and
// hyphenless variants that no record can ever carry.
var documentIDPattern = regexp.MustCompile(`^[0-9a-f]{8}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{4}-[0-9a-f]{12}$`)

func isValidDocumentID(id string) bool {
	return documentIDPattern.MatchString(id)
}

// DocumentService is the integrity engine: it owns salt generation, salted
// digest computation and digest comparison. It holds no mutable state of its
// own; records are immutable after insert, so concurrent store/verify calls
// need no coordination beyond the repository's read-after-write guarantee.
type DocumentService struct {
	repo       repository.DocumentRepository
	batchLimit int
}

func NewDocumentService(repo repository.DocumentRepository, batchLimit int) *DocumentService {
	return &DocumentService{
		repo:       repo,
		batchLimit: batchLimit,
	}
}

// Store normalizes the submission, generates a fresh salt, computes the
// salted digest and persists the record. A single atomic insert; no existing
// record is read or modified.
func (s *DocumentService) Store(ctx context.Context, ownerID string, in normalize.Input, fileName, fileType string) (*domain.DocumentResponse, error) {
	if in.Empty() {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}

	canonical, err := normalize.Normalize(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	salt := digest.GenerateSalt()

	doc := &domain.Document{
		OwnerID:   ownerID,
		Digest:    digest.Compute(salt, canonical.Bytes),
		Salt:      salt,
		InputType: domain.InputType(canonical.Kind),
		FileName:  fileName,
		FileType:  fileType,
		CreatedAt: time.Now().UTC(),
	}

	id, err := s.repo.Insert(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStorageUnavailable, err)
	}

	return &domain.DocumentResponse{
		ID:        id,
		Digest:    doc.Digest,
		Salt:      doc.Salt,
		InputType: doc.InputType,
		FileName:  doc.FileName,
		FileType:  doc.FileType,
		CreatedAt: doc.CreatedAt,
	}, nil
}

// Verify recomputes the digest of the resubmitted content with the stored
// salt and compares it against the stored digest. It never writes; the audit
// trail is built fresh per call and returned, not persisted.
func (s *DocumentService) Verify(ctx context.Context, ownerID, documentID string, in normalize.Input) (*domain.VerificationResult, error) {
	if in.Empty() {
		return nil, fmt.Errorf("%w: content is required", ErrInvalidInput)
	}
	if !isValidDocumentID(documentID) {
		return nil, fmt.Errorf("%w: malformed document id %q", ErrInvalidInput, documentID)
	}

	start := time.Now()

	doc, err := s.findOwned(ctx, ownerID, documentID)
	if err != nil {
		return nil, err
	}

	canonical, err := normalize.Normalize(in)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidInput, err)
	}

	// Recomputation is only meaningful against the original salt;
	// a fresh salt would make every comparison fail.
	recomputed := digest.Compute(doc.Salt, canonical.Bytes)
	match := recomputed == doc.Digest

	return &domain.VerificationResult{
		Match: match,
		AuditTrail: &domain.AuditTrail{
			DocumentID:       doc.ID,
			OwnerID:          doc.OwnerID,
			OriginalDigest:   doc.Digest,
			RecomputedDigest: recomputed,
			Match:            match,
			StoredAt:         doc.CreatedAt,
			VerifiedAt:       time.Now().UTC(),
			ElapsedMS:        float64(time.Since(start).Microseconds()) / 1000.0,
		},
	}, nil
}

// VerifyBatch runs Verify over each item independently. A failing item is
// captured in its result slot and never aborts its siblings; results keep
// input order. SuccessCount counts completed matches, FailCount counts
// per-item errors and mismatches.
func (s *DocumentService) VerifyBatch(ctx context.Context, ownerID string, items []domain.BatchVerifyItem) (*domain.BatchVerifyResponse, error) {
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: batch is empty", ErrInvalidInput)
	}
	if s.batchLimit > 0 && len(items) > s.batchLimit {
		return nil, fmt.Errorf("%w: batch size %d exceeds limit %d", ErrInvalidInput, len(items), s.batchLimit)
	}

	resp := &domain.BatchVerifyResponse{
		Results: make([]*domain.BatchVerifyResult, 0, len(items)),
	}

	for _, item := range items {
		result, err := s.Verify(ctx, ownerID, item.ID, normalize.TextInput(item.Content))
		if err != nil {
			resp.FailCount++
			resp.Results = append(resp.Results, &domain.BatchVerifyResult{
				ID:    item.ID,
				Error: err.Error(),
			})
			continue
		}

		if result.Match {
			resp.SuccessCount++
		} else {
			resp.FailCount++
		}
		resp.Results = append(resp.Results, &domain.BatchVerifyResult{
			ID:         item.ID,
			Match:      result.Match,
			AuditTrail: result.AuditTrail,
		})
	}

	return resp, nil
}

func (s *DocumentService) List(ctx context.Context, ownerID string) ([]*domain.DocumentResponse, error) {
	docs, err := s.repo.FindByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStorageUnavailable, err)
	}

	responses := make([]*domain.DocumentResponse, 0, len(docs))
	for _, doc := range docs {
		responses = append(responses, &domain.DocumentResponse{
			ID:        doc.ID,
			Digest:    doc.Digest,
			Salt:      doc.Salt,
			InputType: doc.InputType,
			FileName:  doc.FileName,
			FileType:  doc.FileType,
			CreatedAt: doc.CreatedAt,
		})
	}

	return responses, nil
}

func (s *DocumentService) Get(ctx context.Context, ownerID, documentID string) (*domain.DocumentResponse, error) {
	if !isValidDocumentID(documentID) {
		return nil, fmt.Errorf("%w: malformed document id %q", ErrInvalidInput, documentID)
	}

	doc, err := s.findOwned(ctx, ownerID, documentID)
	if err != nil {
		return nil, err
	}

	return &domain.DocumentResponse{
		ID:        doc.ID,
		Digest:    doc.Digest,
		Salt:      doc.Salt,
		InputType: doc.InputType,
		FileName:  doc.FileName,
		FileType:  doc.FileType,
		CreatedAt: doc.CreatedAt,
	}, nil
}

func (s *DocumentService) Delete(ctx context.Context, ownerID, documentID string) error {
	if !isValidDocumentID(documentID) {
		return fmt.Errorf("%w: malformed document id %q", ErrInvalidInput, documentID)
	}

	if _, err := s.findOwned(ctx, ownerID, documentID); err != nil {
		return err
	}

	if err := s.repo.Delete(ctx, documentID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return fmt.Errorf("%w: document %s", ErrNotFound, documentID)
		}
		return fmt.Errorf("%w: %s", ErrStorageUnavailable, err)
	}

	return nil
}

// findOwned loads a record and enforces ownership isolation. NotFound and
// Forbidden stay distinguishable, which leaks record existence to non-owners;
// kept as-is for API compatibility.
func (s *DocumentService) findOwned(ctx context.Context, ownerID, documentID string) (*domain.Document, error) {
	doc, err := s.repo.FindByID(ctx, documentID)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%w: document %s", ErrNotFound, documentID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrStorageUnavailable, err)
	}

	if doc.OwnerID != ownerID {
		return nil, ErrForbidden
	}

	return doc, nil
}
