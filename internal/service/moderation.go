package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log"

	"reviewapi/internal/model"
	"reviewapi/internal/publicurl"
	"reviewapi/internal/repository"
	"reviewapi/internal/storage"
)

// ModerationService is the operator-facing side of the pipeline: list every
// review regardless of state, approve a pending one, or remove one entirely.
// Authentication happens at the transport layer; every call here is assumed
// already authorized.
type ModerationService interface {
	ListAll(ctx context.Context) ([]model.Review, error)

	// Approve makes the review visible in the public feed. Approving an
	// already approved review is a successful no-op. ErrNotFound when the
	// id does not exist.
	Approve(ctx context.Context, id int64) error

	// Delete removes the review row and best-effort-deletes its attachment.
	// Attachment deletion failure is logged and never blocks the row
	// deletion: an orphaned blob is acceptable, a stuck review row is not.
	Delete(ctx context.Context, id int64) error
}

type moderationService struct {
	store storage.Storage
	repo  repository.ReviewRepository
}

// NewModerationService constructs a ModerationService.
func NewModerationService(store storage.Storage, repo repository.ReviewRepository) ModerationService {
	return &moderationService{store: store, repo: repo}
}

func (s *moderationService) ListAll(ctx context.Context) ([]model.Review, error) {
	return s.repo.ListAll(ctx)
}

func (s *moderationService) Approve(ctx context.Context, id int64) error {
	found, err := s.repo.SetApproved(ctx, id, true)
	if err != nil {
		return fmt.Errorf("approve review: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}

func (s *moderationService) Delete(ctx context.Context, id int64) error {
	rev, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return ErrNotFound
		}
		return fmt.Errorf("find review: %w", err)
	}

	// Absolute image values were written under an older resolution policy
	// and point outside this deployment's storage; only relative locators
	// name objects we own.
	if rev.Image != nil && !publicurl.IsAbsolute(*rev.Image) {
		if delErr := s.store.Delete(ctx, *rev.Image); delErr != nil {
			log.Printf("review %d: attachment %q not deleted: %v", id, *rev.Image, delErr)
		}
	}

	found, err := s.repo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete review: %w", err)
	}
	if !found {
		return ErrNotFound
	}
	return nil
}
