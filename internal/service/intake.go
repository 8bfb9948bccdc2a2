package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
	"reviewapi/internal/storage"
)

var (
	// ErrNameTextRequired is returned when a submission is missing either
	// required field after trimming.
	ErrNameTextRequired = errors.New("name and review text required")
	// ErrAttachmentTooLarge is returned when the attached image exceeds the
	// configured byte cap. Checked before anything durable is written.
	ErrAttachmentTooLarge = errors.New("image exceeds the upload size limit")
	// ErrNotFound is returned by moderation operations on a nonexistent id.
	ErrNotFound = errors.New("review not found")
)

// attachmentPrefix is the key prefix under which all review images live.
// The relative locator stored on a review row is the full object key.
const attachmentPrefix = "uploads"

// ReviewUpload describes an image attached to a submission.
type ReviewUpload struct {
	Reader      io.Reader
	Filename    string
	ContentType string
	Size        int64
}

// SubmitReviewInput carries one review submission. Rating and Image are
// optional; everything else arrives as-is from the form.
type SubmitReviewInput struct {
	Name   string
	City   string
	Rating *int
	Text   string
	Image  *ReviewUpload
}

// IntakeService accepts new review submissions.
type IntakeService interface {
	// Submit validates the input, stores the attachment (if any) and then
	// inserts the review row. The attachment write happens before the row
	// insert, and the object is rolled back if the insert fails, so no
	// review ever references an attachment that was never stored.
	Submit(ctx context.Context, in SubmitReviewInput) (*model.Review, error)
}

type intakeService struct {
	store       storage.Storage
	repo        repository.ReviewRepository
	autoApprove bool
	maxBytes    int64
}

// NewIntakeService constructs an IntakeService. autoApprove is the deployment
// moderation policy; maxBytes caps attachment size (<=0 disables the cap).
func NewIntakeService(store storage.Storage, repo repository.ReviewRepository, autoApprove bool, maxBytes int64) IntakeService {
	return &intakeService{store: store, repo: repo, autoApprove: autoApprove, maxBytes: maxBytes}
}

func (s *intakeService) Submit(ctx context.Context, in SubmitReviewInput) (*model.Review, error) {
	name := strings.TrimSpace(in.Name)
	text := strings.TrimSpace(in.Text)
	if name == "" || text == "" {
		return nil, ErrNameTextRequired
	}

	var locator *string
	if in.Image != nil && in.Image.Reader != nil {
		if s.maxBytes > 0 && in.Image.Size > s.maxBytes {
			return nil, ErrAttachmentTooLarge
		}

		// Generated key: uuid + original extension. Nothing else from the
		// uploaded filename reaches storage.
		ext := filepath.Ext(in.Image.Filename)
		key := attachmentPrefix + "/" + uuid.New().String() + ext

		_, err := s.store.Put(ctx, key, in.Image.Reader, storage.PutObjectOptions{
			Size:        in.Image.Size,
			ContentType: in.Image.ContentType,
			Metadata: map[string]string{
				"original-filename": in.Image.Filename,
			},
		})
		if err != nil {
			return nil, fmt.Errorf("store attachment: %w", err)
		}
		locator = &key
	}

	rev := &model.Review{
		Name:     name,
		City:     strings.TrimSpace(in.City),
		Rating:   in.Rating,
		Text:     text,
		Image:    locator,
		Approved: s.autoApprove,
	}
	stored, err := s.repo.Create(ctx, rev)
	if err != nil {
		// Roll back the attachment so no unowned blob is left behind.
		if locator != nil {
			if delErr := s.store.Delete(ctx, *locator); delErr != nil {
				return nil, fmt.Errorf("save review failed: %v; rollback delete failed: %v", err, delErr)
			}
		}
		return nil, fmt.Errorf("save review: %w", err)
	}
	return stored, nil
}
