package service

import (
	"context"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

// FeedService is the read-only public projection: approved reviews, newest
// first. It has no state of its own.
type FeedService interface {
	ListApproved(ctx context.Context) ([]model.Review, error)
}

type feedService struct {
	repo repository.ReviewRepository
}

// NewFeedService constructs a FeedService.
func NewFeedService(repo repository.ReviewRepository) FeedService {
	return &feedService{repo: repo}
}

func (s *feedService) ListApproved(ctx context.Context) ([]model.Review, error) {
	return s.repo.ListApproved(ctx)
}
