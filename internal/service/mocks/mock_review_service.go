package mocks

import (
	"context"

	"reviewapi/internal/model"
	"reviewapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockIntakeService struct {
	mock.Mock
}

func (m *MockIntakeService) Submit(ctx context.Context, in service.SubmitReviewInput) (*model.Review, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) ListApproved(ctx context.Context) ([]model.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

type MockModerationService struct {
	mock.Mock
}

func (m *MockModerationService) ListAll(ctx context.Context) ([]model.Review, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockModerationService) Approve(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockModerationService) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}
