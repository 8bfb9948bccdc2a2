package repository

// Package repository contains data access layer abstractions.
// Implementations live in subpackages (e.g., postgres) inside this directory.

import (
	"context"

	"reviewapi/internal/model"
)

// ReviewRepository defines data access for reviews using SQL queries only.
// No business logic here, strictly persistence operations.
//
// Both listings return rows ordered created_at descending with id descending
// as the tie-break, so the newest submission is always first. Mutations on a
// specific id report whether a row matched so callers can distinguish a no-op
// from a missing review.
type ReviewRepository interface {
	// Create inserts a new review row. The database assigns id and
	// created_at; the returned record carries both.
	Create(ctx context.Context, rev *model.Review) (*model.Review, error)

	// ListApproved returns only reviews visible in the public feed.
	ListApproved(ctx context.Context) ([]model.Review, error)

	// ListAll returns reviews in every moderation state.
	ListAll(ctx context.Context) ([]model.Review, error)

	// FindByID returns a review by its id (sql.ErrNoRows when absent).
	FindByID(ctx context.Context, id int64) (*model.Review, error)

	// SetApproved transitions the moderation flag. Setting a row to the
	// state it is already in is a successful no-op. found reports whether
	// the id matched a row.
	SetApproved(ctx context.Context, id int64, approved bool) (found bool, err error)

	// Delete removes a review row permanently. found reports whether the
	// id matched a row.
	Delete(ctx context.Context, id int64) (found bool, err error)
}
