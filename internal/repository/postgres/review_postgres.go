package postgres

import (
	"context"
	"database/sql"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

// ReviewPostgres is a PostgreSQL implementation of repository.ReviewRepository.
// It uses database/sql with parameterized queries and contains no business logic.
type ReviewPostgres struct {
	db *sql.DB
}

// NewReviewPostgres creates a new ReviewPostgres repository.
func NewReviewPostgres(db *sql.DB) *ReviewPostgres {
	return &ReviewPostgres{db: db}
}

var _ repository.ReviewRepository = (*ReviewPostgres)(nil)

const reviewColumns = `id, name, city, rating, text, image, approved, created_at`

// Create inserts a new review row. id and created_at come back from the
// database, so concurrent inserts can never collide on id.
func (r *ReviewPostgres) Create(ctx context.Context, rev *model.Review) (*model.Review, error) {
	const q = `
		INSERT INTO reviews (name, city, rating, text, image, approved)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`
	out := *rev
	row := r.db.QueryRowContext(ctx, q,
		rev.Name,
		rev.City,
		nullableInt(rev.Rating),
		rev.Text,
		nullableString(rev.Image),
		rev.Approved,
	)
	if err := row.Scan(&out.ID, &out.CreatedAt); err != nil {
		return nil, err
	}
	return &out, nil
}

// ListApproved returns the public feed projection, newest first.
func (r *ReviewPostgres) ListApproved(ctx context.Context) ([]model.Review, error) {
	const q = `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE approved = TRUE
		ORDER BY created_at DESC, id DESC
	`
	return r.queryReviews(ctx, q)
}

// ListAll returns every review regardless of moderation state, newest first.
func (r *ReviewPostgres) ListAll(ctx context.Context) ([]model.Review, error) {
	const q = `
		SELECT ` + reviewColumns + `
		FROM reviews
		ORDER BY created_at DESC, id DESC
	`
	return r.queryReviews(ctx, q)
}

// FindByID fetches a single review by its id.
func (r *ReviewPostgres) FindByID(ctx context.Context, id int64) (*model.Review, error) {
	const q = `
		SELECT ` + reviewColumns + `
		FROM reviews
		WHERE id = $1
	`
	row := r.db.QueryRowContext(ctx, q, id)
	rev, err := scanReview(row)
	if err != nil {
		return nil, err
	}
	return rev, nil
}

// SetApproved transitions the moderation flag and reports whether a row matched.
func (r *ReviewPostgres) SetApproved(ctx context.Context, id int64, approved bool) (bool, error) {
	const q = `UPDATE reviews SET approved = $2 WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id, approved)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Delete removes a review row and reports whether a row matched.
func (r *ReviewPostgres) Delete(ctx context.Context, id int64) (bool, error) {
	const q = `DELETE FROM reviews WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

func (r *ReviewPostgres) queryReviews(ctx context.Context, q string) ([]model.Review, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := make([]model.Review, 0)
	for rows.Next() {
		rev, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *rev)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return items, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanReview(s rowScanner) (*model.Review, error) {
	var (
		rev    model.Review
		rating sql.NullInt64
		image  sql.NullString
	)
	if err := s.Scan(
		&rev.ID,
		&rev.Name,
		&rev.City,
		&rating,
		&rev.Text,
		&image,
		&rev.Approved,
		&rev.CreatedAt,
	); err != nil {
		return nil, err
	}
	if rating.Valid {
		n := int(rating.Int64)
		rev.Rating = &n
	}
	if image.Valid {
		v := image.String
		rev.Image = &v
	}
	return &rev, nil
}

func nullableInt(v *int) any {
	if v == nil {
		return nil
	}
	return *v
}

func nullableString(v *string) any {
	if v == nil {
		return nil
	}
	return *v
}
