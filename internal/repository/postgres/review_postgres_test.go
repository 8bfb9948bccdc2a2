package postgres

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"reviewapi/internal/model"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMock(t *testing.T) (*ReviewPostgres, sqlmock.Sqlmock, func()) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	return NewReviewPostgres(db), mock, func() { db.Close() }
}

func reviewRows(revs ...model.Review) *sqlmock.Rows {
	rows := sqlmock.NewRows([]string{"id", "name", "city", "rating", "text", "image", "approved", "created_at"})
	for _, r := range revs {
		var rating any
		if r.Rating != nil {
			rating = *r.Rating
		}
		var image any
		if r.Image != nil {
			image = *r.Image
		}
		rows.AddRow(r.ID, r.Name, r.City, rating, r.Text, image, r.Approved, r.CreatedAt)
	}
	return rows
}

func TestReviewPostgres_Create(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()
	ctx := context.Background()

	now := time.Now().UTC()
	rating := 5
	image := "uploads/abc.jpg"
	rev := &model.Review{
		Name:     "Asha",
		City:     "Pune",
		Rating:   &rating,
		Text:     "Loved it",
		Image:    &image,
		Approved: true,
	}

	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs("Asha", "Pune", 5, "Loved it", "uploads/abc.jpg", true).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(7), now))

	stored, err := repo.Create(ctx, rev)

	assert.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, int64(7), stored.ID)
	assert.Equal(t, now, stored.CreatedAt)
	assert.Equal(t, "Asha", stored.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewPostgres_Create_NullFields(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()
	ctx := context.Background()

	rev := &model.Review{Name: "Asha", Text: "Loved it"}

	mock.ExpectQuery("INSERT INTO reviews").
		WithArgs("Asha", "", nil, "Loved it", nil, false).
		WillReturnRows(sqlmock.NewRows([]string{"id", "created_at"}).AddRow(int64(1), time.Now()))

	stored, err := repo.Create(ctx, rev)

	assert.NoError(t, err)
	require.NotNil(t, stored)
	assert.Nil(t, stored.Rating)
	assert.Nil(t, stored.Image)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewPostgres_ListApproved(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()
	ctx := context.Background()

	rating := 4
	mock.ExpectQuery("SELECT (.+) FROM reviews WHERE approved = TRUE ORDER BY").
		WillReturnRows(reviewRows(
			model.Review{ID: 2, Name: "B", Text: "t2", Rating: &rating, Approved: true, CreatedAt: time.Now()},
			model.Review{ID: 1, Name: "A", Text: "t1", Approved: true, CreatedAt: time.Now().Add(-time.Hour)},
		))

	items, err := repo.ListApproved(ctx)

	assert.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, int64(2), items[0].ID)
	require.NotNil(t, items[0].Rating)
	assert.Equal(t, 4, *items[0].Rating)
	assert.Nil(t, items[1].Rating)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewPostgres_ListAll(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()
	ctx := context.Background()

	mock.ExpectQuery("SELECT (.+) FROM reviews ORDER BY").
		WillReturnRows(reviewRows(
			model.Review{ID: 3, Name: "C", Text: "t3", Approved: false, CreatedAt: time.Now()},
			model.Review{ID: 2, Name: "B", Text: "t2", Approved: true, CreatedAt: time.Now()},
		))

	items, err := repo.ListAll(ctx)

	assert.NoError(t, err)
	require.Len(t, items, 2)
	assert.False(t, items[0].Approved)
	assert.True(t, items[1].Approved)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestReviewPostgres_FindByID(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		image := "uploads/pic.png"
		mock.ExpectQuery("SELECT (.+) FROM reviews WHERE id = ?").
			WithArgs(int64(5)).
			WillReturnRows(reviewRows(model.Review{ID: 5, Name: "A", Text: "t", Image: &image, CreatedAt: time.Now()}))

		rev, err := repo.FindByID(ctx, 5)

		assert.NoError(t, err)
		require.NotNil(t, rev)
		require.NotNil(t, rev.Image)
		assert.Equal(t, "uploads/pic.png", *rev.Image)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery("SELECT (.+) FROM reviews WHERE id = ?").
			WithArgs(int64(99)).
			WillReturnError(sql.ErrNoRows)

		rev, err := repo.FindByID(ctx, 99)

		assert.ErrorIs(t, err, sql.ErrNoRows)
		assert.Nil(t, rev)
	})
}

func TestReviewPostgres_SetApproved(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectExec("UPDATE reviews SET approved").
			WithArgs(int64(1), true).
			WillReturnResult(sqlmock.NewResult(0, 1))

		found, err := repo.SetApproved(ctx, 1, true)

		assert.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec("UPDATE reviews SET approved").
			WithArgs(int64(42), true).
			WillReturnResult(sqlmock.NewResult(0, 0))

		found, err := repo.SetApproved(ctx, 42, true)

		assert.NoError(t, err)
		assert.False(t, found)
	})
}

func TestReviewPostgres_Delete(t *testing.T) {
	repo, mock, closeFn := newMock(t)
	defer closeFn()
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM reviews WHERE id = ?").
			WithArgs(int64(1)).
			WillReturnResult(sqlmock.NewResult(0, 1))

		found, err := repo.Delete(ctx, 1)

		assert.NoError(t, err)
		assert.True(t, found)
	})

	t.Run("not found", func(t *testing.T) {
		mock.ExpectExec("DELETE FROM reviews WHERE id = ?").
			WithArgs(int64(42)).
			WillReturnResult(sqlmock.NewResult(0, 0))

		found, err := repo.Delete(ctx, 42)

		assert.NoError(t, err)
		assert.False(t, found)
	})
}
