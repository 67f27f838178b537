package book

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bookscrape/internal/scraper"
	"bookscrape/internal/testutil"
)

// memRepo is an in-memory Repository keyed by title, enough to observe what
// the reconciler writes.
type memRepo struct {
	byTitle map[string]Book
	nextID  int64
	failOn  map[string]error
	inserts int
	updates int
}

func newMemRepo() *memRepo {
	return &memRepo{byTitle: map[string]Book{}, failOn: map[string]error{}}
}

func (m *memRepo) GetByTitle(_ context.Context, title string) (Book, error) {
	if err := m.failOn[title]; err != nil {
		return Book{}, err
	}
	b, ok := m.byTitle[title]
	if !ok {
		return Book{}, ErrNotFound
	}
	return b, nil
}

func (m *memRepo) Insert(_ context.Context, b *Book) error {
	m.nextID++
	b.ID = m.nextID
	m.byTitle[b.Title] = *b
	m.inserts++
	return nil
}

func (m *memRepo) Update(_ context.Context, b *Book) error {
	m.byTitle[b.Title] = *b
	m.updates++
	return nil
}

func (m *memRepo) List(context.Context, Query) ([]Book, int, error)      { return nil, 0, nil }
func (m *memRepo) GetByID(context.Context, int64) (Book, error)          { return Book{}, ErrNotFound }
func (m *memRepo) Categories(context.Context, int, int) ([]string, int, error) {
	return nil, 0, nil
}
func (m *memRepo) CountBooks(context.Context) (int, error)      { return len(m.byTitle), nil }
func (m *memRepo) CountCategories(context.Context) (int, error) { return 0, nil }

func TestReconciler_InsertsNewRecords(t *testing.T) {
	repo := newMemRepo()
	rec := NewReconciler(repo, zerolog.Nop())

	records := testutil.Records(5)
	saved := rec.Reconcile(context.Background(), records)

	assert.Equal(t, 5, saved)
	assert.Equal(t, 5, repo.inserts)
	assert.Equal(t, 0, repo.updates)

	b, ok := repo.byTitle["Book 001"]
	require.True(t, ok)
	assert.Equal(t, 11.0, b.Price)
	assert.True(t, b.Availability)
	require.NotNil(t, b.Image)
	assert.Equal(t, records[0].ImageURL, *b.Image)
}

func TestReconciler_UpdatesExistingByTitle(t *testing.T) {
	repo := newMemRepo()
	rec := NewReconciler(repo, zerolog.Nop())

	first := testutil.Records(1)
	rec.Reconcile(context.Background(), first)

	changed := first
	changed[0].Price = 99.99
	changed[0].Rating = 5
	changed[0].Availability = "Out of stock"
	saved := rec.Reconcile(context.Background(), changed)

	assert.Equal(t, 1, saved)
	assert.Equal(t, 1, repo.inserts)
	assert.Equal(t, 1, repo.updates)

	b := repo.byTitle["Book 001"]
	assert.Equal(t, 99.99, b.Price)
	assert.Equal(t, 5, b.Rating)
	assert.False(t, b.Availability)
	assert.Equal(t, int64(1), b.ID)
}

func TestReconciler_AvailabilityDerivation(t *testing.T) {
	repo := newMemRepo()
	rec := NewReconciler(repo, zerolog.Nop())

	records := []scraper.Record{
		{Title: "In", Price: 1, Availability: "In stock (3 available)"},
		{Title: "Out", Price: 1, Availability: "Out of stock"},
		{Title: "Unknown", Price: 1, Availability: "N/A"},
	}
	rec.Reconcile(context.Background(), records)

	assert.True(t, repo.byTitle["In"].Availability)
	assert.False(t, repo.byTitle["Out"].Availability)
	assert.False(t, repo.byTitle["Unknown"].Availability)
}

func TestReconciler_SkipsFailingRecord(t *testing.T) {
	repo := newMemRepo()
	repo.failOn["Book 002"] = errors.New("connection reset")
	rec := NewReconciler(repo, zerolog.Nop())

	saved := rec.Reconcile(context.Background(), testutil.Records(3))

	assert.Equal(t, 2, saved)
	assert.NotContains(t, repo.byTitle, "Book 002")
}

func TestReconciler_EmptyImageStoredAsNull(t *testing.T) {
	repo := newMemRepo()
	rec := NewReconciler(repo, zerolog.Nop())

	rec.Reconcile(context.Background(), []scraper.Record{{Title: "NoImage", Price: 2}})

	assert.Nil(t, repo.byTitle["NoImage"].Image)
}
