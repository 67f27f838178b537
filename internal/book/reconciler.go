package book

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"bookscrape/internal/scraper"
)

// inStockMarker is the availability substring that means the item can be
// bought.
const inStockMarker = "In stock"

// Reconciler merges crawl output into the catalog, matching by title. It is
// the only component that writes book rows.
type Reconciler struct {
	repo Repository
	log  zerolog.Logger
}

func NewReconciler(repo Repository, log zerolog.Logger) *Reconciler {
	return &Reconciler{
		repo: repo,
		log:  log.With().Str("component", "reconciler").Logger(),
	}
}

// Reconcile upserts each record independently and returns how many were
// created or updated. Each record is its own statement: one bad record never
// aborts the rest of the batch, so the return may be less than len(records).
func (r *Reconciler) Reconcile(ctx context.Context, records []scraper.Record) int {
	saved := 0
	for _, rec := range records {
		if err := r.reconcileOne(ctx, rec); err != nil {
			r.log.Error().Err(err).Str("title", rec.Title).Msg("skipping record")
			continue
		}
		saved++
	}
	return saved
}

func (r *Reconciler) reconcileOne(ctx context.Context, rec scraper.Record) error {
	existing, err := r.repo.GetByTitle(ctx, rec.Title)
	switch {
	case err == nil:
		existing.Price = rec.Price
		existing.Rating = rec.Rating
		existing.Availability = strings.Contains(rec.Availability, inStockMarker)
		existing.Category = rec.Category
		existing.Image = imagePtr(rec.ImageURL)
		return r.repo.Update(ctx, &existing)
	case errors.Is(err, ErrNotFound):
		b := Book{
			Title:        rec.Title,
			Price:        rec.Price,
			Rating:       rec.Rating,
			Availability: strings.Contains(rec.Availability, inStockMarker),
			Category:     rec.Category,
			Image:        imagePtr(rec.ImageURL),
		}
		return r.repo.Insert(ctx, &b)
	default:
		return err
	}
}

func imagePtr(u string) *string {
	if u == "" {
		return nil
	}
	return &u
}
