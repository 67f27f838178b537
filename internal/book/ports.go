package book

import (
	"context"
)

// Repository defines the contract for catalog storage. The reconciler is the
// only writer; everything else reads.
type Repository interface {
	List(ctx context.Context, q Query) ([]Book, int, error)
	GetByID(ctx context.Context, id int64) (Book, error)
	GetByTitle(ctx context.Context, title string) (Book, error)
	Insert(ctx context.Context, b *Book) error
	Update(ctx context.Context, b *Book) error
	Categories(ctx context.Context, limit, offset int) ([]string, int, error)
	CountBooks(ctx context.Context) (int, error)
	CountCategories(ctx context.Context) (int, error)
}
