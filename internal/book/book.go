package book

import (
	"errors"
	"time"
)

// ErrNotFound is returned when a book is not found.
var ErrNotFound = errors.New("book not found")

// Book is a catalog entity. Title is the natural key: reconciliation never
// creates two rows with the same title, and the engine never deletes rows.
type Book struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Price        float64   `json:"price"`
	Rating       int       `json:"rating"`
	Availability bool      `json:"availability"`
	Category     string    `json:"category"`
	Image        *string   `json:"image"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Query defines filters and pagination for listing books.
type Query struct {
	Title    string
	Category string
	Limit    int
	Offset   int
}
