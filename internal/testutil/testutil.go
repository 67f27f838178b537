// Package testutil holds small fixtures shared across package tests.
package testutil

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"bookscrape/internal/auth"
	"bookscrape/internal/scraper"
)

// Records builds n distinct in-stock catalogue records.
func Records(n int) []scraper.Record {
	out := make([]scraper.Record, 0, n)
	for i := 1; i <= n; i++ {
		out = append(out, scraper.Record{
			Title:        fmt.Sprintf("Book %03d", i),
			Price:        10 + float64(i),
			Rating:       i%5 + 1,
			Availability: "In stock (22 available)",
			Category:     "Fiction",
			ImageURL:     fmt.Sprintf("https://example.test/media/%03d.jpg", i),
		})
	}
	return out
}

// BearerToken signs a short-lived token and returns it as an Authorization
// header value.
func BearerToken(t *testing.T, secret string) string {
	t.Helper()
	token, err := auth.GenerateToken(secret, "user-1", "USER", time.Hour)
	require.NoError(t, err)
	return "Bearer " + token
}
