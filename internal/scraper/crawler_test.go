package scraper

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// catalogueServer serves a fake catalogue: pages listing pages with
// perPage detail links each, chained by next links.
func catalogueServer(t *testing.T, pages, perPage int, broken map[string]bool) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	for p := 1; p <= pages; p++ {
		var b strings.Builder
		for i := 1; i <= perPage; i++ {
			fmt.Fprintf(&b, `<h3><a href="book-%d-%d/index.html">Book %d-%d</a></h3>`, p, i, p, i)
		}
		if p < pages {
			fmt.Fprintf(&b, `<ul class="pager"><li class="next"><a href="page-%d.html">next</a></li></ul>`, p+1)
		}
		listing := "<html><body>" + b.String() + "</body></html>"
		mux.HandleFunc(fmt.Sprintf("/catalogue/page-%d.html", p), func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(listing))
		})

		for i := 1; i <= perPage; i++ {
			name := fmt.Sprintf("book-%d-%d", p, i)
			detail := fmt.Sprintf(`<html><body>
				<ul class="breadcrumb"><li><a>Home</a></li><li><a>Books</a></li><li><a>Poetry</a></li></ul>
				<div id="product_gallery"><div class="item"><img src="media/%s.jpg"></div></div>
				<h1>Title %d-%d</h1>
				<p class="price_color">£%d.50</p>
				<p class="star-rating Two"></p>
				<p class="instock availability">In stock</p>
			</body></html>`, name, p, i, i)
			mux.HandleFunc(fmt.Sprintf("/catalogue/%s/index.html", name), func(w http.ResponseWriter, r *http.Request) {
				if broken[name] {
					w.WriteHeader(http.StatusInternalServerError)
					return
				}
				_, _ = w.Write([]byte(detail))
			})
		}
	}
	return httptest.NewServer(mux)
}

func newTestCrawler(t *testing.T, baseURL string) *Crawler {
	t.Helper()
	c, err := NewCrawler(NewFetcher(5*time.Second, 0), baseURL, 4, zerolog.Nop())
	require.NoError(t, err)
	return c
}

func TestCrawler_Run(t *testing.T) {
	srv := catalogueServer(t, 3, 5, nil)
	defer srv.Close()

	c := newTestCrawler(t, srv.URL+"/")
	records, err := c.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 15)

	// Listing-link order is preserved across pages.
	assert.Equal(t, "Title 1-1", records[0].Title)
	assert.Equal(t, "Title 1-5", records[4].Title)
	assert.Equal(t, "Title 2-1", records[5].Title)
	assert.Equal(t, "Title 3-5", records[14].Title)

	for _, rec := range records {
		assert.Equal(t, 2, rec.Rating)
		assert.Equal(t, "Poetry", rec.Category)
		assert.Contains(t, rec.ImageURL, srv.URL+"/media/")
	}
}

func TestCrawler_SkipsFailingDetailPage(t *testing.T) {
	srv := catalogueServer(t, 1, 5, map[string]bool{"book-1-3": true})
	defer srv.Close()

	c := newTestCrawler(t, srv.URL+"/")
	records, err := c.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 4)

	for _, rec := range records {
		assert.NotEqual(t, "Title 1-3", rec.Title)
	}
}

func TestCrawler_ListingFailureAborts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	c := newTestCrawler(t, srv.URL+"/")
	records, err := c.Run(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "listing page")
	assert.Nil(t, records)
}

func TestCrawler_InvalidBaseURL(t *testing.T) {
	_, err := NewCrawler(NewFetcher(time.Second, 0), "://not-a-url", 1, zerolog.Nop())
	assert.Error(t, err)
}
