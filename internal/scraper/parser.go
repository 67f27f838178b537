package scraper

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ratingWords maps the star-rating class word on a detail page to its value.
var ratingWords = map[string]int{
	"One":   1,
	"Two":   2,
	"Three": 3,
	"Four":  4,
	"Five":  5,
}

// RatingFromWord converts the site's star-rating word; anything unknown is 0.
func RatingFromWord(word string) int {
	return ratingWords[word]
}

// CleanTitle strips the field delimiter so titles can never corrupt the CSV
// artifact.
func CleanTitle(title string) string {
	return strings.TrimSpace(strings.ReplaceAll(title, ",", ""))
}

// Listing is the parsed form of one catalogue listing page.
type Listing struct {
	ItemLinks []string
	NextPage  string
}

// ParseListing extracts detail links in document order plus the next-page
// link, both resolved against pageURL. An empty NextPage marks the final
// page.
func ParseListing(body []byte, pageURL string) (Listing, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return Listing{}, &ParseError{URL: pageURL, Err: err}
	}
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Listing{}, &ParseError{URL: pageURL, Err: err}
	}

	var listing Listing
	doc.Find("h3 a").Each(func(_ int, s *goquery.Selection) {
		href, ok := s.Attr("href")
		if !ok {
			return
		}
		if ref, err := base.Parse(href); err == nil {
			listing.ItemLinks = append(listing.ItemLinks, ref.String())
		}
	})

	if href, ok := doc.Find("li.next a").First().Attr("href"); ok {
		if ref, err := base.Parse(href); err == nil {
			listing.NextPage = ref.String()
		}
	}
	return listing, nil
}

// ParseItem extracts a Record from one detail page. The gallery image is
// served relative to the site root, so siteBase anchors it.
func ParseItem(body []byte, itemURL, siteBase string) (Record, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return Record{}, &ParseError{URL: itemURL, Err: err}
	}

	title := CleanTitle(doc.Find("h1").First().Text())
	if title == "" {
		return Record{}, &ParseError{URL: itemURL, Err: errors.New("missing title")}
	}

	priceText := strings.TrimSpace(doc.Find("p.price_color").First().Text())
	if priceText == "" {
		return Record{}, &ParseError{URL: itemURL, Err: errors.New("missing price")}
	}
	// The site serves "£51.77"; a mis-decoded page prepends a stray "Â".
	priceText = strings.NewReplacer("£", "", "Â", "").Replace(priceText)
	price, err := strconv.ParseFloat(priceText, 64)
	if err != nil {
		return Record{}, &ParseError{URL: itemURL, Err: fmt.Errorf("bad price %q: %w", priceText, err)}
	}

	rating := 0
	if cls, ok := doc.Find("p.star-rating").First().Attr("class"); ok {
		if parts := strings.Fields(cls); len(parts) > 0 {
			rating = RatingFromWord(parts[len(parts)-1])
		}
	}

	availability := strings.TrimSpace(doc.Find("p.instock.availability").First().Text())
	if availability == "" {
		availability = "N/A"
	}

	category := strings.TrimSpace(doc.Find("ul.breadcrumb li:nth-of-type(3) a").First().Text())
	if category == "" {
		category = "N/A"
	}

	src, ok := doc.Find("#product_gallery .item img").First().Attr("src")
	if !ok {
		return Record{}, &ParseError{URL: itemURL, Err: errors.New("missing gallery image")}
	}
	base, err := url.Parse(siteBase)
	if err != nil {
		return Record{}, &ParseError{URL: itemURL, Err: err}
	}
	img, err := base.Parse(src)
	if err != nil {
		return Record{}, &ParseError{URL: itemURL, Err: err}
	}

	return Record{
		Title:        title,
		Price:        price,
		Rating:       rating,
		Availability: availability,
		Category:     category,
		ImageURL:     img.String(),
	}, nil
}
