package scraper

// Record is the structured form of one catalogue detail page. It has no
// identity of its own until the reconciler matches it against storage.
type Record struct {
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Rating       int     `json:"rating"`
	Availability string  `json:"availability"`
	Category     string  `json:"category"`
	ImageURL     string  `json:"image_url"`
}
