package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/rs/zerolog"

	"bookscrape/internal/scraper"
)

// Columns is the fixed artifact column order.
var Columns = []string{"title", "price", "rating", "availability", "category", "image_url"}

// Writer serializes a crawl's record set to a CSV artifact.
type Writer struct {
	log zerolog.Logger
}

func NewWriter(log zerolog.Logger) *Writer {
	return &Writer{log: log.With().Str("component", "export").Logger()}
}

// Export writes records to dest, creating parent directories as needed. It
// returns false when there is nothing to write or the write fails; callers
// treat false as "no artifact produced", never as a crawl failure.
func (w *Writer) Export(records []scraper.Record, dest string) bool {
	if len(records) == 0 {
		w.log.Warn().Msg("no records to export")
		return false
	}

	if dir := filepath.Dir(dest); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			w.log.Error().Err(err).Str("path", dest).Msg("cannot create export directory")
			return false
		}
	}

	f, err := os.Create(dest)
	if err != nil {
		w.log.Error().Err(err).Str("path", dest).Msg("cannot create export file")
		return false
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(Columns); err != nil {
		w.log.Error().Err(err).Msg("cannot write csv header")
		return false
	}
	for _, rec := range records {
		row := []string{
			rec.Title,
			strconv.FormatFloat(rec.Price, 'f', 2, 64),
			strconv.Itoa(rec.Rating),
			rec.Availability,
			rec.Category,
			rec.ImageURL,
		}
		if err := cw.Write(row); err != nil {
			w.log.Error().Err(err).Msg("cannot write csv row")
			return false
		}
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		w.log.Error().Err(err).Str("path", dest).Msg("cannot flush csv")
		return false
	}

	w.log.Info().Str("path", dest).Int("records", len(records)).Msg("export written")
	return true
}
