package scraper

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// notAvailable is written for optional fields a source could not provide.
const notAvailable = "N/A"

var csvColumns = []string{
	"source", "query", "location_name", "review_text", "review_author",
	"location_rating", "location_address", "url",
}

// WriteCSV writes records with the fixed column order shared by all sources.
func WriteCSV(w io.Writer, records []Record) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvColumns); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for _, r := range records {
		row := []string{
			orNA(r.Source),
			orNA(r.Query),
			orNA(r.LocationName),
			orNA(r.ReviewText),
			orNA(r.ReviewAuthor),
			orNA(r.LocationRating),
			orNA(r.LocationAddress),
			orNA(r.URL),
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("write record: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// SaveCSV writes records to a file, replacing any previous content.
func SaveCSV(path string, records []Record) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	return WriteCSV(f, records)
}

func orNA(s string) string {
	if s == "" {
		return notAvailable
	}
	return s
}
