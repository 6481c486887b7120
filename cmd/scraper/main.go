// Command scraper collects location reviews from a single platform and
// writes them to a CSV file ready for the summarizer pipeline.
//
// Usage:
//
//	scraper gmaps "Cafes in Delhi" --limit 10
//	scraper reddit "Best quiet parks in Bangalore" --limit 5 --output parks.csv
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"vibenav/internal/config"
	"vibenav/internal/scraper"
)

const defaultOutput = "vibe_navigator_data.csv"

func main() {
	if len(os.Args) < 3 {
		usage()
		os.Exit(2)
	}

	platform := os.Args[1]
	query := os.Args[2]

	fs := flag.NewFlagSet("scraper", flag.ExitOnError)
	limit := fs.Int("limit", 10, "max number of locations (gmaps) or posts (reddit) to scrape")
	output := fs.String("output", defaultOutput, "name of the output CSV file")
	if err := fs.Parse(os.Args[3:]); err != nil {
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from environment")
	}
	cfg := config.Load()

	var source scraper.Source
	switch platform {
	case "gmaps":
		source = scraper.NewGoogleMapsSource(cfg.Scraper)
	case "reddit":
		redditSource, err := scraper.NewRedditSource(cfg)
		if err != nil {
			// Missing credentials are fatal before any work starts.
			log.Fatalf("Cannot scrape Reddit: %v", err)
		}
		source = redditSource
	default:
		usage()
		os.Exit(2)
	}

	log.Printf("--- Vibe Navigator Scraper ---")
	log.Printf("Platform: %s", platform)
	log.Printf("Query: %s", query)
	log.Printf("Limit: %d", *limit)

	records := collect(context.Background(), source, query, *limit)
	if len(records) == 0 {
		log.Println("No data was collected, CSV file will not be created")
		return
	}

	if err := scraper.SaveCSV(*output, records); err != nil {
		log.Fatalf("Failed to save CSV: %v", err)
	}
	log.Printf("Data saved to %s. Total records: %d", *output, len(records))
}

// collect runs the search-then-detail pipeline. Per-listing failures are
// logged and skipped; they reduce the result count but never abort the run.
func collect(ctx context.Context, source scraper.Source, query string, limit int) []scraper.Record {
	listings, err := source.Search(ctx, query, limit)
	if err != nil {
		log.Printf("Search failed: %v", err)
		return nil
	}

	var records []scraper.Record
	for _, listing := range listings {
		enriched, reviews, err := source.FetchReviews(ctx, listing)
		if err != nil {
			log.Printf("Skipping %s: %v", listing.URL, err)
			continue
		}
		records = append(records, scraper.BuildRecords(source.Name(), enriched, reviews)...)
	}
	return records
}

func usage() {
	fmt.Fprintf(os.Stderr, "usage: %s {gmaps|reddit} \"<query>\" [--limit N] [--output file.csv]\n", os.Args[0])
}
