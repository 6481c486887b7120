// Package scraper collects location reviews from external platforms and
// normalizes them into a single record shape. Site-specific selectors and
// endpoints are isolated behind the Source interface so markup changes touch
// one file.
package scraper

import "context"

// Listing is a single location or post returned by a source's search step,
// prior to detail extraction.
type Listing struct {
	Query string
	Title string
	URL   string

	// Optional, source dependent.
	Rating  string
	Address string
}

// RawReview is one extracted review or comment.
type RawReview struct {
	Author string
	Text   string
}

// Source is a review platform. Search finds listings for a free-text query;
// FetchReviews extracts the reviews of one listing and returns the listing
// enriched with whatever metadata only the detail page carries.
type Source interface {
	Name() string
	Search(ctx context.Context, query string, limit int) ([]Listing, error)
	FetchReviews(ctx context.Context, listing Listing) (Listing, []RawReview, error)
}

// Record is the normalized output row shared by both sources.
type Record struct {
	Source          string
	Query           string
	LocationName    string
	ReviewText      string
	ReviewAuthor    string
	LocationRating  string
	LocationAddress string
	URL             string
}

// BuildRecords flattens a listing and its reviews into output rows.
func BuildRecords(source string, listing Listing, reviews []RawReview) []Record {
	records := make([]Record, 0, len(reviews))
	for _, rev := range reviews {
		records = append(records, Record{
			Source:          source,
			Query:           listing.Query,
			LocationName:    listing.Title,
			ReviewText:      rev.Text,
			ReviewAuthor:    rev.Author,
			LocationRating:  listing.Rating,
			LocationAddress: listing.Address,
			URL:             listing.URL,
		})
	}
	return records
}
