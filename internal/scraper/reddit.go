package scraper

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"vibenav/internal/config"
)

const (
	redditAuthURL = "https://www.reddit.com"
	redditAPIURL  = "https://oauth.reddit.com"
	redditLinkURL = "https://reddit.com"
)

// ErrMissingRedditCredentials is returned by NewRedditSource when the client
// id or secret is unset. The scraper CLI treats it as fatal before any work
// starts.
var ErrMissingRedditCredentials = errors.New("reddit API credentials are not set")

// RedditSource queries Reddit's JSON API for posts and comments matching a
// search string, using an app-only OAuth token.
type RedditSource struct {
	cfg    config.Config
	client *http.Client

	authURL string
	apiURL  string

	mu          sync.Mutex
	token       string
	tokenExpiry time.Time
}

func NewRedditSource(cfg config.Config) (*RedditSource, error) {
	if cfg.Reddit.ClientID == "" || cfg.Reddit.ClientSecret == "" {
		return nil, ErrMissingRedditCredentials
	}
	return &RedditSource{
		cfg:     cfg,
		client:  &http.Client{Timeout: 30 * time.Second},
		authURL: redditAuthURL,
		apiURL:  redditAPIURL,
	}, nil
}

func (s *RedditSource) Name() string { return "Reddit" }

// guessSubreddit derives a target community from the query by taking the
// text after the last " in " ("Cafes in Delhi" -> "delhi"), falling back to
// the unscoped r/all.
func guessSubreddit(query string) string {
	parts := strings.Split(strings.ToLower(query), " in ")
	if len(parts) > 1 {
		sub := strings.ReplaceAll(parts[len(parts)-1], " ", "")
		if sub != "" {
			return sub
		}
	}
	return "all"
}

// Search finds posts matching the query in the guessed community, retrying
// against r/all when the community cannot be searched.
func (s *RedditSource) Search(ctx context.Context, query string, limit int) ([]Listing, error) {
	sub := guessSubreddit(query)
	log.Printf("Searching subreddit r/%s for %q", sub, query)

	posts, err := s.searchSubreddit(ctx, sub, query, limit)
	if err != nil && sub != "all" {
		log.Printf("Could not search r/%s, trying r/all: %v", sub, err)
		sub = "all"
		posts, err = s.searchSubreddit(ctx, sub, query, limit)
	}
	if err != nil {
		return nil, err
	}

	listings := make([]Listing, 0, len(posts))
	for _, p := range posts {
		listings = append(listings, Listing{
			Query: query,
			// The post title stands in for a location name.
			Title:   p.Title,
			URL:     redditLinkURL + p.Permalink,
			Rating:  fmt.Sprintf("%d upvotes", p.Score),
			Address: "r/" + sub,
		})
	}
	return listings, nil
}

func (s *RedditSource) searchSubreddit(ctx context.Context, sub, query string, limit int) ([]redditListingData, error) {
	u := fmt.Sprintf("%s/r/%s/search.json?q=%s&limit=%d&sort=relevance&restrict_sr=1&raw_json=1",
		s.apiURL, sub, url.QueryEscape(query), limit)

	var resp redditListing
	if err := s.getJSON(ctx, u, &resp); err != nil {
		return nil, fmt.Errorf("r/%s search: %w", sub, err)
	}

	var posts []redditListingData
	for _, child := range resp.Data.Children {
		if child.Kind != "t3" {
			continue
		}
		posts = append(posts, child.Data)
	}
	return posts, nil
}

// FetchReviews expands the post's comment tree and keeps comments with a
// present author and a body longer than the configured minimum. "Load more"
// placeholders are dropped with the rest of the non-comment children.
func (s *RedditSource) FetchReviews(ctx context.Context, listing Listing) (Listing, []RawReview, error) {
	permalink, err := permalinkFromURL(listing.URL)
	if err != nil {
		return listing, nil, err
	}

	u := fmt.Sprintf("%s%s.json?limit=100&sort=top&raw_json=1", s.apiURL, permalink)

	// Reddit returns [postListing, commentListing].
	var listings []redditListing
	if err := s.getJSON(ctx, u, &listings); err != nil {
		return listing, nil, fmt.Errorf("comments for %s: %w", permalink, err)
	}
	if len(listings) < 2 {
		return listing, nil, nil
	}

	var reviews []RawReview
	for _, child := range listings[1].Data.Children {
		if child.Kind != "t1" {
			continue
		}
		d := child.Data
		if d.Author == "" || d.Author == "[deleted]" {
			continue
		}
		if utf8.RuneCountInString(d.Body) <= s.cfg.Scraper.MinCommentLength {
			continue
		}
		reviews = append(reviews, RawReview{Author: d.Author, Text: d.Body})
		if len(reviews) >= s.cfg.Scraper.CommentsPerPost {
			break
		}
	}
	return listing, reviews, nil
}

func permalinkFromURL(raw string) (string, error) {
	u, err := url.Parse(raw)
	if err != nil || u.Path == "" {
		return "", fmt.Errorf("bad reddit url %q", raw)
	}
	return strings.TrimSuffix(u.Path, "/"), nil
}

// accessToken fetches (or reuses) an app-only OAuth token.
func (s *RedditSource) accessToken(ctx context.Context) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.token != "" && time.Now().Before(s.tokenExpiry) {
		return s.token, nil
	}

	form := strings.NewReader("grant_type=client_credentials")
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.authURL+"/api/v1/access_token", form)
	if err != nil {
		return "", err
	}
	req.SetBasicAuth(s.cfg.Reddit.ClientID, s.cfg.Reddit.ClientSecret)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("User-Agent", s.cfg.Reddit.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("token request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("token request: http %d", resp.StatusCode)
	}

	var body struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode token: %w", err)
	}
	if body.AccessToken == "" {
		return "", errors.New("token response missing access_token")
	}

	s.token = body.AccessToken
	s.tokenExpiry = time.Now().Add(time.Duration(body.ExpiresIn-60) * time.Second)
	return s.token, nil
}

func (s *RedditSource) getJSON(ctx context.Context, url string, out interface{}) error {
	token, err := s.accessToken(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("User-Agent", s.cfg.Reddit.UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d from %s", resp.StatusCode, url)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// Reddit JSON API response types

type redditListing struct {
	Data struct {
		Children []redditChild `json:"children"`
	} `json:"data"`
}

type redditChild struct {
	Kind string            `json:"kind"`
	Data redditListingData `json:"data"`
}

type redditListingData struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Author    string `json:"author"`
	Body      string `json:"body"`
	Permalink string `json:"permalink"`
	Score     int    `json:"score"`
}
