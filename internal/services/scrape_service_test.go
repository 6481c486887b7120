package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"vibenav/internal/models/request_models"
	"vibenav/internal/models/response_models"
	"vibenav/internal/repositories"
	"vibenav/internal/scraper"
	"vibenav/internal/tasks"
	"vibenav/pkg/utils"
)

type fakeSource struct {
	name    string
	reviews []scraper.RawReview
	err     error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Search(ctx context.Context, query string, limit int) ([]scraper.Listing, error) {
	return nil, errors.New("not used by the background flow")
}

func (f *fakeSource) FetchReviews(ctx context.Context, listing scraper.Listing) (scraper.Listing, []scraper.RawReview, error) {
	if f.err != nil {
		return listing, nil, f.err
	}
	return listing, f.reviews, nil
}

type stubSummarizer struct {
	payload string
	called  bool
}

func (s *stubSummarizer) SummarizeReviews(ctx context.Context, reviews []string) string {
	s.called = true
	return s.payload
}

type scrapeFixture struct {
	placeService PlaceServiceInterface
	vibeService  VibeServiceInterface
	service      ScrapeServiceInterface
	summarizer   *stubSummarizer
}

func newScrapeFixture(t *testing.T, gmaps, reddit scraper.Source) *scrapeFixture {
	t.Helper()

	db := newTestDB(t)
	placeRepo := repositories.NewPlaceRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	vibeService := NewVibeService(repositories.NewVibeSummaryRepository(db))
	summarizer := &stubSummarizer{
		payload: `{"summary":"☕ cozy","mood_tags":["cozy","quiet"],"key_themes":["reading"]}`,
	}

	return &scrapeFixture{
		placeService: NewPlaceService(placeRepo, reviewRepo),
		vibeService:  vibeService,
		service: NewScrapeService(
			placeRepo, reviewRepo, vibeService, summarizer,
			gmaps, reddit, tasks.NewManager(),
		),
		summarizer: summarizer,
	}
}

func (f *scrapeFixture) createPlace(t *testing.T) uuid.UUID {
	t.Helper()

	place, err := f.placeService.CreatePlace(context.Background(), request_models.CreatePlaceRequest{
		Name: "Blue Cup", City: "Pune", Category: "cafe",
	})
	require.NoError(t, err)
	return mustUUID(t, place.ID)
}

func (f *scrapeFixture) waitForTask(t *testing.T, taskID string) response_models.TaskStatus {
	t.Helper()

	id := mustUUID(t, taskID)
	var status response_models.TaskStatus
	require.Eventually(t, func() bool {
		var err error
		status, err = f.service.GetTask(context.Background(), id)
		require.NoError(t, err)
		return status.Status == string(tasks.StatusDone) || status.Status == string(tasks.StatusFailed)
	}, 5*time.Second, 10*time.Millisecond)
	return status
}

func strPtr(s string) *string { return &s }

func TestScrapeService_UnknownPlaceStartsNoWork(t *testing.T) {
	f := newScrapeFixture(t, &fakeSource{name: "Google Maps"}, nil)

	_, err := f.service.ScrapeReviews(context.Background(), request_models.ScrapeReviewsRequest{
		PlaceID:       uuid.New(),
		GoogleMapsURL: strPtr("https://www.google.com/maps/place/x"),
	})
	require.True(t, errors.Is(err, utils.ErrPlaceNotFound))
	require.False(t, f.summarizer.called, "no background work for a missing place")
}

func TestScrapeService_ScrapeStoreSummarize(t *testing.T) {
	gmaps := &fakeSource{name: "Google Maps", reviews: []scraper.RawReview{
		{Author: "a", Text: "cozy and quiet"},
		{Author: "b", Text: "loud but fun"},
	}}
	f := newScrapeFixture(t, gmaps, nil)
	placeID := f.createPlace(t)

	accepted, err := f.service.ScrapeReviews(context.Background(), request_models.ScrapeReviewsRequest{
		PlaceID:       placeID,
		GoogleMapsURL: strPtr("https://www.google.com/maps/place/blue-cup"),
	})
	require.NoError(t, err)
	require.NotEmpty(t, accepted.TaskID)

	status := f.waitForTask(t, accepted.TaskID)
	require.Equal(t, string(tasks.StatusDone), status.Status)
	require.Equal(t, 2, status.ReviewsScraped)
	require.True(t, status.SummaryGenerated)

	reviews, err := f.placeService.ListReviews(context.Background(), placeID)
	require.NoError(t, err)
	require.Len(t, reviews, 2)
	require.Equal(t, "Google Maps", reviews[0].Source)

	vibe, err := f.vibeService.GetByPlace(context.Background(), placeID)
	require.NoError(t, err)
	require.Equal(t, "☕ cozy", vibe.Summary)
	require.Equal(t, []string{"cozy", "quiet"}, vibe.MoodTags)
	require.Equal(t, []string{"reading"}, vibe.KeyThemes)
}

func TestScrapeService_OneSourceFailureDoesNotBlockOther(t *testing.T) {
	gmaps := &fakeSource{name: "Google Maps", err: errors.New("timeout on title")}
	reddit := &fakeSource{name: "Reddit", reviews: []scraper.RawReview{
		{Author: "redditor", Text: "hidden gem, great filter coffee"},
	}}
	f := newScrapeFixture(t, gmaps, reddit)
	placeID := f.createPlace(t)

	accepted, err := f.service.ScrapeReviews(context.Background(), request_models.ScrapeReviewsRequest{
		PlaceID:       placeID,
		GoogleMapsURL: strPtr("https://www.google.com/maps/place/blue-cup"),
		RedditURL:     strPtr("https://reddit.com/r/pune/comments/abc/blue_cup"),
	})
	require.NoError(t, err)

	status := f.waitForTask(t, accepted.TaskID)
	require.Equal(t, string(tasks.StatusDone), status.Status)
	require.Equal(t, 1, status.ReviewsScraped)
	require.True(t, status.SummaryGenerated)
	require.Len(t, status.Sources, 2)

	bySource := map[string]response_models.SourceResult{}
	for _, src := range status.Sources {
		bySource[src.Source] = src
	}
	require.Contains(t, bySource["Google Maps"].Error, "timeout on title")
	require.Equal(t, 1, bySource["Reddit"].Reviews)
	require.Empty(t, bySource["Reddit"].Error)
}

func TestScrapeService_NoReviewsSkipsSummarizer(t *testing.T) {
	gmaps := &fakeSource{name: "Google Maps"}
	f := newScrapeFixture(t, gmaps, nil)
	placeID := f.createPlace(t)

	accepted, err := f.service.ScrapeReviews(context.Background(), request_models.ScrapeReviewsRequest{
		PlaceID:       placeID,
		GoogleMapsURL: strPtr("https://www.google.com/maps/place/blue-cup"),
	})
	require.NoError(t, err)

	status := f.waitForTask(t, accepted.TaskID)
	require.Equal(t, string(tasks.StatusDone), status.Status)
	require.False(t, status.SummaryGenerated)
	require.False(t, f.summarizer.called)

	_, err = f.vibeService.GetByPlace(context.Background(), placeID)
	require.True(t, errors.Is(err, utils.ErrVibeNotFound))
}

func TestScrapeService_UnconfiguredSourceReportsError(t *testing.T) {
	f := newScrapeFixture(t, &fakeSource{name: "Google Maps"}, nil)
	placeID := f.createPlace(t)

	accepted, err := f.service.ScrapeReviews(context.Background(), request_models.ScrapeReviewsRequest{
		PlaceID:   placeID,
		RedditURL: strPtr("https://reddit.com/r/pune/comments/abc/blue_cup"),
	})
	require.NoError(t, err)

	status := f.waitForTask(t, accepted.TaskID)
	require.Equal(t, string(tasks.StatusDone), status.Status)
	require.Len(t, status.Sources, 1)
	require.Contains(t, status.Sources[0].Error, "not configured")
}

func TestScrapeService_CreatePlaceAndScrape(t *testing.T) {
	gmaps := &fakeSource{name: "Google Maps", reviews: []scraper.RawReview{
		{Author: "a", Text: "great view of the lake"},
	}}
	f := newScrapeFixture(t, gmaps, nil)

	accepted, err := f.service.CreatePlaceAndScrape(context.Background(), request_models.CreatePlaceAndScrapeRequest{
		Name: "Lakeside", City: "Bhopal", Category: "park",
		GoogleMapsURL: strPtr("https://www.google.com/maps/place/lakeside"),
	})
	require.NoError(t, err)

	placeID := mustUUID(t, accepted.PlaceID)
	place, err := f.placeService.GetPlaceByID(context.Background(), placeID)
	require.NoError(t, err)
	require.Equal(t, "Lakeside", place.Name)

	status := f.waitForTask(t, accepted.TaskID)
	require.Equal(t, string(tasks.StatusDone), status.Status)
	require.Equal(t, 1, status.ReviewsScraped)
}

func TestScrapeService_GetTaskUnknown(t *testing.T) {
	f := newScrapeFixture(t, &fakeSource{name: "Google Maps"}, nil)

	_, err := f.service.GetTask(context.Background(), uuid.New())
	require.True(t, errors.Is(err, utils.ErrTaskNotFound))
}
