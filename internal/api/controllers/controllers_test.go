package controllers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"vibenav/internal/models/db_models"
	"vibenav/internal/repositories"
	"vibenav/internal/scraper"
	"vibenav/internal/services"
	"vibenav/internal/tasks"
	"vibenav/pkg/middleware"
	"vibenav/pkg/utils"
)

type staticSource struct {
	reviews []scraper.RawReview
}

func (s *staticSource) Name() string { return "Google Maps" }

func (s *staticSource) Search(ctx context.Context, query string, limit int) ([]scraper.Listing, error) {
	return nil, errors.New("not used")
}

func (s *staticSource) FetchReviews(ctx context.Context, listing scraper.Listing) (scraper.Listing, []scraper.RawReview, error) {
	return listing, s.reviews, nil
}

type staticSummarizer struct{ payload string }

func (s *staticSummarizer) SummarizeReviews(ctx context.Context, reviews []string) string {
	return s.payload
}

func newTestRouter(t *testing.T, gmaps scraper.Source) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&db_models.Place{}, &db_models.Review{}, &db_models.VibeSummary{}))

	placeRepo := repositories.NewPlaceRepository(db)
	reviewRepo := repositories.NewReviewRepository(db)
	vibeService := services.NewVibeService(repositories.NewVibeSummaryRepository(db))
	placeService := services.NewPlaceService(placeRepo, reviewRepo)
	scrapeService := services.NewScrapeService(
		placeRepo, reviewRepo, vibeService,
		&staticSummarizer{payload: `{"summary":"☕ cozy","mood_tags":["cozy","quiet"],"key_themes":["reading"]}`},
		gmaps, nil, tasks.NewManager(),
	)

	placesController := NewPlacesController(placeService, vibeService)
	scrapeController := NewScrapeController(scrapeService)

	r := gin.New()
	r.Use(middleware.TraceIDMiddleware())

	placesGroup := r.Group("/places")
	placesGroup.GET("/", placesController.ListPlaces)
	placesGroup.POST("/", placesController.CreatePlace)
	placesGroup.GET("/:id", placesController.GetPlaceByID)
	placesGroup.GET("/:id/reviews", placesController.ListReviews)
	placesGroup.GET("/:id/vibe", placesController.GetVibe)
	r.GET("/search/", placesController.SearchPlaces)
	r.POST("/scrape/reviews", scrapeController.ScrapeReviews)
	r.POST("/scrape/place-and-reviews", scrapeController.CreatePlaceAndScrape)
	r.GET("/tasks/:id", scrapeController.GetTask)

	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) (*httptest.ResponseRecorder, utils.APIResponse) {
	t.Helper()

	var reader *bytes.Buffer
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewBuffer(data)
	} else {
		reader = &bytes.Buffer{}
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var resp utils.APIResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func createPlaceViaAPI(t *testing.T, r *gin.Engine, name, city, category string) string {
	t.Helper()

	w, resp := doJSON(t, r, http.MethodPost, "/places/", gin.H{
		"name": name, "city": city, "category": category,
	})
	require.Equal(t, http.StatusOK, w.Code)

	data, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	id, ok := data["id"].(string)
	require.True(t, ok)
	return id
}

func TestCreatePlace_RequiresFields(t *testing.T) {
	r := newTestRouter(t, &staticSource{})

	w, resp := doJSON(t, r, http.MethodPost, "/places/", gin.H{"name": "Blue Cup"})
	require.Equal(t, http.StatusBadRequest, w.Code)
	require.Equal(t, "error", resp.Status)
}

func TestGetPlace_NotFound(t *testing.T) {
	r := newTestRouter(t, &staticSource{})

	w, _ := doJSON(t, r, http.MethodGet, "/places/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetVibe_NotFoundBeforeScrape(t *testing.T) {
	r := newTestRouter(t, &staticSource{})
	id := createPlaceViaAPI(t, r, "Blue Cup", "Pune", "cafe")

	w, resp := doJSON(t, r, http.MethodGet, "/places/"+id+"/vibe", nil)
	require.Equal(t, http.StatusNotFound, w.Code)
	require.Contains(t, resp.Message, "Scrape reviews first")
}

func TestScrapeReviews_UnknownPlace404(t *testing.T) {
	r := newTestRouter(t, &staticSource{})

	w, _ := doJSON(t, r, http.MethodPost, "/scrape/reviews", gin.H{
		"place_id":        uuid.NewString(),
		"google_maps_url": "https://www.google.com/maps/place/x",
	})
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestScrapeFlow_EndToEnd(t *testing.T) {
	source := &staticSource{reviews: []scraper.RawReview{
		{Author: "a", Text: "cozy and quiet"},
		{Author: "b", Text: "loud but fun"},
	}}
	r := newTestRouter(t, source)
	id := createPlaceViaAPI(t, r, "Blue Cup", "Pune", "cafe")

	w, resp := doJSON(t, r, http.MethodPost, "/scrape/reviews", gin.H{
		"place_id":        id,
		"google_maps_url": "https://www.google.com/maps/place/blue-cup",
	})
	require.Equal(t, http.StatusAccepted, w.Code)

	data := resp.Data.(map[string]interface{})
	taskID := data["task_id"].(string)
	require.NotEmpty(t, taskID)

	// The trigger returns before the background job finishes; poll the task.
	require.Eventually(t, func() bool {
		_, taskResp := doJSON(t, r, http.MethodGet, "/tasks/"+taskID, nil)
		task, ok := taskResp.Data.(map[string]interface{})
		return ok && task["status"] == "done"
	}, 5*time.Second, 10*time.Millisecond)

	w, resp = doJSON(t, r, http.MethodGet, "/places/"+id+"/vibe", nil)
	require.Equal(t, http.StatusOK, w.Code)
	vibe := resp.Data.(map[string]interface{})
	require.Equal(t, "☕ cozy", vibe["summary"])
	require.Equal(t, id, vibe["place_id"])

	w, resp = doJSON(t, r, http.MethodGet, "/places/"+id+"/reviews", nil)
	require.Equal(t, http.StatusOK, w.Code)
	reviews := resp.Data.([]interface{})
	require.Len(t, reviews, 2)
}

func TestListPlaces_CityFilter(t *testing.T) {
	r := newTestRouter(t, &staticSource{})
	createPlaceViaAPI(t, r, "Blue Cup", "Pune", "cafe")
	createPlaceViaAPI(t, r, "Night Owl", "Mumbai", "bar")

	w, resp := doJSON(t, r, http.MethodGet, "/places/?city=Pune", nil)
	require.Equal(t, http.StatusOK, w.Code)
	places := resp.Data.([]interface{})
	require.Len(t, places, 1)
	require.Equal(t, "Blue Cup", places[0].(map[string]interface{})["name"])
}

func TestSearch_MatchesNameCaseInsensitively(t *testing.T) {
	r := newTestRouter(t, &staticSource{})
	createPlaceViaAPI(t, r, "Blue Cup", "Pune", "cafe")

	w, resp := doJSON(t, r, http.MethodGet, "/search/?query=blue", nil)
	require.Equal(t, http.StatusOK, w.Code)

	data := resp.Data.(map[string]interface{})
	require.Equal(t, "blue", data["query"])
	results := data["results"].([]interface{})
	require.Len(t, results, 1)
}

func TestGetTask_Unknown404(t *testing.T) {
	r := newTestRouter(t, &staticSource{})

	w, _ := doJSON(t, r, http.MethodGet, "/tasks/"+uuid.NewString(), nil)
	require.Equal(t, http.StatusNotFound, w.Code)
}
