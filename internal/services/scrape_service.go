package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"vibenav/internal/models/db_models"
	"vibenav/internal/models/request_models"
	"vibenav/internal/models/response_models"
	"vibenav/internal/repositories"
	"vibenav/internal/scraper"
	"vibenav/internal/tasks"
	"vibenav/pkg/utils"
)

// jobTimeout bounds one whole background scrape-and-summarize run.
const jobTimeout = 10 * time.Minute

type ScrapeServiceInterface interface {
	ScrapeReviews(ctx context.Context, req request_models.ScrapeReviewsRequest) (response_models.ScrapeAccepted, error)
	CreatePlaceAndScrape(ctx context.Context, req request_models.CreatePlaceAndScrapeRequest) (response_models.ScrapeAccepted, error)
	GetTask(ctx context.Context, id uuid.UUID) (response_models.TaskStatus, error)
}

// ScrapeService validates scrape triggers, enqueues the detached background
// job and aggregates per-source outcomes on the task record.
type ScrapeService struct {
	placeRepo  repositories.PlaceRepository
	reviewRepo repositories.ReviewRepository
	vibe       VibeServiceInterface
	summarizer utils.VibeClientInterface
	gmaps      scraper.Source
	reddit     scraper.Source
	tasks      *tasks.Manager
}

func NewScrapeService(
	placeRepo repositories.PlaceRepository,
	reviewRepo repositories.ReviewRepository,
	vibe VibeServiceInterface,
	summarizer utils.VibeClientInterface,
	gmaps scraper.Source,
	reddit scraper.Source,
	taskManager *tasks.Manager,
) ScrapeServiceInterface {
	return &ScrapeService{
		placeRepo:  placeRepo,
		reviewRepo: reviewRepo,
		vibe:       vibe,
		summarizer: summarizer,
		gmaps:      gmaps,
		reddit:     reddit,
		tasks:      taskManager,
	}
}

type sourceJob struct {
	name   string
	source scraper.Source
	url    string
}

func (s *ScrapeService) buildJobs(gmapsURL, redditURL *string) []sourceJob {
	var jobs []sourceJob
	if gmapsURL != nil && *gmapsURL != "" {
		jobs = append(jobs, sourceJob{name: "Google Maps", source: s.gmaps, url: *gmapsURL})
	}
	if redditURL != nil && *redditURL != "" {
		jobs = append(jobs, sourceJob{name: "Reddit", source: s.reddit, url: *redditURL})
	}
	return jobs
}

func (s *ScrapeService) ScrapeReviews(ctx context.Context, req request_models.ScrapeReviewsRequest) (response_models.ScrapeAccepted, error) {
	place, err := s.placeRepo.GetByID(ctx, req.PlaceID)
	if err != nil {
		log.Printf("Error fetching place: %v", err)
		return response_models.ScrapeAccepted{}, utils.ErrDatabaseError
	}
	if place == nil {
		return response_models.ScrapeAccepted{}, utils.ErrPlaceNotFound
	}

	task := s.tasks.Create(place.ID)
	go s.run(task.ID, place.ID, place.Name, s.buildJobs(req.GoogleMapsURL, req.RedditURL))

	return response_models.ScrapeAccepted{
		TaskID:  task.ID.String(),
		PlaceID: place.ID.String(),
		Message: fmt.Sprintf("Started scraping reviews for %s. This runs in the background.", place.Name),
	}, nil
}

func (s *ScrapeService) CreatePlaceAndScrape(ctx context.Context, req request_models.CreatePlaceAndScrapeRequest) (response_models.ScrapeAccepted, error) {
	place := &db_models.Place{
		Name:      req.Name,
		City:      req.City,
		Category:  req.Category,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}
	placeID, err := s.placeRepo.Create(ctx, place)
	if err != nil {
		log.Printf("Error creating place: %v", err)
		return response_models.ScrapeAccepted{}, fmt.Errorf("error creating place: %w", err)
	}

	task := s.tasks.Create(placeID)
	go s.run(task.ID, placeID, req.Name, s.buildJobs(req.GoogleMapsURL, req.RedditURL))

	return response_models.ScrapeAccepted{
		TaskID:  task.ID.String(),
		PlaceID: placeID.String(),
		Message: fmt.Sprintf("Created place '%s' with ID %s and started scraping reviews.", req.Name, placeID),
	}, nil
}

func (s *ScrapeService) GetTask(ctx context.Context, id uuid.UUID) (response_models.TaskStatus, error) {
	task := s.tasks.Get(id)
	if task == nil {
		return response_models.TaskStatus{}, utils.ErrTaskNotFound
	}

	status := response_models.TaskStatus{
		ID:               task.ID.String(),
		PlaceID:          task.PlaceID.String(),
		Status:           string(task.Status),
		Sources:          make([]response_models.SourceResult, 0, len(task.Sources)),
		ReviewsScraped:   task.ReviewsScraped,
		SummaryGenerated: task.SummaryGenerated,
	}
	if task.Err != nil {
		status.Error = task.Err.Error()
	}
	for _, src := range task.Sources {
		res := response_models.SourceResult{Source: src.Source, Reviews: src.Reviews}
		if src.Err != nil {
			res.Error = src.Err.Error()
		}
		status.Sources = append(status.Sources, res)
	}
	return status, nil
}

// run is the detached scrape-and-store job. It runs after the triggering
// request has returned; failures land on the task record, never on a caller.
func (s *ScrapeService) run(taskID, placeID uuid.UUID, placeName string, jobs []sourceJob) {
	ctx, cancel := context.WithTimeout(context.Background(), jobTimeout)
	defer cancel()

	s.tasks.MarkRunning(taskID)

	var collected []string
	for _, job := range jobs {
		texts, err := s.extract(ctx, placeID, placeName, job)
		if err != nil {
			// One source's failure must not block the other's insertion,
			// so it is recorded on the task and the loop moves on.
			log.Printf("Error scraping %s for place %s: %v", job.name, placeID, err)
			s.tasks.AddSourceResult(taskID, tasks.SourceResult{Source: job.name, Err: err})
			continue
		}
		s.tasks.AddSourceResult(taskID, tasks.SourceResult{Source: job.name, Reviews: len(texts)})
		collected = append(collected, texts...)
	}

	if len(collected) == 0 {
		s.tasks.MarkDone(taskID, false)
		return
	}

	// Summarize everything stored for the place so repeat scrapes refresh
	// the vibe from the full review history, not just this run's batch.
	corpus, err := s.reviewRepo.ContentsByPlace(ctx, placeID)
	if err != nil {
		log.Printf("Error loading stored reviews for place %s: %v", placeID, err)
		corpus = collected
	}

	payload := s.summarizer.SummarizeReviews(ctx, corpus)
	if err := s.vibe.UpsertFromPayload(ctx, placeID, payload); err != nil {
		log.Printf("Error storing vibe summary for place %s: %v", placeID, err)
		s.tasks.MarkFailed(taskID, err)
		return
	}

	log.Printf("Scraped %d reviews and generated summary for place %s", len(collected), placeID)
	s.tasks.MarkDone(taskID, true)
}

// extract pulls reviews from one source URL and inserts them as they come.
// A failed insert skips that row but keeps the batch going.
func (s *ScrapeService) extract(ctx context.Context, placeID uuid.UUID, placeName string, job sourceJob) ([]string, error) {
	if job.source == nil {
		return nil, fmt.Errorf("%s source is not configured", job.name)
	}

	_, reviews, err := job.source.FetchReviews(ctx, scraper.Listing{Query: placeName, URL: job.url})
	if err != nil {
		return nil, err
	}

	var texts []string
	for _, rev := range reviews {
		row := &db_models.Review{
			PlaceID: placeID,
			Source:  job.name,
			Content: rev.Text,
		}
		if err := s.reviewRepo.Create(ctx, row); err != nil {
			log.Printf("Error inserting review for place %s: %v", placeID, err)
			continue
		}
		texts = append(texts, rev.Text)
	}
	return texts, nil
}
