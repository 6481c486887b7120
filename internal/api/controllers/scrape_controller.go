package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vibenav/internal/models/request_models"
	"vibenav/internal/services"
	"vibenav/pkg/utils"
)

type ScrapeController struct {
	scrapeService services.ScrapeServiceInterface
}

func NewScrapeController(scrapeService services.ScrapeServiceInterface) *ScrapeController {
	return &ScrapeController{scrapeService: scrapeService}
}

// ScrapeReviews triggers the background scrape for an existing place. The
// response returns immediately with the task id; no scraping has happened
// yet when the client reads it.
func (s *ScrapeController) ScrapeReviews(c *gin.Context) {
	var req request_models.ScrapeReviewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "place_id is required")
		return
	}

	accepted, err := s.scrapeService.ScrapeReviews(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondAccepted(c, accepted, accepted.Message)
}

// CreatePlaceAndScrape creates the place first, then triggers the same
// background job for it.
func (s *ScrapeController) CreatePlaceAndScrape(c *gin.Context) {
	var req request_models.CreatePlaceAndScrapeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "name, city and category are required")
		return
	}

	accepted, err := s.scrapeService.CreatePlaceAndScrape(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondAccepted(c, accepted, accepted.Message)
}

func (s *ScrapeController) GetTask(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid task ID")
		return
	}

	status, err := s.scrapeService.GetTask(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, status, "Task status fetched successfully")
}
