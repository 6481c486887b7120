package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vibenav/internal/models/request_models"
	"vibenav/internal/models/response_models"
	"vibenav/internal/services"
	"vibenav/pkg/utils"
)

type PlacesController struct {
	placeService services.PlaceServiceInterface
	vibeService  services.VibeServiceInterface
}

func NewPlacesController(
	placeService services.PlaceServiceInterface,
	vibeService services.VibeServiceInterface,
) *PlacesController {
	return &PlacesController{
		placeService: placeService,
		vibeService:  vibeService,
	}
}

func (p *PlacesController) CreatePlace(c *gin.Context) {
	var req request_models.CreatePlaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, "name, city and category are required")
		return
	}

	place, err := p.placeService.CreatePlace(c.Request.Context(), req)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, place, "Place created successfully")
}

func (p *PlacesController) GetPlaceByID(c *gin.Context) {
	id, ok := parsePlaceID(c)
	if !ok {
		return
	}

	place, err := p.placeService.GetPlaceByID(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, place, "Place fetched successfully")
}

func (p *PlacesController) ListPlaces(c *gin.Context) {
	city := c.Query("city")
	category := c.Query("category")

	places, err := p.placeService.ListPlaces(c.Request.Context(), city, category)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, places, "Places fetched successfully")
}

func (p *PlacesController) ListReviews(c *gin.Context) {
	id, ok := parsePlaceID(c)
	if !ok {
		return
	}

	reviews, err := p.placeService.ListReviews(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, reviews, "Reviews fetched successfully")
}

func (p *PlacesController) GetVibe(c *gin.Context) {
	id, ok := parsePlaceID(c)
	if !ok {
		return
	}

	vibe, err := p.vibeService.GetByPlace(c.Request.Context(), id)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, vibe, "Vibe summary fetched successfully")
}

func (p *PlacesController) SearchPlaces(c *gin.Context) {
	query := c.Query("query")
	city := c.Query("city")

	places, err := p.placeService.SearchPlaces(c.Request.Context(), query, city)
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}

	utils.RespondSuccess(c, response_models.SearchResult{
		Query:   query,
		Results: places,
	}, "Search completed")
}

func parsePlaceID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Invalid place ID")
		return uuid.Nil, false
	}
	return id, true
}
