package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"vibenav/internal/models/db_models"
	"vibenav/internal/models/request_models"
	"vibenav/internal/models/response_models"
	"vibenav/internal/repositories"
	"vibenav/pkg/utils"
)

type PlaceServiceInterface interface {
	CreatePlace(ctx context.Context, req request_models.CreatePlaceRequest) (response_models.Place, error)
	GetPlaceByID(ctx context.Context, id uuid.UUID) (response_models.Place, error)
	ListPlaces(ctx context.Context, city, category string) ([]response_models.Place, error)
	ListReviews(ctx context.Context, placeID uuid.UUID) ([]response_models.Review, error)
	SearchPlaces(ctx context.Context, query, city string) ([]response_models.Place, error)
}

type PlaceService struct {
	placeRepo  repositories.PlaceRepository
	reviewRepo repositories.ReviewRepository
}

func NewPlaceService(
	placeRepo repositories.PlaceRepository,
	reviewRepo repositories.ReviewRepository,
) PlaceServiceInterface {
	return &PlaceService{
		placeRepo:  placeRepo,
		reviewRepo: reviewRepo,
	}
}

func (s *PlaceService) CreatePlace(ctx context.Context, req request_models.CreatePlaceRequest) (response_models.Place, error) {
	place := &db_models.Place{
		Name:      req.Name,
		City:      req.City,
		Category:  req.Category,
		Address:   req.Address,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
	}

	if _, err := s.placeRepo.Create(ctx, place); err != nil {
		log.Printf("Error creating place: %v", err)
		return response_models.Place{}, fmt.Errorf("error creating place: %w", err)
	}

	return toPlaceResponse(place), nil
}

func (s *PlaceService) GetPlaceByID(ctx context.Context, id uuid.UUID) (response_models.Place, error) {
	place, err := s.placeRepo.GetByID(ctx, id)
	if err != nil {
		log.Printf("Error fetching place: %v", err)
		return response_models.Place{}, utils.ErrDatabaseError
	}
	if place == nil {
		return response_models.Place{}, utils.ErrPlaceNotFound
	}
	return toPlaceResponse(place), nil
}

func (s *PlaceService) ListPlaces(ctx context.Context, city, category string) ([]response_models.Place, error) {
	places, err := s.placeRepo.List(ctx, city, category)
	if err != nil {
		log.Printf("Error listing places: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return toPlaceResponses(places), nil
}

func (s *PlaceService) ListReviews(ctx context.Context, placeID uuid.UUID) ([]response_models.Review, error) {
	place, err := s.placeRepo.GetByID(ctx, placeID)
	if err != nil {
		log.Printf("Error fetching place: %v", err)
		return nil, utils.ErrDatabaseError
	}
	if place == nil {
		return nil, utils.ErrPlaceNotFound
	}

	reviews, err := s.reviewRepo.ListByPlace(ctx, placeID)
	if err != nil {
		log.Printf("Error listing reviews: %v", err)
		return nil, utils.ErrDatabaseError
	}

	responses := make([]response_models.Review, 0, len(reviews))
	for _, rev := range reviews {
		responses = append(responses, response_models.Review{
			ID:      rev.ID.String(),
			PlaceID: rev.PlaceID.String(),
			Source:  rev.Source,
			Content: rev.Content,
			Rating:  rev.Rating,
			Date:    rev.Date,
		})
	}
	return responses, nil
}

func (s *PlaceService) SearchPlaces(ctx context.Context, query, city string) ([]response_models.Place, error) {
	places, err := s.placeRepo.Search(ctx, query, city)
	if err != nil {
		log.Printf("Error searching places: %v", err)
		return nil, utils.ErrDatabaseError
	}
	return toPlaceResponses(places), nil
}

func toPlaceResponse(place *db_models.Place) response_models.Place {
	return response_models.Place{
		ID:        place.ID.String(),
		Name:      place.Name,
		City:      place.City,
		Category:  place.Category,
		Address:   place.Address,
		Latitude:  place.Latitude,
		Longitude: place.Longitude,
	}
}

func toPlaceResponses(places []db_models.Place) []response_models.Place {
	responses := make([]response_models.Place, 0, len(places))
	for i := range places {
		responses = append(responses, toPlaceResponse(&places[i]))
	}
	return responses
}
