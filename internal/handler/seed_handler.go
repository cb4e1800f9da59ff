package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smarthauling/internal/repository"
	"smarthauling/internal/sample"
)

// SeedHandler loads the fixed sample fleet and jobs into the database so a
// fresh environment has something to browse.
type SeedHandler struct {
	truckRepo repository.TruckRepository
	jobRepo   repository.JobRepository
}

// NewSeedHandler creates a new seed handler.
func NewSeedHandler(truckRepo repository.TruckRepository, jobRepo repository.JobRepository) *SeedHandler {
	return &SeedHandler{
		truckRepo: truckRepo,
		jobRepo:   jobRepo,
	}
}

// SeedResponse represents the seed response.
type SeedResponse struct {
	Message string `json:"message"`
	Trucks  int    `json:"trucks"`
	Jobs    int    `json:"jobs"`
}

// Seed godoc
// @Summary Seed sample trucks and jobs
// @Tags seed
// @Produce json
// @Success 200 {object} SeedResponse
// @Failure 500 {object} map[string]string
// @Router /seed [post]
func (h *SeedHandler) Seed(c echo.Context) error {
	ctx := c.Request().Context()

	trucksSeeded := 0
	for _, truck := range sample.Trucks() {
		t := truck
		if _, err := h.truckRepo.FindByID(ctx, t.ID); err == nil {
			continue // already seeded
		}
		if err := h.truckRepo.Create(ctx, &t); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{
				"error": "failed to seed trucks: " + err.Error(),
			})
		}
		trucksSeeded++
	}

	jobsSeeded := 0
	for _, job := range sample.Jobs() {
		j := job
		if _, err := h.jobRepo.FindByID(ctx, j.ID); err == nil {
			continue
		}
		if err := h.jobRepo.Create(ctx, &j); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, map[string]string{
				"error": "failed to seed jobs: " + err.Error(),
			})
		}
		jobsSeeded++
	}

	return c.JSON(http.StatusOK, SeedResponse{
		Message: "sample data seeded successfully",
		Trucks:  trucksSeeded,
		Jobs:    jobsSeeded,
	})
}
