package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"smarthauling/internal/errors"
	"smarthauling/internal/model"
	"smarthauling/internal/service"
)

// JobHandler handles driver-side job endpoints.
type JobHandler struct {
	jobService service.JobService
}

// NewJobHandler creates a new job handler.
func NewJobHandler(jobService service.JobService) *JobHandler {
	return &JobHandler{jobService: jobService}
}

// UpdateJobStatusRequest represents a status transition request.
type UpdateJobStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

// List godoc
// @Summary List jobs for the calling driver
// @Description The type query selects a tab: active, upcoming, completed, or
// @Description available (the shared unassigned pool).
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param type query string false "active, upcoming, completed or available" default(active)
// @Success 200 {array} model.Job
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Router /driver/jobs [get]
func (h *JobHandler) List(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	class := c.QueryParam("type")
	if class == "" {
		class = "active"
	}

	jobs, err := h.jobService.List(c.Request().Context(), userID, class)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: err.Error(),
			Code:  "INVALID_JOB_LIST",
		})
	}
	return c.JSON(http.StatusOK, jobs)
}

// Get godoc
// @Summary Get a job with its timeline
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Success 200 {object} model.Job
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /driver/jobs/{id} [get]
func (h *JobHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid job id",
			Code:  "INVALID_UUID",
		})
	}

	job, err := h.jobService.Get(c.Request().Context(), userID, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, job)
}

// UpdateStatus godoc
// @Summary Move a job to a new status
// @Description Applies one lifecycle transition and records it on the job's
// @Description timeline. Accepting an available job assigns it to the caller.
// @Tags jobs
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Job ID"
// @Param request body UpdateJobStatusRequest true "Target status"
// @Success 200 {object} model.Job
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /driver/jobs/{id}/status [post]
func (h *JobHandler) UpdateStatus(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid job id",
			Code:  "INVALID_UUID",
		})
	}

	var req UpdateJobStatusRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	job, err := h.jobService.UpdateStatus(c.Request().Context(), userID, id, model.JobStatus(req.Status), req.Note)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, job)
}

// Earnings godoc
// @Summary Summarize the caller's completed-job earnings
// @Tags jobs
// @Produce json
// @Security BearerAuth
// @Success 200 {object} service.EarningsSummary
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /driver/earnings [get]
func (h *JobHandler) Earnings(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	summary, err := h.jobService.Earnings(c.Request().Context(), userID, time.Now())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, summary)
}
