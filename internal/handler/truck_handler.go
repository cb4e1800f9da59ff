package handler

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"smarthauling/internal/errors"
	"smarthauling/internal/service"
)

// TruckHandler handles truck listing endpoints.
type TruckHandler struct {
	truckService service.TruckService
}

// NewTruckHandler creates a new truck handler.
func NewTruckHandler(truckService service.TruckService) *TruckHandler {
	return &TruckHandler{truckService: truckService}
}

// List godoc
// @Summary List trucks
// @Tags trucks
// @Produce json
// @Success 200 {array} model.Truck
// @Failure 500 {object} errors.ErrorResponse
// @Router /trucks [get]
func (h *TruckHandler) List(c echo.Context) error {
	trucks, err := h.truckService.List(c.Request().Context())
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, trucks)
}

// Get godoc
// @Summary Get a truck by ID
// @Tags trucks
// @Produce json
// @Param id path string true "Truck ID"
// @Success 200 {object} model.Truck
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /trucks/{id} [get]
func (h *TruckHandler) Get(c echo.Context) error {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid truck id",
			Code:  "INVALID_UUID",
		})
	}

	truck, err := h.truckService.Get(c.Request().Context(), id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, truck)
}

// ListMine godoc
// @Summary List the caller's trucks
// @Tags trucks
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Truck
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /me/trucks [get]
func (h *TruckHandler) ListMine(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	trucks, err := h.truckService.ListByOwner(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, trucks)
}

// Register godoc
// @Summary Register a truck
// @Description Creates a listing for the calling driver. Multipart form; an
// @Description image file may be attached, otherwise a placeholder is used.
// @Tags trucks
// @Accept mpfd
// @Produce json
// @Security BearerAuth
// @Param name formData string true "Listing name"
// @Param make formData string true "Make"
// @Param model formData string true "Model"
// @Param year formData int true "Year"
// @Param size formData string true "Size class"
// @Param description formData string false "Description"
// @Param capacity formData string true "Capacity in tons"
// @Param daily_rate formData string true "Daily rate"
// @Param image formData file false "Listing photo"
// @Success 201 {object} model.Truck
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /trucks [post]
func (h *TruckHandler) Register(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	in := service.RegisterTruckInput{
		Name:        c.FormValue("name"),
		Make:        c.FormValue("make"),
		Model:       c.FormValue("model"),
		Size:        c.FormValue("size"),
		Description: c.FormValue("description"),
	}
	if in.Name == "" || in.Make == "" || in.Model == "" || in.Size == "" {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "name, make, model and size are required",
			Code:  "VALIDATION_ERROR",
		})
	}

	year, err := parseFormInt(c.FormValue("year"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid year",
			Code:  "INVALID_NUMBER",
		})
	}
	in.Year = year

	if in.Capacity, err = decimal.NewFromString(c.FormValue("capacity")); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid capacity",
			Code:  "INVALID_NUMBER",
		})
	}
	if in.DailyRate, err = decimal.NewFromString(c.FormValue("daily_rate")); err != nil || in.DailyRate.IsNegative() {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid daily_rate",
			Code:  "INVALID_NUMBER",
		})
	}

	if file, ferr := c.FormFile("image"); ferr == nil {
		src, oerr := file.Open()
		if oerr != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "unable to read image file",
				Code:  "INVALID_FILE",
			})
		}
		defer src.Close()
		in.Image = &service.TruckImage{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Content:     src,
		}
	}

	truck, err := h.truckService.Register(c.Request().Context(), userID, in)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, truck)
}
