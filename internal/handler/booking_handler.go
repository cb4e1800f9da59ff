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

// BookingHandler handles booking endpoints.
type BookingHandler struct {
	bookingService service.BookingService
}

// NewBookingHandler creates a new booking handler.
func NewBookingHandler(bookingService service.BookingService) *BookingHandler {
	return &BookingHandler{bookingService: bookingService}
}

// LocationRequest is an address with coordinates.
type LocationRequest struct {
	Address string  `json:"address" validate:"required"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
}

// CreateBookingRequest represents a booking request. The total is computed
// server-side.
type CreateBookingRequest struct {
	TruckID         string          `json:"truck_id" validate:"required,uuid"`
	StartDate       string          `json:"start_date" validate:"required"`
	EndDate         string          `json:"end_date" validate:"required"`
	PickupLocation  LocationRequest `json:"pickup_location" validate:"required"`
	DropoffLocation LocationRequest `json:"dropoff_location" validate:"required"`
	PaymentID       string          `json:"payment_id"`
}

// QuoteRequest represents a price-quote request.
type QuoteRequest struct {
	TruckID   string `json:"truck_id" validate:"required,uuid"`
	StartDate string `json:"start_date" validate:"required"`
	EndDate   string `json:"end_date" validate:"required"`
}

func parseBookingDate(raw string) (time.Time, error) {
	return time.Parse("2006-01-02", raw)
}

// Create godoc
// @Summary Book a truck
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateBookingRequest true "Booking data"
// @Success 201 {object} model.Booking
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /bookings [post]
func (h *BookingHandler) Create(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CreateBookingRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	truckID, _ := uuid.Parse(req.TruckID)
	start, err := parseBookingDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "start_date must be YYYY-MM-DD",
			Code:  "INVALID_DATE",
		})
	}
	end, err := parseBookingDate(req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "end_date must be YYYY-MM-DD",
			Code:  "INVALID_DATE",
		})
	}

	booking, err := h.bookingService.Create(c.Request().Context(), userID, service.CreateBookingInput{
		TruckID:   truckID,
		StartDate: start,
		EndDate:   end,
		PickupLocation: model.Location{
			Address: req.PickupLocation.Address,
			Lat:     req.PickupLocation.Lat,
			Lng:     req.PickupLocation.Lng,
		},
		DropoffLocation: model.Location{
			Address: req.DropoffLocation.Address,
			Lat:     req.DropoffLocation.Lat,
			Lng:     req.DropoffLocation.Lng,
		},
		PaymentID: req.PaymentID,
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, booking)
}

// Get godoc
// @Summary Get a booking by ID
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {object} model.Booking
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/{id} [get]
func (h *BookingHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "invalid booking id",
			Code:  "INVALID_UUID",
		})
	}

	booking, err := h.bookingService.Get(c.Request().Context(), userID, id)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, booking)
}

// ListMine godoc
// @Summary List the caller's bookings
// @Tags bookings
// @Produce json
// @Security BearerAuth
// @Success 200 {array} model.Booking
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /me/bookings [get]
func (h *BookingHandler) ListMine(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	bookings, err := h.bookingService.ListForUser(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, bookings)
}

// Quote godoc
// @Summary Price a rental window
// @Description Returns the price breakdown for a truck and date range without
// @Description creating a booking.
// @Tags bookings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body QuoteRequest true "Quote data"
// @Success 200 {object} service.BookingQuote
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /bookings/quote [post]
func (h *BookingHandler) Quote(c echo.Context) error {
	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	truckID, _ := uuid.Parse(req.TruckID)
	start, err := parseBookingDate(req.StartDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "start_date must be YYYY-MM-DD",
			Code:  "INVALID_DATE",
		})
	}
	end, err := parseBookingDate(req.EndDate)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
			Error: "end_date must be YYYY-MM-DD",
			Code:  "INVALID_DATE",
		})
	}

	quote, err := h.bookingService.Quote(c.Request().Context(), truckID, start, end)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, quote)
}
