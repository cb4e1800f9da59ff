package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smarthauling/internal/errors"
	"smarthauling/internal/model"
	"smarthauling/internal/service"
)

// ProfileHandler handles profile endpoints.
type ProfileHandler struct {
	profileService service.ProfileService
	routingService service.RoutingService
}

// NewProfileHandler creates a new profile handler.
func NewProfileHandler(profileService service.ProfileService, routingService service.RoutingService) *ProfileHandler {
	return &ProfileHandler{
		profileService: profileService,
		routingService: routingService,
	}
}

// UpdateProfileRequest represents a profile update; absent fields are left
// unchanged.
type UpdateProfileRequest struct {
	FirstName   *string `json:"first_name" validate:"omitempty,min=1"`
	LastName    *string `json:"last_name" validate:"omitempty,min=1"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,min=1"`
	AvatarURL   *string `json:"avatar_url" validate:"omitempty,url"`
	Role        *string `json:"role" validate:"omitempty,oneof=passenger driver"`
}

// CompleteProfileRequest represents the manual profile-completion form.
type CompleteProfileRequest struct {
	FirstName   string `json:"first_name" validate:"required"`
	LastName    string `json:"last_name" validate:"required"`
	PhoneNumber string `json:"phone_number" validate:"required"`
	Role        string `json:"role" validate:"required,oneof=passenger driver"`
}

// RedirectResponse carries the landing route for the session.
type RedirectResponse struct {
	Route string `json:"route"`
}

// Get godoc
// @Summary Get the caller's profile
// @Description Returns the profile, synthesizing one from identity metadata
// @Description when no row exists yet.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.Profile
// @Failure 401 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /me/profile [get]
func (h *ProfileHandler) Get(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	profile, err := h.profileService.Resolve(c.Request().Context(), userID)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, profile)
}

// Update godoc
// @Summary Update the caller's profile
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body UpdateProfileRequest true "Fields to change"
// @Success 200 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /me/profile [put]
func (h *ProfileHandler) Update(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	in := service.UpdateProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		AvatarURL:   req.AvatarURL,
	}
	if req.Role != nil {
		role := model.Role(*req.Role)
		in.Role = &role
	}

	profile, err := h.profileService.Update(c.Request().Context(), userID, in)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, profile)
}

// Complete godoc
// @Summary Complete a missing profile
// @Description Fills in a profile from the manual completion form after the
// @Description resolver could not synthesize one.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CompleteProfileRequest true "Profile fields"
// @Success 201 {object} model.Profile
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /me/profile/complete [post]
func (h *ProfileHandler) Complete(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	var req CompleteProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	profile, err := h.profileService.Complete(c.Request().Context(), userID, service.CompleteProfileInput{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		PhoneNumber: req.PhoneNumber,
		Role:        model.Role(req.Role),
	})
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusCreated, profile)
}

// Redirect godoc
// @Summary Resolve the landing route for the session
// @Description Resolves the caller's profile and picks the landing page:
// @Description drivers without a truck go to truck registration, drivers with
// @Description one to the driver dashboard, everyone else to the passenger
// @Description dashboard. An unresolvable profile routes to manual completion.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} RedirectResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/redirect [get]
func (h *ProfileHandler) Redirect(c echo.Context) error {
	userID, err := currentUserID(c)
	if err != nil {
		return err
	}

	ctx := c.Request().Context()
	profile, err := h.profileService.Resolve(ctx, userID)
	if err != nil {
		if err == errors.ErrProfileIncomplete {
			return c.JSON(http.StatusOK, RedirectResponse{Route: "/profile/complete"})
		}
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}

	route, err := h.routingService.Landing(ctx, profile)
	if err != nil {
		httpErr := errors.MapErrorToHTTP(err)
		return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
	}
	return c.JSON(http.StatusOK, RedirectResponse{Route: route})
}
