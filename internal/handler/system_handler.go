package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"smarthauling/internal/config"
	"smarthauling/internal/errors"
)

// SystemHandler handles configuration and diagnostics endpoints.
type SystemHandler struct {
	cfg *config.Config
}

// NewSystemHandler creates a new system handler.
func NewSystemHandler(cfg *config.Config) *SystemHandler {
	return &SystemHandler{cfg: cfg}
}

// MapsKeyResponse carries the browser maps key.
type MapsKeyResponse struct {
	APIKey string `json:"api_key"`
}

// EnvResponse reports which required settings are absent. Values are never
// echoed back.
type EnvResponse struct {
	Ok      bool     `json:"ok"`
	Missing []string `json:"missing,omitempty"`
}

// MapsKey godoc
// @Summary Get the maps API key for the browser
// @Description The key is held server-side and handed out here so it never
// @Description ships in a build artifact.
// @Tags system
// @Produce json
// @Security BearerAuth
// @Success 200 {object} MapsKeyResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /maps/key [get]
func (h *SystemHandler) MapsKey(c echo.Context) error {
	if h.cfg.MapsAPIKey == "" {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "maps API key is not configured",
			Code:  "MAPS_NOT_CONFIGURED",
		})
	}
	return c.JSON(http.StatusOK, MapsKeyResponse{APIKey: h.cfg.MapsAPIKey})
}

// Env godoc
// @Summary Report missing required settings
// @Tags system
// @Produce json
// @Success 200 {object} EnvResponse
// @Router /config/env [get]
func (h *SystemHandler) Env(c echo.Context) error {
	missing := h.cfg.MissingVars()
	return c.JSON(http.StatusOK, EnvResponse{
		Ok:      len(missing) == 0,
		Missing: missing,
	})
}
