package handler

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"smarthauling/internal/errors"
	"smarthauling/internal/model"
	"smarthauling/internal/service"
)

// AuthHandler handles registration and session endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RefreshRequest represents a token refresh request.
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// LogoutRequest represents a logout request.
type LogoutRequest struct {
	RefreshToken string `json:"refresh_token" validate:"required"`
}

// AuthResponse represents an authentication response.
type AuthResponse struct {
	AccessToken  string      `json:"access_token"`
	RefreshToken string      `json:"refresh_token,omitempty"`
	Profile      interface{} `json:"profile,omitempty"`
}

// ValidationResponse lists per-field registration failures.
type ValidationResponse struct {
	Error  string            `json:"error"`
	Code   string            `json:"code"`
	Fields map[string]string `json:"fields"`
}

// PasswordStrengthRequest represents a strength-meter request.
type PasswordStrengthRequest struct {
	Password string `json:"password"`
}

// Register godoc
// @Summary Register a new user
// @Description Registers a passenger or driver. Multipart form; drivers must
// @Description supply license fields, and an avatar file may be attached.
// @Tags auth
// @Accept mpfd
// @Produce json
// @Param first_name formData string true "First name"
// @Param last_name formData string true "Last name"
// @Param email formData string true "Email"
// @Param country_code formData string false "Phone country code, default +1"
// @Param phone_number formData string true "Phone number"
// @Param password formData string true "Password"
// @Param confirm_password formData string true "Password confirmation"
// @Param role formData string false "passenger or driver"
// @Param license_number formData string false "Driver license number"
// @Param license_expiry formData string false "License expiry, YYYY-MM-DD"
// @Param terms_accepted formData bool true "Terms acceptance"
// @Param remember_me formData bool false "Issue a session immediately"
// @Param avatar formData file false "Profile picture"
// @Success 201 {object} service.RegisterResult
// @Failure 400 {object} ValidationResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	in := service.RegisterInput{
		RegistrationInput: service.RegistrationInput{
			FirstName:       c.FormValue("first_name"),
			LastName:        c.FormValue("last_name"),
			Email:           c.FormValue("email"),
			CountryCode:     c.FormValue("country_code"),
			PhoneNumber:     c.FormValue("phone_number"),
			Password:        c.FormValue("password"),
			ConfirmPassword: c.FormValue("confirm_password"),
			Role:            model.Role(c.FormValue("role")),
			LicenseNumber:   c.FormValue("license_number"),
			TermsAccepted:   c.FormValue("terms_accepted") == "true",
		},
		RememberMe: c.FormValue("remember_me") == "true",
	}
	if in.CountryCode == "" {
		in.CountryCode = "+1"
	}
	if raw := c.FormValue("license_expiry"); raw != "" {
		expiry, err := time.Parse("2006-01-02", raw)
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "license_expiry must be YYYY-MM-DD",
				Code:  "INVALID_DATE",
			})
		}
		in.LicenseExpiry = &expiry
	}

	if file, err := c.FormFile("avatar"); err == nil {
		src, err := file.Open()
		if err != nil {
			return echo.NewHTTPError(http.StatusBadRequest, errors.ErrorResponse{
				Error: "unable to read avatar file",
				Code:  "INVALID_FILE",
			})
		}
		defer src.Close()
		in.Avatar = &service.AvatarUpload{
			Filename:    file.Filename,
			ContentType: file.Header.Get("Content-Type"),
			Content:     src,
		}
	}

	result, err := h.authService.Register(c.Request().Context(), in)
	if err != nil {
		var verr *service.ValidationError
		if stderrors.As(err, &verr) {
			return echo.NewHTTPError(http.StatusBadRequest, ValidationResponse{
				Error:  "validation failed",
				Code:   "VALIDATION_ERROR",
				Fields: verr.Fields,
			})
		}
		if err == service.ErrUserAlreadyExists {
			return echo.NewHTTPError(http.StatusConflict, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "USER_ALREADY_EXISTS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to register user",
			Code:  "REGISTRATION_FAILED",
		})
	}

	return c.JSON(http.StatusCreated, result)
}

// Login godoc
// @Summary Login
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	accessToken, refreshToken, profile, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		if err == service.ErrInvalidCredentials {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_CREDENTIALS",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to login",
			Code:  "LOGIN_FAILED",
		})
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		Profile:      profile,
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RefreshRequest true "Refresh token"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	accessToken, err := h.authService.Refresh(c.Request().Context(), req.RefreshToken)
	if err != nil {
		if err == service.ErrInvalidRefreshToken {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_REFRESH_TOKEN",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to refresh token",
			Code:  "REFRESH_FAILED",
		})
	}

	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: accessToken,
	})
}

// Logout godoc
// @Summary Logout
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LogoutRequest true "Refresh token"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var req LogoutRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.authService.Logout(c.Request().Context(), req.RefreshToken); err != nil {
		if err == service.ErrInvalidRefreshToken {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: err.Error(),
				Code:  "INVALID_REFRESH_TOKEN",
			})
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
			Error: "failed to logout",
			Code:  "LOGOUT_FAILED",
		})
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}

// PasswordStrength godoc
// @Summary Score a candidate password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body PasswordStrengthRequest true "Candidate password"
// @Success 200 {object} map[string]int
// @Failure 400 {object} errors.ErrorResponse
// @Router /auth/password-strength [post]
func (h *AuthHandler) PasswordStrength(c echo.Context) error {
	var req PasswordStrengthRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	return c.JSON(http.StatusOK, map[string]int{
		"strength": service.PasswordStrength(req.Password),
	})
}
