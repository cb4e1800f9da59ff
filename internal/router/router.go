package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"smarthauling/internal/auth"
	"smarthauling/internal/config"
	"smarthauling/internal/errors"
	"smarthauling/internal/handler"
	"smarthauling/internal/model"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	tokenStore auth.TokenStoreInterface,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	truckHandler *handler.TruckHandler,
	bookingHandler *handler.BookingHandler,
	jobHandler *handler.JobHandler,
	systemHandler *handler.SystemHandler,
	seedHandler *handler.SeedHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)
	api.POST("/auth/password-strength", authHandler.PasswordStrength)

	api.GET("/trucks", truckHandler.List)
	api.GET("/trucks/:id", truckHandler.Get)

	api.GET("/config/env", systemHandler.Env)
	api.POST("/seed", seedHandler.Seed)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(jwtConfig(cfg.JWTSecret)))

	secured.GET("/auth/redirect", profileHandler.Redirect)

	secured.GET("/me/profile", profileHandler.Get)
	secured.PUT("/me/profile", profileHandler.Update)
	secured.POST("/me/profile/complete", profileHandler.Complete)

	secured.GET("/me/trucks", truckHandler.ListMine)
	secured.GET("/me/bookings", bookingHandler.ListMine)

	secured.POST("/bookings", bookingHandler.Create)
	secured.POST("/bookings/quote", bookingHandler.Quote)
	secured.GET("/bookings/:id", bookingHandler.Get)

	secured.GET("/maps/key", systemHandler.MapsKey)

	// Driver-only routes
	driver := secured.Group("/driver", RequireDriver(tokenStore))
	driver.GET("/jobs", jobHandler.List)
	driver.GET("/jobs/:id", jobHandler.Get)
	driver.POST("/jobs/:id/status", jobHandler.UpdateStatus)
	driver.GET("/earnings", jobHandler.Earnings)

	secured.POST("/trucks", truckHandler.Register, RequireDriver(tokenStore))
}

// jwtConfig builds the middleware config for secured routes. Validated tokens
// carry typed claims so gating never re-parses the payload.
func jwtConfig(secret string) echojwt.Config {
	return echojwt.Config{
		SigningKey:  []byte(secret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// RequireDriver rejects callers whose token does not carry the driver role,
// or whose role claim predates a later role change. A failed version lookup
// falls back to trusting the token so an unreachable Redis never locks
// drivers out.
func RequireDriver(tokenStore auth.TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token")
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}

			if claims.Role != model.RoleDriver {
				httpErr := errors.MapErrorToHTTP(errors.ErrDriverRequired)
				return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
			}

			if userID, err := uuid.Parse(claims.UserID); err == nil {
				current, verr := tokenStore.RoleVersion(c.Request().Context(), userID)
				if verr == nil && current != claims.RoleVersion {
					return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
						Error: "role has changed, please sign in again",
						Code:  "STALE_ROLE",
					})
				}
			}

			return next(c)
		}
	}
}
