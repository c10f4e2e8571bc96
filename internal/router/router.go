package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"usermgmt/internal/auth"
	"usermgmt/internal/config"
	"usermgmt/internal/handler"
	"usermgmt/internal/repository"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	users repository.UserRepository,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

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
	api.GET("/auth/verify/:token", authHandler.VerifyEmail)

	// Gated routes: JWT signature/expiry first, then a live status check
	// against the store on every request.
	gate := Gate(cfg.JWTSecret, users)

	api.GET("/auth/me", authHandler.Me, gate...)
	api.POST("/auth/logout", authHandler.Logout, gate...)

	// All authenticated users have equal rights; there is no separate admin
	// role behind these routes.
	api.GET("/users", userHandler.ListUsers, gate...)
	api.PATCH("/users/actions", userHandler.BulkActions, gate...)
}

// Gate returns the access-gate middleware chain for protected routes.
func Gate(secret string, users repository.UserRepository) []echo.MiddlewareFunc {
	return []echo.MiddlewareFunc{
		echojwt.WithConfig(echojwt.Config{
			SigningKey:  []byte(secret),
			TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
			NewClaimsFunc: func(c echo.Context) jwt.Claims {
				return new(auth.Claims)
			},
		}),
		auth.RequireActive(users),
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
