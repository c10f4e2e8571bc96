package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"usermgmt/internal/auth"
	"usermgmt/internal/errors"
	"usermgmt/internal/model"
	"usermgmt/internal/service"
)

// AuthHandler handles registration, login and the email-confirmation flow.
type AuthHandler struct {
	errorWriter
	svc         service.UserService
	tokens      *auth.TokenService
	frontendURL string
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(svc service.UserService, tokens *auth.TokenService, frontendURL string, debug bool) *AuthHandler {
	return &AuthHandler{
		errorWriter: errorWriter{debug: debug},
		svc:         svc,
		tokens:      tokens,
		frontendURL: frontendURL,
	}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents a successful authentication response.
type AuthResponse struct {
	Message string      `json:"message"`
	User    *model.User `json:"user"`
	Token   string      `json:"token"`
}

// Register godoc
// @Summary Register a new account
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.svc.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return h.write(c, err)
	}

	// Auto-login: the fresh account gets a session token right away, while
	// the confirmation email travels separately.
	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		return h.write(c, fmt.Errorf("generate token: %w", err))
	}

	return c.JSON(http.StatusCreated, AuthResponse{
		Message: "registration successful, a confirmation email is on its way",
		User:    user,
		Token:   token,
	})
}

// Login godoc
// @Summary Log in with email and password
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 403 {object} errors.ErrorResponse
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

	user, err := h.svc.Authenticate(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return h.write(c, err)
	}

	token, err := h.tokens.Generate(user.ID)
	if err != nil {
		return h.write(c, fmt.Errorf("generate token: %w", err))
	}

	return c.JSON(http.StatusOK, AuthResponse{
		Message: "login successful",
		User:    user,
		Token:   token,
	})
}

// VerifyEmail godoc
// @Summary Confirm an email address
// @Tags auth
// @Produce json
// @Param token path string true "Verification token"
// @Success 302
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/verify/{token} [get]
func (h *AuthHandler) VerifyEmail(c echo.Context) error {
	outcome, err := h.svc.VerifyEmail(c.Request().Context(), c.Param("token"))
	if err != nil {
		return h.write(c, err)
	}

	if outcome == service.VerifyBlockedRemains {
		return c.JSON(http.StatusOK, map[string]string{
			"message": "email confirmed, but the account remains blocked",
		})
	}

	return c.Redirect(http.StatusFound, h.frontendURL+"/login?verified=true")
}

// Me godoc
// @Summary Get the current account
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "not authenticated",
			Code:  "UNAUTHENTICATED",
		})
	}

	user, err := h.svc.GetByID(c.Request().Context(), identity.ID)
	if err != nil {
		return h.write(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{"user": user})
}

// Logout godoc
// @Summary Log out
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	// Tokens carry no server-side state; the client discards its copy.
	return c.JSON(http.StatusOK, map[string]string{
		"message": "logged out successfully",
	})
}
