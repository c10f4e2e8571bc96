package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"usermgmt/internal/auth"
	"usermgmt/internal/errors"
	"usermgmt/internal/model"
	"usermgmt/internal/service"
)

// UserHandler handles the administrative account list and bulk actions.
type UserHandler struct {
	errorWriter
	svc service.UserService
}

// NewUserHandler creates a new user handler.
func NewUserHandler(svc service.UserService, debug bool) *UserHandler {
	return &UserHandler{
		errorWriter: errorWriter{debug: debug},
		svc:         svc,
	}
}

// BulkActionRequest represents a bulk action over a set of account IDs.
type BulkActionRequest struct {
	UserIDs []uint `json:"userIds" validate:"required,min=1,dive,gt=0"`
	Action  string `json:"action" validate:"required"`
}

// ListResponse represents the ordered account list.
type ListResponse struct {
	Users []model.User `json:"users"`
	Count int          `json:"count"`
}

// BulkActionResponse reports how many rows a bulk action touched.
type BulkActionResponse struct {
	Message             string `json:"message"`
	AffectedCount       int64  `json:"affectedCount"`
	CurrentUserAffected bool   `json:"currentUserAffected,omitempty"`
}

// ListUsers godoc
// @Summary List accounts ordered by last login
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ListResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users [get]
func (h *UserHandler) ListUsers(c echo.Context) error {
	users, err := h.svc.ListAll(c.Request().Context())
	if err != nil {
		return h.write(c, err)
	}

	return c.JSON(http.StatusOK, ListResponse{
		Users: users,
		Count: len(users),
	})
}

// BulkActions godoc
// @Summary Apply a bulk action to accounts
// @Description Actions: block, unblock, delete, deleteUnverified.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body BulkActionRequest true "Action payload"
// @Success 200 {object} BulkActionResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/actions [patch]
func (h *UserHandler) BulkActions(c echo.Context) error {
	var req BulkActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	identity, ok := auth.IdentityFrom(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, errors.ErrorResponse{
			Error: "not authenticated",
			Code:  "UNAUTHENTICATED",
		})
	}

	result, err := h.svc.BulkAction(c.Request().Context(), identity.ID, req.UserIDs, req.Action)
	if err != nil {
		return h.write(c, err)
	}

	return c.JSON(http.StatusOK, BulkActionResponse{
		Message:             result.Message,
		AffectedCount:       result.AffectedCount,
		CurrentUserAffected: result.CurrentUserAffected,
	})
}
