package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"usermgmt/internal/auth"
	apperrors "usermgmt/internal/errors"
	"usermgmt/internal/model"
	"usermgmt/internal/service"
)

func withIdentity(id auth.Identity) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth.SetIdentity(c, id)
			return next(c)
		}
	}
}

func TestUserHandler_ListUsers(t *testing.T) {
	now := time.Now()
	e := newTestEcho()
	h := NewUserHandler(&stubService{
		listAllFn: func(ctx context.Context) ([]model.User, error) {
			return []model.User{
				{ID: 1, Email: "recent@x.com", Status: model.StatusActive, LastLoginTime: &now},
				{ID: 2, Email: "never@x.com", Status: model.StatusUnverified},
			}, nil
		},
	}, false)
	e.GET("/api/users", h.ListUsers, withIdentity(auth.Identity{ID: 9, Email: "admin@x.com", Status: model.StatusActive}))

	req := httptest.NewRequest(http.MethodGet, "/api/users", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"count":2`)
	assert.Contains(t, rec.Body.String(), `"recent@x.com"`)
}

func TestUserHandler_BulkActions(t *testing.T) {
	tests := []struct {
		name         string
		body         string
		bulkActionFn func(ctx context.Context, actorID uint, ids []uint, action string) (*service.BulkResult, error)
		expectedCode int
		wantBody     []string
		skipBody     []string
	}{
		{
			name: "block",
			body: `{"userIds":[1,2],"action":"block"}`,
			bulkActionFn: func(ctx context.Context, actorID uint, ids []uint, action string) (*service.BulkResult, error) {
				assert.Equal(t, uint(9), actorID)
				assert.Equal(t, []uint{1, 2}, ids)
				assert.Equal(t, service.ActionBlock, action)
				return &service.BulkResult{Message: "Blocked users: 2", AffectedCount: 2}, nil
			},
			expectedCode: http.StatusOK,
			wantBody:     []string{`"affectedCount":2`},
			skipBody:     []string{"currentUserAffected"},
		},
		{
			name: "actor blocks themselves",
			body: `{"userIds":[9],"action":"block"}`,
			bulkActionFn: func(ctx context.Context, actorID uint, ids []uint, action string) (*service.BulkResult, error) {
				return &service.BulkResult{Message: "Blocked users: 1", AffectedCount: 1, CurrentUserAffected: true}, nil
			},
			expectedCode: http.StatusOK,
			wantBody:     []string{`"currentUserAffected":true`},
		},
		{
			name: "invalid action",
			body: `{"userIds":[1],"action":"promote"}`,
			bulkActionFn: func(ctx context.Context, actorID uint, ids []uint, action string) (*service.BulkResult, error) {
				return nil, apperrors.ErrInvalidAction
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "empty id list",
			body:         `{"userIds":[],"action":"block"}`,
			expectedCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newTestEcho()
			h := NewUserHandler(&stubService{bulkActionFn: tt.bulkActionFn}, false)
			e.PATCH("/api/users/actions", h.BulkActions, withIdentity(auth.Identity{ID: 9, Email: "admin@x.com", Status: model.StatusActive}))

			req := httptest.NewRequest(http.MethodPatch, "/api/users/actions", strings.NewReader(tt.body))
			req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			for _, want := range tt.wantBody {
				assert.Contains(t, rec.Body.String(), want)
			}
			for _, skip := range tt.skipBody {
				assert.NotContains(t, rec.Body.String(), skip)
			}
		})
	}
}

func TestUserHandler_BulkActions_NoIdentity(t *testing.T) {
	e := newTestEcho()
	h := NewUserHandler(&stubService{}, false)
	e.PATCH("/api/users/actions", h.BulkActions)

	req := httptest.NewRequest(http.MethodPatch, "/api/users/actions", strings.NewReader(`{"userIds":[1],"action":"block"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
