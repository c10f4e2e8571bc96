package auth_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"usermgmt/internal/auth"
	"usermgmt/internal/model"
	"usermgmt/internal/router"
)

// stubRepo serves accounts from memory; only FindByID is exercised by the
// access gate.
type stubRepo struct {
	users map[uint]*model.User
}

func (s *stubRepo) FindByID(_ context.Context, id uint) (*model.User, error) {
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (s *stubRepo) Create(context.Context, *model.User) error     { return nil }
func (s *stubRepo) FindByEmail(context.Context, string) (*model.User, error) {
	return nil, gorm.ErrRecordNotFound
}
func (s *stubRepo) UpdateStatus(context.Context, uint, string) error       { return nil }
func (s *stubRepo) UpdateLastLogin(context.Context, uint, time.Time) error { return nil }
func (s *stubRepo) ListAll(context.Context) ([]model.User, error)          { return nil, nil }
func (s *stubRepo) BulkUpdateStatus(context.Context, []uint, string) (int64, error) {
	return 0, nil
}
func (s *stubRepo) BulkDelete(context.Context, []uint) (int64, error)     { return 0, nil }
func (s *stubRepo) DeleteByStatus(context.Context, string) (int64, error) { return 0, nil }

const testSecret = "gate-test-secret"

func newGatedServer(repo *stubRepo) *echo.Echo {
	e := echo.New()
	e.GET("/protected", func(c echo.Context) error {
		identity, ok := auth.IdentityFrom(c)
		if !ok {
			return echo.NewHTTPError(http.StatusInternalServerError, "identity missing")
		}
		return c.JSON(http.StatusOK, identity)
	}, router.Gate(testSecret, repo)...)
	return e
}

func issueToken(t *testing.T, userID uint) string {
	t.Helper()
	token, err := auth.NewTokenService(testSecret, time.Hour).Generate(userID)
	assert.NoError(t, err)
	return token
}

func doRequest(e *echo.Echo, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if bearer != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+bearer)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestGate_ActiveUserPasses(t *testing.T) {
	repo := &stubRepo{users: map[uint]*model.User{
		1: {ID: 1, Email: "a@x.com", Status: model.StatusActive},
	}}
	e := newGatedServer(repo)

	rec := doRequest(e, issueToken(t, 1))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"a@x.com"`)
}

func TestGate_MissingOrInvalidToken(t *testing.T) {
	repo := &stubRepo{users: map[uint]*model.User{}}
	e := newGatedServer(repo)

	tests := []struct {
		name   string
		bearer string
	}{
		{"no header", ""},
		{"garbage token", "this.is.garbage"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doRequest(e, tt.bearer)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestGate_BlockedUserForbidden(t *testing.T) {
	repo := &stubRepo{users: map[uint]*model.User{
		1: {ID: 1, Email: "a@x.com", Status: model.StatusBlocked},
	}}
	e := newGatedServer(repo)

	rec := doRequest(e, issueToken(t, 1))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestGate_DeletedUserForbidden(t *testing.T) {
	repo := &stubRepo{users: map[uint]*model.User{}}
	e := newGatedServer(repo)

	rec := doRequest(e, issueToken(t, 404))

	assert.Equal(t, http.StatusForbidden, rec.Code)
}

// A token issued while the account was active must stop working the moment
// the account is blocked: the gate re-reads status on every request.
func TestGate_BlockTakesEffectImmediately(t *testing.T) {
	user := &model.User{ID: 1, Email: "a@x.com", Status: model.StatusActive}
	repo := &stubRepo{users: map[uint]*model.User{1: user}}
	e := newGatedServer(repo)

	token := issueToken(t, 1)

	rec := doRequest(e, token)
	assert.Equal(t, http.StatusOK, rec.Code)

	user.Status = model.StatusBlocked

	rec = doRequest(e, token)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
