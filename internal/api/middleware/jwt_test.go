package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/revand/jobpilot/internal/auth"
	"github.com/revand/jobpilot/internal/models"
	"github.com/revand/jobpilot/internal/utils"
)

type fakeUserRepo struct {
	users map[string]*models.User
}

func (f *fakeUserRepo) Create(_ context.Context, u *models.User) error {
	f.users[u.ID] = u
	return nil
}

func (f *fakeUserRepo) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, utils.ErrNotFound
}

func (f *fakeUserRepo) GetByID(_ context.Context, id string) (*models.User, error) {
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, utils.ErrNotFound
}

func newAuthFixture(t *testing.T) (*gin.Engine, *auth.TokenIssuer, *fakeUserRepo) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	tokens := auth.NewTokenIssuer("test-secret", time.Hour)
	users := &fakeUserRepo{users: map[string]*models.User{}}

	r := gin.New()
	r.GET("/whoami", JWTAuth(tokens, users), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString("user_id")})
	})
	return r, tokens, users
}

func TestJWTAuthAllowsValidToken(t *testing.T) {
	r, tokens, users := newAuthFixture(t)
	users.users["u1"] = &models.User{ID: "u1", Email: "a@x.com"}

	token, err := tokens.Issue("u1", "a@x.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"user_id":"u1"`)
}

func TestJWTAuthRejectsMissingToken(t *testing.T) {
	r, _, _ := newAuthFixture(t)

	for _, header := range []string{"", "Bearer ", "Basic abc", "token123"} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		if header != "" {
			req.Header.Set("Authorization", header)
		}
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q", header)
	}
}

func TestJWTAuthRejectsGarbageToken(t *testing.T) {
	r, _, _ := newAuthFixture(t)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer not.a.jwt")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid token")
}

func TestJWTAuthRejectsDeletedUser(t *testing.T) {
	r, tokens, _ := newAuthFixture(t)

	token, err := tokens.Issue("ghost", "ghost@x.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "user not found")
}

func TestJWTAuthRejectsWrongSecret(t *testing.T) {
	r, _, users := newAuthFixture(t)
	users.users["u1"] = &models.User{ID: "u1", Email: "a@x.com"}

	forged, err := auth.NewTokenIssuer("other-secret", time.Hour).Issue("u1", "a@x.com")
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
