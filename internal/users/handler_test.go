package users

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerarchitect/internal/shared/server/middleware"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	svc, issuer := newTestService(t)

	r := gin.New()
	api := r.Group("/api")
	api.Use(middleware.Auth(issuer, "/api/auth/register", "/api/auth/login"))
	NewHandler(svc).RegisterRoutes(api)
	return r
}

func doJSON(r http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		_ = json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandlerRegisterLoginMe(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":     "jane@example.com",
		"full_name": "Jane Doe",
		"password":  "pw123456",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var tok TokenResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))
	assert.Equal(t, "bearer", tok.TokenType)
	assert.NotEmpty(t, tok.AccessToken)

	rec = doJSON(r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email":    "jane@example.com",
		"password": "pw123456",
	})
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tok))

	rec = doJSON(r, http.MethodGet, "/api/auth/me", tok.AccessToken, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var me map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &me))
	assert.Equal(t, "jane@example.com", me["email"])
	assert.Equal(t, "Jane Doe", me["full_name"])
	assert.NotContains(t, me, "password_hash")
}

func TestHandlerRegisterDuplicateIs400(t *testing.T) {
	r := newTestRouter(t)
	body := map[string]string{"email": "jane@example.com", "full_name": "Jane", "password": "pw"}

	require.Equal(t, http.StatusOK, doJSON(r, http.MethodPost, "/api/auth/register", "", body).Code)
	rec := doJSON(r, http.MethodPost, "/api/auth/register", "", body)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Email already registered")
}

func TestHandlerRegisterValidatesFields(t *testing.T) {
	r := newTestRouter(t)

	rec := doJSON(r, http.MethodPost, "/api/auth/register", "", map[string]string{"email": "not-an-email"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "email")
	assert.Contains(t, rec.Body.String(), "full_name")
}

func TestHandlerLoginWrongPasswordIs401(t *testing.T) {
	r := newTestRouter(t)
	doJSON(r, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email": "jane@example.com", "full_name": "Jane", "password": "pw",
	})

	rec := doJSON(r, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "jane@example.com", "password": "nope",
	})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Contains(t, rec.Body.String(), "Invalid email or password")
}

func TestHandlerMeRequiresToken(t *testing.T) {
	r := newTestRouter(t)

	assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodGet, "/api/auth/me", "", nil).Code)
	assert.Equal(t, http.StatusUnauthorized, doJSON(r, http.MethodGet, "/api/auth/me", "garbage", nil).Code)
}
