package bootstrap

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"careerarchitect/internal/extract"
	"careerarchitect/internal/shared/config"
)

func testConfig(t *testing.T) config.Config {
	t.Helper()
	return config.Config{
		Env:             "test",
		LocalStoreDir:   t.TempDir(),
		ObjectStoreType: "local",
		CORSAllowOrigin: []string{"http://localhost:3000"},
		MaxUploadBytes:  1 << 20,
		JWTExpiration:   time.Hour,
		BcryptCost:      4,
	}
}

func buildApp(t *testing.T) *App {
	t.Helper()
	gin.SetMode(gin.TestMode)
	app, err := Build(testConfig(t))
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

func call(app *App, method, path, token string, body any) *httptest.ResponseRecorder {
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
	app.Router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), rec.Body.String())
	return out
}

func TestPublicEndpoints(t *testing.T) {
	app := buildApp(t)

	rec := call(app, http.MethodGet, "/api/", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "CareerArchitect API - AI Resume Builder", decodeBody(t, rec)["message"])

	rec = call(app, http.MethodGet, "/api/health", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "memory", decodeBody(t, rec)["database"])

	rec = call(app, http.MethodGet, "/api/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "resumes_created_total")
}

func TestProtectedEndpointsRequireToken(t *testing.T) {
	app := buildApp(t)

	for _, path := range []string{"/api/auth/me", "/api/resumes", "/api/resume/abc"} {
		rec := call(app, http.MethodGet, path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
		assert.Equal(t, "Not authenticated", decodeBody(t, rec)["detail"], path)
	}
}

func TestEndToEndManualEnhanceGenerate(t *testing.T) {
	app := buildApp(t)

	rec := call(app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":     "jane@example.com",
		"full_name": "Jane Doe",
		"password":  "correct horse",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	token := decodeBody(t, rec)["access_token"].(string)

	rec = call(app, http.MethodPost, "/api/resume/manual", token, map[string]string{
		"full_name":  "Jane Doe",
		"email":      "jane@example.com",
		"phone":      "555-123-4567",
		"summary":    "S",
		"experience": "Engineer at Acme",
		"education":  "Bachelor degree",
		"skills":     "Python",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resumeID := decodeBody(t, rec)["resume_id"].(string)

	// No provider keys are configured, so enhancement is the identity.
	rec = call(app, http.MethodPost, "/api/resume/enhance", token, map[string]string{"resume_id": resumeID})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	enhanced := decodeBody(t, rec)
	assert.Contains(t, enhanced["enhanced_text"], "Engineer at Acme")
	enhancedID := enhanced["enhanced_resume_id"].(string)

	rec = call(app, http.MethodPost, "/api/resume/generate/"+enhancedID+"?format=docx", token, nil)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	raw, err := hex.DecodeString(decodeBody(t, rec)["file_data"].(string))
	require.NoError(t, err)

	text, err := extract.FromBytes(t.Context(), raw, extract.FormatDOCX)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(text, "Jane Doe\njane@example.com | 555-123-4567"))
	assert.Contains(t, text, "Summary")
	assert.Contains(t, text, "Skills")
	assert.Contains(t, text, "Python")

	rec = call(app, http.MethodGet, "/api/resume/"+resumeID, token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.NotNil(t, decodeBody(t, rec)["ats_score"])

	rec = call(app, http.MethodGet, "/api/auth/me", token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Jane Doe", decodeBody(t, rec)["full_name"])
}

func TestBuildRequiresDatabaseOutsideDev(t *testing.T) {
	cfg := testConfig(t)
	cfg.Env = "production"

	_, err := Build(cfg)
	assert.Error(t, err)
}

func TestBuildRequiresBucketForS3(t *testing.T) {
	cfg := testConfig(t)
	cfg.ObjectStoreType = "s3"

	_, err := Build(cfg)
	assert.ErrorContains(t, err, "S3_BUCKET")
}
