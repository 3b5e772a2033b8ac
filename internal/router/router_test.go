package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rayysidd/mun/internal/config"
	"github.com/rayysidd/mun/internal/database"
	"github.com/rayysidd/mun/internal/dto"
	"github.com/rayysidd/mun/internal/models"
	"github.com/rayysidd/mun/internal/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type client struct {
	t       *testing.T
	handler http.Handler
}

func setup(t *testing.T, mutate func(*config.Config)) (*client, *gorm.DB) {
	t.Helper()

	db, err := database.OpenInMemory()
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	cfg := &config.Config{
		JWTSecret:             "router-test-secret",
		JWTTTL:                time.Hour,
		BcryptCost:            bcrypt.MinCost,
		AllowDuplicateCountry: true,
		CORSAllowedOrigins:    []string{"http://localhost:3000"},
	}
	if mutate != nil {
		mutate(cfg)
	}

	h := New(cfg, db, zap.NewNop(), services.NewAIService(services.AIConfig{}))
	return &client{t: t, handler: h}, db
}

func (c *client) do(method, path, token string, body any) *httptest.ResponseRecorder {
	c.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	c.handler.ServeHTTP(w, req)
	return w
}

func (c *client) register(username, password string) string {
	c.t.Helper()

	w := c.do(http.MethodPost, "/api/users/register", "", map[string]string{
		"username": username,
		"password": password,
	})
	require.Equal(c.t, http.StatusCreated, w.Code, w.Body.String())

	var res dto.AuthResponse
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &res))
	return res.Token
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &v), w.Body.String())
	return v
}

func TestScenarios(t *testing.T) {
	c, db := setup(t, nil)

	// 1. Alice creates MUNX and is enrolled as France.
	alice := c.register("alice", "secret1")
	w := c.do(http.MethodPost, "/api/events", alice, map[string]string{
		"eventName": "MUNX",
		"committee": "UNSC",
		"agenda":    "Cyber",
		"passcode":  "join123",
		"country":   "France",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotContains(t, w.Body.String(), "passcode")
	created := decode[dto.CreateEventResponse](t, w)
	eventID := created.Event.ID

	w = c.do(http.MethodGet, "/api/events", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := decode[[]dto.DelegationDTO](t, w)
	require.Len(t, mine, 1)
	assert.Equal(t, "France", mine[0].Country)

	// 2. Bob's wrong passcode is rejected and creates nothing.
	bob := c.register("bob", "secret2")
	w = c.do(http.MethodPost, "/api/events/join", bob, map[string]string{
		"eventName": "MUNX", "passcode": "wrong", "country": "Germany",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
	var count int64
	require.NoError(t, db.Model(&models.Delegation{}).Where("event_id = ?", eventID).Count(&count).Error)
	assert.Equal(t, int64(1), count)

	// 3. The right passcode enrolls Bob as Germany.
	w = c.do(http.MethodPost, "/api/events/join", bob, map[string]string{
		"eventName": "MUNX", "passcode": "join123", "country": "Germany",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	joined := decode[dto.JoinEventResponse](t, w)
	assert.Equal(t, "Germany", joined.Delegation.Country)

	w = c.do(http.MethodGet, "/api/events/"+eventID, bob, nil)
	require.Equal(t, http.StatusOK, w.Code)
	details := decode[dto.EventDetailResponse](t, w)
	assert.Len(t, details.Delegates, 2)

	// 4. Joining again conflicts.
	w = c.do(http.MethodPost, "/api/events/join", bob, map[string]string{
		"eventName": "MUNX", "passcode": "join123", "country": "Germany",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	assert.Contains(t, w.Body.String(), "already joined")

	// 5. Carol never joined and cannot read sources.
	carol := c.register("carol", "secret3")
	w = c.do(http.MethodGet, "/api/events/"+eventID+"/sources", carol, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// 6. Alice leaves once.
	w = c.do(http.MethodDelete, "/api/events/"+eventID+"/leave", alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
	w = c.do(http.MethodDelete, "/api/events/"+eventID+"/leave", alice, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	c, _ := setup(t, nil)

	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/events"},
		{http.MethodPost, "/api/events"},
		{http.MethodPost, "/api/events/join"},
		{http.MethodGet, "/api/events/e1"},
		{http.MethodGet, "/api/events/e1/delegates"},
		{http.MethodDelete, "/api/events/e1/leave"},
		{http.MethodPost, "/api/events/e1/sources"},
		{http.MethodGet, "/api/events/e1/sources"},
		{http.MethodGet, "/api/users/profile"},
		{http.MethodPost, "/api/users/save"},
		{http.MethodGet, "/api/users/speeches"},
		{http.MethodDelete, "/api/users/speeches/s1"},
	}
	for _, rt := range routes {
		w := c.do(rt.method, rt.path, "", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, rt.method+" "+rt.path)

		w = c.do(rt.method, rt.path, "garbage", nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, rt.method+" "+rt.path)
	}
}

func TestSpeechFlow(t *testing.T) {
	c, _ := setup(t, nil)
	alice := c.register("alice", "secret1")
	bob := c.register("bob", "secret2")

	w := c.do(http.MethodPost, "/api/events", alice, map[string]string{
		"eventName": "MUNX", "committee": "UNSC", "agenda": "Cyber", "passcode": "join123", "country": "France",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	eventID := decode[dto.CreateEventResponse](t, w).Event.ID

	w = c.do(http.MethodPost, "/api/users/save", alice, map[string]string{
		"content": "Honourable chair", "topic": "Cyber", "country": "France", "eventId": eventID,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	speech := decode[dto.SpeechDTO](t, w)

	w = c.do(http.MethodGet, "/api/events/"+eventID+"/sources", alice, nil)
	require.Equal(t, http.StatusOK, w.Code)
	sources := decode[[]dto.SourceDTO](t, w)
	require.Len(t, sources, 1)
	assert.Equal(t, `Saved Speech: "Cyber"`, sources[0].Title)

	w = c.do(http.MethodDelete, "/api/users/speeches/"+speech.ID, bob, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = c.do(http.MethodDelete, "/api/users/speeches/"+speech.ID, alice, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCountryPolicy(t *testing.T) {
	c, _ := setup(t, func(cfg *config.Config) { cfg.AllowDuplicateCountry = false })
	alice := c.register("alice", "secret1")
	bob := c.register("bob", "secret2")

	w := c.do(http.MethodPost, "/api/events", alice, map[string]string{
		"eventName": "MUNX", "committee": "UNSC", "agenda": "Cyber", "passcode": "join123", "country": "France",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = c.do(http.MethodPost, "/api/events/join", bob, map[string]string{
		"eventName": "MUNX", "passcode": "join123", "country": "france",
	})
	assert.Equal(t, http.StatusConflict, w.Code)
}

func TestChatRoutes(t *testing.T) {
	c, _ := setup(t, nil)
	body := map[string]string{"topic": "Cyber", "country": "France"}

	w := c.do(http.MethodPost, "/api/chat", "", body)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	guarded, _ := setup(t, func(cfg *config.Config) { cfg.ChatRequireAuth = true })
	w = guarded.do(http.MethodPost, "/api/chat/speech", "", body)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestHealthAndCORS(t *testing.T) {
	c, _ := setup(t, nil)

	w := c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	preflight := func(origin string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/events", nil)
		req.Header.Set("Origin", origin)
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		req.Header.Set("Access-Control-Request-Headers", "authorization,content-type")
		rec := httptest.NewRecorder()
		c.handler.ServeHTTP(rec, req)
		return rec
	}

	rec := preflight("http://localhost:3000")
	assert.Equal(t, "http://localhost:3000", rec.Header().Get("Access-Control-Allow-Origin"))

	rec = preflight("https://evil.example")
	assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
}
