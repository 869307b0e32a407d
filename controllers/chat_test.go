package controllers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/hung20012004/Nhom373DCTT24-sub003/database"
	"github.com/hung20012004/Nhom373DCTT24-sub003/middleware"
	"github.com/hung20012004/Nhom373DCTT24-sub003/repository"
	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const staffAPIKey = "ffeeddccbbaa99887766554433221100"

// newChatPipeline wires the production request chain for /api/chat against
// an in-memory database: credential resolver, policy gate, then the handler.
func newChatPipeline(t *testing.T) (listHandler, sendHandler http.Handler) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	stmts := []string{
		`CREATE TABLE roles (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			description TEXT,
			created_at DATETIME, updated_at DATETIME
		)`,
		`CREATE TABLE users (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT NOT NULL,
			role_id INTEGER NOT NULL,
			api_key TEXT,
			status TEXT DEFAULT 'Active',
			created_at DATETIME, updated_at DATETIME
		)`,
		`CREATE TABLE chat_messages (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			message TEXT NOT NULL,
			category TEXT DEFAULT 'support',
			is_admin BOOLEAN DEFAULT 0,
			user_id INTEGER,
			created_at DATETIME
		)`,
		`INSERT INTO roles (id, name) VALUES (1, 'Staff'), (2, 'Customer')`,
		`INSERT INTO users (id, name, email, password, role_id, api_key, status)
			VALUES (1, 'Lan', 'lan@example.com', 'x', 1, '` + staffAPIKey + `', 'Active')`,
		`INSERT INTO users (id, name, email, password, role_id, status)
			VALUES (2, 'Minh', 'minh@example.com', 'x', 2, 'Active')`,
	}
	for _, s := range stmts {
		require.NoError(t, db.Exec(s).Error)
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })

	controller := NewChatController(repository.NewChatRepository(db))
	gate := middleware.Gate(middleware.RequireAny(), middleware.GateAPI)
	listHandler = middleware.CredentialMiddleware(gate(http.HandlerFunc(controller.ListMessagesHandler)))
	sendHandler = middleware.CredentialMiddleware(gate(http.HandlerFunc(controller.SendMessageHandler)))
	return listHandler, sendHandler
}

func doJSON(t *testing.T, handler http.Handler, method, body string, setAuth func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, "/api/chat", nil)
	} else {
		req = httptest.NewRequest(method, "/api/chat", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if setAuth != nil {
		setAuth(req)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func withAPIKey(key string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("x-api-key", key) }
}

func listMessages(t *testing.T, listHandler http.Handler) []map[string]interface{} {
	t.Helper()
	rec := doJSON(t, listHandler, http.MethodGet, "", withAPIKey(staffAPIKey))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp utils.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	raw, ok := resp.Data.([]interface{})
	require.True(t, ok, "chat list must be an array")

	out := make([]map[string]interface{}, 0, len(raw))
	for _, item := range raw {
		m, ok := item.(map[string]interface{})
		require.True(t, ok)
		out = append(out, m)
	}
	return out
}

func TestChatRejectsBadAPIKey(t *testing.T) {
	listHandler, _ := newChatPipeline(t)

	rec := doJSON(t, listHandler, http.MethodGet, "", withAPIKey("Bearer badkey"))
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp utils.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "error", resp.Status)
	assert.Equal(t, "Invalid API key", resp.Message)
}

func TestChatRejectsMissingCredential(t *testing.T) {
	listHandler, _ := newChatPipeline(t)

	rec := doJSON(t, listHandler, http.MethodGet, "", nil)
	require.Equal(t, http.StatusUnauthorized, rec.Code)

	var resp utils.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "API key is required", resp.Message)
}

func TestChatEmptyMessageRejectedWithoutWrite(t *testing.T) {
	listHandler, sendHandler := newChatPipeline(t)

	rec := doJSON(t, sendHandler, http.MethodPost,
		`{"message":"","category":"support","is_admin":true}`, withAPIKey(staffAPIKey))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	var resp utils.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "error", resp.Status)

	assert.Empty(t, listMessages(t, listHandler), "rejected post must not create a record")
}

func TestChatPostWithSessionAppendsToList(t *testing.T) {
	listHandler, sendHandler := newChatPipeline(t)
	t.Setenv("JWT_SECRET", "test-secret-for-sessions")

	token, err := utils.GenerateAccessTokenWithExpiry(2, "Customer", time.Minute)
	require.NoError(t, err)
	withSession := func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }

	// Seed one earlier admin-side message through the API-key path.
	rec := doJSON(t, sendHandler, http.MethodPost,
		`{"message":"Hello, how can we help?","category":"support","is_admin":true}`, withAPIKey(staffAPIKey))
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = doJSON(t, sendHandler, http.MethodPost,
		`{"message":"I need help","category":"support","is_admin":false}`, withSession)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp utils.APIResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	created, ok := resp.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "I need help", created["message"])
	assert.Equal(t, false, created["is_admin"])
	assert.Equal(t, float64(2), created["user_id"], "session sender must be attributed")

	messages := listMessages(t, listHandler)
	require.Len(t, messages, 2)
	assert.Equal(t, "Hello, how can we help?", messages[0]["message"])
	assert.Equal(t, true, messages[0]["is_admin"])
	assert.Equal(t, "I need help", messages[1]["message"])
	assert.Equal(t, false, messages[1]["is_admin"])
}

func TestChatUnknownCategoryRejected(t *testing.T) {
	_, sendHandler := newChatPipeline(t)

	rec := doJSON(t, sendHandler, http.MethodPost,
		`{"message":"hi","category":"billing","is_admin":false}`, withAPIKey(staffAPIKey))
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestChatListPreservesInsertionOrder(t *testing.T) {
	listHandler, sendHandler := newChatPipeline(t)

	for _, text := range []string{"A", "B", "C"} {
		rec := doJSON(t, sendHandler, http.MethodPost,
			`{"message":"`+text+`","category":"other","is_admin":false}`, withAPIKey(staffAPIKey))
		require.Equal(t, http.StatusCreated, rec.Code)
	}

	messages := listMessages(t, listHandler)
	require.Len(t, messages, 3)
	for i, want := range []string{"A", "B", "C"} {
		assert.Equal(t, want, messages[i]["message"])
	}
}
