package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/hung20012004/Nhom373DCTT24-sub003/database"
	"github.com/hung20012004/Nhom373DCTT24-sub003/utils"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const testAPIKey = "a1b2c3d4e5f60718293a4b5c6d7e8f90"

func setupAuthDB(t *testing.T) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("db handle: %v", err)
	}
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
		`INSERT INTO roles (id, name) VALUES (1, 'Staff'), (2, 'Customer')`,
		`INSERT INTO users (id, name, email, password, role_id, api_key, status)
			VALUES (1, 'Lan', 'lan@example.com', 'x', 1, '` + testAPIKey + `', 'Active')`,
		`INSERT INTO users (id, name, email, password, role_id, status)
			VALUES (2, 'Minh', 'minh@example.com', 'x', 2, 'Active')`,
	}
	for _, s := range stmts {
		if err := db.Exec(s).Error; err != nil {
			t.Fatalf("schema setup: %v", err)
		}
	}

	prev := database.DB
	database.DB = db
	t.Cleanup(func() { database.DB = prev })
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) utils.APIResponse {
	t.Helper()
	var resp utils.APIResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func identityEcho(t *testing.T, captured *Identity) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, ok := IdentityFrom(r)
		if !ok {
			t.Fatal("handler reached without identity in context")
		}
		*captured = id
		w.WriteHeader(http.StatusOK)
	})
}

func TestAPIKeyMissingHeader(t *testing.T) {
	setupAuthDB(t)

	req := httptest.NewRequest("GET", "/api/chat", nil)
	rec := httptest.NewRecorder()
	APIKeyMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Status != "error" || resp.Message != "API key is required" {
		t.Fatalf("unexpected envelope: %+v", resp)
	}
}

func TestAPIKeyInvalid(t *testing.T) {
	setupAuthDB(t)

	req := httptest.NewRequest("GET", "/api/chat", nil)
	req.Header.Set("x-api-key", "Bearer badkey")
	rec := httptest.NewRecorder()
	APIKeyMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Message != "Invalid API key" {
		t.Fatalf("expected invalid-key message, got %q", resp.Message)
	}
}

func TestAPIKeyValidWithAndWithoutBearerPrefix(t *testing.T) {
	setupAuthDB(t)

	for _, header := range []string{testAPIKey, "Bearer " + testAPIKey} {
		var identity Identity
		req := httptest.NewRequest("GET", "/api/chat", nil)
		req.Header.Set("x-api-key", header)
		rec := httptest.NewRecorder()
		APIKeyMiddleware(identityEcho(t, &identity)).ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("header %q: expected 200, got %d", header, rec.Code)
		}
		if identity.UserID != 1 || identity.Name != "Lan" || identity.Role != "Staff" {
			t.Fatalf("header %q: wrong identity resolved: %+v", header, identity)
		}
		if identity.Source != SourceAPIKey {
			t.Fatalf("expected api_key source, got %q", identity.Source)
		}
	}
}

func TestCredentialFallsBackToSession(t *testing.T) {
	setupAuthDB(t)
	t.Setenv("JWT_SECRET", "test-secret-for-sessions")

	token, err := utils.GenerateAccessTokenWithExpiry(2, "Customer", time.Minute)
	if err != nil {
		t.Fatalf("issue token: %v", err)
	}

	var identity Identity
	req := httptest.NewRequest("GET", "/api/chat", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	CredentialMiddleware(identityEcho(t, &identity)).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if identity.UserID != 2 || identity.Role != "Customer" || identity.Source != SourceSession {
		t.Fatalf("wrong identity resolved: %+v", identity)
	}
}

func TestCredentialWithoutAnyProof(t *testing.T) {
	setupAuthDB(t)

	req := httptest.NewRequest("GET", "/api/chat", nil)
	rec := httptest.NewRecorder()
	CredentialMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Message != "API key is required" {
		t.Fatalf("missing credential must not report an invalid key, got %q", resp.Message)
	}
}

func TestCredentialPrefersAPIKeyWhenHeaderPresent(t *testing.T) {
	setupAuthDB(t)

	// A present but wrong key must fail even if a session could have resolved.
	req := httptest.NewRequest("GET", "/api/chat", nil)
	req.Header.Set("x-api-key", "wrong")
	rec := httptest.NewRecorder()
	CredentialMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run")
	})).ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	resp := decodeEnvelope(t, rec)
	if resp.Message != "Invalid API key" {
		t.Fatalf("expected invalid-key message, got %q", resp.Message)
	}
}
