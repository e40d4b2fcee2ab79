//go:build e2e
// +build e2e

package e2e_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"home-rota-go/internal/config"
	"home-rota-go/internal/db"
	homedomain "home-rota-go/internal/domain/home"
	rotationdomain "home-rota-go/internal/domain/rotation"
	userdomain "home-rota-go/internal/domain/user"
	homerepo "home-rota-go/internal/repository/postgres/home"
	rotationrepo "home-rota-go/internal/repository/postgres/rotation"
	userrepo "home-rota-go/internal/repository/postgres/user"
	"home-rota-go/internal/transport/httpserver"
	"home-rota-go/internal/transport/httpserver/handler"
	authmw "home-rota-go/internal/transport/httpserver/middleware"
	"home-rota-go/pkg/logger"

	"gorm.io/gorm"
)

type testEnv struct {
	server *httptest.Server
	db     *gorm.DB
}

func setupE2E(t *testing.T) *testEnv {
	t.Helper()

	dsn := os.Getenv("E2E_DB_DSN")
	if dsn == "" {
		t.Skip("E2E_DB_DSN not set; skipping e2e tests")
	}

	log := logger.New(io.Discard, slog.LevelError, "text")

	cfg := config.Config{
		DB:        config.DBConfig{DSN: dsn, ConnMaxLifetime: time.Minute},
		RateLimit: config.RateLimitConfig{Enabled: false},
	}

	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		t.Fatalf("db connect: %v", err)
	}

	if err := db.Migrate(dbConn); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	if err := cleanDB(dbConn); err != nil {
		t.Fatalf("clean db: %v", err)
	}

	homeService := homedomain.NewService(homerepo.NewPostgres(dbConn))
	userService := userdomain.NewService(userrepo.NewPostgres(dbConn), homeService)
	rotationService := rotationdomain.NewService(rotationrepo.NewPostgres(dbConn), userService)

	handlers := handler.New(userService, homeService, rotationService, log)
	guard := authmw.NewPermissionGuard(userService, log)
	router := httpserver.NewRouter(cfg, handlers, guard)
	server := httptest.NewServer(router)

	return &testEnv{server: server, db: dbConn}
}

func (e *testEnv) Close() {
	e.server.Close()
	sqlDB, err := e.db.DB()
	if err == nil {
		_ = sqlDB.Close()
	}
}

func cleanDB(dbConn *gorm.DB) error {
	return dbConn.WithContext(context.Background()).Exec(
		"TRUNCATE TABLE rotation_members, rotations, users, homes RESTART IDENTITY CASCADE",
	).Error
}

func requestJSON(t *testing.T, client *http.Client, method, url, userKey string, payload interface{}) (*http.Response, []byte) {
	t.Helper()

	var body io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("marshal payload: %v", err)
		}
		body = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, url, body)
	if err != nil {
		t.Fatalf("new request: %v", err)
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if userKey != "" {
		req.Header.Set(authmw.UserKeyHeader, userKey)
	}

	resp, err := client.Do(req)
	if err != nil {
		t.Fatalf("do request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}

	return resp, respBody
}

func decodeBody(t *testing.T, data []byte, dst interface{}) {
	t.Helper()
	if err := json.Unmarshal(data, dst); err != nil {
		t.Fatalf("unmarshal %q: %v", data, err)
	}
}

type userPayload struct {
	ID         uint   `json:"id"`
	Nickname   string `json:"nickname"`
	Permission string `json:"permission"`
	HomeID     *uint  `json:"home_id"`
}

type homePayload struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

type rotationPayload struct {
	ID      uint   `json:"id"`
	Name    string `json:"name"`
	Current *uint  `json:"current"`
}

func TestFullRotaFlow(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := env.server.Client()
	base := env.server.URL

	// First registration bootstraps the superuser.
	resp, body := requestJSON(t, client, http.MethodPost, base+"/user", "", map[string]string{"nickname": "Alice"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create user: status %d body %s", resp.StatusCode, body)
	}
	var alice userPayload
	decodeBody(t, body, &alice)
	if alice.ID != 1 || alice.Permission != "su" {
		t.Fatalf("first user = %+v, want id 1 permission su", alice)
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/user", "", map[string]string{"nickname": "Bob"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create second user: status %d body %s", resp.StatusCode, body)
	}
	var bob userPayload
	decodeBody(t, body, &bob)
	if bob.Permission != "r" {
		t.Fatalf("second user permission = %q, want r", bob.Permission)
	}

	// Home join requires the exact password.
	resp, body = requestJSON(t, client, http.MethodPost, base+"/home", "", map[string]string{"name": "Base", "password": "hunter2"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create home: status %d body %s", resp.StatusCode, body)
	}
	var base1 homePayload
	decodeBody(t, body, &base1)

	resp, _ = requestJSON(t, client, http.MethodPut, base+"/user/1/sethome", "", map[string]interface{}{"home_id": base1.ID, "password": "wrong"})
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("sethome wrong password: status %d, want 400", resp.StatusCode)
	}

	resp, body = requestJSON(t, client, http.MethodPut, base+"/user/1/sethome", "", map[string]interface{}{"home_id": base1.ID, "password": "hunter2"})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("sethome: status %d body %s", resp.StatusCode, body)
	}
	decodeBody(t, body, &alice)
	if alice.HomeID == nil || *alice.HomeID != base1.ID {
		t.Fatalf("sethome did not assign home: %+v", alice)
	}

	// Rotation: members join in order, the pointer is seeded, then advanced
	// past the end onto the fallback user.
	resp, body = requestJSON(t, client, http.MethodPost, base+"/rotation", "", map[string]string{"name": "dishes"})
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("create rotation: status %d body %s", resp.StatusCode, body)
	}
	var rota rotationPayload
	decodeBody(t, body, &rota)

	for _, userID := range []uint{alice.ID, bob.ID} {
		resp, body = requestJSON(t, client, http.MethodPost, base+"/rotation/1/users", "", map[string]uint{"user_id": userID})
		if resp.StatusCode != http.StatusCreated {
			t.Fatalf("add member %d: status %d body %s", userID, resp.StatusCode, body)
		}
	}

	resp, _ = requestJSON(t, client, http.MethodPost, base+"/rotation/1/users", "", map[string]uint{"user_id": alice.ID})
	if resp.StatusCode != http.StatusConflict {
		t.Fatalf("duplicate member: status %d, want 409", resp.StatusCode)
	}

	// Advancing before the pointer is seeded changes nothing.
	resp, body = requestJSON(t, client, http.MethodPost, base+"/rotation/1/setnext", "", nil)
	if resp.StatusCode != http.StatusOK || string(body) != "Success" {
		t.Fatalf("setnext: status %d body %q", resp.StatusCode, body)
	}
	resp, body = requestJSON(t, client, http.MethodGet, base+"/rotation/1", "", nil)
	decodeBody(t, body, &rota)
	if rota.Current != nil {
		t.Fatalf("current after no-op advance = %v, want nil", *rota.Current)
	}

	resp, _ = requestJSON(t, client, http.MethodPut, base+"/rotation/1/current", "", map[string]uint{"user_id": alice.ID})
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("set current: status %d", resp.StatusCode)
	}

	resp, body = requestJSON(t, client, http.MethodPost, base+"/rotation/1/setnext", "", nil)
	if resp.StatusCode != http.StatusOK || string(body) != "Success" {
		t.Fatalf("setnext: status %d body %q", resp.StatusCode, body)
	}
	_, body = requestJSON(t, client, http.MethodGet, base+"/rotation/1", "", nil)
	decodeBody(t, body, &rota)
	if rota.Current == nil || *rota.Current != bob.ID {
		t.Fatalf("current after advance = %v, want %d", rota.Current, bob.ID)
	}

	// Past the last member the slot falls back to user 1.
	_, _ = requestJSON(t, client, http.MethodPost, base+"/rotation/1/setnext", "", nil)
	_, body = requestJSON(t, client, http.MethodGet, base+"/rotation/1", "", nil)
	decodeBody(t, body, &rota)
	if rota.Current == nil || *rota.Current != 1 {
		t.Fatalf("current after wraparound = %v, want 1", rota.Current)
	}

	// Guarded deletes: the read-only user is denied, the superuser passes.
	resp, _ = requestJSON(t, client, http.MethodDelete, base+"/home/1", "", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("delete without identity: status %d, want 401", resp.StatusCode)
	}
	resp, _ = requestJSON(t, client, http.MethodDelete, base+"/home/1", "2", nil)
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("delete as read-only user: status %d, want 401", resp.StatusCode)
	}
	resp, _ = requestJSON(t, client, http.MethodDelete, base+"/home/1", "1", nil)
	if resp.StatusCode != http.StatusNoContent {
		t.Fatalf("delete as superuser: status %d, want 204", resp.StatusCode)
	}

	// The stub delete left the home in place.
	resp, _ = requestJSON(t, client, http.MethodGet, base+"/home/1", "", nil)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("home gone after stub delete: status %d", resp.StatusCode)
	}
}

func TestRotationNotFound(t *testing.T) {
	env := setupE2E(t)
	defer env.Close()

	client := env.server.Client()

	resp, _ := requestJSON(t, client, http.MethodGet, env.server.URL+"/rotation/99", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("get unknown rotation: status %d, want 404", resp.StatusCode)
	}

	resp, _ = requestJSON(t, client, http.MethodPost, env.server.URL+"/rotation/99/setnext", "", nil)
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("setnext unknown rotation: status %d, want 404", resp.StatusCode)
	}
}
