package server

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/nlitteri/taller-app/internal/config"
	"github.com/nlitteri/taller-app/internal/db"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func testHandler(t *testing.T) http.Handler {
	t.Helper()
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	if err := db.SeedAdmin(conn, "1234"); err != nil {
		t.Fatalf("seed admin: %v", err)
	}
	cfg := config.Config{Port: "8080", UploadDir: t.TempDir(), BackupDir: t.TempDir(), MaxUploadMB: 16, AdminPassword: "1234"}
	return New(conn, cfg)
}

func TestHealthzConBaseCaida(t *testing.T) {
	dsn := "file:" + t.Name() + "?mode=memory&cache=shared"
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(conn); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	h := New(conn, config.Config{Port: "8080", MaxUploadMB: 16})

	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatal(err)
	}
	sqlDB.Close()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"error"`) {
		t.Errorf("body = %q, want cuerpo de error JSON", rec.Body.String())
	}
}

func TestHealth(t *testing.T) {
	h := testHandler(t)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"status"`) {
		t.Errorf("body = %q", rec.Body.String())
	}
}

func TestRutasProtegidasRedirigenALogin(t *testing.T) {
	h := testHandler(t)
	for _, path := range []string{"/", "/clientes", "/facturas", "/citas", "/gastos"} {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusSeeOther || rec.Header().Get("Location") != "/login" {
			t.Errorf("%s: %d -> %q, want redirect a /login", path, rec.Code, rec.Header().Get("Location"))
		}
	}
}

func TestLoginYAccesoConSesion(t *testing.T) {
	h := testHandler(t)

	form := url.Values{"username": {"admin"}, "password": {"1234"}}
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusSeeOther {
		t.Fatalf("login: %d", rec.Code)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("el login no dejó cookie")
	}

	req = httptest.NewRequest(http.MethodGet, "/clientes", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("con sesión /clientes: %d", rec.Code)
	}

	// admin también entra a /usuarios
	req = httptest.NewRequest(http.MethodGet, "/usuarios", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("con sesión admin /usuarios: %d", rec.Code)
	}
}
