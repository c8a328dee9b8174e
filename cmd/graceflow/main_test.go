package main

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/graceflow/internal/config"
	"github.com/terraincognita07/graceflow/internal/db"
)

func TestNewAppServesHealthCheck(t *testing.T) {
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "graceflow-main.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	app, err := newApp(database, config.Config{
		Port:      "8080",
		SecretKey: "0123456789abcdef0123456789abcdef",
		Location:  time.UTC,
		TokenTTL:  time.Hour,
	})
	if err != nil {
		t.Fatalf("newApp returned error: %v", err)
	}

	response, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil), -1)
	if err != nil {
		t.Fatalf("healthz request failed: %v", err)
	}
	if response.StatusCode != fiber.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}
}

func TestNewAppRequiresSecret(t *testing.T) {
	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "graceflow-main.db"))
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	if _, err := newApp(database, config.Config{Location: time.UTC}); err == nil {
		t.Fatal("expected error when secret key is empty")
	}
}

func TestRunResetPasswordUsage(t *testing.T) {
	var out bytes.Buffer
	err := runResetPassword(nil, &out)
	if err == nil || !strings.Contains(err.Error(), "usage") {
		t.Fatalf("expected usage error, got %v", err)
	}
}

func TestRunResetPasswordMissingDatabase(t *testing.T) {
	t.Setenv("DB_PATH", filepath.Join(t.TempDir(), "missing.db"))
	chdir(t, t.TempDir())

	var out bytes.Buffer
	if err := runResetPassword([]string{"someone@example.com"}, &out); err == nil {
		t.Fatal("expected error when database file does not exist")
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	previous, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir %s: %v", dir, err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(previous); err != nil {
			t.Fatalf("restore working directory: %v", err)
		}
	})
}
