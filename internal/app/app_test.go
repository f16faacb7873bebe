package app

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/fantasy-league-hub/internal/config"
	"github.com/riskibarqy/fantasy-league-hub/internal/platform/logging"
)

func memoryConfig() config.Config {
	return config.Config{
		AppEnv:                 config.EnvDev,
		ServiceName:            "fantasy-league-hub",
		ServiceVersion:         "test",
		HTTPAddr:               ":0",
		StorageDriver:          config.StorageMemory,
		BlobDriver:             config.BlobMemory,
		CacheEnabled:           true,
		CacheTTL:               time.Minute,
		CacheMaxEntries:        16,
		SleeperBaseURL:         "http://127.0.0.1:1",
		SleeperTimeout:         time.Second,
		ADPFetchConcurrency:    2,
		SnapshotRebuildWorkers: 1,
		CORSAllowedOrigins:     []string{"*"},
	}
}

func TestNewServices_MemoryDrivers(t *testing.T) {
	groupsFile := filepath.Join(t.TempDir(), "groups.yaml")
	if err := os.WriteFile(groupsFile, []byte("groups:\n  - name: home\n    selections:\n      - league_id: \"1\"\n"), 0o600); err != nil {
		t.Fatalf("write groups: %v", err)
	}
	cfg := memoryConfig()
	cfg.ADPGroupsFile = groupsFile

	services, err := NewServices(context.Background(), cfg, logging.NewNop())
	if err != nil {
		t.Fatalf("new services: %v", err)
	}
	defer services.Close()

	if services.ADP == nil || services.Snapshots == nil || services.Directory == nil || services.Resolver == nil {
		t.Fatalf("expected every service to be wired: %+v", services)
	}
}

func TestNewServices_BadGroupsFile(t *testing.T) {
	cfg := memoryConfig()
	cfg.ADPGroupsFile = filepath.Join(t.TempDir(), "missing.yaml")

	if _, err := NewServices(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for missing groups file")
	}
}

func TestNewHTTPServer(t *testing.T) {
	cfg := memoryConfig()
	cfg.HTTPAddr = ""
	if _, _, err := NewHTTPServer(context.Background(), cfg, logging.NewNop()); err == nil {
		t.Fatalf("expected error for empty addr")
	}

	srv, services, err := NewHTTPServer(context.Background(), memoryConfig(), logging.NewNop())
	if err != nil {
		t.Fatalf("new http server: %v", err)
	}
	defer services.Close()

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected healthz 200, got %d", rec.Code)
	}
}

func TestFormatDBQueryForTrace(t *testing.T) {
	got := formatDBQueryForTrace("  SELECT id,\n\t name FROM adp_snapshots   WHERE name = $1 ")
	if got != "SELECT id, name FROM adp_snapshots WHERE name = $1" {
		t.Fatalf("unexpected formatted query %q", got)
	}

	long := formatDBQueryForTrace("SELECT " + strings.Repeat("x", 2*maxTracedQueryLength))
	if len(long) != maxTracedQueryLength+3 || !strings.HasSuffix(long, "...") {
		t.Fatalf("expected truncated query, got length %d", len(long))
	}
}
