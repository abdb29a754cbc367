package app

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"slices"
	"testing"

	_ "github.com/mattn/go-sqlite3"

	"surfsup-server/internal/config"
	db "surfsup-server/internal/db"
)

const datasetSchema = `
CREATE TABLE station (id INTEGER PRIMARY KEY, station TEXT, name TEXT, latitude FLOAT, longitude FLOAT, elevation FLOAT);
CREATE TABLE measurement (id INTEGER PRIMARY KEY, station TEXT, date TEXT, prcp FLOAT, tobs FLOAT);
INSERT INTO station (station, name, latitude, longitude, elevation) VALUES ('USC00519397', 'WAIKIKI 717.2, HI US', 21.2716, -157.8168, 3);
INSERT INTO measurement (station, date, prcp, tobs) VALUES
  ('USC00519397', '2016-08-23', 0.08, 81),
  ('USC00519397', '2017-08-23', NULL, 79);
`

// createDataset writes a dataset file shaped like the published one, with no
// migrations table and the default rollback journal.
func createDataset(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "hawaii.sqlite")
	seed, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("open seed: %v", err)
	}
	if _, err := seed.Exec(datasetSchema); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if err := seed.Close(); err != nil {
		t.Fatalf("close seed: %v", err)
	}
	return path
}

func schemaObjects(t *testing.T, path string) ([]string, string) {
	t.Helper()
	conn, err := sql.Open("sqlite3", "file:"+path+"?mode=ro")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer func() { _ = conn.Close() }()

	rows, err := conn.Query(`SELECT name FROM sqlite_master ORDER BY name`)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	defer func() { _ = rows.Close() }()
	var names []string
	for rows.Next() {
		var n string
		if err := rows.Scan(&n); err != nil {
			t.Fatalf("scan: %v", err)
		}
		names = append(names, n)
	}
	if err := rows.Err(); err != nil {
		t.Fatalf("rows: %v", err)
	}

	var journal string
	if err := conn.QueryRow(`PRAGMA journal_mode`).Scan(&journal); err != nil {
		t.Fatalf("journal_mode: %v", err)
	}
	return names, journal
}

// loadConfig reads configuration the way cmd/server does, with only the
// dataset path set.
func loadConfig(t *testing.T, path string, extra map[string]string) config.Config {
	t.Helper()
	for _, k := range []string{
		"APP_ENV", "LOG_LEVEL", "HTTP_ADDR", "HTTP_SHUTDOWN_TIMEOUT",
		"DB_DRIVER", "DB_DSN", "DB_READ_ONLY", "DB_LOG_SQL",
		"DB_MAX_OPEN_CONNS", "DB_MAX_IDLE_CONNS", "DB_CONN_MAX_LIFETIME",
	} {
		t.Setenv(k, "")
	}
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
	t.Setenv("SQLITE_PATH", path)
	for k, v := range extra {
		t.Setenv(k, v)
	}
	cfg, err := config.LoadFromEnv()
	if err != nil {
		t.Fatalf("LoadFromEnv: %v", err)
	}
	return cfg
}

func TestOpenDataset_DefaultLeavesFileUntouched(t *testing.T) {
	path := createDataset(t)
	before, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dataset: %v", err)
	}
	namesBefore, journalBefore := schemaObjects(t, path)

	cfg := loadConfig(t, path, nil)
	conn, dataset, err := openDataset(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("openDataset: %v", err)
	}
	if dataset.Len() != 2 || dataset.StationCount() != 1 {
		t.Errorf("dataset = %d measurements / %d stations, want 2/1", dataset.Len(), dataset.StationCount())
	}
	if err := db.Close(conn); err != nil {
		t.Fatalf("Close: %v", err)
	}

	namesAfter, journalAfter := schemaObjects(t, path)
	if !slices.Equal(namesBefore, namesAfter) {
		t.Errorf("sqlite_master changed: %v -> %v", namesBefore, namesAfter)
	}
	if journalAfter != journalBefore {
		t.Errorf("journal_mode changed: %q -> %q", journalBefore, journalAfter)
	}
	after, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dataset: %v", err)
	}
	if !bytes.Equal(before, after) {
		t.Errorf("dataset file changed: %d -> %d bytes", len(before), len(after))
	}
	if _, err := os.Stat(path + "-wal"); err == nil {
		t.Errorf("unexpected WAL file next to dataset")
	}
}

func TestOpenDataset_WritableAppliesMigrations(t *testing.T) {
	path := createDataset(t)

	cfg := loadConfig(t, path, map[string]string{"DB_READ_ONLY": "false"})
	conn, _, err := openDataset(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("openDataset: %v", err)
	}
	if err := db.Close(conn); err != nil {
		t.Fatalf("Close: %v", err)
	}

	names, _ := schemaObjects(t, path)
	if !slices.Contains(names, "schema_migrations") {
		t.Errorf("sqlite_master = %v, want schema_migrations after a writable start", names)
	}
}

func TestOpenDataset_MissingFile(t *testing.T) {
	cfg := loadConfig(t, filepath.Join(t.TempDir(), "absent.sqlite"), nil)
	if conn, _, err := openDataset(context.Background(), cfg, nil); err == nil {
		_ = db.Close(conn)
		t.Fatal("openDataset on a missing file = nil error")
	}
	if _, err := os.Stat(cfg.SQLitePath); err == nil {
		t.Error("openDataset created the missing dataset file")
	}
}
