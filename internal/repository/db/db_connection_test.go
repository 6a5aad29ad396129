package db

import (
	"path/filepath"
	"testing"
)

func TestDriverName(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: DriverSQLite},
		{in: "sqlite3", want: DriverSQLite},
		{in: "postgres", want: DriverPostgres},
		{in: "pgx", want: DriverPostgres},
		{in: "mongodb", wantErr: true},
	}
	for _, tt := range tests {
		got, err := DriverName(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Fatalf("DriverName(%q): expected error", tt.in)
			}
			continue
		}
		if err != nil || got != tt.want {
			t.Fatalf("DriverName(%q) = (%q, %v), want %q", tt.in, got, err, tt.want)
		}
	}
}

func TestInitDB_SQLiteCreatesSchema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "portfolio.db")

	conn, driver, err := InitDB(Options{Path: path})
	if err != nil {
		t.Fatalf("InitDB: %v", err)
	}
	defer conn.Close()

	if driver != DriverSQLite {
		t.Fatalf("driver = %q, want %q", driver, DriverSQLite)
	}
	for _, table := range []string{"documents", "users", "content_events"} {
		var name string
		err := conn.QueryRow(`SELECT name FROM sqlite_master WHERE type = 'table' AND name = ?`, table).Scan(&name)
		if err != nil {
			t.Fatalf("table %s missing: %v", table, err)
		}
	}

	// Reopening must be idempotent.
	again, _, err := InitDB(Options{Path: path})
	if err != nil {
		t.Fatalf("second InitDB: %v", err)
	}
	_ = again.Close()
}

func TestInitDB_PostgresRequiresDSN(t *testing.T) {
	if _, _, err := InitDB(Options{Driver: "postgres"}); err == nil {
		t.Fatalf("expected error for empty dsn")
	}
}
