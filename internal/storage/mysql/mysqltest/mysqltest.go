// Package mysqltest starts a throwaway MySQL container with the schema applied.
package mysqltest

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"testing"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
)

// migrationsDir honours MIGRATIONS_DIR, else the repo's migrations/ folder.
func migrationsDir(t *testing.T) string {
	t.Helper()
	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		return dir
	}
	_, file, _, ok := runtime.Caller(0)
	if !ok {
		t.Fatalf("MIGRATIONS_DIR not set and caller path unknown")
	}
	// internal/storage/mysql/mysqltest -> repo root
	return filepath.Join(filepath.Dir(file), "..", "..", "..", "..", "migrations")
}

func ApplyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := migrationsDir(t)

	st, err := os.Stat(dir)
	if err != nil || !st.IsDir() {
		t.Fatalf("migrations dir %s is not a directory or missing", dir)
	}
	ents, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("read migrations dir: %v", err)
	}
	var files []string
	for _, e := range ents {
		if !e.IsDir() && filepath.Ext(e.Name()) == ".sql" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	if len(files) == 0 {
		t.Fatalf("no .sql files in %s", dir)
	}
	sort.Strings(files)
	for _, f := range files {
		sqlBytes, err := os.ReadFile(f)
		if err != nil {
			t.Fatalf("read %s: %v", f, err)
		}
		if _, err := db.Exec(string(sqlBytes)); err != nil {
			t.Fatalf("exec %s: %v", f, err)
		}
	}
}

// Start runs MySQL 8 in Docker, waits for it and applies migrations.
// The container is purged when the test ends.
func Start(t *testing.T) *sql.DB {
	t.Helper()

	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	runOpts := &dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=analytics",
		},
	}
	resource, err := pool.RunWithOptions(runOpts, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	hostPort := resource.GetPort("3306/tcp")
	dsn := fmt.Sprintf("root:%s@tcp(127.0.0.1:%s)/%s?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		"root", hostPort, "analytics")

	var db *sql.DB
	if err := pool.Retry(func() error {
		var e error
		db, e = sql.Open("mysql", dsn)
		if e != nil {
			return e
		}
		return db.Ping()
	}); err != nil {
		t.Fatalf("connect mysql: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	ApplyMigrations(t, db)
	return db
}

// SeedReviews inserts raw rows into fact_customer_reviews. A nil text is stored as NULL.
func SeedReviews(t *testing.T, db *sql.DB, rows ...Row) {
	t.Helper()
	for _, r := range rows {
		if _, err := db.Exec(
			`INSERT INTO fact_customer_reviews (ReviewID, CustomerID, ProductID, ReviewDate, Rating, ReviewText) VALUES (?, ?, ?, ?, ?, ?)`,
			r.ReviewID, r.CustomerID, r.ProductID, r.ReviewDate, r.Rating, r.ReviewText,
		); err != nil {
			t.Fatalf("seed review %d: %v", r.ReviewID, err)
		}
	}
}

type Row struct {
	ReviewID, CustomerID, ProductID int64
	ReviewDate                      string
	Rating                          int
	ReviewText                      *string
}
