//go:build integration || !unit

package integration

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	_ "github.com/go-sql-driver/mysql"
	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"

	"travel_reco/internal/adapters/catalogsrc"
	httpserver "travel_reco/internal/adapters/http_server"
	"travel_reco/internal/app"
	mysqlrepo "travel_reco/internal/storage/mysql"
)

// ---------- helpers ----------

func repoPath(parts ...string) string {
	return filepath.Join(append([]string{"..", ".."}, parts...)...)
}

func applyMigrations(t *testing.T, db *sql.DB) {
	t.Helper()
	dir := os.Getenv("MIGRATIONS_DIR")
	if dir == "" {
		dir = repoPath("migrations")
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

// ---------- the test ----------

func TestHTTP_EndToEnd_IngestThenSearch(t *testing.T) {
	// Start isolated MySQL container
	pool, err := dockertest.NewPool("")
	if err != nil {
		t.Fatalf("dockertest: %v", err)
	}
	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "mysql",
		Tag:        "8.0.36",
		Env: []string{
			"MYSQL_ROOT_PASSWORD=root",
			"MYSQL_DATABASE=travel",
		},
	}, func(hc *docker.HostConfig) {
		hc.AutoRemove = true
		hc.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	if err != nil {
		t.Fatalf("run mysql: %v", err)
	}
	t.Cleanup(func() { _ = pool.Purge(resource) })

	dsn := fmt.Sprintf("root:root@tcp(127.0.0.1:%s)/travel?parseTime=true&multiStatements=true&charset=utf8mb4,utf8&loc=UTC",
		resource.GetPort("3306/tcp"))

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

	applyMigrations(t, db)

	repo := mysqlrepo.New(db)
	ctx := context.Background()

	// Ingest the bundled document
	src, err := catalogsrc.Open(repoPath("data", "travel_recommendation_api.json"), time.Second)
	if err != nil {
		t.Fatalf("open source: %v", err)
	}
	info, err := app.NewImportService(src, repo).Import(ctx)
	if err != nil {
		t.Fatalf("import: %v", err)
	}
	if info.Temples == 0 || info.Beaches == 0 {
		t.Fatalf("expected temples and beaches in bundled data: %+v", info)
	}

	// Load from MySQL the way cmd/api does and serve it
	sess := app.NewLoader(repo).Load(ctx)
	if sess.Err() != nil {
		t.Fatalf("load from mysql: %v", sess.Err())
	}
	srv := httpserver.New(httpserver.Options{})
	srv.MountHandlers(&httpserver.Handlers{Q: app.NewQueryService(sess, nil, 0)})
	ts := httptest.NewServer(srv.Mux())
	defer ts.Close()

	res, err := http.Get(ts.URL + "/v1/search?q=temples")
	if err != nil {
		t.Fatalf("GET: %v", err)
	}
	defer res.Body.Close()
	if res.StatusCode != http.StatusOK {
		t.Fatalf("status %d", res.StatusCode)
	}

	var body struct {
		Sections []struct {
			Title string            `json:"title"`
			Items []json.RawMessage `json:"items"`
		} `json:"sections"`
	}
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Sections) != 1 || body.Sections[0].Title != app.TitleTemples || len(body.Sections[0].Items) != info.Temples {
		t.Fatalf("unexpected body: %+v", body)
	}
}
