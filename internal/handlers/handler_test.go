// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// handler_test.go provides shared test infrastructure for handler
// integration tests. Tests are skipped when PostgreSQL is unavailable;
// the render cache is exercised only when Valkey is reachable too.
package handlers

import (
	"context"
	"database/sql"
	"net/http"
	"os"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"
	"github.com/redis/go-redis/v9"

	"slidepress/internal/cache"
	"slidepress/internal/carousel"
	"slidepress/internal/compose"
	"slidepress/internal/database"
	"slidepress/internal/models"
	"slidepress/internal/store"
)

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// testDB opens a connection to the test PostgreSQL and runs migrations.
func testDB(t *testing.T) *sql.DB {
	t.Helper()

	host := envOr("POSTGRES_HOST", "localhost")
	port := envOr("POSTGRES_PORT", "5432")
	user := envOr("POSTGRES_USER", "slidepress")
	pass := envOr("POSTGRES_PASSWORD", "changeme")
	name := envOr("POSTGRES_DB", "slidepress")
	dsn := "postgres://" + user + ":" + pass + "@" + host + ":" + port + "/" + name + "?sslmode=disable"

	db, err := sql.Open("pgx", dsn)
	if err != nil {
		t.Skipf("skipping: cannot open DB: %v", err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		t.Skipf("skipping: DB not reachable: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		db.Close()
		t.Fatalf("migrate: %v", err)
	}
	goose.SetBaseFS(nil)

	t.Cleanup(func() { db.Close() })
	return db
}

// testRenderCache returns a Valkey-backed render cache, or nil when
// Valkey is unreachable. Handlers treat a nil cache as "renders are
// not persisted", which most tests are fine with.
func testRenderCache(t *testing.T) *cache.RenderCache {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: envOr("VALKEY_HOST", "localhost") + ":" + envOr("VALKEY_PORT", "6379"),
		DB:   15,
	})
	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil
	}
	t.Cleanup(func() {
		keys, _ := client.Keys(ctx, "render:*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		client.Close()
	})
	return cache.NewRenderCache(client, 1*time.Minute)
}

// testAPI wires an API over real stores with no object storage. Slides
// with solid-color backgrounds render fully without S3.
func testAPI(t *testing.T) (*API, *sql.DB) {
	t.Helper()

	db := testDB(t)
	assetStore := store.NewAssetStore(db)

	composer, err := compose.New()
	if err != nil {
		t.Fatalf("compose.New: %v", err)
	}
	renderer := carousel.NewRenderer(composer, NewStorageSource(nil, assetStore))

	api := NewAPI(
		store.NewProjectStore(db),
		assetStore,
		store.NewTemplateStore(db),
		store.NewCarouselStore(db),
		nil,
		testRenderCache(t),
		renderer,
	)
	return api, db
}

// testRouter mounts the carousel-facing routes the tests exercise.
func testRouter(api *API) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/projects", func(r chi.Router) {
		r.Post("/", api.ProjectCreate)
		r.Get("/", api.ProjectList)
		r.Route("/{projectID}", func(r chi.Router) {
			r.Get("/", api.ProjectGet)
			r.Delete("/", api.ProjectDelete)
			r.Route("/carousel", func(r chi.Router) {
				r.Post("/", api.CarouselCreate)
				r.Get("/", api.CarouselGet)
				r.Post("/slides", api.SlideAdd)
				r.Delete("/slides", api.SlideDelete)
				r.Post("/slides/reorder", api.SlideReorder)
				r.Patch("/slides", api.SlideEdit)
				r.Put("/slides/background", api.SlideBackground)
				r.Post("/render", api.CarouselRender)
			})
			r.Get("/export", api.Export)
		})
	})
	return r
}

// testProjectHandlers creates a project directly through the store and
// registers cleanup.
func testProjectHandlers(t *testing.T, api *API, db *sql.DB, name string) *models.Project {
	t.Helper()
	p, err := api.projectStore.Create(name)
	if err != nil {
		t.Fatalf("create project: %v", err)
	}
	t.Cleanup(func() {
		db.Exec("DELETE FROM projects WHERE id = $1", p.ID)
	})
	return p
}

// mustCarousel creates and persists a carousel for the project.
func mustCarousel(t *testing.T, api *API, projectID uuid.UUID) *models.CarouselOutput {
	t.Helper()
	c := carousel.NewCarousel(projectID, nil)
	if err := api.carouselStore.Create(c); err != nil {
		t.Fatalf("create carousel: %v", err)
	}
	return c
}
