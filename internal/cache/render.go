// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// render.go provides a Valkey-backed cache for rendered slide PNGs.
// Rendering a 1080x1080 slide is expensive; once produced, the image
// stays valid until the slide's content changes, so finished renders
// are kept here across requests and hydrated back onto the carousel
// aggregate before export.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// renderKeyPrefix is the Valkey key prefix for cached slide renders.
	renderKeyPrefix = "render:"

	// DefaultRenderTTL is how long a rendered slide stays cached.
	DefaultRenderTTL = 24 * time.Hour
)

// RenderCache stores finished slide PNGs in Valkey, keyed by carousel
// and slide id.
type RenderCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRenderCache creates a render cache backed by the given Valkey client.
func NewRenderCache(client *redis.Client, ttl time.Duration) *RenderCache {
	if ttl == 0 {
		ttl = DefaultRenderTTL
	}
	return &RenderCache{client: client, ttl: ttl}
}

// renderKey builds the Valkey key for one slide's render.
func renderKey(carouselID, slideID uuid.UUID) string {
	return fmt.Sprintf("%s%s:%s", renderKeyPrefix, carouselID, slideID)
}

// Get retrieves a cached slide PNG. Returns nil and false on miss.
func (rc *RenderCache) Get(ctx context.Context, carouselID, slideID uuid.UUID) ([]byte, bool) {
	val, err := rc.client.Get(ctx, renderKey(carouselID, slideID)).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("render cache get error", "slide", slideID, "error", err)
		return nil, false
	}
	slog.Debug("render cache hit", "slide", slideID)
	return val, true
}

// Set stores a slide PNG with the configured TTL.
func (rc *RenderCache) Set(ctx context.Context, carouselID, slideID uuid.UUID, png []byte) {
	if err := rc.client.Set(ctx, renderKey(carouselID, slideID), png, rc.ttl).Err(); err != nil {
		slog.Warn("render cache set error", "slide", slideID, "error", err)
	}
}

// Invalidate removes one slide's cached render. Called whenever a
// slide edit marks the in-memory render stale.
func (rc *RenderCache) Invalidate(ctx context.Context, carouselID, slideID uuid.UUID) {
	if err := rc.client.Del(ctx, renderKey(carouselID, slideID)).Err(); err != nil {
		slog.Warn("render cache invalidate error", "slide", slideID, "error", err)
	}
	slog.Debug("render cache invalidated", "slide", slideID)
}

// InvalidateCarousel removes every cached render for a carousel by
// scanning for its key prefix. Used when slides are deleted or the
// whole carousel is removed.
func (rc *RenderCache) InvalidateCarousel(ctx context.Context, carouselID uuid.UUID) {
	prefix := fmt.Sprintf("%s%s:", renderKeyPrefix, carouselID)
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := rc.client.Scan(ctx, cursor, prefix+"*", 100).Result()
		if err != nil {
			slog.Warn("render cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := rc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("render cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("render cache cleared for carousel", "carousel", carouselID, "deleted", deleted)
	}
}
