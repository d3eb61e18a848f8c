// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

// page.go provides a Valkey-backed cache for rendered print pages.
// Rendering a print page loads the document and its template from the
// store; the resulting HTML is kept in Valkey until the document changes.
package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// printKeyPrefix is the Valkey key prefix for cached print pages.
	printKeyPrefix = "print:"

	// DefaultPageTTL is how long a rendered page stays cached.
	DefaultPageTTL = 10 * time.Minute
)

// PageCache manages rendered page caching in Valkey. A nil *PageCache is
// valid and caches nothing, which is how the service runs without Valkey.
type PageCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewPageCache creates a new page cache backed by the given Valkey client.
func NewPageCache(client *redis.Client, ttl time.Duration) *PageCache {
	if ttl == 0 {
		ttl = DefaultPageTTL
	}
	return &PageCache{client: client, ttl: ttl}
}

// PrintKey returns the cache key of a document's print page.
func PrintKey(docID string) string {
	return printKeyPrefix + docID
}

// Get retrieves cached HTML. The second result is false on a miss.
func (pc *PageCache) Get(ctx context.Context, key string) ([]byte, bool) {
	if pc == nil {
		return nil, false
	}
	val, err := pc.client.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, false
	}
	if err != nil {
		slog.Warn("page cache get error", "key", key, "error", err)
		return nil, false
	}
	slog.Debug("page cache hit", "key", key)
	return val, true
}

// Set stores rendered HTML with the configured TTL.
func (pc *PageCache) Set(ctx context.Context, key string, html []byte) {
	if pc == nil {
		return
	}
	if err := pc.client.Set(ctx, key, html, pc.ttl).Err(); err != nil {
		slog.Warn("page cache set error", "key", key, "error", err)
	}
}

// InvalidateDocument removes the cached pages of one document.
func (pc *PageCache) InvalidateDocument(ctx context.Context, docID string) {
	if pc == nil {
		return
	}
	if err := pc.client.Del(ctx, PrintKey(docID)).Err(); err != nil {
		slog.Warn("page cache invalidate error", "document", docID, "error", err)
		return
	}
	slog.Debug("page cache invalidated", "document", docID)
}

// InvalidateAll removes all cached pages by scanning for the prefix.
// Used at startup, since the template files may have changed and any page
// could be affected.
func (pc *PageCache) InvalidateAll(ctx context.Context) {
	if pc == nil {
		return
	}
	var cursor uint64
	var deleted int
	for {
		keys, nextCursor, err := pc.client.Scan(ctx, cursor, printKeyPrefix+"*", 100).Result()
		if err != nil {
			slog.Warn("page cache scan error", "error", err)
			return
		}
		if len(keys) > 0 {
			if err := pc.client.Del(ctx, keys...).Err(); err != nil {
				slog.Warn("page cache bulk delete error", "error", err)
			}
			deleted += len(keys)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
	if deleted > 0 {
		slog.Info("page cache fully cleared", "deleted", deleted)
	}
}
