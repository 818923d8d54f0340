// Copyright (c) 2025-2026 iVision Agency
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides the byte-level caching layer used for catalog
// snapshots and other derived data, with in-memory and Redis backends.
package cache

import (
	"context"
	"time"
)

// Cache is the interface all backends implement. Values are []byte so
// the same interface serves both the in-process and the Redis backend.
// Implementations must be safe for concurrent use.
type Cache interface {
	// Get returns the value for key, or ErrCacheMiss when the key is
	// absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A zero TTL uses the
	// backend's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Has reports whether a key exists and has not expired.
	Has(ctx context.Context, key string) (bool, error)

	// Close releases any resources held by the cache.
	Close() error
}

// StatsProvider is an optional interface for caches that track
// hit/miss statistics.
type StatsProvider interface {
	Stats() Stats
	ResetStats()
}

// Stats holds cache counters since the last reset.
type Stats struct {
	Hits    int64
	Misses  int64
	Sets    int64
	Items   int
	HitRate float64
	Size    int64
}

// Error is the error type for cache operations.
type Error string

func (e Error) Error() string {
	return string(e)
}

const (
	// ErrCacheMiss indicates the key was not found or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
