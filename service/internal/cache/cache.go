// Package cache keeps recently used hand payloads in Redis.
package cache

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/jason-s-yu/riichi/service/internal/archive"
)

// ErrMiss is returned when the key is absent or expired.
var ErrMiss = errors.New("cache miss")

const keyPrefix = "riichi:hand:"

// Client is the subset of go-redis used by Cache. *redis.Client and
// *redis.ClusterClient satisfy it.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
}

// Entry is a cached payload with the compression it was stored with and the
// digest of its uncompressed bytes.
type Entry struct {
	Compression archive.Compression
	Digest      string
	Payload     []byte
}

// Cache stores compressed hand payloads by record id.
type Cache struct {
	client Client
	ttl    time.Duration
}

// New returns a cache writing entries that expire after ttl. A zero ttl
// keeps entries until evicted.
func New(client Client, ttl time.Duration) *Cache {
	return &Cache{client: client, ttl: ttl}
}

// Dial connects to the Redis server at addr.
func Dial(ctx context.Context, addr string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{Addr: addr, DB: db})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return client, nil
}

// Key is the Redis key for a record.
func Key(id uuid.UUID) string { return keyPrefix + id.String() }

// Get returns the entry for id or ErrMiss.
func (c *Cache) Get(ctx context.Context, id uuid.UUID) (Entry, error) {
	raw, err := c.client.Get(ctx, Key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return Entry{}, ErrMiss
	}
	if err != nil {
		return Entry{}, fmt.Errorf("cache get %s: %w", id, err)
	}
	return decodeEntry(raw)
}

// Set stores e under id.
func (c *Cache) Set(ctx context.Context, id uuid.UUID, e Entry) error {
	if err := c.client.Set(ctx, Key(id), encodeEntry(e), c.ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", id, err)
	}
	return nil
}

// An entry is the compression name and the digest, each followed by a zero
// byte, then the payload.
func encodeEntry(e Entry) []byte {
	out := make([]byte, 0, len(e.Compression)+len(e.Digest)+2+len(e.Payload))
	out = append(out, string(e.Compression)...)
	out = append(out, 0)
	out = append(out, e.Digest...)
	out = append(out, 0)
	return append(out, e.Payload...)
}

func decodeEntry(raw []byte) (Entry, error) {
	name, rest, ok := bytes.Cut(raw, []byte{0})
	if !ok {
		return Entry{}, errors.New("cache entry has no compression header")
	}
	digest, payload, ok := bytes.Cut(rest, []byte{0})
	if !ok {
		return Entry{}, errors.New("cache entry has no digest header")
	}
	c, err := archive.ParseCompression(string(name))
	if err != nil {
		return Entry{}, fmt.Errorf("cache entry: %w", err)
	}
	return Entry{Compression: c, Digest: string(digest), Payload: payload}, nil
}
