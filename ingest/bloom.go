package ingest

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"credcheck/types"

	"github.com/redis/go-redis/v9"
)

// BloomConfig configures the RedisBloom connection and key.
type BloomConfig struct {
	Addr     string // e.g. localhost:6379
	Password string
	DB       int
	Key      string // redis key for the bloom filter
	TTL      time.Duration
	// Capacity sets the initial BF.RESERVE capacity (number of items)
	Capacity int
	// ErrorRate sets the desired false positive probability (e.g. 0.001)
	ErrorRate float64
}

// RedisBloom is a minimal Redis-backed Bloom wrapper using RedisBloom
// commands. It is an advisory fast path only: a positive answer means an item
// with the same normalized link+title was probably embedded recently, so the
// ingestion job may skip the embedding call. It never substitutes for the
// store's own id check.
type RedisBloom struct {
	client *redis.Client
	key    string
	ttl    time.Duration
}

// NewRedisBloomFromEnv creates a RedisBloom client using environment variables
// REDIS_ADDR, REDIS_PASS, BLOOM_KEY (optional), BLOOM_TTL_SECONDS (optional).
// Returns nil when REDIS_ADDR is unset; the bloom fast path is optional.
func NewRedisBloomFromEnv() (*RedisBloom, error) {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		return nil, nil
	}

	key := os.Getenv("BLOOM_KEY")
	if key == "" {
		key = "news:bloom"
	}
	ttl := 24 * time.Hour
	if t := os.Getenv("BLOOM_TTL_SECONDS"); t != "" {
		if secs, err := strconv.Atoi(t); err == nil && secs > 0 {
			ttl = time.Duration(secs) * time.Second
		}
	}

	cfg := BloomConfig{
		Addr:      addr,
		Password:  os.Getenv("REDIS_PASS"),
		Key:       key,
		TTL:       ttl,
		Capacity:  100000,
		ErrorRate: 0.001,
	}
	return NewRedisBloom(cfg)
}

// NewRedisBloom creates a RedisBloom wrapper and verifies connectivity.
func NewRedisBloom(cfg BloomConfig) (*RedisBloom, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to redis at %s: %w", cfg.Addr, err)
	}

	rb := &RedisBloom{client: client, key: cfg.Key, ttl: cfg.TTL}

	// Reserve the filter up front when the key does not exist yet. BF.ADD
	// auto-creates a filter with server defaults, so a reserve failure
	// (e.g. missing RedisBloom module) is non-fatal.
	exists, err := client.Exists(ctx, cfg.Key).Result()
	if err == nil && exists == 0 {
		_ = client.Do(ctx, "BF.RESERVE", cfg.Key, fmt.Sprintf("%f", cfg.ErrorRate), cfg.Capacity).Err()
	}

	return rb, nil
}

// Close closes the underlying Redis client
func (r *RedisBloom) Close() error {
	return r.client.Close()
}

// Exists checks if the hashed value is present in the bloom filter.
func (r *RedisBloom) Exists(hash string) (bool, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	res, err := r.client.Do(ctx, "BF.EXISTS", r.key, hash).Result()
	if err != nil {
		return false, err
	}

	switch v := res.(type) {
	case int64:
		return v == 1, nil
	case string:
		return v == "1", nil
	default:
		return false, fmt.Errorf("unexpected BF.EXISTS response type %T: %v", res, res)
	}
}

// Add inserts the hashed value into the bloom filter and ensures TTL on the key.
func (r *RedisBloom) Add(hash string) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := r.client.Do(ctx, "BF.ADD", r.key, hash).Err(); err != nil {
		return err
	}

	// Sliding window TTL: reset the expire on each add so the filter stays
	// active for `ttl` after the most recent insertion.
	return r.client.Expire(ctx, r.key, r.ttl).Err()
}

// NormalizeAndHash normalizes the record's link and title and returns a
// SHA-256 hex hash of `normalizedLink|normalizedTitle`.
func NormalizeAndHash(record types.NewsRecord) string {
	combined := normalizeURL(record.Link) + "|" + normalizeTitle(record.Title)
	h := sha256.Sum256([]byte(combined))
	return hex.EncodeToString(h[:])
}

func normalizeTitle(t string) string {
	t = strings.ToLower(strings.TrimSpace(t))
	// collapse multiple whitespace
	return strings.Join(strings.Fields(t), " ")
}

func normalizeURL(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}
	u, err := url.Parse(raw)
	if err != nil {
		return strings.ToLower(raw)
	}

	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""

	// Remove common tracking query parameters
	q := u.Query()
	for k := range q {
		lk := strings.ToLower(k)
		if strings.HasPrefix(lk, "utm_") || lk == "fbclid" || lk == "gclid" {
			q.Del(k)
		}
	}
	u.RawQuery = q.Encode()

	return strings.TrimRight(u.String(), "/")
}
