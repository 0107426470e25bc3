package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/tendant/content-items/pkg/contentstore"
)

const backendName = "redis"

// Config options for the Redis backend
type Config struct {
	Addr     string        // host:port
	Password string        // Optional password
	DB       int           // Database number
	Prefix   string        // Optional key prefix
	TTL      time.Duration // Expiration for saved values, zero keeps them forever
}

// Backend is a Redis implementation of the contentstore.Slot interface
type Backend struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
}

// New creates a new Redis slot backend
func New(config Config) (*Backend, error) {
	if config.Addr == "" {
		return nil, errors.New("redis address is required")
	}

	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})
	return NewWithClient(client, config.Prefix, config.TTL), nil
}

// NewWithClient creates a Redis slot backend on an existing client
func NewWithClient(client *redis.Client, prefix string, ttl time.Duration) *Backend {
	return &Backend{
		client: client,
		prefix: prefix,
		ttl:    ttl,
	}
}

// Ping checks connectivity to the Redis server
func (b *Backend) Ping(ctx context.Context) error {
	return b.client.Ping(ctx).Err()
}

// Close closes the underlying client
func (b *Backend) Close() error {
	return b.client.Close()
}

// Load reads the value stored under key
func (b *Backend) Load(ctx context.Context, key string) ([]byte, error) {
	data, err := b.client.Get(ctx, b.prefix+key).Bytes()
	if err == redis.Nil {
		return nil, fmt.Errorf("key %s: %w", key, contentstore.ErrSlotNotFound)
	} else if err != nil {
		return nil, &contentstore.SlotError{Backend: backendName, Key: key, Op: "load", Err: err}
	}
	return data, nil
}

// Save stores data under key
func (b *Backend) Save(ctx context.Context, key string, data []byte) error {
	if err := b.client.Set(ctx, b.prefix+key, data, b.ttl).Err(); err != nil {
		return &contentstore.SlotError{Backend: backendName, Key: key, Op: "save", Err: err}
	}
	return nil
}

// Delete removes key
func (b *Backend) Delete(ctx context.Context, key string) error {
	if err := b.client.Del(ctx, b.prefix+key).Err(); err != nil {
		return &contentstore.SlotError{Backend: backendName, Key: key, Op: "delete", Err: err}
	}
	return nil
}
