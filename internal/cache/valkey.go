// Package cache keeps rendered print pages in Valkey (Redis-compatible) so
// repeated print and export requests skip the layout pass.
package cache

import (
	"context"
	"fmt"
	"log/slog"
	"net"
	"time"

	"github.com/redis/go-redis/v9"
)

// connectTimeout bounds the startup ping when ctx carries no deadline.
const connectTimeout = 5 * time.Second

// ConnectValkey opens the client backing the print page cache and pings it.
// The client is closed again when the server does not answer.
func ConnectValkey(ctx context.Context, host, port, password string) (*redis.Client, error) {
	addr := net.JoinHostPort(host, port)
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DialTimeout: connectTimeout,
	})

	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, connectTimeout)
		defer cancel()
	}
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("connect print cache %s: %w", addr, err)
	}

	slog.Info("print cache connected", "addr", addr)
	return client, nil
}
