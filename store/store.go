// Package store implements advisor.Store on top of memory, files, redis and
// postgres.
package store

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"

	"github.com/etnz/advisor"
	"github.com/etnz/advisor/config"
)

// Open returns the store selected by cfg.Store.
func Open(ctx context.Context, cfg *config.Config) (advisor.Store, error) {
	switch cfg.Store {
	case "memory":
		return NewMemory(), nil
	case "file", "":
		return NewFile(cfg.DataDir), nil
	case "redis":
		return NewRedis(ctx, cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	case "postgres":
		return NewSQL(ctx, cfg.PostgresDSN())
	default:
		return nil, fmt.Errorf("unknown store %q, want memory, file, redis or postgres", cfg.Store)
	}
}

// classify marks transient failures as advisor.ErrStoreUnavailable. Other
// errors are returned as is.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	var netErr net.Error
	switch {
	case errors.Is(err, context.DeadlineExceeded),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, io.EOF),
		errors.As(err, &netErr):
		return fmt.Errorf("%s: %w: %w", op, advisor.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}
