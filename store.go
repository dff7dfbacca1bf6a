package advisor

import (
	"context"
	"errors"
)

var (
	// ErrSnapshotNotFound is returned by a Store for a user that never saved.
	ErrSnapshotNotFound = errors.New("snapshot not found")
	// ErrStoreUnavailable marks transient store failures, the operation can be retried.
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrNoRiskProfile is returned when recommendations are requested before
	// the questionnaire was completed.
	ErrNoRiskProfile = errors.New("no risk profile")
)

// Store persists one encoded snapshot per user id.
type Store interface {
	Load(ctx context.Context, user string) ([]byte, error)
	Save(ctx context.Context, user string, data []byte) error
}

// PriceFeed provides the latest known prices.
type PriceFeed interface {
	Prices(ctx context.Context) (map[Symbol]Money, error)
}

// IsRetryable reports whether err is a transient store failure.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable)
}
