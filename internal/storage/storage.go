package storage

import (
	"context"
)

// Store is the durable local key-value storage behind the session and cart
// records. Values are JSON-encoded; Get reports presence separately from
// decode failure so callers can tell "absent" from "malformed".
type Store interface {
	Get(ctx context.Context, key string, value any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
	Close() error
}

const (
	SessionKey = "agrihubUser"
	CartKey    = "agrihubCart"
)
