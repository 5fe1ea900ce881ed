package repository

import "context"

// CacheRepository stores serialized lookup results keyed by canonical query.
// A miss is reported with ok=false and a nil error.
type CacheRepository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key string, value string) error
}
