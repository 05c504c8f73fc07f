package ports

import "context"

// Preferences reads and writes boolean site options by key.
type Preferences interface {
	Bool(ctx context.Context, key string) (bool, error)
	SetBool(ctx context.Context, key string, v bool) error
}
