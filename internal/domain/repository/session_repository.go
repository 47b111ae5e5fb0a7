package repository

import (
	"context"
)

// SessionRepository is the durable key-value store behind the terminal
// session's write-through persistence. Get returning ok=false means the
// key has never been written; callers treat that as the default value,
// never as an error.
type SessionRepository interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
