package repository

import "context"

// KeyValueStore brauzer localStorage ga o'xshash oddiy kalit-qiymat ombori.
// Get kalit yo'q bo'lsa ok=false qaytaradi.
type KeyValueStore interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
}
