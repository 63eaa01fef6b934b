package cache

import (
	"context"

	"github.com/dgraph-io/ristretto"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/store"
	ristretto_store "github.com/eko/gocache/store/ristretto/v4"
)

var S *ristretto_store.RistrettoStore

func NewStore() error {
	inner, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 100_000,
		MaxCost:     64 << 20,
		BufferItems: 64,
	})
	if err != nil {
		return err
	}

	S = ristretto_store.NewRistretto(inner)
	return nil
}

// Invalidate drops every cache entry bearing one of the given tags. Each
// mutation calls this synchronously right after its write, which bounds the
// staleness window of tag-scoped reads.
func Invalidate(ctx context.Context, tags ...string) error {
	cacheManager := cache.New[any](S)
	return cacheManager.Invalidate(ctx, store.WithInvalidateTags(tags))
}
