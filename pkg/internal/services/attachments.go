package services

import (
	"context"
	"fmt"
	"image"
	"net/http"
	"time"

	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"

	localCache "github.com/chirper-app/chirper/pkg/internal/cache"
	"github.com/chirper-app/chirper/pkg/internal/models"
	"github.com/eko/gocache/lib/v4/cache"
	"github.com/eko/gocache/lib/v4/marshaler"
	"github.com/eko/gocache/lib/v4/store"
	"github.com/rs/zerolog/log"
)

var attachmentClient = &http.Client{Timeout: 10 * time.Second}

// ResolveImageDimensions reads just enough of an already-hosted image to get
// its pixel size. Hosted images are immutable once uploaded, so hits are
// cached for a long while; a failure only costs the layout hint and yields
// nil.
func ResolveImageDimensions(url string) *models.ImageDimensions {
	cacheManager := cache.New[any](localCache.S)
	marshal := marshaler.New(cacheManager)
	ctx := context.Background()

	cacheKey := fmt.Sprintf("image-dimensions#%s", url)
	if hit, err := marshal.Get(ctx, cacheKey, new(models.ImageDimensions)); err == nil {
		return hit.(*models.ImageDimensions)
	}

	dimensions, err := fetchImageDimensions(ctx, url)
	if err != nil {
		log.Debug().Err(err).Str("url", url).Msg("Unable to resolve image dimensions...")
		return nil
	}

	_ = marshal.Set(
		ctx,
		cacheKey,
		*dimensions,
		store.WithExpiration(12*time.Hour),
		store.WithTags([]string{"image-dimensions"}),
	)

	return dimensions
}

func fetchImageDimensions(ctx context.Context, url string) (*models.ImageDimensions, error) {
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	response, err := attachmentClient.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("image host answered %d", response.StatusCode)
	}

	config, _, err := image.DecodeConfig(response.Body)
	if err != nil {
		return nil, err
	}

	return &models.ImageDimensions{Width: config.Width, Height: config.Height}, nil
}
