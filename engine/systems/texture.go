package systems

import (
	"errors"
	"fmt"
	stdmath "math"

	"github.com/spaghettifunk/vicki/engine/assets"
)

// ErrImageIDSpaceExhausted is the panic value raised when the logical id
// counter would wrap. Ids are never reused, so exhausting a 64-bit counter
// is a programming-limits violation, not a recoverable load error.
var ErrImageIDSpaceExhausted = errors.New("ran out of image ids")

// CacheResponse is the outcome of a texture cache load. Exactly one Miss
// is produced per distinct map; every later load of the same map is a Hit
// carrying the same id.
type CacheResponse struct {
	ID  uint64
	Hit bool
	// Image is the decoded pixel data, set only on a miss. The consumer
	// registers it with the renderer; the cache keeps no pixel copy.
	Image *assets.RawImage
}

type cachedImage struct {
	// Retained so the memoized result stays alive in the lazy cache for
	// the remainder of the process.
	lazyHandle *assets.LazyHandle
	id         uint64
}

// TextureCache deduplicates material map loads. Asset maps are keyed by
// exact path, placeholder maps by their 4-byte color; the two spaces can
// never collide. Entries are never evicted: this is a load-once startup
// cache, and its memory is bounded by scene content.
type TextureCache struct {
	lazyCache         *assets.LazyCache
	assetManager      *assets.AssetManager
	loadedImages      map[string]*cachedImage
	placeholderImages map[[4]uint8]uint64
	nextID            uint64
}

func NewTextureCache(lazyCache *assets.LazyCache, assetManager *assets.AssetManager) *TextureCache {
	return &TextureCache{
		lazyCache:         lazyCache,
		assetManager:      assetManager,
		loadedImages:      make(map[string]*cachedImage),
		placeholderImages: make(map[[4]uint8]uint64),
	}
}

// Load resolves one material map to its logical id, loading and decoding
// the image on first encounter. Load failures are not cached; an identical
// later request retries the load.
func (tc *TextureCache) Load(m assets.MeshMaterialMap) (*CacheResponse, error) {
	switch m.Kind {
	case assets.MapKindAsset:
		if cached, ok := tc.loadedImages[m.Path]; ok {
			return &CacheResponse{ID: cached.id, Hit: true}, nil
		}

		lazyHandle := tc.lazyCache.Submit(assets.LoadImage{Path: m.Path})
		value, err := lazyHandle.Eval()
		if err != nil {
			return nil, fmt.Errorf("failed to load mesh map: %w", err)
		}
		image := value.(*assets.RawImage)

		id := tc.allocID()
		tc.loadedImages[m.Path] = &cachedImage{
			lazyHandle: lazyHandle,
			id:         id,
		}
		if tc.assetManager != nil {
			tc.assetManager.MarkLoaded(m.Path)
		}

		return &CacheResponse{ID: id, Image: image}, nil

	case assets.MapKindPlaceholder:
		if id, ok := tc.placeholderImages[m.Color]; ok {
			return &CacheResponse{ID: id, Hit: true}, nil
		}

		// Placeholders never touch the lazy cache; the 1x1 image is
		// built directly from the color constant.
		id := tc.allocID()
		tc.placeholderImages[m.Color] = id

		return &CacheResponse{ID: id, Image: assets.NewRawImageFromColor(m.Color)}, nil

	default:
		return nil, fmt.Errorf("unknown mesh material map kind %d", m.Kind)
	}
}

func (tc *TextureCache) allocID() uint64 {
	if tc.nextID == stdmath.MaxUint64 {
		panic(ErrImageIDSpaceExhausted)
	}
	id := tc.nextID
	tc.nextID++
	return id
}
