package memory

import (
	"fmt"
	"time"

	"github.com/patrickmn/go-cache"
)

// AudioCacheRepository keeps synthesized speech keyed by legend and text.
type AudioCacheRepository struct {
	cache *cache.Cache
}

func NewAudioCacheRepository(ttl time.Duration) *AudioCacheRepository {
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &AudioCacheRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func AudioKey(legendId, voiceId, text string) string {
	return fmt.Sprintf("%s|%s|%s", legendId, voiceId, text)
}

func (r *AudioCacheRepository) Save(key string, audio []byte) {
	r.cache.Set(key, audio, cache.DefaultExpiration)
}

func (r *AudioCacheRepository) Get(key string) ([]byte, bool) {
	if x, found := r.cache.Get(key); found {
		return x.([]byte), true
	}
	return nil, false
}

func (r *AudioCacheRepository) Count() int {
	return r.cache.ItemCount()
}
