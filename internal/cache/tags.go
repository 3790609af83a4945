package cache

import (
	"time"

	"go.uber.org/fx"
)

// Cache tags for the public read endpoints. Every admin mutation on an
// entity type invalidates exactly its own tag.
const (
	TagPackages      = "packages"
	TagDurations     = "durations"
	TagServices      = "services"
	TagEpisodeCounts = "episode-counts"
	TagPosts         = "posts"
)

const defaultTagTTL = 5 * time.Minute

// TagStore caches public read responses under a named tag. The TTL is a
// backstop: the authoritative invalidation path is Invalidate on mutation.
type TagStore struct {
	ttl   time.Duration
	items Cache[string, any]
}

var Module = fx.Module("cache",
	fx.Provide(NewTagStore),
)

func NewTagStore() *TagStore {
	return &TagStore{
		ttl:   defaultTagTTL,
		items: NewTTLCache[string, any](),
	}
}

func (s *TagStore) Get(tag string) (any, bool) {
	if s == nil || tag == "" {
		return nil, false
	}
	return s.items.Get(tag)
}

func (s *TagStore) Set(tag string, value any) {
	if s == nil || tag == "" {
		return
	}
	s.items.Set(tag, value, s.ttl)
}

func (s *TagStore) Invalidate(tag string) {
	if s == nil || tag == "" {
		return
	}
	s.items.Delete(tag)
}
