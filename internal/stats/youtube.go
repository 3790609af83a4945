package stats

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"time"

	"github.com/podcastge/studio/internal/config"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

const youtubeChannelsURL = "https://www.googleapis.com/youtube/v3/channels"

var ErrNotConfigured = errors.New("youtube_not_configured")

// ChannelStats is the public shape served by the stats endpoint.
type ChannelStats struct {
	Subscribers int64     `json:"subscribers"`
	Views       int64     `json:"views"`
	Videos      int64     `json:"videos"`
	FetchedAt   time.Time `json:"fetched_at"`
}

type Service interface {
	ChannelStats(ctx context.Context) (*ChannelStats, error)
}

type Params struct {
	fx.In

	Config *config.Config
	Log    *zap.Logger
}

type youtubeService struct {
	cfg  *config.Config
	log  *zap.Logger
	http *http.Client

	mu      sync.RWMutex
	cached  *ChannelStats
	fetched time.Time
}

func New(p Params) Service {
	return &youtubeService{
		cfg:  p.Config,
		log:  p.Log,
		http: &http.Client{Timeout: 15 * time.Second},
	}
}

// ChannelStats serves from the in-process cache while it is fresh and
// refetches lazily once the TTL lapses. A failed refresh falls back to
// the stale copy when one exists: showing old subscriber counts beats
// erroring the page.
func (s *youtubeService) ChannelStats(ctx context.Context) (*ChannelStats, error) {
	if s.cfg.YouTube.APIKey == "" || s.cfg.YouTube.ChannelID == "" {
		return nil, ErrNotConfigured
	}

	s.mu.RLock()
	cached, fetched := s.cached, s.fetched
	s.mu.RUnlock()

	ttl := s.cfg.YouTube.CacheTTL
	if cached != nil && time.Since(fetched) < ttl {
		return cached, nil
	}

	fresh, err := s.fetch(ctx)
	if err != nil {
		if cached != nil {
			s.log.Warn("youtube refresh failed, serving stale stats", zap.Error(err))
			return cached, nil
		}
		return nil, err
	}

	s.mu.Lock()
	s.cached = fresh
	s.fetched = time.Now()
	s.mu.Unlock()
	return fresh, nil
}

type channelsResponse struct {
	Items []struct {
		Statistics struct {
			SubscriberCount string `json:"subscriberCount"`
			ViewCount       string `json:"viewCount"`
			VideoCount      string `json:"videoCount"`
		} `json:"statistics"`
	} `json:"items"`
}

func (s *youtubeService) fetch(ctx context.Context) (*ChannelStats, error) {
	endpoint := s.cfg.YouTube.APIBaseURL
	if endpoint == "" {
		endpoint = youtubeChannelsURL
	}

	q := url.Values{}
	q.Set("part", "statistics")
	q.Set("id", s.cfg.YouTube.ChannelID)
	q.Set("key", s.cfg.YouTube.APIKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint+"?"+q.Encode(), nil)
	if err != nil {
		return nil, err
	}
	resp, err := s.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("youtube request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("youtube request: status %d", resp.StatusCode)
	}

	var payload channelsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("youtube response: %w", err)
	}
	if len(payload.Items) == 0 {
		return nil, errors.New("youtube response: channel not found")
	}

	stats := payload.Items[0].Statistics
	return &ChannelStats{
		Subscribers: parseCount(stats.SubscriberCount),
		Views:       parseCount(stats.ViewCount),
		Videos:      parseCount(stats.VideoCount),
		FetchedAt:   time.Now().UTC(),
	}, nil
}

func parseCount(value string) int64 {
	n, _ := strconv.ParseInt(value, 10, 64)
	return n
}

var Module = fx.Module("stats.service",
	fx.Provide(New),
)
