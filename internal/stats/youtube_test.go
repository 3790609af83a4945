package stats

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/podcastge/studio/internal/config"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

func statsServer(t *testing.T, calls *atomic.Int64, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		assert.Equal(t, "statistics", r.URL.Query().Get("part"))
		assert.Equal(t, "UCtest", r.URL.Query().Get("id"))
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

const statsBody = `{"items":[{"statistics":{"subscriberCount":"52300","viewCount":"8120000","videoCount":"214"}}]}`

func newService(baseURL string, ttl time.Duration) *youtubeService {
	return &youtubeService{
		cfg: &config.Config{
			YouTube: config.YouTubeConfig{
				APIKey:     "test-key",
				ChannelID:  "UCtest",
				CacheTTL:   ttl,
				APIBaseURL: baseURL,
			},
		},
		log:  zap.NewNop(),
		http: &http.Client{Timeout: 5 * time.Second},
	}
}

func TestChannelStatsFetchesAndCaches(t *testing.T) {
	var calls atomic.Int64
	srv := statsServer(t, &calls, http.StatusOK, statsBody)
	svc := newService(srv.URL, time.Hour)

	first, err := svc.ChannelStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(52300), first.Subscribers)
	assert.Equal(t, int64(8120000), first.Views)
	assert.Equal(t, int64(214), first.Videos)

	second, err := svc.ChannelStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(1), calls.Load())
}

func TestChannelStatsRefetchesAfterTTL(t *testing.T) {
	var calls atomic.Int64
	srv := statsServer(t, &calls, http.StatusOK, statsBody)
	svc := newService(srv.URL, time.Hour)

	_, err := svc.ChannelStats(context.Background())
	assert.NoError(t, err)

	svc.mu.Lock()
	svc.fetched = time.Now().Add(-2 * time.Hour)
	svc.mu.Unlock()

	_, err = svc.ChannelStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(2), calls.Load())
}

func TestChannelStatsServesStaleOnUpstreamError(t *testing.T) {
	var calls atomic.Int64
	srv := statsServer(t, &calls, http.StatusOK, statsBody)
	svc := newService(srv.URL, time.Hour)

	warm, err := svc.ChannelStats(context.Background())
	assert.NoError(t, err)

	srv.Close()
	svc.mu.Lock()
	svc.fetched = time.Now().Add(-2 * time.Hour)
	svc.mu.Unlock()

	stale, err := svc.ChannelStats(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, warm, stale)
}

func TestChannelStatsColdErrorPropagates(t *testing.T) {
	var calls atomic.Int64
	srv := statsServer(t, &calls, http.StatusInternalServerError, "boom")
	svc := newService(srv.URL, time.Hour)

	_, err := svc.ChannelStats(context.Background())
	assert.Error(t, err)
}

func TestChannelStatsRequiresConfig(t *testing.T) {
	svc := &youtubeService{cfg: &config.Config{}, log: zap.NewNop(), http: http.DefaultClient}

	_, err := svc.ChannelStats(context.Background())
	assert.ErrorIs(t, err, ErrNotConfigured)
}
