package pricing

import (
	"context"
	"sync"

	"github.com/bwmarrin/snowflake"
	catalogdomain "github.com/podcastge/studio/internal/catalog/domain"
	"go.uber.org/zap"
)

type Mode string

const (
	ModeSubscription Mode = "subscription"
	ModeOneTime      Mode = "one_time"
)

// Calculator holds one visitor's calculator state: the loaded catalog
// plus the current selection. Every mutation recomputes the quote
// synchronously, so Snapshot never observes a stale price.
type Calculator struct {
	mu sync.Mutex

	catalog catalogdomain.Service
	log     *zap.Logger

	packages      []catalogdomain.SponsorPackage
	durations     []catalogdomain.Duration
	services      []catalogdomain.OneTimeService
	episodeCounts []catalogdomain.EpisodeCount

	mode           Mode
	packageID      snowflake.ID
	durationID     snowflake.ID
	serviceIDs     map[snowflake.ID]bool
	episodeCountID snowflake.ID
	quote          Quote
}

type Snapshot struct {
	Mode           Mode     `json:"mode"`
	PackageID      string   `json:"package_id,omitempty"`
	DurationID     string   `json:"duration_id,omitempty"`
	ServiceIDs     []string `json:"service_ids"`
	EpisodeCountID string   `json:"episode_count_id,omitempty"`
	Quote          Quote    `json:"quote"`
}

func NewCalculator(catalog catalogdomain.Service, log *zap.Logger) *Calculator {
	return &Calculator{
		catalog:    catalog,
		log:        log,
		mode:       ModeSubscription,
		serviceIDs: make(map[snowflake.ID]bool),
	}
}

// Load fetches the four catalog collections concurrently. Each fetch
// stands alone: a failed one is logged and leaves that collection
// empty while the other three still load.
func (c *Calculator) Load(ctx context.Context) {
	var (
		wg sync.WaitGroup

		packages      []catalogdomain.SponsorPackage
		durations     []catalogdomain.Duration
		services      []catalogdomain.OneTimeService
		episodeCounts []catalogdomain.EpisodeCount
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		v, err := c.catalog.Packages(ctx, false)
		if err != nil {
			c.log.Error("load packages", zap.Error(err))
			return
		}
		packages = v
	}()
	go func() {
		defer wg.Done()
		v, err := c.catalog.Durations(ctx, false)
		if err != nil {
			c.log.Error("load durations", zap.Error(err))
			return
		}
		durations = v
	}()
	go func() {
		defer wg.Done()
		v, err := c.catalog.Services(ctx, false)
		if err != nil {
			c.log.Error("load services", zap.Error(err))
			return
		}
		services = v
	}()
	go func() {
		defer wg.Done()
		v, err := c.catalog.EpisodeCounts(ctx, false)
		if err != nil {
			c.log.Error("load episode counts", zap.Error(err))
			return
		}
		episodeCounts = v
	}()
	wg.Wait()

	c.mu.Lock()
	defer c.mu.Unlock()
	c.packages = packages
	c.durations = durations
	c.services = services
	c.episodeCounts = episodeCounts
	c.recompute()
}

// SetMode switches between subscription and one-time pricing. The
// previous mode's selection is cleared so a stale package cannot leak
// into a one-time quote.
func (c *Calculator) SetMode(mode Mode) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if mode != ModeSubscription && mode != ModeOneTime {
		return
	}
	if mode == c.mode {
		return
	}
	c.mode = mode
	c.packageID = 0
	c.durationID = 0
	c.serviceIDs = make(map[snowflake.ID]bool)
	c.episodeCountID = 0
	c.recompute()
}

// Selections referencing an id absent from the loaded catalog are
// ignored: the previous selection stays in place.

func (c *Calculator) SelectPackage(id snowflake.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.findPackage(id) == nil {
		return
	}
	c.packageID = id
	c.recompute()
}

func (c *Calculator) SelectDuration(id snowflake.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.findDuration(id) == nil {
		return
	}
	c.durationID = id
	c.recompute()
}

// ToggleService adds the service to the selection if absent, removes
// it if present.
func (c *Calculator) ToggleService(id snowflake.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.findService(id) == nil {
		return
	}
	if c.serviceIDs[id] {
		delete(c.serviceIDs, id)
	} else {
		c.serviceIDs[id] = true
	}
	c.recompute()
}

func (c *Calculator) SelectEpisodeCount(id snowflake.ID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.findEpisodeCount(id) == nil {
		return
	}
	c.episodeCountID = id
	c.recompute()
}

func (c *Calculator) Reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.mode = ModeSubscription
	c.packageID = 0
	c.durationID = 0
	c.serviceIDs = make(map[snowflake.ID]bool)
	c.episodeCountID = 0
	c.recompute()
}

func (c *Calculator) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Mode:       c.mode,
		ServiceIDs: make([]string, 0, len(c.serviceIDs)),
		Quote:      c.quote,
	}
	if c.packageID != 0 {
		snap.PackageID = c.packageID.String()
	}
	if c.durationID != 0 {
		snap.DurationID = c.durationID.String()
	}
	if c.episodeCountID != 0 {
		snap.EpisodeCountID = c.episodeCountID.String()
	}
	for _, svc := range c.services {
		if c.serviceIDs[svc.ID] {
			snap.ServiceIDs = append(snap.ServiceIDs, svc.ID.String())
		}
	}
	return snap
}

// recompute derives the quote from the current selection. An
// incomplete selection prices to zero rather than erroring, matching
// what the calculator UI renders before the visitor finishes picking.
func (c *Calculator) recompute() {
	switch c.mode {
	case ModeSubscription:
		pkg := c.findPackage(c.packageID)
		dur := c.findDuration(c.durationID)
		if pkg == nil || dur == nil {
			c.quote = Quote{}
			return
		}
		c.quote = QuoteSubscription(pkg.BasePrice, dur.Months, dur.DiscountPercent)
	case ModeOneTime:
		ec := c.findEpisodeCount(c.episodeCountID)
		prices := c.selectedServicePrices()
		if ec == nil || len(prices) == 0 {
			c.quote = Quote{}
			return
		}
		c.quote = QuoteOneTime(prices, ec.Count, ec.DiscountPercent)
	default:
		c.quote = Quote{}
	}
}

func (c *Calculator) findPackage(id snowflake.ID) *catalogdomain.SponsorPackage {
	for i := range c.packages {
		if c.packages[i].ID == id {
			return &c.packages[i]
		}
	}
	return nil
}

func (c *Calculator) findDuration(id snowflake.ID) *catalogdomain.Duration {
	for i := range c.durations {
		if c.durations[i].ID == id {
			return &c.durations[i]
		}
	}
	return nil
}

func (c *Calculator) findService(id snowflake.ID) *catalogdomain.OneTimeService {
	for i := range c.services {
		if c.services[i].ID == id {
			return &c.services[i]
		}
	}
	return nil
}

func (c *Calculator) findEpisodeCount(id snowflake.ID) *catalogdomain.EpisodeCount {
	for i := range c.episodeCounts {
		if c.episodeCounts[i].ID == id {
			return &c.episodeCounts[i]
		}
	}
	return nil
}

func (c *Calculator) selectedServicePrices() []float64 {
	var prices []float64
	for _, svc := range c.services {
		if c.serviceIDs[svc.ID] {
			prices = append(prices, svc.Price)
		}
	}
	return prices
}
