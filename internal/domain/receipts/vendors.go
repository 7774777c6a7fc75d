package receipts

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// VendorLister is the read used to build the known-vendor snapshot.
type VendorLister interface {
	TopVendors(ctx context.Context) ([]string, error)
}

// VendorCache holds an in-memory snapshot of vendors ranked by how often
// they appear in stored receipts. Extraction reads the snapshot; it never
// touches the database directly.
type VendorCache struct {
	mu      sync.RWMutex
	vendors []string
}

// NewVendorCache creates an empty vendor cache.
func NewVendorCache() *VendorCache {
	return &VendorCache{}
}

// Snapshot returns a copy of the current vendor list, most frequent first.
func (c *VendorCache) Snapshot() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]string, len(c.vendors))
	copy(out, c.vendors)
	return out
}

// Refresh reloads the snapshot from the store.
func (c *VendorCache) Refresh(ctx context.Context, lister VendorLister) error {
	vendors, err := lister.TopVendors(ctx)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.vendors = vendors
	c.mu.Unlock()
	return nil
}

// VendorRefresher periodically rebuilds the vendor cache using robfig/cron.
type VendorRefresher struct {
	cron   *cron.Cron
	cache  *VendorCache
	lister VendorLister
	logger *slog.Logger
}

// NewVendorRefresher creates a refresher for the given cache and store.
func NewVendorRefresher(cache *VendorCache, lister VendorLister, logger *slog.Logger) *VendorRefresher {
	c := cron.New(cron.WithLogger(cron.VerbosePrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))))

	return &VendorRefresher{
		cron:   c,
		cache:  cache,
		lister: lister,
		logger: logger,
	}
}

// Start loads the snapshot once, then schedules hourly refreshes.
func (r *VendorRefresher) Start() error {
	r.refresh()

	_, err := r.cron.AddFunc("0 * * * *", r.refresh)
	if err != nil {
		return err
	}

	r.cron.Start()
	r.logger.Info("vendor refresher started",
		slog.Int("jobs", len(r.cron.Entries())),
	)
	return nil
}

// Stop gracefully stops the scheduled refreshes.
func (r *VendorRefresher) Stop() context.Context {
	r.logger.Info("vendor refresher stopping")
	return r.cron.Stop()
}

func (r *VendorRefresher) refresh() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	if err := r.cache.Refresh(ctx, r.lister); err != nil {
		r.logger.Error("failed to refresh vendor snapshot", slog.Any("error", err))
		return
	}

	r.logger.Debug("vendor snapshot refreshed",
		slog.Int("vendors", len(r.cache.Snapshot())),
	)
}
