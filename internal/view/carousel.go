package view

import (
	"context"
	"log/slog"
	"sort"
	"sync"
	"time"

	catalogapp "github.com/dwikikusuma/shopfront/internal/catalog/app"
	catalog "github.com/dwikikusuma/shopfront/internal/catalog/domain"
)

// Carousel cycles the home-page banners on a fixed interval. The
// rotation goroutine stops when the bootstrap context is cancelled, so
// shutdown never leaves a ticker running.
type Carousel struct {
	log *slog.Logger

	mu      sync.RWMutex
	banners []catalog.Banner
	index   int
}

func NewCarousel(log *slog.Logger) *Carousel {
	return &Carousel{log: log}
}

// Start fetches the banners and begins rotating. A fetch failure leaves
// the carousel empty; the rest of the home page does not depend on it.
func (c *Carousel) Start(ctx context.Context, banners catalogapp.BannerReader, interval time.Duration) {
	list, err := banners.ListBanners(ctx)
	if err != nil {
		c.log.Warn("load banners", slog.Any("err", err))
		return
	}

	sort.SliceStable(list, func(i, j int) bool { return list[i].SortOrder < list[j].SortOrder })

	c.mu.Lock()
	c.banners = list
	c.index = 0
	c.mu.Unlock()

	if len(list) < 2 {
		return
	}

	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.advance()
			}
		}
	}()
}

func (c *Carousel) advance() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.banners) > 0 {
		c.index = (c.index + 1) % len(c.banners)
	}
}

func (c *Carousel) Current() (catalog.Banner, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if len(c.banners) == 0 {
		return catalog.Banner{}, false
	}
	return c.banners[c.index], true
}

func (c *Carousel) Banners() []catalog.Banner {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return append([]catalog.Banner(nil), c.banners...)
}
