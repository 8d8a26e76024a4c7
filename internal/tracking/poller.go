package tracking

import (
	"context"
	"log"
	"time"

	"marketplace-client/internal/domain"
	"marketplace-client/internal/store"
)

const DefaultInterval = 30 * time.Second

type OrderFetcher interface {
	FetchByID(ctx context.Context, id int64) error
	Snapshot() store.State[domain.Order]
}

var _ OrderFetcher = (*store.OrderStore)(nil)

// Poller refreshes one order on a fixed interval while a tracking view is
// open.
type Poller struct {
	Orders   OrderFetcher
	Interval time.Duration
}

func NewPoller(orders OrderFetcher, interval time.Duration) *Poller {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Poller{Orders: orders, Interval: interval}
}

// Run fetches the order right away and then on every tick, handing each
// resulting state to onUpdate. It returns when ctx is done. A failed fetch
// is reported through the state's error and polling continues.
func (p *Poller) Run(ctx context.Context, orderID int64, onUpdate func(store.State[domain.Order])) error {
	ticker := time.NewTicker(p.Interval)
	defer ticker.Stop()

	log.Printf("TRACKING: polling order %d every %s", orderID, p.Interval)
	for {
		if err := p.Orders.FetchByID(ctx, orderID); err != nil && ctx.Err() == nil {
			log.Printf("ERROR: Failed to refresh order %d: %v", orderID, err)
		}
		if ctx.Err() != nil {
			log.Printf("TRACKING: stopped polling order %d", orderID)
			return ctx.Err()
		}
		onUpdate(p.Orders.Snapshot())

		select {
		case <-ctx.Done():
			log.Printf("TRACKING: stopped polling order %d", orderID)
			return ctx.Err()
		case <-ticker.C:
		}
	}
}
