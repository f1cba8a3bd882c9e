package services

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"hoperaise/internal/core"
	"hoperaise/internal/donation"
)

// Catalog holds the client-visible copy of the campaign list. The backend
// owns the truth; this cell has exactly two writers: Refresh, which
// replaces the whole slice with fresh backend data, and ApplyDonation,
// which optimistically bumps one campaign's collected amount after a
// confirmed write.
type Catalog struct {
	lister donation.CampaignLister

	mu        sync.RWMutex
	campaigns []core.Campaign
}

func NewCatalog(lister donation.CampaignLister) *Catalog {
	return &Catalog{lister: lister}
}

// Refresh fetches all campaigns from the backend and replaces the cached
// list with the active ones, most recent first. On error the previous
// cache is kept untouched.
func (c *Catalog) Refresh(ctx context.Context) error {
	all, err := c.lister.ListCampaigns(ctx)
	if err != nil {
		return fmt.Errorf("list campaigns: %w", err)
	}

	active := core.ActiveByMostRecent(all)

	c.mu.Lock()
	c.campaigns = active
	c.mu.Unlock()

	slog.DebugContext(ctx, "campaign catalog refreshed",
		"fetched", len(all), "active", len(active))
	return nil
}

// Snapshot returns a copy of the cached campaigns. Callers may sort or
// filter the result freely.
func (c *Catalog) Snapshot() []core.Campaign {
	c.mu.RLock()
	defer c.mu.RUnlock()

	out := make([]core.Campaign, len(c.campaigns))
	copy(out, c.campaigns)
	return out
}

// Find returns the cached campaign with the given id.
func (c *Catalog) Find(id int64) (core.Campaign, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	for _, camp := range c.campaigns {
		if camp.ID == id {
			return camp, true
		}
	}
	return core.Campaign{}, false
}

// ApplyDonation adds amount to the collected total of one cached
// campaign. Every other campaign is left as is. The next Refresh
// replaces this optimistic value with the backend's figure.
func (c *Catalog) ApplyDonation(campaignID int64, amount core.Money) {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]core.Campaign, len(c.campaigns))
	copy(next, c.campaigns)
	for i := range next {
		if next[i].ID == campaignID {
			next[i].Collected = core.Money{Paise: next[i].Collected.Paise + amount.Paise}
			break
		}
	}
	c.campaigns = next
}
