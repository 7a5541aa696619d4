// Package collector reclaims pool entries no channel points at.
package collector

import (
	"time"

	"github.com/jonboulle/clockwork"

	"go.trai.ch/depot/internal/core/domain"
	"go.trai.ch/depot/internal/core/ports"
)

// Collector scans the pool against the live set of channel targets and
// removes unreferenced entries. Entries younger than the quarantine
// window are kept: a concurrent publisher may have created the entry
// but not yet linked a channel to it.
type Collector struct {
	pool       ports.PoolStore
	channels   ports.ChannelStore
	log        ports.Logger
	clock      clockwork.Clock
	quarantine time.Duration
}

// New creates a collector with the given quarantine window.
func New(
	pool ports.PoolStore,
	channels ports.ChannelStore,
	log ports.Logger,
	clock clockwork.Clock,
	quarantine time.Duration,
) *Collector {
	return &Collector{
		pool:       pool,
		channels:   channels,
		log:        log,
		clock:      clock,
		quarantine: quarantine,
	}
}

// Collect performs one collection pass and reports what happened.
// Individual removal failures do not abort the pass.
func (c *Collector) Collect() (*domain.CollectionReport, error) {
	live, err := c.liveSet()
	if err != nil {
		return nil, err
	}

	entries, err := c.pool.List()
	if err != nil {
		return nil, err
	}

	report := &domain.CollectionReport{Scanned: len(entries)}
	cutoff := c.clock.Now().Add(-c.quarantine)

	for _, entry := range entries {
		if live[entry.Fingerprint] {
			report.Referenced++
			continue
		}
		if entry.PublishedAt.After(cutoff) {
			report.Quarantined++
			continue
		}

		// A channel may have been pointed at the entry since the first
		// scan; check again right before deleting.
		live, err = c.liveSet()
		if err != nil {
			return nil, err
		}
		if live[entry.Fingerprint] {
			report.Referenced++
			continue
		}

		if err := c.pool.Remove(entry.Fingerprint); err != nil {
			report.Failures = append(report.Failures, domain.CollectionFailure{
				Fingerprint: entry.Fingerprint,
				Err:         err,
			})
			c.log.Error(err)
			continue
		}
		report.Reclaimed++
		c.log.Info("reclaimed " + entry.Fingerprint.String())
	}

	return report, nil
}

func (c *Collector) liveSet() (map[domain.Fingerprint]bool, error) {
	channels, err := c.channels.List()
	if err != nil {
		return nil, err
	}
	live := make(map[domain.Fingerprint]bool, len(channels))
	for _, fp := range channels {
		live[fp] = true
	}
	return live, nil
}
