package job

import (
	"context"
	"time"

	"github.com/courseforge/courseforge/internal/store"
	goset "github.com/deckarep/golang-set/v2"
	"github.com/sirupsen/logrus"
)

const (
	cleanInterval = 5 * time.Minute
	thinWindow    = 10 * time.Minute
)

// VersionCleaner thins the page version history. Autosave produces a
// burst of snapshots while a page is being edited; the cleaner keeps one
// snapshot per time window and drops the rest, so recent history stays
// dense and old history stays cheap.
type VersionCleaner struct {
	store store.Store
	done  chan struct{}
}

// NewVersionCleaner creates a new VersionCleaner instance.
func NewVersionCleaner(store store.Store) *VersionCleaner {
	return &VersionCleaner{
		store: store,
		done:  make(chan struct{}),
	}
}

func (c *VersionCleaner) Stop() {
	close(c.done)
}

func (c *VersionCleaner) Run() {
	ticker := time.NewTicker(cleanInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.clean()
		}
	}
}

func (c *VersionCleaner) clean() {
	c.window(thinWindow)
}

// window walks the versions created inside the last two windows and keeps
// the first snapshot of each page per rounded window.
func (c *VersionCleaner) window(duration time.Duration) {
	ctx := context.Background()

	versions, err := c.store.ListPageVersionsByCreatedRange(ctx, time.Now().Add(-2*duration), time.Now().Add(-duration))
	if err != nil {
		logrus.Errorf("version cleaner: listing versions failed: %v", err)
		return
	}

	remove := goset.NewSet[string]()
	lastPageID := ""
	lastWindow := time.Time{}
	for _, version := range versions {
		window := version.CreatedAt.Round(duration)
		if version.PageID != lastPageID || !window.Equal(lastWindow) {
			lastPageID = version.PageID
			lastWindow = window
			continue
		}
		remove.Add(version.ID)
	}

	if remove.Cardinality() == 0 {
		return
	}

	if err := c.store.DeletePageVersions(ctx, remove.ToSlice()); err != nil {
		logrus.Errorf("version cleaner: deleting versions failed: %v", err)
		return
	}

	logrus.Infof("version cleaner removed %d snapshots", remove.Cardinality())
}
