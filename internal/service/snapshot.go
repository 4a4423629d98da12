package service

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/timesheet/internal/cache"
	"github.com/alexanderramin/timesheet/internal/domain"
	"github.com/alexanderramin/timesheet/internal/repository"
)

const (
	peopleCacheKey  = "people"
	weekCachePrefix = "week:"
)

// snapshotEntry is one cached read: either the whole directory or one
// week's allocation rows.
type snapshotEntry struct {
	people []domain.Person
	rows   []domain.AllocationRow
}

// SnapshotCache is shared by the report service (reads) and the writing
// services (invalidation).
type SnapshotCache = cache.TTLCache[snapshotEntry]

func NewSnapshotCache(ttl time.Duration) *SnapshotCache {
	return cache.New[snapshotEntry](ttl)
}

func weekCacheKey(week time.Time) string {
	return weekCachePrefix + domain.StartOfWeek(week).Format(domain.WeekLayout)
}

func invalidateWeek(c *SnapshotCache, week time.Time) {
	if c != nil {
		c.InvalidatePrefix(weekCacheKey(week))
	}
}

func invalidatePeople(c *SnapshotCache) {
	if c != nil {
		c.InvalidatePrefix(peopleCacheKey)
	}
}

func invalidateAll(c *SnapshotCache) {
	if c != nil {
		c.InvalidatePrefix("")
	}
}

// snapshotLoader reads the directory and week rows through the cache.
type snapshotLoader struct {
	people repository.PersonRepo
	allocs repository.AllocationRepo
	cache  *SnapshotCache
}

func (l *snapshotLoader) loadPeople(ctx context.Context) ([]domain.Person, error) {
	if l.cache != nil {
		if e, ok := l.cache.Get(peopleCacheKey); ok {
			return e.people, nil
		}
	}
	list, err := l.people.List(ctx, repository.PersonFilter{})
	if err != nil {
		return nil, fmt.Errorf("loading people: %w", err)
	}
	people := make([]domain.Person, 0, len(list))
	for _, p := range list {
		people = append(people, *p)
	}
	if l.cache != nil {
		l.cache.Set(peopleCacheKey, snapshotEntry{people: people})
	}
	return people, nil
}

func (l *snapshotLoader) loadWeek(ctx context.Context, week time.Time) ([]domain.AllocationRow, error) {
	key := weekCacheKey(week)
	if l.cache != nil {
		if e, ok := l.cache.Get(key); ok {
			return e.rows, nil
		}
	}
	list, err := l.allocs.ListByWeeks(ctx, week, week)
	if err != nil {
		return nil, fmt.Errorf("loading allocations for week %s: %w", week.Format(domain.WeekLayout), err)
	}
	rows := make([]domain.AllocationRow, 0, len(list))
	for _, r := range list {
		rows = append(rows, *r)
	}
	if l.cache != nil {
		l.cache.Set(key, snapshotEntry{rows: rows})
	}
	return rows, nil
}
