package dashboard

import (
	"encoding/json"
	"fmt"

	"github.com/2beens/healthdash/internal/health/calendar"
	"github.com/2beens/healthdash/internal/health/session"
	"github.com/2beens/healthdash/internal/telemetry/metrics"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	oneHour          = 60 * 60
	monthCacheExpire = oneHour * 24
	megabyte         = 1024 * 1024
	// freecache rejects entries larger than 1/1024 of its size, a full month
	// grid with workouts encodes to roughly 5 KB
	maxMonthGridBytes = 16 * 1024
	minMonthCacheSize = maxMonthGridBytes * 1024
)

// MonthCache keeps encoded month grids. Records never change during a session,
// so a grid only depends on the month, today and the selected date, which
// together make the cache key.
type MonthCache struct {
	cache          *freecache.Cache
	metricsManager *metrics.Manager
}

func NewMonthCache(sizeMB int, metricsManager *metrics.Manager) *MonthCache {
	size := sizeMB * megabyte
	if size < minMonthCacheSize {
		size = minMonthCacheSize
	}
	return &MonthCache{
		cache:          freecache.NewCache(size),
		metricsManager: metricsManager,
	}
}

func monthCacheKey(month calendar.Month, today, selected string) []byte {
	return []byte(fmt.Sprintf("month::%s::%s::%s", month.Key(), today, selected))
}

// GridJSON returns the encoded grid of month, building and caching it on a miss.
func (c *MonthCache) GridJSON(s *session.Session, month calendar.Month) ([]byte, error) {
	today := s.Today()
	selected := s.Calendar().Selected()
	key := monthCacheKey(month, today, selected)

	if gridBytes, err := c.cache.Get(key); err == nil {
		c.countLookup(true)
		log.Tracef("month grid [%s] found in cache", month.Key())
		return gridBytes, nil
	}
	c.countLookup(false)

	grid := calendar.BuildMonth(month, today, selected, s.Index())
	if c.metricsManager != nil {
		c.metricsManager.CounterCalendarMonthsBuilt.Inc()
	}

	gridBytes, err := json.Marshal(grid)
	if err != nil {
		return nil, fmt.Errorf("marshal month grid: %w", err)
	}

	if err := c.cache.Set(key, gridBytes, monthCacheExpire); err != nil {
		log.Errorf("failed to write month grid cache for [%s]: %s", month.Key(), err)
	}

	return gridBytes, nil
}

func (c *MonthCache) countLookup(hit bool) {
	if c.metricsManager != nil {
		c.metricsManager.CalendarCacheLookup(hit)
	}
}

func (c *MonthCache) EntryCount() int64 {
	return c.cache.EntryCount()
}
