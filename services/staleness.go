package services

import "time"

// Tier is the freshness classification of a location, derived from its
// most recent cleaning.
type Tier string

const (
	TierFresh   Tier = "fresh"
	TierAging   Tier = "aging"
	TierStale   Tier = "stale"
	TierUnknown Tier = "unknown"
)

// Classify maps the last cleaning time of a location to a tier. The
// zero time means no record exists yet. Elapsed time counts in whole
// hours: under 2 is fresh, under 4 aging, anything else stale. The
// result depends on now, so callers evaluate it per request and never
// cache it.
func Classify(last time.Time, now time.Time) Tier {
	if last.IsZero() {
		return TierUnknown
	}

	hours := int(now.Sub(last).Hours())
	switch {
	case hours < 2:
		return TierFresh
	case hours < 4:
		return TierAging
	default:
		return TierStale
	}
}
