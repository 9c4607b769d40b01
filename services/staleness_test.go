package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestClassifyTiers(t *testing.T) {
	now := time.Date(2025, 3, 10, 12, 0, 0, 0, time.UTC)

	cases := []struct {
		name string
		last time.Time
		want Tier
	}{
		{"no record yet", time.Time{}, TierUnknown},
		{"one hour ago", now.Add(-1 * time.Hour), TierFresh},
		{"just under two hours", now.Add(-2*time.Hour + time.Minute), TierFresh},
		{"exactly two hours", now.Add(-2 * time.Hour), TierAging},
		{"three hours ago", now.Add(-3 * time.Hour), TierAging},
		{"exactly four hours", now.Add(-4 * time.Hour), TierStale},
		{"five hours ago", now.Add(-5 * time.Hour), TierStale},
		{"days ago", now.Add(-72 * time.Hour), TierStale},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(tc.last, now))
		})
	}
}

func TestClassifyIsPure(t *testing.T) {
	last := time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)

	// Same inputs, same answer; a later "now" can change the tier.
	assert.Equal(t, Classify(last, last.Add(time.Hour)), Classify(last, last.Add(time.Hour)))
	assert.Equal(t, TierFresh, Classify(last, last.Add(time.Hour)))
	assert.Equal(t, TierAging, Classify(last, last.Add(3*time.Hour)))
	assert.Equal(t, TierStale, Classify(last, last.Add(6*time.Hour)))
}
