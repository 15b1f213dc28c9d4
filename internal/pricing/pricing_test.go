package pricing

import (
	"testing"
	"time"

	"classbook/internal/member"

	"github.com/stretchr/testify/assert"
)

func TestPrice_RateTable(t *testing.T) {
	tests := []struct {
		tier      member.Tier
		timeBand  TimeBand
		occupancy OccupancyBand
		want      int64
	}{
		{member.TierStandard, OffPeak, Low, 10000},
		{member.TierStandard, OffPeak, Mid, 11000},
		{member.TierStandard, OffPeak, High, 13000},
		{member.TierStandard, Peak, Low, 12000},
		{member.TierStandard, Peak, Mid, 13200},
		{member.TierStandard, Peak, High, 15600},

		{member.TierPremium, OffPeak, Low, 8000},
		{member.TierPremium, OffPeak, Mid, 8800},
		{member.TierPremium, OffPeak, High, 10400},
		{member.TierPremium, Peak, Low, 9600},
		{member.TierPremium, Peak, Mid, 10560},
		{member.TierPremium, Peak, High, 12480},

		{member.TierStudent, OffPeak, Low, 7000},
		{member.TierStudent, OffPeak, Mid, 7700},
		{member.TierStudent, OffPeak, High, 9100},
		{member.TierStudent, Peak, Low, 8400},
		{member.TierStudent, Peak, Mid, 9240},
		{member.TierStudent, Peak, High, 10920},
	}

	for _, tt := range tests {
		got := Price(tt.tier, tt.timeBand, tt.occupancy)
		assert.Equal(t, tt.want, got,
			"tier=%s time=%s occupancy=%s", tt.tier, tt.timeBand, tt.occupancy)
	}
}

func TestPrice_UnknownTierPanics(t *testing.T) {
	assert.Panics(t, func() {
		Price(member.Tier("gold"), OffPeak, Low)
	})
	assert.Panics(t, func() {
		Price(member.TierStandard, TimeBand("midnight"), Low)
	})
	assert.Panics(t, func() {
		Price(member.TierStandard, OffPeak, OccupancyBand("packed"))
	})
}

func TestTimeBandFor(t *testing.T) {
	tests := []struct {
		hour int
		want TimeBand
	}{
		{0, OffPeak},
		{10, OffPeak},
		{16, OffPeak},
		{17, Peak}, // inclusive lower bound
		{19, Peak},
		{21, Peak},
		{22, OffPeak}, // exclusive upper bound
		{23, OffPeak},
	}

	for _, tt := range tests {
		startAt := time.Date(2030, 1, 1, tt.hour, 0, 0, 0, time.UTC)
		assert.Equal(t, tt.want, TimeBandFor(startAt), "hour=%d", tt.hour)
	}
}

func TestTimeBandFor_NormalizesToUTC(t *testing.T) {
	// 18:00 in UTC+3 is 15:00 UTC, which is off-peak.
	loc := time.FixedZone("UTC+3", 3*60*60)
	startAt := time.Date(2030, 1, 1, 18, 0, 0, 0, loc)

	assert.Equal(t, OffPeak, TimeBandFor(startAt))
}

func TestOccupancyBandFor(t *testing.T) {
	tests := []struct {
		active   int
		capacity int
		want     OccupancyBand
	}{
		{0, 10, Low},
		{3, 10, Low},
		{4, 10, Mid},  // exactly 0.40 rounds into the higher band
		{7, 10, Mid},
		{8, 10, High}, // exactly 0.80 rounds into the higher band
		{10, 10, High},
		{1, 3, Low},  // 0.333...
		{2, 3, Mid},  // 0.666...
		{2, 2, High}, // 1.0
	}

	for _, tt := range tests {
		got := OccupancyBandFor(tt.active, tt.capacity)
		assert.Equal(t, tt.want, got, "active=%d capacity=%d", tt.active, tt.capacity)
	}
}

func TestOccupancyBandFor_InvalidCapacityPanics(t *testing.T) {
	assert.Panics(t, func() { OccupancyBandFor(1, 0) })
}

func TestQuote_Deterministic(t *testing.T) {
	startAt := time.Date(2030, 1, 1, 18, 0, 0, 0, time.UTC)

	first := Quote(member.TierPremium, 8, 10, startAt)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Quote(member.TierPremium, 8, 10, startAt))
	}
	assert.Equal(t, int64(12480), first)
}
