// Package pricing computes the price of a class reservation at admission
// time. The price is derived from the member's tier, the class start hour
// and how full the class already is. All amounts are integer cents.
package pricing

import (
	"fmt"
	"time"

	"classbook/internal/member"
)

// TimeBand classifies a class start hour as peak or off-peak.
type TimeBand string

const (
	OffPeak TimeBand = "off_peak"
	Peak    TimeBand = "peak"
)

// OccupancyBand classifies how full a class is before a new admission.
type OccupancyBand string

const (
	Low  OccupancyBand = "low"
	Mid  OccupancyBand = "mid"
	High OccupancyBand = "high"
)

const (
	peakStartHour = 17
	peakEndHour   = 22
)

// TimeBandFor returns Peak when the class starts within [17:00, 22:00) UTC.
func TimeBandFor(startAt time.Time) TimeBand {
	hour := startAt.UTC().Hour()
	if hour >= peakStartHour && hour < peakEndHour {
		return Peak
	}
	return OffPeak
}

// OccupancyBandFor buckets the pre-admission occupancy ratio
// activeCount/capacity. Band lower bounds are inclusive: exactly 80% is
// High, exactly 40% is Mid. Comparisons are done in integers so the
// boundaries are exact.
func OccupancyBandFor(activeCount, capacity int) OccupancyBand {
	if capacity <= 0 {
		panic(fmt.Sprintf("pricing: capacity must be positive, got %d", capacity))
	}
	switch {
	case activeCount*5 >= capacity*4: // ratio >= 0.80
		return High
	case activeCount*5 >= capacity*2: // ratio >= 0.40
		return Mid
	default:
		return Low
	}
}

// Price evaluates the rate table for an explicit tier/time/occupancy
// combination. Multipliers are applied as whole percentages so every cell
// of the table is exact in cents; no rounding step is needed.
//
// An unknown tier or band is a programming error and panics.
func Price(tier member.Tier, timeBand TimeBand, occupancy OccupancyBand) int64 {
	var baseCents int64
	switch tier {
	case member.TierStandard:
		baseCents = 10000
	case member.TierPremium:
		baseCents = 8000
	case member.TierStudent:
		baseCents = 7000
	default:
		panic(fmt.Sprintf("pricing: unknown membership tier %q", tier))
	}

	var timePct int64
	switch timeBand {
	case OffPeak:
		timePct = 100
	case Peak:
		timePct = 120
	default:
		panic(fmt.Sprintf("pricing: unknown time band %q", timeBand))
	}

	var occupancyPct int64
	switch occupancy {
	case Low:
		occupancyPct = 100
	case Mid:
		occupancyPct = 110
	case High:
		occupancyPct = 130
	default:
		panic(fmt.Sprintf("pricing: unknown occupancy band %q", occupancy))
	}

	return baseCents * timePct * occupancyPct / 10000
}

// Quote prices a prospective reservation from live class state: the band
// inputs are computed from the class start time and the active reservation
// count measured before the new reservation is added.
func Quote(tier member.Tier, activeCount, capacity int, startAt time.Time) int64 {
	return Price(tier, TimeBandFor(startAt), OccupancyBandFor(activeCount, capacity))
}
