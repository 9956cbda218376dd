package generators

import (
	"time"

	"github.com/c12-ai/robomock/pkg/protocol"
)

// defaultEvaporationMinutes is the fallback duration when no profile
// trigger is provided (spec §4.3).
const defaultEvaporationMinutes = 60.0

// CCDuration computes the nominal duration of a start_column_chromatography
// simulation: run_minutes + air_purge_minutes.
func CCDuration(p protocol.StartCCParams) time.Duration {
	minutes := p.RunMinutes + p.AirPurgeMinutes
	if minutes < 0 {
		minutes = 0
	}
	return time.Duration(minutes * float64(time.Minute))
}

// EvaporationDuration computes the nominal duration of a start_evaporation
// simulation: the latest time_from_start trigger in profiles.updates,
// falling back to 60 minutes when none are given.
func EvaporationDuration(p protocol.StartEvaporationParams) time.Duration {
	latest := 0.0
	found := false
	for _, u := range p.Profiles.Updates {
		if !found || u.TimeFromStart > latest {
			latest = u.TimeFromStart
			found = true
		}
	}
	if !found {
		latest = defaultEvaporationMinutes
	}
	return time.Duration(latest * float64(time.Minute))
}

// minimumIntermediateInterval is the absolute floor under which
// IntermediateInterval never returns, regardless of how small
// minFloor itself is configured — a zero-length tick would spin the
// long-running simulator's loop without ever advancing elapsed time.
const minimumIntermediateInterval = time.Millisecond

// IntermediateInterval computes configured_interval * multiplier, floored
// to minFloor (and, below that, to minimumIntermediateInterval).
func IntermediateInterval(configured time.Duration, multiplier float64, minFloor time.Duration) time.Duration {
	scaled := time.Duration(float64(configured) * multiplier)
	if scaled < minFloor {
		scaled = minFloor
	}
	if scaled < minimumIntermediateInterval {
		scaled = minimumIntermediateInterval
	}
	return scaled
}

// CollectFractionsDuration computes count_true(collect_config) * 3s + 10s,
// before the base delay multiplier is applied by the caller.
func CollectFractionsDuration(collectConfig []bool) time.Duration {
	count := 0
	for _, v := range collectConfig {
		if v {
			count++
		}
	}
	return time.Duration(count)*3*time.Second + 10*time.Second
}

// TakePhotoBaseDuration returns a base duration that scales with the
// number of components to capture; the caller applies multiplier/floor via
// Source.Delay.
func TakePhotoBaseDuration(components []string) float64 {
	return float64(len(components))
}
