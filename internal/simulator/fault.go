package simulator

import (
	"fmt"
	"time"
)

// FaultKind names the supported fault injections.
type FaultKind string

const (
	FaultCloudCover       FaultKind = "cloud_cover"
	FaultLoadSpike        FaultKind = "load_spike"
	FaultPanelDegradation FaultKind = "panel_degradation"
)

// Fault is a declarative, time-scoped modifier registered before the run.
// The loop applies and reverts it purely as a function of the simulated
// clock. Cloud cover and load spikes revert at expiry; panel degradation is
// permanent and cumulative.
type Fault struct {
	Kind      FaultKind
	Start     time.Duration // offset from simulation start
	Duration  time.Duration
	Magnitude float64 // cloud_cover: irradiance reduction fraction; load_spike: extra watts; panel_degradation: output loss fraction
	Target    string  // load name, load_spike only
}

func (f Fault) validate(loadNames map[string]bool) error {
	switch f.Kind {
	case FaultCloudCover, FaultPanelDegradation:
		if f.Magnitude < 0 || f.Magnitude > 1 {
			return fmt.Errorf("fault %s: magnitude must be in [0, 1], got %v", f.Kind, f.Magnitude)
		}
	case FaultLoadSpike:
		if f.Magnitude <= 0 {
			return fmt.Errorf("fault %s: magnitude must be positive watts, got %v", f.Kind, f.Magnitude)
		}
		if !loadNames[f.Target] {
			return fmt.Errorf("fault %s: target %q does not match any load", f.Kind, f.Target)
		}
	default:
		return fmt.Errorf("unknown fault kind %q", f.Kind)
	}
	if f.Start < 0 {
		return fmt.Errorf("fault %s: start must not be negative, got %v", f.Kind, f.Start)
	}
	if f.Duration <= 0 {
		return fmt.Errorf("fault %s: duration must be positive, got %v", f.Kind, f.Duration)
	}
	return nil
}

// activeAt reports whether the clock falls within [start, start+duration).
func (f Fault) activeAt(clock time.Duration) bool {
	return clock >= f.Start && clock < f.Start+f.Duration
}

func (f Fault) describe() string {
	switch f.Kind {
	case FaultCloudCover:
		return fmt.Sprintf("cloud cover (%.0f%% reduction)", f.Magnitude*100)
	case FaultLoadSpike:
		return fmt.Sprintf("load spike on %s (+%.0fW)", f.Target, f.Magnitude)
	case FaultPanelDegradation:
		return fmt.Sprintf("panel degradation (%.0f%% loss)", f.Magnitude*100)
	}
	return string(f.Kind)
}
