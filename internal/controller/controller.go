package controller

import (
	"fmt"
	"time"

	"solardirect/internal/component"
)

// DefaultHysteresisMargin is the extra supply headroom, as a fraction of a
// load's draw, required before restoring it. The margin sits on the restore
// threshold only, so supply hovering at the shed threshold cannot make a load
// oscillate.
const DefaultHysteresisMargin = 0.10

// BatteryView is the read-only battery surface the controller decides
// against. The controller never mutates battery state; the simulator applies
// the recommended transaction afterwards.
type BatteryView interface {
	SOC() float64
	AvailableDischargeWh(p component.Priority) float64
	AvailableChargeWh() float64
	MaxChargeRate() float64
	MaxDischargeRate() float64
}

// Decision is the controller's output for one interval: the power split and
// the load state transitions it performed.
type Decision struct {
	PowerFromSolarW   float64
	PowerFromBatteryW float64
	PowerToBatteryW   float64

	TotalDemandW float64 // active demand after shedding/restoration
	UnservedW    float64 // critical demand left unserved after the battery is exhausted

	Shed     []string
	Restored []string
	Notes    []string
}

// PowerController routes power between solar, battery and loads. It is the
// only mutator of load active state. Decide is deterministic: identical
// component state always yields an identical decision.
type PowerController struct {
	HysteresisMargin float64
}

func New() *PowerController {
	return &PowerController{HysteresisMargin: DefaultHysteresisMargin}
}

// Decide computes the routing for one interval. Solar serves demand first,
// battery covers the shortfall within each load's reserve visibility, and
// solar surplus charges the battery. At most one of PowerFromBatteryW and
// PowerToBatteryW is positive.
func (c *PowerController) Decide(solar *component.SolarPanel, battery BatteryView, loads []*component.Load, interval time.Duration) Decision {
	var d Decision
	hours := interval.Hours()

	solarW := solar.CurrentOutput()
	d.Notes = append(d.Notes, fmt.Sprintf("solar output %.1fW", solarW))

	demand := activeDemand(loads)
	supply := solarW + c.batteryPowerFor(battery, lowestActivePriority(loads), hours)

	if demand > supply {
		c.shedPass(solarW, battery, loads, hours, &d)
	} else if anyInactive(loads) {
		c.restorePass(solarW, battery, loads, hours, &d)
	}

	c.apportion(solarW, battery, loads, hours, &d)
	return d
}

// shedPass deactivates loads one at a time, lowest priority first
// (declaration order breaks ties), until the remaining demand fits the supply
// visible to the lowest-priority load still active. Critical loads are never
// shed here; if critical demand alone exceeds supply the shortfall is
// accepted and noted.
func (c *PowerController) shedPass(solarW float64, battery BatteryView, loads []*component.Load, hours float64, d *Decision) {
	for {
		demand := activeDemand(loads)
		supply := solarW + c.batteryPowerFor(battery, lowestActivePriority(loads), hours)
		if demand <= supply {
			return
		}

		victim := shedCandidate(loads)
		if victim == nil {
			d.Notes = append(d.Notes, fmt.Sprintf(
				"only critical loads active, demand %.1fW exceeds supply %.1fW: accepting shortfall", demand, supply))
			return
		}

		victim.Deactivate()
		d.Shed = append(d.Shed, victim.Name)
		d.Notes = append(d.Notes, fmt.Sprintf(
			"shed %s (%s, %.0fW): demand %.1fW exceeded supply %.1fW",
			victim.Name, victim.Priority, victim.PowerDraw(), demand, supply))
	}
}

// restorePass reactivates shed loads, most important first, but only when the
// surplus beyond current demand clears the load's draw by the hysteresis
// margin. Battery visibility follows the priority of the load being restored.
func (c *PowerController) restorePass(solarW float64, battery BatteryView, loads []*component.Load, hours float64, d *Decision) {
	activeW := activeDemand(loads)
	restoredW := 0.0

	for p := component.PriorityCritical; p <= component.PriorityDeferrable; p++ {
		for _, load := range loads {
			if load.Priority != p || load.IsActive() {
				continue
			}
			supply := solarW + c.batteryPowerFor(battery, p, hours)
			headroom := supply - activeW - restoredW
			if headroom >= load.PowerDraw()*(1+c.HysteresisMargin) {
				load.Activate()
				restoredW += load.PowerDraw()
				d.Restored = append(d.Restored, load.Name)
				d.Notes = append(d.Notes, fmt.Sprintf(
					"restored %s (%s, %.0fW): headroom %.1fW clears hysteresis threshold",
					load.Name, load.Priority, load.PowerDraw(), headroom))
			}
		}
	}
}

// apportion fixes the power split for the final active-load set: solar first
// in priority order, then battery against priority-visible energy pools, then
// surplus solar into charge. Anything beyond the charge limit is curtailed.
func (c *PowerController) apportion(solarW float64, battery BatteryView, loads []*component.Load, hours float64, d *Decision) {
	remainingSolar := solarW
	rateBudget := battery.MaxDischargeRate()
	fullPoolWh := battery.AvailableDischargeWh(component.PriorityCritical)
	abovePoolWh := battery.AvailableDischargeWh(component.PriorityDeferrable)

	for p := component.PriorityCritical; p <= component.PriorityDeferrable; p++ {
		classW := 0.0
		for _, load := range loads {
			if load.Priority == p {
				classW += load.CurrentDraw()
			}
		}
		d.TotalDemandW += classW

		fromSolar := min(remainingSolar, classW)
		remainingSolar -= fromSolar
		classW -= fromSolar
		d.PowerFromSolarW += fromSolar

		if classW <= 0 {
			continue
		}

		poolWh := abovePoolWh
		if p == component.PriorityCritical {
			poolWh = fullPoolWh
		}
		poolW := poolWh
		if hours > 0 {
			poolW = poolWh / hours
		}
		fromBattery := min(classW, min(rateBudget, poolW))
		if fromBattery > 0 {
			d.PowerFromBatteryW += fromBattery
			rateBudget -= fromBattery
			usedWh := fromBattery * hours
			fullPoolWh -= usedWh
			abovePoolWh -= usedWh
			if abovePoolWh < 0 {
				abovePoolWh = 0
			}
			classW -= fromBattery
		}
		if classW > 0 {
			d.UnservedW += classW
			d.Notes = append(d.Notes, fmt.Sprintf("%.1fW of %s demand unserved", classW, p))
		}
	}

	if remainingSolar > 0 {
		chargeW := min(remainingSolar, battery.MaxChargeRate())
		if hours > 0 {
			chargeW = min(chargeW, battery.AvailableChargeWh()/hours)
		}
		if chargeW > 0 {
			d.PowerToBatteryW = chargeW
			d.Notes = append(d.Notes, fmt.Sprintf("charging battery with %.1fW surplus solar", chargeW))
		}
		if curtailed := remainingSolar - chargeW; curtailed > 1e-9 {
			d.Notes = append(d.Notes, fmt.Sprintf("curtailing %.1fW surplus solar", curtailed))
		}
	}
}

// batteryPowerFor returns the battery's deliverable power for a load of the
// given priority, limited by both the discharge rate and the priority-visible
// energy over the interval.
func (c *PowerController) batteryPowerFor(battery BatteryView, p component.Priority, hours float64) float64 {
	availWh := battery.AvailableDischargeWh(p)
	if hours <= 0 {
		return min(battery.MaxDischargeRate(), availWh)
	}
	return min(battery.MaxDischargeRate(), availWh/hours)
}

// shedCandidate picks the next load to shed: deferrable before high, earlier
// declaration first within a class. Critical loads are never candidates.
func shedCandidate(loads []*component.Load) *component.Load {
	for p := component.PriorityDeferrable; p > component.PriorityCritical; p-- {
		for _, load := range loads {
			if load.Priority == p && load.IsActive() {
				return load
			}
		}
	}
	return nil
}

// lowestActivePriority returns the least important priority among active
// loads, which determines how much of the battery the current demand may see.
func lowestActivePriority(loads []*component.Load) component.Priority {
	lowest := component.PriorityCritical
	for _, load := range loads {
		if load.IsActive() && load.Priority > lowest {
			lowest = load.Priority
		}
	}
	return lowest
}

func activeDemand(loads []*component.Load) float64 {
	total := 0.0
	for _, load := range loads {
		total += load.CurrentDraw()
	}
	return total
}

func anyInactive(loads []*component.Load) bool {
	for _, load := range loads {
		if !load.IsActive() {
			return true
		}
	}
	return false
}
