package component

import (
	"fmt"
	"time"
)

// reserveFraction is the share of capacity walled off from non-critical
// discharge. Critical loads may draw into it; everything else stops at the
// reserve floor.
const reserveFraction = 0.20

// BatteryConfig holds the scenario-supplied battery parameters.
type BatteryConfig struct {
	CapacityWh        float64
	InitialChargeWh   float64
	MaxChargeRateW    float64
	MaxDischargeRateW float64
}

// Battery tracks stored energy for a DC-coupled storage system. The charge
// level never leaves [0, capacity]: every transaction is clamped to the rate
// limit over the interval and to the remaining headroom.
type Battery struct {
	capacityWh        float64
	chargeWh          float64
	maxChargeRateW    float64
	maxDischargeRateW float64
}

func NewBattery(cfg BatteryConfig) (*Battery, error) {
	if cfg.CapacityWh <= 0 {
		return nil, fmt.Errorf("battery: capacity_wh must be positive, got %v", cfg.CapacityWh)
	}
	if cfg.InitialChargeWh < 0 || cfg.InitialChargeWh > cfg.CapacityWh {
		return nil, fmt.Errorf("battery: initial_charge_wh must be in [0, %v], got %v", cfg.CapacityWh, cfg.InitialChargeWh)
	}
	if cfg.MaxChargeRateW <= 0 {
		return nil, fmt.Errorf("battery: max_charge_rate_w must be positive, got %v", cfg.MaxChargeRateW)
	}
	if cfg.MaxDischargeRateW <= 0 {
		return nil, fmt.Errorf("battery: max_discharge_rate_w must be positive, got %v", cfg.MaxDischargeRateW)
	}
	return &Battery{
		capacityWh:        cfg.CapacityWh,
		chargeWh:          cfg.InitialChargeWh,
		maxChargeRateW:    cfg.MaxChargeRateW,
		maxDischargeRateW: cfg.MaxDischargeRateW,
	}, nil
}

func (b *Battery) CapacityWh() float64 { return b.capacityWh }
func (b *Battery) ChargeWh() float64   { return b.chargeWh }

func (b *Battery) MaxChargeRate() float64    { return b.maxChargeRateW }
func (b *Battery) MaxDischargeRate() float64 { return b.maxDischargeRateW }

// SOC returns the state of charge as a fraction of capacity.
func (b *Battery) SOC() float64 {
	return b.chargeWh / b.capacityWh
}

// ReserveFloorWh returns the charge level at the reserve boundary.
func (b *Battery) ReserveFloorWh() float64 {
	return b.capacityWh * reserveFraction
}

// AvailableDischargeWh returns the energy dischargeable on behalf of a load
// of the given priority: the full charge for critical loads, only the charge
// above the reserve floor for everything else.
func (b *Battery) AvailableDischargeWh(p Priority) float64 {
	if p == PriorityCritical {
		return b.chargeWh
	}
	avail := b.chargeWh - b.ReserveFloorWh()
	if avail < 0 {
		return 0
	}
	return avail
}

// AvailableChargeWh returns the remaining storage headroom.
func (b *Battery) AvailableChargeWh() float64 {
	return b.capacityWh - b.chargeWh
}

// Charge stores energy at the given power for the interval, clamped to the
// charge rate and the remaining headroom. Returns the energy actually stored.
func (b *Battery) Charge(powerW float64, interval time.Duration) float64 {
	if powerW <= 0 {
		return 0
	}
	if powerW > b.maxChargeRateW {
		powerW = b.maxChargeRateW
	}
	energyWh := powerW * interval.Hours()
	if headroom := b.AvailableChargeWh(); energyWh > headroom {
		energyWh = headroom
	}
	b.chargeWh += energyWh
	return energyWh
}

// Discharge draws energy at the given power for the interval, clamped to the
// discharge rate and the stored charge. Returns the energy actually drawn.
func (b *Battery) Discharge(powerW float64, interval time.Duration) float64 {
	if powerW <= 0 {
		return 0
	}
	if powerW > b.maxDischargeRateW {
		powerW = b.maxDischargeRateW
	}
	energyWh := powerW * interval.Hours()
	if energyWh > b.chargeWh {
		energyWh = b.chargeWh
	}
	b.chargeWh -= energyWh
	return energyWh
}
