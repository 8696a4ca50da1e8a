package component

import "fmt"

// SolarPanel models a DC-coupled panel array. Output scales linearly with
// irradiance and is reduced by the cumulative degradation applied by faults.
type SolarPanel struct {
	MaxOutputW float64
	Efficiency float64

	irradiance  float64 // fraction of peak sun, 0..1
	degradation float64 // cumulative, 0..1
}

// NewSolarPanel validates the panel parameters. Efficiency must be in (0, 1].
func NewSolarPanel(maxOutputW, efficiency float64) (*SolarPanel, error) {
	if maxOutputW <= 0 {
		return nil, fmt.Errorf("solar: max_output_w must be positive, got %v", maxOutputW)
	}
	if efficiency <= 0 || efficiency > 1 {
		return nil, fmt.Errorf("solar: efficiency must be in (0, 1], got %v", efficiency)
	}
	return &SolarPanel{MaxOutputW: maxOutputW, Efficiency: efficiency}, nil
}

// CurrentOutput returns the instantaneous DC output in watts.
func (p *SolarPanel) CurrentOutput() float64 {
	return p.MaxOutputW * p.Efficiency * p.irradiance * (1 - p.degradation)
}

func (p *SolarPanel) Irradiance() float64 {
	return p.irradiance
}

// SetIrradiance clamps to [0, 1].
func (p *SolarPanel) SetIrradiance(irradiance float64) {
	if irradiance < 0 {
		irradiance = 0
	}
	if irradiance > 1 {
		irradiance = 1
	}
	p.irradiance = irradiance
}

func (p *SolarPanel) Degradation() float64 {
	return p.degradation
}

// ApplyDegradation permanently reduces output by the given fraction.
// Repeated applications compound multiplicatively: the surviving output
// fraction after each call is (1 - previous) * (1 - factor).
func (p *SolarPanel) ApplyDegradation(factor float64) {
	if factor < 0 {
		factor = 0
	}
	if factor > 1 {
		factor = 1
	}
	p.degradation = 1 - (1-p.degradation)*(1-factor)
}
