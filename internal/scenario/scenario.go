// Package scenario loads simulation scenarios from YAML or JSON files and
// builds fully-typed component instances from them. All configuration
// validation happens here and in the component constructors, before a
// simulator exists; a malformed scenario can never start a run.
package scenario

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"solardirect/internal/component"
	"solardirect/internal/simulator"
)

const (
	defaultEfficiency = 0.20
	defaultTimestepS  = 60
)

type SolarConfig struct {
	MaxOutputW float64 `yaml:"max_output_w" json:"max_output_w"`
	Efficiency float64 `yaml:"efficiency" json:"efficiency"`
}

type BatteryConfig struct {
	CapacityWh        float64 `yaml:"capacity_wh" json:"capacity_wh"`
	InitialChargeWh   float64 `yaml:"initial_charge_wh" json:"initial_charge_wh"`
	MaxChargeRateW    float64 `yaml:"max_charge_rate_w" json:"max_charge_rate_w"`
	MaxDischargeRateW float64 `yaml:"max_discharge_rate_w" json:"max_discharge_rate_w"`
}

type LoadConfig struct {
	Name       string  `yaml:"name" json:"name"`
	PowerDrawW float64 `yaml:"power_draw_w" json:"power_draw_w"`
	Priority   string  `yaml:"priority" json:"priority"`
}

type SimulationConfig struct {
	TimestepS     int     `yaml:"timestep_s" json:"timestep_s"`
	StartHour     float64 `yaml:"start_hour" json:"start_hour"`
	DurationHours float64 `yaml:"duration_hours" json:"duration_hours"`
	SunriseHour   float64 `yaml:"sunrise_hour" json:"sunrise_hour"`
	SunsetHour    float64 `yaml:"sunset_hour" json:"sunset_hour"`
}

type FaultConfig struct {
	Kind          string  `yaml:"kind" json:"kind"`
	StartHour     float64 `yaml:"start_hour" json:"start_hour"`
	DurationHours float64 `yaml:"duration_hours" json:"duration_hours"`
	Magnitude     float64 `yaml:"magnitude" json:"magnitude"`
	Target        string  `yaml:"target" json:"target"`
}

// Scenario is the full structured description of one installation and run.
type Scenario struct {
	Name        string           `yaml:"name" json:"name"`
	Description string           `yaml:"description" json:"description"`
	Solar       SolarConfig      `yaml:"solar" json:"solar"`
	Battery     BatteryConfig    `yaml:"battery" json:"battery"`
	Loads       []LoadConfig     `yaml:"loads" json:"loads"`
	Simulation  SimulationConfig `yaml:"simulation" json:"simulation"`
	Faults      []FaultConfig    `yaml:"faults" json:"faults"`
}

// Read loads a scenario file, choosing the decoder by extension (.json is
// JSON, anything else YAML).
func Read(path string) (Scenario, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return Scenario{}, fmt.Errorf("read scenario file: %w", err)
	}

	var scn Scenario
	if filepath.Ext(path) == ".json" {
		err = json.Unmarshal(content, &scn)
	} else {
		err = yaml.Unmarshal(content, &scn)
	}
	if err != nil {
		return Scenario{}, fmt.Errorf("unmarshal scenario: %w", err)
	}
	return scn, nil
}

// Build constructs the validated component instances and simulator for this
// scenario. Omitted optional fields take their defaults here: efficiency
// 0.20, timestep 60s, priority deferrable, daylight 06:00-18:00.
func (s Scenario) Build() (*simulator.Simulator, error) {
	efficiency := s.Solar.Efficiency
	if efficiency == 0 {
		efficiency = defaultEfficiency
	}
	solar, err := component.NewSolarPanel(s.Solar.MaxOutputW, efficiency)
	if err != nil {
		return nil, err
	}

	battery, err := component.NewBattery(component.BatteryConfig{
		CapacityWh:        s.Battery.CapacityWh,
		InitialChargeWh:   s.Battery.InitialChargeWh,
		MaxChargeRateW:    s.Battery.MaxChargeRateW,
		MaxDischargeRateW: s.Battery.MaxDischargeRateW,
	})
	if err != nil {
		return nil, err
	}

	if len(s.Loads) == 0 {
		return nil, fmt.Errorf("scenario: at least one load is required")
	}
	loads := make([]*component.Load, 0, len(s.Loads))
	for _, lc := range s.Loads {
		priority, err := component.ParsePriority(lc.Priority)
		if err != nil {
			return nil, fmt.Errorf("load %q: %w", lc.Name, err)
		}
		load, err := component.NewLoad(lc.Name, lc.PowerDrawW, priority)
		if err != nil {
			return nil, err
		}
		loads = append(loads, load)
	}

	timestepS := s.Simulation.TimestepS
	if timestepS == 0 {
		timestepS = defaultTimestepS
	}
	daylight := simulator.Daylight{
		SunriseHour: s.Simulation.SunriseHour,
		SunsetHour:  s.Simulation.SunsetHour,
	}
	if daylight == (simulator.Daylight{}) {
		daylight = simulator.DefaultDaylight
	}

	faults := make([]simulator.Fault, 0, len(s.Faults))
	for _, fc := range s.Faults {
		faults = append(faults, simulator.Fault{
			Kind:      simulator.FaultKind(fc.Kind),
			Start:     hoursToDuration(fc.StartHour),
			Duration:  hoursToDuration(fc.DurationHours),
			Magnitude: fc.Magnitude,
			Target:    fc.Target,
		})
	}

	return simulator.New(solar, battery, loads, simulator.Config{
		Timestep:  time.Duration(timestepS) * time.Second,
		StartHour: s.Simulation.StartHour,
		Duration:  hoursToDuration(s.Simulation.DurationHours),
		Daylight:  daylight,
		Faults:    faults,
	})
}

func hoursToDuration(hours float64) time.Duration {
	return time.Duration(hours * float64(time.Hour))
}
