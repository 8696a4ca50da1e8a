package scenario

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"solardirect/internal/component"
)

func writeScenario(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

const validYAML = `
name: Test Site
solar:
  max_output_w: 2000
  efficiency: 0.85
battery:
  capacity_wh: 10000
  initial_charge_wh: 6000
  max_charge_rate_w: 2000
  max_discharge_rate_w: 2500
loads:
  - name: fridge
    power_draw_w: 300
    priority: critical
  - name: pump
    power_draw_w: 500
    priority: deferrable
simulation:
  timestep_s: 300
  start_hour: 6
  duration_hours: 24
  sunrise_hour: 7
  sunset_hour: 17
faults:
  - kind: cloud_cover
    start_hour: 11
    duration_hours: 3
    magnitude: 0.7
  - kind: load_spike
    start_hour: 14
    duration_hours: 2
    magnitude: 400
    target: pump
`

func TestRead_YAML(t *testing.T) {
	path := writeScenario(t, "site.yaml", validYAML)

	scn, err := Read(path)
	require.NoError(t, err)

	assert.Equal(t, "Test Site", scn.Name)
	assert.InDelta(t, 2000, scn.Solar.MaxOutputW, 0.01)
	assert.InDelta(t, 10000, scn.Battery.CapacityWh, 0.01)
	require.Len(t, scn.Loads, 2)
	assert.Equal(t, "critical", scn.Loads[0].Priority)
	require.Len(t, scn.Faults, 2)
	assert.Equal(t, "load_spike", scn.Faults[1].Kind)
	assert.Equal(t, "pump", scn.Faults[1].Target)
}

func TestRead_JSON(t *testing.T) {
	path := writeScenario(t, "site.json", `{
		"name": "JSON Site",
		"solar": {"max_output_w": 800, "efficiency": 0.8},
		"battery": {
			"capacity_wh": 4800,
			"initial_charge_wh": 2400,
			"max_charge_rate_w": 800,
			"max_discharge_rate_w": 1000
		},
		"loads": [{"name": "radio", "power_draw_w": 120, "priority": "critical"}],
		"simulation": {"timestep_s": 60, "duration_hours": 24}
	}`)

	scn, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "JSON Site", scn.Name)
	assert.InDelta(t, 800, scn.Solar.MaxOutputW, 0.01)
}

func TestRead_Errors(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeScenario(t, "broken.yaml", "loads: [not: valid: yaml")
	_, err = Read(path)
	assert.Error(t, err)
}

func TestBuild_ConstructsSimulator(t *testing.T) {
	path := writeScenario(t, "site.yaml", validYAML)
	scn, err := Read(path)
	require.NoError(t, err)

	sim, err := scn.Build()
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, sim.Timestep())
	require.Len(t, sim.Loads(), 2)
	assert.Equal(t, component.PriorityCritical, sim.Loads()[0].Priority)
	assert.Equal(t, component.PriorityDeferrable, sim.Loads()[1].Priority)
}

func TestBuild_AppliesDefaults(t *testing.T) {
	scn := Scenario{
		Solar:   SolarConfig{MaxOutputW: 1000}, // efficiency omitted
		Battery: BatteryConfig{CapacityWh: 5000, InitialChargeWh: 2500, MaxChargeRateW: 1000, MaxDischargeRateW: 1000},
		Loads:   []LoadConfig{{Name: "fridge", PowerDrawW: 200}}, // priority omitted
		Simulation: SimulationConfig{
			DurationHours: 1, // timestep and daylight omitted
		},
	}

	sim, err := scn.Build()
	require.NoError(t, err)

	assert.Equal(t, time.Minute, sim.Timestep())
	assert.Equal(t, component.PriorityDeferrable, sim.Loads()[0].Priority)
}

func TestBuild_Errors(t *testing.T) {
	base := func() Scenario {
		return Scenario{
			Solar:      SolarConfig{MaxOutputW: 1000, Efficiency: 0.8},
			Battery:    BatteryConfig{CapacityWh: 5000, InitialChargeWh: 2500, MaxChargeRateW: 1000, MaxDischargeRateW: 1000},
			Loads:      []LoadConfig{{Name: "fridge", PowerDrawW: 200, Priority: "critical"}},
			Simulation: SimulationConfig{TimestepS: 60, DurationHours: 1},
		}
	}

	scn := base()
	scn.Solar.MaxOutputW = -100
	_, err := scn.Build()
	assert.Error(t, err)

	scn = base()
	scn.Battery.CapacityWh = 0
	_, err = scn.Build()
	assert.Error(t, err)

	scn = base()
	scn.Loads = nil
	_, err = scn.Build()
	assert.Error(t, err)

	scn = base()
	scn.Loads[0].Priority = "urgent"
	_, err = scn.Build()
	assert.Error(t, err)

	scn = base()
	scn.Simulation.SunriseHour = 19
	scn.Simulation.SunsetHour = 7
	_, err = scn.Build()
	assert.Error(t, err)

	scn = base()
	scn.Faults = []FaultConfig{{Kind: "solar_flare", StartHour: 0, DurationHours: 1, Magnitude: 0.5}}
	_, err = scn.Build()
	assert.Error(t, err)

	scn = base()
	scn.Faults = []FaultConfig{{Kind: "load_spike", StartHour: 0, DurationHours: 1, Magnitude: 400, Target: "boiler"}}
	_, err = scn.Build()
	assert.Error(t, err)
}
