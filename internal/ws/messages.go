package ws

import (
	"encoding/json"

	"solardirect/internal/scenario"
)

// Envelope wraps all WebSocket messages with a type discriminator.
type Envelope struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Message type constants
const (
	// Client -> Server
	TypeRunStart    = "run:start"
	TypeRunPause    = "run:pause"
	TypeRunSetSpeed = "run:set_speed"
	TypeRunReset    = "run:reset"

	// Server -> Client
	TypeRunState       = "run:state"
	TypeRunRecord      = "run:record"
	TypeRunSummary     = "run:summary"
	TypeScenarioLoaded = "scenario:loaded"
)

// Client -> Server messages

type SetSpeedPayload struct {
	Speed float64 `json:"speed"`
}

// Server -> Client messages

type LoadInfo struct {
	Name       string  `json:"name"`
	PowerDrawW float64 `json:"power_draw_w"`
	Priority   string  `json:"priority"`
}

type ScenarioLoadedPayload struct {
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	SolarMaxOutputW float64    `json:"solar_max_output_w"`
	BatteryWh       float64    `json:"battery_wh"`
	TimestepS       int        `json:"timestep_s"`
	DurationHours   float64    `json:"duration_hours"`
	Loads           []LoadInfo `json:"loads"`
}

func NewEnvelope(msgType string, payload any) ([]byte, error) {
	var raw json.RawMessage
	if payload != nil {
		var err error
		raw, err = json.Marshal(payload)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(Envelope{Type: msgType, Payload: raw})
}

// ScenarioLoadedFromScenario builds the payload sent to each client on
// connect and after a reset.
func ScenarioLoadedFromScenario(scn scenario.Scenario) ScenarioLoadedPayload {
	loads := make([]LoadInfo, 0, len(scn.Loads))
	for _, lc := range scn.Loads {
		priority := lc.Priority
		if priority == "" {
			priority = "deferrable"
		}
		loads = append(loads, LoadInfo{
			Name:       lc.Name,
			PowerDrawW: lc.PowerDrawW,
			Priority:   priority,
		})
	}
	timestepS := scn.Simulation.TimestepS
	if timestepS == 0 {
		timestepS = 60
	}
	return ScenarioLoadedPayload{
		Name:            scn.Name,
		Description:     scn.Description,
		SolarMaxOutputW: scn.Solar.MaxOutputW,
		BatteryWh:       scn.Battery.CapacityWh,
		TimestepS:       timestepS,
		DurationHours:   scn.Simulation.DurationHours,
		Loads:           loads,
	}
}
