package simulator

import (
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"

	"solardirect/internal/component"
	"solardirect/internal/controller"
)

// Config holds the run parameters for a Simulator.
type Config struct {
	Timestep  time.Duration
	StartHour float64
	Duration  time.Duration
	Daylight  Daylight
	Faults    []Fault
}

// Callback receives run events. All methods are invoked synchronously from
// Step, in simulated-time order.
type Callback interface {
	OnState(State)
	OnRecord(HistoryRecord)
	OnComplete(history []HistoryRecord)
}

// State is a lightweight progress snapshot for streaming consumers.
type State struct {
	RunID        string  `json:"run_id"`
	ElapsedHours float64 `json:"elapsed_hours"`
	Speed        float64 `json:"speed"`
	Running      bool    `json:"running"`
	Done         bool    `json:"done"`
}

// Simulator advances simulated time in fixed intervals over the configured
// duration. Each interval it recomputes irradiance from the diurnal model,
// applies scheduled faults, asks the controller for a routing decision,
// applies the single resulting battery transaction and appends one history
// record. An empty battery is a valid, continuing state, not a stop
// condition.
type Simulator struct {
	solar   *component.SolarPanel
	battery *component.Battery
	loads   []*component.Load
	ctrl    *controller.PowerController

	cfg      Config
	runID    uuid.UUID
	step     int
	numSteps int
	history  []HistoryRecord

	baseDrawW        map[string]float64 // declaration-time draws, spikes are applied on top
	degradationFired []bool             // one flag per fault, panel_degradation only

	cb Callback
}

// New validates the configuration and builds a simulator. Construction is the
// only place configuration errors surface; a successfully built simulator
// cannot fail mid-run.
func New(solar *component.SolarPanel, battery *component.Battery, loads []*component.Load, cfg Config) (*Simulator, error) {
	if solar == nil || battery == nil {
		return nil, fmt.Errorf("simulation: solar panel and battery are required")
	}
	if cfg.Timestep <= 0 {
		return nil, fmt.Errorf("simulation: timestep_s must be positive, got %v", cfg.Timestep)
	}
	if cfg.Duration < cfg.Timestep {
		return nil, fmt.Errorf("simulation: duration %v must cover at least one timestep %v", cfg.Duration, cfg.Timestep)
	}
	if cfg.StartHour < 0 || cfg.StartHour >= 24 {
		return nil, fmt.Errorf("simulation: start_hour must be in [0, 24), got %v", cfg.StartHour)
	}
	if cfg.Daylight == (Daylight{}) {
		cfg.Daylight = DefaultDaylight
	}
	if err := cfg.Daylight.validate(); err != nil {
		return nil, fmt.Errorf("simulation: %w", err)
	}

	names := make(map[string]bool, len(loads))
	baseDraw := make(map[string]float64, len(loads))
	for _, load := range loads {
		if names[load.Name] {
			return nil, fmt.Errorf("simulation: duplicate load name %q", load.Name)
		}
		names[load.Name] = true
		baseDraw[load.Name] = load.PowerDraw()
	}
	for _, f := range cfg.Faults {
		if err := f.validate(names); err != nil {
			return nil, err
		}
	}

	return &Simulator{
		solar:            solar,
		battery:          battery,
		loads:            loads,
		ctrl:             controller.New(),
		cfg:              cfg,
		runID:            uuid.New(),
		numSteps:         int(cfg.Duration / cfg.Timestep),
		baseDrawW:        baseDraw,
		degradationFired: make([]bool, len(cfg.Faults)),
	}, nil
}

func (s *Simulator) RunID() uuid.UUID { return s.runID }

func (s *Simulator) Timestep() time.Duration { return s.cfg.Timestep }

func (s *Simulator) Loads() []*component.Load { return s.loads }

// SetCallback attaches a streaming consumer. Pass nil to detach.
func (s *Simulator) SetCallback(cb Callback) { s.cb = cb }

// Done reports whether the configured duration has been simulated.
func (s *Simulator) Done() bool { return s.step >= s.numSteps }

// Elapsed returns the simulated time covered so far.
func (s *Simulator) Elapsed() time.Duration {
	return time.Duration(s.step) * s.cfg.Timestep
}

// History returns the accumulated records. The returned slice is the
// simulator's own; callers must not mutate it.
func (s *Simulator) History() []HistoryRecord { return s.history }

// Run steps through the remaining intervals and returns the full history.
func (s *Simulator) Run() []HistoryRecord {
	for !s.Done() {
		s.Step()
	}
	return s.history
}

// Step advances one interval. Calling Step after Done is a no-op.
func (s *Simulator) Step() {
	if s.Done() {
		return
	}

	clock := s.Elapsed()
	elapsedHours := clock.Hours()
	hourOfDay := math.Mod(s.cfg.StartHour+elapsedHours, 24)

	activeFaults := s.applyFaults(clock, hourOfDay)

	decision := s.ctrl.Decide(s.solar, s.battery, s.loads, s.cfg.Timestep)

	// Exactly one net battery transaction per interval. The controller never
	// recommends charge and discharge together.
	if decision.PowerToBatteryW > 0 {
		s.battery.Charge(decision.PowerToBatteryW, s.cfg.Timestep)
	} else if decision.PowerFromBatteryW > 0 {
		s.battery.Discharge(decision.PowerFromBatteryW, s.cfg.Timestep)
	}

	loadActive := make(map[string]bool, len(s.loads))
	for _, load := range s.loads {
		loadActive[load.Name] = load.IsActive()
	}

	record := HistoryRecord{
		ElapsedHours:      elapsedHours,
		HourOfDay:         hourOfDay,
		Irradiance:        s.solar.Irradiance(),
		SolarOutputW:      s.solar.CurrentOutput(),
		BatterySOC:        s.battery.SOC(),
		BatteryChargeWh:   s.battery.ChargeWh(),
		PowerFromSolarW:   decision.PowerFromSolarW,
		PowerFromBatteryW: decision.PowerFromBatteryW,
		PowerToBatteryW:   decision.PowerToBatteryW,
		TotalDemandW:      decision.TotalDemandW,
		UnservedW:         decision.UnservedW,
		LoadActive:        loadActive,
		Shed:              decision.Shed,
		Restored:          decision.Restored,
		ActiveFaults:      activeFaults,
		Notes:             decision.Notes,
	}
	s.history = append(s.history, record)
	s.step++

	if s.cb != nil {
		s.cb.OnRecord(record)
		if s.Done() {
			s.cb.OnComplete(s.history)
		}
	}
}

// applyFaults recomputes fault-affected state for the current clock: the
// panel irradiance (diurnal base times any active cloud cover), each load's
// draw (declared base plus any active spikes) and one-shot degradations.
// Expired cloud and spike effects revert here by reconstruction from base
// values; degradation is permanent.
func (s *Simulator) applyFaults(clock time.Duration, hourOfDay float64) []string {
	var active []string

	irradiance := s.cfg.Daylight.Irradiance(hourOfDay)
	spikeW := make(map[string]float64)

	for i, f := range s.cfg.Faults {
		switch f.Kind {
		case FaultCloudCover:
			if f.activeAt(clock) {
				irradiance *= 1 - f.Magnitude
				active = append(active, f.describe())
			}
		case FaultLoadSpike:
			if f.activeAt(clock) {
				spikeW[f.Target] += f.Magnitude
				active = append(active, f.describe())
			}
		case FaultPanelDegradation:
			if f.activeAt(clock) && !s.degradationFired[i] {
				s.solar.ApplyDegradation(f.Magnitude)
				s.degradationFired[i] = true
				active = append(active, f.describe())
			}
		}
	}

	s.solar.SetIrradiance(irradiance)
	for _, load := range s.loads {
		load.SetPowerDraw(s.baseDrawW[load.Name] + spikeW[load.Name])
	}

	return active
}
