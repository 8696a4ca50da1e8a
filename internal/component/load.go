package component

import "fmt"

// Load is a power draw with a priority class and an on/off state. Only the
// power controller flips the active state during a run; the simulator adjusts
// the draw when load-spike faults are in effect.
type Load struct {
	Name     string
	Priority Priority

	powerDrawW float64
	active     bool
	shedCount  int
}

func NewLoad(name string, powerDrawW float64, priority Priority) (*Load, error) {
	if name == "" {
		return nil, fmt.Errorf("load: name must not be empty")
	}
	if powerDrawW <= 0 {
		return nil, fmt.Errorf("load %q: power_draw_w must be positive, got %v", name, powerDrawW)
	}
	return &Load{
		Name:       name,
		Priority:   priority,
		powerDrawW: powerDrawW,
		active:     true,
	}, nil
}

func (l *Load) PowerDraw() float64 { return l.powerDrawW }

// SetPowerDraw updates the draw, used for load-spike fault application.
func (l *Load) SetPowerDraw(powerW float64) {
	if powerW < 0 {
		powerW = 0
	}
	l.powerDrawW = powerW
}

func (l *Load) IsActive() bool { return l.active }

func (l *Load) Activate() {
	l.active = true
}

// Deactivate sheds the load. The shed counter only moves on an actual
// active-to-inactive transition.
func (l *Load) Deactivate() {
	if l.active {
		l.shedCount++
	}
	l.active = false
}

// CurrentDraw returns the draw in watts, zero while shed.
func (l *Load) CurrentDraw() float64 {
	if !l.active {
		return 0
	}
	return l.powerDrawW
}

func (l *Load) ShedCount() int { return l.shedCount }
