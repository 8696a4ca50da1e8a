package simulator

import (
	"sync"
	"time"
)

const tickInterval = 100 * time.Millisecond

// Player replays a simulation against the wall clock at a configurable
// speed, for streaming consumers. The underlying Step loop stays synchronous;
// the player only decides when to call it. Reset rebuilds the simulator from
// scratch via the supplied build function.
type Player struct {
	mu    sync.Mutex
	build func() (*Simulator, error)
	sim   *Simulator
	cb    Callback

	running bool
	speed   float64 // simulated seconds per wall-clock second
	pending time.Duration
	stopCh  chan struct{}
}

// NewPlayer builds the initial simulator and attaches the callback to it.
func NewPlayer(build func() (*Simulator, error), cb Callback) (*Player, error) {
	sim, err := build()
	if err != nil {
		return nil, err
	}
	sim.SetCallback(cb)
	return &Player{
		build: build,
		sim:   sim,
		cb:    cb,
		speed: 3600, // one simulated hour per second
	}, nil
}

// State returns the current playback state.
func (p *Player) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.stateLocked()
}

func (p *Player) stateLocked() State {
	return State{
		RunID:        p.sim.RunID().String(),
		ElapsedHours: p.sim.Elapsed().Hours(),
		Speed:        p.speed,
		Running:      p.running,
		Done:         p.sim.Done(),
	}
}

// Start begins playback. No-op while already running or after the run ends.
func (p *Player) Start() {
	p.mu.Lock()
	if p.running || p.sim.Done() {
		p.mu.Unlock()
		return
	}
	p.running = true
	p.stopCh = make(chan struct{})
	p.mu.Unlock()

	p.broadcastState()
	go p.loop()
}

// Pause stops playback without discarding progress.
func (p *Player) Pause() {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return
	}
	p.running = false
	close(p.stopCh)
	p.mu.Unlock()

	p.broadcastState()
}

// SetSpeed sets the playback speed in simulated seconds per real second.
func (p *Player) SetSpeed(speed float64) {
	if speed < 1 {
		speed = 1
	}
	if speed > 86400 {
		speed = 86400
	}

	p.mu.Lock()
	p.speed = speed
	p.mu.Unlock()

	p.broadcastState()
}

// Reset stops playback and rebuilds the simulator from the scenario.
func (p *Player) Reset() error {
	p.Pause()

	p.mu.Lock()
	sim, err := p.build()
	if err != nil {
		p.mu.Unlock()
		return err
	}
	sim.SetCallback(p.cb)
	p.sim = sim
	p.pending = 0
	p.mu.Unlock()

	p.broadcastState()
	return nil
}

func (p *Player) loop() {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-p.stopCh:
			return
		case <-ticker.C:
			if p.tick() {
				return
			}
		}
	}
}

// tick advances the pending simulated time and steps the simulator for every
// whole timestep covered. Returns true once the run completes.
func (p *Player) tick() bool {
	p.mu.Lock()
	p.pending += time.Duration(float64(tickInterval) * p.speed)
	for p.pending >= p.sim.Timestep() && !p.sim.Done() {
		p.sim.Step()
		p.pending -= p.sim.Timestep()
	}
	done := p.sim.Done()
	if done {
		p.running = false
		close(p.stopCh)
	}
	p.mu.Unlock()

	p.broadcastState()
	return done
}

func (p *Player) broadcastState() {
	if p.cb == nil {
		return
	}
	p.cb.OnState(p.State())
}
