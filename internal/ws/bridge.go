package ws

import (
	"log"
	"time"

	"solardirect/internal/report"
	"solardirect/internal/simulator"
)

// Bridge implements simulator.Callback and broadcasts run events to the hub.
// On completion it reduces the history to a summary and broadcasts that too.
type Bridge struct {
	hub       *Hub
	loadNames []string
	timestep  time.Duration
}

func NewBridge(hub *Hub, loadNames []string, timestep time.Duration) *Bridge {
	return &Bridge{hub: hub, loadNames: loadNames, timestep: timestep}
}

func (b *Bridge) OnState(s simulator.State) {
	msg, err := NewEnvelope(TypeRunState, s)
	if err != nil {
		log.Printf("Error marshaling run state: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}

func (b *Bridge) OnRecord(r simulator.HistoryRecord) {
	msg, err := NewEnvelope(TypeRunRecord, r)
	if err != nil {
		log.Printf("Error marshaling history record: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}

func (b *Bridge) OnComplete(history []simulator.HistoryRecord) {
	summary := report.Summarize(history, b.loadNames, b.timestep)
	msg, err := NewEnvelope(TypeRunSummary, summary)
	if err != nil {
		log.Printf("Error marshaling run summary: %v", err)
		return
	}
	b.hub.Broadcast(msg)
}
