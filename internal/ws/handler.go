package ws

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/websocket"

	"solardirect/internal/scenario"
	"solardirect/internal/simulator"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler manages WebSocket connections and routes client messages to the
// player.
type Handler struct {
	hub    *Hub
	player *simulator.Player
	scn    scenario.Scenario
}

func NewHandler(hub *Hub, player *simulator.Player, scn scenario.Scenario) *Handler {
	return &Handler{hub: hub, player: player, scn: scn}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	client := &Client{
		hub:  h.hub,
		conn: conn,
		send: make(chan []byte, 256),
	}

	h.hub.Register(client)
	go client.writePump()

	h.sendScenarioLoaded(client)
	h.sendRunState(client)

	h.readPump(client)
}

func (h *Handler) readPump(c *Client) {
	defer func() {
		h.hub.Unregister(c)
		c.conn.Close()
	}()

	for {
		_, msg, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Printf("WebSocket read error: %v", err)
			}
			return
		}

		h.handleMessage(msg)
	}
}

func (h *Handler) handleMessage(msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		log.Printf("Invalid message: %v", err)
		return
	}

	switch env.Type {
	case TypeRunStart:
		h.player.Start()

	case TypeRunPause:
		h.player.Pause()

	case TypeRunSetSpeed:
		var p SetSpeedPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("Invalid set_speed payload: %v", err)
			return
		}
		h.player.SetSpeed(p.Speed)

	case TypeRunReset:
		if err := h.player.Reset(); err != nil {
			log.Printf("Reset failed: %v", err)
			return
		}
		h.broadcastScenarioLoaded()

	default:
		log.Printf("Unknown message type: %s", env.Type)
	}
}

func (h *Handler) scenarioLoadedMessage() ([]byte, error) {
	return NewEnvelope(TypeScenarioLoaded, ScenarioLoadedFromScenario(h.scn))
}

func (h *Handler) broadcastScenarioLoaded() {
	msg, err := h.scenarioLoadedMessage()
	if err != nil {
		log.Printf("Error creating scenario:loaded message: %v", err)
		return
	}
	h.hub.Broadcast(msg)
}

func (h *Handler) sendScenarioLoaded(c *Client) {
	msg, err := h.scenarioLoadedMessage()
	if err != nil {
		log.Printf("Error creating scenario:loaded message: %v", err)
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}

func (h *Handler) sendRunState(c *Client) {
	msg, err := NewEnvelope(TypeRunState, h.player.State())
	if err != nil {
		return
	}
	select {
	case c.send <- msg:
	default:
	}
}
