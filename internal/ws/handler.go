package ws

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"pv_simulator/internal/pvmodel"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handler upgrades WebSocket connections, runs solves for solve:request
// messages and broadcasts the results to every connected client.
type Handler struct {
	hub *Hub

	mu         sync.Mutex
	lastResult []byte // latest solve:result envelope, replayed to new clients
}

func NewHandler(hub *Hub) *Handler {
	return &Handler{hub: hub}
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

	// A viewer joining after a solve gets the latest result right away
	h.replayLastResult(client)

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

		h.handleMessage(c, msg)
	}
}

func (h *Handler) handleMessage(c *Client, msg []byte) {
	var env Envelope
	if err := json.Unmarshal(msg, &env); err != nil {
		log.Printf("Invalid message: %v", err)
		h.sendError(c, "invalid message envelope")
		return
	}

	switch env.Type {
	case TypeSolveRequest:
		var p SolveRequestPayload
		if err := json.Unmarshal(env.Payload, &p); err != nil {
			log.Printf("Invalid solve:request payload: %v", err)
			h.sendError(c, "invalid solve:request payload")
			return
		}
		h.solve(c, p)

	default:
		log.Printf("Unknown message type: %s", env.Type)
	}
}

func (h *Handler) solve(c *Client, p SolveRequestPayload) {
	if p.IrradianceWm2 == 0 {
		p.IrradianceWm2 = 1000
	}
	if p.TemperatureK == 0 {
		p.TemperatureK = 298
	}

	cfg, err := pvmodel.NewArrayConfig(p.SeriesPanels, p.ParallelPanels)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}

	cond := pvmodel.OperatingCondition{IrradianceWm2: p.IrradianceWm2, TemperatureK: p.TemperatureK}
	curve, mpp, err := cfg.Solve(cond)
	if err != nil {
		h.sendError(c, err.Error())
		return
	}

	msg, err := NewEnvelope(TypeSolveResult, NewSolveResult(cfg, cond, curve, mpp))
	if err != nil {
		log.Printf("Error encoding solve:result: %v", err)
		return
	}

	h.mu.Lock()
	h.lastResult = msg
	h.mu.Unlock()

	h.hub.Broadcast(msg)
}

func (h *Handler) sendError(c *Client, text string) {
	msg, err := NewEnvelope(TypeSolveError, SolveErrorPayload{Error: text})
	if err != nil {
		return
	}
	h.hub.Send(c, msg)
}

func (h *Handler) replayLastResult(c *Client) {
	h.mu.Lock()
	msg := h.lastResult
	h.mu.Unlock()

	if msg != nil {
		h.hub.Send(c, msg)
	}
}
