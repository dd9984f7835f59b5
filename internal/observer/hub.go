// Package observer streams simulation steps to websocket clients.
package observer

import (
	"encoding/json"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"

	"github.com/samdwyer/gokarel/internal/game"
	"github.com/samdwyer/gokarel/internal/world"
)

// Message types sent to clients.
const (
	TypeStep  = "STEP"
	TypeDeath = "DEATH"
)

// Message is one frame on the wire.
type Message struct {
	Type     string         `json:"type"`
	Step     int64          `json:"step,omitempty"`
	State    string         `json:"state"`
	Reason   string         `json:"reason,omitempty"`
	Snapshot world.Snapshot `json:"snapshot"`
}

const (
	sendBuffer   = 64
	writeTimeout = 5 * time.Second
)

// Hub fans simulation steps out to websocket subscribers. It implements
// game.Observer and never blocks a step: slow subscribers miss frames.
type Hub struct {
	log logrus.FieldLogger

	upgrader websocket.Upgrader
	nextID   atomic.Uint64

	mu          sync.RWMutex
	subscribers map[uint64]chan []byte
	last        []byte
}

// NewHub creates an empty hub. Browsers may only connect from the origin that
// serves the endpoint; clients that send no Origin header are always accepted.
func NewHub(log logrus.FieldLogger) *Hub {
	return &Hub{
		log: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 64 * 1024,
			// nil selects gorilla's same-origin check.
			CheckOrigin: nil,
		},
		subscribers: make(map[uint64]chan []byte),
	}
}

// OnStep broadcasts a step frame.
func (h *Hub) OnStep(ev game.StepEvent) {
	h.broadcast(Message{
		Type:     TypeStep,
		Step:     ev.Step,
		State:    ev.State.String(),
		Snapshot: ev.Snapshot,
	})
}

// OnDeath broadcasts a death frame.
func (h *Hub) OnDeath(reason string, snapshot world.Snapshot) {
	h.broadcast(Message{
		Type:     TypeDeath,
		State:    game.StateDead.String(),
		Reason:   reason,
		Snapshot: snapshot,
	})
}

func (h *Hub) broadcast(msg Message) {
	b, err := json.Marshal(msg)
	if err != nil {
		h.log.WithError(err).Error("observer: encode frame")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	h.last = b
	for id, ch := range h.subscribers {
		select {
		case ch <- b:
		default:
			h.log.WithField("subscriber", id).Debug("observer: subscriber buffer full, frame dropped")
		}
	}
}

// register adds a subscriber and primes it with the latest frame.
func (h *Hub) register() (uint64, chan []byte) {
	id := h.nextID.Add(1)
	ch := make(chan []byte, sendBuffer)

	h.mu.Lock()
	defer h.mu.Unlock()
	if h.last != nil {
		ch <- h.last
	}
	h.subscribers[id] = ch
	return id, ch
}

func (h *Hub) unregister(id uint64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if ch, ok := h.subscribers[id]; ok {
		close(ch)
		delete(h.subscribers, id)
	}
}

// Subscribers returns the number of connected clients.
func (h *Hub) Subscribers() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subscribers)
}

// Handler upgrades the request to a websocket and streams frames until the client leaves.
func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			h.log.WithError(err).Warn("observer: upgrade failed")
			return
		}
		defer conn.Close()

		id, frames := h.register()
		defer h.unregister(id)
		log := h.log.WithField("subscriber", id)
		log.Info("observer: client connected")

		// Reader goroutine: observers only listen, but reading is how a close is noticed.
		gone := make(chan struct{})
		go func() {
			defer close(gone)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-gone:
				log.Info("observer: client disconnected")
				return
			case <-r.Context().Done():
				return
			case b := <-frames:
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					log.WithError(err).Debug("observer: write failed")
					return
				}
			}
		}
	}
}
