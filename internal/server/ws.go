package server

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// clientQueueSize bounds how many unsent events a slow client may hold
// before new events are dropped for it.
const clientQueueSize = 32

// writeTimeout bounds a single WebSocket write.
const writeTimeout = 2 * time.Second

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true // Allow local connections
	},
}

// Event is a tracking notification sent to live feed clients.
type Event struct {
	Kind      string `json:"kind"`
	X         int    `json:"x"`
	Y         int    `json:"y"`
	InitialX  int    `json:"initial_x"`
	InitialY  int    `json:"initial_y"`
	Timestamp int64  `json:"timestamp"`
}

// EventsHandler streams tracking events to WebSocket clients.
// Publish never blocks; each client has its own bounded queue.
type EventsHandler struct {
	clients map[*websocket.Conn]chan []byte
	mu      sync.RWMutex
}

// NewEventsHandler creates an EventsHandler with no clients.
func NewEventsHandler() *EventsHandler {
	return &EventsHandler{
		clients: make(map[*websocket.Conn]chan []byte),
	}
}

// ServeHTTP handles WebSocket upgrade requests.
func (h *EventsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("websocket upgrade error: %v", err)
		return
	}
	defer conn.Close()

	queue := make(chan []byte, clientQueueSize)

	h.mu.Lock()
	h.clients[conn] = queue
	h.mu.Unlock()

	done := make(chan struct{})
	go h.write(conn, queue, done)

	defer func() {
		h.mu.Lock()
		delete(h.clients, conn)
		h.mu.Unlock()
		close(done)
	}()

	// Keep connection alive by reading messages
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}

// write drains queue into conn until done is closed or a write fails.
func (h *EventsHandler) write(conn *websocket.Conn, queue <-chan []byte, done <-chan struct{}) {
	for {
		select {
		case <-done:
			return
		case msg := <-queue:
			conn.SetWriteDeadline(time.Now().Add(writeTimeout))
			if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				conn.Close()
				return
			}
		}
	}
}

// Publish sends ev to every connected client.
func (h *EventsHandler) Publish(ev Event) {
	msg, err := json.Marshal(ev)
	if err != nil {
		log.Printf("marshal event: %v", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, queue := range h.clients {
		select {
		case queue <- msg:
		default:
			// Slow client; drop rather than stall the frame loop.
		}
	}
}

// Clients returns the number of connected clients.
func (h *EventsHandler) Clients() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}
