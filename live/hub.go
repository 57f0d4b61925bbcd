package live

import (
	"encoding/json"
	"log"
	"sync"
	"time"
)

// Client is one open tab of a user, subscribed to its own user room.
type Client struct {
	Send   chan []byte
	Room   string
	UserID string

	conn wsConn
}

// wsConn is the subset of *websocket.Conn the hub needs; tests register
// clients without a real connection.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
	ReadMessage() (int, []byte, error)
	Close() error
}

type broadcastMsg struct {
	Room string
	Data []byte
}

// Hub fans schedule-mutation events out to every open tab of the affected
// user so they can resync their course store.
type Hub struct {
	rooms      map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	broadcast  chan broadcastMsg
	done       chan struct{}
	mu         sync.Mutex
}

func NewHub() *Hub {
	return &Hub{
		rooms:      make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		broadcast:  make(chan broadcastMsg),
		done:       make(chan struct{}),
	}
}

func (h *Hub) Run() {
	for {
		select {
		case c := <-h.register:
			h.mu.Lock()
			if h.rooms[c.Room] == nil {
				h.rooms[c.Room] = make(map[*Client]bool)
			}
			h.rooms[c.Room][c] = true
			h.mu.Unlock()

		case c := <-h.unregister:
			h.mu.Lock()
			if conns := h.rooms[c.Room]; conns != nil && conns[c] {
				delete(conns, c)
				close(c.Send)
			}
			h.mu.Unlock()

		case m := <-h.broadcast:
			h.mu.Lock()
			for c := range h.rooms[m.Room] {
				select {
				case c.Send <- m.Data:
				default:
					close(c.Send)
					delete(h.rooms[m.Room], c)
				}
			}
			h.mu.Unlock()

		case <-h.done:
			h.mu.Lock()
			for room, conns := range h.rooms {
				for c := range conns {
					close(c.Send)
				}
				delete(h.rooms, room)
			}
			h.mu.Unlock()
			return
		}
	}
}

func (h *Hub) Stop() {
	close(h.done)
}

// Event is what gets pushed to clients on a schedule mutation.
type Event struct {
	Action     string `json:"action"` // "created", "spot-added", "deleted", "renamed"
	ScheduleID string `json:"schedule_id"`
	Timestamp  int64  `json:"timestamp"`
}

// Broadcast sends an event to every tab in the user's room.
func (h *Hub) Broadcast(userID string, ev Event) {
	if ev.Timestamp == 0 {
		ev.Timestamp = time.Now().Unix()
	}
	data, err := json.Marshal(ev)
	if err != nil {
		log.Println("live event marshal:", err)
		return
	}
	h.broadcast <- broadcastMsg{Room: userID, Data: data}
}

// Package-level hub so handlers can notify without threading the hub through
// every route registration.
var defaultHub *Hub

func SetDefaultHub(h *Hub) {
	defaultHub = h
}

// Notify broadcasts through the default hub, if one is running.
func Notify(userID string, ev Event) {
	if defaultHub == nil {
		return
	}
	defaultHub.Broadcast(userID, ev)
}
