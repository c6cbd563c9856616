package notify

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

type registration struct {
	conn    *websocket.Conn
	initial []byte
}

// Hub fans events out to every connected WebSocket client. All writes happen
// on the hub goroutine started by Start.
type Hub struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan []byte
	register   chan registration
	unregister chan *websocket.Conn
	done       chan struct{}
	stopOnce   sync.Once
	mu         sync.Mutex
	upgrader   websocket.Upgrader
}

func NewHub() *Hub {
	return &Hub{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan []byte, 64),
		register:   make(chan registration),
		unregister: make(chan *websocket.Conn),
		done:       make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
	}
}

// Start runs the hub loop until Stop is called
func (h *Hub) Start() {
	go func() {
		for {
			select {
			case reg := <-h.register:
				//the snapshot goes out before the client can see any broadcast
				if err := reg.conn.WriteMessage(websocket.TextMessage, reg.initial); err != nil {
					log.Printf("⚠️ Failed to send snapshot to WebSocket client: %v", err)
					reg.conn.Close()
					continue
				}
				h.mu.Lock()
				h.clients[reg.conn] = true
				n := len(h.clients)
				h.mu.Unlock()
				log.Printf("🔌 WebSocket client connected. Total clients: %d", n)
			case conn := <-h.unregister:
				h.mu.Lock()
				if _, ok := h.clients[conn]; ok {
					delete(h.clients, conn)
					conn.Close()
				}
				n := len(h.clients)
				h.mu.Unlock()
				log.Printf("🔌 WebSocket client disconnected. Remaining clients: %d", n)
			case message := <-h.broadcast:
				h.mu.Lock()
				for conn := range h.clients {
					if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
						log.Printf("⚠️ Error sending message to WebSocket client: %v", err)
						conn.Close()
						delete(h.clients, conn)
					}
				}
				h.mu.Unlock()
			case <-h.done:
				h.mu.Lock()
				for conn := range h.clients {
					conn.Close()
					delete(h.clients, conn)
				}
				h.mu.Unlock()
				return
			}
		}
	}()
}

// Stop closes every client and ends the hub loop.
func (h *Hub) Stop() {
	h.stopOnce.Do(func() { close(h.done) })
}

// Clients is the number of registered connections.
func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Notify queues ev for broadcast. Events are dropped when the queue is full.
func (h *Hub) Notify(ev Event) {
	data, err := json.Marshal(ev)
	if err != nil {
		log.Printf("⚠️ Failed to marshal %s event: %v", ev.Type, err)
		return
	}
	select {
	case h.broadcast <- data:
	default:
		log.Printf("⚠️ Notification queue full, dropping %s event", ev.Type)
	}
}

// ServeWS upgrades the request and registers the connection; the client first
// receives a snapshot event carrying initial.
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, initial any) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("❌ Failed to upgrade to WebSocket: %v", err)
		return
	}

	data, err := json.Marshal(Snapshot(initial))
	if err != nil {
		log.Printf("⚠️ Failed to marshal snapshot: %v", err)
		conn.Close()
		return
	}

	select {
	case h.register <- registration{conn: conn, initial: data}:
	case <-h.done:
		conn.Close()
		return
	}

	//we only read to notice the client going away
	go func() {
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				select {
				case h.unregister <- conn:
				case <-h.done:
				}
				return
			}
		}
	}()
}
