package ws

import (
	"log"
	"net/http"
	"sync"

	"backend/services"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// OrderBoard fans order lifecycle events out to every connected kitchen
// display. One board per process; all clients see all events.
type OrderBoard struct {
	clients    map[*websocket.Conn]bool
	broadcast  chan services.OrderEvent
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	mu         sync.Mutex
}

func NewOrderBoard() *OrderBoard {
	return &OrderBoard{
		clients:    make(map[*websocket.Conn]bool),
		broadcast:  make(chan services.OrderEvent, 64),
		register:   make(chan *websocket.Conn),
		unregister: make(chan *websocket.Conn),
	}
}

// Run serves register/unregister/broadcast until the process exits.
func (b *OrderBoard) Run() {
	for {
		select {
		case conn := <-b.register:
			b.mu.Lock()
			b.clients[conn] = true
			b.mu.Unlock()

		case conn := <-b.unregister:
			b.mu.Lock()
			if _, ok := b.clients[conn]; ok {
				delete(b.clients, conn)
				conn.Close()
			}
			b.mu.Unlock()

		case event := <-b.broadcast:
			b.mu.Lock()
			for conn := range b.clients {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("ws write error: %v", err)
					conn.Close()
					delete(b.clients, conn)
				}
			}
			b.mu.Unlock()
		}
	}
}

// Publish implements services.OrderEventSink. Never blocks the order
// workflow: if the buffer is full the event is dropped.
func (b *OrderBoard) Publish(event services.OrderEvent) {
	select {
	case b.broadcast <- event:
	default:
		log.Printf("order board buffer full, dropping %s", event.Type)
	}
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// WS route: /ws/orders?token=
func (b *OrderBoard) HandleWebSocket(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Printf("ws upgrade error: %v", err)
		return
	}

	b.register <- conn
	go b.drain(conn)
}

// drain keeps the read side alive so pings and closes are processed; the
// board is broadcast-only and discards anything the client sends.
func (b *OrderBoard) drain(conn *websocket.Conn) {
	defer func() { b.unregister <- conn }()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
