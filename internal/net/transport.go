package net

import (
	"fmt"
	"log"
	"net/http"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/gorilla/websocket"

	"InkBoard/internal/ink"
)

// Message types relayed between host and clients.
const (
	MessageDraw  = "draw"
	MessageClear = "clear"
)

// Message is one relayed board event: a finished point group or an
// owner-scoped clear. Seq is a host-assigned sequence number so clients can
// spot reordering.
type Message struct {
	Type    string          `json:"type"`
	Group   *ink.PointGroup `json:"group,omitempty"`
	OwnerID string          `json:"owner_id,omitempty"`
	Seq     uint64          `json:"seq,omitempty"`
}

// Hub is run by the host: it accepts WebSocket clients, relays every message
// to the other peers, and hands each incoming message to OnMessage.
type Hub struct {
	OnMessage func(msg Message, from *websocket.Conn)

	mu       sync.Mutex
	conns    map[*websocket.Conn]bool
	seq      uint64
	upgrader websocket.Upgrader
}

// NewHub returns an empty hub.
func NewHub() *Hub {
	return &Hub{
		conns: make(map[*websocket.Conn]bool),
		upgrader: websocket.Upgrader{
			// LAN tool; any origin on the local network may join.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// ClientCount reports how many peers are connected.
func (h *Hub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.conns)
}

// NextSeq returns the next broadcast sequence number.
func (h *Hub) NextSeq() uint64 {
	return atomic.AddUint64(&h.seq, 1)
}

func (h *Hub) add(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.conns[conn] = true
	log.Printf("[hub] client connected: %s", conn.RemoteAddr())
}

func (h *Hub) remove(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns, conn)
	log.Printf("[hub] client disconnected: %s", conn.RemoteAddr())
}

// Broadcast sends a message to every connected client except the excluded
// one (the sender, when relaying).
func (h *Hub) Broadcast(msg Message, exclude *websocket.Conn) {
	msg.Seq = h.NextSeq()
	h.mu.Lock()
	defer h.mu.Unlock()
	for conn := range h.conns {
		if conn == exclude {
			continue
		}
		if err := conn.WriteJSON(msg); err != nil {
			log.Printf("[hub] send to %s failed: %v", conn.RemoteAddr(), err)
		}
	}
}

// Serve listens on the given port and blocks. Each client gets a reader
// goroutine feeding OnMessage.
func (h *Hub) Serve(port int) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", h.handleWS)
	log.Printf("[hub] listening on port %d", port)
	return http.ListenAndServe(fmt.Sprintf(":%d", port), mux)
}

func (h *Hub) handleWS(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[hub] upgrade failed: %v", err)
		return
	}
	h.add(conn)
	go h.readLoop(conn)
}

func (h *Hub) readLoop(conn *websocket.Conn) {
	defer func() {
		h.remove(conn)
		conn.Close()
	}()
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			log.Printf("[hub] read from %s: %v", conn.RemoteAddr(), err)
			return
		}
		if h.OnMessage != nil {
			h.OnMessage(msg, conn)
		}
	}
}

// Client is one peer's connection to the host.
type Client struct {
	conn *websocket.Conn

	mu sync.Mutex // serializes writes
}

// Dial connects to a host's hub at host:port.
func Dial(addr string) (*Client, error) {
	u := url.URL{Scheme: "ws", Host: addr, Path: "/ws"}
	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("dialing %s: %w", u.String(), err)
	}
	return &Client{conn: conn}, nil
}

// LocalID returns the connection's local address, used as this client's
// identity on the board.
func (c *Client) LocalID() string {
	return c.conn.LocalAddr().String()
}

// Send transmits one message to the host.
func (c *Client) Send(msg Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.conn.WriteJSON(msg)
}

// Listen blocks reading messages from the host until the connection drops;
// the returned error says why.
func (c *Client) Listen(onMessage func(Message)) error {
	for {
		var msg Message
		if err := c.conn.ReadJSON(&msg); err != nil {
			return err
		}
		onMessage(msg)
	}
}

// Close shuts the connection down.
func (c *Client) Close() error {
	return c.conn.Close()
}
