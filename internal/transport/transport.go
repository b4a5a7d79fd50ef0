// Package transport provides a reliable, connection-oriented message
// channel over WebSockets, exposing the poll-based event pump the
// tick loop needs: {Connect, Receive, Disconnect, Timeout, None}.
// Actual socket I/O happens on per-connection goroutines (gorilla's
// Conn is not safe to read concurrently with the game loop polling
// it), but those goroutines only ever move bytes into a channel; they
// never touch simulation state, so the single-threaded cooperative
// scheduling model the simulation itself requires is preserved.
package transport

import (
	"context"
	"net"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/pkg/errors"
	"golang.org/x/time/rate"
)

// allowedOrigins lists local-dev origins permitted to open a WebSocket
// upgrade. A missing Origin header (non-browser Go clients) is allowed
// through, since this is the only case a headless client hits.
var allowedOrigins = []string{
	"http://localhost",
	"http://localhost:3000",
	"http://localhost:8080",
}

func checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	if strings.HasPrefix(origin, "http://localhost") {
		return true
	}
	for _, allowed := range allowedOrigins {
		if origin == allowed {
			return true
		}
	}
	return false
}

// ConnID identifies one transport-level connection. It is assigned by
// the transport itself and is independent of any PlayerId; the caller
// (serverauth/cmd glue) is responsible for mapping one to the other
// once a player is allocated.
type ConnID uint64

// EventType tags what a polled Event represents.
type EventType uint8

const (
	EventNone EventType = iota
	EventConnect
	EventReceive
	EventDisconnect
	EventTimeout
)

// Event is a single poll result.
type Event struct {
	Type    EventType
	Conn    ConnID
	Payload []byte
	Err     error
}

// Transport is a WebSocket-backed peer multiplexer usable on either
// the server (via Listen) or a client (via Dial) side.
type Transport struct {
	mu      sync.Mutex
	conns   map[ConnID]*websocket.Conn
	nextID  uint64
	events  chan Event
	limiter *rate.Limiter

	server   *http.Server
	upgrader websocket.Upgrader
}

// New creates an empty transport. connectRate/connectBurst throttle
// how fast new inbound connections are accepted (only meaningful on
// the server side; a client-only transport can pass any positive
// values, they're simply never exercised).
func New(connectRate float64, connectBurst int) *Transport {
	return &Transport{
		conns:   make(map[ConnID]*websocket.Conn),
		events:  make(chan Event, 256),
		limiter: rate.NewLimiter(rate.Limit(connectRate), connectBurst),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     checkOrigin,
		},
	}
}

// Listen starts an HTTP server accepting WebSocket upgrades on path
// "/ws" at addr. Returns once the listener is bound; serving happens
// on a background goroutine, consistent with main()'s existing
// signal-driven graceful shutdown idiom.
func (t *Transport) Listen(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", t.handleUpgrade)
	t.server = &http.Server{Addr: addr, Handler: mux}

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return errors.Wrap(err, "transport: listen")
	}

	go func() {
		if err := t.server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			t.pushEvent(Event{Type: EventNone, Err: errors.Wrap(err, "transport: serve")})
		}
	}()
	return nil
}

func (t *Transport) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	if !t.limiter.Allow() {
		http.Error(w, "too many connections", http.StatusTooManyRequests)
		return
	}

	conn, err := t.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	id := t.register(conn)
	t.pushEvent(Event{Type: EventConnect, Conn: id})
	go t.readLoop(id, conn)
}

// Dial connects to a server transport as a client, returning the
// ConnID of the single resulting connection.
func (t *Transport) Dial(ctx context.Context, url string) (ConnID, error) {
	dialer := websocket.Dialer{HandshakeTimeout: 5 * time.Second}
	conn, _, err := dialer.DialContext(ctx, url, nil)
	if err != nil {
		return 0, errors.Wrap(err, "transport: dial")
	}

	id := t.register(conn)
	go t.readLoop(id, conn)
	return id, nil
}

func (t *Transport) register(conn *websocket.Conn) ConnID {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.nextID++
	id := ConnID(t.nextID)
	t.conns[id] = conn
	return id
}

func (t *Transport) readLoop(id ConnID, conn *websocket.Conn) {
	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			t.mu.Lock()
			delete(t.conns, id)
			t.mu.Unlock()
			t.pushEvent(Event{Type: EventDisconnect, Conn: id, Err: err})
			return
		}
		t.pushEvent(Event{Type: EventReceive, Conn: id, Payload: payload})
	}
}

func (t *Transport) pushEvent(e Event) {
	select {
	case t.events <- e:
	default:
		// Event queue saturated: drop rather than block the reader
		// goroutine.
	}
}

// Poll returns the next queued event, waiting up to timeout. A
// timeout of 0 makes this a non-blocking poll (the game loop's normal
// per-frame call); a small positive timeout is used only during
// connect/disconnect handshakes, per the suspension-point contract.
func (t *Transport) Poll(timeout time.Duration) Event {
	if timeout <= 0 {
		select {
		case e := <-t.events:
			return e
		default:
			return Event{Type: EventNone}
		}
	}
	select {
	case e := <-t.events:
		return e
	case <-time.After(timeout):
		return Event{Type: EventTimeout}
	}
}

// Send writes payload as a single binary message to conn.
func (t *Transport) Send(conn ConnID, payload []byte) error {
	t.mu.Lock()
	c, ok := t.conns[conn]
	t.mu.Unlock()
	if !ok {
		return errors.Errorf("transport: unknown connection %d", conn)
	}
	if err := c.WriteMessage(websocket.BinaryMessage, payload); err != nil {
		return errors.Wrapf(err, "transport: send to connection %d", conn)
	}
	return nil
}

// Disconnect closes conn, sending a close frame first if possible.
func (t *Transport) Disconnect(conn ConnID) error {
	t.mu.Lock()
	c, ok := t.conns[conn]
	delete(t.conns, conn)
	t.mu.Unlock()
	if !ok {
		return nil
	}
	_ = c.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second))
	return c.Close()
}

// Shutdown stops accepting new connections, polling up to grace for
// in-flight handshakes to settle before returning, per the graceful
// shutdown contract.
func (t *Transport) Shutdown(ctx context.Context, grace time.Duration) error {
	if t.server == nil {
		return nil
	}
	shutdownCtx, cancel := context.WithTimeout(ctx, grace)
	defer cancel()
	return t.server.Shutdown(shutdownCtx)
}
