package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

// NoticeType identifies a change pushed to watchers.
type NoticeType string

// Notice types sent over the watch endpoint.
const (
	NoticeSubscribed NoticeType = "subscribed"
	NoticeJoin       NoticeType = "join"
	NoticeLeave      NoticeType = "leave"
	NoticeEvent      NoticeType = "event"
)

// Notice tells watchers that an event changed and its board should be
// fetched again.
type Notice struct {
	Type    NoticeType `json:"type"`
	EventID string     `json:"event_id"`
	GameID  string     `json:"game_id,omitempty"`
	Players int        `json:"players,omitempty"`
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

type subscriber struct {
	send chan Notice
}

// hub fans notices out to the watchers of each event.
type hub struct {
	mu   sync.Mutex
	subs map[string]map[*subscriber]struct{}
}

func newHub() *hub {
	return &hub{subs: make(map[string]map[*subscriber]struct{})}
}

// subscribe registers a watcher of eventID. Its first notice confirms the
// subscription.
func (h *hub) subscribe(eventID string) *subscriber {
	sub := &subscriber{send: make(chan Notice, sendBuffer)}
	sub.send <- Notice{Type: NoticeSubscribed, EventID: eventID}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[eventID] == nil {
		h.subs[eventID] = make(map[*subscriber]struct{})
	}
	h.subs[eventID][sub] = struct{}{}
	return sub
}

func (h *hub) unsubscribe(eventID string, sub *subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	subs := h.subs[eventID]
	if _, ok := subs[sub]; !ok {
		return
	}
	delete(subs, sub)
	close(sub.send)
	if len(subs) == 0 {
		delete(h.subs, eventID)
	}
}

// publish delivers n to every watcher of n.EventID. Watchers whose buffer
// is full are disconnected.
func (h *hub) publish(n Notice) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[n.EventID] {
		select {
		case sub.send <- n:
		default:
			delete(h.subs[n.EventID], sub)
			close(sub.send)
		}
	}
}

// watchers returns the number of watchers of eventID.
func (h *hub) watchers(eventID string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs[eventID])
}

func (h *hub) closeAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	for id, subs := range h.subs {
		for sub := range subs {
			close(sub.send)
		}
		delete(h.subs, id)
	}
}

func (s *Server) watch(w http.ResponseWriter, r *http.Request) {
	eventID := chi.URLParam(r, "id")
	if _, err := s.runner.Load(r.Context(), eventID); err != nil {
		s.writeError(w, r, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Debug("websocket upgrade failed", "err", err)
		return
	}

	sub := s.hub.subscribe(eventID)

	go writePump(conn, sub)
	readPump(conn)
	s.hub.unsubscribe(eventID, sub)
}

// readPump discards client messages until the connection closes.
func readPump(conn *websocket.Conn) {
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func writePump(conn *websocket.Conn, sub *subscriber) {
	defer conn.Close()

	for n := range sub.send {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(n); err != nil {
			return
		}
	}
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	_ = conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
}
