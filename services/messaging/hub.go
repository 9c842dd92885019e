package messaging

import (
	"sync"
	"time"

	"servicehub/models"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	subscriberBuf  = 32
	maxInboundSize = 512
)

// Subscriber receives the messages of one conversation.
type Subscriber struct {
	conversationID string
	C              chan models.Message
	once           sync.Once
}

func (s *Subscriber) close() {
	s.once.Do(func() { close(s.C) })
}

// Hub fans sent messages out to live subscribers, keyed by conversation.
type Hub struct {
	mu     sync.RWMutex
	subs   map[string]map[*Subscriber]struct{}
	logger *zap.Logger
}

func NewHub(logger *zap.Logger) *Hub {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Hub{subs: make(map[string]map[*Subscriber]struct{}), logger: logger}
}

func (h *Hub) Subscribe(conversationID string) *Subscriber {
	sub := &Subscriber{conversationID: conversationID, C: make(chan models.Message, subscriberBuf)}
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.subs[conversationID] == nil {
		h.subs[conversationID] = make(map[*Subscriber]struct{})
	}
	h.subs[conversationID][sub] = struct{}{}
	return sub
}

func (h *Hub) Unsubscribe(sub *Subscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(sub)
}

// remove expects h.mu to be held.
func (h *Hub) remove(sub *Subscriber) {
	set := h.subs[sub.conversationID]
	if _, ok := set[sub]; !ok {
		return
	}
	delete(set, sub)
	if len(set) == 0 {
		delete(h.subs, sub.conversationID)
	}
	sub.close()
}

// Broadcast never blocks: a subscriber whose buffer is full is dropped.
func (h *Hub) Broadcast(msg models.Message) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subs[msg.ConversationID] {
		select {
		case sub.C <- msg:
		default:
			h.logger.Warn("Dropping slow websocket subscriber", zap.String("conversationId", msg.ConversationID))
			h.remove(sub)
		}
	}
}

// Subscribers returns the live subscriber count of a conversation.
func (h *Hub) Subscribers(conversationID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[conversationID])
}

// Serve streams a conversation to conn until the client goes away.
// Inbound frames are only read to process control messages.
func (h *Hub) Serve(conn *websocket.Conn, conversationID string) {
	sub := h.Subscribe(conversationID)
	done := make(chan struct{})

	go h.writeLoop(conn, sub, done)

	conn.SetReadLimit(maxInboundSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("Websocket closed", zap.Error(err))
			}
			break
		}
	}
	h.Unsubscribe(sub)
	<-done
}

func (h *Hub) writeLoop(conn *websocket.Conn, sub *Subscriber, done chan<- struct{}) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		conn.Close()
		close(done)
	}()
	for {
		select {
		case msg, ok := <-sub.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := conn.WriteJSON(msg); err != nil {
				h.logger.Debug("Websocket write failed", zap.Error(err))
				h.Unsubscribe(sub)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				h.Unsubscribe(sub)
				return
			}
		}
	}
}
