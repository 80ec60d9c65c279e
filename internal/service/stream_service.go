package service

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/redis/go-redis/v9"
)

// StreamService pushes trade-change notifications to open dashboards
// over WebSocket. Trade mutations publish the owning user's id on a
// Redis channel; every connected dashboard for that user receives a
// refresh hint and re-fetches its stats.
type StreamService struct {
	redis    *redis.Client
	upgrader websocket.Upgrader

	clients   map[uint]map[*websocket.Conn]bool
	clientsMu sync.RWMutex

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// StreamEvent is the message pushed to dashboard WebSocket clients
type StreamEvent struct {
	Type string `json:"type"`
	Time int64  `json:"time"`
}

// NewStreamService creates a new StreamService
func NewStreamService(redisClient *redis.Client) *StreamService {
	return &StreamService{
		redis: redisClient,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Auth happens via JWT before the upgrade; origins are the
			// client app's concern
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		clients: make(map[uint]map[*websocket.Conn]bool),
	}
}

// Start subscribes to the trade-updates channel and begins fan-out
func (s *StreamService) Start(ctx context.Context) {
	s.ctx, s.cancel = context.WithCancel(ctx)

	pubsub := s.redis.Subscribe(s.ctx, TradeUpdatesChannel)
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		defer pubsub.Close()

		channel := pubsub.Channel()
		for {
			select {
			case <-s.ctx.Done():
				return
			case msg, ok := <-channel:
				if !ok {
					return
				}
				userID, err := strconv.ParseUint(msg.Payload, 10, 64)
				if err != nil {
					continue
				}
				s.notify(uint(userID))
			}
		}
	}()
	log.Printf("[StreamService] Subscribed to %s", TradeUpdatesChannel)
}

// Stop closes the subscription and all client connections
func (s *StreamService) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()

	s.clientsMu.Lock()
	for _, conns := range s.clients {
		for conn := range conns {
			conn.Close()
		}
	}
	s.clients = make(map[uint]map[*websocket.Conn]bool)
	s.clientsMu.Unlock()
}

// Subscribe upgrades an authenticated request to a WebSocket and keeps
// the connection registered until the peer goes away
func (s *StreamService) Subscribe(w http.ResponseWriter, r *http.Request, userID uint) error {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return err
	}

	s.clientsMu.Lock()
	if s.clients[userID] == nil {
		s.clients[userID] = make(map[*websocket.Conn]bool)
	}
	s.clients[userID][conn] = true
	s.clientsMu.Unlock()

	// Read loop exists only to detect disconnects; clients never send
	go func() {
		defer s.drop(userID, conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
	return nil
}

// notify pushes a refresh hint to every connection of one user
func (s *StreamService) notify(userID uint) {
	event := StreamEvent{Type: "stats_invalidated", Time: time.Now().Unix()}

	s.clientsMu.RLock()
	conns := make([]*websocket.Conn, 0, len(s.clients[userID]))
	for conn := range s.clients[userID] {
		conns = append(conns, conn)
	}
	s.clientsMu.RUnlock()

	for _, conn := range conns {
		if err := conn.WriteJSON(event); err != nil {
			s.drop(userID, conn)
		}
	}
}

func (s *StreamService) drop(userID uint, conn *websocket.Conn) {
	conn.Close()
	s.clientsMu.Lock()
	if conns := s.clients[userID]; conns != nil {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(s.clients, userID)
		}
	}
	s.clientsMu.Unlock()
}
