package server

import (
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/qieqieplus/zoomsdk-facade/pkg/config"
	"github.com/qieqieplus/zoomsdk-facade/pkg/events"
	"github.com/qieqieplus/zoomsdk-facade/pkg/log"
	"github.com/qieqieplus/zoomsdk-facade/pkg/zoomsdk"
)

// WebSocketServer streams facade lifecycle events to WebSocket clients
type WebSocketServer struct {
	upgrader     websocket.Upgrader
	bus          *events.Bus
	facade       *zoomsdk.Facade
	config       *config.Config
	clients      map[string]*Client
	clientsMutex sync.RWMutex
}

// NewWebSocketServer creates a new WebSocket server
func NewWebSocketServer(bus *events.Bus, facade *zoomsdk.Facade, cfg *config.Config) *WebSocketServer {
	return &WebSocketServer{
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
		},
		bus:     bus,
		facade:  facade,
		config:  cfg,
		clients: make(map[string]*Client),
	}
}

// HandleConnection handles incoming WebSocket connections
func (s *WebSocketServer) HandleConnection(w http.ResponseWriter, r *http.Request) {
	connConfig, err := ParseConnectionConfig(r.URL.Query(), s.config.EventQueueSize)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Errorf("Failed to upgrade WebSocket connection: %v", err)
		return
	}

	// The bus replaces subscribers sharing an ID and remote addresses repeat behind proxies.
	client := NewClient(uuid.NewString(), conn, s.bus, s.config)
	s.addClient(client)

	log.Infof("WebSocket client connected: %s from %s (kinds: %v)", client.ID, conn.RemoteAddr(), connConfig.Kinds)

	hello, err := CreateHelloMessage(s.facade.State(), s.facade.Version(), s.facade.Capabilities(), connConfig.Kinds)
	if err != nil {
		log.Errorf("Failed to encode hello message: %v", err)
	}
	client.Process(connConfig, hello)

	s.removeClient(client.ID)
	log.Infof("WebSocket client disconnected: %s", client.ID)
}

// ClientCount returns the number of connected clients
func (s *WebSocketServer) ClientCount() int {
	s.clientsMutex.RLock()
	defer s.clientsMutex.RUnlock()
	return len(s.clients)
}

// EventStats returns the counters of the bus clients subscribe to.
func (s *WebSocketServer) EventStats() events.BusStats {
	return s.bus.GetStats()
}

// addClient adds a client to the server's list
func (s *WebSocketServer) addClient(client *Client) {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()
	s.clients[client.ID] = client
}

// removeClient removes a client from the server's list
func (s *WebSocketServer) removeClient(clientID string) {
	s.clientsMutex.Lock()
	defer s.clientsMutex.Unlock()
	delete(s.clients, clientID)
}

// Client represents a single WebSocket client
type Client struct {
	ID         string
	conn       *websocket.Conn
	bus        *events.Bus
	config     *config.Config
	subscriber *events.Subscriber
	sendChan   chan []byte
}

// NewClient creates a new client
func NewClient(id string, conn *websocket.Conn, bus *events.Bus, cfg *config.Config) *Client {
	return &Client{
		ID:       id,
		conn:     conn,
		bus:      bus,
		config:   cfg,
		sendChan: make(chan []byte, cfg.EventQueueSize),
	}
}

// Process subscribes the client and forwards events until either side goes
// away. hello, when non-nil, is written before any event.
func (c *Client) Process(connConfig *ConnectionConfig, hello []byte) {
	c.subscriber = events.NewSubscriber(c.ID, connConfig.QueueSize)
	c.subscriber.SetKindFilter(connConfig.Kinds)

	// Queue hello first so it precedes any event the subscription delivers.
	if hello != nil {
		c.sendChan <- hello
	}

	c.bus.Subscribe(c.subscriber)
	defer c.bus.Unsubscribe(c.ID)

	writerDone := make(chan struct{})
	go func() {
		defer close(writerDone)
		c.writePump()
	}()
	go c.readPump()

	for e := range c.subscriber.Channel {
		data, err := e.Encode()
		if err != nil {
			log.Errorf("Failed to encode %s event: %v", e.Kind, err)
			continue
		}
		select {
		case c.sendChan <- data:
		default:
			log.Warnf("Dropping %s event for client %s (send channel full)", e.Kind, c.ID)
		}
	}

	close(c.sendChan)
	<-writerDone
}

// writePump pumps messages from the send channel to the WebSocket connection
func (c *Client) writePump() {
	defer c.conn.Close()

	// Ping ticker to keep connection alive
	pingTicker := time.NewTicker(c.config.WebSocket.PingInterval)
	defer pingTicker.Stop()

	for {
		select {
		case message, ok := <-c.sendChan:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WebSocket.WriteTimeout))
			if !ok {
				// Send channel closed
				c.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Errorf("Error writing message to WebSocket: %v", err)
				c.subscriber.Close()
				return
			}

		case now := <-pingTicker.C:
			c.conn.SetWriteDeadline(time.Now().Add(c.config.WebSocket.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Errorf("Error sending ping to WebSocket: %v", err)
				c.subscriber.Close()
				return
			}
			if hb, err := CreateHeartbeatMessage(now.UnixMilli()); err == nil {
				if err := c.conn.WriteMessage(websocket.TextMessage, hb); err != nil {
					log.Errorf("Error sending heartbeat to WebSocket: %v", err)
					c.subscriber.Close()
					return
				}
			}
			log.Debugf("Sent ping to client %s", c.ID)
		}
	}
}

// readPump pumps messages from the WebSocket connection. Clients are not
// expected to send anything; reads only serve close and pong handling.
func (c *Client) readPump() {
	defer c.subscriber.Close()

	// Set initial read deadline
	c.conn.SetReadDeadline(time.Now().Add(c.config.WebSocket.ReadTimeout))
	c.conn.SetPongHandler(func(string) error {
		// Reset read deadline when pong is received
		c.conn.SetReadDeadline(time.Now().Add(c.config.WebSocket.ReadTimeout))
		log.Debugf("Received pong from client %s", c.ID)
		return nil
	})

	for {
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure, websocket.CloseNormalClosure) {
				log.Errorf("WebSocket read error: %v", err)
			}
			return
		}
		// If we receive any message (not just pong), reset the deadline
		c.conn.SetReadDeadline(time.Now().Add(c.config.WebSocket.ReadTimeout))
	}
}
