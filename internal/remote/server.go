// ABOUTME: WebSocket control server exposing one deck to network controllers
// ABOUTME: Handles the hello handshake, deck commands, and state broadcast
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/Monodeck/monodeck-go/internal/discovery"
	"github.com/Monodeck/monodeck-go/pkg/deck"
)

const (
	// ProtocolVersion is the version of the control protocol we implement
	ProtocolVersion = 1

	// DefaultPort is the default WebSocket listen port
	DefaultPort = 8931

	// DefaultStateInterval is how often deck state is pushed to controllers
	DefaultStateInterval = 100 * time.Millisecond
)

// Config configures a control server
type Config struct {
	// Port to listen on (default: 8931)
	Port int

	// Name of the deck for identification
	Name string

	// Deck is the deck being controlled (required)
	Deck *deck.Deck

	// StateInterval is the deck/state push period (default: 100ms)
	StateInterval time.Duration

	// EnableMDNS enables mDNS service advertisement
	EnableMDNS bool

	// Debug enables debug logging
	Debug bool
}

// Server exposes a deck over WebSocket for remote controllers
type Server struct {
	config   Config
	serverID string

	upgrader websocket.Upgrader

	httpServer *http.Server
	mux        *http.ServeMux

	deck *deck.Deck

	clients   map[string]*client
	clientsMu sync.RWMutex

	mdnsManager *discovery.Manager

	stopChan   chan struct{}
	stopOnce   sync.Once
	shutdownMu sync.RWMutex
	isShutdown bool
	wg         sync.WaitGroup
}

// client represents a connected controller (internal)
type client struct {
	ID   string
	Name string
	Conn *websocket.Conn

	sendChan chan interface{}
}

// NewServer creates a new control server
func NewServer(config Config) (*Server, error) {
	if config.Port == 0 {
		config.Port = DefaultPort
	}
	if config.Name == "" {
		config.Name = "Monodeck"
	}
	if config.StateInterval <= 0 {
		config.StateInterval = DefaultStateInterval
	}
	if config.Deck == nil {
		return nil, fmt.Errorf("deck is required")
	}

	s := &Server{
		config:   config,
		serverID: uuid.New().String(),
		mux:      http.NewServeMux(),
		deck:     config.Deck,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				// Local network control surface, accept all origins
				return true
			},
		},
		clients:  make(map[string]*client),
		stopChan: make(chan struct{}),
	}

	return s, nil
}

// Start runs the server until Stop is called
func (s *Server) Start() error {
	log.Printf("Control server starting: %s (ID: %s)", s.config.Name, s.serverID)

	if s.config.EnableMDNS {
		s.mdnsManager = discovery.NewManager(discovery.Config{
			InstanceName: s.config.Name,
			Port:         s.config.Port,
		})

		if err := s.mdnsManager.Advertise(); err != nil {
			log.Printf("Failed to start mDNS advertisement: %v", err)
		} else {
			log.Printf("mDNS advertisement started")
		}
	}

	s.mux.HandleFunc("/ws", s.handleWebSocket)

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.broadcastState()
	}()

	addr := fmt.Sprintf(":%d", s.config.Port)
	log.Printf("WebSocket control server listening on %s", addr)

	s.httpServer = &http.Server{
		Addr:    addr,
		Handler: s.mux,
	}

	errChan := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != http.ErrServerClosed {
			errChan <- err
		}
	}()

	select {
	case <-s.stopChan:
		log.Printf("Control server shutting down...")
	case err := <-errChan:
		log.Printf("HTTP server error: %v", err)
		return err
	}

	s.shutdownMu.Lock()
	s.isShutdown = true
	s.shutdownMu.Unlock()

	if s.mdnsManager != nil {
		s.mdnsManager.Stop()
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	}

	s.wg.Wait()
	log.Printf("Control server stopped cleanly")

	return nil
}

// Stop stops the server
func (s *Server) Stop() {
	s.stopOnce.Do(func() {
		close(s.stopChan)
	})
}

// NotifyLoad pushes an asynchronous load result to all controllers. Wire
// this into the deck's OnLoad callback.
func (s *Server) NotifyLoad(res deck.LoadResult) {
	update := LoadUpdate{
		LoadID:   res.ID,
		Path:     res.Path,
		Duration: res.Duration,
	}
	if res.Err != nil {
		update.Error = res.Err.Error()
	}

	s.clientsMu.RLock()
	defer s.clientsMu.RUnlock()
	for _, c := range s.clients {
		s.sendMessage(c, "deck/load", update)
	}
}

// broadcastState pushes deck state to all controllers on a fixed period
func (s *Server) broadcastState() {
	ticker := time.NewTicker(s.config.StateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			state := stateFromSnapshot(s.deck.Snapshot())

			s.clientsMu.RLock()
			for _, c := range s.clients {
				s.sendMessage(c, "deck/state", state)
			}
			s.clientsMu.RUnlock()

		case <-s.stopChan:
			return
		}
	}
}

// stateFromSnapshot converts an engine snapshot to the wire representation
func stateFromSnapshot(snap deck.Snapshot) DeckState {
	cues := make([]int64, deck.NumCues)
	for i := range cues {
		cues[i] = snap.Cues[i]
	}

	return DeckState{
		Playing:         snap.Playing,
		PositionFrames:  snap.PositionFrames,
		TotalFrames:     snap.TotalFrames,
		PositionSeconds: snap.PositionSeconds(),
		TotalSeconds:    snap.TotalSeconds(),
		SampleRate:      snap.SampleRate,
		TrackEpoch:      snap.TrackEpoch,
		Faults:          snap.Faults,
		Cues:            cues,
	}
}

// handleWebSocket handles WebSocket connections
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("WebSocket upgrade error: %v", err)
		return
	}

	log.Printf("New WebSocket connection from %s", r.RemoteAddr)
	s.handleConnection(conn)
}

// handleConnection manages a controller connection
func (s *Server) handleConnection(conn *websocket.Conn) {
	defer conn.Close()

	s.shutdownMu.RLock()
	if s.isShutdown {
		s.shutdownMu.RUnlock()
		log.Printf("Rejecting connection during shutdown")
		return
	}
	s.shutdownMu.RUnlock()

	// Wait for client/hello
	_, data, err := conn.ReadMessage()
	if err != nil {
		log.Printf("Error reading hello: %v", err)
		return
	}

	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		return
	}

	if msg.Type != "client/hello" {
		log.Printf("Expected client/hello, got %s", msg.Type)
		return
	}

	helloData, err := json.Marshal(msg.Payload)
	if err != nil {
		log.Printf("Error marshaling hello payload: %v", err)
		return
	}

	var hello ClientHello
	if err := json.Unmarshal(helloData, &hello); err != nil {
		log.Printf("Error unmarshaling client hello: %v", err)
		return
	}

	if hello.ClientID == "" || hello.Name == "" {
		log.Printf("Client hello missing required fields")
		return
	}

	log.Printf("Controller hello: %s (ID: %s)", hello.Name, hello.ClientID)

	c := &client{
		ID:       hello.ClientID,
		Name:     hello.Name,
		Conn:     conn,
		sendChan: make(chan interface{}, 100),
	}

	s.clientsMu.Lock()
	if _, exists := s.clients[hello.ClientID]; exists {
		s.clientsMu.Unlock()
		log.Printf("Client ID %s already connected, rejecting duplicate", hello.ClientID)
		return
	}
	s.clients[c.ID] = c
	s.clientsMu.Unlock()

	defer func() {
		s.removeClient(c)
		log.Printf("Controller disconnected: %s", c.Name)
	}()

	serverHello := ServerHello{
		ServerID:   s.serverID,
		Name:       s.config.Name,
		Version:    ProtocolVersion,
		SampleRate: s.deck.Engine().SampleRate(),
		NumCues:    deck.NumCues,
	}

	if err := s.sendMessage(c, "server/hello", serverHello); err != nil {
		log.Printf("Error sending server hello: %v", err)
		return
	}

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		s.clientWriter(c)
	}()

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Printf("WebSocket error: %v", err)
			}
			break
		}

		s.handleClientMessage(c, data)
	}
}

// clientWriter sends messages to the controller
func (s *Server) clientWriter(c *client) {
	ticker := time.NewTicker(30 * time.Second)
	defer ticker.Stop()

	const writeDeadline = 10 * time.Second

	for {
		select {
		case msg, ok := <-c.sendChan:
			if !ok {
				return
			}

			data, err := json.Marshal(msg)
			if err != nil {
				continue
			}
			c.Conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.Conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}

		case <-ticker.C:
			if err := c.Conn.WriteControl(websocket.PingMessage, []byte{}, time.Now().Add(10*time.Second)); err != nil {
				return
			}
		}
	}
}

// handleClientMessage processes messages from controllers
func (s *Server) handleClientMessage(c *client, data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Error unmarshaling message: %v", err)
		return
	}

	switch msg.Type {
	case "deck/command":
		s.handleDeckCommand(c, msg.Payload)
	default:
		if s.config.Debug {
			log.Printf("Unknown message type: %s", msg.Type)
		}
	}
}

// handleDeckCommand dispatches a controller command to the deck
func (s *Server) handleDeckCommand(c *client, payload interface{}) {
	cmdData, err := json.Marshal(payload)
	if err != nil {
		return
	}

	var cmd DeckCommand
	if err := json.Unmarshal(cmdData, &cmd); err != nil {
		s.sendError(c, fmt.Sprintf("malformed command: %v", err))
		return
	}

	if s.config.Debug {
		log.Printf("Command from %s: %s", c.Name, cmd.Command)
	}

	switch cmd.Command {
	case "play":
		err = s.deck.Play()
	case "pause":
		err = s.deck.Pause()
	case "seek":
		if cmd.Frame != 0 {
			err = s.deck.Seek(cmd.Frame)
		} else {
			err = s.deck.SeekSeconds(cmd.Seconds)
		}
	case "set_cue":
		err = s.deck.SetCue(cmd.Slot)
	case "jump_cue":
		err = s.deck.JumpToCue(cmd.Slot)
	case "clear_cue":
		err = s.deck.ClearCue(cmd.Slot)
	case "load":
		if cmd.Path == "" {
			err = fmt.Errorf("load requires a path")
		} else {
			s.deck.Load(cmd.Path)
		}
	default:
		err = fmt.Errorf("unknown command: %s", cmd.Command)
	}

	if err != nil {
		s.sendError(c, err.Error())
	}
}

// removeClient removes a controller
func (s *Server) removeClient(c *client) {
	s.clientsMu.Lock()
	defer s.clientsMu.Unlock()

	delete(s.clients, c.ID)
	close(c.sendChan)
}

// sendMessage sends a JSON message to a controller
func (s *Server) sendMessage(c *client, msgType string, payload interface{}) error {
	msg := Message{
		Type:    msgType,
		Payload: payload,
	}

	select {
	case c.sendChan <- msg:
		return nil
	default:
		return fmt.Errorf("client send buffer full")
	}
}

// sendError reports a rejected command back to the controller
func (s *Server) sendError(c *client, message string) {
	s.sendMessage(c, "server/error", ErrorMessage{Message: message})
}
