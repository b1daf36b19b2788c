// ABOUTME: WebSocket controller client for the deck control protocol
// ABOUTME: Handles connection, handshake, and message routing
package remote

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ClientConfig holds controller client configuration
type ClientConfig struct {
	ServerAddr string
	ClientID   string
	Name       string
}

// Client connects to a deck's control server as a remote controller
type Client struct {
	config ClientConfig
	conn   *websocket.Conn
	mu     sync.RWMutex

	// Message channels
	States chan DeckState
	Loads  chan LoadUpdate
	Errors chan ErrorMessage

	// Hello captured during the handshake
	serverHello ServerHello

	connected bool
	ctx       context.Context
	cancel    context.CancelFunc
}

// NewClient creates a new controller client
func NewClient(config ClientConfig) *Client {
	ctx, cancel := context.WithCancel(context.Background())

	return &Client{
		config: config,
		States: make(chan DeckState, 10),
		Loads:  make(chan LoadUpdate, 10),
		Errors: make(chan ErrorMessage, 10),
		ctx:    ctx,
		cancel: cancel,
	}
}

// Connect establishes the WebSocket connection and performs the handshake
func (c *Client) Connect() error {
	u := url.URL{Scheme: "ws", Host: c.config.ServerAddr, Path: "/ws"}
	log.Printf("Connecting to %s", u.String())

	conn, _, err := websocket.DefaultDialer.Dial(u.String(), nil)
	if err != nil {
		return fmt.Errorf("dial failed: %w", err)
	}

	c.mu.Lock()
	c.conn = conn
	c.connected = true
	c.mu.Unlock()

	if err := c.handshake(); err != nil {
		c.Close()
		return fmt.Errorf("handshake failed: %w", err)
	}

	go c.readMessages()

	return nil
}

// handshake performs the hello exchange
func (c *Client) handshake() error {
	hello := ClientHello{
		ClientID: c.config.ClientID,
		Name:     c.config.Name,
		Version:  ProtocolVersion,
	}

	if err := c.sendJSON(Message{Type: "client/hello", Payload: hello}); err != nil {
		return fmt.Errorf("failed to send client/hello: %w", err)
	}

	c.conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	_, data, err := c.conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("failed to read server/hello: %w", err)
	}
	c.conn.SetReadDeadline(time.Time{})

	var serverMsg Message
	if err := json.Unmarshal(data, &serverMsg); err != nil {
		return fmt.Errorf("failed to parse server/hello: %w", err)
	}

	if serverMsg.Type != "server/hello" {
		return fmt.Errorf("expected server/hello, got %s", serverMsg.Type)
	}

	payloadBytes, _ := json.Marshal(serverMsg.Payload)
	if err := json.Unmarshal(payloadBytes, &c.serverHello); err != nil {
		return fmt.Errorf("failed to parse server/hello payload: %w", err)
	}

	log.Printf("Handshake complete with %s (%d cue slots, %d Hz)",
		c.serverHello.Name, c.serverHello.NumCues, c.serverHello.SampleRate)

	return nil
}

// ServerInfo returns the hello received during the handshake
func (c *Client) ServerInfo() ServerHello {
	return c.serverHello
}

// sendJSON sends a JSON message
func (c *Client) sendJSON(msg Message) error {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if !c.connected {
		return fmt.Errorf("not connected")
	}

	return c.conn.WriteJSON(msg)
}

// readMessages reads and routes incoming messages
func (c *Client) readMessages() {
	defer c.Close()

	for {
		select {
		case <-c.ctx.Done():
			return
		default:
		}

		_, data, err := c.conn.ReadMessage()
		if err != nil {
			log.Printf("Read error: %v", err)
			return
		}

		c.handleJSONMessage(data)
	}
}

// handleJSONMessage routes JSON messages
func (c *Client) handleJSONMessage(data []byte) {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		log.Printf("Failed to parse JSON message: %v", err)
		return
	}

	payloadBytes, _ := json.Marshal(msg.Payload)

	switch msg.Type {
	case "deck/state":
		var state DeckState
		json.Unmarshal(payloadBytes, &state)
		// Keep only the freshest state; drop stale ones on a slow consumer
		select {
		case c.States <- state:
		default:
			select {
			case <-c.States:
			default:
			}
			select {
			case c.States <- state:
			case <-c.ctx.Done():
			}
		}

	case "deck/load":
		var load LoadUpdate
		json.Unmarshal(payloadBytes, &load)
		select {
		case c.Loads <- load:
		case <-c.ctx.Done():
		}

	case "server/error":
		var errMsg ErrorMessage
		json.Unmarshal(payloadBytes, &errMsg)
		select {
		case c.Errors <- errMsg:
		case <-c.ctx.Done():
		}

	default:
		log.Printf("Unknown message type: %s", msg.Type)
	}
}

// Send submits a deck command
func (c *Client) Send(cmd DeckCommand) error {
	return c.sendJSON(Message{Type: "deck/command", Payload: cmd})
}

// Play starts playback
func (c *Client) Play() error {
	return c.Send(DeckCommand{Command: "play"})
}

// Pause stops playback in place
func (c *Client) Pause() error {
	return c.Send(DeckCommand{Command: "pause"})
}

// SeekSeconds jumps to a time offset
func (c *Client) SeekSeconds(seconds float64) error {
	return c.Send(DeckCommand{Command: "seek", Seconds: seconds})
}

// SetCue stores the current position in a cue slot
func (c *Client) SetCue(slot int) error {
	return c.Send(DeckCommand{Command: "set_cue", Slot: slot})
}

// JumpToCue seeks to a stored cue point
func (c *Client) JumpToCue(slot int) error {
	return c.Send(DeckCommand{Command: "jump_cue", Slot: slot})
}

// ClearCue unsets a cue slot
func (c *Client) ClearCue(slot int) error {
	return c.Send(DeckCommand{Command: "clear_cue", Slot: slot})
}

// Load asks the deck to load a track from a path visible to the deck
func (c *Client) Load(path string) error {
	return c.Send(DeckCommand{Command: "load", Path: path})
}

// Close closes the connection
func (c *Client) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.connected {
		c.connected = false
		c.cancel()
		c.conn.Close()
		log.Printf("Connection closed")
	}
}

// IsConnected returns connection status
func (c *Client) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}
