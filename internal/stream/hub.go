package stream

import (
	"sync"
	"time"

	"github.com/keyfob-dev/keyfob/internal/totp"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Subscription names a secret a client wants live codes for. The label is
// chosen by the client and is the only identifier echoed back; the secret
// itself never leaves the subscription.
type Subscription struct {
	Label  string
	Secret string
	Window uint
}

// Update carries one generated code to a client. Code holds either a 6 digit
// code or one of the sentinel strings for an undecodable secret or a failed
// hash, so a single bad subscription never tears down the stream.
type Update struct {
	Label            string `json:"label" msgpack:"label"`
	Code             string `json:"code" msgpack:"code"`
	SecondsRemaining uint   `json:"seconds_remaining" msgpack:"seconds_remaining"`
	Window           uint   `json:"window" msgpack:"window"`
}

// Client is one connected stream consumer.
type Client struct {
	id   string
	send chan Update
	mu   sync.Mutex
	subs map[string]Subscription
	hub  *Hub
}

// ID returns the client's connection id.
func (c *Client) ID() string {
	return c.id
}

// Updates returns the channel code updates are delivered on.
func (c *Client) Updates() <-chan Update {
	return c.send
}

// Subscribe registers a secret for live updates and pushes the current code
// immediately, without waiting for the next window.
func (c *Client) Subscribe(sub Subscription) {
	if sub.Window == 0 {
		sub.Window = totp.DefaultWindow
	}

	c.mu.Lock()
	c.subs[sub.Label] = sub
	c.mu.Unlock()

	c.deliver(makeUpdate(sub, time.Now()))
}

// Unsubscribe stops updates for a label.
func (c *Client) Unsubscribe(label string) {
	c.mu.Lock()
	delete(c.subs, label)
	c.mu.Unlock()
}

// subscriptions snapshots the client's subscriptions for the tick loop.
func (c *Client) subscriptions() []Subscription {
	c.mu.Lock()
	defer c.mu.Unlock()

	subs := make([]Subscription, 0, len(c.subs))
	for _, sub := range c.subs {
		subs = append(subs, sub)
	}
	return subs
}

// deliver hands an update to the client without blocking the hub; slow
// consumers lose updates rather than stalling everyone else.
func (c *Client) deliver(update Update) {
	select {
	case c.send <- update:
	default:
		log.Debug().Str("client_id", c.id).Str("label", update.Label).Msg("stream: dropping update for slow client")
	}
}

// Hub tracks connected clients and pushes fresh codes when a new time
// window begins.
type Hub struct {
	clients    map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

var (
	globalHub  *Hub
	hubOnce    sync.Once
	hubStarted bool
)

// GetHub returns the singleton stream hub instance
func GetHub() *Hub {
	hubOnce.Do(func() {
		globalHub = &Hub{
			clients:    make(map[*Client]bool),
			register:   make(chan *Client),
			unregister: make(chan *Client),
		}
	})
	return globalHub
}

// Start begins the hub's window tick loop
func (h *Hub) Start() {
	if hubStarted {
		return
	}
	hubStarted = true
	go h.run()
}

// Register attaches a new client to the hub.
func (h *Hub) Register() *Client {
	client := &Client{
		id:   uuid.New().String(),
		send: make(chan Update, 64),
		subs: make(map[string]Subscription),
		hub:  h,
	}
	h.register <- client
	return client
}

// Unregister detaches a client and closes its update channel.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}

func (h *Hub) run() {
	// One tick per second is the finest granularity the engine can
	// distinguish; the counter has no sub-second sensitivity.
	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client] = true
			h.mu.Unlock()
			log.Debug().Str("client_id", client.id).Msg("stream: client connected")

		case client := <-h.unregister:
			h.mu.Lock()
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
			h.mu.Unlock()
			log.Debug().Str("client_id", client.id).Msg("stream: client disconnected")

		case now := <-ticker.C:
			h.pushNewWindows(now)
		}
	}
}

// pushNewWindows regenerates and delivers codes for every subscription whose
// time window has just started. The full remaining time equals the window
// length only in the first second of a window, which is the rollover edge.
func (h *Hub) pushNewWindows(now time.Time) {
	h.mu.RLock()
	clients := make([]*Client, 0, len(h.clients))
	for client := range h.clients {
		clients = append(clients, client)
	}
	h.mu.RUnlock()

	for _, client := range clients {
		for _, sub := range client.subscriptions() {
			if totp.TimeRemainingAt(now, sub.Window) == sub.Window {
				client.deliver(makeUpdate(sub, now))
			}
		}
	}
}

func makeUpdate(sub Subscription, now time.Time) Update {
	code, err := totp.GenerateCodeAt(sub.Secret, now, sub.Window)
	return Update{
		Label:            sub.Label,
		Code:             totp.DisplayCode(code, err),
		SecondsRemaining: totp.TimeRemainingAt(now, sub.Window),
		Window:           sub.Window,
	}
}
