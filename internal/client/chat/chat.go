// Package chat is the live messaging client for the community rooms. It is an
// explicit state machine decoupled from any view: the REPL renders whatever
// Messages() returns and never touches the transport directly.
package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/agrismart/agrismart-cli/internal/client/models"
	"github.com/agrismart/agrismart-cli/internal/common"
	"github.com/agrismart/agrismart-cli/internal/logging"
	"github.com/google/uuid"
)

// TypingWindow is how long a peer's typing signal stays visible without a
// refresh.
const TypingWindow = 2 * time.Second

// State is the lifecycle of the room connection.
type State int

const (
	StateDisconnected State = iota
	StateConnecting
	StateJoined
	StateLeaving
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateJoined:
		return "joined"
	case StateLeaving:
		return "leaving"
	default:
		return "disconnected"
	}
}

// Conn is one live transport connection. Production connections come from
// Dial; tests substitute a scripted fake.
type Conn interface {
	WriteJSON(v any) error
	ReadJSON(v any) error
	Close() error
}

// Dialer opens a Conn against the messaging endpoint.
type Dialer func(ctx context.Context, url string) (Conn, error)

// IdentitySource yields the identity stamped on outgoing messages.
type IdentitySource interface {
	User() (models.User, bool)
}

// envelope is the wire frame, both directions.
type envelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

// outEnvelope marshals the payload inline on the way out.
type outEnvelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

type roomPayload struct {
	Room     string `json:"room"`
	Username string `json:"username"`
	ClientID string `json:"client_id"`
}

type typingPayload struct {
	Room     string `json:"room"`
	Username string `json:"username"`
}

// Client owns the connection to one room at a time.
//
// Room switches tear the transport down and dial a fresh one rather than
// reusing the open connection. Wasteful, but it guarantees no frame from the
// old room can race into the new one.
type Client struct {
	url      string
	dial     Dialer
	identity IdentitySource
	log      logging.Logger
	clientID string

	mu    sync.Mutex
	state State
	room  string
	conn  Conn
	// gen invalidates reader goroutines left over from a torn-down
	// connection; their frames and exit signals are dropped.
	gen int

	messages    []models.Message
	typingUser  string
	typingUntil time.Time

	subs []func()

	now func() time.Time
}

func New(url string, dial Dialer, identity IdentitySource, log logging.Logger) *Client {
	return &Client{
		url:      url,
		dial:     dial,
		identity: identity,
		log:      log,
		clientID: uuid.NewString(),
		now:      time.Now,
	}
}

// Activate joins the given room, leaving the current one first if needed.
// Returns common.ErrAlreadyActive when already joined to the same room.
func (c *Client) Activate(ctx context.Context, room string) error {
	c.mu.Lock()

	if c.state != StateDisconnected {
		if c.room == room {
			c.mu.Unlock()
			return common.ErrAlreadyActive
		}
		c.leaveLocked(ctx)
	}

	c.state = StateConnecting
	c.room = room
	c.messages = nil
	c.typingUser = ""
	c.typingUntil = time.Time{}

	conn, err := c.dial(ctx, c.url)
	if err != nil {
		c.state = StateDisconnected
		c.room = ""
		c.mu.Unlock()
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	username, _ := c.usernameLocked()
	if err := conn.WriteJSON(outEnvelope{Event: "join", Data: roomPayload{Room: room, Username: username, ClientID: c.clientID}}); err != nil {
		_ = conn.Close()
		c.state = StateDisconnected
		c.room = ""
		c.mu.Unlock()
		return fmt.Errorf("%w: %v", common.ErrUnavailable, err)
	}

	c.conn = conn
	c.state = StateJoined
	c.gen++
	go c.readLoop(conn, c.gen)
	c.mu.Unlock()

	c.notify()
	return nil
}

// Deactivate leaves the current room and tears down the transport. Returns
// common.ErrNotJoined when there is nothing to leave.
func (c *Client) Deactivate(ctx context.Context) error {
	c.mu.Lock()
	if c.state == StateDisconnected {
		c.mu.Unlock()
		return common.ErrNotJoined
	}
	c.leaveLocked(ctx)
	c.mu.Unlock()

	c.notify()
	return nil
}

// leaveLocked announces the departure best-effort and drops the connection.
// Must be called with c.mu held.
func (c *Client) leaveLocked(ctx context.Context) {
	c.state = StateLeaving
	if c.conn != nil {
		username, _ := c.usernameLocked()
		if err := c.conn.WriteJSON(outEnvelope{Event: "leave", Data: roomPayload{Room: c.room, Username: username, ClientID: c.clientID}}); err != nil {
			c.log.Warn(ctx, "leave announcement failed", "room", c.room, "err", err)
		}
		_ = c.conn.Close()
		c.conn = nil
	}
	c.gen++
	c.state = StateDisconnected
	c.room = ""
	c.typingUser = ""
	c.typingUntil = time.Time{}
}

// Send delivers a message to the active room. When no room is joined, or the
// write fails, the message is appended locally instead so the author still
// sees what they typed.
func (c *Client) Send(ctx context.Context, body string) error {
	if body == "" {
		return common.ErrValidation
	}

	c.mu.Lock()
	user, _ := c.identity.User()
	msg := models.Message{
		ID:        uuid.NewString(),
		UserID:    user.ID,
		Username:  user.Name,
		Body:      body,
		Timestamp: c.now().Format("2006-01-02T15:04:05"),
		Room:      c.room,
	}

	if c.state != StateJoined {
		msg.LocalEcho = true
		c.messages = append(c.messages, msg)
	} else if err := c.conn.WriteJSON(outEnvelope{Event: "send_message", Data: msg}); err != nil {
		c.log.Warn(ctx, "message send failed, keeping local copy", "room", c.room, "err", err)
		msg.LocalEcho = true
		c.messages = append(c.messages, msg)
	}
	c.mu.Unlock()

	c.notify()
	return nil
}

// Typing signals the active room that the local user is composing. No-op
// when not joined.
func (c *Client) Typing(ctx context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != StateJoined {
		return
	}
	username, _ := c.usernameLocked()
	if err := c.conn.WriteJSON(outEnvelope{Event: "typing", Data: typingPayload{Room: c.room, Username: username}}); err != nil {
		c.log.Debug(ctx, "typing signal failed", "err", err)
	}
}

// Seed preloads messages into the log, used for placeholder room history.
func (c *Client) Seed(msgs []models.Message) {
	c.mu.Lock()
	c.messages = append(c.messages, msgs...)
	c.mu.Unlock()
	c.notify()
}

// Messages returns the log in arrival order. The slice is a copy.
func (c *Client) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// State reports the current lifecycle state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Room reports the active room ("" when disconnected).
func (c *Client) Room() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.room
}

// TypingPeer reports which peer is typing, if the signal is still fresh.
func (c *Client) TypingPeer() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.typingUser == "" || !c.now().Before(c.typingUntil) {
		return "", false
	}
	return c.typingUser, true
}

// Subscribe registers a callback fired after every observable change.
// Callbacks run synchronously on the mutating goroutine, outside the lock.
func (c *Client) Subscribe(fn func()) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subs = append(c.subs, fn)
}

func (c *Client) usernameLocked() (string, bool) {
	u, ok := c.identity.User()
	return u.Name, ok
}

func (c *Client) readLoop(conn Conn, gen int) {
	for {
		var env envelope
		if err := conn.ReadJSON(&env); err != nil {
			c.readerExit(gen, err)
			return
		}
		c.dispatch(gen, env)
	}
}

func (c *Client) dispatch(gen int, env envelope) {
	c.mu.Lock()
	if gen != c.gen {
		// frame from a connection we already left
		c.mu.Unlock()
		return
	}

	ctx := context.Background()
	changed := false
	switch env.Event {
	case "new_message":
		var msg models.Message
		if err := json.Unmarshal(env.Data, &msg); err != nil {
			c.log.Warn(ctx, "dropping malformed message frame", "err", err)
			break
		}
		c.messages = append(c.messages, msg)
		if msg.Username == c.typingUser {
			c.typingUntil = time.Time{}
		}
		changed = true
	case "user_typing":
		var p typingPayload
		if err := json.Unmarshal(env.Data, &p); err != nil {
			break
		}
		c.typingUser = p.Username
		c.typingUntil = c.now().Add(TypingWindow)
		changed = true
	case "user_joined", "user_left":
		c.log.Debug(ctx, "room membership event", "event", env.Event)
	default:
		c.log.Debug(ctx, "ignoring unknown event", "event", env.Event)
	}
	c.mu.Unlock()

	if changed {
		c.notify()
	}
}

// readerExit marks the connection dropped. There is no automatic reconnect;
// a fresh Activate is the only way back.
func (c *Client) readerExit(gen int, err error) {
	c.mu.Lock()
	if gen != c.gen {
		c.mu.Unlock()
		return
	}
	c.log.Warn(context.Background(), "transport dropped", "room", c.room, "err", err)
	if c.conn != nil {
		_ = c.conn.Close()
		c.conn = nil
	}
	c.gen++
	c.state = StateDisconnected
	c.room = ""
	c.mu.Unlock()

	c.notify()
}

func (c *Client) notify() {
	c.mu.Lock()
	subs := make([]func(), len(c.subs))
	copy(subs, c.subs)
	c.mu.Unlock()

	for _, fn := range subs {
		fn()
	}
}
