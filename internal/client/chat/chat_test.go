package chat

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/agrismart/agrismart-cli/internal/client/models"
	"github.com/agrismart/agrismart-cli/internal/common"
	"github.com/agrismart/agrismart-cli/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ---------- test doubles ----------

type wireFrame struct {
	Event string         `json:"event"`
	Data  map[string]any `json:"data"`
}

type fakeConn struct {
	mu        sync.Mutex
	writes    []wireFrame
	failWrite bool
	closed    bool
	inbound   chan []byte
}

func newFakeConn() *fakeConn {
	return &fakeConn{inbound: make(chan []byte, 16)}
}

func (f *fakeConn) WriteJSON(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return errors.New("use of closed connection")
	}
	if f.failWrite {
		return errors.New("broken pipe")
	}
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	var fr wireFrame
	if err := json.Unmarshal(b, &fr); err != nil {
		return err
	}
	f.writes = append(f.writes, fr)
	return nil
}

func (f *fakeConn) ReadJSON(v any) error {
	b, ok := <-f.inbound
	if !ok {
		return errors.New("connection closed")
	}
	return json.Unmarshal(b, v)
}

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.closed {
		f.closed = true
		close(f.inbound)
	}
	return nil
}

func (f *fakeConn) push(t *testing.T, event string, data any) {
	t.Helper()
	raw, err := json.Marshal(data)
	require.NoError(t, err)
	b, err := json.Marshal(envelope{Event: event, Data: raw})
	require.NoError(t, err)
	f.inbound <- b
}

func (f *fakeConn) frames() []wireFrame {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]wireFrame, len(f.writes))
	copy(out, f.writes)
	return out
}

func (f *fakeConn) isClosed() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.closed
}

type fakeIdentity struct {
	user models.User
	ok   bool
}

func (f fakeIdentity) User() (models.User, bool) { return f.user, f.ok }

type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func (c *fakeClock) now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) advance(d time.Duration) {
	c.mu.Lock()
	c.t = c.t.Add(d)
	c.mu.Unlock()
}

func testLogger() logging.Logger {
	return logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// newTestClient wires a client whose dialer hands out the given connections
// in order.
func newTestClient(t *testing.T, conns ...*fakeConn) (*Client, *fakeClock) {
	t.Helper()
	i := 0
	dial := func(ctx context.Context, url string) (Conn, error) {
		require.Less(t, i, len(conns), "unexpected extra dial")
		c := conns[i]
		i++
		return c, nil
	}
	clk := &fakeClock{t: time.Date(2025, 6, 1, 10, 0, 0, 0, time.UTC)}
	c := New("ws://localhost:5000/socket", dial, fakeIdentity{user: models.User{ID: 7, Name: "Ravi"}, ok: true}, testLogger())
	c.now = clk.now
	return c, clk
}

func waitMessages(t *testing.T, c *Client, n int) []models.Message {
	t.Helper()
	require.Eventually(t, func() bool { return len(c.Messages()) == n }, time.Second, 5*time.Millisecond)
	return c.Messages()
}

// ---------- lifecycle ----------

func TestActivate_JoinsRoom(t *testing.T) {
	conn := newFakeConn()
	c, _ := newTestClient(t, conn)

	require.NoError(t, c.Activate(context.Background(), "general"))
	assert.Equal(t, StateJoined, c.State())
	assert.Equal(t, "general", c.Room())

	frames := conn.frames()
	require.Len(t, frames, 1)
	assert.Equal(t, "join", frames[0].Event)
	assert.Equal(t, "general", frames[0].Data["room"])
	assert.Equal(t, "Ravi", frames[0].Data["username"])
}

func TestActivate_SameRoomTwice(t *testing.T) {
	c, _ := newTestClient(t, newFakeConn())

	require.NoError(t, c.Activate(context.Background(), "general"))
	err := c.Activate(context.Background(), "general")
	require.ErrorIs(t, err, common.ErrAlreadyActive)
}

func TestActivate_DialFailure(t *testing.T) {
	dial := func(ctx context.Context, url string) (Conn, error) {
		return nil, errors.New("connection refused")
	}
	c := New("ws://x", dial, fakeIdentity{}, testLogger())

	err := c.Activate(context.Background(), "general")
	require.ErrorIs(t, err, common.ErrUnavailable)
	assert.Equal(t, StateDisconnected, c.State())
	assert.Empty(t, c.Room())
}

func TestRoomSwitch_LeavesBeforeJoining(t *testing.T) {
	connA, connB := newFakeConn(), newFakeConn()
	c, _ := newTestClient(t, connA, connB)
	ctx := context.Background()

	require.NoError(t, c.Activate(ctx, "general"))
	connA.push(t, "new_message", models.Message{Username: "Suresh", Body: "old room traffic"})
	waitMessages(t, c, 1)

	require.NoError(t, c.Activate(ctx, "wheat"))

	framesA := connA.frames()
	require.Len(t, framesA, 2)
	assert.Equal(t, "join", framesA[0].Event)
	assert.Equal(t, "leave", framesA[1].Event)
	assert.Equal(t, "general", framesA[1].Data["room"])
	assert.True(t, connA.isClosed())

	framesB := connB.frames()
	require.Len(t, framesB, 1)
	assert.Equal(t, "join", framesB[0].Event)
	assert.Equal(t, "wheat", framesB[0].Data["room"])

	// switching rooms starts a fresh log
	assert.Empty(t, c.Messages())
	assert.Equal(t, "wheat", c.Room())
	assert.Equal(t, StateJoined, c.State())
}

func TestStaleFrames_Dropped(t *testing.T) {
	c, _ := newTestClient(t, newFakeConn())
	require.NoError(t, c.Activate(context.Background(), "general"))

	raw, _ := json.Marshal(models.Message{Username: "Ghost", Body: "late frame"})
	c.dispatch(c.gen-1, envelope{Event: "new_message", Data: raw})

	assert.Empty(t, c.Messages())
}

func TestDeactivate(t *testing.T) {
	conn := newFakeConn()
	c, _ := newTestClient(t, conn)
	ctx := context.Background()

	require.NoError(t, c.Activate(ctx, "general"))
	require.NoError(t, c.Deactivate(ctx))

	assert.Equal(t, StateDisconnected, c.State())
	assert.Empty(t, c.Room())
	assert.True(t, conn.isClosed())

	frames := conn.frames()
	require.Len(t, frames, 2)
	assert.Equal(t, "leave", frames[1].Event)
}

func TestDeactivate_WhenDisconnected(t *testing.T) {
	c, _ := newTestClient(t)
	require.ErrorIs(t, c.Deactivate(context.Background()), common.ErrNotJoined)
}

func TestServerDrop_NoReconnect(t *testing.T) {
	conn := newFakeConn()
	c, _ := newTestClient(t, conn) // a second dial would fail the test

	require.NoError(t, c.Activate(context.Background(), "general"))
	_ = conn.Close()

	require.Eventually(t, func() bool { return c.State() == StateDisconnected }, time.Second, 5*time.Millisecond)
	assert.Empty(t, c.Room())
}

// ---------- message log ----------

func TestInbound_ArrivalOrderKept(t *testing.T) {
	conn := newFakeConn()
	c, _ := newTestClient(t, conn)
	require.NoError(t, c.Activate(context.Background(), "general"))

	// timestamps deliberately out of order; the log must not re-sort
	conn.push(t, "new_message", models.Message{Username: "Suresh", Body: "first", Timestamp: "2025-06-01T10:30:00"})
	conn.push(t, "new_message", models.Message{Username: "Ramesh", Body: "second", Timestamp: "2025-06-01T09:00:00"})
	conn.push(t, "new_message", models.Message{Username: "Suresh", Body: "third", Timestamp: "2025-06-01T11:00:00"})

	msgs := waitMessages(t, c, 3)
	assert.Equal(t, []string{"first", "second", "third"}, []string{msgs[0].Body, msgs[1].Body, msgs[2].Body})
}

func TestSend_WhileJoined(t *testing.T) {
	conn := newFakeConn()
	c, _ := newTestClient(t, conn)
	ctx := context.Background()
	require.NoError(t, c.Activate(ctx, "general"))

	require.NoError(t, c.Send(ctx, "namaste"))

	frames := conn.frames()
	require.Len(t, frames, 2)
	assert.Equal(t, "send_message", frames[1].Event)
	assert.Equal(t, "namaste", frames[1].Data["message"])
	assert.Equal(t, "general", frames[1].Data["room"])
	assert.Equal(t, "Ravi", frames[1].Data["username"])

	// own messages come back from the server, not from the send path
	assert.Empty(t, c.Messages())
}

func TestSend_WhileDisconnected_LocalEcho(t *testing.T) {
	c, _ := newTestClient(t)

	require.NoError(t, c.Send(context.Background(), "anyone there?"))

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].LocalEcho)
	assert.Equal(t, "Ravi", msgs[0].Username)
	assert.Equal(t, int64(7), msgs[0].UserID)
	assert.Equal(t, "anyone there?", msgs[0].Body)
	assert.NotEmpty(t, msgs[0].ID)
	assert.NotEmpty(t, msgs[0].Timestamp)
}

func TestSend_WriteFailure_LocalEcho(t *testing.T) {
	conn := newFakeConn()
	c, _ := newTestClient(t, conn)
	ctx := context.Background()
	require.NoError(t, c.Activate(ctx, "general"))

	conn.mu.Lock()
	conn.failWrite = true
	conn.mu.Unlock()

	require.NoError(t, c.Send(ctx, "did this land?"))

	msgs := c.Messages()
	require.Len(t, msgs, 1)
	assert.True(t, msgs[0].LocalEcho)
}

func TestSend_EmptyBody(t *testing.T) {
	c, _ := newTestClient(t)
	require.ErrorIs(t, c.Send(context.Background(), ""), common.ErrValidation)
	assert.Empty(t, c.Messages())
}

func TestSeed(t *testing.T) {
	c, _ := newTestClient(t)
	c.Seed([]models.Message{
		{Username: "Ramesh Kumar", Body: "Namaste! How is everyone's crop this season?", Room: "general"},
		{Username: "Suresh Patel", Body: "Very good! The weather has been favorable.", Room: "general"},
	})
	assert.Len(t, c.Messages(), 2)
}

// ---------- typing indicator ----------

func TestTyping_SignalDecays(t *testing.T) {
	conn := newFakeConn()
	c, clk := newTestClient(t, conn)
	require.NoError(t, c.Activate(context.Background(), "general"))

	conn.push(t, "user_typing", typingPayload{Room: "general", Username: "Suresh"})
	require.Eventually(t, func() bool {
		who, ok := c.TypingPeer()
		return ok && who == "Suresh"
	}, time.Second, 5*time.Millisecond)

	clk.advance(TypingWindow + time.Millisecond)
	_, ok := c.TypingPeer()
	assert.False(t, ok)
}

func TestTyping_ClearedByMessage(t *testing.T) {
	conn := newFakeConn()
	c, _ := newTestClient(t, conn)
	require.NoError(t, c.Activate(context.Background(), "general"))

	conn.push(t, "user_typing", typingPayload{Room: "general", Username: "Suresh"})
	require.Eventually(t, func() bool { _, ok := c.TypingPeer(); return ok }, time.Second, 5*time.Millisecond)

	conn.push(t, "new_message", models.Message{Username: "Suresh", Body: "done typing"})
	waitMessages(t, c, 1)

	_, ok := c.TypingPeer()
	assert.False(t, ok)
}

func TestTyping_Outbound(t *testing.T) {
	conn := newFakeConn()
	c, _ := newTestClient(t, conn)
	ctx := context.Background()
	require.NoError(t, c.Activate(ctx, "general"))

	c.Typing(ctx)

	frames := conn.frames()
	require.Len(t, frames, 2)
	assert.Equal(t, "typing", frames[1].Event)
}

func TestTyping_NoOpWhenDisconnected(t *testing.T) {
	c, _ := newTestClient(t)
	c.Typing(context.Background()) // must not panic
}

// ---------- scenario ----------

func TestScenario_GeneralRoomConversation(t *testing.T) {
	conn := newFakeConn()
	c, _ := newTestClient(t, conn)
	ctx := context.Background()

	require.NoError(t, c.Activate(ctx, "general"))

	conn.push(t, "new_message", models.Message{UserID: 2, Username: "Suresh", Body: "hi", Room: "general"})
	waitMessages(t, c, 1)

	require.NoError(t, c.Send(ctx, "yo"))
	// server echoes the own message back
	conn.push(t, "new_message", models.Message{UserID: 7, Username: "Ravi", Body: "yo", Room: "general"})

	msgs := waitMessages(t, c, 2)
	assert.Equal(t, "hi", msgs[0].Body)
	assert.Equal(t, "yo", msgs[1].Body)

	var notified int
	c.Subscribe(func() { notified++ })
	conn.push(t, "new_message", models.Message{Username: "Suresh", Body: "how is the wheat?"})
	waitMessages(t, c, 3)
	assert.Equal(t, 1, notified)
}
