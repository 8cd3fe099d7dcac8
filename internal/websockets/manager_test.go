package websockets

import (
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	. "coutupro/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeConn struct {
	mu       sync.Mutex
	written  []any
	writeErr error
	closed   bool
	reads    chan error
}

func newFakeConn() *fakeConn {
	return &fakeConn{reads: make(chan error, 1)}
}

func (f *fakeConn) ReadMessage() (int, []byte, error) {
	return 0, nil, <-f.reads
}

func (f *fakeConn) WriteJSON(v any) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, v)
	return nil
}

func (f *fakeConn) SetWriteDeadline(time.Time) error { return nil }

func (f *fakeConn) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeConn) messages() []any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]any(nil), f.written...)
}

func TestBroadcastAlert_ReachesEveryClient(t *testing.T) {
	manager := New()
	first, second := newFakeConn(), newFakeConn()
	manager.register(first)
	manager.register(second)
	require.Equal(t, 2, manager.ClientCount())

	alert := Alert{Type: AlertTypePayment, Message: "Order \"Jupe\" delivered with 5.00 outstanding"}
	manager.BroadcastAlert(alert)

	for _, c := range []*fakeConn{first, second} {
		got := c.messages()
		require.Len(t, got, 1)
		message, ok := got[0].(Message)
		require.True(t, ok)
		assert.Equal(t, MessageTypeAlert, message.Type)
		assert.Equal(t, alert, message.Data)
		assert.NotEmpty(t, message.ID)
	}
}

func TestBroadcast_DropsFailingClient(t *testing.T) {
	manager := New()
	healthy, broken := newFakeConn(), newFakeConn()
	broken.writeErr = errors.New("broken pipe")
	manager.register(healthy)
	manager.register(broken)

	manager.Broadcast(Message{Type: "ping"})

	assert.Equal(t, 1, manager.ClientCount())
	assert.True(t, broken.closed)
	assert.False(t, healthy.closed)
	assert.Len(t, healthy.messages(), 1)
}

func TestServe_UnregistersOnDisconnect(t *testing.T) {
	manager := New()
	c := newFakeConn()

	done := make(chan struct{})
	go func() {
		manager.serve(c)
		close(done)
	}()

	require.Eventually(t, func() bool { return manager.ClientCount() == 1 }, time.Second, time.Millisecond)

	c.reads <- io.EOF
	<-done

	assert.Zero(t, manager.ClientCount())
	assert.True(t, c.closed)
}
