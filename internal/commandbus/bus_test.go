package commandbus_test

import (
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/justiceplatform/courtnotify/internal/commandbus"
)

func TestSendAndReceive(t *testing.T) {
	bus := commandbus.New(2)
	defer bus.Close()

	var received []commandbus.Command
	var mu sync.Mutex

	bus.Subscribe(func(cmd commandbus.Command) {
		mu.Lock()
		received = append(received, cmd)
		mu.Unlock()
	})

	require.NoError(t, bus.SendAsAdmin(commandbus.Command{
		Type:          commandbus.CommandPrintLetter,
		CorrelationID: "corr-123",
		Payload:       map[string]string{"notificationId": "n-1"},
	}))

	// Give workers time to process
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, received, 1)
	assert.Equal(t, commandbus.CommandPrintLetter, received[0].Type)
	assert.Equal(t, "corr-123", received[0].CorrelationID)
	assert.Equal(t, "n-1", received[0].Payload["notificationId"])
	assert.NotEmpty(t, received[0].ID)
	assert.False(t, received[0].IssuedAt.IsZero())
}

func TestBroadcastToAllSubscribers(t *testing.T) {
	bus := commandbus.New(2)
	defer bus.Close()

	var count int32
	for i := 0; i < 3; i++ {
		bus.Subscribe(func(_ commandbus.Command) {
			atomic.AddInt32(&count, 1)
		})
	}

	require.NoError(t, bus.SendAsAdmin(commandbus.Command{Type: "multi"}))
	time.Sleep(50 * time.Millisecond)

	assert.EqualValues(t, 3, atomic.LoadInt32(&count))
}

func TestSubscriberPanicDoesNotCrash(t *testing.T) {
	bus := commandbus.New(1)
	defer bus.Close()

	var goodCalled int32

	bus.Subscribe(func(_ commandbus.Command) {
		panic("intentional panic in subscriber")
	})
	bus.Subscribe(func(_ commandbus.Command) {
		atomic.AddInt32(&goodCalled, 1)
	})

	require.NoError(t, bus.SendAsAdmin(commandbus.Command{Type: "panic.command"}))
	time.Sleep(50 * time.Millisecond)

	assert.EqualValues(t, 1, atomic.LoadInt32(&goodCalled))
}

func TestCloseDrainsPendingCommands(t *testing.T) {
	bus := commandbus.New(2)

	var count int32
	bus.Subscribe(func(_ commandbus.Command) {
		atomic.AddInt32(&count, 1)
	})

	for i := 0; i < 5; i++ {
		require.NoError(t, bus.SendAsAdmin(commandbus.Command{Type: "cmd"}))
	}

	bus.Close()

	assert.EqualValues(t, 5, atomic.LoadInt32(&count))
}

func TestExplicitIDPreserved(t *testing.T) {
	bus := commandbus.New(1)
	defer bus.Close()

	var got commandbus.Command
	var mu sync.Mutex
	bus.Subscribe(func(cmd commandbus.Command) {
		mu.Lock()
		got = cmd
		mu.Unlock()
	})

	require.NoError(t, bus.SendAsAdmin(commandbus.Command{ID: "fixed-id", Type: "cmd"}))
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, "fixed-id", got.ID)
}

func TestSendFailsWhenBufferFull(t *testing.T) {
	bus := commandbus.New(1)
	block := make(chan struct{})
	bus.Subscribe(func(_ commandbus.Command) { <-block })

	// Flood past the buffer capacity; the overflowing send must report
	// the lost emission rather than drop it silently.
	var sendErr error
	for i := 0; i < 200; i++ {
		if sendErr = bus.SendAsAdmin(commandbus.Command{Type: "cmd"}); sendErr != nil {
			break
		}
	}
	require.ErrorIs(t, sendErr, commandbus.ErrBusFull)

	close(block)
	bus.Close()
}

func TestDefaultWorkers(t *testing.T) {
	bus := commandbus.New(0)
	require.NotNil(t, bus)
	bus.Close()
}
