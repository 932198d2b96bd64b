package queue

import (
	"context"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nekogravitycat/venue-booking-backend/internal/booking"
)

// silentBroker accepts TCP connections and never speaks AMQP.
func silentBroker(t *testing.T) string {
	t.Helper()
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	var (
		mu   sync.Mutex
		held []net.Conn
	)
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			mu.Lock()
			held = append(held, conn)
			mu.Unlock()
		}
	}()
	t.Cleanup(func() {
		_ = ln.Close()
		mu.Lock()
		defer mu.Unlock()
		for _, c := range held {
			_ = c.Close()
		}
	})
	return "amqp://guest:guest@" + ln.Addr().String() + "/"
}

func TestPublisher_UnresponsiveBroker(t *testing.T) {
	p := NewPublisher(silentBroker(t))
	p.dialTimeout = 100 * time.Millisecond
	t.Cleanup(func() { _ = p.Close() })

	start := time.Now()
	err := p.PublishConfirmed(context.Background(), booking.ConfirmedEvent{BookingID: "booking-1"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "dial broker")
	assert.Less(t, time.Since(start), 2*time.Second, "the handshake is bounded by the dial timeout")
}

func TestPublisher_ContextBoundsDial(t *testing.T) {
	p := NewPublisher(silentBroker(t))
	t.Cleanup(func() { _ = p.Close() })

	t.Run("cancelled context does not dial", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		err := p.PublishConfirmed(ctx, booking.ConfirmedEvent{BookingID: "booking-1"})
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("deadline shortens the dial", func(t *testing.T) {
		ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
		defer cancel()

		start := time.Now()
		err := p.PublishConfirmed(ctx, booking.ConfirmedEvent{BookingID: "booking-1"})
		require.Error(t, err)
		assert.Less(t, time.Since(start), 2*time.Second)
	})
}
