package stream

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/MatBureau/sysmonitor/internal/refresh"
	"github.com/MatBureau/sysmonitor/internal/system"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestHubStreamsSnapshots(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	hub := NewHub(zap.NewNop(), nil)
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	snap := system.Snapshot{
		CPUPercent: 12.5,
		Memory:     system.Usage{Percent: 50, Used: 8, Total: 16},
		Disk:       system.Usage{Percent: 50, Used: 250, Total: 500},
	}

	// the client may not be registered yet; keep publishing until it hears one
	stop := make(chan struct{})
	defer close(stop)
	go func() {
		tk := time.NewTicker(10 * time.Millisecond)
		defer tk.Stop()
		for {
			select {
			case <-stop:
				return
			case <-tk.C:
				hub.Publish(snap)
			}
		}
	}()

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(msg, &got))
	assert.Equal(t, 12.5, got["cpu"])
	assert.Equal(t, map[string]any{"percent": 50.0, "used": 8.0, "total": 16.0}, got["mem"])
	assert.Equal(t, map[string]any{"percent": 50.0, "used": 250.0, "total": 500.0}, got["disk"])
}

func TestHubClosesClientsOnShutdown(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	hub := NewHub(zap.NewNop(), nil)
	go hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(hub.Serve))
	defer srv.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close()

	cancel()
	<-hub.done

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		if _, _, err = conn.ReadMessage(); err != nil {
			break
		}
	}
	assert.Error(t, err)
}

// countingFeed samples through a refresh loop and records every sample and
// every loop it starts.
type countingFeed struct {
	hub      *Hub
	interval time.Duration
	samples  atomic.Int32

	mu    sync.Mutex
	loops []*refresh.Loop
}

func (f *countingFeed) start(ctx context.Context) *refresh.Loop {
	l := refresh.Start(ctx, f.interval, func(context.Context) (system.Snapshot, error) {
		n := f.samples.Add(1)
		return system.Snapshot{CPUPercent: float64(n)}, nil
	}, func(snap system.Snapshot, err error) {
		if err == nil {
			f.hub.Publish(snap)
		}
	})
	f.mu.Lock()
	f.loops = append(f.loops, l)
	f.mu.Unlock()
	return l
}

func (f *countingFeed) lastLoop() *refresh.Loop {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.loops) == 0 {
		return nil
	}
	return f.loops[len(f.loops)-1]
}

func newFedHub(t *testing.T, interval time.Duration) (*countingFeed, string) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	feed := &countingFeed{interval: interval}
	feed.hub = NewHub(zap.NewNop(), feed.start)
	go feed.hub.Run(ctx)

	srv := httptest.NewServer(http.HandlerFunc(feed.hub.Serve))
	t.Cleanup(srv.Close)
	return feed, "ws" + strings.TrimPrefix(srv.URL, "http")
}

func readSnapshot(t *testing.T, conn *websocket.Conn) system.Snapshot {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, msg, err := conn.ReadMessage()
	require.NoError(t, err)
	var snap system.Snapshot
	require.NoError(t, json.Unmarshal(msg, &snap))
	return snap
}

func TestHubSamplesOnlyWithSubscribers(t *testing.T) {
	feed, url := newFedHub(t, 10*time.Millisecond)

	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, feed.samples.Load(), "no subscribers, no sampling")
	assert.Nil(t, feed.lastLoop())

	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	readSnapshot(t, conn)
	assert.Positive(t, feed.samples.Load())

	loop := feed.lastLoop()
	require.NotNil(t, loop)
	require.NoError(t, conn.Close())

	select {
	case <-loop.Done():
	case <-time.After(5 * time.Second):
		t.Fatal("sampling kept running after the last subscriber left")
	}
	stopped := feed.samples.Load()
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, stopped, feed.samples.Load())
}

func TestHubSendsLatestToLateSubscriber(t *testing.T) {
	// one tick only: anything the second client gets comes from the stored snapshot
	feed, url := newFedHub(t, time.Hour)

	first, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer first.Close()
	assert.Equal(t, 1.0, readSnapshot(t, first).CPUPercent)

	second, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	defer second.Close()
	assert.Equal(t, 1.0, readSnapshot(t, second).CPUPercent)

	assert.Equal(t, int32(1), feed.samples.Load())
	feed.mu.Lock()
	assert.Len(t, feed.loops, 1)
	feed.mu.Unlock()
}
