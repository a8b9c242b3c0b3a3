package websocket

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/locallift/internal/server/events"
	"github.com/agentstation/locallift/pkg/logging"
)

func dial(t *testing.T, hub *Hub, query string) *websocket.Conn {
	t.Helper()
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewClient(r.URL.Query().Get("id"), hub, conn, events.ParseTypes(r.URL.Query().Get("types")))
		hub.Register(c)
		go c.WritePump()
		go c.ReadPump()
	}))
	t.Cleanup(srv.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http")+"/?"+query, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var msg Message
	require.NoError(t, conn.ReadJSON(&msg))
	return msg
}

func TestHubFiltersByType(t *testing.T) {
	hub := NewHub(logging.NewNopLogger())
	all := dial(t, hub, "id=all")
	reviews := dial(t, hub, "id=reviews&types=review.added")
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 10*time.Millisecond)

	hub.Broadcast(Message{Type: string(events.FavoriteToggled), Data: 1})
	hub.Broadcast(Message{Type: string(events.ReviewAdded), Data: 2})

	assert.Equal(t, string(events.FavoriteToggled), read(t, all).Type)
	assert.Equal(t, string(events.ReviewAdded), read(t, all).Type)
	assert.Equal(t, string(events.ReviewAdded), read(t, reviews).Type)
}

func TestHubSubscriptionUpdate(t *testing.T) {
	hub := NewHub(logging.NewNopLogger())
	conn := dial(t, hub, "id=a&types=review.added")
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	require.NoError(t, conn.WriteJSON(subscription{Types: []string{"favorite.toggled"}}))

	require.Eventually(t, func() bool {
		hub.mu.Lock()
		defer hub.mu.Unlock()
		for c := range hub.clients {
			return c.accepts(events.FavoriteToggled) && !c.accepts(events.ReviewAdded)
		}
		return false
	}, time.Second, 10*time.Millisecond)

	hub.Broadcast(Message{Type: string(events.ReviewAdded)})
	hub.Broadcast(Message{Type: string(events.FavoriteToggled)})
	assert.Equal(t, string(events.FavoriteToggled), read(t, conn).Type)
}

func TestHubRunDisconnectsClients(t *testing.T) {
	hub := NewHub(logging.NewNopLogger())
	conn := dial(t, hub, "id=a")
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(done)
	}()
	cancel()
	<-done

	assert.Zero(t, hub.ClientCount())
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err := conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway))
}
