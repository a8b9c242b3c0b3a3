package adapters

import (
	"bufio"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/locallift/internal/server/events"
	"github.com/agentstation/locallift/internal/server/sse"
	ws "github.com/agentstation/locallift/internal/server/websocket"
	"github.com/agentstation/locallift/pkg/logging"
)

func TestFuncSubscriber(t *testing.T) {
	var got []events.EventType
	var sub events.Subscriber = Func(func(e events.Event) {
		got = append(got, e.Type)
	})

	require.NoError(t, sub.Send(events.Event{Type: events.ReviewAdded}))
	require.NoError(t, sub.Close())
	assert.Equal(t, []events.EventType{events.ReviewAdded}, got)
}

func TestWebSocketWithoutClients(t *testing.T) {
	hub := ws.NewHub(logging.NewNopLogger())
	assert.NoError(t, WebSocket(hub).Send(events.Event{Type: events.FavoriteToggled, Timestamp: time.Now()}))
	assert.Zero(t, hub.ClientCount())
}

func TestSSEDeliversToStream(t *testing.T) {
	b := sse.NewBroadcaster(logging.NewNopLogger())
	srv := httptest.NewServer(b)
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"?types=review.added", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	send := SSE(b)
	require.NoError(t, send.Send(events.Event{Type: events.FavoriteToggled, Data: map[string]any{"id": 1}}))
	require.NoError(t, send.Send(events.Event{Type: events.ReviewAdded, Data: map[string]any{"id": 2}}))

	reader := bufio.NewReader(resp.Body)
	var frames []string
	for len(frames) < 2 {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		if strings.HasPrefix(line, "event: ") {
			frames = append(frames, strings.TrimSpace(strings.TrimPrefix(line, "event: ")))
		}
	}
	assert.Equal(t, []string{"client.connected", "review.added"}, frames)
}
