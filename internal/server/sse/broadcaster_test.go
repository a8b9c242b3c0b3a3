package sse

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

	"github.com/agentstation/locallift/pkg/logging"
)

// frames reads n "id/event" pairs from an event stream.
func frames(t *testing.T, r *bufio.Reader, n int) []string {
	t.Helper()
	var out []string
	id := ""
	for len(out) < n {
		line, err := r.ReadString('\n')
		require.NoError(t, err)
		line = strings.TrimSpace(line)
		switch {
		case strings.HasPrefix(line, "id: "):
			id = strings.TrimPrefix(line, "id: ")
		case strings.HasPrefix(line, "event: "):
			out = append(out, id+"/"+strings.TrimPrefix(line, "event: "))
			id = ""
		}
	}
	return out
}

func open(t *testing.T, b *Broadcaster, query, lastID string) *bufio.Reader {
	t.Helper()
	srv := httptest.NewServer(b)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		srv.Close()
	})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/?"+query, nil)
	require.NoError(t, err)
	if lastID != "" {
		req.Header.Set("Last-Event-ID", lastID)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	t.Cleanup(func() { _ = resp.Body.Close() })
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))
	return bufio.NewReader(resp.Body)
}

func TestBroadcastAssignsIDs(t *testing.T) {
	b := NewBroadcaster(logging.NewNopLogger())
	r := open(t, b, "", "")
	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, time.Second, 10*time.Millisecond)

	b.Broadcast("favorite.toggled", map[string]any{"id": 1})
	b.Broadcast("review.added", map[string]any{"id": 1})

	assert.Equal(t, []string{"/client.connected", "1/favorite.toggled", "2/review.added"}, frames(t, r, 3))
}

func TestReplayAfterLastEventID(t *testing.T) {
	b := NewBroadcaster(logging.NewNopLogger())
	b.Broadcast("favorite.toggled", nil)
	b.Broadcast("review.added", nil)
	b.Broadcast("catalog.replaced", nil)

	r := open(t, b, "types=review.added,catalog.replaced", "1")
	assert.Equal(t, []string{"/client.connected", "2/review.added", "3/catalog.replaced"}, frames(t, r, 3))
}

func TestHistoryIsBounded(t *testing.T) {
	b := NewBroadcaster(logging.NewNopLogger())
	for i := 0; i < historySize+10; i++ {
		b.Broadcast("review.added", i)
	}
	assert.Len(t, b.history, historySize)
	assert.Equal(t, uint64(11), b.history[0].ID)
}

func TestRunClosesStreams(t *testing.T) {
	b := NewBroadcaster(logging.NewNopLogger())
	r := open(t, b, "", "")
	require.Eventually(t, func() bool { return b.ClientCount() == 1 }, time.Second, 10*time.Millisecond)
	frames(t, r, 1)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	b.Run(ctx)

	assert.Zero(t, b.ClientCount())

	rec := httptest.NewRecorder()
	b.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
