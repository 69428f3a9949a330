package main

import (
	"context"
	"encoding/json"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/quietgrid/floorscan/internal/geometry"
	"github.com/quietgrid/floorscan/internal/inventory"
	"github.com/quietgrid/floorscan/internal/protocol"
	"github.com/quietgrid/floorscan/internal/ws"
)

func TestStreamSendsSnapshotBeforeBroadcasts(t *testing.T) {
	g, err := geometry.LoadString("+-----+\n| (a)P|\n+-----+", geometry.DefaultAlphabet())
	require.NoError(t, err)
	report, err := inventory.Analyze(g, inventory.Options{})
	require.NoError(t, err)

	state := &serverState{path: "plan.txt", report: report, rows: g.Rows, cols: g.Cols}
	hub := ws.NewHub(nil)
	var sequence uint64

	srv := httptest.NewServer(handleStream(state, hub, &sequence))
	defer srv.Close()

	// Hammer the hub while the viewer connects. The viewer must still
	// read its snapshot first.
	stop := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		for {
			select {
			case <-stop:
				return
			default:
			}
			seq := atomic.AddUint64(&sequence, 1)
			b, err := json.Marshal(protocol.PatchEnvelope{Sequence: seq, Type: "TallyChanged", Payload: protocol.TallyChanged{}})
			if err != nil {
				return
			}
			hub.Broadcast(b)
			time.Sleep(time.Millisecond)
		}
	}()
	defer func() {
		close(stop)
		wg.Wait()
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var envelope protocol.PatchEnvelope
	require.NoError(t, json.Unmarshal(data, &envelope))
	assert.Equal(t, "PlanSnapshot", envelope.Type)
}
