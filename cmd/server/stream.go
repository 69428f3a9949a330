package main

import (
	"context"
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/coder/websocket"

	"github.com/quietgrid/floorscan/internal/protocol"
	"github.com/quietgrid/floorscan/internal/ws"
)

// handleStream upgrades the connection, sends the current snapshot and
// then registers the viewer for broadcasts. Registration happens after
// the snapshot write so the first message a viewer reads is always its
// snapshot, never a concurrent tally patch.
func handleStream(state *serverState, hub *ws.Hub, sequence *uint64) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
		if err != nil {
			return
		}

		state.mu.Lock()
		report := state.report
		snapshot := protocol.PlanSnapshot{
			Path:            state.path,
			Rows:            state.rows,
			Cols:            state.cols,
			Total:           chairCounts(report, report.Total),
			Rooms:           roomsLite(report),
			Issues:          issuesLite(report),
			ProtocolVersion: "v0",
		}
		state.mu.Unlock()
		seq := atomic.AddUint64(sequence, 1)
		if b, err := json.Marshal(protocol.PatchEnvelope{Sequence: seq, Type: "PlanSnapshot", Payload: snapshot}); err == nil {
			writeCtx, cancelWrite := context.WithTimeout(context.Background(), 3*time.Second)
			_ = conn.Write(writeCtx, websocket.MessageText, b)
			cancelWrite()
		}
		hub.Add(conn)

		go func(c *websocket.Conn) {
			defer hub.Remove(c)
			defer c.Close(websocket.StatusNormalClosure, "")
			for {
				if _, _, err := c.Read(context.Background()); err != nil {
					return
				}
			}
		}(conn)
	}
}
