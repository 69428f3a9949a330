package main

import (
	"context"
	"encoding/json"
	"net/http"
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"

	"github.com/quietgrid/floorscan/internal/geometry"
	"github.com/quietgrid/floorscan/internal/inventory"
	"github.com/quietgrid/floorscan/internal/protocol"
	"github.com/quietgrid/floorscan/internal/watch"
	"github.com/quietgrid/floorscan/internal/ws"
)

// serverState holds the last successful analysis of the watched plan.
type serverState struct {
	mu     sync.Mutex
	path   string
	report *inventory.Report
	rows   int
	cols   int
}

func analyzePlan(path string, logger *zap.Logger) (*inventory.Report, *geometry.Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	defer f.Close()
	g, err := geometry.Load(f, geometry.DefaultAlphabet())
	if err != nil {
		return nil, nil, err
	}
	report, err := inventory.Analyze(g, inventory.Options{Logger: logger})
	if err != nil {
		return nil, nil, err
	}
	return report, g, nil
}

func chairCounts(report *inventory.Report, t inventory.Tally) []protocol.ChairCount {
	counts := make([]protocol.ChairCount, 0, len(t))
	for _, ch := range report.ChairOrder() {
		counts = append(counts, protocol.ChairCount{Type: string(ch), Count: t[ch]})
	}
	return counts
}

func roomsLite(report *inventory.Report) []protocol.RoomLite {
	rooms := make([]protocol.RoomLite, 0, len(report.Rooms))
	for _, name := range report.RoomNames() {
		rooms = append(rooms, protocol.RoomLite{
			Name:   name,
			Counts: chairCounts(report, report.Rooms[name]),
		})
	}
	return rooms
}

func issuesLite(report *inventory.Report) []protocol.IssueLite {
	issues := make([]protocol.IssueLite, 0, len(report.Issues))
	for _, issue := range report.Issues {
		issues = append(issues, protocol.IssueLite{
			Code:   string(issue.Code),
			Bounds: [4]int{issue.Bounds.MinRow, issue.Bounds.MinCol, issue.Bounds.MaxRow, issue.Bounds.MaxCol},
			Labels: issue.Labels,
		})
	}
	return issues
}

func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer logger.Sync()

	planPath := os.Getenv("PLAN_PATH")
	if planPath == "" {
		planPath = "floor_plan.txt"
	}

	report, grid, err := analyzePlan(planPath, logger)
	if err != nil {
		logger.Fatal("failed to analyze floor plan", zap.String("path", planPath), zap.Error(err))
	}
	state := &serverState{path: planPath, report: report, rows: grid.Rows, cols: grid.Cols}
	logger.Info("floor plan analyzed",
		zap.String("path", planPath),
		zap.Int("rooms", len(report.Rooms)),
		zap.Int("chairs", report.Total.Sum()))

	hub := ws.NewHub(logger)
	var sequence uint64

	watcher, err := watch.New(planPath, func() {
		report, grid, err := analyzePlan(planPath, logger)
		if err != nil {
			logger.Warn("re-analysis failed", zap.Error(err))
			seq := atomic.AddUint64(&sequence, 1)
			b, _ := json.Marshal(protocol.PatchEnvelope{
				Sequence: seq,
				Type:     "AnalysisFailed",
				Payload:  protocol.AnalysisFailed{Code: "MalformedGrid", Message: err.Error()},
			})
			hub.Broadcast(b)
			return
		}
		state.mu.Lock()
		state.report = report
		state.rows = grid.Rows
		state.cols = grid.Cols
		state.mu.Unlock()
		logger.Info("floor plan re-analyzed", zap.Int("rooms", len(report.Rooms)))
		seq := atomic.AddUint64(&sequence, 1)
		b, _ := json.Marshal(protocol.PatchEnvelope{
			Sequence: seq,
			Type:     "TallyChanged",
			Payload: protocol.TallyChanged{
				Total:  chairCounts(report, report.Total),
				Rooms:  roomsLite(report),
				Issues: issuesLite(report),
			},
		})
		hub.Broadcast(b)
	}, logger)
	if err != nil {
		logger.Fatal("failed to create watcher", zap.Error(err))
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if err := watcher.Start(ctx); err != nil {
		logger.Fatal("failed to start watcher", zap.Error(err))
	}
	defer watcher.Close()

	mux := http.NewServeMux()

	mux.HandleFunc("/stream", handleStream(state, hub, &sequence))

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		state.mu.Lock()
		report := state.report
		path := state.path
		state.mu.Unlock()
		if err := reportPage(path, report).Render(r.Context(), w); err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
	})

	port := os.Getenv("APP_PORT")
	if port == "" {
		port = "8080"
	}
	logger.Info("listening", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, mux); err != nil {
		logger.Fatal("server stopped", zap.Error(err))
	}
}
