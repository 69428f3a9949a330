package watch

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestWatcher_FiresAfterWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.txt")
	require.NoError(t, os.WriteFile(path, []byte("+--+\n|  |\n+--+\n"), 0o644))

	fired := make(chan struct{}, 1)
	w, err := New(path, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	defer func() {
		cancel()
		require.NoError(t, w.Close())
	}()

	require.NoError(t, os.WriteFile(path, []byte("+---+\n|   |\n+---+\n"), 0o644))

	select {
	case <-fired:
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not fire after the plan changed")
	}
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.txt")
	require.NoError(t, os.WriteFile(path, []byte("+\n"), 0o644))

	fired := make(chan struct{}, 1)
	w, err := New(path, func() {
		select {
		case fired <- struct{}{}:
		default:
		}
	}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))
	defer func() {
		cancel()
		require.NoError(t, w.Close())
	}()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o644))

	select {
	case <-fired:
		t.Fatal("watcher fired for an unrelated file")
	case <-time.After(1 * time.Second):
	}
}

func TestWatcher_CloseReturnsAfterFailedStart(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "gone", "plan.txt")

	w, err := New(missing, func() {}, nil)
	require.NoError(t, err)
	require.Error(t, w.Start(context.Background()))

	done := make(chan struct{})
	go func() {
		w.Close()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("Close did not return after Start failed")
	}
}

func TestWatcher_NoCallbackAfterClose(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "plan.txt")
	require.NoError(t, os.WriteFile(path, []byte("+--+\n"), 0o644))

	var mu sync.Mutex
	var lastCall time.Time
	w, err := New(path, func() {
		mu.Lock()
		lastCall = time.Now()
		mu.Unlock()
	}, nil)
	require.NoError(t, err)
	w.debounce = 10 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	require.NoError(t, w.Start(ctx))

	require.NoError(t, os.WriteFile(path, []byte("+---+\n"), 0o644))
	time.Sleep(50 * time.Millisecond)

	cancel()
	require.NoError(t, w.Close())
	closedAt := time.Now()

	time.Sleep(200 * time.Millisecond)
	mu.Lock()
	defer mu.Unlock()
	if lastCall.After(closedAt) {
		t.Fatal("change callback ran after Close returned")
	}
}
