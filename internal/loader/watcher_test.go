package loader

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"
)

// eventually polls fn until it returns true or the timeout expires.
func eventually(t *testing.T, timeout, tick time.Duration, fn func() bool, msg string) {
	t.Helper()
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if fn() {
			return
		}
		time.Sleep(tick)
	}
	t.Fatal(msg)
}

func startWatcher(t *testing.T, root string, reloads *atomic.Int64) context.CancelFunc {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := Watch(ctx, root, 50*time.Millisecond, logger, func() { reloads.Add(1) }); err != nil {
			t.Errorf("Watch: %v", err)
		}
	}()
	t.Cleanup(func() {
		cancel()
		select {
		case <-done:
		case <-time.After(2 * time.Second):
			t.Error("watcher did not stop")
		}
	})
	// Give the watcher a moment to register before the test mutates files.
	time.Sleep(100 * time.Millisecond)
	return cancel
}

func TestWatch_ReloadsOnMarkdownWrite(t *testing.T) {
	root := t.TempDir()
	var reloads atomic.Int64
	startWatcher(t, root, &reloads)

	if err := os.WriteFile(filepath.Join(root, "post.md"), []byte("---\ntitle: X\n---\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	eventually(t, 2*time.Second, 20*time.Millisecond, func() bool {
		return reloads.Load() >= 1
	}, "no reload after markdown write")
}

func TestWatch_IgnoresNonMarkdownFiles(t *testing.T) {
	root := t.TempDir()
	var reloads atomic.Int64
	startWatcher(t, root, &reloads)

	if err := os.WriteFile(filepath.Join(root, "notes.txt"), []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}

	time.Sleep(300 * time.Millisecond)
	if got := reloads.Load(); got != 0 {
		t.Errorf("reloads = %d after non-markdown write, want 0", got)
	}
}

func TestWatch_DebouncesBursts(t *testing.T) {
	root := t.TempDir()
	var reloads atomic.Int64
	startWatcher(t, root, &reloads)

	for i := 0; i < 5; i++ {
		name := filepath.Join(root, "post.md")
		if err := os.WriteFile(name, []byte("---\ntitle: X\n---\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		time.Sleep(5 * time.Millisecond)
	}

	eventually(t, 2*time.Second, 20*time.Millisecond, func() bool {
		return reloads.Load() >= 1
	}, "no reload after burst")

	// The quiet period collapses the burst into far fewer reloads than writes.
	time.Sleep(300 * time.Millisecond)
	if got := reloads.Load(); got > 2 {
		t.Errorf("reloads = %d for a 5-write burst", got)
	}
}

func TestWatch_PicksUpNewDirectories(t *testing.T) {
	root := t.TempDir()
	var reloads atomic.Int64
	startWatcher(t, root, &reloads)

	nested := filepath.Join(root, "guides")
	if err := os.Mkdir(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	eventually(t, 2*time.Second, 20*time.Millisecond, func() bool {
		return reloads.Load() >= 1
	}, "no reload after new directory")
	before := reloads.Load()

	if err := os.WriteFile(filepath.Join(nested, "deep.md"), []byte("---\ntitle: D\n---\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	eventually(t, 2*time.Second, 20*time.Millisecond, func() bool {
		return reloads.Load() > before
	}, "no reload after write in new directory")
}
