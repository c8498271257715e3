package watch

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func quiet() Option {
	return WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestWatcherDebouncesChanges(t *testing.T) {
	dir := t.TempDir()
	watched := filepath.Join(dir, "lexicon.yaml")
	other := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(watched, []byte("a"), 0o600))

	batches := make(chan []string, 4)
	w, err := New([]string{watched}, func(_ context.Context, changed []string) error {
		batches <- changed
		return nil
	}, WithQuietWindow(150*time.Millisecond), quiet())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(t.Context())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	<-w.Ready()

	require.NoError(t, os.WriteFile(other, []byte("ignored"), 0o600))
	for range 3 {
		require.NoError(t, os.WriteFile(watched, []byte("b"), 0o600))
	}

	select {
	case changed := <-batches:
		abs, _ := filepath.Abs(watched)
		assert.Equal(t, []string{abs}, changed)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}
	select {
	case extra := <-batches:
		t.Fatalf("unexpected second batch %v", extra)
	case <-time.After(400 * time.Millisecond):
	}

	cancel()
	require.NoError(t, <-done)
}

func TestNewValidates(t *testing.T) {
	_, err := New([]string{"x"}, nil)
	require.Error(t, err)

	_, err = New([]string{""}, func(context.Context, []string) error { return nil })
	require.Error(t, err)
}
