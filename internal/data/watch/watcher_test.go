package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestWatcher(t *testing.T, pattern string) (*Watcher, string) {
	t.Helper()
	dir := t.TempDir()
	w, err := New(dir, pattern, 50*time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Close() })
	return w, dir
}

func waitEvent(t *testing.T, w *Watcher) Event {
	t.Helper()
	select {
	case ev := <-w.Events():
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("timeout waiting for event")
		return Event{}
	}
}

func TestWatcher_MatchingFile(t *testing.T) {
	t.Parallel()
	w, dir := newTestWatcher(t, "*.{yaml,yml}")

	path := filepath.Join(dir, "regions.yaml")
	require.NoError(t, os.WriteFile(path, []byte("categories: []\n"), 0o644))

	ev := waitEvent(t, w)
	assert.Equal(t, "regions.yaml", filepath.Base(ev.Path))
	assert.False(t, ev.Time.IsZero())
}

func TestWatcher_IgnoresNonMatching(t *testing.T) {
	t.Parallel()
	w, dir := newTestWatcher(t, "*.yaml")

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".regions.yaml.swp"), []byte("x"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	select {
	case ev := <-w.Events():
		t.Fatalf("unexpected event for %s", ev.Path)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatcher_Debounces(t *testing.T) {
	t.Parallel()
	w, dir := newTestWatcher(t, "*.yaml")

	path := filepath.Join(dir, "regions.yaml")
	for i := range 5 {
		require.NoError(t, os.WriteFile(path, []byte{byte('a' + i)}, 0o644))
	}

	waitEvent(t, w)

	select {
	case <-w.Events():
		t.Fatal("burst should collapse into one event")
	case <-time.After(200 * time.Millisecond):
	}
}

func TestNew_Errors(t *testing.T) {
	_, err := New(t.TempDir(), "[", time.Millisecond, zerolog.Nop())
	assert.ErrorContains(t, err, "invalid watch pattern")

	_, err = New(filepath.Join(t.TempDir(), "missing"), "*", time.Millisecond, zerolog.Nop())
	assert.Error(t, err)

	file := filepath.Join(t.TempDir(), "f.yaml")
	require.NoError(t, os.WriteFile(file, nil, 0o644))
	_, err = New(file, "*", time.Millisecond, zerolog.Nop())
	assert.ErrorContains(t, err, "not a directory")
}

func TestWatcher_CloseClosesEvents(t *testing.T) {
	dir := t.TempDir()
	w, err := ForFile(filepath.Join(dir, "regions.yaml"), "*.yaml", time.Millisecond, zerolog.Nop())
	require.NoError(t, err)
	require.NoError(t, w.Close())

	_, ok := <-w.Events()
	assert.False(t, ok)
}
