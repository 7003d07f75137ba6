package docstore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testStoreContract(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	_, err := s.Get(ctx, "routemap.draft")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Put(ctx, "routemap.draft", []byte("one")))
	require.NoError(t, s.Put(ctx, "routemap.draft", []byte("two")))
	got, err := s.Get(ctx, "routemap.draft")
	require.NoError(t, err)
	assert.Equal(t, "two", string(got))

	assert.Error(t, s.Put(ctx, "a/b", []byte("x")))
	assert.Error(t, s.Put(ctx, "", []byte("x")))

	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	_, err = s.Get(cancelled, "routemap.draft")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestMemoryContract(t *testing.T) {
	testStoreContract(t, NewMemory())
}

func TestDirContract(t *testing.T) {
	d, err := NewDir(filepath.Join(t.TempDir(), "drafts"))
	require.NoError(t, err)
	testStoreContract(t, d)

	entries, err := os.ReadDir(d.Root())
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files should be renamed away")
	assert.Equal(t, "routemap.draft.json", entries[0].Name())
}

func TestNewDirRequiresPath(t *testing.T) {
	_, err := NewDir(" ")
	assert.Error(t, err)
}

func TestMemoryGetReturnsCopy(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	value := []byte("abc")
	require.NoError(t, m.Put(ctx, "k", value))
	value[0] = 'x'

	got, err := m.Get(ctx, "k")
	require.NoError(t, err)
	got[1] = 'y'

	again, _ := m.Get(ctx, "k")
	assert.Equal(t, "abc", string(again))
	assert.Equal(t, 1, m.Len())
}

func TestMemoryWatch(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	seen := make(chan string, 4)
	require.NoError(t, m.Watch(ctx, "icons", func(b []byte) { seen <- string(b) }))
	require.NoError(t, m.Put(context.Background(), "other", []byte("skip")))
	require.NoError(t, m.Put(context.Background(), "icons", []byte("v1")))

	select {
	case got := <-seen:
		assert.Equal(t, "v1", got)
	case <-time.After(time.Second):
		t.Fatal("watcher not notified")
	}
	select {
	case got := <-seen:
		t.Fatalf("unexpected notification %q", got)
	case <-time.After(20 * time.Millisecond):
	}
}

func TestMemoryWatchStopsWithContext(t *testing.T) {
	m := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	seen := make(chan string, 4)
	require.NoError(t, m.Watch(ctx, "icons", func(b []byte) { seen <- string(b) }))
	cancel()

	require.Eventually(t, func() bool {
		m.mu.Lock()
		defer m.mu.Unlock()
		return len(m.watchers["icons"]) == 0
	}, time.Second, 5*time.Millisecond)

	require.NoError(t, m.Put(context.Background(), "icons", []byte("late")))
	select {
	case got := <-seen:
		t.Fatalf("cancelled watcher notified with %q", got)
	case <-time.After(20 * time.Millisecond):
	}
}

// hangingStore blocks every Get until its context is done.
type hangingStore struct {
	*Memory
}

func (h *hangingStore) Get(ctx context.Context, key string) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestPollDeliversChanges(t *testing.T) {
	inner := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	require.NoError(t, inner.Put(ctx, "icons", []byte("base")))

	p := NewPoll(inner, 5*time.Millisecond, nil)
	seen := make(chan string, 8)
	require.NoError(t, p.Watch(ctx, "icons", func(b []byte) { seen <- string(b) }))

	select {
	case got := <-seen:
		assert.Equal(t, "base", got, "first poll reports the current value")
	case <-time.After(time.Second):
		t.Fatal("poll did not report the current value")
	}

	require.NoError(t, p.Put(ctx, "icons", []byte("next")))
	select {
	case got := <-seen:
		assert.Equal(t, "next", got)
	case <-time.After(time.Second):
		t.Fatal("poll did not report change")
	}
}

func TestPollDeliversValueWrittenBeforeFirstPoll(t *testing.T) {
	inner := NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := NewPoll(inner, 20*time.Millisecond, nil)
	seen := make(chan string, 8)
	require.NoError(t, p.Watch(ctx, "icons", func(b []byte) { seen <- string(b) }))
	require.NoError(t, inner.Put(ctx, "icons", []byte("early")))

	select {
	case got := <-seen:
		assert.Equal(t, "early", got)
	case <-time.After(time.Second):
		t.Fatal("value written before the first poll was lost")
	}
}

func TestPollWatchReturnsWhileStoreHangs(t *testing.T) {
	p := NewPoll(&hangingStore{Memory: NewMemory()}, 10*time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- p.Watch(ctx, "icons", func([]byte) {}) }()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("Watch blocked on a hanging store")
	}
}

func TestPollWatchRejectsDoneContext(t *testing.T) {
	p := NewPoll(NewMemory(), time.Millisecond, nil)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, p.Watch(ctx, "icons", func([]byte) {}), context.Canceled)
}

func TestValidateKey(t *testing.T) {
	assert.NoError(t, ValidateKey("routemap.draft"))
	for _, key := range []string{"", "  ", ".", "..", "a/b", `a\b`} {
		assert.Error(t, ValidateKey(key), key)
	}
}
