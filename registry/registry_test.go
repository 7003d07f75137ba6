package registry

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"routemap/docstore"
	"routemap/editor"
	"routemap/metrics"
)

var _ editor.IconStore = (*Registry)(nil)

// countingStore wraps a store without exposing Watch.
type countingStore struct {
	inner  docstore.Store
	mu     sync.Mutex
	puts   int
	putErr error
	getErr error
}

func (c *countingStore) Get(ctx context.Context, key string) ([]byte, error) {
	if c.getErr != nil {
		return nil, c.getErr
	}
	return c.inner.Get(ctx, key)
}

func (c *countingStore) Put(ctx context.Context, key string, value []byte) error {
	c.mu.Lock()
	c.puts++
	err := c.putErr
	c.mu.Unlock()
	if err != nil {
		return err
	}
	return c.inner.Put(ctx, key, value)
}

func (c *countingStore) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.puts
}

func putDoc(t *testing.T, s docstore.Store, key string, icons ...string) {
	t.Helper()
	data := `{"customIcons":[`
	for i, icon := range icons {
		if i > 0 {
			data += ","
		}
		data += `"` + icon + `"`
	}
	data += `],"updatedAt":"2024-01-01T00:00:00Z"}`
	require.NoError(t, s.Put(context.Background(), key, []byte(data)))
}

func readIcons(t *testing.T, s docstore.Store, key string) []string {
	t.Helper()
	data, err := s.Get(context.Background(), key)
	require.NoError(t, err)
	doc, err := Decode(data)
	require.NoError(t, err)
	return doc.CustomIcons
}

func TestDecode(t *testing.T) {
	doc, err := Decode([]byte(`{"customIcons":["a"," a ","","b"],"updatedAt":"2024-05-01T10:00:00Z"}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, doc.CustomIcons)
	assert.Equal(t, 2024, doc.UpdatedAt.Year())

	_, err = Decode([]byte(`{"updatedAt":"2024-05-01T10:00:00Z"}`))
	assert.Error(t, err)
	_, err = Decode([]byte(`not json`))
	assert.Error(t, err)
}

func TestStartUnionsBothDestinations(t *testing.T) {
	primary := &countingStore{inner: docstore.NewMemory()}
	mirror := &countingStore{inner: docstore.NewMemory()}
	putDoc(t, primary, "icons", "sword", "shield")
	putDoc(t, mirror, "assets", "shield", "potion")

	r := New([]Destination{
		{Name: "primary", Store: primary, Key: "icons"},
		{Name: "mirror", Store: mirror, Key: "assets"},
	}, WithDelay(time.Hour), WithIcons("map"))

	var notified [][]string
	r.OnChange(func(icons []string) { notified = append(notified, icons) })
	r.Start(context.Background())

	assert.Equal(t, []string{"map", "sword", "shield", "potion"}, r.Icons())
	assert.Len(t, notified, 2)
	assert.True(t, r.Pending())

	r.Flush()
	assert.Equal(t, []string{"map", "sword", "shield", "potion"}, readIcons(t, primary, "icons"))
	assert.Equal(t, []string{"map", "sword", "shield", "potion"}, readIcons(t, mirror, "assets"))
}

func TestFlushSkipsUnchangedDestinations(t *testing.T) {
	primary := &countingStore{inner: docstore.NewMemory()}
	mirror := &countingStore{inner: docstore.NewMemory()}
	putDoc(t, primary, "icons", "sword")
	putDoc(t, mirror, "icons")
	baseline := primary.count() + mirror.count()

	reg := metrics.NewRegistry()
	r := New([]Destination{
		{Name: "primary", Store: primary, Key: "icons"},
		{Name: "mirror", Store: mirror, Key: "icons"},
	}, WithDelay(time.Hour), WithMetrics(reg))
	r.Start(context.Background())
	r.Flush()

	assert.Equal(t, 1, primary.count(), "primary already holds the union")
	assert.Equal(t, 2, mirror.count())
	assert.Equal(t, baseline+1, primary.count()+mirror.count())

	r.Flush()
	assert.Equal(t, 2, mirror.count(), "second flush writes nothing")

	skipped, err := reg.RegistryWritesTotal.GetMetricWithLabelValues("primary", metrics.StatusSkipped)
	require.NoError(t, err)
	assert.NotNil(t, skipped)
}

func TestLocalEditsAreDebounced(t *testing.T) {
	remote := &countingStore{inner: docstore.NewMemory()}
	r := New([]Destination{{Name: "primary", Store: remote, Key: "icons"}}, WithDelay(15*time.Millisecond))
	r.Start(context.Background())

	assert.True(t, r.AddIcon("sword"))
	assert.False(t, r.AddIcon("sword"))
	assert.True(t, r.AddIcon("bow"))
	assert.True(t, r.RemoveIcon("sword"))
	assert.False(t, r.RemoveIcon("axe"))

	require.Eventually(t, func() bool { return remote.count() == 1 }, time.Second, 5*time.Millisecond)
	assert.Equal(t, []string{"bow"}, readIcons(t, remote, "icons"))
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 1, remote.count())
}

func TestSetIcons(t *testing.T) {
	remote := docstore.NewMemory()
	now := time.Date(2024, 3, 2, 1, 0, 0, 0, time.UTC)
	r := New([]Destination{{Name: "primary", Store: remote, Key: "icons"}},
		WithDelay(time.Hour), WithClock(func() time.Time { return now }))

	r.SetIcons([]string{"b", "a", "b", ""})
	assert.Equal(t, []string{"b", "a"}, r.Icons())
	r.Close()

	data, err := remote.Get(context.Background(), "icons")
	require.NoError(t, err)
	doc, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, []string{"b", "a"}, doc.CustomIcons)
	assert.True(t, doc.UpdatedAt.Equal(now))
}

func TestWatchedChangesAreMerged(t *testing.T) {
	remote := docstore.NewMemory()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	r := New([]Destination{{Name: "primary", Store: remote, Key: "icons"}}, WithDelay(time.Hour))
	changed := make(chan []string, 1)
	r.OnChange(func(icons []string) { changed <- icons })
	r.Start(ctx)

	putDoc(t, remote, "icons", "crown")
	select {
	case icons := <-changed:
		assert.Equal(t, []string{"crown"}, icons)
	case <-time.After(time.Second):
		t.Fatal("remote change not merged")
	}
}

func TestRemoteFailuresNeverBlock(t *testing.T) {
	broken := &countingStore{
		inner:  docstore.NewMemory(),
		getErr: errors.New("offline"),
		putErr: errors.New("offline"),
	}
	reg := metrics.NewRegistry()
	r := New([]Destination{{Name: "primary", Store: broken, Key: "icons"}}, WithDelay(time.Hour), WithMetrics(reg))
	r.Start(context.Background())

	r.AddIcon("sword")
	r.Flush()
	r.Flush()

	assert.Equal(t, []string{"sword"}, r.Icons())
	assert.Equal(t, 2, broken.count(), "failed writes are retried only on the next flush")
}

func TestInvalidRemoteDocumentIgnored(t *testing.T) {
	remote := docstore.NewMemory()
	require.NoError(t, remote.Put(context.Background(), "icons", []byte(`{"icons":["x"]}`)))

	r := New([]Destination{{Name: "primary", Store: remote, Key: "icons"}}, WithDelay(time.Hour), WithIcons("keep"))
	r.Start(context.Background())
	assert.Equal(t, []string{"keep"}, r.Icons())
	assert.False(t, r.Pending())
}

// stalledStore never answers a Get until the caller gives up.
type stalledStore struct {
	docstore.Store
}

func (s stalledStore) Get(ctx context.Context, key string) ([]byte, error) {
	<-ctx.Done()
	return nil, ctx.Err()
}

func TestStartIsBoundedByTimeoutWithStalledRemote(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	remote := docstore.NewPoll(stalledStore{Store: docstore.NewMemory()}, time.Hour, nil)

	r := New([]Destination{
		{Name: "primary", Store: remote, Key: "icons"},
		{Name: "mirror", Store: remote, Key: "assets"},
	}, WithDelay(time.Hour), WithTimeout(50*time.Millisecond), WithIcons("map"))

	done := make(chan struct{})
	go func() {
		r.Start(ctx)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Start blocked on a stalled remote")
	}
	assert.Equal(t, []string{"map"}, r.Icons())
	assert.True(t, r.AddIcon("sword"), "local edits keep working")
}

func TestMissingRemoteDocumentIsSeededFromLocalList(t *testing.T) {
	remote := docstore.NewMemory()
	r := New([]Destination{{Name: "primary", Store: remote, Key: "icons"}},
		WithDelay(time.Hour), WithIcons("map", "chest"))
	r.Start(context.Background())
	require.True(t, r.Pending())

	r.Flush()
	assert.Equal(t, []string{"map", "chest"}, readIcons(t, remote, "icons"))
}

func TestMissingRemoteDocumentWithEmptyListWritesNothing(t *testing.T) {
	r := New([]Destination{{Name: "primary", Store: docstore.NewMemory(), Key: "icons"}}, WithDelay(time.Hour))
	r.Start(context.Background())
	assert.False(t, r.Pending())
}

func TestRemoteBehindLocalListSchedulesWrite(t *testing.T) {
	remote := docstore.NewMemory()
	putDoc(t, remote, "icons", "map")

	r := New([]Destination{{Name: "primary", Store: remote, Key: "icons"}},
		WithDelay(time.Hour), WithIcons("map", "chest"))
	r.Start(context.Background())
	require.True(t, r.Pending())

	r.Flush()
	assert.Equal(t, []string{"map", "chest"}, readIcons(t, remote, "icons"))
}
