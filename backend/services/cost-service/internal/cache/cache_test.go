package cache

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type memStore struct {
	mu   sync.Mutex
	data map[string][]byte
	err  error
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, false, m.err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	m.data[key] = value
	return nil
}

func (m *memStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

type countingLookup struct {
	watts map[string]float64
	err   error
	calls int
}

var errUnknown = errors.New("unknown device")

func (l *countingLookup) Wattage(_ context.Context, deviceID string) (float64, error) {
	l.calls++
	if l.err != nil {
		return 0, l.err
	}
	w, ok := l.watts[deviceID]
	if !ok {
		return 0, errUnknown
	}
	return w, nil
}

func TestRistrettoStoreRoundTrip(t *testing.T) {
	store, err := NewRistrettoStore(100)
	require.NoError(t, err)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, "k", []byte("v"), time.Minute))
	val, found, err := store.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "v", string(val))

	require.NoError(t, store.Delete(ctx, "k"))
	_, found, err = store.Get(ctx, "k")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestTieredBackfillsL1(t *testing.T) {
	l1, l2 := newMemStore(), newMemStore()
	c := NewTiered(l1, l2, time.Minute)
	ctx := context.Background()

	l2.data["k"] = []byte("v")
	val, found, err := c.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, found)
	assert.Equal(t, "v", string(val))
	assert.Equal(t, "v", string(l1.data["k"]))

	require.NoError(t, c.Set(ctx, "n", []byte("x"), time.Minute))
	assert.Contains(t, l1.data, "n")
	assert.Contains(t, l2.data, "n")

	require.NoError(t, c.Delete(ctx, "n"))
	assert.NotContains(t, l1.data, "n")
	assert.NotContains(t, l2.data, "n")
}

func TestTieredMiss(t *testing.T) {
	c := NewTiered(newMemStore(), newMemStore(), time.Minute)
	_, found, err := c.Get(context.Background(), "missing")
	require.NoError(t, err)
	assert.False(t, found)
}

func TestDeviceWattageCachesSuccess(t *testing.T) {
	next := &countingLookup{watts: map[string]float64{"fridge": 150.5}}
	store := newMemStore()
	d := NewDeviceWattage(next, store, time.Minute, zap.NewNop())
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		w, err := d.Wattage(ctx, "fridge")
		require.NoError(t, err)
		assert.InDelta(t, 150.5, w, 1e-9)
	}
	assert.Equal(t, 1, next.calls)
	assert.Equal(t, "150.5", string(store.data["devices:wattage:fridge"]))
}

func TestDeviceWattageDoesNotCacheFailures(t *testing.T) {
	next := &countingLookup{watts: map[string]float64{}}
	d := NewDeviceWattage(next, newMemStore(), time.Minute, zap.NewNop())
	ctx := context.Background()

	_, err := d.Wattage(ctx, "toaster")
	require.ErrorIs(t, err, errUnknown)
	_, err = d.Wattage(ctx, "toaster")
	require.ErrorIs(t, err, errUnknown)
	assert.Equal(t, 2, next.calls)
}

func TestDeviceWattageStoreFailureFallsThrough(t *testing.T) {
	next := &countingLookup{watts: map[string]float64{"fridge": 150}}
	store := newMemStore()
	store.err = errors.New("redis down")
	d := NewDeviceWattage(next, store, time.Minute, zap.NewNop())

	w, err := d.Wattage(context.Background(), "fridge")
	require.NoError(t, err)
	assert.InDelta(t, 150, w, 1e-9)
}

func TestDeviceWattageDropsMalformedEntry(t *testing.T) {
	next := &countingLookup{watts: map[string]float64{"fridge": 150}}
	store := newMemStore()
	store.data["devices:wattage:fridge"] = []byte("lots")
	d := NewDeviceWattage(next, store, time.Minute, zap.NewNop())

	w, err := d.Wattage(context.Background(), "fridge")
	require.NoError(t, err)
	assert.InDelta(t, 150, w, 1e-9)
	assert.Equal(t, "150", string(store.data["devices:wattage:fridge"]))
}
