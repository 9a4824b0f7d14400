package clientstore

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/medrex/clientstore/backend"
)

// newTestStore builds a store bound to an in-memory backend with a fixed
// clock. Tests mutate s.now directly to move time.
func newTestStore(t *testing.T) (*Store, *backend.MemoryBackend) {
	t.Helper()

	mem := backend.NewMemoryBackend()
	store, err := New().
		WithFallback(mem).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(store.Close)

	base := time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return base }
	return store, mem
}

// flakyBackend fails every operation against keys listed in failKeys and
// delegates the rest to an in-memory store.
type flakyBackend struct {
	inner    *backend.MemoryBackend
	failKeys map[string]bool
	failAll  bool
}

func newFlakyBackend() *flakyBackend {
	return &flakyBackend{
		inner:    backend.NewMemoryBackend(),
		failKeys: map[string]bool{},
	}
}

func (f *flakyBackend) fails(key string) bool {
	return f.failAll || f.failKeys[key]
}

func (f *flakyBackend) Get(ctx context.Context, key string) (string, error) {
	if f.fails(key) {
		return "", fmt.Errorf("%w: injected", backend.ErrUnavailable)
	}
	return f.inner.Get(ctx, key)
}

func (f *flakyBackend) Set(ctx context.Context, key, value string) error {
	if f.fails(key) {
		return fmt.Errorf("%w: injected", backend.ErrUnavailable)
	}
	return f.inner.Set(ctx, key, value)
}

func (f *flakyBackend) Delete(ctx context.Context, key string) error {
	if f.fails(key) {
		return fmt.Errorf("%w: injected", backend.ErrUnavailable)
	}
	return f.inner.Delete(ctx, key)
}

func (f *flakyBackend) Keys(ctx context.Context) ([]string, error) {
	return f.inner.Keys(ctx)
}

func (f *flakyBackend) Clear(ctx context.Context) error {
	if f.failAll {
		return fmt.Errorf("%w: injected", backend.ErrUnavailable)
	}
	return f.inner.Clear(ctx)
}

func (f *flakyBackend) Close() error { return nil }

func TestStoreStringRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.SetString(ctx, KeyAuthToken, "tok-1"); err != nil {
		t.Fatalf("SetString: %v", err)
	}

	got, ok := store.GetString(ctx, KeyAuthToken)
	if !ok || got != "tok-1" {
		t.Errorf("GetString = (%q, %v), want (tok-1, true)", got, ok)
	}
}

func TestStoreGetStringMissing(t *testing.T) {
	store, _ := newTestStore(t)

	got, ok := store.GetString(context.Background(), KeyPushToken)
	if ok || got != "" {
		t.Errorf("GetString missing = (%q, %v), want (\"\", false)", got, ok)
	}
}

func TestStoreRemoveIdempotent(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.SetString(ctx, KeyTheme, "dark"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	if err := store.Remove(ctx, KeyTheme); err != nil {
		t.Fatalf("first Remove: %v", err)
	}
	if err := store.Remove(ctx, KeyTheme); err != nil {
		t.Errorf("second Remove = %v, want nil", err)
	}
	if _, ok := store.GetString(ctx, KeyTheme); ok {
		t.Errorf("value survived Remove")
	}
}

func TestStoreJSONRoundTrip(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	in := map[string]int{"visits": 3}
	if err := store.SetJSON(ctx, KeyUserData, in); err != nil {
		t.Fatalf("SetJSON: %v", err)
	}

	var out map[string]int
	if !store.GetJSON(ctx, KeyUserData, &out) {
		t.Fatalf("GetJSON reported failure")
	}
	if out["visits"] != 3 {
		t.Errorf("round-trip = %v, want %v", out, in)
	}
}

func TestStoreSetJSONUnserializable(t *testing.T) {
	store, _ := newTestStore(t)

	err := store.SetJSON(context.Background(), KeyUserData, make(chan int))
	if !errors.Is(err, ErrNotSerializable) {
		t.Fatalf("SetJSON = %v, want ErrNotSerializable", err)
	}
	// The programmer error must be rejected before any write happens.
	if _, ok := store.GetString(context.Background(), KeyUserData); ok {
		t.Errorf("failed SetJSON left a value behind")
	}
}

func TestStoreGetJSONReadTolerant(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if err := store.SetString(ctx, KeyUserData, "{broken"); err != nil {
		t.Fatalf("SetString: %v", err)
	}

	var out map[string]string
	if store.GetJSON(ctx, KeyUserData, &out) {
		t.Fatalf("GetJSON decoded garbage")
	}
	// The raw value survives the failed decode.
	raw, ok := store.GetString(ctx, KeyUserData)
	if !ok || raw != "{broken" {
		t.Errorf("raw value = (%q, %v), want ({broken, true)", raw, ok)
	}
	if got := store.metrics.Get(MetricDeserializationFailure); got != 1 {
		t.Errorf("deserialization failures = %d, want 1", got)
	}
}

func TestStoreBoolDefaultsFalse(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	if store.GetBool(ctx, KeyBiometricEnabled) {
		t.Errorf("unset flag reads true")
	}
	if err := store.SetBool(ctx, KeyBiometricEnabled, true); err != nil {
		t.Fatalf("SetBool: %v", err)
	}
	if !store.GetBool(ctx, KeyBiometricEnabled) {
		t.Errorf("flag did not round-trip")
	}

	// Canonical string form on the wire.
	raw, ok := store.GetString(ctx, KeyBiometricEnabled)
	if !ok || raw != "true" {
		t.Errorf("stored form = (%q, %v), want (true, true)", raw, ok)
	}
}

func TestStoreFallbackShim(t *testing.T) {
	flaky := newFlakyBackend()
	alternate := backend.NewMemoryBackend()

	store, err := New().
		WithFastBackend(func() (backend.Backend, error) { return flaky, nil }).
		WithFallback(alternate).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(store.Close)

	ctx := context.Background()
	flaky.failKeys["theme"] = true

	// Write lands on the alternate when the bound store fails.
	if err := store.SetString(ctx, KeyTheme, "dark"); err != nil {
		t.Fatalf("SetString through shim: %v", err)
	}
	if v, err := alternate.Get(ctx, "theme"); err != nil || v != "dark" {
		t.Errorf("alternate value = (%q, %v), want (dark, nil)", v, err)
	}

	// And the read comes back from the alternate too.
	got, ok := store.GetString(ctx, KeyTheme)
	if !ok || got != "dark" {
		t.Errorf("GetString through shim = (%q, %v), want (dark, true)", got, ok)
	}

	if got := store.metrics.Get(MetricFallbackWrite); got != 1 {
		t.Errorf("fallback writes = %d, want 1", got)
	}
	if got := store.metrics.Get(MetricFallbackRead); got != 1 {
		t.Errorf("fallback reads = %d, want 1", got)
	}
}

func TestStoreBothBackendsDown(t *testing.T) {
	flaky := newFlakyBackend()
	flaky.failAll = true

	store, err := New().
		WithFastBackend(func() (backend.Backend, error) { return flaky, nil }).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(store.Close)

	ctx := context.Background()
	if err := store.SetString(ctx, KeyTheme, "dark"); !errors.Is(err, backend.ErrUnavailable) {
		t.Errorf("SetString = %v, want ErrUnavailable", err)
	}
	// Reads degrade to absent, never to an error the screen would see.
	if _, ok := store.GetString(ctx, KeyTheme); ok {
		t.Errorf("read reported ok against a dead store")
	}
}

func TestStoreIdenticalBehaviorAcrossBackends(t *testing.T) {
	fast := backend.NewMemoryBackend()

	bindings := map[string]func(*Builder) *Builder{
		"fast": func(b *Builder) *Builder {
			return b.WithFastBackend(func() (backend.Backend, error) { return fast, nil })
		},
		"fallback": func(b *Builder) *Builder {
			return b.WithFallback(backend.NewMemoryBackend())
		},
	}

	for name, bind := range bindings {
		t.Run(name, func(t *testing.T) {
			store, err := bind(New()).Build()
			if err != nil {
				t.Fatalf("Build: %v", err)
			}
			t.Cleanup(store.Close)

			ctx := context.Background()
			if err := store.SetString(ctx, KeySessionID, "s-7"); err != nil {
				t.Fatalf("SetString: %v", err)
			}
			if got, ok := store.GetString(ctx, KeySessionID); !ok || got != "s-7" {
				t.Errorf("GetString = (%q, %v), want (s-7, true)", got, ok)
			}
			if err := store.Remove(ctx, KeySessionID); err != nil {
				t.Fatalf("Remove: %v", err)
			}
			if _, ok := store.GetString(ctx, KeySessionID); ok {
				t.Errorf("value survived Remove")
			}
		})
	}
}

func TestStoreAuditEvents(t *testing.T) {
	flaky := newFlakyBackend()
	flaky.failAll = true
	sink := NewChannelSink(16)

	store, err := New().
		WithFastBackend(func() (backend.Backend, error) { return flaky, nil }).
		WithAuditSink(sink).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}

	_, _ = store.GetString(context.Background(), KeyAuthToken)
	store.Close()

	select {
	case event := <-sink.Events():
		if event.Success {
			t.Errorf("degraded read reported success")
		}
		if event.Op != "get" || event.Key != "auth_token" {
			t.Errorf("event = %+v, want op=get key=auth_token", event)
		}
	default:
		t.Fatalf("no audit event emitted for degraded read")
	}
}

func TestStoreMetricsSnapshot(t *testing.T) {
	store, _ := newTestStore(t)
	ctx := context.Background()

	store.GetJSON(ctx, KeyUserData, &struct{}{})

	snap := store.MetricsSnapshot()
	if snap.Counters == nil {
		t.Fatalf("snapshot has nil counter map")
	}
	if _, ok := snap.Counters[MetricCacheHit]; !ok {
		t.Errorf("snapshot missing counter ids")
	}
}
