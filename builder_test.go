package clientstore

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/medrex/clientstore/backend"
	"github.com/redis/go-redis/v9"
)

func TestBuildRequiresABackend(t *testing.T) {
	_, err := New().Build()
	if !errors.Is(err, ErrStorageRequired) {
		t.Errorf("Build = %v, want ErrStorageRequired", err)
	}
}

func TestBuildRejectsReuse(t *testing.T) {
	b := New().WithFallback(backend.NewMemoryBackend())

	store, err := b.Build()
	if err != nil {
		t.Fatalf("first Build: %v", err)
	}
	t.Cleanup(store.Close)

	if _, err := b.Build(); err == nil {
		t.Errorf("second Build succeeded")
	}
}

func TestBuildValidatesConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.RedisPrefix = "has space"

	_, err := New().
		WithConfig(cfg).
		WithFallback(backend.NewMemoryBackend()).
		Build()
	if err == nil {
		t.Errorf("Build accepted an invalid prefix")
	}
}

func TestBuildBindsFastStore(t *testing.T) {
	store, err := New().
		WithFastStore(t.TempDir()).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(store.Close)

	if store.Binding() != backend.BindingFast {
		t.Errorf("Binding = %v, want BindingFast", store.Binding())
	}
}

func TestBuildFallsBackWhenFastProbeFails(t *testing.T) {
	// A file where the directory should be makes MkdirAll fail.
	dir := t.TempDir()
	blocked := filepath.Join(dir, "blocked")
	if err := os.WriteFile(blocked, nil, 0o600); err != nil {
		t.Fatalf("seed blocking file: %v", err)
	}

	store, err := New().
		WithFastStore(filepath.Join(blocked, "nested")).
		WithFallback(backend.NewMemoryBackend()).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(store.Close)

	if store.Binding() != backend.BindingFallback {
		t.Errorf("Binding = %v, want BindingFallback", store.Binding())
	}

	// The store still works, just on the other backend.
	ctx := context.Background()
	if err := store.SetString(ctx, KeyTheme, "light"); err != nil {
		t.Fatalf("SetString after fallback: %v", err)
	}
	if got, ok := store.GetString(ctx, KeyTheme); !ok || got != "light" {
		t.Errorf("GetString = (%q, %v), want (light, true)", got, ok)
	}
}

func TestBuildWithRedisFallback(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		_ = client.Close()
	})

	store, err := New().
		WithRedis(client).
		Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	t.Cleanup(store.Close)

	ctx := context.Background()
	if err := store.SetString(ctx, KeyAuthToken, "tok"); err != nil {
		t.Fatalf("SetString: %v", err)
	}
	// The default prefix namespaces the physical key.
	if !mr.Exists("mcs:auth_token") {
		t.Errorf("expected physical key mcs:auth_token")
	}
}
