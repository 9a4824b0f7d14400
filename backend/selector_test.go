package backend

import (
	"errors"
	"testing"
)

func TestSelectFastWins(t *testing.T) {
	fast := NewMemoryBackend()
	fallback := NewMemoryBackend()

	sel, err := Select(func() (Backend, error) { return fast, nil }, fallback)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel.Binding != BindingFast {
		t.Errorf("Binding = %v, want BindingFast", sel.Binding)
	}
	if sel.Bound != Backend(fast) {
		t.Errorf("Bound is not the fast store")
	}
	if sel.Alternate != Backend(fallback) {
		t.Errorf("Alternate is not the fallback store")
	}
}

func TestSelectFallbackOnProbeFailure(t *testing.T) {
	probeErr := errors.New("no usable data dir")
	fallback := NewMemoryBackend()

	sel, err := Select(func() (Backend, error) { return nil, probeErr }, fallback)
	if !errors.Is(err, probeErr) {
		t.Fatalf("Select err = %v, want probe error", err)
	}
	if sel.Binding != BindingFallback {
		t.Errorf("Binding = %v, want BindingFallback", sel.Binding)
	}
	if sel.Bound != Backend(fallback) {
		t.Errorf("Bound is not the fallback store")
	}
	if sel.Alternate != nil {
		t.Errorf("Alternate = %v, want nil after failed probe", sel.Alternate)
	}
}

func TestSelectNoFastConfigured(t *testing.T) {
	fallback := NewMemoryBackend()

	sel, err := Select(nil, fallback)
	if err != nil {
		t.Fatalf("Select: %v", err)
	}
	if sel.Binding != BindingFallback {
		t.Errorf("Binding = %v, want BindingFallback", sel.Binding)
	}
}

func TestBindingString(t *testing.T) {
	if got := BindingFast.String(); got != "fast" {
		t.Errorf("BindingFast = %q", got)
	}
	if got := BindingFallback.String(); got != "fallback" {
		t.Errorf("BindingFallback = %q", got)
	}
}
