package backend

// Binding identifies which physical store a selection bound.
type Binding uint8

const (
	// BindingFast means the synchronous snapshot store was constructed
	// successfully and serves all operations.
	BindingFast Binding = iota
	// BindingFallback means the fast store was unavailable (or not
	// configured) and the universal fallback serves all operations.
	BindingFallback
)

func (b Binding) String() string {
	switch b {
	case BindingFast:
		return "fast"
	case BindingFallback:
		return "fallback"
	default:
		return "unknown"
	}
}

// Selection is the result of the one-shot backend probe.
type Selection struct {
	// Bound serves every operation for the rest of the process.
	Bound Backend
	// Alternate is the compatibility store the façade may retry against
	// when Bound fails mid-flight. Nil when no second store exists.
	Alternate Backend
	// Binding records which store won the probe.
	Binding Binding
}

// Select runs the backend probe exactly once. It attempts the fast
// constructor; on any construction failure it binds permanently to fallback
// for the remainder of the process. The decision is never revisited per-call
// so reads can never mix two physical stores.
//
// The construction error is returned alongside the selection so the caller
// can report why the fast path was skipped; a non-nil error with a usable
// Selection is the expected fallback outcome, not a failure.
func Select(fast func() (Backend, error), fallback Backend) (Selection, error) {
	if fast == nil {
		return Selection{Bound: fallback, Binding: BindingFallback}, nil
	}

	bound, err := fast()
	if err != nil || bound == nil {
		return Selection{Bound: fallback, Binding: BindingFallback}, err
	}

	return Selection{
		Bound:     bound,
		Alternate: fallback,
		Binding:   BindingFast,
	}, nil
}
