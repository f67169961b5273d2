package asr

import "sync"

// Holder memoizes one Engine per process. Model weights are expensive to
// load, so concurrent first callers must not race to build duplicates: the
// build runs under the lock, one caller constructs, the rest wait and get
// the same instance. A failed build is not cached; the next caller retries.
type Holder struct {
	mu     sync.Mutex
	build  func() (Engine, error)
	engine Engine
}

func NewHolder(build func() (Engine, error)) *Holder {
	return &Holder{build: build}
}

// Engine returns the singleton, constructing it on first call.
func (h *Holder) Engine() (Engine, error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.engine != nil {
		return h.engine, nil
	}
	eng, err := h.build()
	if err != nil {
		return nil, err
	}
	h.engine = eng
	return eng, nil
}
