// Package faultinject supplies the injectable failure source used to
// simulate upstream transience. Injection sits entirely outside the policy
// engine: the operation consults an Injector before making the real call, so
// production wiring can disable injection and tests can script failures
// deterministically.
package faultinject

import (
	"context"
	"math/rand"
	"sync"
)

// Injector decides whether an upstream call should fail synthetically.
type Injector interface {
	// Inject returns the failure to substitute for the real call, or nil to
	// let the call proceed.
	Inject(ctx context.Context) error
}

// InjectorFunc adapts a function to the Injector interface.
type InjectorFunc func(ctx context.Context) error

// Inject calls f.
func (f InjectorFunc) Inject(ctx context.Context) error {
	return f(ctx)
}

// Disabled returns an injector that never fires.
func Disabled() Injector {
	return InjectorFunc(func(context.Context) error {
		return nil
	})
}

// RandomInjector fires with a fixed probability from a seeded source, so a
// given seed reproduces the same decision sequence. The source is guarded by
// a mutex; the injector is safe for concurrent use.
type RandomInjector struct {
	mu          sync.Mutex
	rng         *rand.Rand
	probability float64
	newErr      func() error
}

// NewRandom creates a probability-based injector. probability is clamped to
// [0, 1]: 0 never fires, 1 always fires. newErr produces the failure for each
// fired injection and must not be nil when probability is above 0.
func NewRandom(probability float64, seed int64, newErr func() error) *RandomInjector {
	if probability < 0 {
		probability = 0
	}
	if probability > 1 {
		probability = 1
	}
	return &RandomInjector{
		// #nosec G404 -- Fault injection is a test harness concern;
		// cryptographic randomness is not required and a seedable source is
		// what makes injection reproducible.
		rng:         rand.New(rand.NewSource(seed)),
		probability: probability,
		newErr:      newErr,
	}
}

// Inject draws from the seeded source and fires per the configured
// probability.
func (r *RandomInjector) Inject(_ context.Context) error {
	if r.probability == 0 {
		return nil
	}
	r.mu.Lock()
	fire := r.rng.Float64() < r.probability
	r.mu.Unlock()

	if fire {
		return r.newErr()
	}
	return nil
}

// ScriptedInjector replays a fixed sequence of outcomes and then never fires
// again. A nil entry in the script lets that call through. It is safe for
// concurrent use, though scripted tests usually run sequentially.
type ScriptedInjector struct {
	mu     sync.Mutex
	script []error
	next   int
}

// NewScripted creates an injector that returns the given outcomes in order,
// then nil forever.
func NewScripted(script ...error) *ScriptedInjector {
	return &ScriptedInjector{script: script}
}

// Inject returns the next scripted outcome.
func (s *ScriptedInjector) Inject(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.next >= len(s.script) {
		return nil
	}
	err := s.script[s.next]
	s.next++
	return err
}

// Remaining reports how many scripted outcomes have not been consumed yet.
func (s *ScriptedInjector) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.script) - s.next
}
