package settings

import "sync"

// Flag is a boolean process flag with scoped true-while-running semantics.
//
// WithGuard protects recursive self-printing of structures that may reference
// themselves without a full cycle-detection pass: correctness depends on the
// flag being cleared on every exit path, including propagated failures.
type Flag struct {
	mu     sync.Mutex
	active bool
}

// Active reports the current value of the flag. False when never guarded.
func (f *Flag) Active() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.active
}

// WithGuard runs fn with the flag held true, restoring it to false before
// returning, even when fn fails. If the flag is already active the call is a
// no-op reentry: fn runs directly and the flag is left untouched.
func (f *Flag) WithGuard(fn func() error) error {
	f.mu.Lock()
	if f.active {
		f.mu.Unlock()
		return fn()
	}
	f.active = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.active = false
		f.mu.Unlock()
	}()

	return fn()
}
