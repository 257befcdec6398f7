package ports

// CacheOwner is any component maintaining a derived cache that must be
// cleared when reloaded code may have invalidated it.
// Invalidate must be idempotent and side-effect-free beyond clearing the
// owner's own cache.
type CacheOwner interface {
	Invalidate() error
}

// CacheOwnerFunc adapts a plain function to the CacheOwner interface.
type CacheOwnerFunc func() error

// Invalidate calls f.
func (f CacheOwnerFunc) Invalidate() error {
	return f()
}
