// Package settings holds the lazily-defaulted mutable process settings of the
// routekit runtime: verbosity, element display limits, terminal column width,
// and the scoped guard hiding route elements during self-referential printing.
package settings

import (
	"os"
	"sync"

	"golang.org/x/term"
)

// Verbosity controls how much the toolkit prints while traversing.
type Verbosity int

const (
	// Quiet suppresses informational output.
	Quiet Verbosity = iota
	// Normal is the default verbosity.
	Normal
	// Extra enables additional diagnostic output.
	Extra
)

// String returns the lowercase name of the verbosity level.
func (v Verbosity) String() string {
	switch v {
	case Quiet:
		return "quiet"
	case Extra:
		return "extra"
	default:
		return "normal"
	}
}

// Defaults used when a setting was never explicitly set.
const (
	DefaultDisplayLimit = 500
	DefaultColumnWidth  = 150
)

// Store is the mutable settings state for one runtime instance.
// Getters return the explicit value if one was set, else the fixed default.
// Setters store the value as-is: out-of-range values (for example a
// non-positive column width) are a caller responsibility and are not
// validated here.
type Store struct {
	mu           sync.Mutex
	verbosity    *Verbosity
	displayLimit *int
	columnWidth  *int

	hideRouteElements Flag
}

// NewStore creates a Store with every setting unset.
func NewStore() *Store {
	return &Store{}
}

// Verbosity returns the configured verbosity, defaulting to Normal.
func (s *Store) Verbosity() Verbosity {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.verbosity == nil {
		return Normal
	}
	return *s.verbosity
}

// SetVerbosity stores an explicit verbosity override.
func (s *Store) SetVerbosity(v Verbosity) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.verbosity = &v
}

// DisplayLimit returns the maximum number of elements to display,
// defaulting to DefaultDisplayLimit.
func (s *Store) DisplayLimit() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.displayLimit == nil {
		return DefaultDisplayLimit
	}
	return *s.displayLimit
}

// SetDisplayLimit stores an explicit display limit override.
func (s *Store) SetDisplayLimit(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.displayLimit = &n
}

// ColumnWidth returns the terminal column width used for tabular output,
// defaulting to DefaultColumnWidth.
func (s *Store) ColumnWidth() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.columnWidth == nil {
		return DefaultColumnWidth
	}
	return *s.columnWidth
}

// SetColumnWidth stores an explicit column width override.
func (s *Store) SetColumnWidth(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.columnWidth = &n
}

// HideRouteElements returns the scoped guard used while printing structures
// that may reference themselves.
func (s *Store) HideRouteElements() *Flag {
	return &s.hideRouteElements
}

// DetectColumnWidth sets the column width from the terminal attached to f.
// It reports whether detection succeeded; when f is not a terminal the
// stored value is left untouched.
func (s *Store) DetectColumnWidth(f *os.File) bool {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return false
	}
	width, _, err := term.GetSize(fd)
	if err != nil || width <= 0 {
		return false
	}
	s.SetColumnWidth(width)
	return true
}
