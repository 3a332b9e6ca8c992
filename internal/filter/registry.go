package filter

import (
	"errors"
	"sync"
)

// Registry holds the compiled, ordered set of Parsers built from a
// FilterConfig. It is immutable once constructed.
type Registry struct {
	parsers []Parser
}

// NewRegistry compiles config into a Registry, loading every referenced
// ABI schema eagerly so a bad config fails at startup rather than on the
// first matching transaction.
func NewRegistry(config FilterConfig) (*Registry, error) {
	parsers, err := compileParsers(config)
	if err != nil {
		return nil, err
	}
	return &Registry{parsers: parsers}, nil
}

// Parsers returns the compiled parsers in declaration order.
func (r *Registry) Parsers() []Parser {
	return r.parsers
}

var (
	globalMu sync.Mutex
	global   *Registry
)

// Init builds the process-wide Registry from config and assigns it exactly
// once. A second call returns an error without altering the existing
// registry: this state is single-assignment for the lifetime of the
// process, mirroring a lazily-initialized, write-once cell.
func Init(config FilterConfig) (*Registry, error) {
	reg, err := NewRegistry(config)
	if err != nil {
		return nil, err
	}
	globalMu.Lock()
	defer globalMu.Unlock()
	if global != nil {
		return nil, errors.New("parser registry: already initialized")
	}
	global = reg
	return reg, nil
}

// Get returns the process-wide Registry. It panics if called before Init:
// reading the registry before startup has assigned it is a programming
// error, not a recoverable condition.
func Get() *Registry {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		panic("parser registry: Get called before Init")
	}
	return global
}
