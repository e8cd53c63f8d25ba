package dialect

import (
	"sort"
	"sync"
)

// Engine registry. Concrete engines register themselves from their init()
// functions (pkg/dialects/*); lookups never fail because For falls back to
// the Generic engine.
var (
	enginesMu sync.RWMutex
	engines   = make(map[DatabaseType]Engine)
)

// Register registers an engine for its database type. Called by engine
// implementations in their init() functions. A later registration for the
// same type replaces the earlier one.
func Register(e Engine) {
	enginesMu.Lock()
	defer enginesMu.Unlock()
	engines[e.Type()] = e
}

// For returns the engine registered for t, or the Generic engine when none
// is registered. It never returns nil.
func For(t DatabaseType) Engine {
	enginesMu.RLock()
	defer enginesMu.RUnlock()
	if e, ok := engines[t]; ok {
		return e
	}
	return genericEngine{}
}

// ForName resolves an engine identifier string and returns its engine,
// falling back to Generic for unrecognized identifiers.
func ForName(name string) Engine {
	return For(ParseDatabaseType(name))
}

// List returns the registered engine names, sorted, always including
// "generic".
func List() []string {
	enginesMu.RLock()
	defer enginesMu.RUnlock()
	names := []string{TypeGeneric.String()}
	for t := range engines {
		if t != TypeGeneric {
			names = append(names, t.String())
		}
	}
	sort.Strings(names)
	return names
}
