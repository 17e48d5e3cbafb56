package ai

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Factory builds a provider instance for an API key. Provider files
// register themselves from init, so importing the package is enough to
// make them constructible by name.
type Factory func(apiKey string) (Provider, error)

var (
	regMu     sync.RWMutex
	factories = map[string]Factory{}
)

// Register makes a provider constructible through New under the given
// name. Later registrations replace earlier ones.
func Register(name string, f Factory) {
	regMu.Lock()
	defer regMu.Unlock()
	factories[name] = f
}

// New builds the provider the config names. Unknown names report the
// registered alternatives so a config typo is easy to spot.
func New(name, apiKey string) (Provider, error) {
	regMu.RLock()
	f, ok := factories[name]
	regMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("unknown AI provider %q (registered: %s)",
			name, strings.Join(Names(), ", "))
	}
	return f(apiKey)
}

// Names lists the registered provider names, sorted.
func Names() []string {
	regMu.RLock()
	defer regMu.RUnlock()
	out := make([]string, 0, len(factories))
	for name := range factories {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
