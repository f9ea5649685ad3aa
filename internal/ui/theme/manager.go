package theme

import (
	"sort"
	"sync"
)

// DefaultName is the palette used until another is selected.
const DefaultName = "tokyonight"

var globalManager = &manager{
	palettes: make(map[string]Palette),
}

type manager struct {
	mu          sync.RWMutex
	palettes    map[string]Palette
	currentName string
	current     Palette
}

// Register adds a palette to the registry. The first registered palette
// becomes current until DefaultName is registered.
func Register(name string, p Palette) {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	globalManager.palettes[name] = p
	if globalManager.currentName == "" || name == DefaultName {
		globalManager.currentName = name
		globalManager.current = p
	}
}

// Set switches to a registered palette by name.
// Returns true if the palette was found and set.
func Set(name string) bool {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()
	if p, ok := globalManager.palettes[name]; ok {
		globalManager.currentName = name
		globalManager.current = p
		return true
	}
	return false
}

// Current returns the active palette.
func Current() Palette {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return globalManager.current
}

// CurrentName returns the name of the active palette.
func CurrentName() string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return globalManager.currentName
}

// Available returns the registered palette names in sorted order.
func Available() []string {
	globalManager.mu.RLock()
	defer globalManager.mu.RUnlock()
	return sortedNames()
}

// Cycle switches to the next palette in sorted order and returns its name.
func Cycle() string {
	globalManager.mu.Lock()
	defer globalManager.mu.Unlock()

	names := sortedNames()
	if len(names) == 0 {
		return ""
	}
	next := names[0]
	for i, name := range names {
		if name == globalManager.currentName {
			next = names[(i+1)%len(names)]
			break
		}
	}
	globalManager.currentName = next
	globalManager.current = globalManager.palettes[next]
	return next
}

// sortedNames lists palette names. Callers hold the lock.
func sortedNames() []string {
	names := make([]string, 0, len(globalManager.palettes))
	for name := range globalManager.palettes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
