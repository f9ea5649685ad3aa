package form

import (
	"fmt"
	"strings"
	"sync"
)

// Store holds committed field values keyed by field key. Keys may be dotted
// paths.
type Store interface {
	Get(key string) (any, bool)
	Set(key string, value any) error
}

// MemoryStore keeps values in nested maps keyed by dotted paths.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]any
}

// NewMemoryStore seeds a store with prefilled values. Nested maps in prefill
// are copied.
func NewMemoryStore(prefill map[string]any) *MemoryStore {
	values := make(map[string]any, len(prefill))
	for k, v := range prefill {
		values[k] = deepCopy(v)
	}
	return &MemoryStore{values: values}
}

// Get resolves a dotted path.
func (s *MemoryStore) Get(key string) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return getPath(s.values, key)
}

// Set writes a dotted path, creating intermediate maps.
func (s *MemoryStore) Set(key string, value any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.values == nil {
		s.values = make(map[string]any)
	}
	return setPath(s.values, key, value)
}

// Values returns a deep copy of the stored tree.
func (s *MemoryStore) Values() map[string]any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out, _ := deepCopy(s.values).(map[string]any)
	return out
}

func deepCopy(value any) any {
	switch typed := value.(type) {
	case map[string]any:
		clone := make(map[string]any, len(typed))
		for k, v := range typed {
			clone[k] = deepCopy(v)
		}
		return clone
	case []any:
		clone := make([]any, len(typed))
		for i, v := range typed {
			clone[i] = deepCopy(v)
		}
		return clone
	default:
		return typed
	}
}

func getPath(root map[string]any, path string) (any, bool) {
	if root == nil || path == "" {
		return nil, false
	}
	var current any = root
	for _, segment := range strings.Split(path, ".") {
		node, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		next, ok := node[segment]
		if !ok {
			return nil, false
		}
		current = next
	}
	return current, true
}

func setPath(root map[string]any, path string, value any) error {
	segments := strings.Split(path, ".")
	for _, segment := range segments {
		if segment == "" {
			return fmt.Errorf("form: invalid key %q", path)
		}
	}
	node := root
	for _, segment := range segments[:len(segments)-1] {
		child, ok := node[segment].(map[string]any)
		if !ok {
			if existing, present := node[segment]; present && existing != nil {
				return fmt.Errorf("form: key %q crosses non-map value at %q", path, segment)
			}
			child = make(map[string]any)
			node[segment] = child
		}
		node = child
	}
	node[segments[len(segments)-1]] = value
	return nil
}
