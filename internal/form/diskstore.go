package form

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
	"github.com/peterbourgon/diskv/v3"

	appErrors "formbox/internal/errors"
)

const diskExt = ".json"

// DiskStore persists each key as a JSON document under a base directory.
// Dotted keys map to nested directories.
type DiskStore struct {
	d        *diskv.Diskv
	basePath string
}

// NewDiskStore opens (or creates on first write) a store rooted at basePath.
func NewDiskStore(basePath string) (*DiskStore, error) {
	if strings.TrimSpace(basePath) == "" {
		return nil, appErrors.New(appErrors.CodeStoreFailed, "disk store requires a base path", nil)
	}
	return &DiskStore{
		d: diskv.New(diskv.Options{
			BasePath:          basePath,
			AdvancedTransform: keyToPathTransform,
			InverseTransform:  pathToKeyTransform,
			CacheSizeMax:      1024 * 1024, // 1MB
		}),
		basePath: basePath,
	}, nil
}

// BasePath returns the root directory.
func (s *DiskStore) BasePath() string {
	return s.basePath
}

// Get decodes the stored document into loose JSON values.
func (s *DiskStore) Get(key string) (any, bool) {
	if !validKey(key) || !s.d.Has(key) {
		return nil, false
	}
	raw, err := s.d.Read(key)
	if err != nil {
		return nil, false
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, false
	}
	return v, true
}

// Set encodes value as JSON and writes it.
func (s *DiskStore) Set(key string, value any) error {
	if !validKey(key) {
		return appErrors.New(appErrors.CodeStoreFailed, fmt.Sprintf("invalid key %q", key), nil)
	}
	raw, err := json.Marshal(value)
	if err != nil {
		return appErrors.New(appErrors.CodeStoreFailed, fmt.Sprintf("encode %s", key), err)
	}
	if err := s.d.Write(key, raw); err != nil {
		return appErrors.New(appErrors.CodeStoreFailed, fmt.Sprintf("write %s", key), err)
	}
	return nil
}

// Keys lists the stored keys.
func (s *DiskStore) Keys() []string {
	var keys []string
	for k := range s.d.Keys(nil) {
		keys = append(keys, k)
	}
	return keys
}

func validKey(key string) bool {
	if key == "" || strings.ContainsAny(key, `/\`) {
		return false
	}
	for _, segment := range strings.Split(key, ".") {
		if segment == "" {
			return false
		}
	}
	return true
}

func keyToPathTransform(s string) *diskv.PathKey {
	parts := strings.Split(s, ".")
	return &diskv.PathKey{
		Path:     parts[:len(parts)-1],
		FileName: parts[len(parts)-1] + diskExt,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	name := strings.TrimSuffix(pathKey.FileName, diskExt)
	if len(pathKey.Path) == 0 {
		return name
	}
	return strings.Join(pathKey.Path, ".") + "." + name
}
