package form

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	appErrors "formbox/internal/errors"
)

// Definition is a parsed form file.
type Definition struct {
	Title       string  `yaml:"title,omitempty" json:"title,omitempty"`
	Description string  `yaml:"description,omitempty" json:"description,omitempty"`
	Fields      []Field `yaml:"fields" json:"fields"`
}

// Field returns the field with key.
func (d Definition) Field(key string) (Field, bool) {
	for _, f := range d.Fields {
		if f.Key == key {
			return f, true
		}
	}
	return Field{}, false
}

// Load reads and validates a YAML form file.
func Load(path string) (Definition, error) {
	//nolint:gosec // G304: form files are chosen by the user
	data, err := os.ReadFile(path)
	if err != nil {
		return Definition{}, fmt.Errorf("read %s: %w", path, err)
	}
	def, err := Parse(data)
	if err != nil {
		return Definition{}, fmt.Errorf("%s: %w", path, err)
	}
	return def, nil
}

// Parse decodes and validates a YAML form definition.
func Parse(data []byte) (Definition, error) {
	var def Definition
	if err := yaml.Unmarshal(data, &def); err != nil {
		return Definition{}, appErrors.New(appErrors.CodeInvalidField, "parse form", err)
	}
	if len(def.Fields) == 0 {
		return Definition{}, appErrors.New(appErrors.CodeInvalidField, "form has no fields", nil)
	}
	// Read-only fields may repeat a key to mirror another field's value.
	editable := make(map[string]struct{}, len(def.Fields))
	for _, f := range def.Fields {
		if err := f.Validate(); err != nil {
			return Definition{}, err
		}
		if f.ReadOnly {
			continue
		}
		if _, dup := editable[f.Key]; dup {
			return Definition{}, appErrors.New(appErrors.CodeInvalidField, fmt.Sprintf("duplicate field key %q", f.Key), nil)
		}
		editable[f.Key] = struct{}{}
	}
	return def, nil
}
