// Package form describes fields and the value store they write into.
package form

import (
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	appErrors "formbox/internal/errors"
	"formbox/internal/option"
)

// FieldType selects the widget a field mounts.
type FieldType string

const (
	TypeSearchSelect      FieldType = "search-select"
	TypeSearchSelectMulti FieldType = "search-select-multi"
	TypeSelect            FieldType = "select"
	TypeSelectMulti       FieldType = "select-multi"

	TypeText     FieldType = "text"
	TypeNumber   FieldType = "number"
	TypeDate     FieldType = "date"
	TypeCheckbox FieldType = "checkbox"
	TypeSwitch   FieldType = "switch"
	TypeRadio    FieldType = "radio"
	TypeMoney    FieldType = "money"
)

var knownTypes = map[FieldType]bool{
	TypeSearchSelect:      true,
	TypeSearchSelectMulti: true,
	TypeSelect:            true,
	TypeSelectMulti:       true,
	TypeText:              false,
	TypeNumber:            false,
	TypeDate:              false,
	TypeCheckbox:          false,
	TypeSwitch:            false,
	TypeRadio:             false,
	TypeMoney:             false,
}

// Known reports whether t is a recognised field type.
func (t FieldType) Known() bool {
	_, ok := knownTypes[t]
	return ok
}

// Selectable reports whether t mounts a combobox.
func (t FieldType) Selectable() bool {
	return knownTypes[t]
}

// Searchable reports whether typing filters the candidates.
func (t FieldType) Searchable() bool {
	return t == TypeSearchSelect || t == TypeSearchSelectMulti
}

// ReadOnlyStyle picks how a read-only value is displayed.
type ReadOnlyStyle string

const (
	// ReadOnlyValue renders the joined labels as plain text.
	ReadOnlyValue ReadOnlyStyle = "value"
	// ReadOnlyDisabled renders a dimmed input holding the joined labels.
	ReadOnlyDisabled ReadOnlyStyle = "disabled"
)

// Remote kinds.
const (
	RemoteHTTP   = "http"
	RemoteSQLite = "sqlite"
)

// Remote describes a server-side option source.
type Remote struct {
	Kind string `yaml:"kind" json:"kind"`

	// http
	URL         string            `yaml:"url,omitempty" json:"url,omitempty"`
	Method      string            `yaml:"method,omitempty" json:"method,omitempty"`
	SearchParam string            `yaml:"searchParam,omitempty" json:"searchParam,omitempty"`
	Params      map[string]string `yaml:"params,omitempty" json:"params,omitempty"`
	ResultsPath string            `yaml:"resultsPath,omitempty" json:"resultsPath,omitempty"`
	ValueField  string            `yaml:"valueField,omitempty" json:"valueField,omitempty"`
	LabelField  string            `yaml:"labelField,omitempty" json:"labelField,omitempty"`

	// sqlite
	Path        string `yaml:"path,omitempty" json:"path,omitempty"`
	Table       string `yaml:"table,omitempty" json:"table,omitempty"`
	ValueColumn string `yaml:"valueColumn,omitempty" json:"valueColumn,omitempty"`
	LabelColumn string `yaml:"labelColumn,omitempty" json:"labelColumn,omitempty"`

	Limit int `yaml:"limit,omitempty" json:"limit,omitempty"`
}

// Options is a static option list. In YAML each entry is either a plain
// string (used as label and value) or a {label, value} mapping.
type Options []option.Option

// UnmarshalYAML accepts strings and label/value mappings.
func (o *Options) UnmarshalYAML(node *yaml.Node) error {
	var raw []any
	if err := node.Decode(&raw); err != nil {
		return fmt.Errorf("options: %w", err)
	}
	decoded := make(Options, 0, len(raw))
	for i, item := range raw {
		opts := option.Decode(item)
		if len(opts) != 1 {
			return fmt.Errorf("options[%d]: expected a string or a mapping with a value", i)
		}
		decoded = append(decoded, opts[0])
	}
	*o = decoded
	return nil
}

// Field is one form field definition.
type Field struct {
	Key           string        `yaml:"key" json:"key"`
	Label         string        `yaml:"label,omitempty" json:"label,omitempty"`
	Placeholder   string        `yaml:"placeholder,omitempty" json:"placeholder,omitempty"`
	Help          string        `yaml:"help,omitempty" json:"help,omitempty"`
	Type          FieldType     `yaml:"type" json:"type"`
	Multiple      bool          `yaml:"multiple,omitempty" json:"multiple,omitempty"`
	Options       Options       `yaml:"options,omitempty" json:"options,omitempty"`
	Remote        *Remote       `yaml:"remote,omitempty" json:"remote,omitempty"`
	Default       any           `yaml:"default,omitempty" json:"default,omitempty"`
	Required      bool          `yaml:"required,omitempty" json:"required,omitempty"`
	Disabled      bool          `yaml:"disabled,omitempty" json:"disabled,omitempty"`
	ReadOnly      bool          `yaml:"readOnly,omitempty" json:"readOnly,omitempty"`
	ReadOnlyStyle ReadOnlyStyle `yaml:"readOnlyStyle,omitempty" json:"readOnlyStyle,omitempty"`
	Match         string        `yaml:"match,omitempty" json:"match,omitempty"`
}

// Multi reports whether the field holds several values.
func (f Field) Multi() bool {
	return f.Multiple || f.Type == TypeSearchSelectMulti || f.Type == TypeSelectMulti
}

// DisplayLabel returns the label, or the key when no label is set.
func (f Field) DisplayLabel() string {
	if strings.TrimSpace(f.Label) != "" {
		return f.Label
	}
	return f.Key
}

// Style returns the read-only style, defaulting to ReadOnlyValue.
func (f Field) Style() ReadOnlyStyle {
	if f.ReadOnlyStyle == "" {
		return ReadOnlyValue
	}
	return f.ReadOnlyStyle
}

// Validate checks a single field definition.
func (f Field) Validate() error {
	if strings.TrimSpace(f.Key) == "" {
		return invalid("field key is required")
	}
	if !f.Type.Known() {
		return invalid(fmt.Sprintf("field %q: unknown type %q", f.Key, f.Type))
	}
	switch f.ReadOnlyStyle {
	case "", ReadOnlyValue, ReadOnlyDisabled:
	default:
		return invalid(fmt.Sprintf("field %q: unknown readOnlyStyle %q", f.Key, f.ReadOnlyStyle))
	}
	switch strings.ToLower(strings.TrimSpace(f.Match)) {
	case "", string(option.MatchSubstring), string(option.MatchFuzzy):
	default:
		return invalid(fmt.Sprintf("field %q: unknown match %q", f.Key, f.Match))
	}
	if f.Remote == nil {
		return nil
	}
	if len(f.Options) > 0 {
		return invalid(fmt.Sprintf("field %q: options and remote are mutually exclusive", f.Key))
	}
	switch f.Remote.Kind {
	case RemoteHTTP:
		if strings.TrimSpace(f.Remote.URL) == "" {
			return invalid(fmt.Sprintf("field %q: http remote requires url", f.Key))
		}
	case RemoteSQLite:
		if strings.TrimSpace(f.Remote.Path) == "" {
			return invalid(fmt.Sprintf("field %q: sqlite remote requires path", f.Key))
		}
	default:
		return invalid(fmt.Sprintf("field %q: unknown remote kind %q", f.Key, f.Remote.Kind))
	}
	return nil
}

func invalid(msg string) error {
	return appErrors.New(appErrors.CodeInvalidField, msg, nil)
}
