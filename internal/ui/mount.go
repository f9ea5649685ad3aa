package ui

import (
	"fmt"
	"net/http"
	"path/filepath"
	"time"

	"formbox/internal/combobox"
	"formbox/internal/datasource"
	"formbox/internal/dismiss"
	appErrors "formbox/internal/errors"
	"formbox/internal/form"
	"formbox/internal/option"
	"formbox/internal/selection"
)

// Widget is a mounted field.
type Widget interface {
	Key() string
	View() string
	Height() int
	Close()
}

// MountOptions carries the host's collaborators and tuning into Mount.
type MountOptions struct {
	// Sources overrides the data source of the field with the same key.
	Sources map[string]datasource.Source
	// HasError reports whether the field should render its error border.
	HasError func(key string) bool

	Hub        *dismiss.Hub
	Keys       *KeyMap
	HTTPClient *http.Client
	// BaseDir resolves relative SQLite paths, usually the directory of the
	// field definition file.
	BaseDir string

	Debounce    time.Duration
	BlurGrace   time.Duration
	Timeout     time.Duration
	Width       int
	MaxVisible  int
	RemoteLimit int
}

// Mount builds the widget for field. Selectable types mount a Select,
// read-only fields mount a ReadOnly display, and the remaining field types
// are rejected with errors.CodeUnsupportedField.
func Mount(field form.Field, store form.Store, opts MountOptions) (Widget, error) {
	if err := field.Validate(); err != nil {
		return nil, err
	}

	var searchable bool
	switch field.Type {
	case form.TypeSearchSelect, form.TypeSearchSelectMulti:
		searchable = true
	case form.TypeSelect, form.TypeSelectMulti:
		searchable = false
	case form.TypeText, form.TypeNumber, form.TypeDate, form.TypeCheckbox,
		form.TypeSwitch, form.TypeRadio, form.TypeMoney:
		return nil, unsupported(field)
	default:
		return nil, unsupported(field)
	}

	if field.ReadOnly {
		return NewReadOnly(field, store, field.Default).SetWidth(opts.Width), nil
	}

	src, err := sourceFor(field, opts)
	if err != nil {
		return nil, err
	}

	policy := selection.For(field.Multi())
	value := policy.Normalize(field.Default)
	if store != nil {
		if v, ok := store.Get(field.Key); ok {
			value = policy.Normalize(v)
		}
	}

	hasError := false
	if opts.HasError != nil {
		hasError = opts.HasError(field.Key)
	}

	return NewSelect(SelectConfig{
		Key:         field.Key,
		Label:       field.DisplayLabel(),
		Placeholder: field.Placeholder,
		Help:        field.Help,
		Required:    field.Required,
		HasError:    hasError,
		Combobox: combobox.Config{
			Match:    option.ParseMatch(field.Match),
			Multiple: field.Multi(),
			NoSearch: !searchable,
			Disabled: field.Disabled,
			Value:    value,
		},
		Source:     src,
		Store:      store,
		Hub:        opts.Hub,
		Keys:       opts.Keys,
		Debounce:   opts.Debounce,
		BlurGrace:  opts.BlurGrace,
		Timeout:    opts.Timeout,
		Width:      opts.Width,
		MaxVisible: opts.MaxVisible,
	}), nil
}

func unsupported(field form.Field) error {
	return appErrors.New(appErrors.CodeUnsupportedField,
		fmt.Sprintf("field %q: type %q has no selection widget", field.Key, field.Type), nil)
}

// sourceFor picks the data source: a caller override, then the field's
// remote definition, then its static options.
func sourceFor(field form.Field, opts MountOptions) (datasource.Source, error) {
	if src, ok := opts.Sources[field.Key]; ok && src != nil {
		return src, nil
	}
	match := option.ParseMatch(field.Match)
	if field.Remote == nil {
		return datasource.NewStatic([]option.Option(field.Options), match), nil
	}

	r := field.Remote
	limit := r.Limit
	if limit <= 0 {
		limit = opts.RemoteLimit
	}
	switch r.Kind {
	case form.RemoteHTTP:
		return &datasource.HTTP{
			URL:         r.URL,
			Method:      r.Method,
			SearchParam: r.SearchParam,
			Params:      r.Params,
			Limit:       limit,
			ResultsPath: r.ResultsPath,
			ValueField:  r.ValueField,
			LabelField:  r.LabelField,
			Client:      opts.HTTPClient,
		}, nil
	case form.RemoteSQLite:
		path := r.Path
		if !filepath.IsAbs(path) && opts.BaseDir != "" {
			path = filepath.Join(opts.BaseDir, path)
		}
		return &datasource.SQLite{
			Path:        path,
			Table:       r.Table,
			ValueColumn: r.ValueColumn,
			LabelColumn: r.LabelColumn,
			Limit:       limit,
		}, nil
	default:
		return nil, appErrors.New(appErrors.CodeInvalidField,
			fmt.Sprintf("field %q: unknown remote kind %q", field.Key, r.Kind), nil)
	}
}
