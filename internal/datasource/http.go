package datasource

import (
	"context"
	"fmt"
	"html"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"github.com/microcosm-cc/bluemonday"

	appErrors "formbox/internal/errors"
	"formbox/internal/option"
)

const (
	defaultSearchParam = "q"
	defaultResultsPath = "data"
	maxResponseBytes   = 4 << 20
)

var (
	labelPolicyOnce sync.Once
	labelPolicy     *bluemonday.Policy
)

// HTTP queries a JSON endpoint for options.
//
// The search term is sent in SearchParam. The response is either a top-level
// array or an object whose ResultsPath (dotted) leads to one. Each element
// supplies ValueField and LabelField, falling back to id and name.
type HTTP struct {
	URL         string
	Method      string
	SearchParam string
	Params      map[string]string
	Limit       int
	ResultsPath string
	ValueField  string
	LabelField  string
	Client      *http.Client
}

// Query issues one request for term.
func (h *HTTP) Query(ctx context.Context, term string) ([]option.Option, error) {
	req, err := h.request(ctx, term)
	if err != nil {
		return nil, err
	}

	client := h.Client
	if client == nil {
		client = http.DefaultClient
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, appErrors.New(appErrors.CodeRemoteFetch, "query "+req.URL.Path, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	dec.UseNumber()
	var payload any
	if err := dec.Decode(&payload); err != nil {
		return nil, appErrors.New(appErrors.CodeRemoteDecode, "decode response", err)
	}

	opts := decodeResults(payload, h.ResultsPath, h.ValueField, h.LabelField)
	if h.Limit > 0 && len(opts) > h.Limit {
		opts = opts[:h.Limit]
	}
	return opts, nil
}

func (h *HTTP) request(ctx context.Context, term string) (*http.Request, error) {
	reqURL, err := url.Parse(h.URL)
	if err != nil {
		return nil, appErrors.New(appErrors.CodeInvalidField, "parse url", err)
	}
	q := reqURL.Query()
	keys := make([]string, 0, len(h.Params))
	for k := range h.Params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		q.Set(k, h.Params[k])
	}
	param := h.SearchParam
	if param == "" {
		param = defaultSearchParam
	}
	q.Set(param, term)
	if h.Limit > 0 {
		q.Set("limit", strconv.Itoa(h.Limit))
	}
	reqURL.RawQuery = q.Encode()

	method := strings.ToUpper(strings.TrimSpace(h.Method))
	if method == "" {
		method = http.MethodGet
	}
	req, err := http.NewRequestWithContext(ctx, method, reqURL.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

func decodeResults(payload any, path, valueField, labelField string) []option.Option {
	items := extractResults(payload, path)
	opts := make([]option.Option, 0, len(items))
	for _, item := range items {
		obj, ok := item.(map[string]any)
		if !ok {
			if s, ok := item.(string); ok && s != "" {
				opts = append(opts, option.New("", s))
			}
			continue
		}
		val := pickField(obj, valueField, "value", "id")
		if val == "" {
			continue
		}
		lbl := sanitizeLabel(pickField(obj, labelField, "label", "name"))
		opts = append(opts, option.New(lbl, val))
	}
	return opts
}

func extractResults(payload any, path string) []any {
	if list, ok := payload.([]any); ok && path == "" {
		return list
	}
	if path == "" {
		path = defaultResultsPath
	}
	cur := payload
	for _, segment := range strings.Split(path, ".") {
		node, ok := cur.(map[string]any)
		if !ok {
			return nil
		}
		cur = node[segment]
	}
	list, _ := cur.([]any)
	return list
}

// pickField resolves a dotted path, then the fallback keys in order.
func pickField(m map[string]any, path string, fallbacks ...string) string {
	if path != "" {
		var cur any = m
		for _, segment := range strings.Split(path, ".") {
			node, ok := cur.(map[string]any)
			if !ok {
				return ""
			}
			cur = node[segment]
		}
		return stringify(cur)
	}
	for _, key := range fallbacks {
		if s := stringify(m[key]); s != "" {
			return s
		}
	}
	return ""
}

func stringify(v any) string {
	switch typed := v.(type) {
	case nil:
		return ""
	case string:
		return typed
	case json.Number:
		return typed.String()
	default:
		return fmt.Sprint(typed)
	}
}

func sanitizeLabel(raw string) string {
	labelPolicyOnce.Do(func() {
		labelPolicy = bluemonday.StrictPolicy()
	})
	// StrictPolicy escapes entities; labels are shown as plain terminal text.
	return strings.TrimSpace(html.UnescapeString(labelPolicy.Sanitize(raw)))
}
