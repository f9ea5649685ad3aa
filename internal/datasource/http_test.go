package datasource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "formbox/internal/errors"
	"formbox/internal/option"
)

func TestHTTPQueryDataEnvelope(t *testing.T) {
	var gotQuery, gotTenant, gotLimit string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.Query().Get("q")
		gotTenant = r.URL.Query().Get("tenant")
		gotLimit = r.URL.Query().Get("limit")
		assert.Equal(t, "application/json", r.Header.Get("Accept"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[
			{"value":"utc","label":"UTC"},
			{"value":"cet","label":"<b>Central</b> European &amp; more"},
			{"id":7,"name":"Seven"},
			{"label":"missing value"}
		]}`))
	}))
	t.Cleanup(srv.Close)

	src := &HTTP{URL: srv.URL, Params: map[string]string{"tenant": "acme"}, Limit: 10}
	got, err := src.Query(context.Background(), "eu")
	require.NoError(t, err)

	assert.Equal(t, "eu", gotQuery)
	assert.Equal(t, "acme", gotTenant)
	assert.Equal(t, "10", gotLimit)
	assert.Equal(t, []option.Option{
		{Label: "UTC", Value: "utc"},
		{Label: "Central European & more", Value: "cet"},
		{Label: "Seven", Value: "7"},
	}, got)
}

func TestHTTPQueryTopLevelArrayAndCustomFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "blu", r.URL.Query().Get("search"))
		_, _ = w.Write([]byte(`[{"code":"B","meta":{"title":"Blue"}},{"code":"N","meta":{"title":"Navy"}},"plain"]`))
	}))
	t.Cleanup(srv.Close)

	src := &HTTP{
		URL:         srv.URL,
		SearchParam: "search",
		ValueField:  "code",
		LabelField:  "meta.title",
		Limit:       2,
	}
	got, err := src.Query(context.Background(), "blu")
	require.NoError(t, err)
	assert.Equal(t, []option.Option{{Label: "Blue", Value: "B"}, {Label: "Navy", Value: "N"}}, got)
}

func TestHTTPQueryNestedResultsPath(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"result":{"items":[{"value":"a","label":"A"}]}}`))
	}))
	t.Cleanup(srv.Close)

	src := &HTTP{URL: srv.URL, ResultsPath: "result.items"}
	got, err := src.Query(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, []option.Option{{Label: "A", Value: "a"}}, got)
}

func TestHTTPQueryErrors(t *testing.T) {
	t.Run("Status", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusInternalServerError)
		}))
		t.Cleanup(srv.Close)

		_, err := (&HTTP{URL: srv.URL}).Query(context.Background(), "x")
		require.Error(t, err)
		assert.True(t, appErrors.IsCode(err, appErrors.CodeRemoteFetch))
	})

	t.Run("Decode", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte(`{not json`))
		}))
		t.Cleanup(srv.Close)

		_, err := (&HTTP{URL: srv.URL}).Query(context.Background(), "x")
		require.Error(t, err)
		assert.True(t, appErrors.IsCode(err, appErrors.CodeRemoteDecode))
	})

	t.Run("BadURL", func(t *testing.T) {
		_, err := (&HTTP{URL: "://bad"}).Query(context.Background(), "x")
		require.Error(t, err)
	})
}
