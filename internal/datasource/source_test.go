package datasource

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appErrors "formbox/internal/errors"
	"formbox/internal/option"
)

var colors = []option.Option{
	{Label: "Red", Value: "red"},
	{Label: "Dark Red", Value: "dark-red"},
	{Label: "Blue", Value: "blue"},
	{Label: "Green", Value: "green"},
}

func TestStaticQuery(t *testing.T) {
	src := NewStatic(append(colors, option.Option{Label: "Duplicate", Value: "red"}), option.MatchSubstring)

	all, err := src.Query(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, all, 4, "duplicate values are dropped")

	got, err := src.Query(context.Background(), "RE")
	require.NoError(t, err)
	assert.Equal(t, []string{"red", "dark-red", "green"}, values(got))

	assert.False(t, Remote(src))
	assert.Len(t, src.Options(), 4)
}

func TestStaticFuzzyQuery(t *testing.T) {
	src := NewStatic(colors, option.MatchFuzzy)
	got, err := src.Query(context.Background(), "drd")
	require.NoError(t, err)
	assert.Equal(t, []string{"dark-red"}, values(got))
	assert.Equal(t, option.MatchFuzzy, src.Match())
}

func TestFetchWrapsFailures(t *testing.T) {
	t.Run("Failure", func(t *testing.T) {
		src := Func(func(context.Context, string) ([]option.Option, error) {
			return nil, errors.New("connection refused")
		})
		_, err := Fetch(context.Background(), src, "re", time.Second)
		require.Error(t, err)
		assert.True(t, appErrors.IsCode(err, appErrors.CodeRemoteFetch))
	})

	t.Run("Timeout", func(t *testing.T) {
		src := Func(func(ctx context.Context, _ string) ([]option.Option, error) {
			<-ctx.Done()
			return nil, ctx.Err()
		})
		_, err := Fetch(context.Background(), src, "re", 10*time.Millisecond)
		require.Error(t, err)
		assert.True(t, appErrors.IsCode(err, appErrors.CodeRemoteTimeout))
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("StructuredErrorPassesThrough", func(t *testing.T) {
		src := Func(func(context.Context, string) ([]option.Option, error) {
			return nil, appErrors.New(appErrors.CodeRemoteDecode, "decode", errors.New("bad json"))
		})
		_, err := Fetch(context.Background(), src, "", 0)
		assert.True(t, appErrors.IsCode(err, appErrors.CodeRemoteDecode))
	})

	t.Run("NilSource", func(t *testing.T) {
		_, err := Fetch(context.Background(), nil, "", 0)
		assert.True(t, appErrors.IsCode(err, appErrors.CodeRemoteFetch))
	})
}

func TestFetchDedupesResults(t *testing.T) {
	src := Func(func(context.Context, string) ([]option.Option, error) {
		return []option.Option{{Label: "Red", Value: "red"}, {Label: "Red again", Value: "red"}}, nil
	})
	got, err := Fetch(context.Background(), src, "r", time.Second)
	require.NoError(t, err)
	assert.Equal(t, []option.Option{{Label: "Red", Value: "red"}}, got)
	assert.True(t, Remote(src))
}

func values(opts []option.Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}
