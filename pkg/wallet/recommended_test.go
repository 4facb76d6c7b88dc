package wallet_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mintshell/pkg/memmint"
	"github.com/dmitrymomot/mintshell/pkg/wallet"
)

func TestRecommendedSources(t *testing.T) {
	t.Parallel()

	sources, err := wallet.RecommendedSources()
	require.NoError(t, err)
	require.NotEmpty(t, sources)

	var live, test int
	for _, s := range sources {
		assert.NotEmpty(t, s.Name)
		assert.Regexp(t, `^https://[^/]+`, s.URL)
		if s.Test {
			test++
		} else {
			live++
		}
	}
	assert.Positive(t, live)
	assert.Positive(t, test)

	// callers get their own copy
	sources[0].Name = "changed"
	again, err := wallet.RecommendedSources()
	require.NoError(t, err)
	assert.NotEqual(t, "changed", again[0].Name)
}

func TestParseRecommendedSources(t *testing.T) {
	t.Parallel()

	t.Run("normalizes urls", func(t *testing.T) {
		t.Parallel()

		got, err := wallet.ParseRecommendedSources([]byte(`
sources:
  - url: https://mint.example.com/
    name: Example
  - url: http://localhost:3338
    name: Local
    test: true
`))
		require.NoError(t, err)
		assert.Equal(t, []wallet.RecommendedSource{
			{URL: "https://mint.example.com", Name: "Example"},
			{URL: "http://localhost:3338", Name: "Local", Test: true},
		}, got)
	})

	t.Run("invalid url", func(t *testing.T) {
		t.Parallel()

		_, err := wallet.ParseRecommendedSources([]byte("sources:\n  - url: mint\n    name: Bad\n"))
		assert.ErrorIs(t, err, wallet.ErrInvalidSource)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		t.Parallel()

		_, err := wallet.ParseRecommendedSources([]byte("sources: [unterminated"))
		assert.Error(t, err)
	})
}

func TestActor_ListSourcesSuggestsRecommended(t *testing.T) {
	t.Parallel()

	all, err := wallet.RecommendedSources()
	require.NoError(t, err)
	known := all[1].URL

	w := memmint.New(memmint.WithSource(known, 0))
	h := start(t, w.Connector())
	h.init(t)

	id := h.submit(t, wallet.ListSources{})
	res := waitForRequest[wallet.SourcesResult](t, h.events.C(), id)
	require.Nil(t, res.Err)

	assert.Len(t, res.Recommended, len(all)-1)
	for _, r := range res.Recommended {
		assert.NotEqual(t, known, r.URL, "known sources are not suggested")
	}
}
