package retrieval

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedStore(t *testing.T) *Store {
	t.Helper()
	store, err := NewStore()
	require.NoError(t, err)

	err = store.Add(context.Background(),
		Entry{Term: "balay", Definition: "house", Example: "Dako ang balay."},
		Entry{Term: "lakat", Definition: "to walk"},
		Entry{Term: "kaon", Definition: "to eat"},
	)
	require.NoError(t, err)
	return store
}

func TestStore_AddAndCount(t *testing.T) {
	store := seedStore(t)
	assert.Equal(t, 3, store.Count())
}

func TestStore_Add_EmptyTerm(t *testing.T) {
	store, err := NewStore()
	require.NoError(t, err)

	err = store.Add(context.Background(), Entry{Term: "  ", Definition: "nothing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "term cannot be empty")
}

func TestStore_Search(t *testing.T) {
	store := seedStore(t)

	t.Run("exact term ranks first", func(t *testing.T) {
		matches, err := store.Search(context.Background(), "balay", 3)
		require.NoError(t, err)
		require.NotEmpty(t, matches)
		assert.Equal(t, "balay", matches[0].Entry.Term)
		assert.Equal(t, "house", matches[0].Entry.Definition)
		assert.Equal(t, "Dako ang balay.", matches[0].Entry.Example)
	})

	t.Run("topK clamps to collection size", func(t *testing.T) {
		matches, err := store.Search(context.Background(), "balay", 10)
		require.NoError(t, err)
		assert.Len(t, matches, 3)
	})

	t.Run("empty query rejected", func(t *testing.T) {
		_, err := store.Search(context.Background(), "   ", 3)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "query cannot be empty")
	})

	t.Run("empty store returns no matches", func(t *testing.T) {
		empty, err := NewStore()
		require.NoError(t, err)

		matches, err := empty.Search(context.Background(), "balay", 3)
		require.NoError(t, err)
		assert.Empty(t, matches)
	})
}

func TestStore_Load(t *testing.T) {
	t.Run("valid dictionary", func(t *testing.T) {
		store, err := NewStore()
		require.NoError(t, err)

		input := `{"term": "balay", "definition": "house"}

{"term": "lakat", "definition": "to walk", "example": "Lakat na kita."}
`
		loaded, err := store.Load(context.Background(), strings.NewReader(input))
		require.NoError(t, err)
		assert.Equal(t, 2, loaded)
		assert.Equal(t, 2, store.Count())
	})

	t.Run("malformed line aborts load", func(t *testing.T) {
		store, err := NewStore()
		require.NoError(t, err)

		input := `{"term": "balay", "definition": "house"}
{not json}
`
		loaded, err := store.Load(context.Background(), strings.NewReader(input))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "line 2")
		assert.Equal(t, 1, loaded)
	})
}

func TestLocalTrigramEmbedding(t *testing.T) {
	a, err := localTrigramEmbedding(context.Background(), "balay")
	require.NoError(t, err)
	b, err := localTrigramEmbedding(context.Background(), "Balay ")
	require.NoError(t, err)

	// Case folding and trimming make the vectors identical.
	assert.Equal(t, a, b)

	// Vectors are L2 normalized.
	var norm float64
	for _, v := range a {
		norm += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, norm, 1e-6)

	short, err := localTrigramEmbedding(context.Background(), "ab")
	require.NoError(t, err)
	assert.Len(t, short, embeddingDims)
}
