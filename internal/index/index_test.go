package index_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docchat/internal/embedding"
	"docchat/internal/index"
	"docchat/internal/models"
)

// fakeEmbedder returns canned vectors per text in document mode and a fixed
// query vector in query mode.
type fakeEmbedder struct {
	vectors map[string][]float32
	query   []float32
	failOn  string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string, task embedding.TaskType) ([]float32, error) {
	if task == embedding.TaskQuery {
		return f.query, nil
	}
	if text == f.failOn {
		return nil, errors.New("quota exceeded")
	}
	v, ok := f.vectors[text]
	if !ok {
		return nil, errors.New("unexpected text: " + text)
	}
	return v, nil
}

func chunksOf(texts ...string) []models.Chunk {
	chunks := make([]models.Chunk, len(texts))
	for i, t := range texts {
		chunks[i] = models.Chunk{Text: t, Type: models.ChunkTypeNarrativeText, PageNumber: 1}
	}
	return chunks
}

func TestBuildIndexesEveryChunk(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"one":   {1, 0},
		"two":   {0, 1},
		"three": {0.7, 0.7},
	}}

	ix, err := index.Build(context.Background(), emb, chunksOf("one", "two", "three"))
	require.NoError(t, err)
	assert.Equal(t, 3, ix.Len())
	assert.Equal(t, 2, ix.Dimension())
}

func TestBuildFailsWholesale(t *testing.T) {
	emb := &fakeEmbedder{
		vectors: map[string][]float32{"one": {1, 0}, "two": {0, 1}},
		failOn:  "two",
	}

	ix, err := index.Build(context.Background(), emb, chunksOf("one", "two"))
	assert.Error(t, err)
	assert.Nil(t, ix)
}

func TestBuildRejectsEmptyChunks(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float32{}}
	_, err := index.Build(context.Background(), emb, nil)
	assert.Error(t, err)
}

func TestRetrieveBestDotProduct(t *testing.T) {
	emb := &fakeEmbedder{
		vectors: map[string][]float32{
			"chunk one":   {1, 0},
			"chunk two":   {0, 1},
			"chunk three": {0.7, 0.7},
		},
		query: []float32{1, 0},
	}

	ix, err := index.Build(context.Background(), emb, chunksOf("chunk one", "chunk two", "chunk three"))
	require.NoError(t, err)

	// dot products: 1, 0, 0.7
	text, err := ix.Retrieve(context.Background(), emb, "which chunk?")
	require.NoError(t, err)
	assert.Equal(t, "chunk one", text)
}

func TestRetrieveIsDeterministic(t *testing.T) {
	emb := &fakeEmbedder{
		vectors: map[string][]float32{"a": {0.4, 0.1}, "b": {0.3, 0.9}},
		query:   []float32{0.5, 0.5},
	}
	ix, err := index.Build(context.Background(), emb, chunksOf("a", "b"))
	require.NoError(t, err)

	first, err := ix.Retrieve(context.Background(), emb, "q")
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		got, err := ix.Retrieve(context.Background(), emb, "q")
		require.NoError(t, err)
		assert.Equal(t, first, got)
	}
}

func TestRetrieveTieKeepsEarlierEntry(t *testing.T) {
	emb := &fakeEmbedder{
		vectors: map[string][]float32{
			"early": {1, 0},
			"late":  {1, 0},
		},
		query: []float32{1, 0},
	}
	ix, err := index.Build(context.Background(), emb, chunksOf("early", "late"))
	require.NoError(t, err)

	text, err := ix.Retrieve(context.Background(), emb, "q")
	require.NoError(t, err)
	assert.Equal(t, "early", text)
}

func TestRetrieveEmptyIndex(t *testing.T) {
	emb := &fakeEmbedder{query: []float32{1, 0}}

	var ix *index.PassageIndex
	_, err := ix.Retrieve(context.Background(), emb, "q")
	assert.ErrorIs(t, err, index.ErrEmptyIndex)
}
