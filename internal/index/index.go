// Package index holds the in-memory passage index built from the current
// document set and the dot-product retriever over it.
package index

import (
	"context"
	"errors"
	"fmt"

	"docchat/internal/embedding"
	"docchat/internal/models"
)

// ErrEmptyIndex is returned when retrieval is attempted before any document
// has been processed. It is distinct from a low-similarity result: a
// non-empty index always yields a best match.
var ErrEmptyIndex = errors.New("passage index is empty: no documents processed")

// Entry pairs one chunk's text with its embedding vector.
type Entry struct {
	Text   string
	Vector []float32
}

// PassageIndex is an ordered collection of (text, vector) pairs, rebuilt
// wholesale on every process action.
type PassageIndex struct {
	entries []Entry
}

// Build embeds every chunk in document mode, in order, and returns a fully
// populated index. A failure on any chunk fails the whole build; no partial
// index is ever returned.
func Build(ctx context.Context, emb embedding.Embedder, chunks []models.Chunk) (*PassageIndex, error) {
	if len(chunks) == 0 {
		return nil, fmt.Errorf("no chunks to index")
	}
	entries := make([]Entry, 0, len(chunks))
	for i, chunk := range chunks {
		vector, err := emb.Embed(ctx, chunk.Text, embedding.TaskDocument)
		if err != nil {
			return nil, fmt.Errorf("embed chunk %d: %w", i, err)
		}
		entries = append(entries, Entry{Text: chunk.Text, Vector: vector})
	}
	return &PassageIndex{entries: entries}, nil
}

// Len reports the number of indexed passages.
func (ix *PassageIndex) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}

// Dimension reports the embedding dimensionality of the index.
func (ix *PassageIndex) Dimension() int {
	if ix.Len() == 0 {
		return 0
	}
	return len(ix.entries[0].Vector)
}

// Retrieve embeds the question in query mode and returns the text of the
// entry with the highest dot-product similarity. Ties resolve to the entry
// appearing earlier in the index.
func (ix *PassageIndex) Retrieve(ctx context.Context, emb embedding.Embedder, question string) (string, error) {
	if ix.Len() == 0 {
		return "", ErrEmptyIndex
	}
	queryVector, err := emb.Embed(ctx, question, embedding.TaskQuery)
	if err != nil {
		return "", fmt.Errorf("embed question: %w", err)
	}

	best := 0
	bestScore := dot(ix.entries[0].Vector, queryVector)
	for i := 1; i < len(ix.entries); i++ {
		if score := dot(ix.entries[i].Vector, queryVector); score > bestScore {
			best = i
			bestScore = score
		}
	}
	return ix.entries[best].Text, nil
}

func dot(a, b []float32) float32 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	var sum float32
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}
