package segmenter

import (
	"io"
	"strings"
	"unicode"

	"docchat/internal/models"
)

// Config controls how elements are combined into chunks.
type Config struct {
	MaxCharacters      int // soft target per chunk
	NewAfterNChars     int // hard ceiling before a forced boundary
	CombineUnderNChars int // chunks shorter than this are merged into a neighbor
}

// DefaultConfig returns the chunking parameters used for document Q&A.
func DefaultConfig() Config {
	return Config{
		MaxCharacters:      500,
		NewAfterNChars:     1500,
		CombineUnderNChars: 200,
	}
}

// Segmenter turns one raw document into an ordered sequence of chunks.
type Segmenter interface {
	Segment(r io.ReaderAt, size int64) ([]models.Chunk, error)
}

// Element is a typed span of document text before chunking.
type Element struct {
	Text string
	Type string
	Page int
}

// ChunkByTitle combines elements into chunks. A title element always starts
// a new chunk, growing chunks are cut at MaxCharacters, oversized elements
// are force-split at NewAfterNChars, and chunks shorter than
// CombineUnderNChars are merged into the preceding chunk. Sections may span
// pages; a chunk keeps the page number of its first element.
func ChunkByTitle(elements []Element, cfg Config) []models.Chunk {
	if cfg.MaxCharacters <= 0 {
		cfg.MaxCharacters = 500
	}
	if cfg.NewAfterNChars <= 0 {
		cfg.NewAfterNChars = 1500
	}

	var chunks []models.Chunk
	var current strings.Builder
	currentType := ""
	currentPage := 0

	flush := func() {
		if current.Len() == 0 {
			return
		}
		chunks = append(chunks, models.Chunk{
			Text:       current.String(),
			Type:       currentType,
			PageNumber: currentPage,
		})
		current.Reset()
		currentType = ""
		currentPage = 0
	}

	for _, el := range elements {
		text := strings.TrimSpace(el.Text)
		if text == "" {
			continue
		}

		if el.Type == models.ChunkTypeTitle && current.Len() > 0 {
			flush()
		}
		if current.Len() > 0 && current.Len()+len(text)+1 > cfg.MaxCharacters {
			flush()
		}

		for _, part := range splitOversized(text, cfg.NewAfterNChars) {
			if current.Len()+len(part)+1 > cfg.NewAfterNChars {
				flush()
			}
			if current.Len() == 0 {
				currentType = el.Type
				currentPage = el.Page
			} else {
				current.WriteString("\n")
			}
			current.WriteString(part)
		}
	}
	flush()

	return combineSmall(chunks, cfg.CombineUnderNChars)
}

// splitOversized cuts a single element that exceeds the hard ceiling,
// preferring word boundaries.
func splitOversized(text string, limit int) []string {
	if len(text) <= limit {
		return []string{text}
	}
	var parts []string
	for len(text) > limit {
		cut := strings.LastIndexFunc(text[:limit], unicode.IsSpace)
		if cut <= 0 {
			cut = limit
		}
		parts = append(parts, strings.TrimSpace(text[:cut]))
		text = strings.TrimSpace(text[cut:])
	}
	if text != "" {
		parts = append(parts, text)
	}
	return parts
}

// combineSmall merges undersized chunks into the chunk before them
// (or after, for a leading chunk).
func combineSmall(chunks []models.Chunk, minChars int) []models.Chunk {
	if minChars <= 0 || len(chunks) < 2 {
		return chunks
	}
	var out []models.Chunk
	for _, c := range chunks {
		if len(out) > 0 && len(c.Text) < minChars {
			out[len(out)-1].Text += "\n" + c.Text
			continue
		}
		if len(out) == 1 && len(out[0].Text) < minChars {
			c.Text = out[0].Text + "\n" + c.Text
			c.Type = out[0].Type
			c.PageNumber = out[0].PageNumber
			out[0] = c
			continue
		}
		out = append(out, c)
	}
	return out
}
