// Package session owns per-session state and the two user-triggered
// actions: processing uploaded documents and answering questions.
package session

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"docchat/internal/embedding"
	"docchat/internal/index"
	"docchat/internal/llmservice"
	"docchat/internal/models"
	"docchat/internal/prompt"
	"docchat/internal/segmenter"
)

// ErrNoDocuments is returned when a process action is triggered without any
// uploaded documents.
var ErrNoDocuments = errors.New("no documents uploaded")

// Session holds one user's passage index and conversation log. The index is
// nil until the first successful process action.
type Session struct {
	ID           string
	Index        *index.PassageIndex
	Conversation []models.Message

	mu sync.Mutex // serializes actions on this session
}

// History returns a copy of the conversation log, oldest first.
func (s *Session) History() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Message, len(s.Conversation))
	copy(out, s.Conversation)
	return out
}

// Manager owns all sessions and runs their actions against the shared
// segmenter, embedder and generator.
type Manager struct {
	mu       sync.Mutex
	sessions map[string]*Session

	segmenter segmenter.Segmenter
	embedder  embedding.Embedder
	generator llmservice.Generator
}

func NewManager(seg segmenter.Segmenter, emb embedding.Embedder, gen llmservice.Generator) *Manager {
	return &Manager{
		sessions:  make(map[string]*Session),
		segmenter: seg,
		embedder:  emb,
		generator: gen,
	}
}

// Session returns the session for id, creating it if needed.
func (m *Manager) Session(id string) *Session {
	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[id]; ok {
		return s
	}
	s := &Session{ID: id}
	m.sessions[id] = s
	return s
}

// Process segments the first uploaded document, embeds every chunk and
// replaces the session's passage index. On any error the previous index is
// left untouched. Returns the number of indexed passages.
func (m *Manager) Process(ctx context.Context, sess *Session, docs [][]byte) (int, error) {
	if len(docs) == 0 {
		return 0, ErrNoDocuments
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	// Only the first uploaded document is processed.
	doc := docs[0]
	chunks, err := m.segmenter.Segment(bytes.NewReader(doc), int64(len(doc)))
	if err != nil {
		return 0, fmt.Errorf("segment document: %w", err)
	}

	ix, err := index.Build(ctx, m.embedder, chunks)
	if err != nil {
		return 0, fmt.Errorf("build passage index: %w", err)
	}

	sess.Index = ix
	log.Info().Str("session", sess.ID).Int("passages", ix.Len()).Msg("passage index rebuilt")
	return ix.Len(), nil
}

// Ask retrieves the best-matching passage for the question, generates an
// answer and appends the {user, bot} pair to the conversation log. On any
// failure nothing is appended.
func (m *Manager) Ask(ctx context.Context, sess *Session, question string) (string, error) {
	sess.mu.Lock()
	defer sess.mu.Unlock()

	passage, err := sess.Index.Retrieve(ctx, m.embedder, question)
	if err != nil {
		return "", err
	}

	answer, err := m.generator.Generate(ctx, prompt.Build(question, passage))
	if err != nil {
		return "", fmt.Errorf("generate answer: %w", err)
	}

	sess.Conversation = append(sess.Conversation,
		models.Message{Role: models.RoleUser, Content: question},
		models.Message{Role: models.RoleBot, Content: answer},
	)
	return answer, nil
}
