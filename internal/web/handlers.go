package web

import (
	"errors"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"docchat/internal/index"
	"docchat/internal/session"
)

const sessionCookie = "docchat_session"

// sessionFor resolves the caller's session from the cookie, issuing a fresh
// session id on first visit.
func (s *Server) sessionFor(w http.ResponseWriter, r *http.Request) *session.Session {
	if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
		return s.sessions.Session(c.Value)
	}
	id := uuid.NewString()
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    id,
		Path:     "/",
		HttpOnly: true,
	})
	return s.sessions.Session(id)
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)

	data := chatPage{
		Error:  r.URL.Query().Get("err"),
		Notice: r.URL.Query().Get("notice"),
	}
	for _, msg := range sess.History() {
		data.Messages = append(data.Messages, renderMessage(msg))
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := chatTemplate.Execute(w, data); err != nil {
		s.log.Error().Err(err).Msg("render chat page")
	}
}

func (s *Server) handleProcess(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)

	r.Body = http.MaxBytesReader(w, r.Body, s.maxUploadBytes)
	if err := r.ParseMultipartForm(32 << 20); err != nil {
		s.redirectError(w, r, "invalid upload: "+err.Error())
		return
	}
	defer r.MultipartForm.RemoveAll()

	var docs [][]byte
	for _, header := range r.MultipartForm.File["documents"] {
		file, err := header.Open()
		if err != nil {
			s.redirectError(w, r, "read upload: "+err.Error())
			return
		}
		data, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			s.redirectError(w, r, "read upload: "+err.Error())
			return
		}
		docs = append(docs, data)
	}

	count, err := s.sessions.Process(r.Context(), sess, docs)
	if err != nil {
		s.log.Warn().Err(err).Str("session", sess.ID).Msg("process failed")
		s.redirectError(w, r, err.Error())
		return
	}

	notice := "Processed " + strconv.Itoa(count) + " passages"
	http.Redirect(w, r, "/?notice="+url.QueryEscape(notice), http.StatusSeeOther)
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	sess := s.sessionFor(w, r)

	question := strings.TrimSpace(r.FormValue("question"))
	if question == "" {
		s.redirectError(w, r, "question must not be empty")
		return
	}

	if _, err := s.sessions.Ask(r.Context(), sess, question); err != nil {
		if errors.Is(err, index.ErrEmptyIndex) {
			s.redirectError(w, r, "upload a document and press Process before asking")
			return
		}
		s.log.Warn().Err(err).Str("session", sess.ID).Msg("ask failed")
		s.redirectError(w, r, err.Error())
		return
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (s *Server) redirectError(w http.ResponseWriter, r *http.Request, msg string) {
	http.Redirect(w, r, "/?err="+url.QueryEscape(msg), http.StatusSeeOther)
}
