package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/confessio/internal/chat"
	"github.com/MrSnakeDoc/confessio/internal/domain"
	apperr "github.com/MrSnakeDoc/confessio/internal/errors"
	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/confessio/internal/logger"
	"github.com/MrSnakeDoc/confessio/internal/retrieval"
)

type openSessionRequest struct {
	Context       domain.ContextKind `json:"context" validate:"omitempty,oneof=confession bible hymn free"`
	RefID         string             `json:"refId"`
	InitialPrompt string             `json:"initialPrompt"`
}

type sendRequest struct {
	Text string `json:"text" validate:"required"`
	// Display replaces Text in the transcript when set.
	Display string `json:"display"`
}

type hymnLookupRequest struct {
	Query string `json:"query" validate:"required"`
}

type contextView struct {
	Kind  domain.ContextKind `json:"kind"`
	Title string             `json:"title,omitempty"`
	RefID string             `json:"refId,omitempty"`
}

type sessionView struct {
	ID         string         `json:"id"`
	Context    contextView    `json:"context"`
	Connected  bool           `json:"connected"`
	Busy       bool           `json:"busy"`
	LastActive time.Time      `json:"lastActive"`
	Messages   []chat.Message `json:"messages"`
}

func viewSession(s *chat.Session) sessionView {
	subject := s.Subject()
	return sessionView{
		ID:         s.ID(),
		Context:    contextView{Kind: subject.Kind(), Title: subject.Title(), RefID: subject.RefID()},
		Connected:  s.Connected(),
		Busy:       s.Busy(),
		LastActive: s.LastActive(),
		Messages:   s.Messages(),
	}
}

// studyContext resolves the subject of a new session against the catalog.
func studyContext(d deps.Deps, kind domain.ContextKind, refID string) (domain.StudyContext, error) {
	if kind == "" || kind == domain.ContextFree {
		return domain.FreeContext{}, nil
	}
	if refID == "" {
		return nil, apperr.ValidationWithDetails("validation failed", map[string]string{"refId": "is required"})
	}

	switch kind {
	case domain.ContextConfession:
		if c, ok := d.Catalog.Confession(refID); ok {
			return domain.ConfessionContext{Confession: c}, nil
		}
	case domain.ContextBible:
		if v, ok := d.Catalog.Bible(refID); ok {
			return domain.BibleContext{Version: v}, nil
		}
	case domain.ContextHymn:
		if h, ok := d.Catalog.Hymn(refID); ok {
			return domain.HymnContext{Hymn: h}, nil
		}
	default:
		return nil, apperr.Validationf("unknown context %q", kind)
	}
	return nil, apperr.NotFoundf("%s %q not found", kind, refID)
}

func openAndReply(w http.ResponseWriter, r *http.Request, d deps.Deps, subject domain.StudyContext, initialPrompt string) {
	s, err := d.Chat.Open(r.Context(), subject, initialPrompt, nil)
	if err != nil {
		writeError(w, r, d, err)
		return
	}
	w.Header().Set("Location", "/api/chat/sessions/"+s.ID())
	writeJSON(w, http.StatusCreated, viewSession(s))
}

// OpenSession starts a chat about a catalog entry, or a free chat. The
// opening reply is part of the response.
func OpenSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req openSessionRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		subject, err := studyContext(d, req.Context, req.RefID)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		openAndReply(w, r, d, subject, req.InitialPrompt)
	}
}

// HymnLookup opens a free chat looking a hymn up in the extended library.
func HymnLookup(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req hymnLookupRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		text, err := retrieval.HymnPrompt(req.Query)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		openAndReply(w, r, d, domain.FreeContext{}, text)
	}
}

// BibleRead opens a chat reading a chapter or a reading list in a translation.
func BibleRead(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req retrieval.ReadRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		text, version, err := d.Retrieval.BiblePrompt(r.Context(), req)
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		openAndReply(w, r, d, domain.BibleContext{Version: version}, text)
	}
}

func GetSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		s, err := d.Chat.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		writeJSON(w, http.StatusOK, viewSession(s))
	}
}

func CloseSession(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Chat.Close(chi.URLParam(r, "id"))
		w.WriteHeader(http.StatusNoContent)
	}
}

// SendMessage streams the reply to one message as server-sent events.
func SendMessage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req sendRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		s, err := d.Chat.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		stream(w, r, d, s, func(onChunk chat.ChunkFunc) (chat.Message, error) {
			return s.Send(r.Context(), req.Text, req.Display, onChunk)
		})
	}
}

// NavigateTOC streams the text of one outline entry of the document in study.
func NavigateTOC(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req referenceRequest
		if err := decodeJSON(w, r, d, &req); err != nil {
			writeError(w, r, d, err)
			return
		}
		s, err := d.Chat.Get(chi.URLParam(r, "id"))
		if err != nil {
			writeError(w, r, d, err)
			return
		}
		stream(w, r, d, s, func(onChunk chat.ChunkFunc) (chat.Message, error) {
			return s.NavigateTOC(r.Context(), req.Reference, onChunk)
		})
	}
}

// sseWriter writes server-sent events. Headers go out with the first event,
// so that errors raised before any chunk can still be plain JSON.
type sseWriter struct {
	w       http.ResponseWriter
	rc      *http.ResponseController
	started bool
}

func (e *sseWriter) start() {
	if e.started {
		return
	}
	e.started = true
	// The stream outlives the server write timeout.
	_ = e.rc.SetWriteDeadline(time.Time{})
	h := e.w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")
	e.w.WriteHeader(http.StatusOK)
}

func (e *sseWriter) event(name string, v any) error {
	e.start()
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := fmt.Fprintf(e.w, "event: %s\ndata: %s\n\n", name, data); err != nil {
		return err
	}
	return e.rc.Flush()
}

type chunkEvent struct {
	Text    string                   `json:"text"`
	Sources []domain.GroundingSource `json:"sources,omitempty"`
}

type doneEvent struct {
	Message chat.Message `json:"message"`
}

func stream(w http.ResponseWriter, r *http.Request, d deps.Deps, s *chat.Session, send func(chat.ChunkFunc) (chat.Message, error)) {
	sse := &sseWriter{w: w, rc: http.NewResponseController(w)}
	log := d.Logger.With(logger.String("session", s.ID()))

	msg, err := send(func(m chat.Message) {
		if werr := sse.event("chunk", chunkEvent{Text: m.Text, Sources: m.Sources}); werr != nil {
			log.Debug("failed to write chunk", logger.Error(werr))
		}
	})

	switch {
	case err == nil:
		_ = sse.event("done", doneEvent{Message: msg})
	case msg.IsError:
		// The reply failed; the bubble is in the transcript.
		_ = sse.event("error", doneEvent{Message: msg})
	case !sse.started:
		writeError(w, r, d, err)
	default:
		log.Warn("chat stream failed", logger.Error(err))
		_ = sse.event("error", doneEvent{Message: chat.Message{Role: chat.RoleModel, Text: chat.MsgError, IsError: true}})
	}
}
