package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"iter"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/MrSnakeDoc/confessio/internal/catalog"
	"github.com/MrSnakeDoc/confessio/internal/chat"
	"github.com/MrSnakeDoc/confessio/internal/config"
	"github.com/MrSnakeDoc/confessio/internal/domain"
	"github.com/MrSnakeDoc/confessio/internal/generation"
	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/confessio/internal/index"
	"github.com/MrSnakeDoc/confessio/internal/lexer"
	"github.com/MrSnakeDoc/confessio/internal/logger"
	"github.com/MrSnakeDoc/confessio/internal/notebook"
	"github.com/MrSnakeDoc/confessio/internal/prefs"
	"github.com/MrSnakeDoc/confessio/internal/retrieval"
	"github.com/MrSnakeDoc/confessio/internal/search"
	"github.com/MrSnakeDoc/confessio/internal/store/memory"
	"github.com/MrSnakeDoc/confessio/internal/validation"
)

func TestMain(m *testing.M) {
	// bleve starts its analysis workers at init.
	goleak.VerifyTestMain(m,
		goleak.IgnoreCurrent(),
		goleak.IgnoreTopFunction("go.opencensus.io/stats/view.(*worker).start"),
	)
}

// fakeBackend answers every single-turn request with reply(req) and
// streams chat replies word by word. A chat message "fail" breaks the stream.
type fakeBackend struct {
	mu      sync.Mutex
	reply    func(req generation.Request) string
	requests []generation.Request
}

func (f *fakeBackend) Generate(_ context.Context, req generation.Request) (*generation.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	if f.reply == nil {
		return &generation.Response{Text: "generated text"}, nil
	}
	return &generation.Response{Text: f.reply(req)}, nil
}

func (f *fakeBackend) NewChat(context.Context, generation.ChatConfig) (generation.ChatSession, error) {
	return fakeChat{}, nil
}

func (f *fakeBackend) Configured() bool { return true }

type fakeChat struct{}

func (fakeChat) SendStream(_ context.Context, text string) iter.Seq2[generation.Chunk, error] {
	return func(yield func(generation.Chunk, error) bool) {
		if text == "fail" {
			yield(generation.Chunk{}, errors.New("stream broke"))
			return
		}
		for _, w := range []string{"Grace ", "alone."} {
			if !yield(generation.Chunk{Text: w}, nil) {
				return
			}
		}
	}
}

type testServer struct {
	handler http.Handler
	deps    deps.Deps
}

func newTestServer(t *testing.T, backend generation.Backend, cfg *config.Config) *testServer {
	t.Helper()

	cat, err := catalog.Parse(catalog.Embedded())
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	idx := index.NewMemoryIndex()
	idx.Update(cat)

	searchIdx, err := search.NewIndex(logger.Nop())
	if err != nil {
		t.Fatalf("NewIndex() error = %v", err)
	}
	t.Cleanup(func() { _ = searchIdx.Close() })
	if err := searchIdx.Rebuild(cat); err != nil {
		t.Fatalf("Rebuild() error = %v", err)
	}

	kv := memory.New()
	nb := notebook.New(kv, logger.Nop())
	pf := prefs.New(kv, idx.HasBible)

	if cfg == nil {
		cfg = &config.Config{}
	}
	if cfg.RateLimitBurst == 0 {
		cfg.RateLimitBurst, cfg.RateLimitPerMin = 1000, 1000
	}
	if cfg.RequestTimeout == 0 {
		cfg.RequestTimeout = 5 * time.Second
	}

	d := deps.Deps{
		Logger:    logger.Nop(),
		StartTime: time.Now(),
		Version:   "test",
		Store:     kv,
		Catalog:   idx,
		Search:    searchIdx,
		Notebook:  nb,
		Prefs:     pf,
		Retrieval: retrieval.New(retrieval.Options{
			Backend:        backend,
			Cache:          kv,
			Catalog:        idx,
			Notebook:       nb,
			Prefs:          pf,
			RetrievalModel: "retrieval-model",
			ContentModel:   "content-model",
			DailyTTL:       time.Hour,
			Location:       time.UTC,
			Logger:         logger.Nop(),
		}),
		Chat:          chat.NewManager(backend, "chat-model", logger.Nop()),
		Lexer:         lexer.NewProvider(cat),
		Generation:    backend,
		Validator:     validation.New(),
		PublicURL:     "https://study.example.com/",
		ReloadTrigger: make(chan struct{}, 1),
	}

	return &testServer{handler: NewRouter(cfg, logger.Nop(), d), deps: d}
}

func (s *testServer) do(t *testing.T, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var r *http.Request
	if body == "" {
		r = httptest.NewRequest(method, path, nil)
	} else {
		r = httptest.NewRequest(method, path, strings.NewReader(body))
		r.Header.Set("Content-Type", "application/json")
	}
	r.RemoteAddr = "127.0.0.1:40000"
	w := httptest.NewRecorder()
	s.handler.ServeHTTP(w, r)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("Unmarshal(%q) error = %v", w.Body.String(), err)
	}
	return v
}

type errorBody struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details"`
	} `json:"error"`
}

func TestOpsRoutes(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, nil)

	if w := s.do(t, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d, want %d", w.Code, http.StatusOK)
	}

	w := s.do(t, http.MethodGet, "/readyz", "")
	if w.Code != http.StatusOK || !decode[struct{ Ready bool }](t, w).Ready {
		t.Errorf("GET /readyz = %d %s", w.Code, w.Body)
	}

	w = s.do(t, http.MethodGet, "/infra", "")
	infra := decode[struct {
		Mode       string                     `json:"mode"`
		Components map[string]struct{ OK bool } `json:"components"`
	}](t, w)
	if infra.Mode != "full" {
		t.Errorf("infra mode = %q, want %q (%s)", infra.Mode, "full", w.Body)
	}
	for _, name := range []string{"catalog", "store", "search", "generation"} {
		if !infra.Components[name].OK {
			t.Errorf("component %s not ok", name)
		}
	}

	if w := s.do(t, http.MethodPost, "/reload", ""); w.Code != http.StatusAccepted {
		t.Errorf("first POST /reload = %d, want %d", w.Code, http.StatusAccepted)
	}
	if w := s.do(t, http.MethodPost, "/reload", ""); w.Code != http.StatusTooManyRequests {
		t.Errorf("second POST /reload = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
}

func TestOpsRoutesRestricted(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, nil)
	s.deps.AllowedCIDRS = []string{"10.0.0.0/8"}
	s.handler = NewRouter(&config.Config{RequestTimeout: time.Second, RateLimitBurst: 10, RateLimitPerMin: 10}, logger.Nop(), s.deps)

	if w := s.do(t, http.MethodGet, "/infra", ""); w.Code != http.StatusForbidden {
		t.Errorf("GET /infra from outside = %d, want %d", w.Code, http.StatusForbidden)
	}
	if w := s.do(t, http.MethodGet, "/healthz", ""); w.Code != http.StatusOK {
		t.Errorf("GET /healthz = %d, want %d", w.Code, http.StatusOK)
	}
}

func TestCatalogRoutes(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, nil)

	tests := []struct {
		path string
		want int
		code string
	}{
		{"/api/catalog/confessions", http.StatusOK, ""},
		{"/api/catalog/confessions?q=westminster", http.StatusOK, ""},
		{"/api/catalog/confessions/westminster-confession", http.StatusOK, ""},
		{"/api/catalog/confessions/unknown", http.StatusNotFound, "NOT_FOUND"},
		{"/api/catalog/confessions/heidelberg/navigation", http.StatusOK, ""},
		{"/api/catalog/bibles", http.StatusOK, ""},
		{"/api/catalog/books?testament=old", http.StatusOK, ""},
		{"/api/catalog/books?testament=Middle", http.StatusBadRequest, "VALIDATION"},
		{"/api/catalog/hymns?q=grace", http.StatusOK, ""},
		{"/api/catalog/theologians", http.StatusOK, ""},
		{"/api/catalog/timeline", http.StatusOK, ""},
		{"/api/catalog/connections", http.StatusOK, ""},
		{"/api/catalog/systematics", http.StatusOK, ""},
		{"/api/catalog/topics", http.StatusOK, ""},
		{"/api/catalog/search?q=westminster&type=confession", http.StatusOK, ""},
		{"/api/catalog/search?q=calvin&limit=many", http.StatusBadRequest, "VALIDATION"},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := s.do(t, http.MethodGet, tt.path, "")
			if w.Code != tt.want {
				t.Fatalf("GET %s = %d, want %d (%s)", tt.path, w.Code, tt.want, w.Body)
			}
			if tt.code != "" {
				if got := decode[errorBody](t, w).Error.Code; got != tt.code {
					t.Errorf("error code = %q, want %q", got, tt.code)
				}
			}
		})
	}

	books := decode[[]domain.BibleBook](t, s.do(t, http.MethodGet, "/api/catalog/books?testament=Old", ""))
	if len(books) != 39 {
		t.Errorf("Old Testament books = %d, want 39", len(books))
	}

	hits := decode[[]search.Hit](t, s.do(t, http.MethodGet, "/api/catalog/search?q=westminster&type=confession", ""))
	if len(hits) == 0 {
		t.Fatal("search returned no hits")
	}
	for _, h := range hits {
		if h.Type != search.DocConfession {
			t.Errorf("hit type = %q, want confession", h.Type)
		}
	}
}

func TestNotebookRoutes(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, nil)

	w := s.do(t, http.MethodPost, "/api/notebook", `{"type":"scripture","refId":"John 3:16","title":"John 3:16","tags":["Gospel"]}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("POST /api/notebook = %d (%s)", w.Code, w.Body)
	}
	item := decode[domain.SavedItem](t, w)
	if item.ID == "" || item.Timestamp == 0 {
		t.Errorf("saved item = %+v, want id and timestamp", item)
	}

	w = s.do(t, http.MethodPost, "/api/notebook", `{"type":"scripture","refId":"John 3:16","title":"John 3:16 again"}`)
	if w.Code != http.StatusOK {
		t.Errorf("second POST /api/notebook = %d, want %d", w.Code, http.StatusOK)
	}
	if again := decode[domain.SavedItem](t, w); again.ID != item.ID || again.Title != item.Title {
		t.Errorf("second POST /api/notebook = %+v, want existing item %s", again, item.ID)
	}

	savedPath := "/api/notebook/saved?type=scripture&refId=" + url.QueryEscape("John 3:16")
	if got := decode[struct{ Saved bool }](t, s.do(t, http.MethodGet, savedPath, "")); !got.Saved {
		t.Error("saved = false after save")
	}

	if w := s.do(t, http.MethodPut, "/api/notebook/"+item.ID+"/note", `{"note":"memorize"}`); w.Code != http.StatusNoContent {
		t.Errorf("PUT note = %d (%s)", w.Code, w.Body)
	}
	if got := decode[domain.SavedItem](t, s.do(t, http.MethodGet, "/api/notebook/"+item.ID, "")); got.UserNotes != "memorize" {
		t.Errorf("UserNotes = %q, want %q", got.UserNotes, "memorize")
	}

	if got := decode[[]domain.SavedItem](t, s.do(t, http.MethodGet, "/api/notebook?type=hymn", "")); len(got) != 0 {
		t.Errorf("hymn items = %d, want 0", len(got))
	}

	if w := s.do(t, http.MethodDelete, "/api/notebook/"+item.ID, ""); w.Code != http.StatusNoContent {
		t.Errorf("DELETE = %d", w.Code)
	}
	if w := s.do(t, http.MethodDelete, "/api/notebook/"+item.ID, ""); w.Code != http.StatusNoContent {
		t.Errorf("second DELETE = %d, want no-op", w.Code)
	}
	if got := decode[struct{ Saved bool }](t, s.do(t, http.MethodGet, savedPath, "")); got.Saved {
		t.Error("saved = true after delete")
	}
	if w := s.do(t, http.MethodGet, "/api/notebook/"+item.ID, ""); w.Code != http.StatusNotFound {
		t.Errorf("GET removed item = %d, want %d", w.Code, http.StatusNotFound)
	}

	toggle := `{"type":"hymn","refId":"amazing-grace","title":"Amazing Grace"}`
	if got := decode[struct{ Saved bool }](t, s.do(t, http.MethodPost, "/api/notebook/toggle", toggle)); !got.Saved {
		t.Error("first toggle saved = false")
	}
	if got := decode[struct{ Saved bool }](t, s.do(t, http.MethodPost, "/api/notebook/toggle", toggle)); got.Saved {
		t.Error("second toggle saved = true")
	}
}

func TestNotebookRejectsBadBodies(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, nil)

	tests := []struct {
		name  string
		body  string
		field string
	}{
		{"unknown type", `{"type":"sermon","refId":"x","title":"x"}`, "type"},
		{"missing title", `{"type":"hymn","refId":"x"}`, "title"},
		{"unknown field", `{"type":"hymn","refId":"x","title":"x","extra":1}`, ""},
		{"not json", `{`, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodPost, "/api/notebook", tt.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("POST = %d, want %d", w.Code, http.StatusBadRequest)
			}
			body := decode[errorBody](t, w)
			if body.Error.Code != "VALIDATION" {
				t.Errorf("code = %q, want VALIDATION", body.Error.Code)
			}
			if tt.field != "" && body.Error.Details[tt.field] == "" {
				t.Errorf("details = %v, want an entry for %q", body.Error.Details, tt.field)
			}
		})
	}
}

func TestPreferencesRoutes(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, nil)

	got := decode[prefs.Preferences](t, s.do(t, http.MethodGet, "/api/preferences", ""))
	if got.Theme != prefs.ThemeLight || got.DefaultBibleID != "esv" {
		t.Errorf("defaults = %+v", got)
	}

	got = decode[prefs.Preferences](t, s.do(t, http.MethodPut, "/api/preferences", `{"theme":"dark","defaultBibleId":"geneva-bible"}`))
	if got.Theme != prefs.ThemeDark || got.DefaultBibleID != "geneva-bible" {
		t.Errorf("after update = %+v", got)
	}

	for _, body := range []string{`{"theme":"sepia"}`, `{"defaultBibleId":"kjv-1900"}`} {
		if w := s.do(t, http.MethodPut, "/api/preferences", body); w.Code != http.StatusBadRequest {
			t.Errorf("PUT %s = %d, want %d", body, w.Code, http.StatusBadRequest)
		}
	}

	got = decode[prefs.Preferences](t, s.do(t, http.MethodDelete, "/api/preferences", ""))
	if got.Theme != prefs.ThemeLight || got.DefaultBibleID != "esv" {
		t.Errorf("after reset = %+v", got)
	}
}

func TestRetrievalRoutes(t *testing.T) {
	backend := &fakeBackend{reply: func(req generation.Request) string {
		if req.JSON {
			return "this is not json"
		}
		return "For God so loved the world"
	}}
	s := newTestServer(t, backend, nil)

	w := s.do(t, http.MethodPost, "/api/retrieve/verbatim", `{"reference":"John 3:16","kind":"scripture"}`)
	p := decode[domain.Passage](t, w)
	if w.Code != http.StatusOK || p.Text != "For God so loved the world" || p.Version == "" {
		t.Errorf("verbatim = %d %+v", w.Code, p)
	}

	if w := s.do(t, http.MethodPost, "/api/retrieve/verbatim", `{"reference":"John 3:16","kind":"poem"}`); w.Code != http.StatusBadRequest {
		t.Errorf("verbatim with unknown kind = %d, want %d", w.Code, http.StatusBadRequest)
	}
	if w := s.do(t, http.MethodPost, "/api/retrieve/verbatim", `{"reference":"John 3:16","kind":"scripture","bibleId":"nope"}`); w.Code != http.StatusNotFound {
		t.Errorf("verbatim with unknown bible = %d, want %d", w.Code, http.StatusNotFound)
	}

	w = s.do(t, http.MethodPost, "/api/search", `{"term":"justification"}`)
	resp := decode[domain.SearchResponse](t, w)
	if w.Code != http.StatusOK || resp.Results == nil || len(resp.Results) != 0 || resp.RelatedTerms == nil {
		t.Errorf("malformed structured search = %d %s, want empty result", w.Code, w.Body)
	}

	for _, tt := range []struct{ path, body string }{
		{"/api/search/text", `{"document":"WCF","reference":"11.1","summary":"Justification"}`},
		{"/api/verse-citations/context", `{"document":"WCF","reference":"11.1"}`},
		{"/api/scripture/interlinear", `{"reference":"John 1:1"}`},
		{"/api/scripture/latin", `{"reference":"John 1:1"}`},
		{"/api/systematics", `{"topic":"Providence"}`},
		{"/api/concepts", `{"title":"Total Depravity"}`},
		{"/api/compare", `{"docA":"westminster-confession","docB":"1689-london","topic":"Baptism"}`},
	} {
		if w := s.do(t, http.MethodPost, tt.path, tt.body); w.Code != http.StatusOK {
			t.Errorf("POST %s = %d (%s)", tt.path, w.Code, w.Body)
		}
	}

	for _, tt := range []struct {
		path, body string
		want       int
	}{
		{"/api/concepts", `{"title":"Nothing"}`, http.StatusNotFound},
		{"/api/compare", `{"docA":"heidelberg","docB":"heidelberg","topic":"Baptism"}`, http.StatusBadRequest},
		{"/api/compare", `{"docA":"heidelberg","docB":"nope","topic":"Baptism"}`, http.StatusNotFound},
		{"/api/crossrefs", `{}`, http.StatusBadRequest},
	} {
		if w := s.do(t, http.MethodPost, tt.path, tt.body); w.Code != tt.want {
			t.Errorf("POST %s %s = %d, want %d", tt.path, tt.body, w.Code, tt.want)
		}
	}
}

func TestDailyRoutes(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, nil)

	w := s.do(t, http.MethodGet, "/api/devotional", "")
	first := decode[retrieval.Daily](t, w)
	if w.Code != http.StatusOK || first.Text == "" || first.RefID == "" {
		t.Fatalf("devotional = %d %+v", w.Code, first)
	}
	if second := decode[retrieval.Daily](t, s.do(t, http.MethodGet, "/api/devotional", "")); !second.Cached {
		t.Error("second devotional not served from cache")
	}
	if again := decode[retrieval.Daily](t, s.do(t, http.MethodGet, "/api/devotional?refresh=true", "")); again.Cached {
		t.Error("refreshed devotional served from cache")
	}
	if w := s.do(t, http.MethodGet, "/api/study?refresh=maybe", ""); w.Code != http.StatusBadRequest {
		t.Errorf("refresh=maybe = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestOfflineRoute(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, nil)

	w := s.do(t, http.MethodPost, "/api/library/heidelberg/offline", "")
	item := decode[domain.SavedItem](t, w)
	if w.Code != http.StatusCreated || !item.IsOffline || item.Content == "" {
		t.Fatalf("offline = %d %+v", w.Code, item)
	}
	if w := s.do(t, http.MethodPost, "/api/library/nope/offline", ""); w.Code != http.StatusNotFound {
		t.Errorf("offline unknown = %d, want %d", w.Code, http.StatusNotFound)
	}
}

type sessionBody struct {
	ID      string `json:"id"`
	Context struct {
		Kind  string `json:"kind"`
		RefID string `json:"refId"`
	} `json:"context"`
	Connected bool           `json:"connected"`
	Messages  []chat.Message `json:"messages"`
}

func TestChatRoutes(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, nil)

	w := s.do(t, http.MethodPost, "/api/chat/sessions", `{"context":"confession","refId":"westminster-confession"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("open = %d (%s)", w.Code, w.Body)
	}
	sess := decode[sessionBody](t, w)
	if sess.Context.Kind != "confession" || len(sess.Messages) != 1 || sess.Messages[0].Text != "Grace alone." {
		t.Errorf("opened session = %+v", sess)
	}
	if loc := w.Header().Get("Location"); loc != "/api/chat/sessions/"+sess.ID {
		t.Errorf("Location = %q", loc)
	}

	w = s.do(t, http.MethodPost, "/api/chat/sessions/"+sess.ID+"/messages", `{"text":"What is faith?"}`)
	if ct := w.Header().Get("Content-Type"); ct != "text/event-stream" {
		t.Errorf("Content-Type = %q, want text/event-stream", ct)
	}
	body := w.Body.String()
	for _, want := range []string{"event: chunk\ndata: {\"text\":\"Grace \"}", "data: {\"text\":\"Grace alone.\"}", "event: done\n"} {
		if !strings.Contains(body, want) {
			t.Errorf("stream %q does not contain %q", body, want)
		}
	}

	w = s.do(t, http.MethodPost, "/api/chat/sessions/"+sess.ID+"/messages", `{"text":"fail"}`)
	if !strings.Contains(w.Body.String(), "event: error\n") || !strings.Contains(w.Body.String(), chat.MsgError) {
		t.Errorf("failed stream = %q", w.Body)
	}

	if w := s.do(t, http.MethodPost, "/api/chat/sessions/"+sess.ID+"/toc", `{"reference":"WCF 1"}`); !strings.Contains(w.Body.String(), "event: done") {
		t.Errorf("toc stream = %q", w.Body)
	}

	got := decode[sessionBody](t, s.do(t, http.MethodGet, "/api/chat/sessions/"+sess.ID, ""))
	// intro, question, reply, "fail", bubble, toc ref, reply
	if len(got.Messages) != 7 {
		t.Fatalf("len(messages) = %d, want 7: %+v", len(got.Messages), got.Messages)
	}
	if last := got.Messages[5]; last.Role != chat.RoleUser || last.Text != "WCF 1" {
		t.Errorf("toc user turn = %+v", last)
	}

	if w := s.do(t, http.MethodDelete, "/api/chat/sessions/"+sess.ID, ""); w.Code != http.StatusNoContent {
		t.Errorf("close = %d", w.Code)
	}
	if w := s.do(t, http.MethodGet, "/api/chat/sessions/"+sess.ID, ""); w.Code != http.StatusNotFound {
		t.Errorf("get closed = %d, want %d", w.Code, http.StatusNotFound)
	}
	if w := s.do(t, http.MethodPost, "/api/chat/sessions/"+sess.ID+"/messages", `{"text":"hi"}`); w.Code != http.StatusNotFound {
		t.Errorf("send to closed = %d, want %d", w.Code, http.StatusNotFound)
	}
}

func TestOpenSessionErrors(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, nil)

	tests := []struct {
		body string
		want int
	}{
		{`{"context":"sermon","refId":"x"}`, http.StatusBadRequest},
		{`{"context":"hymn"}`, http.StatusBadRequest},
		{`{"context":"hymn","refId":"unknown"}`, http.StatusNotFound},
		{`{}`, http.StatusCreated},
	}
	for _, tt := range tests {
		if w := s.do(t, http.MethodPost, "/api/chat/sessions", tt.body); w.Code != tt.want {
			t.Errorf("open %s = %d, want %d (%s)", tt.body, w.Code, tt.want, w.Body)
		}
	}
}

func TestChatOpeners(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, nil)

	w := s.do(t, http.MethodPost, "/api/bible/read", `{"book":"John","chapter":3}`)
	sess := decode[sessionBody](t, w)
	if w.Code != http.StatusCreated || sess.Context.Kind != "bible" || sess.Context.RefID != "esv" {
		t.Errorf("bible read = %d %+v", w.Code, sess)
	}
	if w := s.do(t, http.MethodPost, "/api/bible/read", `{"book":"John","chapter":99}`); w.Code != http.StatusBadRequest {
		t.Errorf("chapter 99 = %d, want %d", w.Code, http.StatusBadRequest)
	}

	w = s.do(t, http.MethodPost, "/api/hymns/lookup", `{"query":"Rock of Ages"}`)
	if sess := decode[sessionBody](t, w); w.Code != http.StatusCreated || sess.Context.Kind != "free" {
		t.Errorf("hymn lookup = %d %+v", w.Code, sess)
	}
}

func TestChatUnconfigured(t *testing.T) {
	s := newTestServer(t, generation.Unconfigured{}, nil)

	w := s.do(t, http.MethodPost, "/api/chat/sessions", `{"context":"bible","refId":"esv"}`)
	sess := decode[sessionBody](t, w)
	if w.Code != http.StatusCreated || sess.Connected || len(sess.Messages) != 1 || sess.Messages[0].Text != chat.MsgNotConfigured {
		t.Fatalf("open unconfigured = %d %+v", w.Code, sess)
	}

	w = s.do(t, http.MethodPost, "/api/chat/sessions/"+sess.ID+"/messages", `{"text":"hi"}`)
	if w.Code != http.StatusServiceUnavailable || decode[errorBody](t, w).Error.Code != "NOT_CONFIGURED" {
		t.Errorf("send unconfigured = %d %s", w.Code, w.Body)
	}

	infra := decode[struct{ Mode string }](t, s.do(t, http.MethodGet, "/infra", ""))
	if infra.Mode != "degraded" {
		t.Errorf("infra mode = %q, want degraded", infra.Mode)
	}
}

func TestToolRoutes(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, nil)

	w := s.do(t, http.MethodGet, "/api/links?ref="+url.QueryEscape("John 3:16"), "")
	links := decode[struct {
		Links []struct{ URL string } `json:"links"`
	}](t, w)
	if w.Code != http.StatusOK || len(links.Links) == 0 {
		t.Errorf("links = %d %s", w.Code, w.Body)
	}
	if w := s.do(t, http.MethodGet, "/api/links?ref=", ""); w.Code != http.StatusBadRequest {
		t.Errorf("links without ref = %d, want %d", w.Code, http.StatusBadRequest)
	}

	tokens := decode[[]lexer.Token](t, s.do(t, http.MethodPost, "/api/tokenize", `{"text":"Romans 8:28; WCF 3.1"}`))
	var kinds []lexer.Kind
	for _, tok := range tokens {
		if tok.Kind != lexer.KindText {
			kinds = append(kinds, tok.Kind)
		}
	}
	if len(kinds) != 2 || kinds[0] != lexer.KindScripture || kinds[1] != lexer.KindConfession {
		t.Errorf("token kinds = %v, want [scripture confession]", kinds)
	}

	w = s.do(t, http.MethodGet, "/api/share?view=library&confession=heidelberg", "")
	share := decode[struct {
		Card domain.ShareCard `json:"card"`
	}](t, w)
	if w.Code != http.StatusOK || share.Card.URL != "https://study.example.com/?confession=heidelberg&view=library" {
		t.Errorf("share = %d %+v", w.Code, share.Card)
	}
	if w := s.do(t, http.MethodGet, "/api/share?view=sermons", ""); w.Code != http.StatusBadRequest {
		t.Errorf("share unknown view = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestGenerationRateLimit(t *testing.T) {
	s := newTestServer(t, &fakeBackend{}, &config.Config{RateLimitBurst: 1, RateLimitPerMin: 1})

	if w := s.do(t, http.MethodPost, "/api/scripture/latin", `{"reference":"John 1:1"}`); w.Code != http.StatusOK {
		t.Fatalf("first = %d", w.Code)
	}
	if w := s.do(t, http.MethodPost, "/api/systematics", `{"topic":"Providence"}`); w.Code != http.StatusTooManyRequests {
		t.Errorf("second generation call = %d, want %d", w.Code, http.StatusTooManyRequests)
	}
	if w := s.do(t, http.MethodGet, "/api/catalog/confessions", ""); w.Code != http.StatusOK {
		t.Errorf("catalog call = %d, want it unlimited", w.Code)
	}
}
