package deps

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/confessio/internal/chat"
	"github.com/MrSnakeDoc/confessio/internal/generation"
	"github.com/MrSnakeDoc/confessio/internal/index"
	"github.com/MrSnakeDoc/confessio/internal/lexer"
	"github.com/MrSnakeDoc/confessio/internal/logger"
	"github.com/MrSnakeDoc/confessio/internal/notebook"
	"github.com/MrSnakeDoc/confessio/internal/prefs"
	"github.com/MrSnakeDoc/confessio/internal/retrieval"
	"github.com/MrSnakeDoc/confessio/internal/search"
	"github.com/MrSnakeDoc/confessio/internal/store"
	"github.com/MrSnakeDoc/confessio/internal/validation"
)

type Deps struct {
	Logger       logger.Logger
	StartTime    time.Time
	Version      string
	Commit       string
	BuildDate    string
	GoVersion    string
	TimeNow      func() time.Time // for testing, defaults to time.Now
	AllowedHosts []string         // Host headers allowed to access the ops endpoints
	AllowedCIDRS []string         // IPs allowed to access healthz/readyz/infra/reload
	TrustProxy   bool             // true if running behind a trusted reverse proxy (e.g., cloudflared)

	// RequestTimeout bounds every route except the streaming ones.
	RequestTimeout time.Duration

	// GenerationLimit is shared by every route that calls the generation backend,
	// so that one client has a single budget across them.
	GenerationLimit func(http.Handler) http.Handler

	Store      store.KV            // notebook, preferences and daily cache backend
	Catalog    *index.MemoryIndex  // current reference catalog
	Search     *search.Index       // full-text index over the catalog, may be nil
	Notebook   *notebook.Store     // saved references
	Prefs      *prefs.Service      // theme and default translation
	Retrieval  *retrieval.Service  // prompt + generation operations
	Chat       *chat.Manager       // open chat sessions
	Lexer      *lexer.Provider     // citation tokenizer for the current catalog
	Generation generation.Backend  // for /infra
	Validator  *validation.Validator
	// PublicURL is the base of share links, ex: https://study.example.com/
	PublicURL     string
	ReloadTrigger chan struct{} // Channel to trigger manual catalog reload
}

// Now is TimeNow or time.Now.
func (d Deps) Now() time.Time {
	if d.TimeNow != nil {
		return d.TimeNow()
	}
	return time.Now()
}
