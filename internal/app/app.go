package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/MrSnakeDoc/confessio/internal/catalog"
	"github.com/MrSnakeDoc/confessio/internal/chat"
	"github.com/MrSnakeDoc/confessio/internal/config"
	"github.com/MrSnakeDoc/confessio/internal/domain"
	"github.com/MrSnakeDoc/confessio/internal/generation"
	"github.com/MrSnakeDoc/confessio/internal/httpserver"
	"github.com/MrSnakeDoc/confessio/internal/httpserver/deps"
	"github.com/MrSnakeDoc/confessio/internal/index"
	"github.com/MrSnakeDoc/confessio/internal/lexer"
	"github.com/MrSnakeDoc/confessio/internal/logger"
	"github.com/MrSnakeDoc/confessio/internal/notebook"
	"github.com/MrSnakeDoc/confessio/internal/prefs"
	"github.com/MrSnakeDoc/confessio/internal/redis"
	"github.com/MrSnakeDoc/confessio/internal/retrieval"
	"github.com/MrSnakeDoc/confessio/internal/scheduler"
	"github.com/MrSnakeDoc/confessio/internal/search"
	"github.com/MrSnakeDoc/confessio/internal/sources/ccel"
	"github.com/MrSnakeDoc/confessio/internal/store"
	badgerstore "github.com/MrSnakeDoc/confessio/internal/store/badger"
	memstore "github.com/MrSnakeDoc/confessio/internal/store/memory"
	redisstore "github.com/MrSnakeDoc/confessio/internal/store/redis"
	"github.com/MrSnakeDoc/confessio/internal/validation"
	"github.com/MrSnakeDoc/confessio/internal/version"
)

type App struct {
	cfg       *config.Config
	logger    logger.Logger
	server    *httpserver.Server
	store     store.KV
	searchIdx *search.Index
	reloader  *scheduler.CatalogReloader
	gc        *scheduler.SessionGC
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog, version.Version)

	// Open the store early - fail fast if unavailable
	kv, err := openStore(cfg, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to open %s store: %v", cfg.StoreBackend, err)
		os.Exit(1)
	}
	loggerClient.Info("store initialized successfully", logger.String("backend", kv.Backend()))

	backend, err := generation.New(context.Background(), cfg.APIKey, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to create generation client: %v", err)
		os.Exit(1)
	}

	memIndex := index.NewMemoryIndex()

	// The search index is optional; catalog lookups work without it.
	searchIdx, err := search.NewIndex(loggerClient)
	if err != nil {
		loggerClient.Warn("catalog search disabled", logger.Error(err))
		searchIdx = nil
	}

	lexers := lexer.NewProvider(&domain.Catalog{})
	nb := notebook.New(kv, loggerClient.Component("notebook"))
	preferences := prefs.New(kv, memIndex.HasBible)

	retrievalSvc := retrieval.New(retrieval.Options{
		Backend:        backend,
		Cache:          kv,
		Catalog:        memIndex,
		Notebook:       nb,
		Prefs:          preferences,
		Reader:         ccel.New(loggerClient),
		RetrievalModel: cfg.RetrievalModel,
		ContentModel:   cfg.ContentModel,
		DailyTTL:       cfg.DailyCacheTTL,
		Location:       cfg.Location(),
		Logger:         loggerClient,
	})

	chats := chat.NewManager(backend, cfg.ChatModel, loggerClient)

	// Create manual reload trigger channel
	reloadTrigger := make(chan struct{}, 1)

	reloader := scheduler.NewCatalogReloader(
		catalog.NewLoader(cfg.CatalogFile),
		memIndex,
		searchIdx,
		loggerClient,
		cfg.CatalogReloadInterval,
		reloadTrigger,
		cfg.WatchCatalog,
	)
	reloader.OnReload(lexers.Update)

	gc := scheduler.NewSessionGC(chats, loggerClient, cfg.ChatGCInterval, cfg.ChatSessionTTL)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:         loggerClient,
		StartTime:      time.Now(),
		Version:        version.Version,
		Commit:         version.Commit,
		BuildDate:      version.BuildDate,
		GoVersion:      version.GoVersion,
		TimeNow:        time.Now,
		AllowedHosts:   cfg.AllowedHosts,
		AllowedCIDRS:   cfg.AllowedCIDRS,
		TrustProxy:     cfg.TrustProxy,
		RequestTimeout: cfg.RequestTimeout,
		Store:          kv,
		Catalog:        memIndex,
		Search:         searchIdx,
		Notebook:       nb,
		Prefs:          preferences,
		Retrieval:      retrievalSvc,
		Chat:           chats,
		Lexer:          lexers,
		Generation:     backend,
		Validator:      validation.New(),
		PublicURL:      cfg.PublicURL,
		ReloadTrigger:  reloadTrigger,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:       cfg,
		logger:    loggerClient,
		server:    server,
		store:     kv,
		searchIdx: searchIdx,
		reloader:  reloader,
		gc:        gc,
	}
}

// openStore picks the KV backend named by the configuration.
func openStore(cfg *config.Config, log logger.Logger) (store.KV, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		log.Warn("memory store selected, the notebook is lost on restart")
		return memstore.New(), nil
	case config.StoreRedis:
		log.Infof("Connecting to Redis at %s", cfg.RedisAddr)
		client, err := redis.New(context.Background(), redis.ConnectOptions{
			Addr:           cfg.RedisAddr,
			User:           cfg.RedisUser,
			Password:       cfg.RedisPassword,
			DB:             cfg.RedisDB,
			DialTimeout:    cfg.RedisDT,
			ReadTimeout:    cfg.RedisRT,
			WriteTimeout:   cfg.RedisWT,
			PoolSize:       cfg.RedisPoolSize,
			ConnectTimeout: cfg.RedisConnectTimeout,
			RetryInterval:  cfg.RedisRetryInterval,
			MaxWait:        cfg.RedisMaxWait,
			PingTimeout:    cfg.RedisPingTimeout,
			WarnThreshold:  cfg.RedisWarnThreshold,
		}, log)
		if err != nil {
			return nil, err
		}
		return redisstore.NewStore(client), nil
	default:
		return badgerstore.Open(filepath.Join(cfg.DataDir, "badger"), log)
	}
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Confessio v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Confessio %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start catalog reloader (loads the catalog and starts periodic refresh)
	if err := a.reloader.Start(ctx); err != nil {
		a.closeStore()
		return fmt.Errorf("failed to start catalog reloader: %w", err)
	}
	a.logger.Info("catalog reloader started",
		logger.Duration("interval", a.cfg.CatalogReloadInterval),
		logger.Bool("watch", a.cfg.WatchCatalog))

	// Start chat session collector
	if err := a.gc.Start(ctx); err != nil {
		return fmt.Errorf("failed to start session collector: %w", err)
	}
	a.logger.Info("chat session collector started",
		logger.Duration("interval", a.cfg.ChatGCInterval),
		logger.Duration("ttl", a.cfg.ChatSessionTTL))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	var runErr error
	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case runErr = <-errCh:
	}

	a.reloader.Stop()
	a.gc.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil && runErr == nil {
		runErr = fmt.Errorf("failed to stop server: %w", err)
	}

	if a.searchIdx != nil {
		if err := a.searchIdx.Close(); err != nil {
			a.logger.Warnf("failed to close search index: %v", err)
		}
	}
	a.closeStore()

	if runErr != nil {
		return runErr
	}
	a.logger.Info("✅ Confessio stopped cleanly")
	_ = a.logger.Sync()
	return nil
}

func (a *App) closeStore() {
	if err := a.store.Close(); err != nil {
		a.logger.Warnf("failed to close %s store: %v", a.store.Backend(), err)
		return
	}
	a.logger.Info("✅ Store closed cleanly", logger.String("backend", a.store.Backend()))
}
