package brokergpt

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/kart-io/logger"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kart-io/brokergpt/internal/brokergpt/biz"
	"github.com/kart-io/brokergpt/internal/brokergpt/router"
	"github.com/kart-io/brokergpt/internal/brokergpt/store"
	"github.com/kart-io/brokergpt/pkg/component/postgres"
	"github.com/kart-io/brokergpt/pkg/llm"
	"github.com/kart-io/brokergpt/pkg/search"

	// Register the chat providers.
	_ "github.com/kart-io/brokergpt/pkg/llm/openai"
)

// Run builds every component from the options and serves until a signal
// arrives. The database pool opens in the background and every request
// re-attempts it; the seeded in-memory fallback answers whenever the
// database cannot.
func Run(opts *Options) error {
	if err := opts.Log.Init(); err != nil {
		return err
	}

	gin.SetMode(opts.Server.Mode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	bootstrapper := newBootstrapper(opts)
	go bootstrapper.Start(ctx)
	defer func() {
		if err := bootstrapper.Close(); err != nil {
			logger.Warnw("failed to close primary store", "error", err)
		}
	}()

	storage := store.NewFacade(bootstrapper.Factory, store.NewMemoryFactory())

	provider := newChatProvider(opts)
	searcher := newSearcher(opts)
	replyCache := newReplyCache(opts)

	svcs := &router.Services{
		Clients:  biz.NewClientService(storage),
		Carriers: biz.NewCarrierService(storage, provider),
		Policies: biz.NewPolicyService(storage),
		Records:  biz.NewRecordService(storage),
		Chat: biz.NewChatService(storage, provider, replyCache,
			&biz.ChatServiceConfig{CooldownWindow: opts.Assistant.CooldownWindow}),
		Research:     biz.NewResearchService(searcher, provider, opts.Search.Workers),
		Bootstrapper: bootstrapper,
	}

	server := &http.Server{
		Addr:    opts.Server.Addr,
		Handler: router.New(svcs),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infow("http server starting", "addr", opts.Server.Addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Infow("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), opts.Server.ShutdownTimeout)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// newBootstrapper wires the primary store pool. The open is lazy: the pool
// dials per request, so requests reach the database whenever it answers,
// and the bootstrapper's probes only decide what /healthz reports. With the
// database disabled the bootstrapper marks itself unavailable on the first
// Start call.
func newBootstrapper(opts *Options) *store.Bootstrapper {
	var connect store.ConnectFunc
	if opts.Postgres.Enabled {
		pgOpts := opts.Postgres
		connect = func(context.Context) (store.Factory, error) {
			client, err := postgres.Open(pgOpts)
			if err != nil {
				return nil, err
			}
			return store.NewGormFactory(client.DB()), nil
		}
	}
	return store.NewBootstrapper(connect, store.RetryPolicy{
		MaxAttempts: opts.Bootstrap.MaxAttempts,
		Delay:       opts.Bootstrap.RetryDelay,
	})
}

func newChatProvider(opts *Options) llm.ChatProvider {
	if opts.Assistant.Provider == "" {
		logger.Infow("assistant disabled, chat will apologize")
		return nil
	}
	provider, err := llm.NewChatProvider(opts.Assistant.Provider, opts.Assistant.ToConfigMap())
	if err != nil {
		logger.Warnw("chat provider unavailable, chat will apologize", "error", err)
		return nil
	}
	return provider
}

func newSearcher(opts *Options) search.Provider {
	if opts.Search.APIKey == "" {
		logger.Infow("search disabled, company research unavailable")
		return nil
	}
	client, err := search.NewClient(&search.Config{
		Endpoint:   opts.Search.Endpoint,
		APIKey:     opts.Search.APIKey,
		Timeout:    opts.Search.Timeout,
		MaxResults: opts.Search.MaxResults,
	})
	if err != nil {
		logger.Warnw("search client unavailable", "error", err)
		return nil
	}
	return client
}

func newReplyCache(opts *Options) *biz.ReplyCache {
	if !opts.Cache.Enabled {
		return nil
	}
	client := goredis.NewClient(&goredis.Options{
		Addr:     opts.Cache.Addr,
		Password: opts.Cache.Password,
		DB:       opts.Cache.Database,
	})
	return biz.NewReplyCache(client, &biz.ReplyCacheConfig{
		Enabled:   true,
		TTL:       opts.Cache.TTL,
		KeyPrefix: "brokergpt:chat:",
	})
}
