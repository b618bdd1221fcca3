package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/mobivas/vas-platform/internal/adapters/billing"
	httpadapter "github.com/mobivas/vas-platform/internal/adapters/http"
	"github.com/mobivas/vas-platform/internal/adapters/memory"
	"github.com/mobivas/vas-platform/internal/adapters/security"
	"github.com/mobivas/vas-platform/internal/adapters/ws"
	"github.com/mobivas/vas-platform/internal/application"
	"github.com/mobivas/vas-platform/internal/domain"
)

// Runtime wires the process: in-memory stores, signer, simulator, hub,
// application service, and the HTTP server. All state is process-scoped;
// a restart starts empty by design.
type Runtime struct {
	cfg        Config
	logger     *slog.Logger
	hub        *ws.Hub
	httpServer *http.Server
}

func NewRuntime(_ context.Context, configPath string) (*Runtime, error) {
	cfg, err := LoadConfig(configPath)
	if err != nil {
		return nil, err
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)
	logger.Info("bootstrapping vas platform", "http_port", cfg.HTTPPort, "services", len(cfg.Services), "providers", len(cfg.Providers))

	var signer *security.JWTSigner
	if cfg.JWTSecret != "" {
		signer, err = security.NewJWTSigner(cfg.JWTSecret)
	} else {
		logger.Warn("using ephemeral JWT secret for local/dev runtime; sessions die with the process")
		signer, err = security.NewEphemeralJWTSigner()
	}
	if err != nil {
		return nil, fmt.Errorf("init jwt signer: %w", err)
	}

	hub := ws.NewHub(logger)
	simulator := billing.NewSimulator(cfg.Providers, cfg.BillingSuccessRate, logger)

	svc := application.NewService(application.Dependencies{
		Config: application.Config{
			TokenTTL:       cfg.TokenTTL,
			OTPTTL:         cfg.OTPTTL,
			DefaultCarrier: cfg.DefaultCarrier,
		},
		Catalog:      domain.NewCatalog(cfg.Services),
		Codes:        memory.NewCodeStore(),
		Subs:         memory.NewSubscriptionStore(),
		Transactions: memory.NewTransactionLog(),
		OTPLimiter:   memory.NewSlidingWindowLimiter(cfg.OTPRateLimitMax, cfg.OTPRateLimitWindow),
		Billing:      simulator,
		TokenSigner:  signer,
		Broadcaster:  hub,
		Logger:       logger,
	})

	handler := httpadapter.NewHandler(svc)
	router := httpadapter.NewRouter(handler, hub)

	return &Runtime{
		cfg:    cfg,
		logger: logger,
		hub:    hub,
		httpServer: &http.Server{
			Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
	}, nil
}

// Run serves until the context ends or a termination signal arrives, then
// drains the HTTP server and closes the hub.
func (rt *Runtime) Run(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	go rt.hub.Run(ctx)

	serveErr := make(chan error, 1)
	go func() {
		rt.logger.Info("http server listening", "addr", rt.httpServer.Addr)
		serveErr <- rt.httpServer.ListenAndServe()
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	rt.logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := rt.httpServer.Shutdown(shutdownCtx); err != nil {
		rt.logger.Error("http shutdown", "error", err.Error())
	}
	rt.hub.Close()
	return nil
}
