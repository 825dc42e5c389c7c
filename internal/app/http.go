package app

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/adanyl0v/go-todo-widget/internal/config"
	"github.com/adanyl0v/go-todo-widget/internal/delivery/http/v1"
	"github.com/adanyl0v/go-todo-widget/internal/services"
	"github.com/adanyl0v/go-todo-widget/internal/session"
	"github.com/adanyl0v/go-todo-widget/internal/widget"
)

func MustListenAndServeHTTP() {
	cfg := config.Global()
	if cfg.Env != config.EnvLocal {
		gin.SetMode(gin.ReleaseMode)
	}

	httpCfg := cfg.HTTP

	sessions := mustNewSessionManager()
	defer sessions.Close()

	router := gin.New()
	router.Use(requestLogger(globalLogger))
	router.Use(gin.Recovery())
	registerRoutes(router, sessions)

	server := &http.Server{
		Addr:    net.JoinHostPort(httpCfg.Host, httpCfg.Port),
		Handler: router,
	}

	go func() {
		globalLogger.Info().
			Str("host", httpCfg.Host).
			Str("port", httpCfg.Port).
			Msg("setting up http server")
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			globalLogger.Error().
				Err(err).
				Msg("failed to listen and serve http")
			panic(err)
		}
	}()

	sweepCtx, stopSweep := context.WithCancel(context.Background())
	defer stopSweep()
	go sweepSessions(sweepCtx, sessions, cfg.Session.IdleTimeout)

	// kill (no params) by default sends syscall.SIGTERM
	// kill -2 is syscall.SIGINT
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	globalLogger.Info().
		Msg("shutting down http server")

	ctx, cancel := context.WithTimeout(context.Background(), httpCfg.ShutdownTimeout)
	defer cancel()

	err := server.Shutdown(ctx)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("failed to shutdown http server")
		panic(err)
	}
	globalLogger.Info().Msg("shut down http server")
}

func mustNewSessionManager() *session.Manager {
	cfg := config.Global()
	ids, err := services.IDGeneratorFor(cfg.Widget.IDFormat)
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("invalid widget config")
		panic(err)
	}

	return session.NewManager(
		globalLogger,
		globalStorage,
		cfg.Storage.Key,
		widget.Options{IDs: ids},
	)
}

func sweepSessions(ctx context.Context, sessions *session.Manager, idle time.Duration) {
	if idle <= 0 {
		return
	}
	ticker := time.NewTicker(sweepInterval(idle))
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			sessions.Sweep(idle)
		}
	}
}

// sweepInterval checks twice per idle period, but never more often
// than once a second.
func sweepInterval(idle time.Duration) time.Duration {
	return max(idle/2, time.Second)
}

func registerRoutes(router *gin.Engine, sessions *session.Manager) {
	sessionCfg := config.Global().Session
	v1Handler := v1.New(
		globalLogger,
		sessions,
		sessionCfg.Issuer,
		sessionCfg.SigningKey,
		sessionCfg.TTL,
	)
	router.SetHTMLTemplate(v1.PageTemplate())

	router.GET("/healthz", v1Handler.HandleHealth)
	router.GET("/", v1Handler.HandleSessionMiddleware, v1Handler.HandleIndex)

	apiRouter := router.Group("/api/v1", v1Handler.HandleSessionMiddleware)
	apiRouter.POST("/events", v1Handler.HandleEvent)
	apiRouter.GET("/tasks", v1Handler.HandleGetTasks)
}
