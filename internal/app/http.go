package app

import (
	"context"
	"net/http"
	"time"

	"arenadb/pkg/api"
	"arenadb/pkg/api/handlers"
	"arenadb/pkg/arena"
	"arenadb/pkg/auth"
	"arenadb/pkg/logger"
	"arenadb/pkg/telemetry"
)

var srvShutdownTimeout = 10 * time.Second

// startHTTP builds the handler chain, starts the HTTP server in a goroutine
// and returns a channel that will contain any server error.
func (a *App) startHTTP(turns *arena.Orchestrator) <-chan error {
	deps := handlers.Deps{
		Store:           a.st,
		Turns:           turns,
		Backup:          a.forwarder,
		GatewayOrigin:   a.cfg.Provider.GatewayOrigin,
		ProviderTimeout: a.cfg.Provider.Timeout.Duration(),
	}

	secCfg := auth.SecConfig{
		AllowedOrigins: append([]string{}, a.cfg.Security.CORS.AllowedOrigins...),
		RPS:            a.cfg.Security.RateLimit.RPS,
		Burst:          a.cfg.Security.RateLimit.Burst,
	}

	// guard middleware first, telemetry outermost so limited requests are
	// still measured
	wrapped := auth.GuardMiddleware(secCfg)(api.Handler(deps))
	wrapped = telemetry.Middleware(wrapped)

	a.srv = &http.Server{Addr: a.cfg.Addr(), Handler: wrapped}

	errCh := make(chan error, 1)
	go func() {
		cert := a.cfg.Server.TLS.CertFile
		key := a.cfg.Server.TLS.KeyFile
		if cert != "" && key != "" {
			errCh <- a.srv.ListenAndServeTLS(cert, key)
		} else {
			errCh <- a.srv.ListenAndServe()
		}
	}()
	return errCh
}

func (a *App) stopHTTP() {
	if a.srv == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), srvShutdownTimeout)
	defer cancel()
	if err := a.srv.Shutdown(ctx); err != nil {
		logger.Error("http_shutdown_failed", "error", err)
	}
}
