package handlers

import (
	"net/http"
	"time"

	"arenadb/pkg/arena"
	"arenadb/pkg/backup"
	"arenadb/pkg/store"
)

// Deps carries the wired components handlers operate on.
type Deps struct {
	Store *store.Store
	Turns *arena.Orchestrator
	// Backup forwards payloads to the configured webhook; nil or empty URL
	// means backups are unconfigured.
	Backup *backup.Forwarder

	// GatewayOrigin is the upstream completion gateway.
	GatewayOrigin string
	// ProviderTimeout bounds one completion round trip.
	ProviderTimeout time.Duration
}

func (d Deps) providerHTTPClient() *http.Client {
	timeout := d.ProviderTimeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &http.Client{Timeout: timeout}
}
