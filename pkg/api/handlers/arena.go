package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"arenadb/pkg/arena"
	"arenadb/pkg/backup"
	"arenadb/pkg/logger"
	"arenadb/pkg/provider"
	"arenadb/pkg/telemetry"
	"arenadb/pkg/utils"
)

const maxTurnBody = 1 << 20 // 1 MiB

// RegisterArena registers the comparison-turn and backup-forward routes.
func RegisterArena(r *mux.Router, d Deps) {
	r.HandleFunc("/api/arena/turn", d.runTurn).Methods(http.MethodPost)
	r.HandleFunc("/api/arena/backup", d.forwardBackup).Methods(http.MethodPost)
}

type sideResult struct {
	Text string `json:"text"`
	// Internal is audit metadata from variant resolution; consumed by the
	// research export, not shown to testers.
	Internal map[string]any `json:"internal,omitempty"`
}

type turnResponse struct {
	OK bool       `json:"ok"`
	A  sideResult `json:"a"`
	B  sideResult `json:"b"`
}

// runTurn handles POST /api/arena/turn.
func (d Deps) runTurn(w http.ResponseWriter, r *http.Request) {
	var req arena.TurnRequest
	if err := json.NewDecoder(io.LimitReader(r.Body, maxTurnBody)).Decode(&req); err != nil {
		telemetry.CountTurn("client_input")
		utils.JSONError(w, http.StatusBadRequest, "invalid json body")
		return
	}

	client := &provider.Client{
		Origin:     d.GatewayOrigin,
		Headers:    provider.ForwardHeaders(r.Header),
		HTTPClient: d.providerHTTPClient(),
	}

	res, err := d.Turns.Turn(r.Context(), client, req)
	if err != nil {
		switch {
		case errors.Is(err, arena.ErrClientInput):
			telemetry.CountTurn("client_input")
			utils.JSONError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, provider.ErrUpstream):
			telemetry.CountTurn("upstream")
			logger.Error("turn_upstream_failed", "provider", req.Model.Provider, "error", err)
			utils.JSONError(w, http.StatusBadGateway, "upstream completion failed")
		default:
			telemetry.CountTurn("internal")
			logger.Error("turn_failed", "error", err)
			utils.JSONError(w, http.StatusInternalServerError, "turn failed")
		}
		return
	}

	telemetry.CountTurn("")
	countFallback(res.InternalA)
	countFallback(res.InternalB)
	utils.JSONWrite(w, http.StatusOK, turnResponse{
		OK: true,
		A:  sideResult{Text: res.TextA, Internal: res.InternalA},
		B:  sideResult{Text: res.TextB, Internal: res.InternalB},
	})
}

func countFallback(internal map[string]any) {
	if used, ok := internal["classifier_used"].(bool); ok && !used {
		telemetry.CountClassifierFallback()
	}
}

// forwardBackup handles POST /api/arena/backup: the JSON body is passed to
// the webhook verbatim so client-assembled envelopes survive unchanged.
func (d Deps) forwardBackup(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 32<<20))
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "unreadable body")
		return
	}

	if err := d.Backup.Forward(r.Context(), body); err != nil {
		switch {
		case errors.Is(err, backup.ErrUnconfigured):
			utils.JSONError(w, http.StatusServiceUnavailable, "backup webhook not configured")
		default:
			logger.Error("backup_forward_failed", "error", err)
			utils.JSONError(w, http.StatusBadGateway, "backup upstream failed")
		}
		return
	}
	utils.JSONWrite(w, http.StatusOK, map[string]any{"ok": true})
}
