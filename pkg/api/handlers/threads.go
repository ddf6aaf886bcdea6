package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gorilla/mux"

	"arenadb/pkg/models"
	"arenadb/pkg/store"
	"arenadb/pkg/telemetry"
	"arenadb/pkg/utils"
)

// RegisterThreads registers the thread-store HTTP routes.
func RegisterThreads(r *mux.Router, d Deps) {
	r.HandleFunc("/v1/threads", d.startThread).Methods(http.MethodPost)
	r.HandleFunc("/v1/threads", d.listThreads).Methods(http.MethodGet)
	r.HandleFunc("/v1/threads", d.clearThreads).Methods(http.MethodDelete)
	r.HandleFunc("/v1/threads/end", d.endThread).Methods(http.MethodPost)
	r.HandleFunc("/v1/threads/{id}", d.getThread).Methods(http.MethodGet)
	r.HandleFunc("/v1/threads/{id}/turns", d.recordTurn).Methods(http.MethodPost)
	r.HandleFunc("/v1/threads/{id}/vote", d.submitVote).Methods(http.MethodPost)
	r.HandleFunc("/v1/threads/{id}/select", d.selectThread).Methods(http.MethodPost)

	r.HandleFunc("/v1/export", d.exportThreads).Methods(http.MethodGet)
	r.HandleFunc("/v1/import", d.importThreads).Methods(http.MethodPost)
	r.HandleFunc("/v1/config", d.getConfig).Methods(http.MethodGet)
	r.HandleFunc("/v1/config", d.updateConfig).Methods(http.MethodPut)
}

func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		utils.JSONError(w, http.StatusNotFound, "thread not found")
	case errors.Is(err, store.ErrImport):
		utils.JSONError(w, http.StatusBadRequest, err.Error())
	default:
		utils.JSONError(w, http.StatusInternalServerError, err.Error())
	}
}

type startThreadRequest struct {
	SessionRefA string         `json:"sessionRefA"`
	SessionRefB string         `json:"sessionRefB"`
	VariantA    map[string]any `json:"variantA"`
	VariantB    map[string]any `json:"variantB"`
	WasBlind    bool           `json:"wasBlind"`
}

func (d Deps) startThread(w http.ResponseWriter, r *http.Request) {
	var req startThreadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	t, err := d.Store.StartThread(req.SessionRefA, req.SessionRefB, req.VariantA, req.VariantB, req.WasBlind)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	utils.JSONWrite(w, http.StatusOK, t)
}

func (d Deps) listThreads(w http.ResponseWriter, r *http.Request) {
	utils.JSONWrite(w, http.StatusOK, struct {
		Threads         []models.ThreadRecord `json:"threads"`
		CurrentThreadID string                `json:"currentThreadId,omitempty"`
	}{Threads: d.Store.Threads(), CurrentThreadID: d.Store.CurrentThreadID()})
}

func (d Deps) clearThreads(w http.ResponseWriter, r *http.Request) {
	if err := d.Store.ClearHistory(); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (d Deps) getThread(w http.ResponseWriter, r *http.Request) {
	t, err := d.Store.Thread(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	utils.JSONWrite(w, http.StatusOK, t)
}

type recordTurnRequest struct {
	UserInput string         `json:"userInput"`
	ResponseA string         `json:"responseA"`
	ResponseB string         `json:"responseB"`
	Internal  map[string]any `json:"internal,omitempty"`
}

func (d Deps) recordTurn(w http.ResponseWriter, r *http.Request) {
	var req recordTurnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	t, err := d.Store.RecordTurn(mux.Vars(r)["id"], req.UserInput, req.ResponseA, req.ResponseB, req.Internal)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	utils.JSONWrite(w, http.StatusOK, t)
}

func (d Deps) submitVote(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Vote models.VoteType `json:"vote"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	if !models.ValidVote(req.Vote) {
		utils.JSONError(w, http.StatusBadRequest, "invalid vote value")
		return
	}
	t, err := d.Store.SubmitVote(mux.Vars(r)["id"], req.Vote)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	telemetry.CountVote(string(req.Vote))
	utils.JSONWrite(w, http.StatusOK, t)
}

func (d Deps) selectThread(w http.ResponseWriter, r *http.Request) {
	t, err := d.Store.SelectThread(mux.Vars(r)["id"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	utils.JSONWrite(w, http.StatusOK, t)
}

func (d Deps) endThread(w http.ResponseWriter, r *http.Request) {
	if err := d.Store.EndThread(); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (d Deps) exportThreads(w http.ResponseWriter, r *http.Request) {
	data, err := d.Store.Export()
	if err != nil {
		writeStoreError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="arena-export.json"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (d Deps) importThreads(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 64<<20))
	if err != nil {
		utils.JSONError(w, http.StatusBadRequest, "unreadable body")
		return
	}
	if err := d.Store.Import(body); err != nil {
		writeStoreError(w, err)
		return
	}
	utils.JSONWrite(w, http.StatusOK, map[string]any{"ok": true, "total": len(d.Store.Threads())})
}

func (d Deps) getConfig(w http.ResponseWriter, r *http.Request) {
	utils.JSONWrite(w, http.StatusOK, d.Store.Config())
}

type updateConfigRequest struct {
	TesterID           *string `json:"testerId,omitempty"`
	BackupIntervalDays *int    `json:"backupIntervalDays,omitempty"`
}

func (d Deps) updateConfig(w http.ResponseWriter, r *http.Request) {
	var req updateConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.JSONError(w, http.StatusBadRequest, "invalid json body")
		return
	}
	cfg, err := d.Store.UpdateConfig(func(c *models.ArenaConfig) {
		if req.TesterID != nil && *req.TesterID != "" {
			c.TesterID = *req.TesterID
		}
		if req.BackupIntervalDays != nil {
			c.BackupIntervalDays = *req.BackupIntervalDays
		}
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	utils.JSONWrite(w, http.StatusOK, cfg)
}
