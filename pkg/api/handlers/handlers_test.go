package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"

	"arenadb/pkg/arena"
	"arenadb/pkg/backup"
	"arenadb/pkg/models"
	"arenadb/pkg/store"
)

func newRouter(t *testing.T, d Deps) *mux.Router {
	t.Helper()
	if d.Store == nil {
		st, err := store.Open(store.NewMemoryPort())
		if err != nil {
			t.Fatalf("store: %v", err)
		}
		d.Store = st
	}
	if d.Turns == nil {
		d.Turns = arena.New()
	}
	r := mux.NewRouter()
	RegisterArena(r, d)
	RegisterThreads(r, d)
	return r
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var rd *bytes.Reader
	switch b := body.(type) {
	case nil:
		rd = bytes.NewReader(nil)
	case string:
		rd = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal body: %v", err)
		}
		rd = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, rd)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestTurnMissingModelIsClientError(t *testing.T) {
	gatewayCalls := 0
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gatewayCalls++
	}))
	defer gw.Close()

	r := newRouter(t, Deps{GatewayOrigin: gw.URL})
	rr := doJSON(t, r, http.MethodPost, "/api/arena/turn", map[string]any{
		"userInput": "你好",
		"a":         map[string]any{"mode": "baseline"},
		"b":         map[string]any{"mode": "baseline"},
	})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: %d body: %s", rr.Code, rr.Body.String())
	}
	if gatewayCalls != 0 {
		t.Fatalf("rejected turn must not reach the gateway")
	}
}

func TestTurnHappyPathForwardsAuthAndReturnsBothSides(t *testing.T) {
	var sawAuth string
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sawAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{{"message": map[string]any{"content": "回复"}}},
		})
	}))
	defer gw.Close()

	r := newRouter(t, Deps{GatewayOrigin: gw.URL})
	body := map[string]any{
		"userInput": "最近压力很大",
		"a":         map[string]any{"mode": "baseline"},
		"b":         map[string]any{"mode": "system", "systemPrompt": "保持简短"},
		"model":     map[string]any{"provider": "openai", "model": "gpt-4o-mini"},
	}
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/api/arena/turn", bytes.NewReader(raw))
	req.Header.Set("Authorization", "Bearer sk-test")
	req.Header.Set("Cookie", "secret=1")
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rr.Code, rr.Body.String())
	}
	if sawAuth != "Bearer sk-test" {
		t.Fatalf("authorization not forwarded: %q", sawAuth)
	}
	var resp turnResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !resp.OK || resp.A.Text != "回复" || resp.B.Text != "回复" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTurnUpstreamFailureIs502(t *testing.T) {
	gw := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gateway down", http.StatusInternalServerError)
	}))
	defer gw.Close()

	r := newRouter(t, Deps{GatewayOrigin: gw.URL})
	rr := doJSON(t, r, http.MethodPost, "/api/arena/turn", map[string]any{
		"userInput": "hi",
		"a":         map[string]any{"mode": "baseline"},
		"b":         map[string]any{"mode": "baseline"},
		"model":     map[string]any{"provider": "openai", "model": "gpt-4o-mini"},
	})
	if rr.Code != http.StatusBadGateway {
		t.Fatalf("status: %d body: %s", rr.Code, rr.Body.String())
	}
}

func TestBackupUnconfiguredIs503(t *testing.T) {
	r := newRouter(t, Deps{Backup: &backup.Forwarder{}})
	rr := doJSON(t, r, http.MethodPost, "/api/arena/backup", `{"threads":[]}`)
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status: %d", rr.Code)
	}
	if !strings.Contains(rr.Body.String(), `"ok":false`) {
		t.Fatalf("body: %s", rr.Body.String())
	}
}

func TestBackupForwardsVerbatim(t *testing.T) {
	var got []byte
	hook := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		buf := new(bytes.Buffer)
		_, _ = buf.ReadFrom(r.Body)
		got = buf.Bytes()
	}))
	defer hook.Close()

	r := newRouter(t, Deps{Backup: &backup.Forwarder{URL: hook.URL, HTTPClient: hook.Client()}})
	payload := `{"testerId":"t1","threads":[{"id":"x"}]}`
	rr := doJSON(t, r, http.MethodPost, "/api/arena/backup", payload)
	if rr.Code != http.StatusOK {
		t.Fatalf("status: %d body: %s", rr.Code, rr.Body.String())
	}
	if string(got) != payload {
		t.Fatalf("payload altered: %s", got)
	}
}

func TestThreadLifecycleOverHTTP(t *testing.T) {
	r := newRouter(t, Deps{})

	rr := doJSON(t, r, http.MethodPost, "/v1/threads", map[string]any{
		"sessionRefA": "sa", "sessionRefB": "sb", "wasBlind": true,
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("start: %d %s", rr.Code, rr.Body.String())
	}
	var th models.ThreadRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &th); err != nil {
		t.Fatalf("decode thread: %v", err)
	}

	rr = doJSON(t, r, http.MethodPost, "/v1/threads/"+th.ID+"/turns", map[string]any{
		"userInput": "第一句话", "responseA": "a", "responseB": "b",
	})
	if rr.Code != http.StatusOK {
		t.Fatalf("turn: %d %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, r, http.MethodPost, "/v1/threads/"+th.ID+"/vote", map[string]any{"vote": "A"})
	if rr.Code != http.StatusOK {
		t.Fatalf("vote: %d %s", rr.Code, rr.Body.String())
	}
	// second vote is a no-op, not an error
	rr = doJSON(t, r, http.MethodPost, "/v1/threads/"+th.ID+"/vote", map[string]any{"vote": "B"})
	if rr.Code != http.StatusOK {
		t.Fatalf("revote: %d", rr.Code)
	}
	var voted models.ThreadRecord
	if err := json.Unmarshal(rr.Body.Bytes(), &voted); err != nil {
		t.Fatalf("decode voted: %v", err)
	}
	if voted.Vote == nil || *voted.Vote != models.VoteA {
		t.Fatalf("vote was overwritten: %+v", voted.Vote)
	}

	rr = doJSON(t, r, http.MethodGet, "/v1/threads", nil)
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), th.ID) {
		t.Fatalf("list: %d %s", rr.Code, rr.Body.String())
	}

	rr = doJSON(t, r, http.MethodGet, "/v1/threads/does-not-exist", nil)
	if rr.Code != http.StatusNotFound {
		t.Fatalf("missing thread: %d", rr.Code)
	}
}

func TestInvalidVoteValueIs400(t *testing.T) {
	r := newRouter(t, Deps{})
	rr := doJSON(t, r, http.MethodPost, "/v1/threads", map[string]any{})
	var th models.ThreadRecord
	_ = json.Unmarshal(rr.Body.Bytes(), &th)

	rr = doJSON(t, r, http.MethodPost, "/v1/threads/"+th.ID+"/vote", map[string]any{"vote": "C"})
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status: %d", rr.Code)
	}
}

func TestExportImportOverHTTP(t *testing.T) {
	r := newRouter(t, Deps{})
	rr := doJSON(t, r, http.MethodPost, "/v1/threads", map[string]any{})
	var th models.ThreadRecord
	_ = json.Unmarshal(rr.Body.Bytes(), &th)

	rr = doJSON(t, r, http.MethodGet, "/v1/export", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("export: %d", rr.Code)
	}
	exported := rr.Body.String()
	if !strings.Contains(exported, th.ID) {
		t.Fatalf("export missing thread: %s", exported)
	}

	// import into a fresh store
	r2 := newRouter(t, Deps{})
	rr = doJSON(t, r2, http.MethodPost, "/v1/import", exported)
	if rr.Code != http.StatusOK {
		t.Fatalf("import: %d %s", rr.Code, rr.Body.String())
	}
	rr = doJSON(t, r2, http.MethodGet, "/v1/threads/"+th.ID, nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("imported thread not found: %d", rr.Code)
	}

	rr = doJSON(t, r2, http.MethodPost, "/v1/import", `{"threads":[]}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("empty import must be rejected: %d", rr.Code)
	}
}

func TestConfigUpdateOverHTTP(t *testing.T) {
	r := newRouter(t, Deps{})
	days := 7
	rr := doJSON(t, r, http.MethodPut, "/v1/config", updateConfigRequest{BackupIntervalDays: &days})
	if rr.Code != http.StatusOK {
		t.Fatalf("put config: %d %s", rr.Code, rr.Body.String())
	}
	var cfg models.ArenaConfig
	if err := json.Unmarshal(rr.Body.Bytes(), &cfg); err != nil {
		t.Fatalf("decode config: %v", err)
	}
	if cfg.BackupIntervalDays != 7 {
		t.Fatalf("interval not updated: %+v", cfg)
	}
	if cfg.TesterID == "" {
		t.Fatalf("tester id must be assigned at open")
	}
}
