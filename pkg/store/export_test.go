package store

import (
	"encoding/json"
	"errors"
	"testing"

	"arenadb/pkg/models"
)

func TestExportImportRoundTripKeepsThreadSet(t *testing.T) {
	src := newTestStore(t)
	a, _ := src.StartThread("", "", nil, nil, false)
	if _, err := src.RecordTurn(a.ID, "第一条", "ra", "rb", nil); err != nil {
		t.Fatalf("RecordTurn: %v", err)
	}
	b, _ := src.StartThread("", "", nil, nil, true)
	if _, err := src.SubmitVote(b.ID, models.VoteBothBad); err != nil {
		t.Fatalf("SubmitVote: %v", err)
	}

	data, err := src.Export()
	if err != nil {
		t.Fatalf("Export: %v", err)
	}
	var env ExportEnvelope
	if err := json.Unmarshal(data, &env); err != nil {
		t.Fatalf("unmarshal export: %v", err)
	}
	if env.TesterID != src.Config().TesterID || env.ExportTime == 0 {
		t.Fatalf("envelope metadata missing: %+v", env)
	}

	dst := newTestStore(t)
	if err := dst.Import(data); err != nil {
		t.Fatalf("Import: %v", err)
	}
	got := dst.Threads()
	if len(got) != 2 {
		t.Fatalf("expected 2 threads after import, got %d", len(got))
	}
	ids := map[string]bool{got[0].ID: true, got[1].ID: true}
	if !ids[a.ID] || !ids[b.ID] {
		t.Fatalf("imported ids differ: %v", ids)
	}
	for _, th := range got {
		if th.ID == b.ID && (th.Vote == nil || *th.Vote != models.VoteBothBad) {
			t.Fatalf("vote lost on round trip: %+v", th)
		}
	}
}

func TestImportIncomingWinsAndResorts(t *testing.T) {
	s := newTestStore(t)
	th, _ := s.StartThread("", "", nil, nil, false)
	if _, err := s.RecordTurn(th.ID, "旧标题", "a", "b", nil); err != nil {
		t.Fatalf("RecordTurn: %v", err)
	}

	payload := map[string]any{
		"threads": []any{
			map[string]any{
				"id":        th.ID,
				"createdAt": th.CreatedAt,
				"title":     "替换后的标题",
				"turns":     []any{},
			},
			map[string]any{
				"id":        "older-import",
				"createdAt": th.CreatedAt - 500,
				"turns":     []any{},
			},
		},
	}
	data, _ := json.Marshal(payload)
	if err := s.Import(data); err != nil {
		t.Fatalf("Import: %v", err)
	}

	got := s.Threads()
	if len(got) != 2 {
		t.Fatalf("expected 2 threads, got %d", len(got))
	}
	if got[0].ID != "older-import" {
		t.Fatalf("merged set not resorted by createdAt: %v then %v", got[0].ID, got[1].ID)
	}
	if got[1].Title != "替换后的标题" || len(got[1].Turns) != 0 {
		t.Fatalf("incoming record must win over existing: %+v", got[1])
	}
}

func TestImportLegacyMatchesShape(t *testing.T) {
	s := newTestStore(t)
	legacy := `{"matches":[{"id":"m1","timestamp":7,"vote":"A","votedAt":9,"wasBlindTest":true}]}`
	if err := s.Import([]byte(legacy)); err != nil {
		t.Fatalf("Import: %v", err)
	}
	th, err := s.Thread("m1")
	if err != nil {
		t.Fatalf("Thread: %v", err)
	}
	if th.CreatedAt != 7 || th.Vote == nil || *th.Vote != models.VoteA || !th.WasBlind {
		t.Fatalf("legacy record not normalized: %+v", th)
	}
}

func TestImportRejectsBadPayloadsWithoutMutation(t *testing.T) {
	s := newTestStore(t)
	th, _ := s.StartThread("", "", nil, nil, false)

	cases := []string{
		`not json`,
		`{"threads":[]}`,
		`{"exportTime":1}`,
		`{"threads":[42]}`,
		`{"threads":[{"createdAt":1}]}`,
	}
	for _, c := range cases {
		if err := s.Import([]byte(c)); !errors.Is(err, ErrImport) {
			t.Fatalf("payload %q: expected ErrImport, got %v", c, err)
		}
	}

	got := s.Threads()
	if len(got) != 1 || got[0].ID != th.ID {
		t.Fatalf("failed imports must not mutate the store: %+v", got)
	}
}

func TestImportBackfillsMissingCreatedAt(t *testing.T) {
	s := newTestStore(t)
	if err := s.Import([]byte(`{"threads":[{"id":"no-ts"}]}`)); err != nil {
		t.Fatalf("Import: %v", err)
	}
	th, err := s.Thread("no-ts")
	if err != nil {
		t.Fatalf("Thread: %v", err)
	}
	if th.CreatedAt == 0 || th.UpdatedAt != th.CreatedAt {
		t.Fatalf("createdAt not backfilled: %+v", th)
	}
}
