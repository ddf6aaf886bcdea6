package store

import (
	"arenadb/pkg/models"
)

// SchemaVersion is the current persisted schema. It only ever increases.
// v1 kept threads under a `matches` array; v2 renamed the canonical fields
// and introduced updatedAt/title backfills.
const SchemaVersion = 2

// State is the persisted aggregate.
type State struct {
	SchemaVersion   int                   `json:"schemaVersion"`
	CurrentThreadID string                `json:"currentThreadId,omitempty"`
	Threads         []models.ThreadRecord `json:"threads"`
	Config          models.ArenaConfig    `json:"config"`
}

// Migrate transforms a decoded state of the given older version into the
// current shape. It is a pure data transform: no I/O, no clock. Records
// lacking newer fields are backfilled with safe defaults so old persisted
// data stays loadable without loss.
func Migrate(raw map[string]any, version int) State {
	var out State
	out.SchemaVersion = SchemaVersion

	threadsKey := "threads"
	if version < 2 {
		// v1 stored the thread list under `matches`.
		if _, ok := raw["threads"]; !ok {
			threadsKey = "matches"
		}
	}
	if list, ok := raw[threadsKey].([]any); ok {
		for _, item := range list {
			if m, ok := item.(map[string]any); ok {
				out.Threads = append(out.Threads, NormalizeThread(m))
			}
		}
	}

	if id, ok := raw["currentThreadId"].(string); ok && id != "" {
		out.CurrentThreadID = id
	} else if id, ok := raw["currentMatchId"].(string); ok {
		out.CurrentThreadID = id
	}

	if cfg, ok := raw["config"].(map[string]any); ok {
		out.Config.TesterID, _ = cfg["testerId"].(string)
		out.Config.LastBackupTime = asInt64(cfg["lastBackupTime"])
		if out.Config.LastBackupTime == 0 {
			// older exports used lastBackupTimestamp
			out.Config.LastBackupTime = asInt64(cfg["lastBackupTimestamp"])
		}
		out.Config.BackupIntervalDays = int(asInt64(cfg["backupIntervalDays"]))
	}

	return out
}

// NormalizeThread backfills a decoded thread object, accepting both the
// current field names and the legacy ones (timestamp, messages, sessionIdA,
// maskA, wasBlindTest).
func NormalizeThread(m map[string]any) models.ThreadRecord {
	var t models.ThreadRecord
	t.ID, _ = m["id"].(string)

	t.CreatedAt = asInt64(m["createdAt"])
	if t.CreatedAt == 0 {
		t.CreatedAt = asInt64(m["timestamp"])
	}
	t.UpdatedAt = asInt64(m["updatedAt"])
	if t.UpdatedAt == 0 {
		t.UpdatedAt = t.CreatedAt
	}

	t.TesterID, _ = m["testerId"].(string)
	t.Title, _ = m["title"].(string)

	t.SessionRefA = firstString(m, "sessionRefA", "sessionIdA")
	t.SessionRefB = firstString(m, "sessionRefB", "sessionIdB")

	if v, ok := m["variantA"].(map[string]any); ok {
		t.VariantA = v
	} else if v, ok := m["maskA"].(map[string]any); ok {
		t.VariantA = v
	}
	if v, ok := m["variantB"].(map[string]any); ok {
		t.VariantB = v
	} else if v, ok := m["maskB"].(map[string]any); ok {
		t.VariantB = v
	}

	turns, ok := m["turns"].([]any)
	if !ok {
		turns, _ = m["messages"].([]any)
	}
	t.Turns = make([]models.TurnRecord, 0, len(turns))
	for _, item := range turns {
		tm, ok := item.(map[string]any)
		if !ok {
			continue
		}
		var tr models.TurnRecord
		tr.UserInput, _ = tm["userInput"].(string)
		tr.ResponseA, _ = tm["responseA"].(string)
		tr.ResponseB, _ = tm["responseB"].(string)
		tr.Timestamp = asInt64(tm["timestamp"])
		t.Turns = append(t.Turns, tr)
	}

	if v, ok := m["vote"].(string); ok && models.ValidVote(models.VoteType(v)) {
		vote := models.VoteType(v)
		t.Vote = &vote
		if ts := asInt64(m["votedAt"]); ts != 0 {
			t.VotedAt = &ts
		}
	}

	if b, ok := m["wasBlind"].(bool); ok {
		t.WasBlind = b
	} else if b, ok := m["wasBlindTest"].(bool); ok {
		t.WasBlind = b
	}

	if v, ok := m["internal"].(map[string]any); ok {
		t.Internal = v
	}

	return t
}

func asInt64(v any) int64 {
	switch n := v.(type) {
	case float64:
		return int64(n)
	case int64:
		return n
	case int:
		return int64(n)
	}
	return 0
}

func firstString(m map[string]any, keys ...string) string {
	for _, k := range keys {
		if s, ok := m[k].(string); ok && s != "" {
			return s
		}
	}
	return ""
}
