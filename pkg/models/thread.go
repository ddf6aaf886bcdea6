package models

// VoteType is the comparative judgement recorded for a thread.
type VoteType string

const (
	VoteA       VoteType = "A"
	VoteB       VoteType = "B"
	VoteTie     VoteType = "Tie"
	VoteBothBad VoteType = "BothBad"
)

// ValidVote reports whether v is one of the terminal vote values.
func ValidVote(v VoteType) bool {
	switch v {
	case VoteA, VoteB, VoteTie, VoteBothBad:
		return true
	}
	return false
}

// TurnRecord is one round of a thread: the user utterance and the two paired
// responses. Immutable once appended.
type TurnRecord struct {
	UserInput string `json:"userInput"`
	ResponseA string `json:"responseA"`
	ResponseB string `json:"responseB"`
	// Timestamp is milliseconds since epoch, matching exported records.
	Timestamp int64 `json:"timestamp"`
}

// ThreadRecord is a persisted multi-turn A/B comparison session with at most
// one vote. Timestamps are milliseconds since epoch.
type ThreadRecord struct {
	ID        string `json:"id"`
	CreatedAt int64  `json:"createdAt"`
	UpdatedAt int64  `json:"updatedAt"`
	TesterID  string `json:"testerId"`

	// References to the sessions backing each side's message history. The
	// store never holds a copy of those histories.
	SessionRefA string `json:"sessionRefA,omitempty"`
	SessionRefB string `json:"sessionRefB,omitempty"`

	// Title is derived from the first turn's user input and immutable after.
	Title string `json:"title"`

	// Variant snapshots are kept opaque; the UI must not rely on them to
	// reveal method identities during a blind test.
	VariantA map[string]any `json:"variantA,omitempty"`
	VariantB map[string]any `json:"variantB,omitempty"`

	Turns []TurnRecord `json:"turns"`

	// Vote is nil until the single irreversible vote is submitted.
	Vote    *VoteType `json:"vote"`
	VotedAt *int64    `json:"votedAt"`

	WasBlind bool `json:"wasBlind"`

	// Internal holds research metadata for export, never shown to end users.
	Internal map[string]any `json:"internal,omitempty"`
}

// Voted reports whether the thread has reached its terminal voted state.
func (t *ThreadRecord) Voted() bool { return t.Vote != nil }

// ArenaConfig is the process-wide persisted configuration, mutated only
// through explicit config updates.
type ArenaConfig struct {
	TesterID           string `json:"testerId"`
	LastBackupTime     int64  `json:"lastBackupTime"`
	BackupIntervalDays int    `json:"backupIntervalDays"`
}
