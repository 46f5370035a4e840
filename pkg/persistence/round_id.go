package persistence

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// RoundId identifies which session/round a persisted question belongs to.
// The wire convention external callers must produce is
// "{session_id}_{round_number}_{ISO8601 timestamp}".
type RoundId struct {
	SessionId string
	Round     int
	CreatedAt time.Time
}

// FormatRoundId renders the documented composite convention.
func FormatRoundId(sessionId string, round int, createdAt time.Time) string {
	return fmt.Sprintf("%s_%d_%s", sessionId, round, createdAt.UTC().Format(time.RFC3339))
}

// ParseRoundId resolves a composite round identifier. A malformed or missing
// round number defaults to round 1; an unparseable timestamp is left zero.
// Session ids may themselves contain underscores, so the round number and
// timestamp are taken from the trailing two segments.
func ParseRoundId(raw string) RoundId {
	parts := strings.Split(raw, "_")
	if len(parts) < 3 {
		return RoundId{SessionId: raw, Round: 1}
	}

	tsPart := parts[len(parts)-1]
	roundPart := parts[len(parts)-2]
	sessionId := strings.Join(parts[:len(parts)-2], "_")

	round := 1
	if n, err := strconv.Atoi(roundPart); err == nil && n > 0 {
		round = n
	}

	var createdAt time.Time
	if ts, err := time.Parse(time.RFC3339, tsPart); err == nil {
		createdAt = ts
	}

	return RoundId{
		SessionId: sessionId,
		Round:     round,
		CreatedAt: createdAt,
	}
}

func (r RoundId) String() string {
	return FormatRoundId(r.SessionId, r.Round, r.CreatedAt)
}
