package persistence

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatRoundId(t *testing.T) {
	createdAt := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)

	raw := FormatRoundId("sess-abc", 3, createdAt)

	assert.Equal(t, "sess-abc_3_2025-01-15T10:30:00Z", raw)
}

func TestParseRoundIdRoundTrip(t *testing.T) {
	createdAt := time.Date(2025, 1, 15, 10, 30, 0, 0, time.UTC)
	raw := FormatRoundId("sess-abc", 3, createdAt)

	round := ParseRoundId(raw)

	assert.Equal(t, "sess-abc", round.SessionId)
	assert.Equal(t, 3, round.Round)
	assert.True(t, round.CreatedAt.Equal(createdAt))
	assert.Equal(t, raw, round.String())
}

func TestParseRoundIdSessionWithUnderscores(t *testing.T) {
	round := ParseRoundId("user_42_session_2_2025-01-15T10:30:00Z")

	assert.Equal(t, "user_42_session", round.SessionId)
	assert.Equal(t, 2, round.Round)
}

func TestParseRoundIdDefaults(t *testing.T) {
	cases := []struct {
		name    string
		raw     string
		session string
		round   int
	}{
		{"bare session id", "sess-abc", "sess-abc", 1},
		{"non-numeric round", "sess-abc_notanumber_2025-01-15T10:30:00Z", "sess-abc", 1},
		{"zero round", "sess-abc_0_2025-01-15T10:30:00Z", "sess-abc", 1},
		{"negative round", "sess-abc_-2_2025-01-15T10:30:00Z", "sess-abc", 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			round := ParseRoundId(tc.raw)
			assert.Equal(t, tc.session, round.SessionId)
			assert.Equal(t, tc.round, round.Round)
		})
	}
}

func TestParseRoundIdBadTimestampLeftZero(t *testing.T) {
	round := ParseRoundId("sess-abc_2_yesterday")

	assert.Equal(t, 2, round.Round)
	assert.True(t, round.CreatedAt.IsZero())
}
