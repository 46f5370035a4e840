package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"adaptive-assessment-be/internal/pkg/logger"
	"adaptive-assessment-be/pkg/store"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

const (
	profileToolName    = "lookup_profile"
	profileTimeout     = 3 * time.Second
	profileMaxAttempts = 3
	profileCacheTTL    = 5 * time.Minute
)

// ProfileSource resolves a learner's self-assessment snapshot.
type ProfileSource interface {
	FindSnapshot(ctx context.Context, learnerId uuid.UUID) (*store.LearnerProfileSnapshot, error)
}

// ProfileTool looks up the learner profile feeding item drafting.
// Lookup failures are retried three times, then degrade to the default
// beginner profile.
type ProfileTool struct {
	source ProfileSource
	cache  *gocache.Cache
	logger logger.ILogger
}

func NewProfileTool(source ProfileSource, log logger.ILogger) *ProfileTool {
	return &ProfileTool{
		source: source,
		cache:  gocache.New(profileCacheTTL, 10*time.Minute),
		logger: log,
	}
}

type profileArgs struct {
	LearnerId string `json:"learner_id"`
}

func (t *ProfileTool) Name() string { return profileToolName }

func (t *ProfileTool) Description() string {
	return "Look up the learner's self-assessment profile (level, experience, role, interests, previous score)."
}

func (t *ProfileTool) InputSchema() string {
	return `{"learner_id": "<uuid>"}`
}

func (t *ProfileTool) Timeout() time.Duration { return profileTimeout }

func (t *ProfileTool) Validate(args json.RawMessage) error {
	var a profileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return fmt.Errorf("invalid arguments: %w", err)
	}
	if _, err := uuid.Parse(a.LearnerId); err != nil {
		return fmt.Errorf("learner_id is not a valid uuid: %w", err)
	}
	return nil
}

func (t *ProfileTool) Invoke(ctx context.Context, args json.RawMessage) (string, error) {
	var a profileArgs
	if err := json.Unmarshal(args, &a); err != nil {
		return "", fmt.Errorf("invalid arguments: %w", err)
	}
	learnerId, err := uuid.Parse(a.LearnerId)
	if err != nil {
		return "", fmt.Errorf("learner_id is not a valid uuid: %w", err)
	}

	snapshot := t.Lookup(ctx, learnerId)

	out, err := json.Marshal(snapshot)
	if err != nil {
		return "", err
	}
	return string(out), nil
}

// Lookup resolves the snapshot with retries and the beginner fallback.
// Snapshots are immutable, so a short cache is safe.
func (t *ProfileTool) Lookup(ctx context.Context, learnerId uuid.UUID) *store.LearnerProfileSnapshot {
	if cached, found := t.cache.Get(learnerId.String()); found {
		return cached.(*store.LearnerProfileSnapshot)
	}

	var lastErr error
	for attempt := 1; attempt <= profileMaxAttempts; attempt++ {
		snapshot, err := t.source.FindSnapshot(ctx, learnerId)
		if err == nil {
			if snapshot == nil {
				break // no profile on record, fall through to default
			}
			t.cache.Set(learnerId.String(), snapshot, gocache.DefaultExpiration)
			return snapshot
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	if lastErr != nil {
		t.logger.Warn("ProfileTool", "Profile lookup failed, using beginner default", map[string]interface{}{
			"learner_id": learnerId,
			"error":      lastErr.Error(),
		})
	}
	return store.DefaultProfile(learnerId)
}
