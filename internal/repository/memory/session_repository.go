package memory

import (
	"time"

	"adaptive-assessment-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Sessions expire two hours after their last touch; expired entries are
	// purged every 10 minutes.
	c := cache.New(2*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(session *store.AssessmentSession) {
	r.cache.Set(session.Id, session, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionId string) (*store.AssessmentSession, bool) {
	if x, found := r.cache.Get(sessionId); found {
		return x.(*store.AssessmentSession), true
	}
	return nil, false
}

func (r *SessionRepository) Delete(sessionId string) {
	r.cache.Delete(sessionId)
}
