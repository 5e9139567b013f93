package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/dmitrijs2005/examdesk/internal/common"
	"github.com/dmitrijs2005/examdesk/internal/wizard"
)

const sessionPrefix = "wizard:"

// SessionStore persists wizard sessions as JSON with a sliding TTL.
type SessionStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewSessionStore(rdb *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{rdb: rdb, ttl: ttl}
}

// Save writes s and resets its TTL.
func (s *SessionStore) Save(ctx context.Context, sess *wizard.Session) error {
	b, err := json.Marshal(sess)
	if err != nil {
		return err
	}
	if err := s.rdb.Set(ctx, sessionPrefix+sess.ID, b, s.ttl).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

// Load returns the session or common.ErrSessionExpired when it is gone.
func (s *SessionStore) Load(ctx context.Context, id string) (*wizard.Session, error) {
	b, err := s.rdb.Get(ctx, sessionPrefix+id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, common.ErrSessionExpired
		}
		return nil, fmt.Errorf("redis error: %w", err)
	}
	sess := &wizard.Session{}
	if err := json.Unmarshal(b, sess); err != nil {
		return nil, err
	}
	return sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.rdb.Del(ctx, sessionPrefix+id).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}
