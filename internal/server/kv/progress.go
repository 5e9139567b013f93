package kv

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Progress is a candidate's unfinished exam: answers by question ordinal and
// the ordinals marked as skipped.
type Progress struct {
	Answers map[int]int `json:"answers"`
	Skipped []int       `json:"skipped"`
}

// ProgressKeys returns the answers and skipped keys for an exam attempt.
func ProgressKeys(examName, candidateID string) (answers, skipped string) {
	return "exam_" + examName + "_" + candidateID, "skipped_" + examName + "_" + candidateID
}

type ProgressStore struct {
	rdb *redis.Client
}

func NewProgressStore(rdb *redis.Client) *ProgressStore {
	return &ProgressStore{rdb: rdb}
}

// Save writes both keys in one transaction with the same TTL.
func (s *ProgressStore) Save(ctx context.Context, examName, candidateID string, p Progress, ttl time.Duration) error {
	answers, err := json.Marshal(p.Answers)
	if err != nil {
		return err
	}
	skipped, err := json.Marshal(p.Skipped)
	if err != nil {
		return err
	}

	ak, sk := ProgressKeys(examName, candidateID)
	_, err = s.rdb.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, ak, answers, ttl)
		pipe.Set(ctx, sk, skipped, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}

// Load returns saved progress. Missing keys give empty progress.
func (s *ProgressStore) Load(ctx context.Context, examName, candidateID string) (Progress, error) {
	ak, sk := ProgressKeys(examName, candidateID)
	p := Progress{Answers: map[int]int{}, Skipped: []int{}}

	vals, err := s.rdb.MGet(ctx, ak, sk).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return p, fmt.Errorf("redis error: %w", err)
	}
	if len(vals) == 2 {
		if v, ok := vals[0].(string); ok {
			if err := json.Unmarshal([]byte(v), &p.Answers); err != nil {
				return p, err
			}
		}
		if v, ok := vals[1].(string); ok {
			if err := json.Unmarshal([]byte(v), &p.Skipped); err != nil {
				return p, err
			}
		}
	}
	return p, nil
}

func (s *ProgressStore) Clear(ctx context.Context, examName, candidateID string) error {
	ak, sk := ProgressKeys(examName, candidateID)
	if err := s.rdb.Del(ctx, ak, sk).Err(); err != nil {
		return fmt.Errorf("redis error: %w", err)
	}
	return nil
}
