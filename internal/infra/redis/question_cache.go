package redis

import (
	"context"
	"encoding/json"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"

	"quiz-api/internal/domain"
)

// QuestionLoader fetches a quiz's full question set from a backing store.
type QuestionLoader interface {
	QuizQuestions(ctx context.Context, quizID string) ([]domain.Question, error)
}

// QuestionCache caches each quiz's gradable question snapshot in Redis and
// falls back to a loader on cache miss. The whole question set is cached as
// one JSON value: grading needs the option sets and text answers, not just a
// per-question correct id, and scoring always reads the full quiz anyway.
//
// Stored as: SET quiz:{quizID}:questions {json} EX {ttl}
type QuestionCache struct {
	client *redis.Client
	loader QuestionLoader
	ttl    time.Duration
	sf     singleflight.Group
	rnd    *rand.Rand
}

func NewQuestionCache(client *redis.Client, loader QuestionLoader, ttl time.Duration) *QuestionCache {
	return &QuestionCache{
		client: client,
		loader: loader,
		ttl:    ttl,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

func (c *QuestionCache) QuizQuestions(ctx context.Context, quizID string) ([]domain.Question, error) {
	key := c.key(quizID)

	if questions, ok := c.fromCache(ctx, key); ok {
		return questions, nil
	}

	result, err, _ := c.sf.Do(quizID, func() (interface{}, error) {
		// Re-check cache in case another goroutine filled it.
		if questions, ok := c.fromCache(ctx, key); ok {
			return questions, nil
		}

		questions, err := c.loader.QuizQuestions(ctx, quizID)
		if err != nil {
			return nil, err
		}

		if data, err := json.Marshal(questions); err == nil {
			// best-effort: a failed cache write must not fail the read
			_ = c.client.Set(ctx, key, data, c.ttlWithJitter()).Err()
		}
		return questions, nil
	})
	if err != nil {
		return nil, err
	}
	return result.([]domain.Question), nil
}

// Invalidate evicts the snapshot so newly added questions are graded
// immediately instead of after TTL expiry.
func (c *QuestionCache) Invalidate(ctx context.Context, quizID string) error {
	return c.client.Del(ctx, c.key(quizID)).Err()
}

func (c *QuestionCache) fromCache(ctx context.Context, key string) ([]domain.Question, bool) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var questions []domain.Question
	if err := json.Unmarshal(data, &questions); err != nil {
		return nil, false
	}
	return questions, true
}

func (c *QuestionCache) key(quizID string) string {
	return "quiz:" + quizID + ":questions"
}

func (c *QuestionCache) ttlWithJitter() time.Duration {
	if c.ttl <= 0 {
		return 0
	}
	jitterMax := int64(c.ttl) / 10
	return c.ttl + time.Duration(c.rnd.Int63n(jitterMax+1))
}
