package draft

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/sunsetmark/palyingwithedgar-sub001/internal/filing/models"
	"github.com/sunsetmark/palyingwithedgar-sub001/pkg/platform/sentinel"
)

const draftKeyPrefix = "filing:draft:"

// RedisStore keeps drafts in Redis with a TTL. Suited to short-lived
// auto-saves; long-lived drafts belong in the postgres store.
type RedisStore struct {
	client *redis.Client
	ttl    time.Duration
	codec  *payloadCodec
}

// NewRedisStore creates a Redis-backed draft store. A zero ttl means drafts
// never expire.
func NewRedisStore(client *redis.Client, ttl time.Duration, opts ...Option) (*RedisStore, error) {
	codec, err := codecFromOptions(opts)
	if err != nil {
		return nil, err
	}
	return &RedisStore{client: client, ttl: ttl, codec: codec}, nil
}

// Save stores a draft snapshot under a generated key.
func (s *RedisStore) Save(ctx context.Context, record models.FilingRecord) (uuid.UUID, error) {
	payload, err := s.codec.encode(record)
	if err != nil {
		return uuid.Nil, err
	}

	id := uuid.New()
	if err := s.client.Set(ctx, draftKeyPrefix+id.String(), payload, s.ttl).Err(); err != nil {
		return uuid.Nil, fmt.Errorf("set draft: %w", err)
	}
	return id, nil
}

// Load reads the draft snapshot for id.
func (s *RedisStore) Load(ctx context.Context, id uuid.UUID) (models.FilingRecord, error) {
	payload, err := s.client.Get(ctx, draftKeyPrefix+id.String()).Bytes()
	if errors.Is(err, redis.Nil) {
		return models.FilingRecord{}, fmt.Errorf("draft %s: %w", id, sentinel.ErrNotFound)
	}
	if err != nil {
		return models.FilingRecord{}, fmt.Errorf("get draft: %w", err)
	}

	return s.codec.decode(payload)
}
