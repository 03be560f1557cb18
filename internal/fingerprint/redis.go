package fingerprint

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/Peerawityam/classfund-web/internal/models"
)

const keyPrefix = "classfund:slip:"

// RedisStore keeps fingerprint claims in Redis so multiple instances share
// one reservation set. Keys never expire; claims are permanent.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) IsClaimed(ctx context.Context, fp string) (Claim, bool, error) {
	val, err := s.client.Get(ctx, keyPrefix+fp).Result()
	if err == redis.Nil {
		return Claim{}, false, nil
	}
	if err != nil {
		return Claim{}, false, fmt.Errorf("fingerprint lookup: %w", err)
	}

	var claim Claim
	if err := json.Unmarshal([]byte(val), &claim); err != nil {
		return Claim{}, false, fmt.Errorf("decode fingerprint claim: %w", err)
	}
	return claim, true, nil
}

func (s *RedisStore) ClaimFingerprint(ctx context.Context, fp string, claim Claim) error {
	payload, err := json.Marshal(claim)
	if err != nil {
		return fmt.Errorf("encode fingerprint claim: %w", err)
	}

	// SetNX gives the atomic check-and-set: exactly one of two concurrent
	// submissions with the same slip wins.
	ok, err := s.client.SetNX(ctx, keyPrefix+fp, payload, 0).Result()
	if err != nil {
		return fmt.Errorf("claim fingerprint: %w", err)
	}
	if !ok {
		return models.ErrFingerprintClaimed
	}
	return nil
}

var _ Store = (*RedisStore)(nil)
