package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// LinkCodeTTL is how long a generated Telegram link code stays redeemable.
const LinkCodeTTL = 10 * time.Minute

// ErrCodeNotFound indicates the link code does not exist or has expired.
var ErrCodeNotFound = errors.New("link code not found or expired")

const linkCodeKeyPrefix = "telegram:link:"

// LinkCodeStore keeps pending Telegram link codes in Redis. Codes expire
// after LinkCodeTTL and are consumed atomically on redemption.
type LinkCodeStore struct {
	client *redis.Client
}

// NewLinkCodeStore creates a LinkCodeStore backed by the given client.
func NewLinkCodeStore(client *redis.Client) *LinkCodeStore {
	if client == nil {
		panic("client cannot be nil")
	}
	return &LinkCodeStore{client: client}
}

// Put stores a code for the given user, replacing any previous code value
// under the same code string. The code expires after LinkCodeTTL.
func (s *LinkCodeStore) Put(ctx context.Context, code string, userID uuid.UUID) error {
	key := linkCodeKeyPrefix + code
	if err := s.client.Set(ctx, key, userID.String(), LinkCodeTTL).Err(); err != nil {
		return fmt.Errorf("failed to store link code: %w", err)
	}
	return nil
}

// Take redeems a code and returns the user it belongs to. GETDEL makes
// redemption single-use even under concurrent attempts.
func (s *LinkCodeStore) Take(ctx context.Context, code string) (uuid.UUID, error) {
	key := linkCodeKeyPrefix + code

	value, err := s.client.GetDel(ctx, key).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, ErrCodeNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to redeem link code: %w", err)
	}

	userID, err := uuid.Parse(value)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt link code value: %w", err)
	}
	return userID, nil
}
