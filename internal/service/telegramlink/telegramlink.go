// Package telegramlink pairs web accounts with Telegram chats through
// short-lived single-use codes.
package telegramlink

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log/slog"
	"math/big"

	"github.com/google/uuid"

	"github.com/nexotime/nexotime/internal/domain"
	"github.com/nexotime/nexotime/internal/platform/logger"
	redisplatform "github.com/nexotime/nexotime/internal/platform/redis"
	"github.com/nexotime/nexotime/internal/store"
)

const (
	codeLength   = 6
	codeAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Service errors
var (
	// ErrInvalidLinkCode indicates the code is unknown, expired, or already used.
	ErrInvalidLinkCode = errors.New("invalid or expired link code")

	// ErrAlreadyLinked indicates the Telegram chat is bound to another account.
	ErrAlreadyLinked = errors.New("telegram account already linked to another user")
)

// CodeStore persists pending link codes. Implemented by the Redis-backed
// store; codes expire server-side and redemption is single-use.
type CodeStore interface {
	Put(ctx context.Context, code string, userID uuid.UUID) error
	Take(ctx context.Context, code string) (uuid.UUID, error)
}

// Service issues and redeems Telegram link codes.
type Service struct {
	users  store.UserStore
	codes  CodeStore
	logger *slog.Logger
}

// NewService creates a telegram link Service.
// If logger is nil, a default logger will be used.
func NewService(users store.UserStore, codes CodeStore, logger *slog.Logger) *Service {
	if users == nil {
		panic("users cannot be nil")
	}
	if codes == nil {
		panic("codes cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Service{
		users:  users,
		codes:  codes,
		logger: logger.With(slog.String("component", "telegram_link")),
	}
}

// GenerateCode issues a fresh link code for the user. The code stays valid
// for the store's TTL and is shown to the user to paste into the bot's
// /link command. Returns store.ErrUserNotFound for unknown users.
func (s *Service) GenerateCode(ctx context.Context, userID uuid.UUID) (string, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return "", err
	}

	code, err := randomCode()
	if err != nil {
		log.Error("failed to generate link code",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return "", fmt.Errorf("failed to generate link code: %w", err)
	}

	if err := s.codes.Put(ctx, code, userID); err != nil {
		log.Error("failed to store link code",
			slog.String("error", err.Error()),
			slog.String("user_id", userID.String()))
		return "", err
	}

	log.Info("link code generated",
		slog.String("user_id", userID.String()))
	return code, nil
}

// Redeem consumes a link code and binds the Telegram chat to its owner.
// Returns ErrInvalidLinkCode for unknown or expired codes and
// ErrAlreadyLinked when the chat belongs to another account.
func (s *Service) Redeem(ctx context.Context, code, telegramID string) (*domain.User, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	userID, err := s.codes.Take(ctx, code)
	if err != nil {
		if errors.Is(err, redisplatform.ErrCodeNotFound) {
			return nil, ErrInvalidLinkCode
		}
		return nil, err
	}

	if err := s.users.SetTelegramID(ctx, userID, telegramID); err != nil {
		if errors.Is(err, store.ErrTelegramIDExists) {
			return nil, ErrAlreadyLinked
		}
		return nil, err
	}

	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	log.Info("telegram account linked",
		slog.String("user_id", userID.String()))
	return user, nil
}

func randomCode() (string, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, codeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return string(buf), nil
}
