package ports

import (
	"context"
	"time"

	"github.com/contentdesk/cms/internal/core/domain"
)

// AuthService registers accounts and resolves request actors from tokens.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*domain.User, error)
	Login(ctx context.Context, email, password string) (string, *domain.User, error)
	Logout(ctx context.Context, token string) error
	ParseToken(ctx context.Context, token string) (*domain.Actor, error)
	Me(ctx context.Context, actor *domain.Actor) (*domain.User, error)
}

// LoginLimiter tracks failed logins per account.
type LoginLimiter interface {
	Locked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}

// TokenRevoker keeps the list of logged-out token ids.
type TokenRevoker interface {
	Revoke(ctx context.Context, tokenID string, ttl time.Duration) error
	IsRevoked(ctx context.Context, tokenID string) (bool, error)
}
