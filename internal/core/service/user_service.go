package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/contentdesk/cms/internal/core/access"
	"github.com/contentdesk/cms/internal/core/domain"
	"github.com/contentdesk/cms/internal/core/ports"
	"github.com/contentdesk/cms/internal/pkg/metrics"
)

const collectionUsers = "users"

// UserService manages accounts under access.UserPolicy.
type UserService struct {
	repo   ports.UserRepository
	policy access.Policy
	log    zerolog.Logger
}

func NewUserService(repo ports.UserRepository, log zerolog.Logger) *UserService {
	return &UserService{repo: repo, policy: access.UserPolicy{}, log: log}
}

func (s *UserService) deny(actor *domain.Actor, op access.Operation) error {
	metrics.AccessDeniedTotal.WithLabelValues(collectionUsers, string(op)).Inc()
	return access.DenialError(actor)
}

func (s *UserService) List(ctx context.Context, actor *domain.Actor, page, limit int) (*ports.UserPage, error) {
	dec := s.policy.Evaluate(actor, access.OpRead, nil)
	if !dec.Permits() {
		return nil, s.deny(actor, access.OpRead)
	}

	page, limit = normalizePage(page, limit)
	docs, total, err := s.repo.List(ctx, dec, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return &ports.UserPage{
		Docs:       docs,
		TotalDocs:  total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

// Get returns a user visible to actor. Users outside the read filter are
// reported as not found.
func (s *UserService) Get(ctx context.Context, actor *domain.Actor, id string) (*domain.User, error) {
	dec := s.policy.Evaluate(actor, access.OpRead, nil)
	if !dec.Permits() {
		return nil, s.deny(actor, access.OpRead)
	}

	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get user: %w", err)
	}
	if !dec.Admits(user) {
		return nil, fmt.Errorf("get user: %w", domain.ErrUserNotFound)
	}
	return user, nil
}

func (s *UserService) Update(ctx context.Context, actor *domain.Actor, id string, in ports.UpdateUserInput) (*domain.User, error) {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if dec := s.policy.Evaluate(actor, access.OpUpdate, target); !dec.Permits() {
		return nil, s.deny(actor, access.OpUpdate)
	}

	var (
		patch ports.UserPatch
		rules userPatchRules
	)
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		patch.Name = &name
		rules.Name = &name
	}
	if in.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*in.Email))
		patch.Email = &email
		rules.Email = &email
	}
	if in.Role != nil {
		role := domain.Role(*in.Role)
		patch.Role = &role
		rules.Role = in.Role
	}
	if err := validateStruct(rules); err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	if patch.Role != nil && *patch.Role != target.Role && !access.CanUpdateRole(actor) {
		metrics.AccessDeniedTotal.WithLabelValues(collectionUsers, "update_role").Inc()
		return nil, domain.ErrForbidden
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update user: %w", err)
	}
	s.log.Info().Str("user_id", id).Str("actor", actor.ID).Msg("user updated")
	return updated, nil
}

func (s *UserService) Delete(ctx context.Context, actor *domain.Actor, id string) error {
	target, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	if dec := s.policy.Evaluate(actor, access.OpDelete, target); !dec.Permits() {
		return s.deny(actor, access.OpDelete)
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}
	s.log.Info().Str("user_id", id).Str("actor", actor.ID).Msg("user deleted")
	return nil
}
