package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/contentdesk/cms/internal/core/access"
	"github.com/contentdesk/cms/internal/core/domain"
	"github.com/contentdesk/cms/internal/core/ports"
	"github.com/contentdesk/cms/internal/pkg/metrics"
)

const collectionMedia = "media"

// MediaService manages image metadata under access.MediaPolicy.
type MediaService struct {
	repo   ports.MediaRepository
	policy access.Policy
	log    zerolog.Logger
}

func NewMediaService(repo ports.MediaRepository, log zerolog.Logger) *MediaService {
	return &MediaService{repo: repo, policy: access.MediaPolicy{}, log: log}
}

func (s *MediaService) check(actor *domain.Actor, op access.Operation) error {
	if s.policy.Evaluate(actor, op, nil).Permits() {
		return nil
	}
	metrics.AccessDeniedTotal.WithLabelValues(collectionMedia, string(op)).Inc()
	return access.DenialError(actor)
}

func (s *MediaService) List(ctx context.Context, actor *domain.Actor, page, limit int) (*ports.MediaPage, error) {
	if err := s.check(actor, access.OpRead); err != nil {
		return nil, err
	}
	page, limit = normalizePage(page, limit)
	docs, total, err := s.repo.List(ctx, page, limit)
	if err != nil {
		return nil, fmt.Errorf("list media: %w", err)
	}
	return &ports.MediaPage{
		Docs:       docs,
		TotalDocs:  total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages(total, limit),
	}, nil
}

func (s *MediaService) Get(ctx context.Context, actor *domain.Actor, id string) (*domain.Media, error) {
	if err := s.check(actor, access.OpRead); err != nil {
		return nil, err
	}
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get media: %w", err)
	}
	return m, nil
}

func (s *MediaService) Create(ctx context.Context, actor *domain.Actor, in ports.CreateMediaInput) (*domain.Media, error) {
	if err := s.check(actor, access.OpCreate); err != nil {
		return nil, err
	}

	m := &domain.Media{
		Alt:      strings.TrimSpace(in.Alt),
		Filename: strings.TrimSpace(in.Filename),
		MimeType: strings.ToLower(strings.TrimSpace(in.MimeType)),
		Filesize: in.Filesize,
		Sizes:    append([]domain.ImageSize(nil), domain.DefaultImageSizes...),
	}
	if err := validateStruct(mediaRules{
		Alt:      m.Alt,
		Filename: m.Filename,
		MimeType: m.MimeType,
		Filesize: m.Filesize,
	}); err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}

	now := time.Now().UTC()
	m.CreatedAt = now
	m.UpdatedAt = now
	if err := s.repo.Create(ctx, m); err != nil {
		return nil, fmt.Errorf("create media: %w", err)
	}
	s.log.Info().Str("media_id", m.ID).Str("filename", m.Filename).Msg("media created")
	return m, nil
}

func (s *MediaService) UpdateAlt(ctx context.Context, actor *domain.Actor, id, alt string) (*domain.Media, error) {
	if err := s.check(actor, access.OpUpdate); err != nil {
		return nil, err
	}
	alt = strings.TrimSpace(alt)
	if err := validateStruct(altRules{Alt: alt}); err != nil {
		return nil, fmt.Errorf("update media: %w", err)
	}
	m, err := s.repo.UpdateAlt(ctx, id, alt)
	if err != nil {
		return nil, fmt.Errorf("update media: %w", err)
	}
	return m, nil
}

func (s *MediaService) Delete(ctx context.Context, actor *domain.Actor, id string) error {
	if err := s.check(actor, access.OpDelete); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete media: %w", err)
	}
	s.log.Info().Str("media_id", id).Str("actor", actor.ID).Msg("media deleted")
	return nil
}
