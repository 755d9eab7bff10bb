package service

import (
	"context"

	"github.com/guttosm/fba-quote-service/internal/domain/model"
	"github.com/guttosm/fba-quote-service/internal/repository"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 500
)

// AuditService reads back recorded audit events.
type AuditService interface {
	// QueryEvents returns events matching opts, newest first.
	QueryEvents(ctx context.Context, opts model.AuditQueryOptions) ([]*model.AuditEvent, error)

	// CountEvents returns the number of events matching opts, ignoring paging.
	CountEvents(ctx context.Context, opts model.AuditQueryOptions) (int64, error)
}

// AuditServiceImpl implements AuditService.
type AuditServiceImpl struct {
	repo repository.AuditEventsRepositoryInterface
}

// NewAuditService creates an audit query service. repo may be nil when
// MongoDB is disabled.
func NewAuditService(repo repository.AuditEventsRepositoryInterface) AuditService {
	return &AuditServiceImpl{repo: repo}
}

// QueryEvents implements AuditService. The limit defaults to 50 and is capped at 500.
func (s *AuditServiceImpl) QueryEvents(ctx context.Context, opts model.AuditQueryOptions) ([]*model.AuditEvent, error) {
	if s.repo == nil {
		return nil, ErrRepositoryNotConfigured
	}
	events, err := s.repo.Query(ctx, NormalizeAuditPaging(opts))
	if err != nil {
		return nil, err
	}
	if events == nil {
		events = []*model.AuditEvent{}
	}
	return events, nil
}

// NormalizeAuditPaging applies the default and maximum page size and
// clamps a negative skip to zero.
func NormalizeAuditPaging(opts model.AuditQueryOptions) model.AuditQueryOptions {
	switch {
	case opts.Limit <= 0:
		opts.Limit = defaultAuditLimit
	case opts.Limit > maxAuditLimit:
		opts.Limit = maxAuditLimit
	}
	if opts.Skip < 0 {
		opts.Skip = 0
	}
	return opts
}

// CountEvents implements AuditService.
func (s *AuditServiceImpl) CountEvents(ctx context.Context, opts model.AuditQueryOptions) (int64, error) {
	if s.repo == nil {
		return 0, ErrRepositoryNotConfigured
	}
	opts.Limit, opts.Skip = 0, 0
	return s.repo.Count(ctx, opts)
}
