package service

import (
	"context"

	"timecraft/internal/model"
	"timecraft/internal/repository"
)

// AuditService exposes the audit trail of generated rewrites.
type AuditService interface {
	ListRecent(ctx context.Context, limit int) ([]model.AuditEvent, error)
}

type auditService struct {
	audits repository.AuditRepository
}

// NewAuditService creates a new audit service.
func NewAuditService(audits repository.AuditRepository) AuditService {
	return &auditService{audits: audits}
}

func (s *auditService) ListRecent(ctx context.Context, limit int) ([]model.AuditEvent, error) {
	return s.audits.ListRecent(ctx, limit)
}
