package service

import (
	"context"

	"medical-appointments-api/internal/domain/entity"
	"medical-appointments-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// AuditService writes the audit trail. Recording never fails the caller:
// a lost audit row is logged and swallowed.
type AuditService interface {
	Record(ctx context.Context, actorID uint, role entity.Role, action string, metadata entity.JSON)
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

func (s *auditService) Record(ctx context.Context, actorID uint, role entity.Role, action string, metadata entity.JSON) {
	auditLog := &entity.AuditLog{
		ActorID:   actorID,
		ActorRole: role,
		Action:    action,
		Metadata:  metadata,
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log for action %s: %+v", action, err)
	}
}
