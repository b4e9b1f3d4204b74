package service

import (
	"context"
	"time"

	"github.com/aadhidev/stockify/internal/logging"
	"github.com/aadhidev/stockify/internal/models"
	"github.com/aadhidev/stockify/internal/mykafka"
	"github.com/aadhidev/stockify/internal/repo"
	"github.com/google/uuid"
)

// AuditService appends activity entries. Record never fails the primary
// operation: audit here is diagnostic, not transactional. A failed append
// is logged and raised as an alert event instead.
type AuditService struct {
	Repo     *repo.GormRepo
	Producer *mykafka.Producer
}

func (s *AuditService) Record(ctx context.Context, userID uuid.UUID, action models.Action, entity models.Entity, entityID *uuid.UUID, details string) {
	entry := &models.ActivityLog{
		UserID:    userID,
		Action:    action,
		Entity:    entity,
		EntityID:  entityID,
		Details:   details,
		Timestamp: time.Now().UTC(),
	}

	if err := s.Repo.AppendActivity(ctx, entry); err != nil {
		l := logging.FromContext(ctx).With("component", "audit")
		l.Error("audit_append_failed", "action", string(action), "entity", string(entity), "error", err)

		alertCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
		defer cancel()
		alert := map[string]any{
			"type":    "audit_append_failed",
			"user_id": userID.String(),
			"action":  string(action),
			"entity":  string(entity),
			"error":   err.Error(),
		}
		if perr := s.Producer.PublishEvent(alertCtx, "audit_alerts", userID.String(), alert); perr != nil {
			l.Error("audit_alert_publish_failed", "error", perr)
		}
	}
}

func (s *AuditService) Query(ctx context.Context, f repo.ActivityFilter, actor Actor) ([]models.ActivityLog, error) {
	if !actor.Role.Admin() {
		return nil, ErrForbidden
	}
	return s.Repo.QueryActivity(ctx, f, 100)
}

func (s *AuditService) UserHistory(ctx context.Context, userID uuid.UUID) ([]models.ActivityLog, error) {
	return s.Repo.UserActivity(ctx, userID, 50)
}
