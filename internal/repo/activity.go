package repo

import (
	"context"
	"time"

	"github.com/aadhidev/stockify/internal/models"
	"github.com/google/uuid"
)

type ActivityFilter struct {
	Action models.Action
	Entity models.Entity
	From   time.Time
	To     time.Time
}

func (r *GormRepo) AppendActivity(ctx context.Context, entry *models.ActivityLog) error {
	return r.DB.WithContext(ctx).Create(entry).Error
}

func (r *GormRepo) QueryActivity(ctx context.Context, f ActivityFilter, limit int) ([]models.ActivityLog, error) {
	q := r.DB.WithContext(ctx).Model(&models.ActivityLog{})
	if f.Action != "" {
		q = q.Where("action = ?", f.Action)
	}
	if f.Entity != "" {
		q = q.Where("entity = ?", f.Entity)
	}
	if !f.From.IsZero() && !f.To.IsZero() {
		q = q.Where("timestamp BETWEEN ? AND ?", f.From, f.To)
	}

	var entries []models.ActivityLog
	if err := q.Order("timestamp DESC").Limit(limit).Find(&entries).Error; err != nil {
		return nil, err
	}
	return entries, nil
}

func (r *GormRepo) UserActivity(ctx context.Context, userID uuid.UUID, limit int) ([]models.ActivityLog, error) {
	var entries []models.ActivityLog
	err := r.DB.WithContext(ctx).Model(&models.ActivityLog{}).
		Where("user_id = ?", userID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}
