package repository

import (
	"context"
	"time"

	auth "github.com/Exploree-Solutions/exploree-auth"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// ActivityLogsRepository implements auth.ActivityLogs using Bun.
type ActivityLogsRepository struct {
	db *bun.DB
}

func NewActivityLogsRepository(db *bun.DB) *ActivityLogsRepository {
	return &ActivityLogsRepository{db: db}
}

func (r *ActivityLogsRepository) Record(ctx context.Context, entry *auth.ActivityLog) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.db.NewInsert().Model(entry).Exec(ctx)
	return err
}

func (r *ActivityLogsRepository) List(ctx context.Context, criteria auth.ActivityListCriteria) ([]*auth.ActivityLog, int, error) {
	var entries []*auth.ActivityLog

	q := r.db.NewSelect().Model(&entries)

	if criteria.UserID != "" {
		q = q.Where("al.user_id = ?", criteria.UserID)
	}

	if criteria.Type != "" {
		q = q.Where("al.type = ?", string(criteria.Type))
	}

	page := criteria.Page
	if page < 1 {
		page = 1
	}

	limit := criteria.Limit
	if limit < 1 {
		limit = 20
	}

	total, err := q.OrderExpr("al.created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return entries, total, nil
}

func (r *ActivityLogsRepository) Recent(ctx context.Context, limit int) ([]*auth.ActivityLog, error) {
	if limit < 1 {
		limit = 10
	}

	var entries []*auth.ActivityLog
	err := r.db.NewSelect().
		Model(&entries).
		OrderExpr("al.created_at DESC").
		Limit(limit).
		Scan(ctx)
	if err != nil {
		return nil, err
	}

	return entries, nil
}

func (r *ActivityLogsRepository) CountSince(ctx context.Context, activityType auth.ActivityType, since time.Time) (int, error) {
	return r.db.NewSelect().
		Model((*auth.ActivityLog)(nil)).
		Where("type = ?", string(activityType)).
		Where("created_at >= ?", since).
		Count(ctx)
}
