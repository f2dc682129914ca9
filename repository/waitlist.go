package repository

import (
	"context"
	"time"

	auth "github.com/Exploree-Solutions/exploree-auth"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// WaitlistRepository implements auth.Waitlist using Bun.
type WaitlistRepository struct {
	db *bun.DB
}

func NewWaitlistRepository(db *bun.DB) *WaitlistRepository {
	return &WaitlistRepository{db: db}
}

func (r *WaitlistRepository) GetByEmailAndService(ctx context.Context, email, service string) (*auth.WaitlistEntry, error) {
	entry := &auth.WaitlistEntry{}
	err := r.db.NewSelect().
		Model(entry).
		Where("LOWER(w.email) = LOWER(?)", email).
		Where("w.service = ?", service).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "waitlist entry not found")
	}
	return entry, nil
}

func (r *WaitlistRepository) Create(ctx context.Context, entry *auth.WaitlistEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}

	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now()
	}

	_, err := r.db.NewInsert().Model(entry).Exec(ctx)
	return err
}

func (r *WaitlistRepository) CountByService(ctx context.Context, service string) (int, error) {
	return r.db.NewSelect().
		Model((*auth.WaitlistEntry)(nil)).
		Where("service = ?", service).
		Count(ctx)
}
