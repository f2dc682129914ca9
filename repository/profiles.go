package repository

import (
	"context"
	"time"

	auth "github.com/Exploree-Solutions/exploree-auth"
	"github.com/uptrace/bun"
)

// ProfilesRepository implements auth.Profiles using Bun.
type ProfilesRepository struct {
	db *bun.DB
}

func NewProfilesRepository(db *bun.DB) *ProfilesRepository {
	return &ProfilesRepository{db: db}
}

func (r *ProfilesRepository) GetByUserID(ctx context.Context, userID string) (*auth.Profile, error) {
	profile := &auth.Profile{}
	err := r.db.NewSelect().
		Model(profile).
		Where("p.user_id = ?", userID).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "profile not found")
	}
	return profile, nil
}

func (r *ProfilesRepository) CreateTx(ctx context.Context, tx bun.Tx, profile *auth.Profile) error {
	_, err := tx.NewInsert().Model(profile).Exec(ctx)
	return err
}

func (r *ProfilesRepository) UpdateTx(ctx context.Context, tx bun.Tx, profile *auth.Profile, columns ...string) error {
	profile.UpdatedAt = time.Now()

	q := tx.NewUpdate().Model(profile).WherePK()
	if len(columns) > 0 {
		q = q.Column(append(columns, "updated_at")...)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return err
	}

	return requireAffected(res, "profile not found")
}
