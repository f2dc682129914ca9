package repository

import (
	"context"

	auth "github.com/Exploree-Solutions/exploree-auth"
	"github.com/uptrace/bun"
)

// CreateSchema creates the service tables if they do not exist. Used by the
// migrate command and by tests running against in-memory SQLite.
func CreateSchema(ctx context.Context, db *bun.DB) error {
	models := []any{
		(*auth.User)(nil),
		(*auth.Profile)(nil),
		(*auth.ActivityLog)(nil),
		(*auth.WaitlistEntry)(nil),
	}

	for _, model := range models {
		if _, err := db.NewCreateTable().
			Model(model).
			IfNotExists().
			Exec(ctx); err != nil {
			return err
		}
	}

	if _, err := db.NewCreateIndex().
		Model((*auth.WaitlistEntry)(nil)).
		Index("idx_waitlist_email_service").
		IfNotExists().
		Unique().
		Column("email", "service").
		Exec(ctx); err != nil {
		return err
	}

	if _, err := db.NewCreateIndex().
		Model((*auth.ActivityLog)(nil)).
		Index("idx_activity_logs_user_id").
		IfNotExists().
		Column("user_id").
		Exec(ctx); err != nil {
		return err
	}

	return nil
}
