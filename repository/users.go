package repository

import (
	"context"
	"database/sql"
	"strings"
	"time"

	auth "github.com/Exploree-Solutions/exploree-auth"
	goerrors "github.com/goliatone/go-errors"
	"github.com/uptrace/bun"
)

// UsersRepository implements auth.Users using Bun.
type UsersRepository struct {
	db *bun.DB
}

func NewUsersRepository(db *bun.DB) *UsersRepository {
	return &UsersRepository{db: db}
}

func (r *UsersRepository) GetByID(ctx context.Context, id string) (*auth.User, error) {
	user := &auth.User{}
	err := r.db.NewSelect().
		Model(user).
		Where("u.id = ?", id).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "user not found")
	}
	return user, nil
}

func (r *UsersRepository) GetByEmail(ctx context.Context, email string) (*auth.User, error) {
	user := &auth.User{}
	err := r.db.NewSelect().
		Model(user).
		Where("LOWER(u.email) = LOWER(?)", email).
		Scan(ctx)
	if err != nil {
		return nil, wrapNotFound(err, "user not found")
	}
	return user, nil
}

func (r *UsersRepository) CreateTx(ctx context.Context, tx bun.Tx, user *auth.User) error {
	_, err := tx.NewInsert().Model(user).Exec(ctx)
	return err
}

func (r *UsersRepository) Update(ctx context.Context, user *auth.User, columns ...string) error {
	user.UpdatedAt = time.Now()

	q := r.db.NewUpdate().Model(user).WherePK()
	if len(columns) > 0 {
		q = q.Column(append(columns, "updated_at")...)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return err
	}

	return requireAffected(res, "user not found")
}

func (r *UsersRepository) UpdateTx(ctx context.Context, tx bun.Tx, user *auth.User, columns ...string) error {
	user.UpdatedAt = time.Now()

	q := tx.NewUpdate().Model(user).WherePK()
	if len(columns) > 0 {
		q = q.Column(append(columns, "updated_at")...)
	}

	res, err := q.Exec(ctx)
	if err != nil {
		return err
	}

	return requireAffected(res, "user not found")
}

func (r *UsersRepository) Delete(ctx context.Context, id string) error {
	res, err := r.db.NewDelete().
		Model((*auth.User)(nil)).
		Where("id = ?", id).
		Exec(ctx)
	if err != nil {
		return err
	}

	return requireAffected(res, "user not found")
}

// sortColumns whitelists the API sort keys against real columns.
var sortColumns = map[string]string{
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
	"fullName":    "full_name",
	"email":       "email",
	"role":        "role",
	"status":      "status",
	"lastLoginAt": "last_login_at",
}

func (r *UsersRepository) List(ctx context.Context, criteria auth.UserListCriteria) ([]*auth.User, int, error) {
	var users []*auth.User

	q := r.db.NewSelect().Model(&users)

	if criteria.Search != "" {
		pattern := "%" + strings.ToLower(criteria.Search) + "%"
		q = q.WhereGroup(" AND ", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Where("LOWER(u.full_name) LIKE ?", pattern).
				WhereOr("LOWER(u.email) LIKE ?", pattern)
		})
	}

	if criteria.Role != "" {
		q = q.Where("u.role = ?", string(criteria.Role))
	}

	if criteria.Status != "" {
		q = q.Where("u.status = ?", string(criteria.Status))
	}

	column, ok := sortColumns[criteria.SortBy]
	if !ok {
		column = "created_at"
	}

	order := "DESC"
	if strings.EqualFold(criteria.SortOrder, "asc") {
		order = "ASC"
	}
	q = q.OrderExpr("u." + column + " " + order)

	page := criteria.Page
	if page < 1 {
		page = 1
	}

	limit := criteria.Limit
	if limit < 1 {
		limit = 10
	}

	total, err := q.Limit(limit).Offset((page - 1) * limit).ScanAndCount(ctx)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UsersRepository) TrackSuccessfulLogin(ctx context.Context, id string) error {
	now := time.Now()
	_, err := r.db.NewUpdate().
		Model((*auth.User)(nil)).
		Set("last_login_at = ?", now).
		Set("updated_at = ?", now).
		Where("id = ?", id).
		Exec(ctx)
	return err
}

func (r *UsersRepository) Count(ctx context.Context) (int, error) {
	return r.db.NewSelect().Model((*auth.User)(nil)).Count(ctx)
}

func (r *UsersRepository) CountByStatus(ctx context.Context, status auth.UserStatus) (int, error) {
	return r.db.NewSelect().
		Model((*auth.User)(nil)).
		Where("status = ?", string(status)).
		Count(ctx)
}

func (r *UsersRepository) CountByRole(ctx context.Context, role auth.UserRole) (int, error) {
	return r.db.NewSelect().
		Model((*auth.User)(nil)).
		Where("role = ?", string(role)).
		Count(ctx)
}

func (r *UsersRepository) CountCreatedSince(ctx context.Context, since time.Time) (int, error) {
	return r.db.NewSelect().
		Model((*auth.User)(nil)).
		Where("created_at >= ?", since).
		Count(ctx)
}

func (r *UsersRepository) CountForcePasswordReset(ctx context.Context) (int, error) {
	return r.db.NewSelect().
		Model((*auth.User)(nil)).
		Where("force_password_reset = ?", true).
		Count(ctx)
}

// wrapNotFound maps sql.ErrNoRows to a categorized not-found error so callers
// can branch with goerrors.IsNotFound.
func wrapNotFound(err error, msg string) error {
	if err == sql.ErrNoRows {
		return goerrors.Wrap(err, goerrors.CategoryNotFound, msg).
			WithCode(goerrors.CodeNotFound)
	}
	return err
}

func requireAffected(res sql.Result, msg string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}

	if affected == 0 {
		return goerrors.New(msg, goerrors.CategoryNotFound).
			WithCode(goerrors.CodeNotFound)
	}

	return nil
}
