package repository

import (
	"context"
	"database/sql"
	"errors"
	"log"

	auth "github.com/Exploree-Solutions/exploree-auth"
	"github.com/uptrace/bun"
)

type mngr struct {
	db           *bun.DB
	users        auth.Users
	profiles     auth.Profiles
	activityLogs auth.ActivityLogs
	waitlist     auth.Waitlist
}

func NewRepositoryManager(db *bun.DB) auth.RepositoryManager {
	return &mngr{
		db:           db,
		users:        NewUsersRepository(db),
		profiles:     NewProfilesRepository(db),
		activityLogs: NewActivityLogsRepository(db),
		waitlist:     NewWaitlistRepository(db),
	}
}

func (m mngr) Validate() error {
	if m.db == nil {
		return errors.New("repository db should be initialized")
	}

	if m.users == nil {
		return errors.New("repository users should be initialized")
	}

	if m.profiles == nil {
		return errors.New("repository profiles should be initialized")
	}

	if m.activityLogs == nil {
		return errors.New("repository activityLogs should be initialized")
	}

	if m.waitlist == nil {
		return errors.New("repository waitlist should be initialized")
	}

	return nil
}

func (m mngr) MustValidate() {
	if err := m.Validate(); err != nil {
		log.Panic(err)
	}
}

func (m mngr) RunInTx(ctx context.Context, opts *sql.TxOptions, f func(ctx context.Context, tx bun.Tx) error) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
		return m.db.RunInTx(ctx, opts, f)
	}
}

func (m mngr) Users() auth.Users {
	return m.users
}

func (m mngr) Profiles() auth.Profiles {
	return m.profiles
}

func (m mngr) ActivityLogs() auth.ActivityLogs {
	return m.activityLogs
}

func (m mngr) Waitlist() auth.Waitlist {
	return m.waitlist
}
