package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/limbo/breakfree/pkg/entity"
)

type UsersRepositoryI interface {
	// Creates new user in database
	Create(ctx context.Context, user *entity.User) error
	// Looks up user by email. Can be used for login
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	// Looks up user by uid. Can be used for authorization middleware
	FindByID(ctx context.Context, uid uuid.UUID) (*entity.User, error)
	// Overwrites the user's email and password hash
	Update(ctx context.Context, user *entity.User) error
	// Deletes user
	Delete(ctx context.Context, uid uuid.UUID) error
}

type ProfilesRepositoryI interface {
	// Creates profile for uid if none exists yet. Existing profiles are
	// never touched, racing callers lose silently
	EnsureProfile(ctx context.Context, uid uuid.UUID) error
	// Fetches the profile of uid
	GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.Profile, error)
	// Atomically resets last_incident and reconciles the longest-streak
	// high-water mark. Returns the longest streak after the slip
	RecordSlip(ctx context.Context, uid uuid.UUID) (int, error)
	// Replaces the weekly cost estimate
	SetCostPerWeek(ctx context.Context, uid uuid.UUID, amount int64) error
	// Atomic increment of the manual spend adjustments total
	AddManualSpend(ctx context.Context, uid uuid.UUID, amount int64) error
}

type EntriesRepositoryI interface {
	// Appends one incident entry. Timestamp is assigned server-side and
	// written back into entry
	Append(ctx context.Context, entry *entity.Entry) error
	// Lists entries of uid, newest first. Requires pagination params provided
	GetByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Entry, error)
	// Lists only entries carrying a voice note, newest first
	GetVoiceNotesByUserID(ctx context.Context, uid uuid.UUID, limit, offset int) ([]*entity.Entry, error)
}

type DBConfig interface {
	ConnString() string
}

type PgConnection interface {
	Ping(ctx context.Context) error
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Begin(ctx context.Context) (pgx.Tx, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type PGCfg struct {
	Address  string
	Username string
	Password string
	DB       string
}

func (pgcfg *PGCfg) ConnString() string {
	return fmt.Sprintf("postgresql://%s:%s@%s/%s", pgcfg.Username, pgcfg.Password, pgcfg.Address, pgcfg.DB)
}
