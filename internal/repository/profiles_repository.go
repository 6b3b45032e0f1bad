package repository

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	errorvalues "github.com/limbo/breakfree/internal/error_values"
	"github.com/limbo/breakfree/internal/metrics"
	"github.com/limbo/breakfree/pkg/cleanup"
	"github.com/limbo/breakfree/pkg/entity"
)

// ProfileUpdatesChannel is the pg_notify channel carrying uids of
// changed profiles. The watch hub listens on it.
const ProfileUpdatesChannel = "profile_updates"

// slipTxAttempts bounds the optimistic retry loop of RecordSlip.
const slipTxAttempts = 3

type ProfilesRepository struct {
	conn PgConnection
}

func NewProfilesRepo(cfg DBConfig) *ProfilesRepository {
	pool, err := pgxpool.New(context.Background(), cfg.ConnString())
	if err != nil {
		log.Fatal("creating connection for profilesRepo error: " + err.Error())
	}
	err = pool.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for profilesRepo: " + err.Error())
	}
	cleanup.Register(&cleanup.Job{
		Name: "closing pgxpool",
		F: func() error {
			pool.Close()
			return nil
		},
	})
	return &ProfilesRepository{
		conn: pool,
	}
}

func NewProfilesRepoWithConn(conn PgConnection) *ProfilesRepository {
	err := conn.Ping(context.Background())
	if err != nil {
		log.Fatal("error while pinging connection for profilesRepo: " + err.Error())
	}
	return &ProfilesRepository{
		conn: conn,
	}
}

func (pr *ProfilesRepository) EnsureProfile(ctx context.Context, uid uuid.UUID) error {
	// ON CONFLICT DO NOTHING keeps the create idempotent: when two
	// callers race, one insert wins and the other is a silent no-op
	_, err := pr.conn.Exec(ctx,
		`INSERT INTO profiles (user_id, created_at, last_incident, longest_streak, cost_per_week, manual_spend_adjustments, habit_type, onboarding_completed)
		VALUES ($1, NOW(), NOW(), 0, 0, 0, 'vaping', TRUE)
		ON CONFLICT (user_id) DO NOTHING;`, uid)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			switch pgErr.Code {
			// FK violation
			case "23503":
				return errorvalues.ErrUserNotFound
			}
		}
		return errors.New("ensuring profile error: " + err.Error())
	}
	err = pr.notifyProfileChanged(ctx, uid)
	if err != nil {
		return err
	}
	return nil
}

func (pr *ProfilesRepository) GetByUserID(ctx context.Context, uid uuid.UUID) (*entity.Profile, error) {
	var profile entity.Profile
	profile.UserID = uid
	row := pr.conn.QueryRow(ctx,
		`SELECT created_at, last_incident, longest_streak, cost_per_week, manual_spend_adjustments, habit_type, onboarding_completed
		FROM profiles WHERE user_id = $1;`, uid)
	err := row.Scan(
		&profile.CreatedAt,
		&profile.LastIncident,
		&profile.LongestStreak,
		&profile.CostPerWeek,
		&profile.ManualSpendAdjustments,
		&profile.HabitType,
		&profile.OnboardingCompleted,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errorvalues.ErrProfileNotFound
		}
		return nil, errors.New("getting profile error: " + err.Error())
	}
	return &profile, nil
}

// RecordSlip runs the slip read-modify-write in a transaction and
// retries on write conflicts, so two concurrent slips can never race a
// stale streak into longest_streak. After the retry budget is spent the
// caller gets ErrSlipConflict and no update is applied.
func (pr *ProfilesRepository) RecordSlip(ctx context.Context, uid uuid.UUID) (int, error) {
	for attempt := 0; attempt < slipTxAttempts; attempt++ {
		longest, err := pr.recordSlipOnce(ctx, uid)
		if err == nil {
			return longest, nil
		}
		if !retryableTxError(err) {
			return 0, err
		}
	}
	return 0, errorvalues.ErrSlipConflict
}

func (pr *ProfilesRepository) recordSlipOnce(ctx context.Context, uid uuid.UUID) (int, error) {
	tx, err := pr.conn.Begin(ctx)
	if err != nil {
		return 0, errors.New("starting slip transaction error: " + err.Error())
	}
	defer tx.Rollback(ctx)

	// Server-assigned evaluation instant, client clocks are not trusted
	var now time.Time
	if err = tx.QueryRow(ctx, `SELECT NOW();`).Scan(&now); err != nil {
		return 0, errors.New("reading server time error: " + err.Error())
	}

	var createdAt, lastIncident time.Time
	var longest int
	row := tx.QueryRow(ctx,
		`SELECT created_at, last_incident, longest_streak FROM profiles WHERE user_id = $1 FOR UPDATE;`, uid)
	err = row.Scan(&createdAt, &lastIncident, &longest)
	missing := errors.Is(err, pgx.ErrNoRows)
	if err != nil && !missing {
		return 0, fmt.Errorf("reading profile in slip transaction error: %w", err)
	}

	// Streak immediately before this slip resets it. A missing profile
	// counts as all-zero values, not as an error
	streak := 0
	if !missing {
		streak = metrics.CurrentStreakDays(&lastIncident, &createdAt, now)
	}
	nextLongest := longest
	if streak > nextLongest {
		nextLongest = streak
	}

	if missing {
		_, err = tx.Exec(ctx,
			`INSERT INTO profiles (user_id, created_at, last_incident, longest_streak)
			VALUES ($1, NOW(), NOW(), $2);`, uid, nextLongest)
	} else {
		_, err = tx.Exec(ctx,
			`UPDATE profiles SET last_incident = NOW(), longest_streak = $2 WHERE user_id = $1;`, uid, nextLongest)
	}
	if err != nil {
		return 0, fmt.Errorf("writing slip update error: %w", err)
	}
	_, err = tx.Exec(ctx, `SELECT pg_notify($1, $2);`, ProfileUpdatesChannel, uid.String())
	if err != nil {
		return 0, fmt.Errorf("notifying profile change error: %w", err)
	}
	if err = tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("committing slip transaction error: %w", err)
	}
	return nextLongest, nil
}

func (pr *ProfilesRepository) SetCostPerWeek(ctx context.Context, uid uuid.UUID, amount int64) error {
	ct, err := pr.conn.Exec(ctx, `UPDATE profiles SET cost_per_week = $2 WHERE user_id = $1;`, uid, amount)
	if err != nil {
		return errors.New("updating cost per week error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrProfileNotFound
	}
	return pr.notifyProfileChanged(ctx, uid)
}

func (pr *ProfilesRepository) AddManualSpend(ctx context.Context, uid uuid.UUID, amount int64) error {
	// Atomic add, a read-then-write here would lose concurrent updates
	ct, err := pr.conn.Exec(ctx,
		`UPDATE profiles SET manual_spend_adjustments = manual_spend_adjustments + $2 WHERE user_id = $1;`, uid, amount)
	if err != nil {
		return errors.New("adding manual spend error: " + err.Error())
	}
	if ct.RowsAffected() == 0 {
		return errorvalues.ErrProfileNotFound
	}
	return pr.notifyProfileChanged(ctx, uid)
}

func (pr *ProfilesRepository) notifyProfileChanged(ctx context.Context, uid uuid.UUID) error {
	_, err := pr.conn.Exec(ctx, `SELECT pg_notify($1, $2);`, ProfileUpdatesChannel, uid.String())
	if err != nil {
		return errors.New("notifying profile change error: " + err.Error())
	}
	return nil
}

func retryableTxError(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		// serialization failure, deadlock, insert race on the PK
		case "40001", "40P01", "23505":
			return true
		}
	}
	return false
}
