package repository_test

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	errorvalues "github.com/limbo/breakfree/internal/error_values"
	"github.com/limbo/breakfree/internal/repository"
	"github.com/pashagolub/pgxmock/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	ensureProfileQuery = regexp.QuoteMeta(`INSERT INTO profiles (user_id, created_at, last_incident, longest_streak, cost_per_week, manual_spend_adjustments, habit_type, onboarding_completed)
		VALUES ($1, NOW(), NOW(), 0, 0, 0, 'vaping', TRUE)
		ON CONFLICT (user_id) DO NOTHING;`)
	getProfileQuery = regexp.QuoteMeta(`SELECT created_at, last_incident, longest_streak, cost_per_week, manual_spend_adjustments, habit_type, onboarding_completed
		FROM profiles WHERE user_id = $1;`)
	serverNowQuery   = regexp.QuoteMeta(`SELECT NOW();`)
	slipSelectQuery  = regexp.QuoteMeta(`SELECT created_at, last_incident, longest_streak FROM profiles WHERE user_id = $1 FOR UPDATE;`)
	slipUpdateQuery  = regexp.QuoteMeta(`UPDATE profiles SET last_incident = NOW(), longest_streak = $2 WHERE user_id = $1;`)
	slipInsertQuery  = regexp.QuoteMeta(`INSERT INTO profiles (user_id, created_at, last_incident, longest_streak)
			VALUES ($1, NOW(), NOW(), $2);`)
	notifyQuery = regexp.QuoteMeta(`SELECT pg_notify($1, $2);`)
)

func expectNotify(mock pgxmock.PgxPoolIface, uid uuid.UUID) {
	mock.ExpectExec(notifyQuery).
		WithArgs(repository.ProfileUpdatesChannel, uid.String()).
		WillReturnResult(pgxmock.NewResult("SELECT", 1))
}

func TestEnsureProfile(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewProfilesRepoWithConn(mock)
	uid := uuid.New()
	ctx := context.Background()
	t.Run("created", func(t *testing.T) {
		mock.ExpectExec(ensureProfileQuery).WithArgs(uid).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		expectNotify(mock, uid)
		assert.NoError(t, repo.EnsureProfile(ctx, uid))
	})
	t.Run("already exists is a no-op", func(t *testing.T) {
		mock.ExpectExec(ensureProfileQuery).WithArgs(uid).WillReturnResult(pgxmock.NewResult("INSERT", 0))
		expectNotify(mock, uid)
		assert.NoError(t, repo.EnsureProfile(ctx, uid))
	})
	t.Run("fk violation", func(t *testing.T) {
		mock.ExpectExec(ensureProfileQuery).WithArgs(uid).WillReturnError(&pgconn.PgError{
			Code: "23503",
		})
		assert.ErrorIs(t, repo.EnsureProfile(ctx, uid), errorvalues.ErrUserNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(ensureProfileQuery).WithArgs(uid).WillReturnError(errors.New("db error"))
		assert.Error(t, repo.EnsureProfile(ctx, uid))
	})
}

func TestGetProfileByUserID(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewProfilesRepoWithConn(mock)
	uid := uuid.New()
	ctx := context.Background()
	createdAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	lastIncident := createdAt.AddDate(0, 0, 4)
	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(getProfileQuery).WithArgs(uid).WillReturnRows(
			pgxmock.NewRows([]string{"created_at", "last_incident", "longest_streak", "cost_per_week", "manual_spend_adjustments", "habit_type", "onboarding_completed"}).
				AddRow(createdAt, lastIncident, 4, int64(140), int64(50), "vaping", true))
		profile, err := repo.GetByUserID(ctx, uid)
		assert.NoError(t, err)
		assert.Equal(t, uid, profile.UserID)
		assert.Equal(t, createdAt, profile.CreatedAt)
		assert.Equal(t, lastIncident, profile.LastIncident)
		assert.Equal(t, 4, profile.LongestStreak)
		assert.Equal(t, int64(140), profile.CostPerWeek)
		assert.Equal(t, int64(50), profile.ManualSpendAdjustments)
	})
	t.Run("not found", func(t *testing.T) {
		mock.ExpectQuery(getProfileQuery).WithArgs(uid).WillReturnError(pgx.ErrNoRows)
		_, err := repo.GetByUserID(ctx, uid)
		assert.ErrorIs(t, err, errorvalues.ErrProfileNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectQuery(getProfileQuery).WithArgs(uid).WillReturnError(errors.New("db error"))
		_, err := repo.GetByUserID(ctx, uid)
		assert.Error(t, err)
	})
}

func TestRecordSlip(t *testing.T) {
	uid := uuid.New()
	now := time.Date(2025, 3, 20, 10, 0, 0, 0, time.UTC)
	createdAt := now.AddDate(0, 0, -10)
	ctx := context.Background()

	expectSlipTx := func(mock pgxmock.PgxPoolIface, lastIncident time.Time, storedLongest, wantLongest int) {
		mock.ExpectBegin()
		mock.ExpectQuery(serverNowQuery).WillReturnRows(pgxmock.NewRows([]string{"now"}).AddRow(now))
		mock.ExpectQuery(slipSelectQuery).WithArgs(uid).WillReturnRows(
			pgxmock.NewRows([]string{"created_at", "last_incident", "longest_streak"}).
				AddRow(createdAt, lastIncident, storedLongest))
		mock.ExpectExec(slipUpdateQuery).WithArgs(uid, wantLongest).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		expectNotify(mock, uid)
		mock.ExpectCommit()
	}

	t.Run("streak raises the high-water mark", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		repo := repository.NewProfilesRepoWithConn(mock)
		// 5 full days since the last incident beats a stored longest of 3
		expectSlipTx(mock, now.AddDate(0, 0, -5).Add(-time.Hour), 3, 5)
		longest, err := repo.RecordSlip(ctx, uid)
		assert.NoError(t, err)
		assert.Equal(t, 5, longest)
	})

	t.Run("shorter streak keeps the high-water mark", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		repo := repository.NewProfilesRepoWithConn(mock)
		expectSlipTx(mock, now.Add(-26*time.Hour), 7, 7)
		longest, err := repo.RecordSlip(ctx, uid)
		assert.NoError(t, err)
		assert.Equal(t, 7, longest)
	})

	t.Run("interleaved slips never lower the mark", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		repo := repository.NewProfilesRepoWithConn(mock)
		// First writer holds the row lock: 5 full days since the last
		// incident raise the mark from 3 to 5
		expectSlipTx(mock, now.AddDate(0, 0, -5).Add(-time.Hour), 3, 5)
		// Second writer acquires the lock only after the first commit
		// and reads the fresh last_incident. Its zero streak must write
		// the mark back unchanged, never lower it
		now2 := now.Add(time.Minute)
		mock.ExpectBegin()
		mock.ExpectQuery(serverNowQuery).WillReturnRows(pgxmock.NewRows([]string{"now"}).AddRow(now2))
		mock.ExpectQuery(slipSelectQuery).WithArgs(uid).WillReturnRows(
			pgxmock.NewRows([]string{"created_at", "last_incident", "longest_streak"}).
				AddRow(createdAt, now, 5))
		mock.ExpectExec(slipUpdateQuery).WithArgs(uid, 5).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		expectNotify(mock, uid)
		mock.ExpectCommit()

		longest, err := repo.RecordSlip(ctx, uid)
		require.NoError(t, err)
		require.Equal(t, 5, longest)
		longest, err = repo.RecordSlip(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, 5, longest)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing profile counts as zero values", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		repo := repository.NewProfilesRepoWithConn(mock)
		mock.ExpectBegin()
		mock.ExpectQuery(serverNowQuery).WillReturnRows(pgxmock.NewRows([]string{"now"}).AddRow(now))
		mock.ExpectQuery(slipSelectQuery).WithArgs(uid).WillReturnError(pgx.ErrNoRows)
		mock.ExpectExec(slipInsertQuery).WithArgs(uid, 0).WillReturnResult(pgxmock.NewResult("INSERT", 1))
		expectNotify(mock, uid)
		mock.ExpectCommit()
		longest, err := repo.RecordSlip(ctx, uid)
		assert.NoError(t, err)
		assert.Equal(t, 0, longest)
	})

	t.Run("retries on serialization failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		repo := repository.NewProfilesRepoWithConn(mock)
		lastIncident := now.AddDate(0, 0, -2).Add(-time.Hour)
		mock.ExpectBegin()
		mock.ExpectQuery(serverNowQuery).WillReturnRows(pgxmock.NewRows([]string{"now"}).AddRow(now))
		mock.ExpectQuery(slipSelectQuery).WithArgs(uid).WillReturnRows(
			pgxmock.NewRows([]string{"created_at", "last_incident", "longest_streak"}).
				AddRow(createdAt, lastIncident, 0))
		mock.ExpectExec(slipUpdateQuery).WithArgs(uid, 2).WillReturnError(&pgconn.PgError{Code: "40001"})
		mock.ExpectRollback()
		expectSlipTx(mock, lastIncident, 0, 2)
		longest, err := repo.RecordSlip(ctx, uid)
		assert.NoError(t, err)
		assert.Equal(t, 2, longest)
	})

	t.Run("conflict exhaustion surfaces a hard failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		repo := repository.NewProfilesRepoWithConn(mock)
		lastIncident := now.AddDate(0, 0, -2).Add(-time.Hour)
		for range [3]struct{}{} {
			mock.ExpectBegin()
			mock.ExpectQuery(serverNowQuery).WillReturnRows(pgxmock.NewRows([]string{"now"}).AddRow(now))
			mock.ExpectQuery(slipSelectQuery).WithArgs(uid).WillReturnRows(
				pgxmock.NewRows([]string{"created_at", "last_incident", "longest_streak"}).
					AddRow(createdAt, lastIncident, 0))
			mock.ExpectExec(slipUpdateQuery).WithArgs(uid, 2).WillReturnError(&pgconn.PgError{Code: "40001"})
			mock.ExpectRollback()
		}
		_, err = repo.RecordSlip(ctx, uid)
		assert.ErrorIs(t, err, errorvalues.ErrSlipConflict)
	})

	t.Run("non-retryable error surfaces immediately", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		repo := repository.NewProfilesRepoWithConn(mock)
		mock.ExpectBegin()
		mock.ExpectQuery(serverNowQuery).WillReturnError(errors.New("db error"))
		mock.ExpectRollback()
		_, err = repo.RecordSlip(ctx, uid)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, errorvalues.ErrSlipConflict)
	})
}

func TestSetCostPerWeek(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewProfilesRepoWithConn(mock)
	uid := uuid.New()
	ctx := context.Background()
	query := regexp.QuoteMeta(`UPDATE profiles SET cost_per_week = $2 WHERE user_id = $1;`)
	t.Run("updated", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(uid, int64(140)).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		expectNotify(mock, uid)
		assert.NoError(t, repo.SetCostPerWeek(ctx, uid, 140))
	})
	t.Run("profile not found", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(uid, int64(140)).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		assert.ErrorIs(t, repo.SetCostPerWeek(ctx, uid, 140), errorvalues.ErrProfileNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(uid, int64(140)).WillReturnError(errors.New("db error"))
		assert.Error(t, repo.SetCostPerWeek(ctx, uid, 140))
	})
}

func TestAddManualSpend(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	repo := repository.NewProfilesRepoWithConn(mock)
	uid := uuid.New()
	ctx := context.Background()
	query := regexp.QuoteMeta(`UPDATE profiles SET manual_spend_adjustments = manual_spend_adjustments + $2 WHERE user_id = $1;`)
	t.Run("incremented", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(uid, int64(50)).WillReturnResult(pgxmock.NewResult("UPDATE", 1))
		expectNotify(mock, uid)
		assert.NoError(t, repo.AddManualSpend(ctx, uid, 50))
	})
	t.Run("profile not found", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(uid, int64(50)).WillReturnResult(pgxmock.NewResult("UPDATE", 0))
		assert.ErrorIs(t, repo.AddManualSpend(ctx, uid, 50), errorvalues.ErrProfileNotFound)
	})
	t.Run("db error", func(t *testing.T) {
		mock.ExpectExec(query).WithArgs(uid, int64(50)).WillReturnError(errors.New("db error"))
		assert.Error(t, repo.AddManualSpend(ctx, uid, 50))
	})
}
