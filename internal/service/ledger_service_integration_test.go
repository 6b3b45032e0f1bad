//go:build integration

package service_test

import (
	"context"
	"database/sql"
	"testing"
	"time"

	_ "github.com/lib/pq"
	"github.com/limbo/breakfree/internal/repository"
	"github.com/limbo/breakfree/internal/service"
	"github.com/limbo/breakfree/pkg/entity"
	"github.com/pressly/goose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type testPGConfig struct {
	connStr string
}

func (cfg *testPGConfig) ConnString() string {
	return cfg.connStr
}

func setupLedgerTestDB(t *testing.T) *testPGConfig {
	container, err := postgres.Run(context.Background(), "postgres:17",
		postgres.WithUsername("test_user"),
		postgres.WithDatabase("breakfree"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		t.Fatal("error running test container: " + err.Error())
	}
	connStr, err := container.ConnectionString(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	connStr += "sslmode=disable"
	conn, err := sql.Open("postgres", connStr)
	if err != nil {
		t.Fatal(err)
	}
	err = goose.Up(conn, "../../migrations")
	if err != nil {
		t.Fatal(err)
	}

	conn.Close()
	t.Cleanup(func() {
		container.Terminate(context.Background())
	})
	return &testPGConfig{
		connStr: connStr,
	}
}

func TestLedgerServiceIntegrational(t *testing.T) {
	cfg := setupLedgerTestDB(t)
	usersRepo := repository.NewUsersRepo(cfg)
	profilesRepo := repository.NewProfilesRepo(cfg)
	entriesRepo := repository.NewEntriesRepo(cfg)
	userService := service.NewUserService(usersRepo, profilesRepo)
	ledger := service.NewLedgerService(profilesRepo, entriesRepo, nil)
	ctx := context.Background()

	user, err := userService.Register(ctx, &service.RegisterRequest{
		Email:    "test@example.com",
		Password: "test_password",
	})
	require.NoError(t, err)

	t.Run("fresh profile summary", func(t *testing.T) {
		summary, err := ledger.Summary(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, summary.CurrentStreakDays)
		assert.Equal(t, 0, summary.LongestStreak)
		assert.Equal(t, int64(0), summary.MoneySaved)
	})

	t.Run("spending knobs persist", func(t *testing.T) {
		require.NoError(t, ledger.SetCostPerWeek(ctx, user.ID, 140))
		require.NoError(t, ledger.AddManualSpend(ctx, user.ID, 50))
	})

	t.Run("craving then slip land in the ledger", func(t *testing.T) {
		craving, err := ledger.LogIncident(ctx, user.ID, &service.LogIncidentRequest{
			Type: entity.EntryCraving,
			Mood: entity.MoodBored,
		})
		require.NoError(t, err)
		assert.True(t, craving.Handled)

		slip, err := ledger.LogIncident(ctx, user.ID, &service.LogIncidentRequest{
			Type: entity.EntrySlip,
			Mood: entity.MoodStressed,
		})
		require.NoError(t, err)
		assert.False(t, slip.Handled)

		entries, err := ledger.ListEntries(ctx, user.ID, service.PaginationOpts{Limit: 10}, false)
		require.NoError(t, err)
		require.Len(t, entries, 2)
		// Newest first
		assert.Equal(t, slip.EntryID, entries[0].EntryID)
		assert.Equal(t, craving.EntryID, entries[1].EntryID)
	})

	t.Run("summary after slip", func(t *testing.T) {
		summary, err := ledger.Summary(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, 0, summary.CurrentStreakDays)
		assert.Equal(t, 0, summary.LongestStreak)
		// A day-zero slip saves nothing regardless of spend settings
		assert.Equal(t, int64(0), summary.MoneySaved)
	})
}
