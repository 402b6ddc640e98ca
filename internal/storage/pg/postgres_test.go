package pg

import (
	"context"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	postgresTC "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"bookingbot/internal/models"
	"bookingbot/internal/storage"
)

// runMigrations manually creates the schema for tests
func runMigrations(ctx context.Context, db *sqlx.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS branches (
			id BIGSERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			address TEXT NOT NULL DEFAULT '',
			phone TEXT NOT NULL DEFAULT '',
			is_active BOOLEAN NOT NULL DEFAULT TRUE
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS clients (
			id BIGSERIAL PRIMARY KEY,
			external_id BIGINT NOT NULL UNIQUE,
			full_name TEXT NOT NULL,
			phone TEXT NOT NULL,
			email TEXT,
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	if err != nil {
		return err
	}

	_, err = db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS bookings (
			id BIGSERIAL PRIMARY KEY,
			client_id BIGINT NOT NULL REFERENCES clients(id),
			branch_id BIGINT NOT NULL REFERENCES branches(id),
			service_type TEXT NOT NULL,
			notes TEXT NOT NULL DEFAULT '',
			status TEXT NOT NULL DEFAULT 'new',
			created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		)
	`)
	return err
}

// setupTestDB creates a test PostgreSQL instance using testcontainers
func setupTestDB(t *testing.T) (*PostgresDB, func()) {
	ctx := context.Background()

	pgContainer, err := postgresTC.Run(ctx,
		"postgres:16-alpine",
		postgresTC.WithDatabase("bookings"),
		postgresTC.WithUsername("postgres"),
		postgresTC.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second)),
	)
	require.NoError(t, err, "Failed to start PostgreSQL container")

	dsn, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	conn, err := sqlx.ConnectContext(ctx, "postgres", dsn)
	require.NoError(t, err, "Failed to connect to PostgreSQL")

	err = runMigrations(ctx, conn)
	require.NoError(t, err, "Failed to run migrations")

	db := NewFromDB(conn)

	cleanup := func() {
		db.Close()
		pgContainer.Terminate(ctx)
	}

	return db, cleanup
}

func addBranch(t *testing.T, db *PostgresDB, name string, active bool) models.Branch {
	t.Helper()

	var branch models.Branch
	err := db.db.Get(&branch, `
		INSERT INTO branches (name, address, phone, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, address, phone, is_active`,
		name, "Dzerzhinsky St. 249/1", "+7 (967) 655-50-45", active)
	require.NoError(t, err)
	return branch
}

func TestPostgresDB_ListActiveBranches(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	// Initially should be empty
	branches, err := db.ListActiveBranches(ctx)
	require.NoError(t, err)
	assert.Empty(t, branches)

	addBranch(t, db, "Dzerzhinsky District", true)
	addBranch(t, db, "Closed Branch", false)
	addBranch(t, db, "Festivalny", true)

	branches, err = db.ListActiveBranches(ctx)
	require.NoError(t, err)
	assert.Len(t, branches, 2)
	assert.Equal(t, "Dzerzhinsky District", branches[0].Name)
	assert.Equal(t, "Festivalny", branches[1].Name)
}

func TestPostgresDB_GetBranch(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	created := addBranch(t, db, "Festivalny", true)

	branch, err := db.GetBranch(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Festivalny", branch.Name)
	assert.True(t, branch.IsActive)

	_, err = db.GetBranch(ctx, 99999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPostgresDB_UpsertClient(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	first, err := db.UpsertClient(ctx, 123, "Ivanov Ivan", "+79161234567")
	require.NoError(t, err)
	assert.Equal(t, int64(123), first.ExternalID)

	// Re-submitting overwrites name and phone on the same row
	second, err := db.UpsertClient(ctx, 123, "Ivanov Ivan Ivanovich", "+79160000000")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "Ivanov Ivan Ivanovich", second.FullName)
	assert.Equal(t, "+79160000000", second.Phone)

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Clients)
}

func TestPostgresDB_CommitBooking(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	branch := addBranch(t, db, "Festivalny", true)

	booking, err := db.CommitBooking(ctx, 123, "Ivanov Ivan Ivanovich", "+79161234567", branch.ID, "Class booking", "No comments")
	require.NoError(t, err)
	assert.Equal(t, models.StatusNew, booking.Status)

	detail, err := db.GetBookingDetail(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ivanov Ivan Ivanovich", detail.ClientName)
	assert.Equal(t, "+79161234567", detail.ClientPhone)
	assert.Equal(t, int64(123), detail.ClientExternalID)
	assert.Equal(t, "Festivalny", detail.BranchName)

	// A commit against a missing branch leaves no partial rows behind
	_, err = db.CommitBooking(ctx, 777, "Petrov Petr Petrovich", "+79160000000", 99999, "Class booking", "")
	require.Error(t, err)

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Clients)
	assert.Equal(t, 1, stats.Bookings)
}

func TestPostgresDB_SetBookingStatus(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	branch := addBranch(t, db, "Festivalny", true)
	booking, err := db.CommitBooking(ctx, 123, "Ivanov Ivan Ivanovich", "+79161234567", branch.ID, "Class booking", "")
	require.NoError(t, err)

	err = db.SetBookingStatus(ctx, booking.ID, models.StatusConfirmed)
	require.NoError(t, err)

	// The transition is one-way
	err = db.SetBookingStatus(ctx, booking.ID, models.StatusRejected)
	assert.ErrorIs(t, err, storage.ErrInvalidTransition)

	detail, err := db.GetBookingDetail(ctx, booking.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusConfirmed, detail.Status)

	err = db.SetBookingStatus(ctx, 99999, models.StatusConfirmed)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestPostgresDB_ListBookingsForClient(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	branch := addBranch(t, db, "Festivalny", true)

	first, err := db.CommitBooking(ctx, 123, "Ivanov Ivan Ivanovich", "+79161234567", branch.ID, "Class booking", "")
	require.NoError(t, err)
	second, err := db.CommitBooking(ctx, 123, "Ivanov Ivan Ivanovich", "+79161234567", branch.ID, "Class booking", "")
	require.NoError(t, err)
	_, err = db.CommitBooking(ctx, 777, "Petrov Petr Petrovich", "+79160000000", branch.ID, "Class booking", "")
	require.NoError(t, err)

	bookings, err := db.ListBookingsForClient(ctx, 123, 10)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, second.ID, bookings[0].ID)
	assert.Equal(t, first.ID, bookings[1].ID)

	bookings, err = db.ListBookingsForClient(ctx, 555, 10)
	require.NoError(t, err)
	assert.Empty(t, bookings)
}

func TestPostgresDB_ListRecentBookings(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	branch := addBranch(t, db, "Festivalny", true)
	var last models.Booking
	for i := 0; i < 3; i++ {
		b, err := db.CommitBooking(ctx, int64(100+i), "Ivanov Ivan Ivanovich", "+79161234567", branch.ID, "Class booking", "")
		require.NoError(t, err)
		last = b
	}

	bookings, err := db.ListRecentBookings(ctx, 2)
	require.NoError(t, err)
	require.Len(t, bookings, 2)
	assert.Equal(t, last.ID, bookings[0].ID)
}

func TestPostgresDB_Stats(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	a := addBranch(t, db, "Dzerzhinsky District", true)
	b := addBranch(t, db, "Festivalny", true)

	for i := 0; i < 2; i++ {
		_, err := db.CommitBooking(ctx, int64(100+i), "Ivanov Ivan Ivanovich", "+79161234567", a.ID, "Class booking", "")
		require.NoError(t, err)
	}
	_, err := db.CommitBooking(ctx, 300, "Petrov Petr Petrovich", "+79160000000", b.ID, "Class booking", "")
	require.NoError(t, err)

	stats, err := db.Stats(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Clients)
	assert.Equal(t, 3, stats.Bookings)
	assert.Equal(t, 3, stats.BookingsToday)
	require.Len(t, stats.ByBranch, 2)
	assert.Equal(t, "Dzerzhinsky District", stats.ByBranch[0].BranchName)
	assert.Equal(t, 2, stats.ByBranch[0].Count)
}
