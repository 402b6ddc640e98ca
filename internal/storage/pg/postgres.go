package pg

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"bookingbot/internal/models"
	"bookingbot/internal/storage"
)

// Config holds PostgreSQL connection settings.
type Config struct {
	Host           string `envconfig:"DB_HOST"`
	Port           int    `envconfig:"DB_PORT" default:"5432"`
	User           string `envconfig:"DB_USER" default:"postgres"`
	Password       string `envconfig:"DB_PASSWORD"`
	Name           string `envconfig:"DB_NAME" default:"bookings"`
	SSLMode        string `envconfig:"DB_SSLMODE" default:"disable"`
	MaxConnections int    `envconfig:"DB_MAX_CONNECTIONS" default:"4"`
}

// DSN renders the config as a lib/pq connection string.
func (c Config) DSN() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%d dbname=%s sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

// URL renders the config as a postgres:// URL for migration tooling.
func (c Config) URL() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.Name, c.SSLMode,
	)
}

type PostgresDB struct {
	db *sqlx.DB
}

// New opens the database connection, configures the pool, and verifies connectivity.
func New(cfg Config) (*PostgresDB, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := sqlx.ConnectContext(ctx, "postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to connect to postgres: %w", err)
	}

	if cfg.MaxConnections > 0 {
		db.SetMaxOpenConns(cfg.MaxConnections)
		db.SetMaxIdleConns(cfg.MaxConnections)
	}

	return &PostgresDB{db: db}, nil
}

// NewFromDB wraps an existing connection, used by tests.
func NewFromDB(db *sqlx.DB) *PostgresDB {
	return &PostgresDB{db: db}
}

// Initialize is a no-op - tables are managed via migrations
func (p *PostgresDB) Initialize(ctx context.Context) error {
	// Tables and seed data are managed via migrations (see migrations/ directory)
	return nil
}

// ListActiveBranches returns active branches in insertion order
func (p *PostgresDB) ListActiveBranches(ctx context.Context) ([]models.Branch, error) {
	var branches []models.Branch
	err := p.db.SelectContext(ctx, &branches,
		`SELECT id, name, address, phone, is_active FROM branches WHERE is_active ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}
	return branches, nil
}

// GetBranch returns a branch by ID
func (p *PostgresDB) GetBranch(ctx context.Context, id int64) (models.Branch, error) {
	var branch models.Branch
	err := p.db.GetContext(ctx, &branch,
		`SELECT id, name, address, phone, is_active FROM branches WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Branch{}, storage.ErrNotFound
	}
	if err != nil {
		return models.Branch{}, fmt.Errorf("failed to get branch: %w", err)
	}
	return branch, nil
}

const upsertClientQuery = `
	INSERT INTO clients (external_id, full_name, phone)
	VALUES ($1, $2, $3)
	ON CONFLICT (external_id)
	DO UPDATE SET full_name = EXCLUDED.full_name, phone = EXCLUDED.phone
	RETURNING id, external_id, full_name, phone, COALESCE(email, '') AS email, created_at`

// UpsertClient creates or overwrites the client keyed by the Telegram user ID
func (p *PostgresDB) UpsertClient(ctx context.Context, externalID int64, fullName, phone string) (models.Client, error) {
	var client models.Client
	err := p.db.GetContext(ctx, &client, upsertClientQuery, externalID, fullName, phone)
	if err != nil {
		return models.Client{}, fmt.Errorf("failed to upsert client: %w", err)
	}
	return client, nil
}

const insertBookingQuery = `
	INSERT INTO bookings (client_id, branch_id, service_type, notes, status)
	VALUES ($1, $2, $3, $4, $5)
	RETURNING id, client_id, branch_id, service_type, notes, status, created_at`

// InsertBooking inserts a booking with status "new"
func (p *PostgresDB) InsertBooking(ctx context.Context, clientID, branchID int64, serviceType, notes string) (models.Booking, error) {
	var booking models.Booking
	err := p.db.GetContext(ctx, &booking, insertBookingQuery,
		clientID, branchID, serviceType, notes, models.StatusNew)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}
	return booking, nil
}

// CommitBooking upserts the client and inserts the booking in one transaction
func (p *PostgresDB) CommitBooking(ctx context.Context, externalID int64, fullName, phone string, branchID int64, serviceType, notes string) (models.Booking, error) {
	tx, err := p.db.BeginTxx(ctx, nil)
	if err != nil {
		return models.Booking{}, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var client models.Client
	if err := tx.GetContext(ctx, &client, upsertClientQuery, externalID, fullName, phone); err != nil {
		return models.Booking{}, fmt.Errorf("failed to upsert client: %w", err)
	}

	var booking models.Booking
	if err := tx.GetContext(ctx, &booking, insertBookingQuery,
		client.ID, branchID, serviceType, notes, models.StatusNew); err != nil {
		return models.Booking{}, fmt.Errorf("failed to insert booking: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return models.Booking{}, fmt.Errorf("failed to commit booking: %w", err)
	}
	return booking, nil
}

const bookingDetailColumns = `
	b.id, b.client_id, b.branch_id, b.service_type, b.notes, b.status, b.created_at,
	c.full_name AS client_name, c.phone AS client_phone, c.external_id AS client_external_id,
	f.name AS branch_name, f.address AS branch_address, f.phone AS branch_phone`

// ListBookingsForClient returns the client's bookings, most recent first
func (p *PostgresDB) ListBookingsForClient(ctx context.Context, externalID int64, limit int) ([]models.BookingDetail, error) {
	var details []models.BookingDetail
	err := p.db.SelectContext(ctx, &details, `
		SELECT `+bookingDetailColumns+`
		FROM bookings b
		JOIN clients c ON b.client_id = c.id
		JOIN branches f ON b.branch_id = f.id
		WHERE c.external_id = $1
		ORDER BY b.id DESC
		LIMIT $2`, externalID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list client bookings: %w", err)
	}
	return details, nil
}

// GetBookingDetail returns one booking joined with client and branch
func (p *PostgresDB) GetBookingDetail(ctx context.Context, bookingID int64) (models.BookingDetail, error) {
	var detail models.BookingDetail
	err := p.db.GetContext(ctx, &detail, `
		SELECT `+bookingDetailColumns+`
		FROM bookings b
		JOIN clients c ON b.client_id = c.id
		JOIN branches f ON b.branch_id = f.id
		WHERE b.id = $1`, bookingID)
	if errors.Is(err, sql.ErrNoRows) {
		return models.BookingDetail{}, storage.ErrNotFound
	}
	if err != nil {
		return models.BookingDetail{}, fmt.Errorf("failed to get booking: %w", err)
	}
	return detail, nil
}

// SetBookingStatus performs the one-way new -> confirmed/rejected transition
func (p *PostgresDB) SetBookingStatus(ctx context.Context, bookingID int64, status models.BookingStatus) error {
	res, err := p.db.ExecContext(ctx,
		`UPDATE bookings SET status = $1 WHERE id = $2 AND status = $3`,
		status, bookingID, models.StatusNew)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read update result: %w", err)
	}
	if affected == 0 {
		var exists bool
		if err := p.db.GetContext(ctx, &exists,
			`SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, bookingID); err != nil {
			return fmt.Errorf("failed to check booking: %w", err)
		}
		if !exists {
			return storage.ErrNotFound
		}
		return storage.ErrInvalidTransition
	}
	return nil
}

// ListRecentBookings returns the last N bookings, most recent first
func (p *PostgresDB) ListRecentBookings(ctx context.Context, limit int) ([]models.BookingDetail, error) {
	var details []models.BookingDetail
	err := p.db.SelectContext(ctx, &details, `
		SELECT `+bookingDetailColumns+`
		FROM bookings b
		JOIN clients c ON b.client_id = c.id
		JOIN branches f ON b.branch_id = f.id
		ORDER BY b.id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent bookings: %w", err)
	}
	return details, nil
}

// Stats returns aggregate counters for the admin panel and /status endpoint
func (p *PostgresDB) Stats(ctx context.Context) (models.Stats, error) {
	var stats models.Stats

	if err := p.db.GetContext(ctx, &stats.Clients, `SELECT COUNT(*) FROM clients`); err != nil {
		return models.Stats{}, fmt.Errorf("failed to count clients: %w", err)
	}
	if err := p.db.GetContext(ctx, &stats.Bookings, `SELECT COUNT(*) FROM bookings`); err != nil {
		return models.Stats{}, fmt.Errorf("failed to count bookings: %w", err)
	}
	if err := p.db.GetContext(ctx, &stats.BookingsToday,
		`SELECT COUNT(*) FROM bookings WHERE created_at::date = CURRENT_DATE`); err != nil {
		return models.Stats{}, fmt.Errorf("failed to count today's bookings: %w", err)
	}

	err := p.db.SelectContext(ctx, &stats.ByBranch, `
		SELECT f.name AS branch_name, COUNT(b.id) AS count
		FROM bookings b
		JOIN branches f ON b.branch_id = f.id
		GROUP BY f.name
		ORDER BY count DESC, branch_name`)
	if err != nil {
		return models.Stats{}, fmt.Errorf("failed to count bookings by branch: %w", err)
	}

	return stats, nil
}

// Close closes the database connection
func (p *PostgresDB) Close() error {
	if p.db != nil {
		return p.db.Close()
	}
	return nil
}
