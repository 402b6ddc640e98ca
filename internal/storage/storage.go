package storage

import (
	"context"
	"errors"

	"bookingbot/internal/models"
)

// ErrNotFound is returned when a branch, client or booking does not exist.
var ErrNotFound = errors.New("not found")

// ErrInvalidTransition is returned when a status update targets a booking
// that already left the "new" state. Status transitions are one-way.
var ErrInvalidTransition = errors.New("booking status is final")

// Storage defines the interface for data storage operations
type Storage interface {
	// Branch operations
	ListActiveBranches(ctx context.Context) ([]models.Branch, error)
	GetBranch(ctx context.Context, id int64) (models.Branch, error)

	// Client operations

	// UpsertClient creates or overwrites the client record keyed by the
	// Telegram user ID. Re-submission updates name and phone in place.
	UpsertClient(ctx context.Context, externalID int64, fullName, phone string) (models.Client, error)

	// Booking operations
	InsertBooking(ctx context.Context, clientID, branchID int64, serviceType, notes string) (models.Booking, error)

	// CommitBooking upserts the client and inserts the booking in a single
	// transaction, so a completed dialogue never leaves a client row
	// without its booking or vice versa.
	CommitBooking(ctx context.Context, externalID int64, fullName, phone string, branchID int64, serviceType, notes string) (models.Booking, error)

	ListBookingsForClient(ctx context.Context, externalID int64, limit int) ([]models.BookingDetail, error)
	GetBookingDetail(ctx context.Context, bookingID int64) (models.BookingDetail, error)

	// SetBookingStatus transitions a booking out of the "new" state.
	// Returns ErrInvalidTransition if the booking was already processed.
	SetBookingStatus(ctx context.Context, bookingID int64, status models.BookingStatus) error

	ListRecentBookings(ctx context.Context, limit int) ([]models.BookingDetail, error)

	// Statistics operations
	Stats(ctx context.Context) (models.Stats, error)

	// Lifecycle
	Initialize(ctx context.Context) error
	Close() error
}
