package models

import "time"

// BookingStatus is the lifecycle state of a booking request.
type BookingStatus string

const (
	StatusNew       BookingStatus = "new"
	StatusConfirmed BookingStatus = "confirmed"
	StatusRejected  BookingStatus = "rejected"
)

// Branch represents a physical location of the workshop
type Branch struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	Address  string `db:"address"`
	Phone    string `db:"phone"`
	IsActive bool   `db:"is_active"`
}

// Client represents a person who submitted at least one booking.
// ExternalID is the Telegram user ID; there is at most one Client per it.
type Client struct {
	ID         int64     `db:"id"`
	ExternalID int64     `db:"external_id"`
	FullName   string    `db:"full_name"`
	Phone      string    `db:"phone"`
	Email      string    `db:"email"`
	CreatedAt  time.Time `db:"created_at"`
}

// Booking represents a single booking request
type Booking struct {
	ID          int64         `db:"id"`
	ClientID    int64         `db:"client_id"`
	BranchID    int64         `db:"branch_id"`
	ServiceType string        `db:"service_type"`
	Notes       string        `db:"notes"`
	Status      BookingStatus `db:"status"`
	CreatedAt   time.Time     `db:"created_at"`
}

// BookingDetail is a booking joined with its client and branch,
// used by listings, the admin detail view and notifications.
type BookingDetail struct {
	Booking
	ClientName       string `db:"client_name"`
	ClientPhone      string `db:"client_phone"`
	ClientExternalID int64  `db:"client_external_id"`
	BranchName       string `db:"branch_name"`
	BranchAddress    string `db:"branch_address"`
	BranchPhone      string `db:"branch_phone"`
}

// BranchCount is the number of bookings made for one branch.
type BranchCount struct {
	BranchName string `db:"branch_name"`
	Count      int    `db:"count"`
}

// Stats represents aggregate counters for the admin panel and /status
type Stats struct {
	Clients       int
	Bookings      int
	BookingsToday int
	ByBranch      []BranchCount
}
