package stubs

import (
	"context"
	"sort"
	"sync"
	"time"

	"bookingbot/internal/models"
	"bookingbot/internal/storage"
)

// MockDB is an in-memory implementation of the Storage interface for testing
type MockDB struct {
	mu       sync.RWMutex
	branches []models.Branch
	clients  map[int64]models.Client // keyed by external (Telegram) user ID
	bookings []models.Booking

	nextBranchID  int64
	nextClientID  int64
	nextBookingID int64

	// FailCommits makes CommitBooking return an error, simulating an
	// unavailable store in dialogue tests.
	FailCommits bool
}

// NewMockDB creates a new mock database
func NewMockDB() *MockDB {
	return &MockDB{
		clients:       make(map[int64]models.Client),
		nextBranchID:  1,
		nextClientID:  1,
		nextBookingID: 1,
	}
}

// Initialize seeds the default workshop branches for testing
func (m *MockDB) Initialize(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	seed := []models.Branch{
		{Name: "Dzerzhinsky District", Address: "Dzerzhinsky St. 249/1", Phone: "+7 (967) 655-50-45", IsActive: true},
		{Name: "South Riverside", Address: "Boulevard Ring 7/1", Phone: "+7 (967) 655-50-45", IsActive: true},
		{Name: "Festivalny", Address: "Ishunina St. 6", Phone: "+7 (967) 655-50-45", IsActive: true},
		{Name: "German Village", Address: "Goethe St. 3", Phone: "+7 (967) 655-50-45", IsActive: true},
	}
	for _, b := range seed {
		b.ID = m.nextBranchID
		m.nextBranchID++
		m.branches = append(m.branches, b)
	}

	return nil
}

// AddBranch inserts a branch directly, bypassing the seed data.
func (m *MockDB) AddBranch(name, address, phone string, active bool) models.Branch {
	m.mu.Lock()
	defer m.mu.Unlock()

	b := models.Branch{
		ID:       m.nextBranchID,
		Name:     name,
		Address:  address,
		Phone:    phone,
		IsActive: active,
	}
	m.nextBranchID++
	m.branches = append(m.branches, b)
	return b
}

// ListActiveBranches returns active branches in insertion order
func (m *MockDB) ListActiveBranches(ctx context.Context) ([]models.Branch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var branches []models.Branch
	for _, b := range m.branches {
		if b.IsActive {
			branches = append(branches, b)
		}
	}
	return branches, nil
}

// GetBranch returns a branch by ID
func (m *MockDB) GetBranch(ctx context.Context, id int64) (models.Branch, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, b := range m.branches {
		if b.ID == id {
			return b, nil
		}
	}
	return models.Branch{}, storage.ErrNotFound
}

// UpsertClient creates or overwrites the client keyed by external ID
func (m *MockDB) UpsertClient(ctx context.Context, externalID int64, fullName, phone string) (models.Client, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.upsertClientLocked(externalID, fullName, phone), nil
}

func (m *MockDB) upsertClientLocked(externalID int64, fullName, phone string) models.Client {
	if c, ok := m.clients[externalID]; ok {
		c.FullName = fullName
		c.Phone = phone
		m.clients[externalID] = c
		return c
	}

	c := models.Client{
		ID:         m.nextClientID,
		ExternalID: externalID,
		FullName:   fullName,
		Phone:      phone,
		CreatedAt:  time.Now(),
	}
	m.nextClientID++
	m.clients[externalID] = c
	return c
}

// InsertBooking appends a booking with status "new"
func (m *MockDB) InsertBooking(ctx context.Context, clientID, branchID int64, serviceType, notes string) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.insertBookingLocked(clientID, branchID, serviceType, notes), nil
}

func (m *MockDB) insertBookingLocked(clientID, branchID int64, serviceType, notes string) models.Booking {
	b := models.Booking{
		ID:          m.nextBookingID,
		ClientID:    clientID,
		BranchID:    branchID,
		ServiceType: serviceType,
		Notes:       notes,
		Status:      models.StatusNew,
		CreatedAt:   time.Now(),
	}
	m.nextBookingID++
	m.bookings = append(m.bookings, b)
	return b
}

// CommitBooking upserts the client and inserts the booking under one lock
func (m *MockDB) CommitBooking(ctx context.Context, externalID int64, fullName, phone string, branchID int64, serviceType, notes string) (models.Booking, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailCommits {
		return models.Booking{}, context.DeadlineExceeded
	}

	client := m.upsertClientLocked(externalID, fullName, phone)
	return m.insertBookingLocked(client.ID, branchID, serviceType, notes), nil
}

// ListBookingsForClient returns the client's bookings, most recent first
func (m *MockDB) ListBookingsForClient(ctx context.Context, externalID int64, limit int) ([]models.BookingDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	client, ok := m.clients[externalID]
	if !ok {
		return nil, nil
	}

	var details []models.BookingDetail
	for _, b := range m.bookings {
		if b.ClientID == client.ID {
			details = append(details, m.detailLocked(b))
		}
	}

	sort.Slice(details, func(i, j int) bool {
		return details[i].ID > details[j].ID
	})
	if limit > 0 && limit < len(details) {
		details = details[:limit]
	}
	return details, nil
}

// GetBookingDetail returns one booking joined with client and branch
func (m *MockDB) GetBookingDetail(ctx context.Context, bookingID int64) (models.BookingDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for _, b := range m.bookings {
		if b.ID == bookingID {
			return m.detailLocked(b), nil
		}
	}
	return models.BookingDetail{}, storage.ErrNotFound
}

// SetBookingStatus performs the one-way new -> confirmed/rejected transition
func (m *MockDB) SetBookingStatus(ctx context.Context, bookingID int64, status models.BookingStatus) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for i, b := range m.bookings {
		if b.ID == bookingID {
			if b.Status != models.StatusNew {
				return storage.ErrInvalidTransition
			}
			m.bookings[i].Status = status
			return nil
		}
	}
	return storage.ErrNotFound
}

// ListRecentBookings returns the last N bookings, most recent first
func (m *MockDB) ListRecentBookings(ctx context.Context, limit int) ([]models.BookingDetail, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	details := make([]models.BookingDetail, 0, len(m.bookings))
	for _, b := range m.bookings {
		details = append(details, m.detailLocked(b))
	}

	sort.Slice(details, func(i, j int) bool {
		return details[i].ID > details[j].ID
	})
	if limit > 0 && limit < len(details) {
		details = details[:limit]
	}
	return details, nil
}

// Stats returns aggregate counters
func (m *MockDB) Stats(ctx context.Context) (models.Stats, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := models.Stats{
		Clients:  len(m.clients),
		Bookings: len(m.bookings),
	}

	now := time.Now()
	byBranch := make(map[string]int)
	for _, b := range m.bookings {
		y1, m1, d1 := b.CreatedAt.Date()
		y2, m2, d2 := now.Date()
		if y1 == y2 && m1 == m2 && d1 == d2 {
			stats.BookingsToday++
		}
		if branch, err := m.branchNameLocked(b.BranchID); err == nil {
			byBranch[branch]++
		}
	}

	for name, count := range byBranch {
		stats.ByBranch = append(stats.ByBranch, models.BranchCount{BranchName: name, Count: count})
	}
	sort.Slice(stats.ByBranch, func(i, j int) bool {
		if stats.ByBranch[i].Count != stats.ByBranch[j].Count {
			return stats.ByBranch[i].Count > stats.ByBranch[j].Count
		}
		return stats.ByBranch[i].BranchName < stats.ByBranch[j].BranchName
	})

	return stats, nil
}

// Close does nothing for mock DB
func (m *MockDB) Close() error {
	return nil
}

func (m *MockDB) detailLocked(b models.Booking) models.BookingDetail {
	d := models.BookingDetail{Booking: b}
	for _, c := range m.clients {
		if c.ID == b.ClientID {
			d.ClientName = c.FullName
			d.ClientPhone = c.Phone
			d.ClientExternalID = c.ExternalID
			break
		}
	}
	for _, br := range m.branches {
		if br.ID == b.BranchID {
			d.BranchName = br.Name
			d.BranchAddress = br.Address
			d.BranchPhone = br.Phone
			break
		}
	}
	return d
}

func (m *MockDB) branchNameLocked(id int64) (string, error) {
	for _, b := range m.branches {
		if b.ID == id {
			return b.Name, nil
		}
	}
	return "", storage.ErrNotFound
}
