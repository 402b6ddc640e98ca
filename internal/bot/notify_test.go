package bot

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"bookingbot/internal/models"
)

func TestAdminBookingSummary(t *testing.T) {
	createdAt := time.Date(2026, 3, 14, 18, 30, 0, 0, time.UTC)
	detail := models.BookingDetail{
		Booking: models.Booking{
			ID:          7,
			ServiceType: ServiceLabel,
			Status:      models.StatusNew,
			CreatedAt:   createdAt,
		},
		ClientName:       "Ivanov Ivan Ivanovich",
		ClientPhone:      "+79161234567",
		ClientExternalID: 123,
		BranchName:       "Festivalny",
		BranchAddress:    "Ishunina St. 6",
	}

	text := adminBookingSummary(detail)

	assert.Contains(t, text, "ID: #7")
	assert.Contains(t, text, "Festivalny")
	assert.Contains(t, text, "Ivanov Ivan Ivanovich")
	assert.Contains(t, text, "+79161234567")
	assert.Contains(t, text, "Telegram ID: 123")
	// The summary shows when the booking was made, not when it was delivered
	assert.Contains(t, text, "18:30 14.03.2026")
}

func TestClientStatusMessage(t *testing.T) {
	detail := models.BookingDetail{
		Booking: models.Booking{ID: 7, ServiceType: ServiceLabel},
	}

	detail.Status = models.StatusConfirmed
	confirmed := clientStatusMessage(detail)
	assert.Contains(t, confirmed, "booking #7 is confirmed")
	assert.Contains(t, confirmed, ServiceLabel)

	detail.Status = models.StatusRejected
	rejected := clientStatusMessage(detail)
	assert.Contains(t, rejected, "booking #7 was declined")

	detail.Status = models.StatusNew
	assert.Empty(t, clientStatusMessage(detail))
}
