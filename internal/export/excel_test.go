package export

import (
	"testing"
	"time"

	"shareit/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookingsReport(t *testing.T) {
	bookings := []models.Booking{
		{
			ID:     1,
			Start:  time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
			End:    time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
			Status: models.StatusApproved,
			Item:   &models.Item{ID: 2, Name: "Drill", OwnerID: 5},
			Booker: &models.User{ID: 3, Name: "Booker"},
		},
	}

	f, err := BookingsReport(bookings)
	require.NoError(t, err)
	defer f.Close()

	header, err := f.GetCellValue("Bookings", "A1")
	require.NoError(t, err)
	assert.Equal(t, "ID", header)

	name, err := f.GetCellValue("Bookings", "B2")
	require.NoError(t, err)
	assert.Equal(t, "Drill", name)

	status, err := f.GetCellValue("Bookings", "G2")
	require.NoError(t, err)
	assert.Equal(t, models.StatusApproved, status)
}

func TestBookingsReport_Empty(t *testing.T) {
	f, err := BookingsReport(nil)
	require.NoError(t, err)
	defer f.Close()

	sheets := f.GetSheetList()
	assert.Equal(t, []string{"Bookings"}, sheets)
}

func TestBookingsReport_MissingJoins(t *testing.T) {
	f, err := BookingsReport([]models.Booking{{ID: 1, Status: models.StatusWaiting}})
	require.NoError(t, err)
	defer f.Close()

	name, err := f.GetCellValue("Bookings", "B2")
	require.NoError(t, err)
	assert.Empty(t, name)
}
