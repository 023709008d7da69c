package export

import (
	"fmt"
	"time"

	"shareit/internal/models"

	"github.com/xuri/excelize/v2"
)

const sheetName = "Bookings"

// BookingsReport renders bookings into an xlsx workbook for operators.
func BookingsReport(bookings []models.Booking) (*excelize.File, error) {
	f := excelize.NewFile()

	index, err := f.NewSheet(sheetName)
	if err != nil {
		return nil, fmt.Errorf("failed to create sheet: %w", err)
	}
	f.SetActiveSheet(index)
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("failed to remove default sheet: %w", err)
	}

	headers := []string{"ID", "Item", "Owner ID", "Booker", "Start", "End", "Status"}
	for col, header := range headers {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, header); err != nil {
			return nil, err
		}
	}

	for row, booking := range bookings {
		var itemName, bookerName string
		var ownerID int64
		if booking.Item != nil {
			itemName = booking.Item.Name
			ownerID = booking.Item.OwnerID
		}
		if booking.Booker != nil {
			bookerName = booking.Booker.Name
		}

		values := []interface{}{
			booking.ID,
			itemName,
			ownerID,
			bookerName,
			booking.Start.Format(time.RFC3339),
			booking.End.Format(time.RFC3339),
			booking.Status,
		}
		for col, value := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return nil, err
			}
		}
	}

	return f, nil
}
