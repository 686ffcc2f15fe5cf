package export

import (
	"bytes"
	"testing"
	"time"

	"equipment-tracker/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestBuildFleetXLSX(t *testing.T) {
	items := []domain.Equipment{
		{Code: "EX-1", Type: "Excavator", Make: "CAT", Model: "320", Branch: "Houston", Status: domain.EquipmentStatusOnRent,
			Customer: "Acme", RentalRate: 4500, StartDate: domain.MustParseDate("2025-01-10"), EndDate: domain.MustParseDate("2025-01-15")},
		{Code: "LD-2", Type: "Loader", Status: domain.EquipmentStatusAvailable},
	}

	data, err := BuildFleetXLSX(items, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	code, _ := f.GetCellValue(fleetSheet, "A2")
	assert.Equal(t, "EX-1", code)
	status, _ := f.GetCellValue(fleetSheet, "F2")
	assert.Equal(t, "ON RENT", status)
	start, _ := f.GetCellValue(fleetSheet, "I2")
	assert.Equal(t, "2025-01-10", start)
	emptyStart, _ := f.GetCellValue(fleetSheet, "I3")
	assert.Equal(t, "", emptyStart)

	total, _ := f.GetCellValue(summarySheet, "B3")
	assert.Equal(t, "2", total)
	onRent, _ := f.GetCellValue(summarySheet, "B7")
	assert.Equal(t, "1", onRent)
}

func TestBuildRentalReportPDF(t *testing.T) {
	entries := []domain.RentalEntry{
		{EquipmentCode: "EX-1", EquipmentMake: "CAT", EquipmentModel: "320", Customer: "Acme",
			StartDate: domain.MustParseDate("2025-01-10"), EndDate: domain.MustParseDate("2025-01-15"), RentalRate: 1200},
	}

	data, err := BuildRentalReportPDF(entries, time.Now())
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF-")))

	empty, err := BuildRentalReportPDF(nil, time.Now())
	require.NoError(t, err)
	assert.NotEmpty(t, empty)
}
