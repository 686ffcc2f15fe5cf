// Package export renders the fleet and the rental history as downloadable documents.
package export

import (
	"bytes"
	"fmt"
	"time"

	"equipment-tracker/internal/domain"
	"equipment-tracker/internal/utils"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"
)

const (
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	ContentTypePDF  = "application/pdf"

	fleetSheet   = "fleet"
	summarySheet = "summary"
)

var fleetHeader = []string{"Code", "Type", "Make", "Model", "Branch", "Status", "Customer", "Rate", "Start", "End"}

// BuildFleetXLSX writes one row per unit plus a per-status summary sheet.
func BuildFleetXLSX(items []domain.Equipment, generated time.Time) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", fleetSheet); err != nil {
		return nil, err
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return nil, err
	}

	for i, h := range fleetHeader {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(fleetSheet, cell, h)
	}
	for i, e := range items {
		row := i + 2
		_ = f.SetCellValue(fleetSheet, fmt.Sprintf("A%d", row), e.Code)
		_ = f.SetCellValue(fleetSheet, fmt.Sprintf("B%d", row), e.Type)
		_ = f.SetCellValue(fleetSheet, fmt.Sprintf("C%d", row), e.Make)
		_ = f.SetCellValue(fleetSheet, fmt.Sprintf("D%d", row), e.Model)
		_ = f.SetCellValue(fleetSheet, fmt.Sprintf("E%d", row), e.Branch)
		_ = f.SetCellValue(fleetSheet, fmt.Sprintf("F%d", row), string(e.Status))
		_ = f.SetCellValue(fleetSheet, fmt.Sprintf("G%d", row), e.Customer)
		_ = f.SetCellValue(fleetSheet, fmt.Sprintf("H%d", row), e.RentalRate)
		_ = f.SetCellValue(fleetSheet, fmt.Sprintf("I%d", row), e.StartDate.String())
		_ = f.SetCellValue(fleetSheet, fmt.Sprintf("J%d", row), e.EndDate.String())
	}

	counts := map[domain.EquipmentStatus]int{}
	for _, e := range items {
		counts[e.Status]++
	}
	_ = f.SetCellValue(summarySheet, "A1", "Fleet Summary")
	_ = f.SetCellValue(summarySheet, "A2", "Generated")
	_ = f.SetCellValue(summarySheet, "B2", generated.UTC().Format(time.RFC3339))
	_ = f.SetCellValue(summarySheet, "A3", "Total Units")
	_ = f.SetCellValue(summarySheet, "B3", len(items))
	for i, st := range domain.EquipmentStatuses {
		row := i + 5
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("A%d", row), string(st))
		_ = f.SetCellValue(summarySheet, fmt.Sprintf("B%d", row), counts[st])
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildRentalReportPDF renders the rental history as a landscape table.
func BuildRentalReportPDF(entries []domain.RentalEntry, generated time.Time) ([]byte, error) {
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Rental Report")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generated.UTC().Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Entries: %d", len(entries)))
	pdf.Ln(8)

	widths := []float64{30, 55, 60, 28, 28, 45}
	pdf.SetFont("Arial", "B", 10)
	for i, h := range []string{"Code", "Equipment", "Customer", "Start", "End", "Rate"} {
		pdf.CellFormat(widths[i], 6, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 9)
	for _, re := range entries {
		pdf.CellFormat(widths[0], 6, re.EquipmentCode, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, fmt.Sprintf("%s %s", re.EquipmentMake, re.EquipmentModel), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, re.Customer, "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[3], 6, re.StartDate.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[4], 6, re.EndDate.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(widths[5], 6, utils.FormatMonthlyRate(re.RentalRate), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
