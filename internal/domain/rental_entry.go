package domain

import "time"

// RentalEntry is a historical/billing record of one rental period, denormalized
// with the linked equipment's code, make, model and category for display.
type RentalEntry struct {
	ID                int64     `json:"id"`
	EquipmentID       int64     `json:"equipment_id"`
	StartDate         Date      `json:"start_date"`
	EndDate           Date      `json:"end_date"`
	Customer          string    `json:"customer"`
	RentalRate        float64   `json:"rental_rate"`
	BillingStart      *Date     `json:"billing_start,omitempty"`
	BillingEnd        *Date     `json:"billing_end,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
	EquipmentCode     string    `json:"equipment_code"`
	EquipmentMake     string    `json:"equipment_make"`
	EquipmentModel    string    `json:"equipment_model"`
	EquipmentCategory string    `json:"equipment_category"`
}
