package domain

import (
	"fmt"
	"strings"
)

type EquipmentStatus string

const (
	EquipmentStatusAvailable   EquipmentStatus = "AVAILABLE"
	EquipmentStatusReserve     EquipmentStatus = "RESERVE"
	EquipmentStatusOnRent      EquipmentStatus = "ON RENT"
	EquipmentStatusMaintenance EquipmentStatus = "MAINTENANCE"
	EquipmentStatusDOS         EquipmentStatus = "DOS"
)

// EquipmentStatuses lists every status in display order.
var EquipmentStatuses = []EquipmentStatus{
	EquipmentStatusAvailable,
	EquipmentStatusReserve,
	EquipmentStatusOnRent,
	EquipmentStatusMaintenance,
	EquipmentStatusDOS,
}

// ParseEquipmentStatus normalizes case and surrounding whitespace and reports
// whether s names a known status.
func ParseEquipmentStatus(s string) (EquipmentStatus, bool) {
	norm := EquipmentStatus(strings.ToUpper(strings.TrimSpace(s)))
	for _, st := range EquipmentStatuses {
		if st == norm {
			return st, true
		}
	}
	return "", false
}

// Holds reports whether the status keeps a customer and rental period on the record.
func (s EquipmentStatus) Holds() bool {
	return s == EquipmentStatusReserve || s == EquipmentStatusOnRent
}

// Equipment is one physical rental asset as the application sees it.
type Equipment struct {
	ID         int64           `json:"id"`
	Type       string          `json:"type"`
	Code       string          `json:"code"`
	Make       string          `json:"make"`
	Model      string          `json:"model"`
	Branch     string          `json:"branch"`
	Status     EquipmentStatus `json:"status"`
	Customer   string          `json:"customer,omitempty"`
	RentalRate float64         `json:"rentalRate"`
	StartDate  Date            `json:"startDate"`
	EndDate    Date            `json:"endDate"`
}

// HasRentalPeriod reports whether both dates are set.
func (e *Equipment) HasRentalPeriod() bool {
	return !e.StartDate.IsZero() && !e.EndDate.IsZero()
}

// ClearRental drops the customer, rate and rental period.
func (e *Equipment) ClearRental() {
	e.Customer = ""
	e.RentalRate = 0
	e.StartDate = Date{}
	e.EndDate = Date{}
}

// Validate checks the record-level invariants before it is written to the store.
func (e *Equipment) Validate() error {
	if strings.TrimSpace(e.Code) == "" {
		return fmt.Errorf("%w: code is required", ErrInvalidEquipment)
	}
	if _, ok := ParseEquipmentStatus(string(e.Status)); !ok {
		return fmt.Errorf("%w: %q", ErrInvalidStatus, e.Status)
	}
	if e.RentalRate < 0 {
		return ErrInvalidRate
	}
	if e.StartDate.IsZero() != e.EndDate.IsZero() {
		return fmt.Errorf("%w: start and end dates must be set together", ErrInvalidDates)
	}
	if e.HasRentalPeriod() && e.EndDate.Before(e.StartDate) {
		return fmt.Errorf("%w: end date must be >= start date", ErrInvalidDates)
	}
	if e.Status.Holds() && !e.HasRentalPeriod() {
		return fmt.Errorf("%w: %s requires a rental period", ErrInvalidDates, e.Status)
	}
	if e.Status == EquipmentStatusAvailable && (e.Customer != "" || e.HasRentalPeriod()) {
		return fmt.Errorf("%w: available equipment cannot carry a customer or rental period", ErrInvalidEquipment)
	}
	return nil
}
