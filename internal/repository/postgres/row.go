package postgres

import (
	"database/sql"
	"fmt"
	"time"

	"equipment-tracker/internal/domain"
	"equipment-tracker/internal/utils"
)

// EquipmentRow is an equipment record as stored in the equipment table.
type EquipmentRow struct {
	ID              int64
	Category        sql.NullString
	Code            string
	Make            sql.NullString
	Model           sql.NullString
	EtcLocation     sql.NullString
	Status          string
	Customer        sql.NullString
	RentalRate      sql.NullString // numeric comes back as text
	RentalStartDate domain.Date
	RentalEndDate   domain.Date
	UpdatedAt       sql.NullTime
}

// Validate rejects rows the application cannot represent.
func (r *EquipmentRow) Validate() error {
	if _, ok := domain.ParseEquipmentStatus(r.Status); !ok {
		return fmt.Errorf("%w: equipment %d has status %q", domain.ErrInvalidStatus, r.ID, r.Status)
	}
	return nil
}

// ToApplication renames storage columns to application fields.
func ToApplication(r EquipmentRow) domain.Equipment {
	status, ok := domain.ParseEquipmentStatus(r.Status)
	if !ok {
		status = domain.EquipmentStatus(r.Status)
	}
	return domain.Equipment{
		ID:         r.ID,
		Type:       r.Category.String,
		Code:       r.Code,
		Make:       r.Make.String,
		Model:      r.Model.String,
		Branch:     r.EtcLocation.String,
		Status:     status,
		Customer:   r.Customer.String,
		RentalRate: utils.ParseRate(nullableString(r.RentalRate)),
		StartDate:  r.RentalStartDate,
		EndDate:    r.RentalEndDate,
	}
}

// ToStorage renames application fields to storage columns and stamps UpdatedAt.
func ToStorage(e domain.Equipment, now time.Time) EquipmentRow {
	return EquipmentRow{
		ID:              e.ID,
		Category:        toNullString(e.Type),
		Code:            e.Code,
		Make:            toNullString(e.Make),
		Model:           toNullString(e.Model),
		EtcLocation:     toNullString(e.Branch),
		Status:          string(e.Status),
		Customer:        toNullString(e.Customer),
		RentalRate:      sql.NullString{String: utils.RateString(e.RentalRate), Valid: true},
		RentalStartDate: e.StartDate,
		RentalEndDate:   e.EndDate,
		UpdatedAt:       sql.NullTime{Time: now.UTC(), Valid: true},
	}
}

func toNullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullableString(s sql.NullString) any {
	if !s.Valid {
		return nil
	}
	return s.String
}
