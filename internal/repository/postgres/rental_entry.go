package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"equipment-tracker/internal/domain"
	"equipment-tracker/internal/logger"
	"equipment-tracker/internal/repository"
	"equipment-tracker/internal/utils"
)

type rentalEntryRepository struct {
	db *sql.DB
}

func NewRentalEntryRepository(db *sql.DB) repository.RentalEntryRepository {
	return &rentalEntryRepository{db: db}
}

// List returns rental entries joined with their equipment, ordered by start date.
func (r *rentalEntryRepository) List(ctx context.Context) ([]domain.RentalEntry, error) {
	query := `SELECT re.id, re.equipment_id, re.start_date, re.end_date, COALESCE(re.customer, ''), re.rental_rate,
	                 re.billing_start, re.billing_end, re.created_at, re.updated_at,
	                 e.code, COALESCE(e.make, ''), COALESCE(e.model, ''), COALESCE(e.category, '')
	          FROM equipment_entries re
	          JOIN equipment e ON e.id = re.equipment_id
	          ORDER BY re.start_date`
	logger.DatabaseCall("ListRentalEntries", query)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("ListRentalEntries", 0, err)
		return nil, fmt.Errorf("list rental entries: %w", err)
	}
	defer rows.Close()

	entries := []domain.RentalEntry{}
	for rows.Next() {
		var (
			re                       domain.RentalEntry
			rate                     sql.NullString
			billingStart, billingEnd domain.Date
		)
		if err := rows.Scan(&re.ID, &re.EquipmentID, &re.StartDate, &re.EndDate, &re.Customer, &rate,
			&billingStart, &billingEnd, &re.CreatedAt, &re.UpdatedAt,
			&re.EquipmentCode, &re.EquipmentMake, &re.EquipmentModel, &re.EquipmentCategory); err != nil {
			logger.DatabaseResult("ListRentalEntries", int64(len(entries)), err)
			return nil, fmt.Errorf("scan rental entry: %w", err)
		}
		re.RentalRate = utils.ParseRate(nullableString(rate))
		if !billingStart.IsZero() {
			re.BillingStart = &billingStart
		}
		if !billingEnd.IsZero() {
			re.BillingEnd = &billingEnd
		}
		entries = append(entries, re)
	}
	if err := rows.Err(); err != nil {
		logger.DatabaseResult("ListRentalEntries", int64(len(entries)), err)
		return nil, fmt.Errorf("list rental entries: %w", err)
	}

	logger.DatabaseResult("ListRentalEntries", int64(len(entries)), nil)
	return entries, nil
}
