package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"equipment-tracker/internal/domain"
	"equipment-tracker/internal/logger"
	"equipment-tracker/internal/repository"
)

const equipmentColumns = `id, category, code, make, model, etc_location, status, customer, rental_rate, rental_start_date, rental_end_date, updated_at`

type equipmentRepository struct {
	db  *sql.DB
	now func() time.Time
}

func NewEquipmentRepository(db *sql.DB) repository.EquipmentRepository {
	return &equipmentRepository{db: db, now: time.Now}
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanEquipmentRow(s rowScanner) (EquipmentRow, error) {
	var r EquipmentRow
	err := s.Scan(&r.ID, &r.Category, &r.Code, &r.Make, &r.Model, &r.EtcLocation, &r.Status,
		&r.Customer, &r.RentalRate, &r.RentalStartDate, &r.RentalEndDate, &r.UpdatedAt)
	return r, err
}

// List returns every equipment record ordered by code. Rows with an unknown
// status are skipped.
func (r *equipmentRepository) List(ctx context.Context) ([]domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment ORDER BY code`
	logger.DatabaseCall("ListEquipment", query)

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		logger.DatabaseResult("ListEquipment", 0, err)
		return nil, fmt.Errorf("list equipment: %w", err)
	}
	defer rows.Close()

	items := []domain.Equipment{}
	for rows.Next() {
		row, err := scanEquipmentRow(rows)
		if err != nil {
			logger.DatabaseResult("ListEquipment", int64(len(items)), err)
			return nil, fmt.Errorf("scan equipment: %w", err)
		}
		if err := row.Validate(); err != nil {
			logger.Warn("Skipping equipment row", "id", row.ID, "error", err)
			continue
		}
		items = append(items, ToApplication(row))
	}
	if err := rows.Err(); err != nil {
		logger.DatabaseResult("ListEquipment", int64(len(items)), err)
		return nil, fmt.Errorf("list equipment: %w", err)
	}

	logger.DatabaseResult("ListEquipment", int64(len(items)), nil)
	return items, nil
}

func (r *equipmentRepository) GetByID(ctx context.Context, id int64) (*domain.Equipment, error) {
	query := `SELECT ` + equipmentColumns + ` FROM equipment WHERE id = $1`
	logger.DatabaseCall("GetEquipment", query, "id", id)

	row, err := scanEquipmentRow(r.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		logger.DatabaseResult("GetEquipment", 0, nil, "id", id)
		return nil, fmt.Errorf("equipment %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		logger.DatabaseResult("GetEquipment", 0, err, "id", id)
		return nil, fmt.Errorf("get equipment %d: %w", id, err)
	}
	if err := row.Validate(); err != nil {
		logger.Warn("Unreadable equipment row", "id", id, "error", err)
		// not ErrInvalidStatus: the caller did nothing wrong
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRecord, err)
	}

	logger.DatabaseResult("GetEquipment", 1, nil, "id", id)
	e := ToApplication(row)
	return &e, nil
}

// Create inserts e and sets e.ID to the store-assigned id. Any id on e is ignored.
func (r *equipmentRepository) Create(ctx context.Context, e *domain.Equipment) error {
	row := ToStorage(*e, r.now())
	query := `INSERT INTO equipment (category, code, make, model, etc_location, status, customer, rental_rate, rental_start_date, rental_end_date, updated_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11) RETURNING id`
	logger.DatabaseCall("CreateEquipment", query, "code", e.Code)

	err := r.db.QueryRowContext(ctx, query, row.Category, row.Code, row.Make, row.Model, row.EtcLocation,
		row.Status, row.Customer, row.RentalRate, row.RentalStartDate, row.RentalEndDate, row.UpdatedAt).Scan(&e.ID)
	if err != nil {
		logger.DatabaseResult("CreateEquipment", 0, err, "code", e.Code)
		return fmt.Errorf("create equipment: %w", err)
	}

	logger.DatabaseResult("CreateEquipment", 1, nil, "id", e.ID)
	return nil
}

// Update overwrites every column of the row keyed by e.ID.
func (r *equipmentRepository) Update(ctx context.Context, e *domain.Equipment) error {
	row := ToStorage(*e, r.now())
	query := `UPDATE equipment SET category=$1, code=$2, make=$3, model=$4, etc_location=$5, status=$6, customer=$7, rental_rate=$8, rental_start_date=$9, rental_end_date=$10, updated_at=$11 WHERE id=$12`
	logger.DatabaseCall("UpdateEquipment", query, "id", e.ID)

	res, err := r.db.ExecContext(ctx, query, row.Category, row.Code, row.Make, row.Model, row.EtcLocation,
		row.Status, row.Customer, row.RentalRate, row.RentalStartDate, row.RentalEndDate, row.UpdatedAt, row.ID)
	if err != nil {
		logger.DatabaseResult("UpdateEquipment", 0, err, "id", e.ID)
		return fmt.Errorf("update equipment %d: %w", e.ID, err)
	}
	return checkAffected(res, "UpdateEquipment", e.ID)
}

func (r *equipmentRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM equipment WHERE id = $1`
	logger.DatabaseCall("DeleteEquipment", query, "id", id)

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		logger.DatabaseResult("DeleteEquipment", 0, err, "id", id)
		return fmt.Errorf("delete equipment %d: %w", id, err)
	}
	return checkAffected(res, "DeleteEquipment", id)
}

func checkAffected(res sql.Result, operation string, id int64) error {
	n, err := res.RowsAffected()
	if err != nil {
		logger.DatabaseResult(operation, 0, err, "id", id)
		return err
	}
	logger.DatabaseResult(operation, n, nil, "id", id)
	if n == 0 {
		return fmt.Errorf("equipment %d: %w", id, domain.ErrNotFound)
	}
	return nil
}
