package repository

import (
	"context"

	"equipment-tracker/internal/domain"
)

// EquipmentRepository persists equipment records. Implementations normalize
// stored rows into domain.Equipment before returning them.
type EquipmentRepository interface {
	List(ctx context.Context) ([]domain.Equipment, error)
	GetByID(ctx context.Context, id int64) (*domain.Equipment, error)
	Create(ctx context.Context, e *domain.Equipment) error
	Update(ctx context.Context, e *domain.Equipment) error
	Delete(ctx context.Context, id int64) error
}

type RentalEntryRepository interface {
	List(ctx context.Context) ([]domain.RentalEntry, error)
}
