package service

import (
	"context"

	"equipment-tracker/internal/domain"
)

type EquipmentService interface {
	ListEquipment(ctx context.Context) ([]domain.Equipment, error)
	GetEquipment(ctx context.Context, id int64) (*domain.Equipment, error)
	CreateEquipment(ctx context.Context, e domain.Equipment) (*domain.Equipment, error)
	UpdateEquipment(ctx context.Context, e domain.Equipment) (*domain.Equipment, error)
	DeleteEquipment(ctx context.Context, id int64) error
	AvailableActions(ctx context.Context, id int64) ([]domain.Action, error)
	ApplyAction(ctx context.Context, id int64, action domain.Action, payload domain.ActionPayload) (*domain.Equipment, error)
}

type RentalEntryService interface {
	ListRentalEntries(ctx context.Context) ([]domain.RentalEntry, error)
}

// FleetService answers read-only questions about the whole fleet for reports and gauges.
type FleetService interface {
	StatusCounts(ctx context.Context) (map[domain.EquipmentStatus]int, error)
	DueReturns(ctx context.Context, today domain.Date) ([]domain.Equipment, error)
	UpcomingStarts(ctx context.Context, today domain.Date, withinDays int) ([]domain.Equipment, error)
}
