package service

import (
	"context"
	"fmt"

	"equipment-tracker/internal/domain"
	"equipment-tracker/internal/logger"
	"equipment-tracker/internal/repository"
)

type equipmentService struct {
	equipmentRepo repository.EquipmentRepository
}

func NewEquipmentService(equipmentRepo repository.EquipmentRepository) EquipmentService {
	return &equipmentService{equipmentRepo: equipmentRepo}
}

func (s *equipmentService) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	return s.equipmentRepo.List(ctx)
}

func (s *equipmentService) GetEquipment(ctx context.Context, id int64) (*domain.Equipment, error) {
	if id <= 0 {
		return nil, domain.ErrMissingID
	}
	return s.equipmentRepo.GetByID(ctx, id)
}

// CreateEquipment stores a new record. Any id on e is discarded.
func (s *equipmentService) CreateEquipment(ctx context.Context, e domain.Equipment) (*domain.Equipment, error) {
	e.ID = 0
	if err := normalize(&e); err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.Create(ctx, &e); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Equipment created", "id", e.ID, "code", e.Code)
	return &e, nil
}

// UpdateEquipment overwrites the full record keyed by e.ID.
func (s *equipmentService) UpdateEquipment(ctx context.Context, e domain.Equipment) (*domain.Equipment, error) {
	if e.ID <= 0 {
		return nil, domain.ErrMissingID
	}
	if err := normalize(&e); err != nil {
		return nil, err
	}
	if err := s.equipmentRepo.Update(ctx, &e); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Equipment updated", "id", e.ID, "status", e.Status)
	return &e, nil
}

func (s *equipmentService) DeleteEquipment(ctx context.Context, id int64) error {
	if id <= 0 {
		return domain.ErrMissingID
	}
	if err := s.equipmentRepo.Delete(ctx, id); err != nil {
		return err
	}
	logger.InfoContext(ctx, "Equipment deleted", "id", id)
	return nil
}

func (s *equipmentService) AvailableActions(ctx context.Context, id int64) ([]domain.Action, error) {
	e, err := s.GetEquipment(ctx, id)
	if err != nil {
		return nil, err
	}
	return domain.ActionsFor(e.Status), nil
}

// ApplyAction runs one status transition against the stored record and persists the result.
func (s *equipmentService) ApplyAction(ctx context.Context, id int64, action domain.Action, payload domain.ActionPayload) (*domain.Equipment, error) {
	current, err := s.GetEquipment(ctx, id)
	if err != nil {
		return nil, err
	}

	next, err := domain.Apply(*current, action, payload)
	if err != nil {
		logger.WarnContext(ctx, "Action rejected", "id", id, "status", current.Status, "action", action.String(), "error", err)
		return nil, err
	}
	if err := next.Validate(); err != nil {
		return nil, fmt.Errorf("%s on %s: %w", action, current.Code, err)
	}

	if err := s.equipmentRepo.Update(ctx, &next); err != nil {
		return nil, err
	}
	logger.InfoContext(ctx, "Action applied", "id", id, "action", action.String(), "from", current.Status, "to", next.Status)
	return &next, nil
}

func normalize(e *domain.Equipment) error {
	if status, ok := domain.ParseEquipmentStatus(string(e.Status)); ok {
		e.Status = status
	}
	return e.Validate()
}
