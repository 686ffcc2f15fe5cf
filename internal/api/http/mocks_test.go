package http

import (
	"context"

	"equipment-tracker/internal/domain"

	"github.com/stretchr/testify/mock"
)

type MockEquipmentService struct {
	mock.Mock
}

func (m *MockEquipmentService) ListEquipment(ctx context.Context) ([]domain.Equipment, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Equipment), args.Error(1)
}

func (m *MockEquipmentService) GetEquipment(ctx context.Context, id int64) (*domain.Equipment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentService) CreateEquipment(ctx context.Context, e domain.Equipment) (*domain.Equipment, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentService) UpdateEquipment(ctx context.Context, e domain.Equipment) (*domain.Equipment, error) {
	args := m.Called(ctx, e)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

func (m *MockEquipmentService) DeleteEquipment(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockEquipmentService) AvailableActions(ctx context.Context, id int64) ([]domain.Action, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Action), args.Error(1)
}

func (m *MockEquipmentService) ApplyAction(ctx context.Context, id int64, action domain.Action, payload domain.ActionPayload) (*domain.Equipment, error) {
	args := m.Called(ctx, id, action, payload)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Equipment), args.Error(1)
}

type MockRentalEntryService struct {
	mock.Mock
}

func (m *MockRentalEntryService) ListRentalEntries(ctx context.Context) ([]domain.RentalEntry, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.RentalEntry), args.Error(1)
}

type stubPinger struct {
	err error
}

func (p stubPinger) Ping(context.Context) error { return p.err }
