package service

import (
	"context"
	"sort"

	"equipment-tracker/internal/domain"
	"equipment-tracker/internal/repository"
)

type fleetService struct {
	equipmentRepo repository.EquipmentRepository
}

func NewFleetService(equipmentRepo repository.EquipmentRepository) FleetService {
	return &fleetService{equipmentRepo: equipmentRepo}
}

// StatusCounts returns the number of units per status. Every known status is present.
func (s *fleetService) StatusCounts(ctx context.Context) (map[domain.EquipmentStatus]int, error) {
	items, err := s.equipmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	counts := make(map[domain.EquipmentStatus]int, len(domain.EquipmentStatuses))
	for _, st := range domain.EquipmentStatuses {
		counts[st] = 0
	}
	for _, e := range items {
		counts[e.Status]++
	}
	return counts, nil
}

// DueReturns lists units on rent whose end date is today or earlier, oldest first.
func (s *fleetService) DueReturns(ctx context.Context, today domain.Date) ([]domain.Equipment, error) {
	items, err := s.equipmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	due := []domain.Equipment{}
	for _, e := range items {
		if e.Status == domain.EquipmentStatusOnRent && !e.EndDate.IsZero() && !e.EndDate.After(today) {
			due = append(due, e)
		}
	}
	sort.SliceStable(due, func(i, j int) bool { return due[i].EndDate.Before(due[j].EndDate) })
	return due, nil
}

// UpcomingStarts lists reservations starting between today and today+withinDays inclusive.
func (s *fleetService) UpcomingStarts(ctx context.Context, today domain.Date, withinDays int) ([]domain.Equipment, error) {
	items, err := s.equipmentRepo.List(ctx)
	if err != nil {
		return nil, err
	}
	until := today.AddDays(withinDays)
	upcoming := []domain.Equipment{}
	for _, e := range items {
		if e.Status != domain.EquipmentStatusReserve || e.StartDate.IsZero() {
			continue
		}
		if !e.StartDate.Before(today) && !e.StartDate.After(until) {
			upcoming = append(upcoming, e)
		}
	}
	sort.SliceStable(upcoming, func(i, j int) bool { return upcoming[i].StartDate.Before(upcoming[j].StartDate) })
	return upcoming, nil
}
