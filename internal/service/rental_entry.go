package service

import (
	"context"

	"equipment-tracker/internal/domain"
	"equipment-tracker/internal/repository"
)

type rentalEntryService struct {
	entryRepo repository.RentalEntryRepository
}

func NewRentalEntryService(entryRepo repository.RentalEntryRepository) RentalEntryService {
	return &rentalEntryService{entryRepo: entryRepo}
}

func (s *rentalEntryService) ListRentalEntries(ctx context.Context) ([]domain.RentalEntry, error) {
	return s.entryRepo.List(ctx)
}
