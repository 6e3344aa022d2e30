package service

import (
	"context"

	"agrirent-backend/internal/domain"
	"agrirent-backend/internal/repository"
)

type machineryService struct {
	machineryRepo repository.MachineryRepository
	bookingRepo   repository.BookingRepository
	userRepo      repository.UserRepository
}

func NewMachineryService(
	machineryRepo repository.MachineryRepository,
	bookingRepo repository.BookingRepository,
	userRepo repository.UserRepository,
) MachineryService {
	return &machineryService{
		machineryRepo: machineryRepo,
		bookingRepo:   bookingRepo,
		userRepo:      userRepo,
	}
}

func (s *machineryService) Create(ctx context.Context, ownerID int32, m *domain.Machinery) (*domain.Machinery, error) {
	if m.Name == "" {
		return nil, domain.ValidationError("name is required")
	}
	if !m.Type.Valid() {
		return nil, domain.ValidationError("invalid machinery type: %s", m.Type)
	}
	if m.DailyRateCents <= 0 {
		return nil, domain.ValidationError("daily rate must be positive")
	}

	m.OwnerID = ownerID
	if err := s.machineryRepo.Create(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *machineryService) Get(ctx context.Context, id int32) (*domain.Machinery, error) {
	m, err := s.machineryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if owner, err := s.userRepo.GetByID(ctx, m.OwnerID); err == nil {
		m.Owner = owner.Summary()
	}
	return m, nil
}

func (s *machineryService) List(ctx context.Context, filter repository.MachineryFilter) ([]domain.Machinery, error) {
	if filter.Type != "" && !filter.Type.Valid() {
		return nil, domain.ValidationError("invalid machinery type: %s", filter.Type)
	}
	if filter.Near != nil && filter.RadiusKM <= 0 {
		return nil, domain.ValidationError("radius must be positive")
	}
	items, err := s.machineryRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	for i := range items {
		if owner, err := s.userRepo.GetByID(ctx, items[i].OwnerID); err == nil {
			items[i].Owner = owner.Summary()
		}
	}
	return items, nil
}

func (s *machineryService) ListByOwner(ctx context.Context, ownerID int32) ([]domain.Machinery, error) {
	return s.machineryRepo.ListByOwner(ctx, ownerID)
}

func (s *machineryService) Update(ctx context.Context, callerID, id int32, update MachineryUpdate) (*domain.Machinery, error) {
	m, err := s.machineryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.OwnerID != callerID {
		return nil, domain.ForbiddenError("not authorized")
	}

	if update.Name != nil {
		m.Name = *update.Name
	}
	if update.Type != nil {
		if !update.Type.Valid() {
			return nil, domain.ValidationError("invalid machinery type: %s", *update.Type)
		}
		m.Type = *update.Type
	}
	if update.Description != nil {
		m.Description = *update.Description
	}
	if update.HourlyRateCents != nil {
		m.HourlyRateCents = *update.HourlyRateCents
	}
	if update.DailyRateCents != nil {
		m.DailyRateCents = *update.DailyRateCents
	}
	if update.OperatorAvailable != nil {
		m.OperatorAvailable = *update.OperatorAvailable
	}
	if update.OperatorChargeCents != nil {
		m.OperatorChargeCents = *update.OperatorChargeCents
	}
	if update.Location != nil {
		m.Location = *update.Location
	}
	if update.Specifications != nil {
		m.Specifications = update.Specifications
	}

	if err := s.machineryRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}

func (s *machineryService) Delete(ctx context.Context, callerID, id int32) error {
	m, err := s.machineryRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if m.OwnerID != callerID {
		return domain.ForbiddenError("not authorized")
	}

	// An item held by an active booking cannot be removed. The flag is
	// checked first, then cross-checked against booking rows in case
	// the flag has drifted.
	if !m.Availability {
		return domain.UnavailableError("machinery has an active booking")
	}
	active, err := s.bookingRepo.CountActiveByMachinery(ctx, id)
	if err != nil {
		return err
	}
	if active > 0 {
		return domain.UnavailableError("machinery has an active booking")
	}

	return s.machineryRepo.Delete(ctx, id)
}

func (s *machineryService) AttachImages(ctx context.Context, callerID, id int32, images []domain.MachineryImage) (*domain.Machinery, error) {
	m, err := s.machineryRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.OwnerID != callerID {
		return nil, domain.ForbiddenError("not authorized")
	}

	m.Images = append(m.Images, images...)
	if err := s.machineryRepo.Update(ctx, m); err != nil {
		return nil, err
	}
	return m, nil
}
