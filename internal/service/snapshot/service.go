// Package snapshot loads the live data a booking quote is computed from.
package snapshot

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/engine/booking"
	"github.com/m04kA/SMC-GroomingService/internal/engine/pricing"
	policyRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/policy"
	staffRepo "github.com/m04kA/SMC-GroomingService/internal/infra/storage/staff"
)

// Loader собирает снимок данных для расчета квоты
type Loader struct {
	policyRepo      PolicyRepository
	staffRepo       StaffRepository
	appointmentRepo AppointmentRepository
	catalogRepo     CatalogRepository
	petRepo         PetRepository
	logger          Logger
}

// NewLoader создает новый экземпляр загрузчика
func NewLoader(
	policyRepo PolicyRepository,
	staffRepo StaffRepository,
	appointmentRepo AppointmentRepository,
	catalogRepo CatalogRepository,
	petRepo PetRepository,
	logger Logger,
) *Loader {
	return &Loader{
		policyRepo:      policyRepo,
		staffRepo:       staffRepo,
		appointmentRepo: appointmentRepo,
		catalogRepo:     catalogRepo,
		petRepo:         petRepo,
		logger:          logger,
	}
}

// Policies возвращает политики организации и её часовой пояс.
// Если политики не сохранены, используются значения по умолчанию.
func (l *Loader) Policies(ctx context.Context, organizationID int64) (*domain.BookingPolicies, *time.Location, error) {
	policies, err := l.policyRepo.GetByOrganization(ctx, organizationID)
	if err != nil {
		if !errors.Is(err, policyRepo.ErrPoliciesNotFound) {
			l.logger.Error("Policies: failed to get policies for organization=%d: %v", organizationID, err)
			return nil, nil, fmt.Errorf("%w: failed to get policies: %v", ErrInternal, err)
		}
		policies = domain.DefaultBookingPolicies(organizationID)
	}

	loc, err := policies.Location()
	if err != nil {
		l.logger.Error("Policies: organization=%d: %v", organizationID, err)
		return nil, nil, fmt.Errorf("%w: %v", ErrInvalidTimezone, err)
	}

	return policies, loc, nil
}

// Schedule загружает настройки сотрудника, отгулы и записи, влияющие на день date.
// Если доступность сотрудника не настроена или он работает в другой организации,
// Availability остается nil.
func (l *Loader) Schedule(ctx context.Context, organizationID, staffID int64, date time.Time, loc *time.Location) (*Schedule, error) {
	availability, err := l.staffRepo.GetAvailability(ctx, staffID)
	if err != nil {
		if errors.Is(err, staffRepo.ErrAvailabilityNotFound) {
			l.logger.Warn("Schedule: staff=%d has no availability configured", staffID)
			return &Schedule{}, nil
		}
		l.logger.Error("Schedule: failed to get availability for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}
	if availability.OrganizationID != organizationID {
		l.logger.Warn("Schedule: staff=%d does not belong to organization=%d", staffID, organizationID)
		return &Schedule{}, nil
	}

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, loc)
	dayEnd := dayStart.AddDate(0, 0, 1)

	timeOff, err := l.staffRepo.GetApprovedTimeOff(ctx, staffID, dayStart, dayStart)
	if err != nil {
		l.logger.Error("Schedule: failed to get time off for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get time off: %v", ErrInternal, err)
	}

	// Буфер соседних записей может заходить на день с обеих сторон
	margin := time.Duration(domain.MaxBufferMinutes) * time.Minute
	appointments, err := l.appointmentRepo.GetByStaffInRange(ctx, domain.StaffAppointmentsFilter{
		GroomerID: staffID,
		From:      dayStart.Add(-margin),
		To:        dayEnd.Add(margin),
	})
	if err != nil {
		l.logger.Error("Schedule: failed to get appointments for staff=%d: %v", staffID, err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	return &Schedule{
		Availability: availability,
		TimeOff:      timeOff,
		Appointments: appointments,
	}, nil
}

// Pets загружает питомцев клиента и услуги каталога для каждого из них
func (l *Loader) Pets(ctx context.Context, organizationID, clientID int64, reqs []PetRequest) ([]booking.PetSelection, error) {
	petIDs := make([]int64, 0, len(reqs))
	serviceIDs := make([]int64, 0)
	seenService := make(map[int64]struct{})
	for _, p := range reqs {
		petIDs = append(petIDs, p.PetID)
		for _, s := range p.Services {
			if _, ok := seenService[s.ServiceID]; ok {
				continue
			}
			seenService[s.ServiceID] = struct{}{}
			serviceIDs = append(serviceIDs, s.ServiceID)
		}
	}

	pets, err := l.petRepo.GetByIDs(ctx, clientID, petIDs)
	if err != nil {
		l.logger.Error("Pets: failed to get pets for client=%d: %v", clientID, err)
		return nil, fmt.Errorf("%w: failed to get pets: %v", ErrInternal, err)
	}
	petByID := make(map[int64]domain.Pet, len(pets))
	for _, p := range pets {
		petByID[p.ID] = p
	}

	services, err := l.catalogRepo.GetServicesByIDs(ctx, organizationID, serviceIDs)
	if err != nil {
		l.logger.Error("Pets: failed to get services for organization=%d: %v", organizationID, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}
	serviceByID := make(map[int64]*domain.Service, len(services))
	for i := range services {
		serviceByID[services[i].ID] = &services[i]
	}

	result := make([]booking.PetSelection, 0, len(reqs))
	for _, p := range reqs {
		pet, ok := petByID[p.PetID]
		if !ok {
			l.logger.Warn("Pets: pet id=%d not found for client=%d", p.PetID, clientID)
			return nil, fmt.Errorf("%w: id=%d", ErrPetNotFound, p.PetID)
		}

		selections := make([]pricing.Selection, 0, len(p.Services))
		for _, s := range p.Services {
			service, ok := serviceByID[s.ServiceID]
			if !ok {
				l.logger.Warn("Pets: service id=%d not found in organization=%d", s.ServiceID, organizationID)
				return nil, fmt.Errorf("%w: id=%d", ErrServiceNotFound, s.ServiceID)
			}
			selections = append(selections, pricing.Selection{Service: service, AddonIDs: s.AddonIDs})
		}

		result = append(result, booking.PetSelection{Pet: pet, Selections: selections})
	}

	return result, nil
}

// IsNewClient возвращает true, если у клиента нет ни одной не отмененной записи в организации
func (l *Loader) IsNewClient(ctx context.Context, organizationID, clientID int64) (bool, error) {
	count, err := l.appointmentRepo.CountByClient(ctx, organizationID, clientID)
	if err != nil {
		l.logger.Error("IsNewClient: failed to count appointments for client=%d: %v", clientID, err)
		return false, fmt.Errorf("%w: failed to count client appointments: %v", ErrInternal, err)
	}
	return count == 0, nil
}

// Load собирает полный вход для booking.Engine.Quote
func (l *Loader) Load(ctx context.Context, req *Request) (*booking.QuoteInput, error) {
	policies, loc, err := l.Policies(ctx, req.OrganizationID)
	if err != nil {
		return nil, err
	}

	date := req.Date
	if req.Start != nil {
		date = req.Start.In(loc)
	}

	schedule, err := l.Schedule(ctx, req.OrganizationID, req.StaffID, date, loc)
	if err != nil {
		return nil, err
	}

	pets, err := l.Pets(ctx, req.OrganizationID, req.ClientID, req.Pets)
	if err != nil {
		return nil, err
	}

	isNew, err := l.IsNewClient(ctx, req.OrganizationID, req.ClientID)
	if err != nil {
		return nil, err
	}

	return &booking.QuoteInput{
		Now:          req.Now,
		Location:     loc,
		Policies:     policies,
		IsNewClient:  isNew,
		StaffID:      req.StaffID,
		Date:         date,
		Start:        req.Start,
		Pets:         pets,
		Availability: schedule.Availability,
		TimeOff:      schedule.TimeOff,
		Appointments: schedule.Appointments,
	}, nil
}
