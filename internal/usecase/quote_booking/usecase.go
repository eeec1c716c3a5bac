package quote_booking

import (
	"context"
	"errors"
	"fmt"

	"github.com/m04kA/SMC-GroomingService/internal/engine/availability"
	"github.com/m04kA/SMC-GroomingService/internal/engine/booking"
	"github.com/m04kA/SMC-GroomingService/internal/engine/pricing"
	"github.com/m04kA/SMC-GroomingService/internal/service/snapshot"
)

const operation = "quote"

// UseCase use case для расчета квоты без резервирования слота.
// Может вызываться сколько угодно раз и параллельно.
type UseCase struct {
	loader       SnapshotLoader
	engine       QuoteEngine
	metrics      Metrics
	timeProvider TimeProvider
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(loader SnapshotLoader, engine QuoteEngine, metrics Metrics, logger Logger) *UseCase {
	return &UseCase{
		loader:       loader,
		engine:       engine,
		metrics:      metrics,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Execute выполняет use case расчета квоты
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("QuoteBooking: client=%d, organization=%d, staff=%d, pets=%d",
		req.UserID, req.OrganizationID, req.StaffID, len(req.Pets))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("QuoteBooking: validation failed: %v", err)
		uc.metrics.ObserveBooking(operation, "invalid")
		return nil, err
	}

	// 2. Загружаем снимок живых данных
	in, err := uc.loader.Load(ctx, &snapshot.Request{
		OrganizationID: req.OrganizationID,
		ClientID:       req.UserID,
		StaffID:        req.StaffID,
		Date:           req.Date,
		Start:          req.StartTime,
		Now:            uc.timeProvider.Now(),
		Pets:           toSnapshotPets(req.Pets),
	})
	if err != nil {
		uc.logger.Warn("QuoteBooking: failed to load snapshot: %v", err)
		uc.metrics.ObserveBooking(operation, "error")
		return nil, mapLoadError(err)
	}

	// 3. Считаем квоту
	quote, err := uc.engine.Quote(*in)
	if err != nil {
		uc.logger.Warn("QuoteBooking: quote failed: %v", err)
		uc.metrics.ObserveBooking(operation, "error")
		return nil, mapQuoteError(err)
	}

	// 4. Формируем ответ
	resp := toResponse(quote)
	switch {
	case resp.Violation != nil:
		uc.logger.Info("QuoteBooking: policy violation for staff=%d: %s", req.StaffID, resp.Violation.Reason)
		uc.metrics.ObserveBooking(operation, "policy_violation")
	case quote.Start != nil && !quote.SlotAvailable:
		uc.logger.Info("QuoteBooking: requested slot is taken for staff=%d", req.StaffID)
		uc.metrics.ObserveBooking(operation, "slot_taken")
	default:
		uc.metrics.ObserveBooking(operation, "ok")
	}

	uc.logger.Info("QuoteBooking: duration=%d, price=%s, slots=%d",
		resp.TotalDuration, resp.TotalPrice.StringFixed(pricing.MoneyPlaces), len(resp.AvailableSlots))
	return resp, nil
}

func toSnapshotPets(pets []PetRequest) []snapshot.PetRequest {
	result := make([]snapshot.PetRequest, 0, len(pets))
	for _, p := range pets {
		services := make([]snapshot.ServiceRequest, 0, len(p.Services))
		for _, s := range p.Services {
			services = append(services, snapshot.ServiceRequest{ServiceID: s.ServiceID, AddonIDs: s.AddonIDs})
		}
		result = append(result, snapshot.PetRequest{PetID: p.PetID, Services: services})
	}
	return result
}

// mapLoadError переводит ошибки загрузки снимка в ошибки use case
func mapLoadError(err error) error {
	switch {
	case errors.Is(err, snapshot.ErrPetNotFound):
		return fmt.Errorf("%w: %v", ErrPetNotFound, err)
	case errors.Is(err, snapshot.ErrServiceNotFound):
		return fmt.Errorf("%w: %v", ErrServiceNotFound, err)
	default:
		return fmt.Errorf("%w: failed to load snapshot: %v", ErrInternal, err)
	}
}

// mapQuoteError переводит ошибки расчета в ошибки use case
func mapQuoteError(err error) error {
	switch {
	case errors.Is(err, pricing.ErrUnknownModifier):
		return fmt.Errorf("%w: %v", ErrUnknownModifier, err)
	case errors.Is(err, pricing.ErrInactiveService):
		return fmt.Errorf("%w: %v", ErrInactiveService, err)
	case errors.Is(err, availability.ErrStaffNotFound):
		return fmt.Errorf("%w: %v", ErrStaffNotFound, err)
	case errors.Is(err, booking.ErrNoPets),
		errors.Is(err, booking.ErrNoServices),
		errors.Is(err, booking.ErrDuplicatePet),
		errors.Is(err, pricing.ErrInvalidSelection),
		errors.Is(err, availability.ErrInvalidDuration):
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	default:
		return fmt.Errorf("%w: quote failed: %v", ErrInternal, err)
	}
}

func toResponse(q *booking.Quote) *Response {
	resp := &Response{
		Pets:           make([]PetQuote, 0, len(q.Pets)),
		TotalDuration:  q.TotalDuration,
		TotalPrice:     q.TotalPrice,
		AvailableSlots: q.AvailableSlots,
		StartTime:      q.Start,
		EndTime:        q.End,
		SlotAvailable:  q.SlotAvailable,
	}

	for _, p := range q.Pets {
		services := make([]ServiceQuote, 0, len(p.Services))
		for _, s := range p.Services {
			services = append(services, ServiceQuote{
				ServiceID:          s.ServiceID,
				AppliedModifierIDs: s.AppliedModifierIDs,
				FinalDuration:      s.FinalDuration,
				FinalPrice:         s.FinalPrice,
			})
		}
		resp.Pets = append(resp.Pets, PetQuote{
			PetID:         p.PetID,
			Services:      services,
			TotalDuration: p.TotalDuration,
			TotalPrice:    p.TotalPrice,
		})
	}

	if q.Policy != nil {
		status := q.Policy.Status
		deposit := q.Policy.DepositAmount
		resp.Status = &status
		resp.DepositAmount = &deposit
	}
	if q.Violation != nil {
		resp.Violation = &Violation{Reason: string(q.Violation.Reason), Message: q.Violation.Message}
	}

	return resp
}
