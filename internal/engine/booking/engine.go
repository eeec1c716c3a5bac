// Package booking composes modifier resolution, slot calculation and policy
// evaluation into a single quote. It is pure: callers load the snapshot and
// persist the outcome.
package booking

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-GroomingService/internal/engine/availability"
	"github.com/m04kA/SMC-GroomingService/internal/engine/policy"
	"github.com/m04kA/SMC-GroomingService/internal/engine/pricing"
)

type Engine struct {
	resolver   *pricing.Resolver
	calculator *availability.Calculator
	evaluator  *policy.Evaluator
}

func NewEngine(resolver *pricing.Resolver, calculator *availability.Calculator, evaluator *policy.Evaluator) *Engine {
	return &Engine{
		resolver:   resolver,
		calculator: calculator,
		evaluator:  evaluator,
	}
}

// Quote prices the request, lists free slots on the day and, when a start is
// requested, checks that slot and evaluates the policy. Policy violations are
// reported in Quote.Violation; configuration and input problems are errors.
func (e *Engine) Quote(in QuoteInput) (*Quote, error) {
	if in.Policies == nil {
		return nil, ErrMissingPolicies
	}
	if err := validatePets(in.Pets); err != nil {
		return nil, err
	}

	loc := in.Location
	if loc == nil {
		loc = time.UTC
	}

	// 1. Модификаторы и итоговые суммы
	quote := &Quote{
		Pets:       make([]PetQuote, 0, len(in.Pets)),
		TotalPrice: decimal.Zero,
	}
	for _, p := range in.Pets {
		res, err := e.resolver.Resolve(p.Pet, p.Selections)
		if err != nil {
			return nil, err
		}
		quote.Pets = append(quote.Pets, PetQuote{
			PetID:         p.Pet.ID,
			Services:      res.PerService,
			TotalDuration: res.TotalDuration,
			TotalPrice:    res.TotalPrice,
		})
		quote.TotalDuration += res.TotalDuration
		quote.TotalPrice = quote.TotalPrice.Add(res.TotalPrice)
	}

	// 2. Свободные слоты на день
	date := in.Date
	if in.Start != nil {
		date = in.Start.In(loc)
	}
	slotInput := availability.Input{
		StaffID:         in.StaffID,
		Date:            date,
		Location:        loc,
		DurationMinutes: quote.TotalDuration,
		Availability:    in.Availability,
		TimeOff:         in.TimeOff,
		Appointments:    in.Appointments,
	}

	slots, err := e.calculator.ListAvailableSlots(slotInput)
	if err != nil {
		return nil, err
	}
	quote.AvailableSlots = make([]time.Time, 0, len(slots))
	for _, s := range slots {
		if e.evaluator.CheckBookingWindow(in.Policies, s, in.Now) == nil {
			quote.AvailableSlots = append(quote.AvailableSlots, s)
		}
	}

	if in.Start == nil {
		return quote, nil
	}

	// 3. Запрошенный слот
	start := *in.Start
	end := start.Add(time.Duration(quote.TotalDuration) * time.Minute)
	quote.Start = &start
	quote.End = &end

	free, err := e.calculator.IsSlotFree(slotInput, start)
	if err != nil {
		return nil, err
	}
	quote.SlotAvailable = free

	// 4. Политика бронирования
	result, err := e.evaluator.Evaluate(in.Policies, policy.Request{
		IsNewClient: in.IsNewClient,
		Start:       start,
		TotalPrice:  quote.TotalPrice,
		PetCount:    len(in.Pets),
	}, in.Now)
	if err != nil {
		if v, ok := policy.AsViolation(err); ok {
			quote.Violation = v
			return quote, nil
		}
		return nil, err
	}
	quote.Policy = result

	return quote, nil
}

// Validate turns a quote for a requested start into the error commit must report
func (q *Quote) Validate() error {
	if q.Start == nil {
		return errors.New("booking: start time is required")
	}
	if q.Violation != nil {
		return q.Violation
	}
	if !q.SlotAvailable {
		return fmt.Errorf("%w: start=%s", ErrSlotConflict, q.Start.Format(time.RFC3339))
	}
	return nil
}

func validatePets(pets []PetSelection) error {
	if len(pets) == 0 {
		return ErrNoPets
	}
	seen := make(map[int64]struct{}, len(pets))
	for _, p := range pets {
		if len(p.Selections) == 0 {
			return fmt.Errorf("%w: pet id=%d", ErrNoServices, p.Pet.ID)
		}
		if _, ok := seen[p.Pet.ID]; ok {
			return fmt.Errorf("%w: pet id=%d", ErrDuplicatePet, p.Pet.ID)
		}
		seen[p.Pet.ID] = struct{}{}
	}
	return nil
}
