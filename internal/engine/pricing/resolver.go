// Package pricing resolves which service modifiers apply to a pet and
// computes the final duration and price of each selected service.
package pricing

import (
	"fmt"
	"sort"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// MoneyPlaces number of decimal places kept for amounts
const MoneyPlaces = 2

var hundred = decimal.NewFromInt(100)

// PercentageBase selects what percentage modifiers are applied to
type PercentageBase string

const (
	// PercentOfBase applies every percentage to the service base price
	PercentOfBase PercentageBase = "base"
	// PercentOfSubtotal applies every percentage to base price plus all additive deltas
	PercentOfSubtotal PercentageBase = "subtotal"
)

// ParsePercentageBase parses a config value, empty means PercentOfBase
func ParsePercentageBase(s string) (PercentageBase, error) {
	switch PercentageBase(s) {
	case "", PercentOfBase:
		return PercentOfBase, nil
	case PercentOfSubtotal:
		return PercentOfSubtotal, nil
	default:
		return "", fmt.Errorf("pricing: unknown percentage base %q", s)
	}
}

// Selection is a service chosen for a pet together with explicitly selected addon modifiers
type Selection struct {
	Service  *domain.Service
	AddonIDs []int64
}

// ServiceResult is the resolved duration and price of one service
type ServiceResult struct {
	ServiceID          int64
	AppliedModifierIDs []int64 // ascending
	FinalDuration      int     // minutes
	FinalPrice         decimal.Decimal
}

// Result is the resolution for one pet
type Result struct {
	PerService    []ServiceResult // in selection order
	TotalDuration int
	TotalPrice    decimal.Decimal
}

// Resolver is stateless and safe for concurrent use
type Resolver struct {
	percentageBase PercentageBase
}

type Option func(*Resolver)

// WithPercentageBase overrides how percentage modifiers compound
func WithPercentageBase(base PercentageBase) Option {
	return func(r *Resolver) {
		r.percentageBase = base
	}
}

func NewResolver(opts ...Option) *Resolver {
	r := &Resolver{percentageBase: PercentOfBase}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve computes per-service and total duration and price for a pet.
// The result does not depend on the order of selections, addon ids or modifiers.
func (r *Resolver) Resolve(pet domain.Pet, selections []Selection) (*Result, error) {
	result := &Result{
		PerService: make([]ServiceResult, 0, len(selections)),
		TotalPrice: decimal.Zero,
	}

	for _, sel := range selections {
		sr, err := r.resolveService(pet, sel)
		if err != nil {
			return nil, err
		}
		result.PerService = append(result.PerService, sr)
		result.TotalDuration += sr.FinalDuration
		result.TotalPrice = result.TotalPrice.Add(sr.FinalPrice)
	}

	return result, nil
}

func (r *Resolver) resolveService(pet domain.Pet, sel Selection) (ServiceResult, error) {
	service := sel.Service
	if service == nil {
		return ServiceResult{}, fmt.Errorf("%w: service is required", ErrInvalidSelection)
	}
	if !service.IsActive {
		return ServiceResult{}, fmt.Errorf("%w: service id=%d", ErrInactiveService, service.ID)
	}

	applied := make(map[int64]*domain.ServiceModifier)

	// Условные модификаторы применяются автоматически
	for i := range service.Modifiers {
		m := &service.Modifiers[i]
		if m.IsConditional() && m.Condition.Matches(pet) {
			applied[m.ID] = m
		}
	}

	// Addon-модификаторы только по явному выбору
	for _, id := range sel.AddonIDs {
		m, ok := service.FindModifier(id)
		if !ok {
			return ServiceResult{}, fmt.Errorf("%w: modifier id=%d does not belong to service id=%d",
				ErrUnknownModifier, id, service.ID)
		}
		if m.IsConditional() {
			// выбор условного модификатора вручную ничего не меняет
			continue
		}
		applied[m.ID] = m
	}

	ids := make([]int64, 0, len(applied))
	for id := range applied {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	duration := service.BaseDuration
	additive := decimal.Zero
	percent := decimal.Zero
	for _, id := range ids {
		m := applied[id]
		duration += m.DurationDelta
		if m.IsPercentage {
			percent = percent.Add(m.PriceDelta)
		} else {
			additive = additive.Add(m.PriceDelta)
		}
	}

	percentBase := service.BasePrice
	if r.percentageBase == PercentOfSubtotal {
		percentBase = service.BasePrice.Add(additive)
	}

	price := service.BasePrice.
		Add(additive).
		Add(percentBase.Mul(percent).Div(hundred)).
		Round(MoneyPlaces)

	if duration < 0 {
		duration = 0
	}
	if price.IsNegative() {
		price = decimal.Zero
	}

	return ServiceResult{
		ServiceID:          service.ID,
		AppliedModifierIDs: ids,
		FinalDuration:      duration,
		FinalPrice:         price,
	}, nil
}
