package domain

import "github.com/shopspring/decimal"

// ModifierType categorizes a service modifier
type ModifierType string

const (
	ModifierWeight ModifierType = "weight"
	ModifierCoat   ModifierType = "coat"
	ModifierAddon  ModifierType = "addon"
)

// Service is a bookable grooming service from an organization's catalog
type Service struct {
	ID             int64
	OrganizationID int64
	Name           string
	Category       string
	BaseDuration   int // minutes
	BasePrice      decimal.Decimal
	IsActive       bool
	Modifiers      []ServiceModifier
}

// FindModifier returns the modifier with the given id that belongs to the service
func (s *Service) FindModifier(id int64) (*ServiceModifier, bool) {
	for i := range s.Modifiers {
		if s.Modifiers[i].ID == id {
			return &s.Modifiers[i], true
		}
	}
	return nil, false
}

// ServiceModifier adjusts duration and price of its service.
// A modifier with a condition applies automatically when the pet matches;
// a modifier without one applies only when explicitly selected.
type ServiceModifier struct {
	ID            int64
	ServiceID     int64
	Name          string
	Type          ModifierType
	DurationDelta int // minutes
	PriceDelta    decimal.Decimal
	IsPercentage  bool // PriceDelta is a percent of the price base
	Condition     *ModifierCondition
}

// IsConditional returns true if the modifier applies automatically
func (m *ServiceModifier) IsConditional() bool {
	return m.Condition != nil && !m.Condition.IsEmpty()
}

// ModifierCondition lists the pet attribute values a modifier applies to.
// Only non-empty fields are tested and all of them must match.
type ModifierCondition struct {
	WeightRanges []WeightRange
	CoatTypes    []CoatType
}

// IsEmpty returns true if the condition tests nothing
func (c *ModifierCondition) IsEmpty() bool {
	return c == nil || (len(c.WeightRanges) == 0 && len(c.CoatTypes) == 0)
}

// Matches reports whether the pet satisfies every field present in the condition.
// An empty condition never matches.
func (c *ModifierCondition) Matches(pet Pet) bool {
	if c.IsEmpty() {
		return false
	}
	if len(c.WeightRanges) > 0 && !matchWeight(c.WeightRanges, pet.WeightRange) {
		return false
	}
	if len(c.CoatTypes) > 0 && !matchCoat(c.CoatTypes, pet.CoatType) {
		return false
	}
	return true
}

func matchWeight(set []WeightRange, v WeightRange) bool {
	if v == "" {
		return false
	}
	for _, w := range set {
		if w == v {
			return true
		}
	}
	return false
}

func matchCoat(set []CoatType, v CoatType) bool {
	if v == "" {
		return false
	}
	for _, c := range set {
		if c == v {
			return true
		}
	}
	return false
}
