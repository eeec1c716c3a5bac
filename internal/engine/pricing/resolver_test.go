package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func assertMoney(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.Truef(t, money(want).Equal(got), "expected %s, got %s", want, got)
}

func weightCondition(ranges ...domain.WeightRange) *domain.ModifierCondition {
	return &domain.ModifierCondition{WeightRanges: ranges}
}

func coatCondition(coats ...domain.CoatType) *domain.ModifierCondition {
	return &domain.ModifierCondition{CoatTypes: coats}
}

func fullGroom() *domain.Service {
	return &domain.Service{
		ID:           1,
		Name:         "Full Groom",
		BaseDuration: 90,
		BasePrice:    money("65"),
		IsActive:     true,
		Modifiers: []domain.ServiceModifier{
			{ID: 10, ServiceID: 1, Name: "Large Dog", Type: domain.ModifierWeight, DurationDelta: 30, PriceDelta: money("25"),
				Condition: weightCondition(domain.WeightLarge)},
			{ID: 11, ServiceID: 1, Name: "X-Large Dog", Type: domain.ModifierWeight, DurationDelta: 45, PriceDelta: money("35"),
				Condition: weightCondition(domain.WeightXLarge)},
			{ID: 12, ServiceID: 1, Name: "Long Coat", Type: domain.ModifierCoat, DurationDelta: 15, PriceDelta: money("10"),
				Condition: coatCondition(domain.CoatLong, domain.CoatCurly)},
			{ID: 13, ServiceID: 1, Name: "Dematting", Type: domain.ModifierAddon, DurationDelta: 20, PriceDelta: money("15")},
			{ID: 14, ServiceID: 1, Name: "Holiday Surcharge", Type: domain.ModifierAddon, PriceDelta: money("10"), IsPercentage: true},
		},
	}
}

func basicBath() *domain.Service {
	return &domain.Service{
		ID:           2,
		Name:         "Basic Bath",
		BaseDuration: 45,
		BasePrice:    money("35"),
		IsActive:     true,
		Modifiers: []domain.ServiceModifier{
			{ID: 20, ServiceID: 2, Name: "X-Large Dog", Type: domain.ModifierWeight, DurationDelta: 30, PriceDelta: money("25"),
				Condition: weightCondition(domain.WeightXLarge)},
			{ID: 21, ServiceID: 2, Name: "Double Coat", Type: domain.ModifierCoat, DurationDelta: 15, PriceDelta: money("10"),
				Condition: coatCondition(domain.CoatDouble)},
			{ID: 22, ServiceID: 2, Name: "Nail Trim", Type: domain.ModifierAddon, DurationDelta: 10, PriceDelta: money("12.50")},
		},
	}
}

func TestResolver_FullGroomLargeLongCoat(t *testing.T) {
	pet := domain.Pet{ID: 1, WeightRange: domain.WeightLarge, CoatType: domain.CoatLong}

	res, err := NewResolver().Resolve(pet, []Selection{{Service: fullGroom()}})
	require.NoError(t, err)
	require.Len(t, res.PerService, 1)

	assert.Equal(t, 135, res.PerService[0].FinalDuration)
	assertMoney(t, "100", res.PerService[0].FinalPrice)
	assert.Equal(t, []int64{10, 12}, res.PerService[0].AppliedModifierIDs)
	assert.Equal(t, 135, res.TotalDuration)
	assertMoney(t, "100", res.TotalPrice)
}

func TestResolver_BasicBathXLargeDoubleCoat(t *testing.T) {
	pet := domain.Pet{ID: 2, WeightRange: domain.WeightXLarge, CoatType: domain.CoatDouble}

	res, err := NewResolver().Resolve(pet, []Selection{{Service: basicBath()}})
	require.NoError(t, err)

	assert.Equal(t, 90, res.TotalDuration)
	assertMoney(t, "70", res.TotalPrice)
	assert.Equal(t, []int64{20, 21}, res.PerService[0].AppliedModifierIDs)
}

func TestResolver_AddonsOnlyWhenSelected(t *testing.T) {
	pet := domain.Pet{WeightRange: domain.WeightSmall, CoatType: domain.CoatShort}

	res, err := NewResolver().Resolve(pet, []Selection{{Service: fullGroom()}})
	require.NoError(t, err)
	assert.Equal(t, 90, res.TotalDuration)
	assertMoney(t, "65", res.TotalPrice)
	assert.Empty(t, res.PerService[0].AppliedModifierIDs)

	res, err = NewResolver().Resolve(pet, []Selection{{Service: fullGroom(), AddonIDs: []int64{13, 13}}})
	require.NoError(t, err)
	assert.Equal(t, 110, res.TotalDuration)
	assertMoney(t, "80", res.TotalPrice)
	assert.Equal(t, []int64{13}, res.PerService[0].AppliedModifierIDs)
}

func TestResolver_SelectingConditionalModifierHasNoEffect(t *testing.T) {
	pet := domain.Pet{WeightRange: domain.WeightSmall, CoatType: domain.CoatShort}

	res, err := NewResolver().Resolve(pet, []Selection{{Service: fullGroom(), AddonIDs: []int64{10}}})
	require.NoError(t, err)
	assert.Equal(t, 90, res.TotalDuration)
	assert.Empty(t, res.PerService[0].AppliedModifierIDs)
}

func TestResolver_PercentageModifier(t *testing.T) {
	pet := domain.Pet{WeightRange: domain.WeightLarge, CoatType: domain.CoatShort}
	sel := []Selection{{Service: fullGroom(), AddonIDs: []int64{14}}}

	// 65 + 25 + 10% of 65
	res, err := NewResolver().Resolve(pet, sel)
	require.NoError(t, err)
	assertMoney(t, "96.50", res.TotalPrice)

	// 65 + 25 + 10% of (65 + 25)
	res, err = NewResolver(WithPercentageBase(PercentOfSubtotal)).Resolve(pet, sel)
	require.NoError(t, err)
	assertMoney(t, "99", res.TotalPrice)
}

func TestResolver_ConditionWithBothFields(t *testing.T) {
	service := &domain.Service{
		ID: 3, BaseDuration: 60, BasePrice: money("50"), IsActive: true,
		Modifiers: []domain.ServiceModifier{
			{ID: 30, DurationDelta: 20, PriceDelta: money("20"), Condition: &domain.ModifierCondition{
				WeightRanges: []domain.WeightRange{domain.WeightLarge, domain.WeightXLarge},
				CoatTypes:    []domain.CoatType{domain.CoatDouble},
			}},
		},
	}

	tests := []struct {
		name string
		pet  domain.Pet
		want int
	}{
		{name: "both match", pet: domain.Pet{WeightRange: domain.WeightXLarge, CoatType: domain.CoatDouble}, want: 80},
		{name: "weight only", pet: domain.Pet{WeightRange: domain.WeightXLarge, CoatType: domain.CoatShort}, want: 60},
		{name: "coat only", pet: domain.Pet{WeightRange: domain.WeightSmall, CoatType: domain.CoatDouble}, want: 60},
		{name: "unknown coat", pet: domain.Pet{WeightRange: domain.WeightLarge}, want: 60},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := NewResolver().Resolve(tt.pet, []Selection{{Service: service}})
			require.NoError(t, err)
			assert.Equal(t, tt.want, res.TotalDuration)
		})
	}
}

func TestResolver_OrderIndependentAndIdempotent(t *testing.T) {
	pet := domain.Pet{WeightRange: domain.WeightXLarge, CoatType: domain.CoatDouble}

	groom := fullGroom()
	bath := basicBath()
	// модификаторы в обратном порядке не должны влиять на результат
	reversed := basicBath()
	for i, j := 0, len(reversed.Modifiers)-1; i < j; i, j = i+1, j-1 {
		reversed.Modifiers[i], reversed.Modifiers[j] = reversed.Modifiers[j], reversed.Modifiers[i]
	}

	r := NewResolver()
	a, err := r.Resolve(pet, []Selection{
		{Service: groom, AddonIDs: []int64{13, 14}},
		{Service: bath, AddonIDs: []int64{22}},
	})
	require.NoError(t, err)

	b, err := r.Resolve(pet, []Selection{
		{Service: reversed, AddonIDs: []int64{22}},
		{Service: groom, AddonIDs: []int64{14, 13}},
	})
	require.NoError(t, err)

	again, err := r.Resolve(pet, []Selection{
		{Service: groom, AddonIDs: []int64{13, 14}},
		{Service: bath, AddonIDs: []int64{22}},
	})
	require.NoError(t, err)

	assert.Equal(t, a.TotalDuration, b.TotalDuration)
	assert.True(t, a.TotalPrice.Equal(b.TotalPrice))
	assert.Equal(t, a.PerService[0].AppliedModifierIDs, b.PerService[1].AppliedModifierIDs)
	assert.Equal(t, a.PerService[1].AppliedModifierIDs, b.PerService[0].AppliedModifierIDs)
	require.Len(t, again.PerService, len(a.PerService))
	for i := range a.PerService {
		assert.Equal(t, a.PerService[i].AppliedModifierIDs, again.PerService[i].AppliedModifierIDs)
		assert.Equal(t, a.PerService[i].FinalDuration, again.PerService[i].FinalDuration)
		assert.True(t, a.PerService[i].FinalPrice.Equal(again.PerService[i].FinalPrice))
	}
}

func TestResolver_Errors(t *testing.T) {
	pet := domain.Pet{WeightRange: domain.WeightLarge}

	_, err := NewResolver().Resolve(pet, []Selection{{Service: fullGroom(), AddonIDs: []int64{22}}})
	assert.ErrorIs(t, err, ErrUnknownModifier)

	inactive := basicBath()
	inactive.IsActive = false
	_, err = NewResolver().Resolve(pet, []Selection{{Service: inactive}})
	assert.ErrorIs(t, err, ErrInactiveService)

	_, err = NewResolver().Resolve(pet, []Selection{{}})
	assert.ErrorIs(t, err, ErrInvalidSelection)
}

func TestResolver_NeverNegative(t *testing.T) {
	service := &domain.Service{
		ID: 4, BaseDuration: 30, BasePrice: money("20"), IsActive: true,
		Modifiers: []domain.ServiceModifier{
			{ID: 40, DurationDelta: -45, PriceDelta: money("-30")},
		},
	}

	res, err := NewResolver().Resolve(domain.Pet{}, []Selection{{Service: service, AddonIDs: []int64{40}}})
	require.NoError(t, err)
	assert.Equal(t, 0, res.TotalDuration)
	assertMoney(t, "0", res.TotalPrice)
}

func TestParsePercentageBase(t *testing.T) {
	b, err := ParsePercentageBase("")
	require.NoError(t, err)
	assert.Equal(t, PercentOfBase, b)

	b, err = ParsePercentageBase("subtotal")
	require.NoError(t, err)
	assert.Equal(t, PercentOfSubtotal, b)

	_, err = ParsePercentageBase("compound")
	assert.Error(t, err)
}
