package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestBookingPolicies_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(p *BookingPolicies)
		wantErr bool
	}{
		{name: "defaults", mutate: func(p *BookingPolicies) {}},
		{name: "unknown mode", mutate: func(p *BookingPolicies) { p.NewClientMode = "maybe" }, wantErr: true},
		{name: "percentage above 100", mutate: func(p *BookingPolicies) { p.DepositPercentage = decimal.NewFromInt(101) }, wantErr: true},
		{name: "negative fee", mutate: func(p *BookingPolicies) { p.NoShowFeePercentage = decimal.NewFromInt(-1) }, wantErr: true},
		{name: "negative minimum", mutate: func(p *BookingPolicies) { p.DepositMinimum = decimal.NewFromInt(-5) }, wantErr: true},
		{name: "too many pets", mutate: func(p *BookingPolicies) { p.MaxPetsPerAppointment = MaxPetsPerAppointment + 1 }, wantErr: true},
		{
			name: "empty window",
			mutate: func(p *BookingPolicies) {
				p.MinAdvanceBookingHours = 72
				p.MaxAdvanceBookingDays = 2
			},
			wantErr: true,
		},
		{name: "unknown timezone", mutate: func(p *BookingPolicies) { p.Timezone = "Nowhere/Land" }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := DefaultBookingPolicies(1)
			tt.mutate(p)
			err := p.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPolicies)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestBookingPolicies_ModeFor(t *testing.T) {
	p := DefaultBookingPolicies(1)
	p.NewClientMode = ModeRequestOnly

	assert.Equal(t, ModeRequestOnly, p.ModeFor(true))
	assert.Equal(t, ModeAutoConfirm, p.ModeFor(false))
	assert.False(t, p.HasPetLimit())
	assert.False(t, p.HasMaxAdvanceLimit())
}
