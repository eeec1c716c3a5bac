package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// Request модели

// UpdatePoliciesRequest запрос на обновление политик бронирования
// Все поля опциональны - обновляются только переданные значения
type UpdatePoliciesRequest struct {
	UserID         int64 `json:"-"`
	OrganizationID int64 `json:"-"`

	Timezone                      *string          `json:"timezone,omitempty"`
	NewClientMode                 *string          `json:"newClientMode,omitempty"`
	ExistingClientMode            *string          `json:"existingClientMode,omitempty"`
	DepositRequired               *bool            `json:"depositRequired,omitempty"`
	DepositPercentage             *decimal.Decimal `json:"depositPercentage,omitempty"`
	DepositMinimum                *decimal.Decimal `json:"depositMinimum,omitempty"`
	NoShowFeePercentage           *decimal.Decimal `json:"noShowFeePercentage,omitempty"`
	CancellationWindowHours       *int             `json:"cancellationWindowHours,omitempty"`
	LateCancellationFeePercentage *decimal.Decimal `json:"lateCancellationFeePercentage,omitempty"`
	MaxPetsPerAppointment         *int             `json:"maxPetsPerAppointment,omitempty"` // 0 = без ограничений
	MinAdvanceBookingHours        *int             `json:"minAdvanceBookingHours,omitempty"`
	MaxAdvanceBookingDays         *int             `json:"maxAdvanceBookingDays,omitempty"` // 0 = без ограничений
}

// Response модели

// PoliciesResponse ответ с политиками бронирования организации
type PoliciesResponse struct {
	OrganizationID                int64           `json:"organizationId"`
	Timezone                      string          `json:"timezone"`
	NewClientMode                 string          `json:"newClientMode"`
	ExistingClientMode            string          `json:"existingClientMode"`
	DepositRequired               bool            `json:"depositRequired"`
	DepositPercentage             decimal.Decimal `json:"depositPercentage"`
	DepositMinimum                decimal.Decimal `json:"depositMinimum"`
	NoShowFeePercentage           decimal.Decimal `json:"noShowFeePercentage"`
	CancellationWindowHours       int             `json:"cancellationWindowHours"`
	LateCancellationFeePercentage decimal.Decimal `json:"lateCancellationFeePercentage"`
	MaxPetsPerAppointment         int             `json:"maxPetsPerAppointment"`
	MinAdvanceBookingHours        int             `json:"minAdvanceBookingHours"`
	MaxAdvanceBookingDays         int             `json:"maxAdvanceBookingDays"`
	IsDefault                     bool            `json:"isDefault"` // политики не сохранены, действуют значения по умолчанию
	UpdatedAt                     *time.Time      `json:"updatedAt,omitempty"`
}

// Методы конвертации

// FromDomainPolicies конвертирует domain модель в DTO
func FromDomainPolicies(p *domain.BookingPolicies, isDefault bool) *PoliciesResponse {
	if p == nil {
		return nil
	}

	resp := &PoliciesResponse{
		OrganizationID:                p.OrganizationID,
		Timezone:                      p.Timezone,
		NewClientMode:                 string(p.NewClientMode),
		ExistingClientMode:            string(p.ExistingClientMode),
		DepositRequired:               p.DepositRequired,
		DepositPercentage:             p.DepositPercentage,
		DepositMinimum:                p.DepositMinimum,
		NoShowFeePercentage:           p.NoShowFeePercentage,
		CancellationWindowHours:       p.CancellationWindowHours,
		LateCancellationFeePercentage: p.LateCancellationFeePercentage,
		MaxPetsPerAppointment:         p.MaxPetsPerAppointment,
		MinAdvanceBookingHours:        p.MinAdvanceBookingHours,
		MaxAdvanceBookingDays:         p.MaxAdvanceBookingDays,
		IsDefault:                     isDefault,
	}
	if !p.UpdatedAt.IsZero() {
		updatedAt := p.UpdatedAt
		resp.UpdatedAt = &updatedAt
	}
	return resp
}

// ApplyToPolicies применяет обновления к существующим политикам
// Обновляются только непустые (not nil) поля из request
func (r *UpdatePoliciesRequest) ApplyToPolicies(p *domain.BookingPolicies) {
	if r.Timezone != nil {
		p.Timezone = *r.Timezone
	}
	if r.NewClientMode != nil {
		p.NewClientMode = domain.ConfirmationMode(*r.NewClientMode)
	}
	if r.ExistingClientMode != nil {
		p.ExistingClientMode = domain.ConfirmationMode(*r.ExistingClientMode)
	}
	if r.DepositRequired != nil {
		p.DepositRequired = *r.DepositRequired
	}
	if r.DepositPercentage != nil {
		p.DepositPercentage = *r.DepositPercentage
	}
	if r.DepositMinimum != nil {
		p.DepositMinimum = *r.DepositMinimum
	}
	if r.NoShowFeePercentage != nil {
		p.NoShowFeePercentage = *r.NoShowFeePercentage
	}
	if r.CancellationWindowHours != nil {
		p.CancellationWindowHours = *r.CancellationWindowHours
	}
	if r.LateCancellationFeePercentage != nil {
		p.LateCancellationFeePercentage = *r.LateCancellationFeePercentage
	}
	if r.MaxPetsPerAppointment != nil {
		p.MaxPetsPerAppointment = *r.MaxPetsPerAppointment
	}
	if r.MinAdvanceBookingHours != nil {
		p.MinAdvanceBookingHours = *r.MinAdvanceBookingHours
	}
	if r.MaxAdvanceBookingDays != nil {
		p.MaxAdvanceBookingDays = *r.MaxAdvanceBookingDays
	}
}
