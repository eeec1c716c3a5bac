package models

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// Request модели

// GetStaffScheduleRequest запрос на получение записей сотрудника за день
type GetStaffScheduleRequest struct {
	UserID         int64
	OrganizationID int64
	StaffID        int64
	Date           time.Time
}

// Response модели

// ServiceResponse услуга в записи с итоговыми длительностью и ценой
type ServiceResponse struct {
	ServiceID          int64           `json:"serviceId"`
	AppliedModifierIDs []int64         `json:"appliedModifierIds"`
	FinalDuration      int             `json:"finalDuration"`
	FinalPrice         decimal.Decimal `json:"finalPrice"`
}

// PetResponse питомец в записи
type PetResponse struct {
	PetID    int64             `json:"petId"`
	Services []ServiceResponse `json:"services"`
}

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID              int64            `json:"id"`
	OrganizationID  int64            `json:"organizationId"`
	ClientID        int64            `json:"clientId"`
	GroomerID       *int64           `json:"groomerId,omitempty"`
	StartTime       time.Time        `json:"startTime"`
	EndTime         time.Time        `json:"endTime"`
	Status          string           `json:"status"`
	Pets            []PetResponse    `json:"pets,omitempty"`
	DepositAmount   decimal.Decimal  `json:"depositAmount"`
	DepositPaid     bool             `json:"depositPaid"`
	TotalAmount     decimal.Decimal  `json:"totalAmount"`
	CancellationFee *decimal.Decimal `json:"cancellationFee,omitempty"`
	NoShowFee       *decimal.Decimal `json:"noShowFee,omitempty"`
	CancelledAt     *time.Time       `json:"cancelledAt,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:              a.ID,
		OrganizationID:  a.OrganizationID,
		ClientID:        a.ClientID,
		GroomerID:       a.GroomerID,
		StartTime:       a.StartTime,
		EndTime:         a.EndTime,
		Status:          string(a.Status),
		DepositAmount:   a.DepositAmount,
		DepositPaid:     a.DepositPaid,
		TotalAmount:     a.TotalAmount,
		CancellationFee: a.CancellationFee,
		NoShowFee:       a.NoShowFee,
		CancelledAt:     a.CancelledAt,
		CreatedAt:       a.CreatedAt,
		UpdatedAt:       a.UpdatedAt,
	}

	for _, p := range a.Pets {
		pet := PetResponse{PetID: p.PetID, Services: make([]ServiceResponse, len(p.Services))}
		for i, s := range p.Services {
			pet.Services[i] = ServiceResponse{
				ServiceID:          s.ServiceID,
				AppliedModifierIDs: s.AppliedModifierIDs,
				FinalDuration:      s.FinalDuration,
				FinalPrice:         s.FinalPrice,
			}
		}
		resp.Pets = append(resp.Pets, pet)
	}

	return resp
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(list []domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(list)),
	}
	for i := range list {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(&list[i]))
	}
	return resp
}
