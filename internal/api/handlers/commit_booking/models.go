package commit_booking

import (
	"time"

	"github.com/shopspring/decimal"

	commitBooking "github.com/m04kA/SMC-GroomingService/internal/usecase/commit_booking"
)

// ServiceRequest HTTP модель выбранной услуги
type ServiceRequest struct {
	ServiceID int64   `json:"serviceId"`
	AddonIDs  []int64 `json:"addonIds,omitempty"`
}

// PetRequest HTTP модель питомца с услугами
type PetRequest struct {
	PetID    int64            `json:"petId"`
	Services []ServiceRequest `json:"services"`
}

// CommitBookingRequest HTTP request model.
// Цены и длительность не принимаются, они пересчитываются на сервере.
type CommitBookingRequest struct {
	StaffID   int64        `json:"staffId"`
	StartTime time.Time    `json:"startTime"` // RFC3339
	Pets      []PetRequest `json:"pets"`
}

// ServiceResponse HTTP модель услуги в записи
type ServiceResponse struct {
	ServiceID          int64           `json:"serviceId"`
	AppliedModifierIDs []int64         `json:"appliedModifierIds"`
	FinalDuration      int             `json:"finalDuration"`
	FinalPrice         decimal.Decimal `json:"finalPrice"`
}

// PetResponse HTTP модель питомца в записи
type PetResponse struct {
	PetID    int64             `json:"petId"`
	Services []ServiceResponse `json:"services"`
}

// AppointmentResponse HTTP response model
type AppointmentResponse struct {
	ID             int64           `json:"id"`
	OrganizationID int64           `json:"organizationId"`
	ClientID       int64           `json:"clientId"`
	StaffID        int64           `json:"staffId"`
	StartTime      time.Time       `json:"startTime"`
	EndTime        time.Time       `json:"endTime"`
	Status         string          `json:"status"`
	Pets           []PetResponse   `json:"pets"`
	TotalDuration  int             `json:"totalDuration"`
	TotalAmount    decimal.Decimal `json:"totalAmount"`
	DepositAmount  decimal.Decimal `json:"depositAmount"`
	CreatedAt      time.Time       `json:"createdAt"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CommitBookingRequest) ToUseCaseRequest(userID, organizationID int64) *commitBooking.Request {
	req := &commitBooking.Request{
		UserID:         userID,
		OrganizationID: organizationID,
		StaffID:        r.StaffID,
		StartTime:      r.StartTime,
		Pets:           make([]commitBooking.PetRequest, 0, len(r.Pets)),
	}
	for _, p := range r.Pets {
		pet := commitBooking.PetRequest{PetID: p.PetID, Services: make([]commitBooking.ServiceRequest, 0, len(p.Services))}
		for _, s := range p.Services {
			pet.Services = append(pet.Services, commitBooking.ServiceRequest{ServiceID: s.ServiceID, AddonIDs: s.AddonIDs})
		}
		req.Pets = append(req.Pets, pet)
	}
	return req
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *commitBooking.Response) *AppointmentResponse {
	result := &AppointmentResponse{
		ID:             resp.ID,
		OrganizationID: resp.OrganizationID,
		ClientID:       resp.ClientID,
		StaffID:        resp.StaffID,
		StartTime:      resp.StartTime,
		EndTime:        resp.EndTime,
		Status:         string(resp.Status),
		Pets:           make([]PetResponse, 0, len(resp.Pets)),
		TotalDuration:  resp.TotalDuration,
		TotalAmount:    resp.TotalAmount,
		DepositAmount:  resp.DepositAmount,
		CreatedAt:      resp.CreatedAt,
	}
	for _, p := range resp.Pets {
		pet := PetResponse{PetID: p.PetID, Services: make([]ServiceResponse, 0, len(p.Services))}
		for _, s := range p.Services {
			pet.Services = append(pet.Services, ServiceResponse{
				ServiceID:          s.ServiceID,
				AppliedModifierIDs: s.AppliedModifierIDs,
				FinalDuration:      s.FinalDuration,
				FinalPrice:         s.FinalPrice,
			})
		}
		result.Pets = append(result.Pets, pet)
	}
	return result
}
