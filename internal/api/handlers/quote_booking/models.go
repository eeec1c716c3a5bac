package quote_booking

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	quoteBooking "github.com/m04kA/SMC-GroomingService/internal/usecase/quote_booking"
)

var errMissingDate = errors.New("either date or startTime is required")

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

// QuoteRequest HTTP request model
type QuoteRequest struct {
	StaffID   int64        `json:"staffId"`
	Date      string       `json:"date,omitempty"`      // "2025-06-02", если startTime не задан
	StartTime *time.Time   `json:"startTime,omitempty"` // RFC3339
	Pets      []PetRequest `json:"pets"`
}

// ServiceQuoteResponse HTTP модель итога по услуге
type ServiceQuoteResponse struct {
	ServiceID          int64           `json:"serviceId"`
	AppliedModifierIDs []int64         `json:"appliedModifierIds"`
	FinalDuration      int             `json:"finalDuration"`
	FinalPrice         decimal.Decimal `json:"finalPrice"`
}

// PetQuoteResponse HTTP модель итога по питомцу
type PetQuoteResponse struct {
	PetID         int64                  `json:"petId"`
	Services      []ServiceQuoteResponse `json:"services"`
	TotalDuration int                    `json:"totalDuration"`
	TotalPrice    decimal.Decimal        `json:"totalPrice"`
}

// ViolationResponse HTTP модель нарушения политики
type ViolationResponse struct {
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// QuoteResponse HTTP response model
type QuoteResponse struct {
	Pets           []PetQuoteResponse `json:"pets"`
	TotalDuration  int                `json:"totalDuration"`
	TotalPrice     decimal.Decimal    `json:"totalPrice"`
	AvailableSlots []time.Time        `json:"availableSlots"`
	StartTime      *time.Time         `json:"startTime,omitempty"`
	EndTime        *time.Time         `json:"endTime,omitempty"`
	SlotAvailable  bool               `json:"slotAvailable"`
	Status         *string            `json:"status,omitempty"`
	DepositAmount  *decimal.Decimal   `json:"depositAmount,omitempty"`
	Violation      *ViolationResponse `json:"violation,omitempty"`
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *QuoteRequest) ToUseCaseRequest(userID, organizationID int64) (*quoteBooking.Request, error) {
	req := &quoteBooking.Request{
		UserID:         userID,
		OrganizationID: organizationID,
		StaffID:        r.StaffID,
		StartTime:      r.StartTime,
		Pets:           make([]quoteBooking.PetRequest, 0, len(r.Pets)),
	}

	switch {
	case r.Date != "":
		date, err := time.Parse(domain.DateFormat, r.Date)
		if err != nil {
			return nil, err
		}
		req.Date = date
	case r.StartTime == nil:
		return nil, errMissingDate
	}

	for _, p := range r.Pets {
		pet := quoteBooking.PetRequest{PetID: p.PetID, Services: make([]quoteBooking.ServiceRequest, 0, len(p.Services))}
		for _, s := range p.Services {
			pet.Services = append(pet.Services, quoteBooking.ServiceRequest{ServiceID: s.ServiceID, AddonIDs: s.AddonIDs})
		}
		req.Pets = append(req.Pets, pet)
	}

	return req, nil
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *quoteBooking.Response) *QuoteResponse {
	result := &QuoteResponse{
		Pets:           make([]PetQuoteResponse, 0, len(resp.Pets)),
		TotalDuration:  resp.TotalDuration,
		TotalPrice:     resp.TotalPrice,
		AvailableSlots: resp.AvailableSlots,
		StartTime:      resp.StartTime,
		EndTime:        resp.EndTime,
		SlotAvailable:  resp.SlotAvailable,
		DepositAmount:  resp.DepositAmount,
	}
	if result.AvailableSlots == nil {
		result.AvailableSlots = []time.Time{}
	}
	if resp.Status != nil {
		status := string(*resp.Status)
		result.Status = &status
	}
	if resp.Violation != nil {
		result.Violation = &ViolationResponse{Reason: resp.Violation.Reason, Message: resp.Violation.Message}
	}

	for _, p := range resp.Pets {
		pet := PetQuoteResponse{
			PetID:         p.PetID,
			Services:      make([]ServiceQuoteResponse, 0, len(p.Services)),
			TotalDuration: p.TotalDuration,
			TotalPrice:    p.TotalPrice,
		}
		for _, s := range p.Services {
			pet.Services = append(pet.Services, ServiceQuoteResponse{
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
