package commit_booking

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// ServiceRequest выбранная услуга и явно выбранные addon модификаторы
type ServiceRequest struct {
	ServiceID int64
	AddonIDs  []int64
}

// PetRequest питомец и услуги для него
type PetRequest struct {
	PetID    int64
	Services []ServiceRequest
}

// Request модель запроса на создание записи.
// Цены и длительность от клиента не принимаются, они пересчитываются заново.
type Request struct {
	UserID         int64     // ID клиента
	OrganizationID int64     // ID организации
	StaffID        int64     // ID грумера
	StartTime      time.Time // Время начала
	Pets           []PetRequest
}

// Response модель ответа с созданной записью
type Response struct {
	ID             int64
	OrganizationID int64
	ClientID       int64
	StaffID        int64
	StartTime      time.Time
	EndTime        time.Time
	Status         domain.AppointmentStatus
	Pets           []domain.AppointmentPet
	TotalDuration  int
	TotalAmount    decimal.Decimal
	DepositAmount  decimal.Decimal
	CreatedAt      time.Time
}
