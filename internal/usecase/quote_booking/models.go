package quote_booking

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

// Request модель запроса на расчет квоты
type Request struct {
	UserID         int64      // ID клиента
	OrganizationID int64      // ID организации
	StaffID        int64      // ID грумера
	Date           time.Time  // День для списка слотов, если StartTime не задан
	StartTime      *time.Time // Желаемое время начала (опционально)
	Pets           []PetRequest
}

// ServiceQuote итог по одной услуге
type ServiceQuote struct {
	ServiceID          int64
	AppliedModifierIDs []int64
	FinalDuration      int
	FinalPrice         decimal.Decimal
}

// PetQuote итог по одному питомцу
type PetQuote struct {
	PetID         int64
	Services      []ServiceQuote
	TotalDuration int
	TotalPrice    decimal.Decimal
}

// Violation нарушение политики бронирования для запрошенного времени
type Violation struct {
	Reason  string
	Message string
}

// Response модель ответа с квотой
type Response struct {
	Pets          []PetQuote
	TotalDuration int             // Минуты
	TotalPrice    decimal.Decimal // Итоговая цена

	AvailableSlots []time.Time // Свободные слоты на день в окне бронирования

	StartTime     *time.Time
	EndTime       *time.Time
	SlotAvailable bool

	// Заполняются только если StartTime задан
	Status        *domain.AppointmentStatus
	DepositAmount *decimal.Decimal
	Violation     *Violation
}
