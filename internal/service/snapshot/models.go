package snapshot

import (
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
)

// ServiceRequest услуга и явно выбранные addon-модификаторы
type ServiceRequest struct {
	ServiceID int64
	AddonIDs  []int64
}

// PetRequest питомец и выбранные для него услуги
type PetRequest struct {
	PetID    int64
	Services []ServiceRequest
}

// Schedule данные о занятости сотрудника на день
type Schedule struct {
	Availability *domain.StaffAvailability // nil, если доступность не настроена
	TimeOff      []domain.TimeOffRequest
	Appointments []domain.Appointment
}

// Request параметры загрузки снимка для одной квоты
type Request struct {
	OrganizationID int64
	ClientID       int64
	StaffID        int64
	Date           time.Time  // календарная дата, если Start не задан
	Start          *time.Time // запрошенное начало
	Now            time.Time
	Pets           []PetRequest
}
