package domain

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types written to the outbox
const (
	EventAppointmentBooked    = "appointment.booked"
	EventAppointmentCancelled = "appointment.cancelled"
	EventAppointmentNoShow    = "appointment.no_show"
)

// OutboxEvent is a domain event stored in the same transaction as the change it describes
type OutboxEvent struct {
	ID            int64
	EventID       string // uuid
	AggregateType string
	AggregateID   string
	EventType     string
	Payload       []byte // JSON
	CreatedAt     time.Time
	PublishedAt   *time.Time
}

// AppointmentEventPayload is the JSON body of every appointment.* event
type AppointmentEventPayload struct {
	AppointmentID  int64             `json:"appointmentId"`
	OrganizationID int64             `json:"organizationId"`
	ClientID       int64             `json:"clientId"`
	GroomerID      *int64            `json:"groomerId,omitempty"`
	Status         AppointmentStatus `json:"status"`
	StartTime      time.Time         `json:"startTime"`
	EndTime        time.Time         `json:"endTime"`
	TotalAmount    decimal.Decimal   `json:"totalAmount"`
	DepositAmount  decimal.Decimal   `json:"depositAmount"`
	Fee            *decimal.Decimal  `json:"fee,omitempty"`
	OccurredAt     time.Time         `json:"occurredAt"`
}

// NewAppointmentEvent builds an outbox event describing the appointment's current state.
// fee is set for cancellation and no-show events.
func NewAppointmentEvent(eventType string, a *Appointment, fee *decimal.Decimal, at time.Time) (*OutboxEvent, error) {
	payload, err := json.Marshal(AppointmentEventPayload{
		AppointmentID:  a.ID,
		OrganizationID: a.OrganizationID,
		ClientID:       a.ClientID,
		GroomerID:      a.GroomerID,
		Status:         a.Status,
		StartTime:      a.StartTime.UTC(),
		EndTime:        a.EndTime.UTC(),
		TotalAmount:    a.TotalAmount,
		DepositAmount:  a.DepositAmount,
		Fee:            fee,
		OccurredAt:     at.UTC(),
	})
	if err != nil {
		return nil, fmt.Errorf("domain: marshal %s payload: %w", eventType, err)
	}

	return &OutboxEvent{
		EventID:       uuid.NewString(),
		AggregateType: AppointmentAggregate,
		AggregateID:   strconv.FormatInt(a.ID, 10),
		EventType:     eventType,
		Payload:       payload,
	}, nil
}
