package models

import (
	"fmt"
	"time"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/pkg/types"
)

// Request модели

// DayScheduleRequest расписание одного дня недели
type DayScheduleRequest struct {
	DayOfWeek    int     `json:"dayOfWeek"` // 0 = воскресенье
	IsWorkingDay bool    `json:"isWorkingDay"`
	StartTime    string  `json:"startTime,omitempty"` // "09:00"
	EndTime      string  `json:"endTime,omitempty"`
	BreakStart   *string `json:"breakStart,omitempty"`
	BreakEnd     *string `json:"breakEnd,omitempty"`
}

// UpdateAvailabilityRequest запрос на замену настроек доступности сотрудника
// Расписание передается целиком: ровно 7 дней без повторов
type UpdateAvailabilityRequest struct {
	UserID                           int64                `json:"-"`
	StaffID                          int64                `json:"-"`
	OrganizationID                   int64                `json:"organizationId"`
	WeeklySchedule                   []DayScheduleRequest `json:"weeklySchedule"`
	MaxAppointmentsPerDay            int                  `json:"maxAppointmentsPerDay"`
	BufferMinutesBetweenAppointments int                  `json:"bufferMinutesBetweenAppointments"`
}

// Response модели

// DayScheduleResponse расписание одного дня недели
type DayScheduleResponse struct {
	DayOfWeek    int     `json:"dayOfWeek"`
	IsWorkingDay bool    `json:"isWorkingDay"`
	StartTime    string  `json:"startTime,omitempty"`
	EndTime      string  `json:"endTime,omitempty"`
	BreakStart   *string `json:"breakStart,omitempty"`
	BreakEnd     *string `json:"breakEnd,omitempty"`
}

// AvailabilityResponse ответ с настройками доступности сотрудника
type AvailabilityResponse struct {
	StaffID                          int64                 `json:"staffId"`
	OrganizationID                   int64                 `json:"organizationId"`
	WeeklySchedule                   []DayScheduleResponse `json:"weeklySchedule"`
	MaxAppointmentsPerDay            int                   `json:"maxAppointmentsPerDay"`
	BufferMinutesBetweenAppointments int                   `json:"bufferMinutesBetweenAppointments"`
	UpdatedAt                        time.Time             `json:"updatedAt"`
}

// Методы конвертации

// ToDomainSchedule конвертирует дни расписания в domain модели
func (r *UpdateAvailabilityRequest) ToDomainSchedule() ([]domain.DaySchedule, error) {
	days := make([]domain.DaySchedule, 0, len(r.WeeklySchedule))
	for _, d := range r.WeeklySchedule {
		if d.DayOfWeek < 0 || d.DayOfWeek > 6 {
			return nil, fmt.Errorf("dayOfWeek %d out of range", d.DayOfWeek)
		}

		day := domain.DaySchedule{
			DayOfWeek:    time.Weekday(d.DayOfWeek),
			IsWorkingDay: d.IsWorkingDay,
		}
		// Время выходного дня не хранится
		if !d.IsWorkingDay {
			days = append(days, day)
			continue
		}

		var err error
		if day.StartTime, err = parseDayTime(d.StartTime); err != nil {
			return nil, fmt.Errorf("dayOfWeek %d startTime: %w", d.DayOfWeek, err)
		}
		if day.EndTime, err = parseDayTime(d.EndTime); err != nil {
			return nil, fmt.Errorf("dayOfWeek %d endTime: %w", d.DayOfWeek, err)
		}
		if d.BreakStart != nil {
			bs, err := parseDayTime(*d.BreakStart)
			if err != nil {
				return nil, fmt.Errorf("dayOfWeek %d breakStart: %w", d.DayOfWeek, err)
			}
			day.BreakStart = &bs
		}
		if d.BreakEnd != nil {
			be, err := parseDayTime(*d.BreakEnd)
			if err != nil {
				return nil, fmt.Errorf("dayOfWeek %d breakEnd: %w", d.DayOfWeek, err)
			}
			day.BreakEnd = &be
		}
		days = append(days, day)
	}
	return days, nil
}

// parseDayTime приводит "9:00" и "09:00:00" к виду "09:00"
func parseDayTime(s string) (types.TimeString, error) {
	if s == "" {
		return "", fmt.Errorf("%w: empty time", types.ErrInvalidTimeString)
	}
	return types.NewTimeStringFromString(s)
}

// FromDomainAvailability конвертирует domain модель в DTO
func FromDomainAvailability(a *domain.StaffAvailability) *AvailabilityResponse {
	if a == nil {
		return nil
	}

	resp := &AvailabilityResponse{
		StaffID:                          a.StaffID,
		OrganizationID:                   a.OrganizationID,
		WeeklySchedule:                   make([]DayScheduleResponse, 0, domain.DaysPerWeek),
		MaxAppointmentsPerDay:            a.MaxAppointmentsPerDay,
		BufferMinutesBetweenAppointments: a.BufferMinutesBetweenAppointments,
		UpdatedAt:                        a.UpdatedAt,
	}

	for _, d := range a.WeeklySchedule {
		day := DayScheduleResponse{
			DayOfWeek:    int(d.DayOfWeek),
			IsWorkingDay: d.IsWorkingDay,
		}
		if d.IsWorkingDay {
			day.StartTime = d.StartTime.String()
			day.EndTime = d.EndTime.String()
			if d.HasBreak() {
				bs, be := d.BreakStart.String(), d.BreakEnd.String()
				day.BreakStart = &bs
				day.BreakEnd = &be
			}
		}
		resp.WeeklySchedule = append(resp.WeeklySchedule, day)
	}

	return resp
}
