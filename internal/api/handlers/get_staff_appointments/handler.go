package get_staff_appointments

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/domain"
	"github.com/m04kA/SMC-GroomingService/internal/service/appointments"
	"github.com/m04kA/SMC-GroomingService/internal/service/appointments/models"
)

const (
	msgInvalidOrganizationID = "некорректный ID организации"
	msgInvalidStaffID        = "некорректный ID сотрудника"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgMissingDate           = "дата обязательна"
	msgInvalidDate           = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgForbidden             = "доступ запрещен"
	msgStaffNotFound         = "сотрудник не найден в организации"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/organizations/{orgId}/staff/{staffId}/appointments?date=YYYY-MM-DD
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	organizationID, err := strconv.ParseInt(vars["orgId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/staff/{id}/appointments - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrganizationID)
		return
	}

	staffID, err := strconv.ParseInt(vars["staffId"], 10, 64)
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/staff/{id}/appointments - Invalid staff ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidStaffID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /organizations/{id}/staff/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	dateStr := r.URL.Query().Get("date")
	if dateStr == "" {
		h.logger.Warn("GET /organizations/{id}/staff/{id}/appointments - Missing date")
		handlers.RespondBadRequest(w, msgMissingDate)
		return
	}
	date, err := time.Parse(domain.DateFormat, dateStr)
	if err != nil {
		h.logger.Warn("GET /organizations/{id}/staff/{id}/appointments - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	list, err := h.service.GetStaffSchedule(r.Context(), &models.GetStaffScheduleRequest{
		UserID:         userID,
		OrganizationID: organizationID,
		StaffID:        staffID,
		Date:           date,
	})
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /organizations/{id}/staff/{id}/appointments - Access denied: staff_id=%d, user_id=%d", staffID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, appointments.ErrStaffNotFound):
			h.logger.Warn("GET /organizations/{id}/staff/{id}/appointments - Staff not found: organization_id=%d, staff_id=%d",
				organizationID, staffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /organizations/{id}/staff/{id}/appointments - Invalid input: staff_id=%d", staffID)
			handlers.RespondBadRequest(w, msgInvalidStaffID)

		default:
			h.logger.Error("GET /organizations/{id}/staff/{id}/appointments - Failed to get appointments: staff_id=%d, error=%v",
				staffID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /organizations/{id}/staff/{id}/appointments - Appointments retrieved: staff_id=%d, count=%d",
		staffID, len(list.Appointments))
	handlers.RespondJSON(w, http.StatusOK, list)
}
