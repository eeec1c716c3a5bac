package commit_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/engine/policy"
	commitBooking "github.com/m04kA/SMC-GroomingService/internal/usecase/commit_booking"
)

const (
	msgInvalidOrganizationID = "некорректный ID организации"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidInput          = "некорректные данные записи"
	msgSlotConflict          = "выбранное время уже занято"
	msgPetNotFound           = "питомец не найден"
	msgServiceNotFound       = "услуга не найдена"
	msgInactiveService       = "услуга недоступна для записи"
	msgUnknownModifier       = "выбранная опция не относится к услуге"
	msgStaffNotFound         = "расписание сотрудника не найдено"
	msgPolicyViolation       = "запись нарушает правила организации"
)

type Handler struct {
	useCase CommitBookingUseCase
	logger  Logger
}

func NewHandler(useCase CommitBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/organizations/{orgId}/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, err := strconv.ParseInt(mux.Vars(r)["orgId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /organizations/{id}/appointments - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrganizationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /organizations/{id}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CommitBookingRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /organizations/{id}/appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, organizationID))
	if err != nil {
		if v, ok := policy.AsViolation(err); ok {
			h.logger.Warn("POST /organizations/{id}/appointments - Policy violation: user_id=%d, reason=%s", userID, v.Reason)
			handlers.RespondUnprocessable(w, string(v.Reason), msgPolicyViolation)
			return
		}

		switch {
		case errors.Is(err, commitBooking.ErrSlotConflict):
			h.logger.Warn("POST /organizations/{id}/appointments - Slot conflict: staff_id=%d, start=%s",
				req.StaffID, req.StartTime)
			handlers.RespondConflict(w, msgSlotConflict)

		case errors.Is(err, commitBooking.ErrInvalidInput):
			h.logger.Warn("POST /organizations/{id}/appointments - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, commitBooking.ErrPetNotFound):
			h.logger.Warn("POST /organizations/{id}/appointments - Pet not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgPetNotFound)

		case errors.Is(err, commitBooking.ErrServiceNotFound):
			h.logger.Warn("POST /organizations/{id}/appointments - Service not found: organization_id=%d", organizationID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, commitBooking.ErrStaffNotFound):
			h.logger.Warn("POST /organizations/{id}/appointments - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, commitBooking.ErrInactiveService):
			h.logger.Warn("POST /organizations/{id}/appointments - Inactive service: organization_id=%d", organizationID)
			handlers.RespondUnprocessable(w, "inactive_service", msgInactiveService)

		case errors.Is(err, commitBooking.ErrUnknownModifier):
			h.logger.Warn("POST /organizations/{id}/appointments - Unknown modifier: organization_id=%d", organizationID)
			handlers.RespondUnprocessable(w, "unknown_modifier", msgUnknownModifier)

		default:
			h.logger.Error("POST /organizations/{id}/appointments - Failed to commit booking: organization_id=%d, user_id=%d, error=%v",
				organizationID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /organizations/{id}/appointments - Appointment created: appointment_id=%d, user_id=%d, status=%s",
		result.ID, userID, result.Status)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
