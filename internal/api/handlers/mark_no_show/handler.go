package mark_no_show

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	markNoShow "github.com/m04kA/SMC-GroomingService/internal/usecase/mark_no_show"
)

const (
	msgInvalidAppointmentID = "некорректный ID записи"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "запись не найдена"
	msgForbidden            = "отметить неявку может только грумер записи"
	msgNotStarted           = "время записи еще не наступило"
	msgInvalidStatus        = "запись нельзя отметить как неявку в текущем статусе"
)

type Handler struct {
	useCase MarkNoShowUseCase
	logger  Logger
}

func NewHandler(useCase MarkNoShowUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/no-show
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := strconv.ParseInt(mux.Vars(r)["appointmentId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/no-show - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments/{id}/no-show - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &markNoShow.Request{
		UserID:        userID,
		AppointmentID: appointmentID,
	})
	if err != nil {
		switch {
		case errors.Is(err, markNoShow.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/no-show - Appointment not found: appointment_id=%d", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, markNoShow.ErrAccessDenied):
			h.logger.Warn("POST /appointments/{id}/no-show - Access denied: appointment_id=%d, user_id=%d", appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, markNoShow.ErrNotStarted):
			h.logger.Warn("POST /appointments/{id}/no-show - Not started: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgNotStarted)

		case errors.Is(err, markNoShow.ErrInvalidStatus):
			h.logger.Warn("POST /appointments/{id}/no-show - Invalid status: appointment_id=%d", appointmentID)
			handlers.RespondConflict(w, msgInvalidStatus)

		case errors.Is(err, markNoShow.ErrInvalidInput):
			h.logger.Warn("POST /appointments/{id}/no-show - Invalid input: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgInvalidAppointmentID)

		default:
			h.logger.Error("POST /appointments/{id}/no-show - Failed to mark no-show: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/no-show - Appointment marked as no-show: appointment_id=%d, fee=%s",
		appointmentID, result.NoShowFee.StringFixed(2))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
