package quote_booking

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	quoteBooking "github.com/m04kA/SMC-GroomingService/internal/usecase/quote_booking"
)

const (
	msgInvalidOrganizationID = "некорректный ID организации"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgInvalidDate           = "некорректная дата, ожидается YYYY-MM-DD или startTime в формате RFC3339"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidInput          = "некорректные данные запроса"
	msgPetNotFound           = "питомец не найден"
	msgServiceNotFound       = "услуга не найдена"
	msgInactiveService       = "услуга недоступна для записи"
	msgUnknownModifier       = "выбранная опция не относится к услуге"
	msgStaffNotFound         = "расписание сотрудника не найдено"
)

type Handler struct {
	useCase QuoteBookingUseCase
	logger  Logger
}

func NewHandler(useCase QuoteBookingUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/organizations/{orgId}/quotes
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, err := strconv.ParseInt(mux.Vars(r)["orgId"], 10, 64)
	if err != nil {
		h.logger.Warn("POST /organizations/{id}/quotes - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrganizationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /organizations/{id}/quotes - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req QuoteRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /organizations/{id}/quotes - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(userID, organizationID)
	if err != nil {
		h.logger.Warn("POST /organizations/{id}/quotes - Invalid date: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, quoteBooking.ErrInvalidInput):
			h.logger.Warn("POST /organizations/{id}/quotes - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, quoteBooking.ErrPetNotFound):
			h.logger.Warn("POST /organizations/{id}/quotes - Pet not found: user_id=%d", userID)
			handlers.RespondNotFound(w, msgPetNotFound)

		case errors.Is(err, quoteBooking.ErrServiceNotFound):
			h.logger.Warn("POST /organizations/{id}/quotes - Service not found: organization_id=%d", organizationID)
			handlers.RespondNotFound(w, msgServiceNotFound)

		case errors.Is(err, quoteBooking.ErrStaffNotFound):
			h.logger.Warn("POST /organizations/{id}/quotes - Staff not found: staff_id=%d", req.StaffID)
			handlers.RespondNotFound(w, msgStaffNotFound)

		case errors.Is(err, quoteBooking.ErrInactiveService):
			h.logger.Warn("POST /organizations/{id}/quotes - Inactive service: organization_id=%d", organizationID)
			handlers.RespondUnprocessable(w, "inactive_service", msgInactiveService)

		case errors.Is(err, quoteBooking.ErrUnknownModifier):
			h.logger.Warn("POST /organizations/{id}/quotes - Unknown modifier: organization_id=%d", organizationID)
			handlers.RespondUnprocessable(w, "unknown_modifier", msgUnknownModifier)

		default:
			h.logger.Error("POST /organizations/{id}/quotes - Failed to quote: organization_id=%d, user_id=%d, error=%v",
				organizationID, userID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /organizations/{id}/quotes - Quote calculated: organization_id=%d, user_id=%d, total=%s, slots=%d",
		organizationID, userID, result.TotalPrice.StringFixed(2), len(result.AvailableSlots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
