package update_booking_policies

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/service/policies"
	"github.com/m04kA/SMC-GroomingService/internal/service/policies/models"
)

const (
	msgInvalidOrganizationID = "некорректный ID организации"
	msgInvalidRequestBody    = "некорректное тело запроса"
	msgMissingUserID         = "отсутствует ID пользователя"
	msgInvalidData           = "некорректные значения политик бронирования"
)

type Handler struct {
	service PoliciesService
	logger  Logger
}

func NewHandler(service PoliciesService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/organizations/{orgId}/booking-policies
// Частичное обновление: переданные поля применяются поверх текущих политик
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, err := strconv.ParseInt(mux.Vars(r)["orgId"], 10, 64)
	if err != nil {
		h.logger.Warn("PUT /organizations/{id}/booking-policies - Invalid organization ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidOrganizationID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /organizations/{id}/booking-policies - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req models.UpdatePoliciesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /organizations/{id}/booking-policies - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.UserID = userID
	req.OrganizationID = organizationID

	updated, err := h.service.Update(r.Context(), &req)
	if err != nil {
		switch {
		case errors.Is(err, policies.ErrInvalidInput):
			h.logger.Warn("PUT /organizations/{id}/booking-policies - Invalid policies: organization_id=%d, error=%v",
				organizationID, err)
			handlers.RespondBadRequest(w, msgInvalidData)

		default:
			h.logger.Error("PUT /organizations/{id}/booking-policies - Failed to update policies: organization_id=%d, error=%v",
				organizationID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /organizations/{id}/booking-policies - Policies updated: organization_id=%d, user_id=%d",
		organizationID, userID)
	handlers.RespondJSON(w, http.StatusOK, updated)
}
