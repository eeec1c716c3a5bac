package get_booking_policies

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-GroomingService/internal/api/handlers"
)

const (
	msgInvalidOrganizationID = "некорректный ID организации"
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

// Handle GET /api/v1/organizations/{orgId}/booking-policies
// Если политики не сохранены, возвращаются значения по умолчанию с isDefault=true
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	organizationID, err := strconv.ParseInt(mux.Vars(r)["orgId"], 10, 64)
	if err != nil || organizationID <= 0 {
		h.logger.Warn("GET /organizations/{id}/booking-policies - Invalid organization ID: %s", mux.Vars(r)["orgId"])
		handlers.RespondBadRequest(w, msgInvalidOrganizationID)
		return
	}

	policies, err := h.service.Get(r.Context(), organizationID)
	if err != nil {
		h.logger.Error("GET /organizations/{id}/booking-policies - Failed to get policies: organization_id=%d, error=%v",
			organizationID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /organizations/{id}/booking-policies - Policies retrieved: organization_id=%d, is_default=%t",
		organizationID, policies.IsDefault)
	handlers.RespondJSON(w, http.StatusOK, policies)
}
