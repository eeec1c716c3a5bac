package update_staff_availability

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/service/staff"
	"github.com/m04kA/SMC-GroomingService/internal/service/staff/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	req *models.UpdateAvailabilityRequest
	err error
}

func (f *fakeService) UpdateAvailability(_ context.Context, req *models.UpdateAvailabilityRequest) (*models.AvailabilityResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AvailabilityResponse{StaffID: req.StaffID, OrganizationID: req.OrganizationID}, nil
}

const body = `{"organizationId":1,"maxAppointmentsPerDay":4,"bufferMinutesBetweenAppointments":15,
"weeklySchedule":[{"dayOfWeek":1,"isWorkingDay":true,"startTime":"09:00","endTime":"17:00"}]}`

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/staff/{staffId}/availability",
		middleware.Auth(http.HandlerFunc(NewHandler(svc, nopLogger{}).Handle))).Methods(http.MethodPut)

	r := httptest.NewRequest(http.MethodPut, "/staff/3/availability", strings.NewReader(body))
	r.Header.Set(middleware.UserIDHeader, "3")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandle_Success(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, body)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(3), svc.req.StaffID)
	assert.Equal(t, int64(3), svc.req.UserID)
	assert.Equal(t, int64(1), svc.req.OrganizationID)
	assert.Equal(t, 15, svc.req.BufferMinutesBetweenAppointments)
	require.Len(t, svc.req.WeeklySchedule, 1)
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		err    error
		status int
	}{
		{name: "bad body", body: `{"staffId":3}`, status: http.StatusBadRequest},
		{name: "invalid schedule", body: body, err: staff.ErrInvalidInput, status: http.StatusBadRequest},
		{name: "other staff", body: body, err: staff.ErrAccessDenied, status: http.StatusForbidden},
		{name: "internal", body: body, err: staff.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeService{}
			if tt.err != nil {
				svc.err = fmt.Errorf("%w: details", tt.err)
			}
			w := serve(svc, tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
