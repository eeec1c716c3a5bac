package get_staff_appointments

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/service/appointments"
	"github.com/m04kA/SMC-GroomingService/internal/service/appointments/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
	req *models.GetStaffScheduleRequest
}

func (f *fakeService) GetStaffSchedule(_ context.Context, req *models.GetStaffScheduleRequest) (*models.AppointmentListResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentListResponse{Appointments: []models.AppointmentResponse{}}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{name: "ok", path: "/organizations/1/staff/3/appointments?date=2025-06-02", status: http.StatusOK},
		{name: "bad org", path: "/organizations/x/staff/3/appointments?date=2025-06-02", status: http.StatusBadRequest},
		{name: "bad staff", path: "/organizations/1/staff/x/appointments?date=2025-06-02", status: http.StatusBadRequest},
		{name: "missing date", path: "/organizations/1/staff/3/appointments", status: http.StatusBadRequest},
		{name: "bad date", path: "/organizations/1/staff/3/appointments?date=02.06.2025", status: http.StatusBadRequest},
		{name: "forbidden", path: "/organizations/1/staff/3/appointments?date=2025-06-02", err: appointments.ErrAccessDenied, status: http.StatusForbidden},
		{name: "staff not found", path: "/organizations/1/staff/3/appointments?date=2025-06-02", err: appointments.ErrStaffNotFound, status: http.StatusNotFound},
		{name: "internal", path: "/organizations/1/staff/3/appointments?date=2025-06-02", err: appointments.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			service := &fakeService{err: tt.err}
			router := mux.NewRouter()
			router.Handle("/organizations/{orgId}/staff/{staffId}/appointments",
				middleware.Auth(http.HandlerFunc(NewHandler(service, nopLogger{}).Handle)))

			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			r.Header.Set(middleware.UserIDHeader, "3")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)
			assert.Equal(t, tt.status, w.Code)

			if tt.status == http.StatusOK {
				assert.Equal(t, int64(3), service.req.UserID)
				assert.Equal(t, int64(1), service.req.OrganizationID)
				assert.Equal(t, time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC), service.req.Date)
			}
		})
	}
}
