package get_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

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
}

func (f *fakeService) GetByID(_ context.Context, id int64, userID int64) (*models.AppointmentResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AppointmentResponse{ID: id, ClientID: userID}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{name: "ok", path: "/appointments/7", status: http.StatusOK},
		{name: "bad id", path: "/appointments/x", status: http.StatusBadRequest},
		{name: "zero id", path: "/appointments/0", status: http.StatusBadRequest},
		{name: "not found", path: "/appointments/7", err: appointments.ErrAppointmentNotFound, status: http.StatusNotFound},
		{name: "forbidden", path: "/appointments/7", err: appointments.ErrAccessDenied, status: http.StatusForbidden},
		{name: "internal", path: "/appointments/7", err: appointments.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.Handle("/appointments/{appointmentId}",
				middleware.Auth(http.HandlerFunc(NewHandler(&fakeService{err: tt.err}, nopLogger{}).Handle)))

			r := httptest.NewRequest(http.MethodGet, tt.path, nil)
			r.Header.Set(middleware.UserIDHeader, "2")
			w := httptest.NewRecorder()
			router.ServeHTTP(w, r)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}

func TestViewerRole(t *testing.T) {
	groomer := int64(5)
	a := &models.AppointmentResponse{ClientID: 2, GroomerID: &groomer}

	assert.Equal(t, "client", viewerRole(a, 2))
	assert.Equal(t, "groomer", viewerRole(a, 5))
	assert.Equal(t, "unknown", viewerRole(a, 9))
	assert.Equal(t, "unknown", viewerRole(&models.AppointmentResponse{ClientID: 2}, 5))
}
