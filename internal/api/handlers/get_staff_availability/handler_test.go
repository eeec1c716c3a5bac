package get_staff_availability

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"

	"github.com/m04kA/SMC-GroomingService/internal/service/staff"
	"github.com/m04kA/SMC-GroomingService/internal/service/staff/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
}

func (f *fakeService) GetAvailability(_ context.Context, staffID int64) (*models.AvailabilityResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.AvailabilityResponse{StaffID: staffID}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{name: "ok", path: "/staff/3/availability", status: http.StatusOK},
		{name: "bad id", path: "/staff/x/availability", status: http.StatusBadRequest},
		{name: "not found", path: "/staff/3/availability", err: staff.ErrAvailabilityNotFound, status: http.StatusNotFound},
		{name: "internal", path: "/staff/3/availability", err: staff.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/staff/{staffId}/availability", NewHandler(&fakeService{err: tt.err}, nopLogger{}).Handle)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
