package get_booking_policies

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/service/policies/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	err error
}

func (f *fakeService) Get(_ context.Context, organizationID int64) (*models.PoliciesResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &models.PoliciesResponse{OrganizationID: organizationID, IsDefault: true}, nil
}

func TestHandle(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		err    error
		status int
	}{
		{name: "ok", path: "/organizations/1/booking-policies", status: http.StatusOK},
		{name: "bad id", path: "/organizations/abc/booking-policies", status: http.StatusBadRequest},
		{name: "zero id", path: "/organizations/0/booking-policies", status: http.StatusBadRequest},
		{name: "internal", path: "/organizations/1/booking-policies", err: errors.New("db down"), status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := mux.NewRouter()
			router.HandleFunc("/organizations/{orgId}/booking-policies",
				NewHandler(&fakeService{err: tt.err}, nopLogger{}).Handle)

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			assert.Equal(t, tt.status, w.Code)

			if tt.status == http.StatusOK {
				var body models.PoliciesResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, int64(1), body.OrganizationID)
				assert.True(t, body.IsDefault)
			}
		})
	}
}
