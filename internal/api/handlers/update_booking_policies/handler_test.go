package update_booking_policies

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/service/policies"
	"github.com/m04kA/SMC-GroomingService/internal/service/policies/models"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeService struct {
	req *models.UpdatePoliciesRequest
	err error
}

func (f *fakeService) Update(_ context.Context, req *models.UpdatePoliciesRequest) (*models.PoliciesResponse, error) {
	f.req = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.PoliciesResponse{OrganizationID: req.OrganizationID}, nil
}

func serve(svc *fakeService, body string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/organizations/{orgId}/booking-policies",
		middleware.Auth(http.HandlerFunc(NewHandler(svc, nopLogger{}).Handle))).Methods(http.MethodPut)

	r := httptest.NewRequest(http.MethodPut, "/organizations/1/booking-policies", strings.NewReader(body))
	r.Header.Set(middleware.UserIDHeader, "5")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandle_PartialUpdate(t *testing.T) {
	svc := &fakeService{}
	w := serve(svc, `{"depositRequired":true,"depositPercentage":"25"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), svc.req.OrganizationID)
	assert.Equal(t, int64(5), svc.req.UserID)
	require.NotNil(t, svc.req.DepositRequired)
	assert.True(t, *svc.req.DepositRequired)
	require.NotNil(t, svc.req.DepositPercentage)
	assert.True(t, decimal.NewFromInt(25).Equal(*svc.req.DepositPercentage))
	assert.Nil(t, svc.req.Timezone)
}

func TestHandle_Errors(t *testing.T) {
	svc := &fakeService{err: fmt.Errorf("%w: depositPercentage must be between 0 and 100", policies.ErrInvalidInput)}
	assert.Equal(t, http.StatusBadRequest, serve(svc, `{"depositPercentage":"120"}`).Code)

	svc = &fakeService{err: policies.ErrInternal}
	assert.Equal(t, http.StatusInternalServerError, serve(svc, `{}`).Code)

	assert.Equal(t, http.StatusBadRequest, serve(&fakeService{}, `{"organizationId":2}`).Code)
}
