package cancel_appointment

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/api/middleware"
	"github.com/m04kA/SMC-GroomingService/internal/domain"
	cancelAppointment "github.com/m04kA/SMC-GroomingService/internal/usecase/cancel_appointment"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	req  *cancelAppointment.Request
	resp *cancelAppointment.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *cancelAppointment.Request) (*cancelAppointment.Response, error) {
	f.req = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, path string, withUser bool) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.Handle("/appointments/{appointmentId}/cancel",
		middleware.Auth(http.HandlerFunc(NewHandler(uc, nopLogger{}).Handle))).Methods(http.MethodPost)

	r := httptest.NewRequest(http.MethodPost, path, nil)
	if withUser {
		r.Header.Set(middleware.UserIDHeader, "2")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, r)
	return w
}

func TestHandle_Success(t *testing.T) {
	at := time.Date(2025, time.June, 2, 8, 0, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &cancelAppointment.Response{
		ID:              7,
		Status:          domain.StatusCancelled,
		CancellationFee: decimal.NewFromInt(50),
		IsLate:          true,
		CancelledAt:     at,
	}}

	w := serve(uc, "/appointments/7/cancel", true)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(7), uc.req.AppointmentID)
	assert.Equal(t, int64(2), uc.req.UserID)

	var resp CancelResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "cancelled", resp.Status)
	assert.True(t, resp.IsLate)
	assert.True(t, decimal.NewFromInt(50).Equal(resp.CancellationFee))
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		withUser bool
		err      error
		status   int
	}{
		{name: "no user", path: "/appointments/7/cancel", status: http.StatusUnauthorized},
		{name: "bad id", path: "/appointments/abc/cancel", withUser: true, status: http.StatusBadRequest},
		{name: "not found", path: "/appointments/7/cancel", withUser: true, err: cancelAppointment.ErrAppointmentNotFound, status: http.StatusNotFound},
		{name: "forbidden", path: "/appointments/7/cancel", withUser: true, err: cancelAppointment.ErrAccessDenied, status: http.StatusForbidden},
		{name: "status", path: "/appointments/7/cancel", withUser: true, err: cancelAppointment.ErrInvalidStatus, status: http.StatusConflict},
		{name: "internal", path: "/appointments/7/cancel", withUser: true, err: cancelAppointment.ErrInternal, status: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := serve(&fakeUseCase{err: tt.err}, tt.path, tt.withUser)
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
