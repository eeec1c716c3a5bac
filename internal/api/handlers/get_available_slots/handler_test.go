package get_available_slots

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-GroomingService/internal/domain"
	getAvailableSlots "github.com/m04kA/SMC-GroomingService/internal/usecase/get_available_slots"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fakeUseCase struct {
	req  *getAvailableSlots.Request
	resp *getAvailableSlots.Response
	err  error
}

func (f *fakeUseCase) Execute(_ context.Context, req *getAvailableSlots.Request) (*getAvailableSlots.Response, error) {
	f.req = req
	return f.resp, f.err
}

func serve(uc *fakeUseCase, query string) *httptest.ResponseRecorder {
	router := mux.NewRouter()
	router.HandleFunc("/organizations/{orgId}/staff/{staffId}/available-slots",
		NewHandler(uc, nopLogger{}).Handle).Methods(http.MethodGet)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/organizations/1/staff/3/available-slots"+query, nil))
	return w
}

func TestHandle_Success(t *testing.T) {
	date := time.Date(2025, time.June, 2, 0, 0, 0, 0, time.UTC)
	start := time.Date(2025, time.June, 2, 10, 45, 0, 0, time.UTC)
	uc := &fakeUseCase{resp: &getAvailableSlots.Response{
		Date:            date,
		StaffID:         3,
		DurationMinutes: 60,
		Timezone:        "UTC",
		Slots:           []domain.AvailableSlot{{StartTime: start, DurationMinutes: 60}},
	}}

	w := serve(uc, "?date=2025-06-02&duration=60")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 60, uc.req.DurationMinutes)
	assert.Equal(t, int64(3), uc.req.StaffID)
	assert.Equal(t, date, uc.req.Date)

	var resp AvailableSlotsResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "2025-06-02", resp.Date)
	require.Len(t, resp.Slots, 1)
	assert.True(t, start.Equal(resp.Slots[0].StartTime))
	assert.True(t, start.Add(time.Hour).Equal(resp.Slots[0].EndTime))
}

func TestHandle_BadRequest(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "missing date", query: "?duration=60"},
		{name: "bad date", query: "?date=June&duration=60"},
		{name: "missing duration", query: "?date=2025-06-02"},
		{name: "bad duration", query: "?date=2025-06-02&duration=hour"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &fakeUseCase{}
			w := serve(uc, tt.query)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Nil(t, uc.req)
		})
	}
}

func TestHandle_Errors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{getAvailableSlots.ErrInvalidInput, http.StatusBadRequest},
		{getAvailableSlots.ErrStaffNotFound, http.StatusNotFound},
		{getAvailableSlots.ErrInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w := serve(&fakeUseCase{err: tt.err}, "?date=2025-06-02&duration=60")
			assert.Equal(t, tt.status, w.Code)
		})
	}
}
