package handlers

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"healthhub/services/availability"
	"healthhub/services/scheduling"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubAvailability struct {
	result *availability.Result
	err    error
}

func (s *stubAvailability) Query(ctx context.Context, doctorID, date string) (*availability.Result, error) {
	return s.result, s.err
}

func (s *stubAvailability) Invalidate(ctx context.Context, doctorID, date string) {}

func slotsRouter(svc availability.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewDoctorHandler(nil, svc)
	r.GET("/api/doctors/:doctorId/available-slots", h.GetAvailableSlots)
	return r
}

func getSlots(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestAvailableSlotsStatusCodes(t *testing.T) {
	_, dateErr := time.Parse("2006-01-02", "01/06/2025")

	cases := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"doctor missing", &scheduling.DoctorNotFoundError{DoctorID: "doc-1"}, http.StatusNotFound},
		{"malformed date", fmt.Errorf("invalid date %q: %w", "01/06/2025", dateErr), http.StatusBadRequest},
		{"malformed template clock", fmt.Errorf("invalid schedule template for doctor doc-1: %w",
			&scheduling.InvalidClockError{Value: "9:00"}), http.StatusBadRequest},
		{"repository failure", fmt.Errorf("failed to load appointments: %w",
			fmt.Errorf("connection reset")), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := slotsRouter(&stubAvailability{err: tc.err})
			w := getSlots(r, "/api/doctors/doc-1/available-slots?date=2025-01-06")
			assert.Equal(t, tc.wantStatus, w.Code)
		})
	}
}

func TestAvailableSlotsSuccessAndMissingDate(t *testing.T) {
	stub := &stubAvailability{result: &availability.Result{
		Date:           "2025-01-06",
		AvailableSlots: []string{"09:00", "09:30"},
		TotalSlots:     2,
	}}
	r := slotsRouter(stub)

	w := getSlots(r, "/api/doctors/doc-1/available-slots?date=2025-01-06")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "09:30")

	w = getSlots(r, "/api/doctors/doc-1/available-slots")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Date is required")
}
