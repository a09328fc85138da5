package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"carebridge/models"
	"carebridge/utils"

	"github.com/gin-gonic/gin"
)

type stubBookingService struct {
	booking *models.Booking
	err     error
}

func (s *stubBookingService) Book(ctx context.Context, patientID string, req models.BookingRequest) (*models.Booking, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.booking, nil
}

func (s *stubBookingService) Cancel(ctx context.Context, patientID, bookingID string) error {
	return s.err
}

func (s *stubBookingService) ListAppointments(patientID string, now time.Time) ([]models.Appointment, error) {
	return nil, s.err
}

func performBook(t *testing.T, svc *stubBookingService, body string) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	h := &PatientHandler{BookingService: svc}
	r := gin.New()
	r.POST("/api/patients/book", func(c *gin.Context) {
		c.Set("accountID", "patient-1")
		c.Next()
	}, h.BookSlotHandler)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/patients/book", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

const validBookBody = `{"doctorId":"doc-1","date":"2026-10-05","startTime":"09:00",` +
	`"endTime":"09:10","venue":"Clinic A","slotId":"slot-1"}`

func TestBookSlotHandlerRespondsOKOnSuccess(t *testing.T) {
	svc := &stubBookingService{booking: &models.Booking{ID: "bk-1", Status: models.SlotScheduled}}
	w := performBook(t, svc, validBookBody)
	if w.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", w.Code, http.StatusOK)
	}
	if !strings.Contains(w.Body.String(), `"bk-1"`) {
		t.Errorf("body = %s, want booking id", w.Body.String())
	}
}

func TestBookSlotHandlerRejectsMissingFields(t *testing.T) {
	w := performBook(t, &stubBookingService{}, `{"doctorId":"doc-1"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want %d", w.Code, http.StatusBadRequest)
	}
}

func TestBookSlotHandlerMapsServiceErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"conflict", utils.ConflictError{Reason: "slot is no longer available"}, http.StatusConflict},
		{"not found", utils.NotFoundError{Resource: "doctor"}, http.StatusNotFound},
		{"validation", utils.ValidationError{Reason: "slot times do not match"}, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := performBook(t, &stubBookingService{err: tt.err}, validBookBody)
			if w.Code != tt.want {
				t.Errorf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}
