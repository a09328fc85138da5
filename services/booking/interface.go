package booking

import (
	"context"
	"time"

	"carebridge/models"
)

// BookingService coordinates slot reservations between the doctor's schedule
// and the authoritative booking records.
type BookingService interface {
	// Book reserves the requested slot for the patient and returns the new
	// booking. Fails with NotFound when the doctor, schedule date or slot is
	// absent and with Conflict when the slot is no longer available.
	Book(ctx context.Context, patientID string, req models.BookingRequest) (*models.Booking, error)

	// Cancel releases a scheduled booking owned by the patient. Completed
	// bookings are not cancellable.
	Cancel(ctx context.Context, patientID, bookingID string) error

	// ListAppointments returns the patient's appointment view, statuses
	// projected to the given instant, cancelled bookings omitted.
	ListAppointments(patientID string, now time.Time) ([]models.Appointment, error)
}
