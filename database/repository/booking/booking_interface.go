package bookingRepo

import (
	"context"
	"errors"

	"carebridge/models"
)

// ErrSlotUnavailable is returned when the conditional slot update inside a
// booking or cancellation transaction matches no document, meaning the slot
// was taken, released or removed by a concurrent request.
var ErrSlotUnavailable = errors.New("slot is not available")

// ErrBookingNotCancellable is returned when a cancellation targets a booking
// that is no longer in the scheduled state.
var ErrBookingNotCancellable = errors.New("booking is not cancellable")

// BookingRepository owns the authoritative booking records and the
// transactional coupling between a booking and its doctor-side slot.
type BookingRepository interface {
	GetByID(id string) (*models.Booking, error)
	GetByPatient(patientID string) ([]models.Booking, error)

	// BookSlot inserts the booking and flips its slot from available to
	// scheduled in one transaction. The slot update is conditional on the
	// slot still being available; when that condition fails the whole
	// transaction aborts with ErrSlotUnavailable.
	BookSlot(ctx context.Context, booking *models.Booking) error

	// CancelBooking marks the booking cancelled and releases its slot in one
	// transaction. Both updates are conditional on the current state, so a
	// concurrent cancel or a completed booking aborts the transaction.
	CancelBooking(ctx context.Context, booking *models.Booking) error
}
