package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	bookingRepo "carebridge/database/repository/booking"
	doctorRepo "carebridge/database/repository/doctor"
	patientRepo "carebridge/database/repository/patient"
	"carebridge/models"
	"carebridge/services/scheduling"
	"carebridge/utils"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// ReminderScheduler enqueues a reminder task for an upcoming booking.
type ReminderScheduler interface {
	ScheduleReminder(booking *models.Booking) error
}

// DefaultBookingService is the production BookingService.
type DefaultBookingService struct {
	Bookings bookingRepo.BookingRepository
	Doctors  doctorRepo.DoctorRepository
	Patients patientRepo.PatientRepository
	// Reminders is optional; booking proceeds without it.
	Reminders ReminderScheduler
}

func (s *DefaultBookingService) Book(ctx context.Context, patientID string, req models.BookingRequest) (*models.Booking, error) {
	day, err := scheduling.ParseDate(req.Date)
	if err != nil {
		return nil, err
	}
	reqStart, err := scheduling.CombineDateTime(req.Date, req.StartTime)
	if err != nil {
		return nil, err
	}
	reqEnd, err := scheduling.CombineDateTime(req.Date, req.EndTime)
	if err != nil {
		return nil, err
	}

	patient, err := s.Patients.GetByIDWithProjection(patientID, bson.M{"id": 1})
	if err != nil {
		return nil, fmt.Errorf("failed to look up patient: %w", err)
	}
	if patient == nil {
		return nil, utils.NotFoundError{Resource: "patient"}
	}

	doctor, err := s.Doctors.GetByIDWithProjection(req.DoctorID, bson.M{"id": 1})
	if err != nil {
		return nil, fmt.Errorf("failed to look up doctor: %w", err)
	}
	if doctor == nil {
		return nil, utils.NotFoundError{Resource: "doctor"}
	}

	schedule, err := s.Doctors.GetScheduleByDate(req.DoctorID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to look up schedule: %w", err)
	}
	if schedule == nil {
		return nil, utils.NotFoundError{Resource: "schedule for " + req.Date}
	}

	var slot *models.Slot
	for i := range schedule.Slots {
		if schedule.Slots[i].ID == req.SlotID {
			slot = &schedule.Slots[i]
			break
		}
	}
	if slot == nil {
		return nil, utils.NotFoundError{Resource: "slot"}
	}

	// Fast pre-check; the conditional update inside the transaction is still
	// the authoritative guard against races.
	if scheduling.ProjectSlotStatus(slot.Status, slot.EndTime, time.Now()) != models.SlotAvailable {
		return nil, utils.ConflictError{Reason: "slot is not available"}
	}
	if !slot.StartTime.Equal(reqStart) || !slot.EndTime.Equal(reqEnd) {
		return nil, utils.ValidationError{Reason: "requested times do not match the slot"}
	}

	booking := &models.Booking{
		ID:        uuid.New().String(),
		DoctorID:  req.DoctorID,
		PatientID: patientID,
		Date:      schedule.Date,
		SlotID:    slot.ID,
		StartTime: slot.StartTime,
		EndTime:   slot.EndTime,
		Venue:     schedule.Venue,
		Status:    models.SlotScheduled,
		CreatedAt: time.Now(),
	}

	if err := s.Bookings.BookSlot(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrSlotUnavailable) {
			return nil, utils.ConflictError{Reason: "slot is not available"}
		}
		return nil, fmt.Errorf("failed to book slot: %w", err)
	}

	if s.Reminders != nil {
		if err := s.Reminders.ScheduleReminder(booking); err != nil {
			utils.GetLogger().Warn("failed to schedule appointment reminder",
				zap.String("bookingID", booking.ID), zap.Error(err))
		}
	}

	utils.GetLogger().Info("slot booked",
		zap.String("bookingID", booking.ID),
		zap.String("doctorID", booking.DoctorID),
		zap.String("patientID", booking.PatientID),
		zap.Time("startTime", booking.StartTime))
	return booking, nil
}

func (s *DefaultBookingService) Cancel(ctx context.Context, patientID, bookingID string) error {
	booking, err := s.Bookings.GetByID(bookingID)
	if err != nil {
		return fmt.Errorf("failed to look up booking: %w", err)
	}
	if booking == nil || booking.PatientID != patientID {
		return utils.NotFoundError{Resource: "appointment"}
	}

	// Only scheduled bookings are cancellable; a booking whose slot already
	// ended projects to completed even before any write happens.
	status := scheduling.ProjectSlotStatus(booking.Status, booking.EndTime, time.Now())
	if status != models.SlotScheduled {
		return utils.ConflictError{Reason: fmt.Sprintf("cannot cancel a %s appointment", status)}
	}

	if err := s.Bookings.CancelBooking(ctx, booking); err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotCancellable) ||
			errors.Is(err, bookingRepo.ErrSlotUnavailable) {
			return utils.ConflictError{Reason: "appointment can no longer be cancelled"}
		}
		return fmt.Errorf("failed to cancel booking: %w", err)
	}

	utils.GetLogger().Info("booking cancelled",
		zap.String("bookingID", bookingID),
		zap.String("patientID", patientID))
	return nil
}

func (s *DefaultBookingService) ListAppointments(patientID string, now time.Time) ([]models.Appointment, error) {
	bookings, err := s.Bookings.GetByPatient(patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch bookings: %w", err)
	}

	doctors := make(map[string]*models.Doctor)
	appointments := make([]models.Appointment, 0, len(bookings))
	for _, b := range bookings {
		if b.Status == models.SlotCancelled {
			continue
		}

		appt := models.Appointment{
			ID:        b.ID,
			DoctorID:  b.DoctorID,
			Date:      b.Date,
			StartTime: b.StartTime,
			EndTime:   b.EndTime,
			Venue:     b.Venue,
			Status:    scheduling.ProjectSlotStatus(b.Status, b.EndTime, now),
		}

		doc, ok := doctors[b.DoctorID]
		if !ok {
			doc, err = s.Doctors.GetByIDWithProjection(b.DoctorID,
				bson.M{"id": 1, "username": 1, "specialization": 1})
			if err != nil {
				utils.GetLogger().Warn("failed to decorate appointment with doctor details",
					zap.String("doctorID", b.DoctorID), zap.Error(err))
			}
			doctors[b.DoctorID] = doc
		}
		if doc != nil {
			appt.DoctorName = doc.Username
			appt.Specialization = doc.Specialization
		}

		appointments = append(appointments, appt)
	}
	return appointments, nil
}
