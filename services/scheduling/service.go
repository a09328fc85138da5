package scheduling

import (
	"errors"
	"fmt"
	"time"

	doctorRepo "carebridge/database/repository/doctor"
	"carebridge/models"
	"carebridge/utils"

	"go.mongodb.org/mongo-driver/bson"
	"go.uber.org/zap"
)

// DefaultScheduleService is the production ScheduleService.
type DefaultScheduleService struct {
	Repo doctorRepo.DoctorRepository
}

func (s *DefaultScheduleService) AddSchedule(doctorID, date, startTime, endTime, venue string) (*models.Schedule, error) {
	if venue == "" {
		return nil, utils.ValidationError{Reason: "venue is required"}
	}

	day, err := ParseDate(date)
	if err != nil {
		return nil, err
	}
	windowStart, err := CombineDateTime(date, startTime)
	if err != nil {
		return nil, err
	}
	windowEnd, err := CombineDateTime(date, endTime)
	if err != nil {
		return nil, err
	}

	slots, err := GenerateSlots(windowStart, windowEnd)
	if err != nil {
		return nil, err
	}

	doctor, err := s.Repo.GetByIDWithProjection(doctorID, bson.M{"id": 1})
	if err != nil {
		return nil, fmt.Errorf("failed to look up doctor: %w", err)
	}
	if doctor == nil {
		return nil, utils.NotFoundError{Resource: "doctor"}
	}

	// Never silently drop bookings by replacing a date that still has them.
	existing, err := s.Repo.GetScheduleByDate(doctorID, day)
	if err != nil {
		return nil, fmt.Errorf("failed to look up existing schedule: %w", err)
	}
	if existing != nil && existing.HasActiveBookings() {
		return nil, utils.ConflictError{Reason: fmt.Sprintf(
			"schedule for %s has booked slots and cannot be replaced", date)}
	}

	schedule := models.Schedule{
		Date:      day,
		Venue:     venue,
		StartTime: windowStart,
		EndTime:   windowEnd,
		Slots:     slots,
	}
	if err := s.Repo.UpsertSchedule(doctorID, schedule); err != nil {
		return nil, fmt.Errorf("failed to store schedule: %w", err)
	}

	utils.GetLogger().Info("schedule added",
		zap.String("doctorID", doctorID),
		zap.String("date", date),
		zap.Int("slots", len(slots)))
	return &schedule, nil
}

func (s *DefaultScheduleService) GetSchedules(doctorID string, now time.Time) ([]models.Schedule, error) {
	schedules, err := s.Repo.GetSchedules(doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch schedules: %w", err)
	}
	if schedules == nil {
		return nil, utils.NotFoundError{Resource: "doctor"}
	}
	return ProjectSchedules(schedules, now), nil
}

func (s *DefaultScheduleService) UpdateSlotStatus(doctorID, slotID string, status models.SlotStatus, patientID string) error {
	switch status {
	case models.SlotAvailable, models.SlotScheduled, models.SlotCompleted, models.SlotCancelled:
	default:
		return utils.ValidationError{Reason: fmt.Sprintf("invalid slot status %q", status)}
	}

	if err := s.Repo.UpdateSlotStatus(doctorID, slotID, status, patientID); err != nil {
		if errors.Is(err, doctorRepo.ErrSlotNotFound) {
			return utils.NotFoundError{Resource: "slot"}
		}
		return fmt.Errorf("failed to update slot: %w", err)
	}
	return nil
}
