package doctorRepo

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"carebridge/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrSlotNotFound is returned when a slot update matches no embedded slot.
var ErrSlotNotFound = errors.New("slot not found")

// UpsertSchedule replaces the schedule entry for the given date, or appends
// one if the date has no entry yet.
func (r *MongoDoctorRepo) UpsertSchedule(doctorID string, schedule models.Schedule) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	// Replace in place when an entry for the date exists.
	filter := bson.M{"id": doctorID, "schedules.date": schedule.Date}
	update := bson.M{"$set": bson.M{"schedules.$": schedule, "updatedAt": time.Now()}}

	result, err := r.coll.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to replace schedule for doctor %s: %w", doctorID, err)
	}
	if result.MatchedCount > 0 {
		return nil
	}

	// No entry for this date yet; append.
	push := bson.M{
		"$push": bson.M{"schedules": schedule},
		"$set":  bson.M{"updatedAt": time.Now()},
	}
	result, err = r.coll.UpdateOne(ctx, bson.M{"id": doctorID}, push)
	if err != nil {
		return fmt.Errorf("failed to insert schedule for doctor %s: %w", doctorID, err)
	}
	if result.MatchedCount == 0 {
		return fmt.Errorf("doctor with id %s not found", doctorID)
	}
	return nil
}

// GetSchedules returns all schedule entries for a doctor sorted by date ascending.
func (r *MongoDoctorRepo) GetSchedules(doctorID string) ([]models.Schedule, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	opts := options.FindOne().SetProjection(bson.M{"schedules": 1})

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, bson.M{"id": doctorID}, opts).Decode(&doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch schedules for doctor %s: %w", doctorID, err)
	}

	schedules := doctor.Schedules
	sort.Slice(schedules, func(i, j int) bool {
		return schedules[i].Date.Before(schedules[j].Date)
	})
	return schedules, nil
}

// GetScheduleByDate returns the schedule entry for one calendar date, or nil
// if the doctor has no entry for that date.
func (r *MongoDoctorRepo) GetScheduleByDate(doctorID string, date time.Time) (*models.Schedule, error) {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	filter := bson.M{"id": doctorID, "schedules.date": date}
	opts := options.FindOne().SetProjection(bson.M{"schedules.$": 1})

	var doctor models.Doctor
	if err := r.coll.FindOne(ctx, filter, opts).Decode(&doctor); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to fetch schedule for doctor %s on %s: %w",
			doctorID, date.Format("2006-01-02"), err)
	}
	if len(doctor.Schedules) == 0 {
		return nil, nil
	}
	return &doctor.Schedules[0], nil
}

// UpdateSlotStatus locates a slot by ID across all schedule entries and
// mutates its status, and optionally its patient reference, in place.
func (r *MongoDoctorRepo) UpdateSlotStatus(doctorID, slotID string, status models.SlotStatus, patientID string) error {
	ctx, cancel := newContext(5 * time.Second)
	defer cancel()

	set := bson.M{"schedules.$[].slots.$[s].status": status}
	if patientID != "" {
		set["schedules.$[].slots.$[s].patientId"] = patientID
	}
	if status == models.SlotAvailable {
		set["schedules.$[].slots.$[s].patientId"] = ""
		set["schedules.$[].slots.$[s].bookingId"] = ""
	}

	opts := options.Update().SetArrayFilters(options.ArrayFilters{
		Filters: []interface{}{bson.M{"s.id": slotID}},
	})

	filter := bson.M{
		"id":              doctorID,
		"schedules.slots": bson.M{"$elemMatch": bson.M{"id": slotID}},
	}
	result, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": set}, opts)
	if err != nil {
		return fmt.Errorf("failed to update slot %s for doctor %s: %w", slotID, doctorID, err)
	}
	// ModifiedCount stays zero when the slot already holds the requested
	// status; only an unmatched filter means the slot is absent.
	if result.MatchedCount == 0 {
		return ErrSlotNotFound
	}
	return nil
}
