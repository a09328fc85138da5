package scheduling

import (
	"errors"
	"testing"
	"time"

	doctorRepo "carebridge/database/repository/doctor"
	"carebridge/models"
	"carebridge/utils"

	"go.mongodb.org/mongo-driver/bson"
)

type fakeDoctorRepo struct {
	doctor    *models.Doctor
	upserted  []models.Schedule
	slotError error
}

func (f *fakeDoctorRepo) Create(*models.Doctor) error { return nil }
func (f *fakeDoctorRepo) Update(*models.Doctor) error { return nil }
func (f *fakeDoctorRepo) Delete(string) error         { return nil }

func (f *fakeDoctorRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Doctor, error) {
	if f.doctor != nil && f.doctor.ID == id {
		return f.doctor, nil
	}
	return nil, nil
}

func (f *fakeDoctorRepo) GetByEmailWithProjection(string, bson.M) (*models.Doctor, error) {
	return nil, nil
}
func (f *fakeDoctorRepo) UpdateSetDocument(string, bson.M) error { return nil }
func (f *fakeDoctorRepo) AddPatient(string, string) error        { return nil }
func (f *fakeDoctorRepo) RemovePatient(string, string) error     { return nil }
func (f *fakeDoctorRepo) Search(string, string) ([]models.DoctorPublic, error) {
	return nil, nil
}
func (f *fakeDoctorRepo) GetPage(int, int) (*models.DoctorPage, error) { return nil, nil }

func (f *fakeDoctorRepo) UpsertSchedule(_ string, schedule models.Schedule) error {
	f.upserted = append(f.upserted, schedule)
	for i := range f.doctor.Schedules {
		if f.doctor.Schedules[i].Date.Equal(schedule.Date) {
			f.doctor.Schedules[i] = schedule
			return nil
		}
	}
	f.doctor.Schedules = append(f.doctor.Schedules, schedule)
	return nil
}

func (f *fakeDoctorRepo) GetSchedules(id string) ([]models.Schedule, error) {
	if f.doctor == nil || f.doctor.ID != id {
		return nil, nil
	}
	return f.doctor.Schedules, nil
}

func (f *fakeDoctorRepo) GetScheduleByDate(id string, date time.Time) (*models.Schedule, error) {
	if f.doctor == nil || f.doctor.ID != id {
		return nil, nil
	}
	for i := range f.doctor.Schedules {
		if f.doctor.Schedules[i].Date.Equal(date) {
			return &f.doctor.Schedules[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepo) UpdateSlotStatus(_ string, slotID string, status models.SlotStatus, patientID string) error {
	if f.slotError != nil {
		return f.slotError
	}
	for i := range f.doctor.Schedules {
		for j := range f.doctor.Schedules[i].Slots {
			if f.doctor.Schedules[i].Slots[j].ID == slotID {
				f.doctor.Schedules[i].Slots[j].Status = status
				if patientID != "" {
					f.doctor.Schedules[i].Slots[j].PatientID = patientID
				}
				return nil
			}
		}
	}
	return doctorRepo.ErrSlotNotFound
}

func newScheduleService(doctor *models.Doctor) (*DefaultScheduleService, *fakeDoctorRepo) {
	repo := &fakeDoctorRepo{doctor: doctor}
	return &DefaultScheduleService{Repo: repo}, repo
}

func TestAddScheduleGeneratesSlots(t *testing.T) {
	svc, repo := newScheduleService(&models.Doctor{ID: "doc-1"})

	schedule, err := svc.AddSchedule("doc-1", "2026-04-01", "09:00", "10:00", "Clinic A")
	if err != nil {
		t.Fatalf("AddSchedule: %v", err)
	}
	if len(schedule.Slots) != 6 {
		t.Errorf("got %d slots for a 1 hour window, want 6", len(schedule.Slots))
	}
	if schedule.Venue != "Clinic A" {
		t.Errorf("venue = %q, want %q", schedule.Venue, "Clinic A")
	}
	if len(repo.upserted) != 1 {
		t.Fatalf("expected 1 upsert, got %d", len(repo.upserted))
	}
	wantDay, _ := ParseDate("2026-04-01")
	if !repo.upserted[0].Date.Equal(wantDay) {
		t.Errorf("stored date = %v, want %v", repo.upserted[0].Date, wantDay)
	}
}

func TestAddScheduleReplacesBookingFreeDate(t *testing.T) {
	svc, repo := newScheduleService(&models.Doctor{ID: "doc-1"})

	if _, err := svc.AddSchedule("doc-1", "2026-04-01", "09:00", "10:00", "Clinic A"); err != nil {
		t.Fatalf("first AddSchedule: %v", err)
	}
	if _, err := svc.AddSchedule("doc-1", "2026-04-01", "14:00", "15:00", "Clinic B"); err != nil {
		t.Fatalf("second AddSchedule: %v", err)
	}

	if len(repo.doctor.Schedules) != 1 {
		t.Fatalf("expected replacement, got %d schedule entries", len(repo.doctor.Schedules))
	}
	if repo.doctor.Schedules[0].Venue != "Clinic B" {
		t.Errorf("venue = %q, want the replacement venue", repo.doctor.Schedules[0].Venue)
	}
}

func TestAddScheduleRefusesDateWithBookings(t *testing.T) {
	svc, repo := newScheduleService(&models.Doctor{ID: "doc-1"})

	if _, err := svc.AddSchedule("doc-1", "2026-04-01", "09:00", "10:00", "Clinic A"); err != nil {
		t.Fatalf("AddSchedule: %v", err)
	}
	repo.doctor.Schedules[0].Slots[2].Status = models.SlotScheduled

	_, err := svc.AddSchedule("doc-1", "2026-04-01", "14:00", "15:00", "Clinic B")
	var conflict utils.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("AddSchedule error = %v, want ConflictError", err)
	}
}

func TestAddScheduleValidation(t *testing.T) {
	svc, _ := newScheduleService(&models.Doctor{ID: "doc-1"})

	cases := []struct {
		name                       string
		date, start, end, venue    string
	}{
		{"missing venue", "2026-04-01", "09:00", "10:00", ""},
		{"bad date", "01-04-2026", "09:00", "10:00", "Clinic A"},
		{"bad time", "2026-04-01", "9am", "10:00", "Clinic A"},
		{"inverted window", "2026-04-01", "10:00", "09:00", "Clinic A"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.AddSchedule("doc-1", tc.date, tc.start, tc.end, tc.venue)
			var validation utils.ValidationError
			if !errors.As(err, &validation) {
				t.Fatalf("AddSchedule error = %v, want ValidationError", err)
			}
		})
	}
}

func TestAddScheduleUnknownDoctor(t *testing.T) {
	svc, _ := newScheduleService(&models.Doctor{ID: "doc-1"})

	_, err := svc.AddSchedule("doc-x", "2026-04-01", "09:00", "10:00", "Clinic A")
	var notFound utils.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("AddSchedule error = %v, want NotFoundError", err)
	}
}

func TestGetSchedulesProjectsStatuses(t *testing.T) {
	svc, repo := newScheduleService(&models.Doctor{ID: "doc-1"})

	if _, err := svc.AddSchedule("doc-1", "2026-04-01", "09:00", "09:30", "Clinic A"); err != nil {
		t.Fatalf("AddSchedule: %v", err)
	}
	repo.doctor.Schedules[0].Slots[0].Status = models.SlotScheduled

	// A read after the window ended projects everything to completed without
	// touching stored state.
	after := mustCombine(t, "2026-04-01", "11:00")
	schedules, err := svc.GetSchedules("doc-1", after)
	if err != nil {
		t.Fatalf("GetSchedules: %v", err)
	}
	for i, slot := range schedules[0].Slots {
		if slot.Status != models.SlotCompleted {
			t.Errorf("slot %d projected status = %q, want %q", i, slot.Status, models.SlotCompleted)
		}
	}
	if repo.doctor.Schedules[0].Slots[0].Status != models.SlotScheduled {
		t.Errorf("stored slot status mutated by read")
	}
}

func TestUpdateSlotStatus(t *testing.T) {
	svc, repo := newScheduleService(&models.Doctor{ID: "doc-1"})

	if err := svc.UpdateSlotStatus("doc-1", "slot-1", "busy", ""); err == nil {
		t.Error("expected validation error for unknown status")
	}

	repo.slotError = doctorRepo.ErrSlotNotFound
	err := svc.UpdateSlotStatus("doc-1", "slot-1", models.SlotCancelled, "")
	var notFound utils.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("UpdateSlotStatus error = %v, want NotFoundError", err)
	}
}

func TestUpdateSlotStatusKeepsCurrentStatus(t *testing.T) {
	svc, repo := newScheduleService(&models.Doctor{ID: "doc-1"})
	schedule, err := svc.AddSchedule("doc-1", "2026-04-01", "09:00", "09:30", "Clinic A")
	if err != nil {
		t.Fatalf("AddSchedule: %v", err)
	}
	slot := schedule.Slots[0]

	// Re-applying the status a slot already holds modifies nothing but is
	// still a successful update, not a missing slot.
	if err := svc.UpdateSlotStatus("doc-1", slot.ID, slot.Status, ""); err != nil {
		t.Fatalf("UpdateSlotStatus with unchanged status: %v", err)
	}
	if got := repo.doctor.Schedules[0].Slots[0].Status; got != slot.Status {
		t.Errorf("slot status = %q, want %q", got, slot.Status)
	}

	err = svc.UpdateSlotStatus("doc-1", "missing-slot", models.SlotCancelled, "")
	var notFound utils.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("UpdateSlotStatus for unknown slot = %v, want NotFoundError", err)
	}
}
