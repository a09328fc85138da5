package booking

import (
	"context"
	"errors"
	"testing"
	"time"

	bookingRepo "carebridge/database/repository/booking"
	"carebridge/models"
	"carebridge/services/scheduling"
	"carebridge/utils"

	"go.mongodb.org/mongo-driver/bson"
)

// fakeStore backs the fake repositories with shared in-memory state, standing
// in for the transactional coupling the Mongo repositories provide.
type fakeStore struct {
	doctor   *models.Doctor
	patients map[string]*models.Patient
	bookings map[string]*models.Booking
}

type fakeDoctorRepo struct{ store *fakeStore }

func (f *fakeDoctorRepo) Create(*models.Doctor) error { return nil }
func (f *fakeDoctorRepo) Update(*models.Doctor) error { return nil }
func (f *fakeDoctorRepo) Delete(string) error         { return nil }

func (f *fakeDoctorRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Doctor, error) {
	if f.store.doctor != nil && f.store.doctor.ID == id {
		return f.store.doctor, nil
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
func (f *fakeDoctorRepo) UpsertSchedule(string, models.Schedule) error { return nil }
func (f *fakeDoctorRepo) GetSchedules(string) ([]models.Schedule, error) {
	if f.store.doctor == nil {
		return nil, nil
	}
	return f.store.doctor.Schedules, nil
}

func (f *fakeDoctorRepo) GetScheduleByDate(id string, date time.Time) (*models.Schedule, error) {
	if f.store.doctor == nil || f.store.doctor.ID != id {
		return nil, nil
	}
	for i := range f.store.doctor.Schedules {
		if f.store.doctor.Schedules[i].Date.Equal(date) {
			return &f.store.doctor.Schedules[i], nil
		}
	}
	return nil, nil
}

func (f *fakeDoctorRepo) UpdateSlotStatus(string, string, models.SlotStatus, string) error {
	return nil
}

type fakePatientRepo struct{ store *fakeStore }

func (f *fakePatientRepo) Create(*models.Patient) error { return nil }
func (f *fakePatientRepo) Update(*models.Patient) error { return nil }
func (f *fakePatientRepo) Delete(string) error          { return nil }

func (f *fakePatientRepo) GetByIDWithProjection(id string, _ bson.M) (*models.Patient, error) {
	return f.store.patients[id], nil
}

func (f *fakePatientRepo) GetByEmailWithProjection(string, bson.M) (*models.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) GetManyByIDs([]string, bson.M) ([]models.Patient, error) {
	return nil, nil
}
func (f *fakePatientRepo) UpdateSetDocument(string, bson.M) error         { return nil }
func (f *fakePatientRepo) PushToArray(string, string, interface{}) error  { return nil }
func (f *fakePatientRepo) PullFromArray(string, string, interface{}) error { return nil }

type fakeBookingRepo struct{ store *fakeStore }

func (f *fakeBookingRepo) GetByID(id string) (*models.Booking, error) {
	return f.store.bookings[id], nil
}

func (f *fakeBookingRepo) GetByPatient(patientID string) ([]models.Booking, error) {
	var out []models.Booking
	for _, b := range f.store.bookings {
		if b.PatientID == patientID {
			out = append(out, *b)
		}
	}
	return out, nil
}

func (f *fakeBookingRepo) findSlot(slotID string) *models.Slot {
	for i := range f.store.doctor.Schedules {
		for j := range f.store.doctor.Schedules[i].Slots {
			if f.store.doctor.Schedules[i].Slots[j].ID == slotID {
				return &f.store.doctor.Schedules[i].Slots[j]
			}
		}
	}
	return nil
}

func (f *fakeBookingRepo) BookSlot(_ context.Context, booking *models.Booking) error {
	slot := f.findSlot(booking.SlotID)
	if slot == nil || slot.Status != models.SlotAvailable {
		return bookingRepo.ErrSlotUnavailable
	}
	slot.Status = models.SlotScheduled
	slot.PatientID = booking.PatientID
	slot.BookingID = booking.ID
	copied := *booking
	f.store.bookings[booking.ID] = &copied
	return nil
}

func (f *fakeBookingRepo) CancelBooking(_ context.Context, booking *models.Booking) error {
	stored := f.store.bookings[booking.ID]
	if stored == nil || stored.Status != models.SlotScheduled {
		return bookingRepo.ErrBookingNotCancellable
	}
	stored.Status = models.SlotCancelled
	slot := f.findSlot(booking.SlotID)
	if slot == nil || slot.BookingID != booking.ID {
		return bookingRepo.ErrSlotUnavailable
	}
	slot.Status = models.SlotAvailable
	slot.PatientID = ""
	slot.BookingID = ""
	return nil
}

func newTestService(t *testing.T, date, startClock, endClock string) (*DefaultBookingService, *fakeStore, models.Schedule) {
	t.Helper()

	day, err := scheduling.ParseDate(date)
	if err != nil {
		t.Fatalf("ParseDate: %v", err)
	}
	start, err := scheduling.CombineDateTime(date, startClock)
	if err != nil {
		t.Fatalf("CombineDateTime: %v", err)
	}
	end, err := scheduling.CombineDateTime(date, endClock)
	if err != nil {
		t.Fatalf("CombineDateTime: %v", err)
	}
	slots, err := scheduling.GenerateSlots(start, end)
	if err != nil {
		t.Fatalf("GenerateSlots: %v", err)
	}

	schedule := models.Schedule{
		Date:      day,
		Venue:     "City Clinic",
		StartTime: start,
		EndTime:   end,
		Slots:     slots,
	}
	store := &fakeStore{
		doctor: &models.Doctor{
			ID:             "doc-1",
			Username:       "dr.rao",
			Specialization: "cardiology",
			Schedules:      []models.Schedule{schedule},
		},
		patients: map[string]*models.Patient{
			"pat-1": {ID: "pat-1"},
			"pat-2": {ID: "pat-2"},
		},
		bookings: map[string]*models.Booking{},
	}

	svc := &DefaultBookingService{
		Bookings: &fakeBookingRepo{store: store},
		Doctors:  &fakeDoctorRepo{store: store},
		Patients: &fakePatientRepo{store: store},
	}
	return svc, store, schedule
}

func bookingRequestFor(schedule models.Schedule, slotIdx int) models.BookingRequest {
	slot := schedule.Slots[slotIdx]
	return models.BookingRequest{
		DoctorID:  "doc-1",
		Date:      schedule.Date.Format(scheduling.DateLayout),
		StartTime: slot.StartTime.Format(scheduling.TimeLayout),
		EndTime:   slot.EndTime.Format(scheduling.TimeLayout),
		Venue:     schedule.Venue,
		SlotID:    slot.ID,
	}
}

// futureDate gives a schedule date comfortably ahead of the wall clock, so
// slots never project to completed during the test run.
func futureDate() string {
	return time.Now().AddDate(1, 0, 0).Format(scheduling.DateLayout)
}

func TestBookReservesSlot(t *testing.T) {
	svc, store, schedule := newTestService(t, futureDate(), "09:00", "09:30")

	booking, err := svc.Book(context.Background(), "pat-1", bookingRequestFor(schedule, 0))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if booking.Status != models.SlotScheduled {
		t.Errorf("booking status = %q, want %q", booking.Status, models.SlotScheduled)
	}
	if booking.Venue != schedule.Venue {
		t.Errorf("booking venue = %q, want %q", booking.Venue, schedule.Venue)
	}

	slot := store.doctor.Schedules[0].Slots[0]
	if slot.Status != models.SlotScheduled {
		t.Errorf("slot status = %q, want %q", slot.Status, models.SlotScheduled)
	}
	if slot.BookingID != booking.ID || slot.PatientID != "pat-1" {
		t.Errorf("slot references = (%q, %q), want (%q, %q)", slot.BookingID, slot.PatientID, booking.ID, "pat-1")
	}
}

func TestBookRejectsDoubleBooking(t *testing.T) {
	svc, _, schedule := newTestService(t, futureDate(), "09:00", "09:30")
	req := bookingRequestFor(schedule, 0)

	if _, err := svc.Book(context.Background(), "pat-1", req); err != nil {
		t.Fatalf("first Book: %v", err)
	}

	_, err := svc.Book(context.Background(), "pat-2", req)
	var conflict utils.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("second Book error = %v, want ConflictError", err)
	}
}

func TestBookRejectsMismatchedTimes(t *testing.T) {
	svc, _, schedule := newTestService(t, futureDate(), "09:00", "09:30")
	req := bookingRequestFor(schedule, 0)
	req.EndTime = schedule.Slots[1].EndTime.Format(scheduling.TimeLayout)

	_, err := svc.Book(context.Background(), "pat-1", req)
	var validation utils.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("Book error = %v, want ValidationError", err)
	}
}

func TestBookUnknownEntities(t *testing.T) {
	svc, _, schedule := newTestService(t, futureDate(), "09:00", "09:30")

	cases := []struct {
		name    string
		patient string
		mutate  func(*models.BookingRequest)
	}{
		{"unknown patient", "pat-x", func(r *models.BookingRequest) {}},
		{"unknown doctor", "pat-1", func(r *models.BookingRequest) { r.DoctorID = "doc-x" }},
		{"unknown date", "pat-1", func(r *models.BookingRequest) {
			r.Date = time.Now().AddDate(2, 0, 0).Format(scheduling.DateLayout)
		}},
		{"unknown slot", "pat-1", func(r *models.BookingRequest) { r.SlotID = "slot-x" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := bookingRequestFor(schedule, 0)
			tc.mutate(&req)
			_, err := svc.Book(context.Background(), tc.patient, req)
			var notFound utils.NotFoundError
			if !errors.As(err, &notFound) {
				t.Fatalf("Book error = %v, want NotFoundError", err)
			}
		})
	}
}

func TestCancelReleasesSlot(t *testing.T) {
	svc, store, schedule := newTestService(t, futureDate(), "09:00", "09:30")

	booking, err := svc.Book(context.Background(), "pat-1", bookingRequestFor(schedule, 0))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}
	if err := svc.Cancel(context.Background(), "pat-1", booking.ID); err != nil {
		t.Fatalf("Cancel: %v", err)
	}

	slot := store.doctor.Schedules[0].Slots[0]
	if slot.Status != models.SlotAvailable {
		t.Errorf("slot status after cancel = %q, want %q", slot.Status, models.SlotAvailable)
	}
	if slot.PatientID != "" || slot.BookingID != "" {
		t.Errorf("slot still carries references after cancel")
	}
	if store.bookings[booking.ID].Status != models.SlotCancelled {
		t.Errorf("booking status = %q, want %q", store.bookings[booking.ID].Status, models.SlotCancelled)
	}

	// The released slot is bookable again.
	if _, err := svc.Book(context.Background(), "pat-2", bookingRequestFor(schedule, 0)); err != nil {
		t.Fatalf("rebook after cancel: %v", err)
	}
}

func TestCancelRejectsForeignBooking(t *testing.T) {
	svc, _, schedule := newTestService(t, futureDate(), "09:00", "09:30")

	booking, err := svc.Book(context.Background(), "pat-1", bookingRequestFor(schedule, 0))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	err = svc.Cancel(context.Background(), "pat-2", booking.ID)
	var notFound utils.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("Cancel error = %v, want NotFoundError", err)
	}
}

func TestCancelRejectsCompletedBooking(t *testing.T) {
	svc, store, _ := newTestService(t, futureDate(), "09:00", "09:30")

	// A booking whose slot already ended projects to completed.
	past := time.Now().Add(-time.Hour)
	store.bookings["b-1"] = &models.Booking{
		ID:        "b-1",
		DoctorID:  "doc-1",
		PatientID: "pat-1",
		SlotID:    store.doctor.Schedules[0].Slots[0].ID,
		StartTime: past.Add(-scheduling.SlotDuration),
		EndTime:   past,
		Status:    models.SlotScheduled,
	}

	err := svc.Cancel(context.Background(), "pat-1", "b-1")
	var conflict utils.ConflictError
	if !errors.As(err, &conflict) {
		t.Fatalf("Cancel error = %v, want ConflictError", err)
	}
}

func TestListAppointmentsSkipsCancelledAndProjects(t *testing.T) {
	svc, store, schedule := newTestService(t, futureDate(), "09:00", "09:30")

	booking, err := svc.Book(context.Background(), "pat-1", bookingRequestFor(schedule, 0))
	if err != nil {
		t.Fatalf("Book: %v", err)
	}

	// A second booking that already ended, and a cancelled one.
	past := time.Now().Add(-time.Hour)
	store.bookings["b-done"] = &models.Booking{
		ID: "b-done", DoctorID: "doc-1", PatientID: "pat-1",
		StartTime: past.Add(-scheduling.SlotDuration), EndTime: past,
		Status: models.SlotScheduled,
	}
	store.bookings["b-gone"] = &models.Booking{
		ID: "b-gone", DoctorID: "doc-1", PatientID: "pat-1",
		Status: models.SlotCancelled,
	}

	appointments, err := svc.ListAppointments("pat-1", time.Now())
	if err != nil {
		t.Fatalf("ListAppointments: %v", err)
	}
	if len(appointments) != 2 {
		t.Fatalf("got %d appointments, want 2", len(appointments))
	}

	byID := make(map[string]models.Appointment)
	for _, a := range appointments {
		byID[a.ID] = a
	}
	if _, ok := byID["b-gone"]; ok {
		t.Errorf("cancelled booking included in appointment list")
	}
	if got := byID[booking.ID].Status; got != models.SlotScheduled {
		t.Errorf("upcoming appointment status = %q, want %q", got, models.SlotScheduled)
	}
	if got := byID["b-done"].Status; got != models.SlotCompleted {
		t.Errorf("past appointment status = %q, want %q", got, models.SlotCompleted)
	}
	if got := byID[booking.ID].DoctorName; got != "dr.rao" {
		t.Errorf("appointment doctor name = %q, want %q", got, "dr.rao")
	}
}
