package doctorRepo

import (
	"time"

	"carebridge/models"

	"go.mongodb.org/mongo-driver/bson"
)

// DoctorRepository defines persistence operations for doctor accounts and
// their embedded clinic schedules.
type DoctorRepository interface {
	Create(doctor *models.Doctor) error
	Update(doctor *models.Doctor) error
	Delete(id string) error
	GetByIDWithProjection(id string, projection bson.M) (*models.Doctor, error)
	GetByEmailWithProjection(email string, projection bson.M) (*models.Doctor, error)
	UpdateSetDocument(id string, updateDoc bson.M) error

	// Patient roster.
	AddPatient(doctorID, patientID string) error
	RemovePatient(doctorID, patientID string) error

	// Discovery.
	Search(searchType, query string) ([]models.DoctorPublic, error)
	GetPage(page, limit int) (*models.DoctorPage, error)

	// Schedule store. UpsertSchedule replaces the entry for the schedule's
	// date; GetSchedules returns entries sorted by date ascending.
	UpsertSchedule(doctorID string, schedule models.Schedule) error
	GetSchedules(doctorID string) ([]models.Schedule, error)
	GetScheduleByDate(doctorID string, date time.Time) (*models.Schedule, error)
	UpdateSlotStatus(doctorID, slotID string, status models.SlotStatus, patientID string) error
}
