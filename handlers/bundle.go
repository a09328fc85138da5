package handlers

import (
	"github.com/gin-gonic/gin"
)

// HandlerBundle groups all endpoint handlers into one struct for route setup.
type HandlerBundle struct {
	// Auth endpoints
	RegisterHandler gin.HandlerFunc
	LoginHandler    gin.HandlerFunc
	ValidateHandler gin.HandlerFunc

	// Doctor endpoints
	GetDoctorProfileHandler    gin.HandlerFunc
	UpdateDoctorProfileHandler gin.HandlerFunc
	GetDoctorPatientsHandler   gin.HandlerFunc
	RemovePatientHandler       gin.HandlerFunc
	SearchDoctorsHandler       gin.HandlerFunc
	AddScheduleHandler         gin.HandlerFunc
	GetSchedulesHandler        gin.HandlerFunc
	UpdateSlotStatusHandler    gin.HandlerFunc

	// Doctor edits on patient records
	AddAllergyHandler           gin.HandlerFunc
	RemoveAllergyHandler        gin.HandlerFunc
	AddMedicationHandler        gin.HandlerFunc
	RemoveMedicationHandler     gin.HandlerFunc
	AddMedicalHistoryHandler    gin.HandlerFunc
	DeleteMedicalHistoryHandler gin.HandlerFunc

	// Patient endpoints
	GetPatientProfileHandler      gin.HandlerFunc
	UpdatePatientProfileHandler   gin.HandlerFunc
	GetPatientFilesHandler        gin.HandlerFunc
	UploadPatientFilesHandler     gin.HandlerFunc
	DeletePatientFileHandler      gin.HandlerFunc
	GetAllDoctorsHandler          gin.HandlerFunc
	GetDoctorDetailsHandler       gin.HandlerFunc
	GetDoctorSchedulesHandler     gin.HandlerFunc
	BookSlotHandler               gin.HandlerFunc
	CancelBookingHandler          gin.HandlerFunc
	ListAppointmentsHandler       gin.HandlerFunc

	// Pharmacist endpoints
	GetPharmacistProfileHandler    gin.HandlerFunc
	UpdatePharmacistProfileHandler gin.HandlerFunc

	// Prescription endpoints
	CreatePrescriptionHandler  gin.HandlerFunc
	GetPrescriptionsHandler    gin.HandlerFunc
	GetPrescriptionByIDHandler gin.HandlerFunc
}

// NewHandlerBundle assembles the bundle from the domain handlers.
func NewHandlerBundle(
	auth *AuthHandler,
	doctor *DoctorHandler,
	patient *PatientHandler,
	pharmacist *PharmacistHandler,
	prescription *PrescriptionHandler,
) *HandlerBundle {
	return &HandlerBundle{
		RegisterHandler: auth.RegisterHandler,
		LoginHandler:    auth.LoginHandler,
		ValidateHandler: auth.ValidateHandler,

		GetDoctorProfileHandler:    doctor.GetProfileHandler,
		UpdateDoctorProfileHandler: doctor.UpdateProfileHandler,
		GetDoctorPatientsHandler:   doctor.GetPatientsHandler,
		RemovePatientHandler:       doctor.RemovePatientHandler,
		SearchDoctorsHandler:       doctor.SearchHandler,
		AddScheduleHandler:         doctor.AddScheduleHandler,
		GetSchedulesHandler:        doctor.GetSchedulesHandler,
		UpdateSlotStatusHandler:    doctor.UpdateSlotStatusHandler,

		AddAllergyHandler:           doctor.AddAllergyHandler,
		RemoveAllergyHandler:        doctor.RemoveAllergyHandler,
		AddMedicationHandler:        doctor.AddMedicationHandler,
		RemoveMedicationHandler:     doctor.RemoveMedicationHandler,
		AddMedicalHistoryHandler:    doctor.AddMedicalHistoryHandler,
		DeleteMedicalHistoryHandler: doctor.DeleteMedicalHistoryHandler,

		GetPatientProfileHandler:    patient.GetProfileHandler,
		UpdatePatientProfileHandler: patient.UpdateProfileHandler,
		GetPatientFilesHandler:      patient.GetFilesHandler,
		UploadPatientFilesHandler:   patient.UploadFilesHandler,
		DeletePatientFileHandler:    patient.DeleteFileHandler,
		GetAllDoctorsHandler:        patient.GetAllDoctorsHandler,
		GetDoctorDetailsHandler:     patient.GetDoctorDetailsHandler,
		GetDoctorSchedulesHandler:   patient.GetDoctorSchedulesHandler,
		BookSlotHandler:             patient.BookSlotHandler,
		CancelBookingHandler:        patient.CancelBookingHandler,
		ListAppointmentsHandler:     patient.ListAppointmentsHandler,

		GetPharmacistProfileHandler:    pharmacist.GetProfileHandler,
		UpdatePharmacistProfileHandler: pharmacist.UpdateProfileHandler,

		CreatePrescriptionHandler:  prescription.CreatePrescriptionHandler,
		GetPrescriptionsHandler:    prescription.GetPrescriptionsHandler,
		GetPrescriptionByIDHandler: prescription.GetPrescriptionByIDHandler,
	}
}
