package routes

import (
	"net/http"
	"time"

	"carebridge/handlers"
	"carebridge/middleware"
	"carebridge/models"
	"carebridge/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// RegisterAuthRoutes registers registration, login and token validation.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.RegisterHandler)
		api.POST("/login", hb.LoginHandler)

		api.GET("/validate-token", middleware.JWTAuthMiddleware(), hb.ValidateHandler)
	}
}

// RegisterDoctorRoutes registers the doctor portal endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctor")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RoleDoctor))

		api.GET("/profile", hb.GetDoctorProfileHandler)
		api.PUT("/profile", hb.UpdateDoctorProfileHandler)

		api.POST("/add-schedule", hb.AddScheduleHandler)
		api.GET("/schedules", hb.GetSchedulesHandler)
		api.PUT("/update-slot", hb.UpdateSlotStatusHandler)

		api.GET("/search", hb.SearchDoctorsHandler)

		api.GET("/patients", hb.GetDoctorPatientsHandler)
		api.DELETE("/patients/:patientId", hb.RemovePatientHandler)

		api.POST("/patients/:patientId/allergies", hb.AddAllergyHandler)
		api.DELETE("/patients/:patientId/allergies", hb.RemoveAllergyHandler)
		api.POST("/patients/:patientId/medications", hb.AddMedicationHandler)
		api.DELETE("/patients/:patientId/medications", hb.RemoveMedicationHandler)
		api.POST("/patients/:patientId/medical-history", hb.AddMedicalHistoryHandler)
		api.DELETE("/patients/:patientId/medical-history/:entryId", hb.DeleteMedicalHistoryHandler)
	}
}

// RegisterPatientRoutes registers the patient portal endpoints, including
// doctor discovery and appointment booking.
func RegisterPatientRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/patients")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RolePatient))

		api.GET("/profile", hb.GetPatientProfileHandler)
		api.PUT("/profile", hb.UpdatePatientProfileHandler)

		api.GET("/files", hb.GetPatientFilesHandler)
		api.POST("/files", hb.UploadPatientFilesHandler)
		api.DELETE("/files/:fileId", hb.DeletePatientFileHandler)

		api.GET("/doctors", hb.GetAllDoctorsHandler)
		api.GET("/doctor/:doctorId", hb.GetDoctorDetailsHandler)
		api.GET("/doctor/schedule/:doctorId", hb.GetDoctorSchedulesHandler)

		api.POST("/book", hb.BookSlotHandler)
		api.PUT("/cancel/:appointmentId", hb.CancelBookingHandler)
		api.GET("/patient", hb.ListAppointmentsHandler)
	}
}

// RegisterPharmacistRoutes registers the pharmacist portal endpoints.
func RegisterPharmacistRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/pharmacist")
	{
		api.Use(middleware.JWTAuthMiddleware(), middleware.RequireRole(models.RolePharmacist))

		api.GET("/profile", hb.GetPharmacistProfileHandler)
		api.PUT("/profile", hb.UpdatePharmacistProfileHandler)
	}
}

// RegisterPrescriptionRoutes registers prescription record endpoints. Reads
// are shared by doctors and pharmacists; creation is pharmacist only.
func RegisterPrescriptionRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/prescription")
	{
		api.Use(middleware.JWTAuthMiddleware())

		api.POST("/files", middleware.RequireRole(models.RolePharmacist), hb.CreatePrescriptionHandler)
		api.GET("/files", middleware.RequireRole(models.RoleDoctor, models.RolePharmacist), hb.GetPrescriptionsHandler)
		api.GET("/files/:prescriptionId", middleware.RequireRole(models.RoleDoctor, models.RolePharmacist), hb.GetPrescriptionByIDHandler)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":       "ok",
			"message":      "carebridge is up",
			"dependencies": utils.GetHealthStatus(),
		})
	})
}

// RegisterRoutes centralizes registration of all endpoints and middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterPatientRoutes(r, hb)
	RegisterPharmacistRoutes(r, hb)
	RegisterPrescriptionRoutes(r, hb)
}
