package handlers

import (
	"net/http"
	"strconv"
	"time"

	"carebridge/models"
	bookingSvc "carebridge/services/booking"
	patientSvc "carebridge/services/patient"
	"carebridge/utils"

	"github.com/gin-gonic/gin"
)

// PatientHandler exposes the patient portal endpoints.
type PatientHandler struct {
	PatientService patientSvc.PatientService
	BookingService bookingSvc.BookingService
}

// GetProfileHandler handles GET /api/patients/profile.
func (h *PatientHandler) GetProfileHandler(c *gin.Context) {
	patientID := c.GetString("accountID")
	patient, err := h.PatientService.GetProfile(patientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// UpdateProfileHandler handles PUT /api/patients/profile.
func (h *PatientHandler) UpdateProfileHandler(c *gin.Context) {
	patientID := c.GetString("accountID")
	var update patientSvc.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid update payload", err.Error())
		return
	}

	patient, err := h.PatientService.UpdateProfile(patientID, update)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// GetFilesHandler handles GET /api/patients/files?fileType=...
func (h *PatientHandler) GetFilesHandler(c *gin.Context) {
	patientID := c.GetString("accountID")
	fileType := c.Query("fileType")
	files, err := h.PatientService.GetFiles(patientID, fileType)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"files": files})
}

// UploadFilesHandler handles POST /api/patients/files.
func (h *PatientHandler) UploadFilesHandler(c *gin.Context) {
	patientID := c.GetString("accountID")
	var req struct {
		FileType string                  `json:"fileType" binding:"required"`
		Files    []patientSvc.FileUpload `json:"files" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid upload payload", err.Error())
		return
	}

	if err := h.PatientService.UploadFiles(patientID, req.FileType, req.Files); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "files saved"})
}

// DeleteFileHandler handles DELETE /api/patients/files/:fileId?fileType=...
func (h *PatientHandler) DeleteFileHandler(c *gin.Context) {
	patientID := c.GetString("accountID")
	fileID := c.Param("fileId")
	fileType := c.Query("fileType")

	if err := h.PatientService.DeleteFile(patientID, fileType, fileID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "file deleted"})
}

// GetAllDoctorsHandler handles GET /api/patients/doctors?page=...&limit=...
func (h *PatientHandler) GetAllDoctorsHandler(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	result, err := h.PatientService.GetAllDoctors(page, limit)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, result)
}

// GetDoctorDetailsHandler handles GET /api/patients/doctor/:doctorId.
func (h *PatientHandler) GetDoctorDetailsHandler(c *gin.Context) {
	doctorID := c.Param("doctorId")
	doctor, err := h.PatientService.GetDoctorDetails(doctorID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// GetDoctorSchedulesHandler handles GET /api/patients/doctor/schedule/:doctorId.
func (h *PatientHandler) GetDoctorSchedulesHandler(c *gin.Context) {
	doctorID := c.Param("doctorId")
	schedules, err := h.PatientService.GetDoctorSchedules(doctorID, time.Now())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

// BookSlotHandler handles POST /api/patients/book.
func (h *PatientHandler) BookSlotHandler(c *gin.Context) {
	patientID := c.GetString("accountID")
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid booking payload", err.Error())
		return
	}

	booking, err := h.BookingService.Book(c.Request.Context(), patientID, req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

// CancelBookingHandler handles PUT /api/patients/cancel/:appointmentId.
func (h *PatientHandler) CancelBookingHandler(c *gin.Context) {
	patientID := c.GetString("accountID")
	bookingID := c.Param("appointmentId")

	if err := h.BookingService.Cancel(c.Request.Context(), patientID, bookingID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appointment cancelled"})
}

// ListAppointmentsHandler handles GET /api/patients/patient.
func (h *PatientHandler) ListAppointmentsHandler(c *gin.Context) {
	patientID := c.GetString("accountID")
	appointments, err := h.BookingService.ListAppointments(patientID, time.Now())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"appointments": appointments})
}
