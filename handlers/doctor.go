package handlers

import (
	"net/http"
	"time"

	"carebridge/models"
	doctorSvc "carebridge/services/doctor"
	"carebridge/services/scheduling"
	"carebridge/utils"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
)

// DoctorHandler exposes the doctor portal endpoints.
type DoctorHandler struct {
	DoctorService   doctorSvc.DoctorService
	ScheduleService scheduling.ScheduleService
}

// GetProfileHandler handles GET /api/doctor/profile.
func (h *DoctorHandler) GetProfileHandler(c *gin.Context) {
	doctorID := c.GetString("accountID")
	doctor, err := h.DoctorService.GetProfile(doctorID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// UpdateProfileHandler handles PUT /api/doctor/profile.
func (h *DoctorHandler) UpdateProfileHandler(c *gin.Context) {
	doctorID := c.GetString("accountID")
	var updates bson.M
	if err := c.ShouldBindJSON(&updates); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid update payload", err.Error())
		return
	}

	doctor, err := h.DoctorService.UpdateProfile(doctorID, updates)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doctor)
}

// GetPatientsHandler handles GET /api/doctor/patients.
func (h *DoctorHandler) GetPatientsHandler(c *gin.Context) {
	doctorID := c.GetString("accountID")
	patients, err := h.DoctorService.GetPatients(doctorID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"patients": patients})
}

// RemovePatientHandler handles DELETE /api/doctor/patients/:patientId.
func (h *DoctorHandler) RemovePatientHandler(c *gin.Context) {
	doctorID := c.GetString("accountID")
	patientID := c.Param("patientId")
	if err := h.DoctorService.RemovePatient(doctorID, patientID); err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "patient removed"})
}

// SearchHandler handles GET /api/doctor/search?searchType=...&query=...
func (h *DoctorHandler) SearchHandler(c *gin.Context) {
	searchType := c.DefaultQuery("searchType", "username")
	query := c.Query("query")
	results, err := h.DoctorService.Search(searchType, query)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"doctors": results})
}

// AddScheduleHandler handles POST /api/doctor/add-schedule. The slot list
// for the window is generated server side.
func (h *DoctorHandler) AddScheduleHandler(c *gin.Context) {
	doctorID := c.GetString("accountID")
	var req struct {
		Date      string `json:"date" binding:"required"`
		StartTime string `json:"startTime" binding:"required"`
		EndTime   string `json:"endTime" binding:"required"`
		Venue     string `json:"venue" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid schedule payload", err.Error())
		return
	}

	schedule, err := h.ScheduleService.AddSchedule(doctorID, req.Date, req.StartTime, req.EndTime, req.Venue)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, schedule)
}

// GetSchedulesHandler handles GET /api/doctor/schedules.
func (h *DoctorHandler) GetSchedulesHandler(c *gin.Context) {
	doctorID := c.GetString("accountID")
	schedules, err := h.ScheduleService.GetSchedules(doctorID, time.Now())
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"schedules": schedules})
}

// UpdateSlotStatusHandler handles PUT /api/doctor/update-slot.
func (h *DoctorHandler) UpdateSlotStatusHandler(c *gin.Context) {
	doctorID := c.GetString("accountID")
	var req struct {
		SlotID    string `json:"slotId" binding:"required"`
		Status    string `json:"status" binding:"required"`
		PatientID string `json:"patientId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid slot payload", err.Error())
		return
	}

	err := h.ScheduleService.UpdateSlotStatus(doctorID, req.SlotID, models.SlotStatus(req.Status), req.PatientID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "slot updated"})
}

// AddAllergyHandler handles POST /api/doctor/patients/:patientId/allergies.
func (h *DoctorHandler) AddAllergyHandler(c *gin.Context) {
	patientID := c.Param("patientId")
	var req struct {
		Allergy string `json:"allergy" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	patient, err := h.DoctorService.AddAllergy(patientID, req.Allergy)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// RemoveAllergyHandler handles DELETE /api/doctor/patients/:patientId/allergies.
func (h *DoctorHandler) RemoveAllergyHandler(c *gin.Context) {
	patientID := c.Param("patientId")
	var req struct {
		Allergy string `json:"allergy" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	patient, err := h.DoctorService.RemoveAllergy(patientID, req.Allergy)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// AddMedicationHandler handles POST /api/doctor/patients/:patientId/medications.
func (h *DoctorHandler) AddMedicationHandler(c *gin.Context) {
	patientID := c.Param("patientId")
	var req struct {
		Medication string `json:"medication" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	patient, err := h.DoctorService.AddMedication(patientID, req.Medication)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// RemoveMedicationHandler handles DELETE /api/doctor/patients/:patientId/medications.
func (h *DoctorHandler) RemoveMedicationHandler(c *gin.Context) {
	patientID := c.Param("patientId")
	var req struct {
		Medication string `json:"medication" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}
	patient, err := h.DoctorService.RemoveMedication(patientID, req.Medication)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// AddMedicalHistoryHandler handles POST /api/doctor/patients/:patientId/medical-history.
func (h *DoctorHandler) AddMedicalHistoryHandler(c *gin.Context) {
	patientID := c.Param("patientId")
	var req struct {
		Disease string `json:"disease" binding:"required"`
		Date    string `json:"date"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid payload", err.Error())
		return
	}

	entryDate := time.Now()
	if req.Date != "" {
		parsed, err := scheduling.ParseDate(req.Date)
		if err != nil {
			utils.RespondError(c, err)
			return
		}
		entryDate = parsed
	}

	patient, err := h.DoctorService.AddMedicalHistory(patientID, req.Disease, entryDate)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}

// DeleteMedicalHistoryHandler handles DELETE /api/doctor/patients/:patientId/medical-history/:entryId.
func (h *DoctorHandler) DeleteMedicalHistoryHandler(c *gin.Context) {
	patientID := c.Param("patientId")
	entryID := c.Param("entryId")
	patient, err := h.DoctorService.DeleteMedicalHistory(patientID, entryID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, patient)
}
