package handlers

import (
	"net/http"

	prescriptionSvc "carebridge/services/prescription"
	"carebridge/utils"

	"github.com/gin-gonic/gin"
)

// PrescriptionHandler exposes prescription record endpoints.
type PrescriptionHandler struct {
	PrescriptionService prescriptionSvc.PrescriptionService
}

// CreatePrescriptionHandler handles POST /api/prescription/files.
func (h *PrescriptionHandler) CreatePrescriptionHandler(c *gin.Context) {
	var req prescriptionSvc.CreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid prescription payload", err.Error())
		return
	}

	prescription, err := h.PrescriptionService.Create(req)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, prescription)
}

// GetPrescriptionsHandler handles GET /api/prescription/files.
func (h *PrescriptionHandler) GetPrescriptionsHandler(c *gin.Context) {
	prescriptions, err := h.PrescriptionService.GetAll()
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"prescriptions": prescriptions})
}

// GetPrescriptionByIDHandler handles GET /api/prescription/files/:prescriptionId.
func (h *PrescriptionHandler) GetPrescriptionByIDHandler(c *gin.Context) {
	prescriptionID := c.Param("prescriptionId")
	prescription, err := h.PrescriptionService.GetByID(prescriptionID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, prescription)
}
