package handlers

import (
	"net/http"

	pharmacistSvc "carebridge/services/pharmacist"
	"carebridge/utils"

	"github.com/gin-gonic/gin"
)

// PharmacistHandler exposes the pharmacist portal endpoints.
type PharmacistHandler struct {
	PharmacistService pharmacistSvc.PharmacistService
}

// GetProfileHandler handles GET /api/pharmacist/profile.
func (h *PharmacistHandler) GetProfileHandler(c *gin.Context) {
	pharmacistID := c.GetString("accountID")
	pharmacist, err := h.PharmacistService.GetProfile(pharmacistID)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pharmacist)
}

// UpdateProfileHandler handles PUT /api/pharmacist/profile.
func (h *PharmacistHandler) UpdateProfileHandler(c *gin.Context) {
	pharmacistID := c.GetString("accountID")
	var update pharmacistSvc.ProfileUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid update payload", err.Error())
		return
	}

	pharmacist, err := h.PharmacistService.UpdateProfile(pharmacistID, update)
	if err != nil {
		utils.RespondError(c, err)
		return
	}
	c.JSON(http.StatusOK, pharmacist)
}
