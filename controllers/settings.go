package controllers

import (
	"net/http"

	"github.com/Kevbec/SalonManager/models"
	"github.com/Kevbec/SalonManager/store"
	"github.com/Kevbec/SalonManager/utils"
	"github.com/gin-gonic/gin"
)

// UpdateSettingsInput defines the expected JSON structure for the salon settings form
type UpdateSettingsInput struct {
	Name       string `json:"name" binding:"required"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
}

// GetSettings returns the caller's salon settings record
func GetSettings(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	settings := s.State().Settings
	if settings == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Settings not found")
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings replaces the salon settings record
func UpdateSettings(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var input UpdateSettingsInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	settings := models.SalonSettings{
		Name:       input.Name,
		Address:    input.Address,
		City:       input.City,
		PostalCode: input.PostalCode,
		Phone:      input.Phone,
	}

	applied, err := s.Dispatch(c.Request.Context(), store.UpdateSettings{Settings: settings})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, applied.(store.UpdateSettings).Settings)
}
