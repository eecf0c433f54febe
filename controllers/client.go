package controllers

import (
	"net/http"

	"github.com/Kevbec/SalonManager/models"
	"github.com/Kevbec/SalonManager/store"
	"github.com/Kevbec/SalonManager/utils"
	"github.com/gin-gonic/gin"
)

// CreateClientInput defines the expected JSON structure for creating a client
type CreateClientInput struct {
	Name  string `json:"name" binding:"required"`
	Type  string `json:"type" binding:"required"`
	Notes string `json:"notes"`
}

// UpdateClientInput defines the expected JSON structure for updating a client
type UpdateClientInput struct {
	Name  *string `json:"name"`
	Type  *string `json:"type"`
	Notes *string `json:"notes"`
}

// CreateClient adds a new client to the caller's roster
func CreateClient(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var input CreateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	client := models.Client{
		Name:  input.Name,
		Type:  models.ClientType(input.Type),
		Notes: input.Notes,
	}

	applied, err := s.Dispatch(c.Request.Context(), store.AddClient{Client: client})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, applied.(store.AddClient).Client)
}

// GetClients retrieves the caller's full roster
func GetClients(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, s.State().Clients)
}

// GetClient retrieves a specific client by ID
func GetClient(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	for _, client := range s.State().Clients {
		if client.ID == c.Param("id") {
			c.JSON(http.StatusOK, client)
			return
		}
	}

	utils.RespondWithError(c, http.StatusNotFound, "Client not found")
}

// UpdateClient updates an existing client
func UpdateClient(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var input UpdateClientInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var client *models.Client
	for _, existing := range s.State().Clients {
		if existing.ID == c.Param("id") {
			client = &existing
			break
		}
	}
	if client == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Client not found")
		return
	}

	if input.Name != nil {
		client.Name = *input.Name
	}
	if input.Type != nil {
		client.Type = models.ClientType(*input.Type)
	}
	if input.Notes != nil {
		client.Notes = *input.Notes
	}

	applied, err := s.Dispatch(c.Request.Context(), store.UpdateClient{Client: *client})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, applied.(store.UpdateClient).Client)
}

// DeleteClient removes a client. Services referencing it are deliberately
// left in place; the response reports how many were orphaned.
func DeleteClient(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if _, err := s.Dispatch(c.Request.Context(), store.DeleteClient{ID: id}); err != nil {
		respondStoreError(c, err)
		return
	}

	orphaned := 0
	for _, service := range s.State().Services {
		if service.ClientID == id {
			orphaned++
		}
	}

	c.JSON(http.StatusOK, gin.H{
		"message":          "Client deleted successfully",
		"orphanedServices": orphaned,
	})
}

// ToggleFavorite flips the favorite flag on a client
func ToggleFavorite(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	id := c.Param("id")
	if _, err := s.Dispatch(c.Request.Context(), store.ToggleFavorite{ID: id}); err != nil {
		respondStoreError(c, err)
		return
	}

	for _, client := range s.State().Clients {
		if client.ID == id {
			c.JSON(http.StatusOK, client)
			return
		}
	}

	utils.RespondWithError(c, http.StatusNotFound, "Client not found")
}
