package controllers

import (
	"net/http"
	"sort"

	"github.com/Kevbec/SalonManager/models"
	"github.com/Kevbec/SalonManager/store"
	"github.com/Kevbec/SalonManager/utils"
	"github.com/gin-gonic/gin"
)

// CreateServiceInput defines the expected JSON structure for recording a service
type CreateServiceInput struct {
	ClientID string   `json:"clientId" binding:"required"`
	Types    []string `json:"types" binding:"required"`
	Products string   `json:"products"`
	Price    *float64 `json:"price" binding:"required"`
	Date     string   `json:"date" binding:"required"`
	Duration int      `json:"duration"`
	Notes    string   `json:"notes"`
}

// UpdateServiceInput defines the expected JSON structure for updating a service
type UpdateServiceInput struct {
	Types    *[]string `json:"types"`
	Products *string   `json:"products"`
	Price    *float64  `json:"price"`
	Date     *string   `json:"date"`
	Duration *int      `json:"duration"`
	Notes    *string   `json:"notes"`
}

func serviceTypes(values []string) []models.ServiceType {
	types := make([]models.ServiceType, len(values))
	for i, v := range values {
		types[i] = models.ServiceType(v)
	}
	return types
}

// CreateService records a performed service for a client
func CreateService(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var input CreateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	date, err := csvDate(input.Date)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	service := models.Service{
		ClientID: input.ClientID,
		Types:    serviceTypes(input.Types),
		Products: input.Products,
		Price:    *input.Price,
		Date:     date,
		Duration: input.Duration,
		Notes:    input.Notes,
	}

	applied, err := s.Dispatch(c.Request.Context(), store.AddService{Service: service})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusCreated, applied.(store.AddService).Service)
}

// GetServices retrieves the caller's full service history
func GetServices(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, s.State().Services)
}

// GetService retrieves a specific service by ID
func GetService(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	for _, service := range s.State().Services {
		if service.ID == c.Param("id") {
			c.JSON(http.StatusOK, service)
			return
		}
	}

	utils.RespondWithError(c, http.StatusNotFound, "Service not found")
}

// GetClientServices lists one client's services, most recent first
func GetClientServices(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	clientID := c.Param("id")
	var services []models.Service
	for _, service := range s.State().Services {
		if service.ClientID == clientID {
			services = append(services, service)
		}
	}
	sort.Slice(services, func(i, j int) bool {
		return services[i].Date > services[j].Date
	})

	c.JSON(http.StatusOK, services)
}

// UpdateService updates an existing service
func UpdateService(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	var input UpdateServiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Invalid input: "+err.Error())
		return
	}

	var service *models.Service
	for _, existing := range s.State().Services {
		if existing.ID == c.Param("id") {
			service = &existing
			break
		}
	}
	if service == nil {
		utils.RespondWithError(c, http.StatusNotFound, "Service not found")
		return
	}

	if input.Types != nil {
		service.Types = serviceTypes(*input.Types)
		service.Name = models.JoinServiceTypes(service.Types)
	}
	if input.Products != nil {
		service.Products = *input.Products
	}
	if input.Price != nil {
		service.Price = *input.Price
	}
	if input.Date != nil {
		date, err := csvDate(*input.Date)
		if err != nil {
			utils.RespondWithError(c, http.StatusBadRequest, err.Error())
			return
		}
		service.Date = date
	}
	if input.Duration != nil {
		service.Duration = *input.Duration
	}
	if input.Notes != nil {
		service.Notes = *input.Notes
	}

	applied, err := s.Dispatch(c.Request.Context(), store.UpdateService{Service: *service})
	if err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, applied.(store.UpdateService).Service)
}

// DeleteService removes a service and refreshes derived visit dates
func DeleteService(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	if _, err := s.Dispatch(c.Request.Context(), store.DeleteService{ID: c.Param("id")}); err != nil {
		respondStoreError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Service deleted successfully"})
}
