package controllers

import (
	"net/http"
	"testing"

	"github.com/Kevbec/SalonManager/models"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func createService(t *testing.T, r *gin.Engine, clientID, date string, price float64, types ...string) models.Service {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/services", gin.H{
		"clientId": clientID,
		"types":    types,
		"price":    price,
		"date":     date,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode[models.Service](t, w)
}

func TestCreateServiceUpdatesLastVisit(t *testing.T) {
	r := newTestRouter(t)
	client := createClient(t, r, "Alice", "femme")

	created := createService(t, r, client.ID, "15/03/2024", 35, "coupe", "brushing")
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "2024-03-15", created.Date)
	assert.Equal(t, "coupe, brushing", created.Name)

	w := doJSON(t, r, http.MethodGet, "/api/clients/"+client.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-03-15", decode[models.Client](t, w).LastVisit)
}

func TestCreateServiceRejectsBadDate(t *testing.T) {
	r := newTestRouter(t)
	client := createClient(t, r, "Alice", "femme")

	w := doJSON(t, r, http.MethodPost, "/api/services", gin.H{
		"clientId": client.ID,
		"types":    []string{"coupe"},
		"price":    35,
		"date":     "2024/03/15",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateServicePartialFields(t *testing.T) {
	r := newTestRouter(t)
	client := createClient(t, r, "Alice", "femme")
	created := createService(t, r, client.ID, "2024-03-15", 35, "coupe")

	w := doJSON(t, r, http.MethodPut, "/api/services/"+created.ID, gin.H{
		"types": []string{"coloration"},
		"price": 60,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	updated := decode[models.Service](t, w)
	assert.Equal(t, []models.ServiceType{models.ServiceColoration}, updated.Types)
	assert.Equal(t, "coloration", updated.Name)
	assert.Equal(t, 60.0, updated.Price)
	assert.Equal(t, "2024-03-15", updated.Date)
}

func TestGetClientServicesSortedByDateDesc(t *testing.T) {
	r := newTestRouter(t)
	client := createClient(t, r, "Alice", "femme")
	createService(t, r, client.ID, "2024-01-10", 20, "coupe")
	createService(t, r, client.ID, "2024-06-01", 40, "coloration")
	createService(t, r, client.ID, "2024-03-15", 35, "brushing")

	w := doJSON(t, r, http.MethodGet, "/api/clients/"+client.ID+"/services", nil)
	require.Equal(t, http.StatusOK, w.Code)
	services := decode[[]models.Service](t, w)
	require.Len(t, services, 3)
	assert.Equal(t, "2024-06-01", services[0].Date)
	assert.Equal(t, "2024-03-15", services[1].Date)
	assert.Equal(t, "2024-01-10", services[2].Date)
}

func TestDeleteServiceRefreshesLastVisit(t *testing.T) {
	r := newTestRouter(t)
	client := createClient(t, r, "Alice", "femme")
	createService(t, r, client.ID, "2024-03-15", 35, "coupe")
	latest := createService(t, r, client.ID, "2024-06-01", 40, "coupe")

	w := doJSON(t, r, http.MethodDelete, "/api/services/"+latest.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/clients/"+client.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "2024-03-15", decode[models.Client](t, w).LastVisit)
}

func TestSettingsLifecycle(t *testing.T) {
	r := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/settings", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MonSalon", decode[models.SalonSettings](t, w).Name)

	w = doJSON(t, r, http.MethodPut, "/api/settings", gin.H{
		"name":       "Salon Lumiere",
		"city":       "Lyon",
		"postalCode": "69001",
		"phone":      "0478123456",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Salon Lumiere", decode[models.SalonSettings](t, w).Name)

	w = doJSON(t, r, http.MethodPut, "/api/settings", gin.H{
		"name":  "Salon",
		"phone": "04-78-12-34-56",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
