package controllers

import (
	"fmt"
	"io"
	"net/http"

	"github.com/Kevbec/SalonManager/csvio"
	"github.com/Kevbec/SalonManager/models"
	"github.com/Kevbec/SalonManager/store"
	"github.com/Kevbec/SalonManager/utils"
	"github.com/gin-gonic/gin"
)

// ImportStatus summarizes one import run. Rows that failed at the gateway
// are reported individually; the loop never stops on them.
type ImportStatus struct {
	Total   int      `json:"total"`
	Success int      `json:"success"`
	Errors  []string `json:"errors"`
}

func csvDate(value string) (string, error) {
	return csvio.NormalizeDate(value)
}

// readCSVBody accepts either a multipart "file" field or a raw text body.
func readCSVBody(c *gin.Context) (string, error) {
	if file, err := c.FormFile("file"); err == nil {
		f, err := file.Open()
		if err != nil {
			return "", err
		}
		defer f.Close()
		content, err := io.ReadAll(f)
		if err != nil {
			return "", err
		}
		return string(content), nil
	}

	content, err := io.ReadAll(c.Request.Body)
	if err != nil {
		return "", err
	}
	return string(content), nil
}

// ImportClients parses a client CSV and dispatches the rows one by one.
// Parse errors abort the whole import before anything is written.
func ImportClients(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	content, err := readCSVBody(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read file: "+err.Error())
		return
	}

	result := csvio.Parse(content, csvio.ClientFields())
	if len(result.Errors) > 0 {
		c.JSON(http.StatusBadRequest, ImportStatus{Errors: result.Errors})
		return
	}

	status := ImportStatus{Total: len(result.Rows)}
	for i, row := range result.Rows {
		client := models.Client{
			Name:  row.String("name"),
			Type:  models.ClientType(row.String("type")),
			Notes: row.String("notes"),
		}
		// Rows are awaited one at a time so at most one mutation is in
		// flight against the session state.
		if _, err := s.Dispatch(c.Request.Context(), store.AddClient{Client: client}); err != nil {
			status.Errors = append(status.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		status.Success++
	}

	c.JSON(http.StatusOK, status)
}

// ImportServices parses a service CSV and dispatches the rows one by one.
func ImportServices(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	content, err := readCSVBody(c)
	if err != nil {
		utils.RespondWithError(c, http.StatusBadRequest, "Failed to read file: "+err.Error())
		return
	}

	result := csvio.Parse(content, csvio.ServiceFields())
	if len(result.Errors) > 0 {
		c.JSON(http.StatusBadRequest, ImportStatus{Errors: result.Errors})
		return
	}

	status := ImportStatus{Total: len(result.Rows)}
	for i, row := range result.Rows {
		service := models.Service{
			ClientID: row.String("clientId"),
			Name:     row.String("types"),
			Types:    models.SplitServiceTypes(row.String("types")),
			Price:    row.Float("price"),
			Date:     row.String("date"),
			Duration: row.Int("duration"),
			Products: row.String("products"),
			Notes:    row.String("notes"),
		}
		if _, err := s.Dispatch(c.Request.Context(), store.AddService{Service: service}); err != nil {
			status.Errors = append(status.Errors, fmt.Sprintf("row %d: %v", i+2, err))
			continue
		}
		status.Success++
	}

	c.JSON(http.StatusOK, status)
}

// ExportClients streams the roster as a CSV attachment.
func ExportClients(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="clients.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvio.ExportClients(s.State().Clients)))
}

// ExportServices streams the service history as a CSV attachment.
func ExportServices(c *gin.Context) {
	s, ok := session(c)
	if !ok {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="prestations.csv"`)
	c.Data(http.StatusOK, "text/csv; charset=utf-8", []byte(csvio.ExportServices(s.State().Services)))
}
