package store

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/Kevbec/SalonManager/models"
)

// Document construction. Each builder emits the exact field set the
// persistence schema expects instead of pruning a dynamic object: absent
// optionals are omitted (client) or written as explicit nulls (service),
// matching what the collections have always stored. The document never
// carries its own id; that lives on the surrounding record.

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}

// normalizeClient trims free text and stamps ownership and timestamps
// before validation and persistence.
func normalizeClient(c *models.Client, ownerID string) {
	c.UserID = ownerID
	c.Name = strings.TrimSpace(c.Name)
	c.Notes = strings.TrimSpace(c.Notes)
	if c.CreatedAt == "" {
		c.CreatedAt = nowISO()
	}
	c.UpdatedAt = nowISO()
}

func clientDoc(c models.Client) map[string]any {
	doc := map[string]any{
		"userId":     c.UserID,
		"name":       c.Name,
		"type":       string(c.Type),
		"isFavorite": c.IsFavorite,
		"createdAt":  c.CreatedAt,
		"updatedAt":  c.UpdatedAt,
	}
	if c.Notes != "" {
		doc["notes"] = c.Notes
	}
	if c.LastVisit != "" {
		doc["lastVisit"] = c.LastVisit
	}
	return doc
}

func normalizeService(s *models.Service, ownerID string) {
	s.UserID = ownerID
	s.Name = strings.TrimSpace(s.Name)
	if s.Name == "" {
		s.Name = models.JoinServiceTypes(s.Types)
	}
	s.Products = strings.TrimSpace(s.Products)
	s.Notes = strings.TrimSpace(s.Notes)
	if s.CreatedAt == "" {
		s.CreatedAt = nowISO()
	}
	s.UpdatedAt = nowISO()
}

func serviceDoc(s models.Service) map[string]any {
	types := make([]any, len(s.Types))
	for i, t := range s.Types {
		types[i] = string(t)
	}
	doc := map[string]any{
		"userId":    s.UserID,
		"clientId":  s.ClientID,
		"name":      s.Name,
		"types":     types,
		"price":     s.Price,
		"date":      s.Date,
		"products":  nil,
		"duration":  nil,
		"notes":     nil,
		"createdAt": s.CreatedAt,
		"updatedAt": s.UpdatedAt,
	}
	if s.Products != "" {
		doc["products"] = s.Products
	}
	if s.Duration > 0 {
		doc["duration"] = s.Duration
	}
	if s.Notes != "" {
		doc["notes"] = s.Notes
	}
	return doc
}

func normalizeSettings(st *models.SalonSettings, ownerID string) {
	st.UserID = ownerID
	st.Name = strings.TrimSpace(st.Name)
	st.Address = strings.TrimSpace(st.Address)
	st.City = strings.TrimSpace(st.City)
	st.PostalCode = strings.TrimSpace(st.PostalCode)
	st.Phone = strings.TrimSpace(st.Phone)
	st.UpdatedAt = nowISO()
}

func settingsDoc(st models.SalonSettings) map[string]any {
	return map[string]any{
		"userId":     st.UserID,
		"name":       st.Name,
		"address":    st.Address,
		"city":       st.City,
		"postalCode": st.PostalCode,
		"phone":      st.Phone,
		"updatedAt":  st.UpdatedAt,
	}
}

// Record decoding goes through the json layer so stored nulls and numeric
// types land on the Go structs the same way they would from any document
// API.

func decodeRecord(rec Record, out any) error {
	raw, err := json.Marshal(rec.Data)
	if err != nil {
		return err
	}
	return json.Unmarshal(raw, out)
}

// ClientFromRecord rebuilds a client from its stored document.
func ClientFromRecord(rec Record) (models.Client, error) {
	var c models.Client
	if err := decodeRecord(rec, &c); err != nil {
		return models.Client{}, err
	}
	c.ID = rec.ID
	return c, nil
}

// ServiceFromRecord rebuilds a service from its stored document.
func ServiceFromRecord(rec Record) (models.Service, error) {
	var s models.Service
	if err := decodeRecord(rec, &s); err != nil {
		return models.Service{}, err
	}
	s.ID = rec.ID
	return s, nil
}

// SettingsFromRecord rebuilds the settings document.
func SettingsFromRecord(rec Record) (models.SalonSettings, error) {
	var st models.SalonSettings
	if err := decodeRecord(rec, &st); err != nil {
		return models.SalonSettings{}, err
	}
	st.ID = rec.ID
	return st, nil
}
