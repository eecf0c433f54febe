package models

import "strings"

// ServiceType is one billable prestation tag.
type ServiceType string

const (
	ServiceCoupe       ServiceType = "coupe"
	ServiceBrushing    ServiceType = "brushing"
	ServiceMeches      ServiceType = "meches"
	ServiceColoration  ServiceType = "coloration"
	ServiceSupplements ServiceType = "supplements"
	ServiceCoulage     ServiceType = "coulage"
	ServiceSoin        ServiceType = "soin"
	ServiceChignon     ServiceType = "chignon"
)

// Valid reports whether t is one of the known service types.
func (t ServiceType) Valid() bool {
	switch t {
	case ServiceCoupe, ServiceBrushing, ServiceMeches, ServiceColoration,
		ServiceSupplements, ServiceCoulage, ServiceSoin, ServiceChignon:
		return true
	}
	return false
}

// SplitServiceTypes parses a comma-joined tag list ("coupe, brushing") as
// found in CSV imports. Empty segments are dropped; validity is checked at
// dispatch time, not here.
func SplitServiceTypes(value string) []ServiceType {
	parts := strings.Split(value, ",")
	types := make([]ServiceType, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			types = append(types, ServiceType(p))
		}
	}
	return types
}

// JoinServiceTypes is the inverse of SplitServiceTypes, used for display
// names and CSV export.
func JoinServiceTypes(types []ServiceType) string {
	parts := make([]string, len(types))
	for i, t := range types {
		parts[i] = string(t)
	}
	return strings.Join(parts, ", ")
}

// Service is one performed prestation. Many services belong to one client;
// ClientID is not enforced against the roster, so services may outlive
// their client.
type Service struct {
	ID        string        `json:"id"`
	UserID    string        `json:"userId"`
	ClientID  string        `json:"clientId"`
	Name      string        `json:"name"`
	Types     []ServiceType `json:"types"`
	Products  string        `json:"products,omitempty"`
	Price     float64       `json:"price"`
	Date      string        `json:"date"`
	Duration  int           `json:"duration,omitempty"` // minutes, 0 = not recorded
	Notes     string        `json:"notes,omitempty"`
	CreatedAt string        `json:"createdAt"`
	UpdatedAt string        `json:"updatedAt"`
}
