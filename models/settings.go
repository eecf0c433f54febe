package models

// SalonSettings is the single per-account settings document. A default
// record (name "MonSalon") is created on first load when none exists.
type SalonSettings struct {
	ID         string `json:"id,omitempty"`
	UserID     string `json:"userId"`
	Name       string `json:"name"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
	Phone      string `json:"phone"`
	UpdatedAt  string `json:"updatedAt,omitempty"`
}
