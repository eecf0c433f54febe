package store

import "github.com/Kevbec/SalonManager/models"
import "regexp"

var digitsRe = regexp.MustCompile(`^[0-9]+$`)

// Payload validation runs after normalization and before any gateway call,
// so a rejected mutation never reaches persistence or local state.

func validateClient(c models.Client) error {
	if c.Name == "" {
		return validationErr("client name is required")
	}
	if !c.Type.Valid() {
		return validationErr("invalid client type")
	}
	return nil
}

func validateService(s models.Service) error {
	if s.ClientID == "" || len(s.Types) == 0 || s.Date == "" {
		return validationErr("all required fields must be filled")
	}
	if s.Price < 0 {
		return validationErr("price must be a non-negative number")
	}
	if s.Duration < 0 {
		return validationErr("duration must be a non-negative number")
	}
	for _, t := range s.Types {
		if !t.Valid() {
			return validationErr("invalid service types")
		}
	}
	return nil
}

func validateSettings(st models.SalonSettings) error {
	if st.Name == "" {
		return validationErr("salon name is required")
	}
	if st.Phone != "" && !digitsRe.MatchString(st.Phone) {
		return validationErr("phone number must contain digits only")
	}
	if st.PostalCode != "" && !digitsRe.MatchString(st.PostalCode) {
		return validationErr("postal code must contain digits only")
	}
	return nil
}
