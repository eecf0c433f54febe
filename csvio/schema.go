package csvio

import (
	"errors"
	"strconv"

	"github.com/Kevbec/SalonManager/models"
)

// ClientFields is the import schema for the client roster.
func ClientFields() []Field {
	return []Field{
		{Header: "nom", Key: "name", Required: true},
		{Header: "type", Key: "type", Required: true, Validate: func(v string) bool {
			return models.ClientType(v).Valid()
		}},
		{Header: "notes", Key: "notes"},
	}
}

// ServiceFields is the import schema for service history. The types column
// stays a raw comma-joined string here; it is split and checked against the
// enum when the row is dispatched.
func ServiceFields() []Field {
	return []Field{
		{Header: "client_id", Key: "clientId", Required: true},
		{Header: "types", Key: "types", Required: true},
		{Header: "prix", Key: "price", Required: true, Transform: parsePrice},
		{Header: "date", Key: DateKey, Required: true},
		{Header: "duree", Key: "duration", Transform: parseDuration},
		{Header: "produits", Key: "products"},
		{Header: "notes", Key: "notes"},
	}
}

func parsePrice(value string) (any, error) {
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return nil, errors.New("invalid number")
	}
	return f, nil
}

func parseDuration(value string) (any, error) {
	if value == "" {
		return nil, nil
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return nil, errors.New("invalid number")
	}
	return n, nil
}

// String reads a string value from a parsed row, tolerating absent keys.
func (r Row) String(key string) string {
	if v, ok := r[key].(string); ok {
		return v
	}
	return ""
}

// Float reads a float value from a parsed row.
func (r Row) Float(key string) float64 {
	if v, ok := r[key].(float64); ok {
		return v
	}
	return 0
}

// Int reads an int value from a parsed row.
func (r Row) Int(key string) int {
	if v, ok := r[key].(int); ok {
		return v
	}
	return 0
}
