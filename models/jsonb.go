package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

// JSONB maps a postgres jsonb column to a Go map. Document bodies are
// stored through this type.
type JSONB map[string]interface{}

func (j JSONB) Value() (driver.Value, error) {
	return json.Marshal(j)
}

func (j *JSONB) Scan(value interface{}) error {
	b, ok := value.([]byte)
	if !ok {
		return errors.New("type assertion to []byte failed")
	}
	return json.Unmarshal(b, &j)
}
