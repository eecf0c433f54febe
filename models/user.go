package models

import (
	"time"

	"github.com/Kevbec/SalonManager/utils"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is an account holder. Its uuid is the owning-user id that scopes
// every stored document.
type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex;not null" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Name     string    `gorm:"not null" json:"name"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`

	gorm.Model `json:"-"`
}

// BeforeCreate assigns the uuid and hashes the password.
func (u *User) BeforeCreate(tx *gorm.DB) (err error) {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	hashed, err := utils.HashPassword(u.Password)
	if err != nil {
		return err
	}
	u.Password = hashed
	return
}
