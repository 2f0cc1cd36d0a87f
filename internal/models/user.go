package models

import (
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User represents a registered user of the expense tracker.
type User struct {
	DefaultModel
	Name         string `json:"name" example:"Jane Doe"`
	Email        string `json:"email" gorm:"uniqueIndex" example:"jane@example.com"`
	PasswordHash string `json:"-"`
}

// BeforeSave normalizes the email address.
//
// Emails are compared case insensitively, storing them lowercased
// keeps the unique index meaningful.
func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Name = strings.TrimSpace(u.Name)
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))

	return nil
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	_ = u.DefaultModel.BeforeCreate(tx)

	if strings.TrimSpace(u.Email) == "" {
		return ErrEmailRequired
	}

	return nil
}

// SetPassword hashes the cleartext password and stores the hash.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the cleartext password matches the
// stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}
