package models

import (
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// User is an administrator login. Only administrators can use the API.
type User struct {
	DefaultModel
	Email        string `gorm:"uniqueIndex"`
	Name         string
	PasswordHash string `json:"-"`
}

var ErrUserEmailNotUnique = errors.New("the email address is already in use")

func (u *User) BeforeSave(_ *gorm.DB) error {
	u.Email = strings.ToLower(strings.TrimSpace(u.Email))
	u.Name = strings.TrimSpace(u.Name)

	return nil
}

// SetPassword stores a bcrypt hash of the password.
func (u *User) SetPassword(password string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	u.PasswordHash = string(hash)
	return nil
}

// CheckPassword reports whether the password matches the stored hash.
func (u User) CheckPassword(password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) == nil
}

// EnsureAdmin creates the administrator login if no user with the email
// exists yet. Existing users are left untouched.
func EnsureAdmin(db *gorm.DB, email, name, password string) error {
	var user User
	err := db.Where(&User{Email: strings.ToLower(email)}).First(&user).Error
	if err == nil {
		return nil
	}

	if !errors.Is(err, ErrResourceNotFound) {
		return err
	}

	user = User{Email: email, Name: name}
	if err := user.SetPassword(password); err != nil {
		return err
	}

	return db.Create(&user).Error
}
