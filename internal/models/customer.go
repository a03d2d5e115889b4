package models

import (
	"errors"

	"golang.org/x/crypto/bcrypt"
)

// Customer errors
var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrCustomerNotFound   = errors.New("customer not found")
)

// Customer is a registered storefront account
type Customer struct {
	ID           string
	Username     string
	Email        string
	PasswordHash []byte
	Billing      Billing
}

// NewCustomer hashes password and returns the account
func NewCustomer(id, username, email, password string, billing Billing) (*Customer, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	return &Customer{ID: id, Username: username, Email: email, PasswordHash: hash, Billing: billing}, nil
}

// CheckPassword compares password with the stored hash
func (c *Customer) CheckPassword(password string) error {
	if err := bcrypt.CompareHashAndPassword(c.PasswordHash, []byte(password)); err != nil {
		return ErrInvalidCredentials
	}
	return nil
}
