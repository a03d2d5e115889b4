package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/skillbox-qa/intershop/internal/models"
)

// CustomerRepository defines the interface for customer lookup
type CustomerRepository interface {
	GetCustomerByUsername(ctx context.Context, username string) (*models.Customer, error)
	GetCustomerByID(ctx context.Context, id string) (*models.Customer, error)
}

// AccountService handles storefront logins
type AccountService interface {
	Authenticate(ctx context.Context, username, password string) (*models.Customer, error)
	GetCustomer(ctx context.Context, id string) (*models.Customer, error)
}

// AccountServiceImpl implements AccountService
type AccountServiceImpl struct {
	customers CustomerRepository
}

// NewAccountService creates a new account service
func NewAccountService(customers CustomerRepository) AccountService {
	return &AccountServiceImpl{customers: customers}
}

// Authenticate checks credentials. Unknown users and wrong passwords are
// indistinguishable to the caller.
func (s *AccountServiceImpl) Authenticate(ctx context.Context, username, password string) (*models.Customer, error) {
	c, err := s.customers.GetCustomerByUsername(ctx, username)
	if errors.Is(err, models.ErrCustomerNotFound) {
		return nil, models.ErrInvalidCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load customer: %w", err)
	}
	if err := c.CheckPassword(password); err != nil {
		return nil, err
	}
	return c, nil
}

// GetCustomer loads a customer by id
func (s *AccountServiceImpl) GetCustomer(ctx context.Context, id string) (*models.Customer, error) {
	return s.customers.GetCustomerByID(ctx, id)
}
