package service

import (
	"context"
	"fmt"

	"invoice-dashboard-backend/internal/domain"
	"invoice-dashboard-backend/internal/repository"
)

// CustomerService defines the interface for customer business logic
type CustomerService interface {
	ListCustomers(ctx context.Context) ([]domain.Customer, error)
	FilteredCustomers(ctx context.Context, query string) ([]domain.CustomerSummary, error)
}

// CustomerServiceImpl implements the CustomerService interface
type CustomerServiceImpl struct {
	repository repository.CustomerRepository
}

// NewCustomerService creates a new CustomerService
func NewCustomerService(repo repository.CustomerRepository) CustomerService {
	return &CustomerServiceImpl{repository: repo}
}

// ListCustomers retrieves all customers for the invoice form select
func (s *CustomerServiceImpl) ListCustomers(ctx context.Context) ([]domain.Customer, error) {
	customers, err := s.repository.ListCustomers(ctx)
	if err != nil {
		return nil, fmt.Errorf("list_customers: %w", err)
	}
	return customers, nil
}

// FilteredCustomers retrieves the customers table with invoice aggregates
func (s *CustomerServiceImpl) FilteredCustomers(ctx context.Context, query string) ([]domain.CustomerSummary, error) {
	summaries, err := s.repository.FilteredCustomers(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("filtered_customers: %w", err)
	}
	return summaries, nil
}
