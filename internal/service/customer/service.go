package customer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/careroster/roster-backend/internal/domain/customer"
)

type CustomerServiceImpl struct {
	customerRepo customer.CustomerRepository
}

func NewCustomerService(customerRepo customer.CustomerRepository) customer.CustomerService {
	return &CustomerServiceImpl{customerRepo: customerRepo}
}

func mapCustomerToResponse(c customer.Customer) customer.CustomerResponse {
	return customer.CustomerResponse{
		ID:        c.ID,
		Name:      c.Name,
		Address:   c.Address,
		Phone:     c.Phone,
		Email:     c.Email,
		Notes:     c.Notes,
		CreatedAt: c.CreatedAt.Format(time.RFC3339),
		UpdatedAt: c.UpdatedAt.Format(time.RFC3339),
	}
}

// CreateCustomer implements customer.CustomerService.
func (s *CustomerServiceImpl) CreateCustomer(ctx context.Context, req customer.UpsertCustomerRequest) (customer.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return customer.CustomerResponse{}, err
	}

	created, err := s.customerRepo.Create(ctx, customer.Customer{
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Notes:   req.Notes,
	})
	if err != nil {
		return customer.CustomerResponse{}, fmt.Errorf("failed to create customer: %w", err)
	}

	return mapCustomerToResponse(created), nil
}

// GetCustomer implements customer.CustomerService.
func (s *CustomerServiceImpl) GetCustomer(ctx context.Context, id string) (customer.CustomerResponse, error) {
	c, err := s.customerRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound) {
			return customer.CustomerResponse{}, customer.ErrCustomerNotFound
		}
		return customer.CustomerResponse{}, fmt.Errorf("failed to get customer: %w", err)
	}
	return mapCustomerToResponse(c), nil
}

// ListCustomers implements customer.CustomerService.
func (s *CustomerServiceImpl) ListCustomers(ctx context.Context, filter customer.CustomerFilter) (customer.ListCustomerResponse, error) {
	if err := filter.Validate(); err != nil {
		return customer.ListCustomerResponse{}, err
	}

	customers, total, err := s.customerRepo.List(ctx, filter)
	if err != nil {
		return customer.ListCustomerResponse{}, fmt.Errorf("failed to list customers: %w", err)
	}

	data := make([]customer.CustomerResponse, 0, len(customers))
	for _, c := range customers {
		data = append(data, mapCustomerToResponse(c))
	}

	return customer.ListCustomerResponse{
		Data:       data,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// UpdateCustomer implements customer.CustomerService.
func (s *CustomerServiceImpl) UpdateCustomer(ctx context.Context, id string, req customer.UpsertCustomerRequest) (customer.CustomerResponse, error) {
	if err := req.Validate(); err != nil {
		return customer.CustomerResponse{}, err
	}

	updated, err := s.customerRepo.Update(ctx, customer.Customer{
		ID:      id,
		Name:    req.Name,
		Address: req.Address,
		Phone:   req.Phone,
		Email:   req.Email,
		Notes:   req.Notes,
	})
	if err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound) {
			return customer.CustomerResponse{}, customer.ErrCustomerNotFound
		}
		return customer.CustomerResponse{}, fmt.Errorf("failed to update customer: %w", err)
	}

	return mapCustomerToResponse(updated), nil
}

// DeleteCustomer implements customer.CustomerService. A customer still
// referenced by tasks cannot be deleted.
func (s *CustomerServiceImpl) DeleteCustomer(ctx context.Context, id string) error {
	if err := s.customerRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, customer.ErrCustomerNotFound) || errors.Is(err, customer.ErrCustomerInUse) {
			return err
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	return nil
}
