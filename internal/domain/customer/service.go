package customer

import "context"

type CustomerService interface {
	CreateCustomer(ctx context.Context, req UpsertCustomerRequest) (CustomerResponse, error)
	GetCustomer(ctx context.Context, id string) (CustomerResponse, error)
	ListCustomers(ctx context.Context, filter CustomerFilter) (ListCustomerResponse, error)
	UpdateCustomer(ctx context.Context, id string, req UpsertCustomerRequest) (CustomerResponse, error)
	DeleteCustomer(ctx context.Context, id string) error
}
