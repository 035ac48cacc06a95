package customer

import "context"

type CustomerRepository interface {
	Create(ctx context.Context, c Customer) (Customer, error)
	GetByID(ctx context.Context, id string) (Customer, error)
	List(ctx context.Context, filter CustomerFilter) ([]Customer, int64, error)
	Update(ctx context.Context, c Customer) (Customer, error)
	Delete(ctx context.Context, id string) error
}
