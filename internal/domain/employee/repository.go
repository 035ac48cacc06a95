package employee

import "context"

type EmployeeRepository interface {
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	GetByID(ctx context.Context, id string) (Employee, error)
	ExistsByEmployeeID(ctx context.Context, employeeID string, excludeID *string) (bool, error)
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	// ListAll returns every active employee, ordered by first name.
	ListAll(ctx context.Context) ([]Employee, error)
	Update(ctx context.Context, updated Employee) (Employee, error)
	SoftDelete(ctx context.Context, id string) error
}
