package customer

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/careroster/roster-backend/internal/domain/customer"
	"github.com/careroster/roster-backend/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memCustomerRepo struct {
	seq       int
	customers map[string]customer.Customer
	inUse     map[string]bool
}

func newMemCustomerRepo() *memCustomerRepo {
	return &memCustomerRepo{customers: map[string]customer.Customer{}, inUse: map[string]bool{}}
}

func (m *memCustomerRepo) Create(_ context.Context, c customer.Customer) (customer.Customer, error) {
	m.seq++
	c.ID = fmt.Sprintf("cust-%d", m.seq)
	c.CreatedAt = time.Now()
	c.UpdatedAt = c.CreatedAt
	m.customers[c.ID] = c
	return c, nil
}

func (m *memCustomerRepo) GetByID(_ context.Context, id string) (customer.Customer, error) {
	c, ok := m.customers[id]
	if !ok {
		return customer.Customer{}, customer.ErrCustomerNotFound
	}
	return c, nil
}

func (m *memCustomerRepo) List(_ context.Context, filter customer.CustomerFilter) ([]customer.Customer, int64, error) {
	var all []customer.Customer
	for _, c := range m.customers {
		all = append(all, c)
	}
	return all, int64(len(all)), nil
}

func (m *memCustomerRepo) Update(_ context.Context, c customer.Customer) (customer.Customer, error) {
	existing, ok := m.customers[c.ID]
	if !ok {
		return customer.Customer{}, customer.ErrCustomerNotFound
	}
	c.CreatedAt = existing.CreatedAt
	c.UpdatedAt = time.Now()
	m.customers[c.ID] = c
	return c, nil
}

func (m *memCustomerRepo) Delete(_ context.Context, id string) error {
	if _, ok := m.customers[id]; !ok {
		return customer.ErrCustomerNotFound
	}
	if m.inUse[id] {
		return customer.ErrCustomerInUse
	}
	delete(m.customers, id)
	return nil
}

func strPtr(s string) *string { return &s }

func TestCreateCustomer(t *testing.T) {
	svc := NewCustomerService(newMemCustomerRepo())

	resp, err := svc.CreateCustomer(context.Background(), customer.UpsertCustomerRequest{
		Name:    "  Maple House ",
		Phone:   strPtr("+61 (2) 9876-5432"),
		Email:   strPtr("office@maple.example"),
		Address: strPtr("   "),
	})
	require.NoError(t, err)
	assert.Equal(t, "Maple House", resp.Name)
	assert.Nil(t, resp.Address, "blank optional fields are stored as null")
	assert.Equal(t, "office@maple.example", *resp.Email)
}

func TestCreateCustomer_Invalid(t *testing.T) {
	svc := NewCustomerService(newMemCustomerRepo())

	_, err := svc.CreateCustomer(context.Background(), customer.UpsertCustomerRequest{
		Phone: strPtr("12"),
		Email: strPtr("not-an-email"),
	})
	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Len(t, verrs, 3)
}

func TestUpdateAndDeleteCustomer(t *testing.T) {
	repo := newMemCustomerRepo()
	svc := NewCustomerService(repo)
	ctx := context.Background()

	c, err := svc.CreateCustomer(ctx, customer.UpsertCustomerRequest{Name: "Maple House"})
	require.NoError(t, err)

	updated, err := svc.UpdateCustomer(ctx, c.ID, customer.UpsertCustomerRequest{Name: "Maple Lodge", Notes: strPtr("gate code 1234")})
	require.NoError(t, err)
	assert.Equal(t, "Maple Lodge", updated.Name)
	assert.Equal(t, c.CreatedAt, updated.CreatedAt)

	_, err = svc.UpdateCustomer(ctx, "missing", customer.UpsertCustomerRequest{Name: "x"})
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)

	repo.inUse[c.ID] = true
	assert.ErrorIs(t, svc.DeleteCustomer(ctx, c.ID), customer.ErrCustomerInUse)

	repo.inUse[c.ID] = false
	require.NoError(t, svc.DeleteCustomer(ctx, c.ID))
	_, err = svc.GetCustomer(ctx, c.ID)
	assert.ErrorIs(t, err, customer.ErrCustomerNotFound)
}

func TestListCustomers_Defaults(t *testing.T) {
	svc := NewCustomerService(newMemCustomerRepo())

	resp, err := svc.ListCustomers(context.Background(), customer.CustomerFilter{})
	require.NoError(t, err)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.NotNil(t, resp.Data)

	_, err = svc.ListCustomers(context.Background(), customer.CustomerFilter{Limit: 500})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}
