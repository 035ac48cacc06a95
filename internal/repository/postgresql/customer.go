package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/careroster/roster-backend/internal/domain/customer"
	"github.com/careroster/roster-backend/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

const customerColumns = `id, name, address, phone, email, notes, created_at, updated_at`

// foreignKeyViolation is the Postgres SQLSTATE for a foreign key violation.
const foreignKeyViolation = "23503"

type customerRepositoryImpl struct {
	db *database.DB
}

func NewCustomerRepository(db *database.DB) customer.CustomerRepository {
	return &customerRepositoryImpl{db: db}
}

func scanCustomer(row pgx.Row) (customer.Customer, error) {
	var c customer.Customer
	err := row.Scan(&c.ID, &c.Name, &c.Address, &c.Phone, &c.Email, &c.Notes, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}

func (r *customerRepositoryImpl) Create(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to generate id: %w", err)
	}

	query := `
		INSERT INTO customers (id, name, address, phone, email, notes)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + customerColumns

	created, err := scanCustomer(q.QueryRow(ctx, query, id.String(), c.Name, c.Address, c.Phone, c.Email, c.Notes))
	if err != nil {
		return customer.Customer{}, fmt.Errorf("failed to create customer: %w", err)
	}
	return created, nil
}

func (r *customerRepositoryImpl) GetByID(ctx context.Context, id string) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	found, err := scanCustomer(q.QueryRow(ctx, `SELECT `+customerColumns+` FROM customers WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customer.Customer{}, customer.ErrCustomerNotFound
		}
		return customer.Customer{}, fmt.Errorf("failed to get customer: %w", err)
	}
	return found, nil
}

func (r *customerRepositoryImpl) List(ctx context.Context, filter customer.CustomerFilter) ([]customer.Customer, int64, error) {
	q := GetQuerier(ctx, r.db)

	var search *string
	if filter.Search != nil && *filter.Search != "" {
		pattern := "%" + *filter.Search + "%"
		search = &pattern
	}
	where := `($1::text IS NULL OR name ILIKE $1 OR address ILIKE $1 OR email ILIKE $1)`

	var total int64
	if err := q.QueryRow(ctx, `SELECT COUNT(*) FROM customers WHERE `+where, search).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count customers: %w", err)
	}

	query := `
		SELECT ` + customerColumns + `
		FROM customers
		WHERE ` + where + `
		ORDER BY name, id
		LIMIT $2 OFFSET $3
	`
	rows, err := q.Query(ctx, query, search, filter.Limit, (filter.Page-1)*filter.Limit)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list customers: %w", err)
	}
	defer rows.Close()

	var customers []customer.Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan customer: %w", err)
		}
		customers = append(customers, c)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *customerRepositoryImpl) Update(ctx context.Context, c customer.Customer) (customer.Customer, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE customers
		SET name = $2, address = $3, phone = $4, email = $5, notes = $6, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + customerColumns

	saved, err := scanCustomer(q.QueryRow(ctx, query, c.ID, c.Name, c.Address, c.Phone, c.Email, c.Notes))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return customer.Customer{}, customer.ErrCustomerNotFound
		}
		return customer.Customer{}, fmt.Errorf("failed to update customer: %w", err)
	}
	return saved, nil
}

func (r *customerRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM customers WHERE id = $1`, id)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return customer.ErrCustomerInUse
		}
		return fmt.Errorf("failed to delete customer: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return customer.ErrCustomerNotFound
	}
	return nil
}
