package customer

import "time"

// Customer is a care recipient or client site that work is scheduled for.
type Customer struct {
	ID        string
	Name      string
	Address   *string
	Phone     *string
	Email     *string
	Notes     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}
