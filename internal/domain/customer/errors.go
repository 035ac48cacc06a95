package customer

import "errors"

var (
	ErrCustomerNotFound = errors.New("customer not found")
	ErrCustomerInUse    = errors.New("customer is referenced by tasks")
)
