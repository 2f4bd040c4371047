/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package testmodels holds the sample entities and maps shared by the
// test suites. Registering the maps happens in init, the same way
// generated registration files do it.
package testmodels

import "github.com/go-openapi/strfmt"

// Customer is a sample entity with a conventional map.
type Customer struct {

	// Unique identifier for the customer.
	ID string `db:"id" json:"Id"`

	// Name of the customer.
	Name string `db:"name" json:"Name"`

	// Email address of the customer.
	Email string `db:"email" json:"Email"`

	// Billing plan the customer is on.
	Plan string `db:"plan" json:"Plan"`

	// Whether the account is active.
	Active bool `db:"active" json:"Active"`

	// Timestamp when the customer was created.
	// Format: date-time
	CreatedAt strfmt.DateTime `db:"created_at" json:"CreatedAt"`
}

// Order is a sample entity whose map enables soft deletes.
type Order struct {
	ID         string  `db:"id"`
	CustomerID string  `db:"customer_id"`
	Status     string  `db:"status"`
	Total      float64 `db:"total"`
	DeletedAt  string  `db:"deleted_at"`
}

// Money is a sample value object.
type Money struct {
	Amount   int64  `db:"amount"`
	Currency string `db:"currency"`
}
