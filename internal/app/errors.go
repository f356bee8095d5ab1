package app

import "errors"

var (
	// ErrWarehouseRequired means no warehouse was given and no default is configured.
	ErrWarehouseRequired = errors.New("a warehouse name is required (or set DEPOSITO_WAREHOUSE)")
	// ErrEmptyName means a warehouse or item name was blank.
	ErrEmptyName = errors.New("names must not be empty")
)
