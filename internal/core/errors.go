package core

import (
	"database/sql"
	"errors"
)

var (
	ErrWarehouseExists    = errors.New("warehouse already exists")
	ErrItemExists         = errors.New("item already exists in this warehouse")
	ErrRuleExists         = errors.New("rule already exists for this item")
	ErrWarehouseNotFound  = errors.New("warehouse not found")
	ErrItemNotFound       = errors.New("item not found in this warehouse")
	ErrNoNames            = errors.New("at least one name is required")
	ErrQuantityOutOfRange = errors.New("quantity out of range")
)

func isNoRows(err error) bool {
	return errors.Is(err, sql.ErrNoRows)
}
