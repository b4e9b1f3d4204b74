package repo

import (
	"errors"

	"gorm.io/gorm"
)

type GormRepo struct {
	DB *gorm.DB
}

// ErrStaleVersion means a compare-and-swap on the version column matched
// no row even though the row was just loaded: a concurrent writer won.
var ErrStaleVersion = errors.New("stale version")

// ErrStockExhausted means a conditional quantity decrement found less
// stock than the order line asks for.
var ErrStockExhausted = errors.New("stock exhausted")
