package service

import "errors"

var (
	ErrInvalidArgument   = errors.New("invalid argument")   // 400
	ErrNotFound          = errors.New("not found")          // 404
	ErrForbidden         = errors.New("forbidden")          // 403
	ErrInvalidTransition = errors.New("invalid transition") // 409
	ErrInsufficientStock = errors.New("insufficient stock") // 409
	ErrConflict          = errors.New("conflict")           // 409
)
