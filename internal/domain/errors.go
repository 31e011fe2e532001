package domain

import "errors"

var (
	ErrNotFound          = errors.New("not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrInvalidTarget     = errors.New("invalid target")
	ErrAlreadySold       = errors.New("already sold")
)
