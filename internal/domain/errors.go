package domain

import (
	"errors"
)

var (
	ErrRecordNotFound = errors.New("record not found")
	ErrDuplicateKey   = errors.New("duplicate key")
	ErrUnknown        = errors.New("unknown error")

	ErrInsufficientBalance  = errors.New("insufficient balance")
	ErrLedgerInconsistent   = errors.New("ledger inconsistent")
	ErrInsufficientEarnings = errors.New("insufficient earnings")
	ErrBelowMinimumPayout   = errors.New("amount below minimum payout")
	ErrForbidden            = errors.New("forbidden")
	ErrServiceNotForSale    = errors.New("service is not available for sale")
)
