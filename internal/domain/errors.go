package domain

import "errors"

var (
	ErrInvoiceNotFound     = errors.New("invoice not found")
	ErrInvalidInvoiceInput = errors.New("invalid invoice input")
)
