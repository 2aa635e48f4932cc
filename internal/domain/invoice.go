package domain

import (
	"github.com/shopspring/decimal"
)

type InvoiceStatus string

const (
	InvoiceStatusPending InvoiceStatus = "pending"
	InvoiceStatusPaid    InvoiceStatus = "paid"
)

// Invoice is a persisted billing record. Amount is held in minor currency units.
type Invoice struct {
	ID          string
	CustomerID  string
	AmountMinor int64
	Status      InvoiceStatus
	Date        string // YYYY-MM-DD
}

// Amount returns the invoice amount in major currency units.
func (i Invoice) Amount() decimal.Decimal {
	return decimal.New(i.AmountMinor, -2)
}

// InvoiceListItem is an invoice joined with the customer it bills.
type InvoiceListItem struct {
	Invoice
	CustomerName  string
	CustomerEmail string
}

// InvoiceFields are the caller-editable fields of an invoice after validation.
type InvoiceFields struct {
	CustomerID  string
	Amount      decimal.Decimal
	AmountMinor int64
	Status      InvoiceStatus
}
