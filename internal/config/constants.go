package config

import "time"

const (
	// Invoice list view, used both as redirect target and cache key
	InvoicesPath = "/dashboard/invoices"

	// Validation messages
	MsgSelectCustomer = "Please select a customer"
	MsgAmountPositive = "Please enter an amount greater than $0."
	MsgAmountInvalid  = "Please enter a valid amount."
	MsgAmountTooLarge = "Please enter an amount no greater than $21,474,836.47."
	MsgSelectStatus   = "Please select an invoice status."

	// Outcome messages
	MsgCreateMissingFields = "Missing Fields. Failed to Create Invoice"
	MsgUpdateMissingFields = "Missing Fields. Failed to Update Invoice"
	MsgCreateDatabaseError = "Database Error: Failed to Create Invoice"
	MsgUpdateDatabaseError = "Database Error: Failed to Update Invoice"
	MsgDeleteDatabaseError = "Database Error: Failed to Delete Invoice"
	MsgUpdateNotFound      = "Invoice Not Found: Failed to Update Invoice"
	MsgDeleteNotFound      = "Invoice Not Found: Failed to Delete Invoice"

	// Date layout stored in invoices.date
	DateLayout = "2006-01-02"

	// Minor currency units per major unit
	MinorUnitsExponent = 2

	// Longest amount form value accepted for parsing
	MaxAmountInputLen = 64

	// Connection pool sizing
	PoolMaxConns = 20
	PoolMinConns = 5

	// HTTP server timeouts
	ReadHeaderTimeout = 10 * time.Second
	ShutdownTimeout   = 15 * time.Second

	// Page cache sweep interval
	PageCacheCleanup = 10 * time.Minute

	// Telegram notification timeout
	NotifyTimeout = 10 * time.Second

	// Invoices rendered on the list page
	InvoicesPerPage = 50
)
