// Package view renders the invoice dashboard pages.
package view

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"net/url"
	"time"

	"github.com/samber/lo"

	"github.com/set-night/invoicedash/internal/config"
	"github.com/set-night/invoicedash/internal/domain"
)

//go:embed templates/*.html
var templatesFS embed.FS

var templates = template.Must(template.ParseFS(templatesFS, "templates/*.html"))

type invoiceRow struct {
	ID            string
	CustomerName  string
	CustomerEmail string
	Amount        string
	Date          string
	Status        domain.InvoiceStatus
	StatusLabel   string
	EditPath      string
	DeletePath    string
}

type invoicesPage struct {
	Path      string
	Rows      []invoiceRow
	Customers []domain.Customer
}

// RenderInvoices renders the invoice list page, including the create form.
func RenderInvoices(invoices []domain.InvoiceListItem, customers []domain.Customer) ([]byte, error) {
	page := invoicesPage{
		Path:      config.InvoicesPath,
		Customers: customers,
		Rows: lo.Map(invoices, func(inv domain.InvoiceListItem, _ int) invoiceRow {
			return invoiceRow{
				ID:            inv.ID,
				CustomerName:  inv.CustomerName,
				CustomerEmail: inv.CustomerEmail,
				Amount:        FormatCurrency(inv.AmountMinor),
				Date:          FormatDate(inv.Date),
				Status:        inv.Status,
				StatusLabel:   statusLabel(inv.Status),
				EditPath:      InvoicePath(inv.ID, "edit"),
				DeletePath:    InvoicePath(inv.ID, "delete"),
			}
		}),
	}

	var buf bytes.Buffer
	if err := templates.ExecuteTemplate(&buf, "invoices.html", page); err != nil {
		return nil, fmt.Errorf("render invoices: %w", err)
	}
	return buf.Bytes(), nil
}

// InvoicePath builds /dashboard/invoices/{id}/{action}.
func InvoicePath(id, action string) string {
	return config.InvoicesPath + "/" + url.PathEscape(id) + "/" + action
}

// FormatCurrency renders an amount in minor units as US dollars.
func FormatCurrency(amountMinor int64) string {
	inv := domain.Invoice{AmountMinor: amountMinor}
	amount := inv.Amount()
	if amount.IsNegative() {
		return "-$" + amount.Neg().StringFixed(2)
	}
	return "$" + amount.StringFixed(2)
}

// FormatDate renders a YYYY-MM-DD date as e.g. "Oct 17, 2026". Unparseable
// values are returned unchanged.
func FormatDate(date string) string {
	t, err := time.Parse(config.DateLayout, date)
	if err != nil {
		return date
	}
	return t.Format("Jan 2, 2006")
}

func statusLabel(s domain.InvoiceStatus) string {
	switch s {
	case domain.InvoiceStatusPaid:
		return "Paid"
	case domain.InvoiceStatusPending:
		return "Pending"
	default:
		return string(s)
	}
}
