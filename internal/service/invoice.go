package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/set-night/invoicedash/internal/config"
	"github.com/set-night/invoicedash/internal/domain"
	ierr "github.com/set-night/invoicedash/internal/errors"
	"github.com/set-night/invoicedash/internal/validation"
)

type InvoiceStore interface {
	Create(ctx context.Context, customerID string, amountMinor int64, status domain.InvoiceStatus, date string) (string, error)
	Update(ctx context.Context, id, customerID string, amountMinor int64, status domain.InvoiceStatus) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit int) ([]domain.InvoiceListItem, error)
}

type CustomerStore interface {
	List(ctx context.Context) ([]domain.Customer, error)
}

// Revalidator invalidates cached renderings of a view.
type Revalidator interface {
	Revalidate(ctx context.Context, path string)
}

type Notifier interface {
	InvoiceCreated(ctx context.Context, id string, fields domain.InvoiceFields, date string)
	InvoiceUpdated(ctx context.Context, id string, fields domain.InvoiceFields)
	InvoiceDeleted(ctx context.Context, id string)
	LogError(ctx context.Context, err error, op string)
}

type InvoiceService struct {
	invoices      InvoiceStore
	customers     CustomerStore
	pages         Revalidator
	notifier      Notifier
	strictMissing bool
	now           func() time.Time
}

// Deps contains all dependencies required to construct an InvoiceService.
type Deps struct {
	Invoices  InvoiceStore
	Customers CustomerStore
	Pages     Revalidator
	Notifier  Notifier

	// StrictMissingInvoice makes update and delete of an unknown id fail
	// instead of succeeding as a no-op.
	StrictMissingInvoice bool
}

func NewInvoiceService(deps Deps) *InvoiceService {
	notifier := deps.Notifier
	if notifier == nil {
		notifier = nopNotifier{}
	}
	return &InvoiceService{
		invoices:      deps.Invoices,
		customers:     deps.Customers,
		pages:         deps.Pages,
		notifier:      notifier,
		strictMissing: deps.StrictMissingInvoice,
		now:           time.Now,
	}
}

// Create validates form and inserts a new invoice dated today (UTC).
// The previous form state is accepted so retries can thread it through; it
// does not influence the result.
func (s *InvoiceService) Create(ctx context.Context, _ State, form domain.InvoiceForm) Outcome {
	res := validation.Validate(form)
	if !res.Success {
		return failed(res.Errors.Err(), config.MsgCreateMissingFields, res.Errors)
	}

	date := s.now().UTC().Format(config.DateLayout)

	id, err := s.invoices.Create(ctx, res.Data.CustomerID, res.Data.AmountMinor, res.Data.Status, date)
	if err != nil {
		s.reportStorageError(ctx, err, "create invoice")
		return failed(err, config.MsgCreateDatabaseError, nil)
	}

	slog.Info("invoice created", "id", id, "customer_id", res.Data.CustomerID, "amount", res.Data.AmountMinor)
	s.notifier.InvoiceCreated(ctx, id, res.Data, date)

	s.pages.Revalidate(ctx, config.InvoicesPath)
	return redirect(config.InvoicesPath)
}

// Update validates form and rewrites customer, amount and status of invoice id.
func (s *InvoiceService) Update(ctx context.Context, id string, form domain.InvoiceForm) Outcome {
	res := validation.Validate(form)
	if !res.Success {
		return failed(res.Errors.Err(), config.MsgUpdateMissingFields, res.Errors)
	}

	err := s.invoices.Update(ctx, id, res.Data.CustomerID, res.Data.AmountMinor, res.Data.Status)
	switch {
	case err == nil:
		slog.Info("invoice updated", "id", id, "amount", res.Data.AmountMinor, "status", res.Data.Status)
		s.notifier.InvoiceUpdated(ctx, id, res.Data)
	case ierr.IsNotFound(err):
		if s.strictMissing {
			return failed(err, config.MsgUpdateNotFound, nil)
		}
		slog.Info("update of missing invoice ignored", "id", id)
	default:
		s.reportStorageError(ctx, err, "update invoice")
		return failed(err, config.MsgUpdateDatabaseError, nil)
	}

	s.pages.Revalidate(ctx, config.InvoicesPath)
	return redirect(config.InvoicesPath)
}

// Delete removes invoice id. It is invoked in place from the list view, so
// success does not navigate anywhere.
func (s *InvoiceService) Delete(ctx context.Context, id string) Outcome {
	err := s.invoices.Delete(ctx, id)
	switch {
	case err == nil:
		slog.Info("invoice deleted", "id", id)
		s.notifier.InvoiceDeleted(ctx, id)
	case ierr.IsNotFound(err):
		if s.strictMissing {
			return failed(err, config.MsgDeleteNotFound, nil)
		}
		slog.Info("delete of missing invoice ignored", "id", id)
	default:
		s.reportStorageError(ctx, err, "delete invoice")
		return failed(err, config.MsgDeleteDatabaseError, nil)
	}

	s.pages.Revalidate(ctx, config.InvoicesPath)
	return done()
}

// Dashboard is the data behind the invoice list view.
type Dashboard struct {
	Invoices  []domain.InvoiceListItem
	Customers []domain.Customer
}

func (s *InvoiceService) Dashboard(ctx context.Context) (*Dashboard, error) {
	invoices, err := s.invoices.List(ctx, config.InvoicesPerPage)
	if err != nil {
		return nil, fmt.Errorf("list invoices: %w", err)
	}
	customers, err := s.customers.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	return &Dashboard{Invoices: invoices, Customers: customers}, nil
}

func (s *InvoiceService) reportStorageError(ctx context.Context, err error, op string) {
	slog.Error(op, "error", err)
	s.notifier.LogError(ctx, err, op)
}

type nopNotifier struct{}

func (nopNotifier) InvoiceCreated(context.Context, string, domain.InvoiceFields, string) {}
func (nopNotifier) InvoiceUpdated(context.Context, string, domain.InvoiceFields) {}
func (nopNotifier) InvoiceDeleted(context.Context, string) {}
func (nopNotifier) LogError(context.Context, error, string) {}
