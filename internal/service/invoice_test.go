package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/set-night/invoicedash/internal/config"
	"github.com/set-night/invoicedash/internal/domain"
	ierr "github.com/set-night/invoicedash/internal/errors"
	"github.com/set-night/invoicedash/internal/validation"
)

// --- FAKES ---

type insertCall struct {
	CustomerID  string
	AmountMinor int64
	Status      domain.InvoiceStatus
	Date        string
}

type updateCall struct {
	ID          string
	CustomerID  string
	AmountMinor int64
	Status      domain.InvoiceStatus
}

type fakeInvoiceStore struct {
	Inserted  []insertCall
	Updated   []updateCall
	Deleted   []string
	Items     []domain.InvoiceListItem
	ErrCreate error
	ErrUpdate error
	ErrDelete error
	ErrList   error
}

func (f *fakeInvoiceStore) Create(_ context.Context, customerID string, amountMinor int64, status domain.InvoiceStatus, date string) (string, error) {
	if f.ErrCreate != nil {
		return "", f.ErrCreate
	}
	f.Inserted = append(f.Inserted, insertCall{customerID, amountMinor, status, date})
	return "inv-new", nil
}

func (f *fakeInvoiceStore) Update(_ context.Context, id, customerID string, amountMinor int64, status domain.InvoiceStatus) error {
	if f.ErrUpdate != nil {
		return f.ErrUpdate
	}
	f.Updated = append(f.Updated, updateCall{id, customerID, amountMinor, status})
	return nil
}

func (f *fakeInvoiceStore) Delete(_ context.Context, id string) error {
	if f.ErrDelete != nil {
		return f.ErrDelete
	}
	f.Deleted = append(f.Deleted, id)
	return nil
}

func (f *fakeInvoiceStore) List(_ context.Context, _ int) ([]domain.InvoiceListItem, error) {
	return f.Items, f.ErrList
}

type fakeCustomerStore struct {
	Customers []domain.Customer
	Err       error
}

func (f *fakeCustomerStore) List(context.Context) ([]domain.Customer, error) {
	return f.Customers, f.Err
}

type fakeRevalidator struct {
	Paths []string
}

func (f *fakeRevalidator) Revalidate(_ context.Context, path string) {
	f.Paths = append(f.Paths, path)
}

type fakeNotifier struct {
	Created []string
	Updated []string
	Deleted []string
	Errors  []string
}

func (f *fakeNotifier) InvoiceCreated(_ context.Context, id string, _ domain.InvoiceFields, _ string) {
	f.Created = append(f.Created, id)
}

func (f *fakeNotifier) InvoiceUpdated(_ context.Context, id string, _ domain.InvoiceFields) {
	f.Updated = append(f.Updated, id)
}

func (f *fakeNotifier) InvoiceDeleted(_ context.Context, id string) {
	f.Deleted = append(f.Deleted, id)
}

func (f *fakeNotifier) LogError(_ context.Context, _ error, op string) {
	f.Errors = append(f.Errors, op)
}

type fixture struct {
	svc      *InvoiceService
	store    *fakeInvoiceStore
	pages    *fakeRevalidator
	notifier *fakeNotifier
}

func newFixture(strict bool) *fixture {
	f := &fixture{
		store:    &fakeInvoiceStore{},
		pages:    &fakeRevalidator{},
		notifier: &fakeNotifier{},
	}
	f.svc = NewInvoiceService(Deps{
		Invoices:             f.store,
		Customers:            &fakeCustomerStore{},
		Pages:                f.pages,
		Notifier:             f.notifier,
		StrictMissingInvoice: strict,
	})
	// 23:30 in UTC-5 is already the next day in UTC
	f.svc.now = func() time.Time {
		return time.Date(2026, 10, 16, 23, 30, 0, 0, time.FixedZone("EST", -5*60*60))
	}
	return f
}

func ptr(s string) *string { return &s }

func form(customerID, amount, status string) domain.InvoiceForm {
	return domain.InvoiceForm{CustomerID: ptr(customerID), Amount: ptr(amount), Status: ptr(status)}
}

var (
	errConnectivity = ierr.WithError(errors.New("dial tcp 10.0.0.5:5432: connect: connection refused")).Mark(ierr.ErrDatabase)
	errMissing      = ierr.WithError(domain.ErrInvoiceNotFound).Mark(ierr.ErrNotFound)
)

// --- CREATE ---

func TestCreate_Success(t *testing.T) {
	f := newFixture(false)

	out := f.svc.Create(context.Background(), State{}, form("c1", "50.00", "pending"))

	assert.Equal(t, OutcomeRedirect, out.Kind)
	assert.Equal(t, config.InvoicesPath, out.Target)
	assert.Equal(t, State{}, out.State)
	require.Len(t, f.store.Inserted, 1)
	assert.Equal(t, insertCall{"c1", 5000, domain.InvoiceStatusPending, "2026-10-17"}, f.store.Inserted[0])
	assert.Equal(t, []string{config.InvoicesPath}, f.pages.Paths)
	assert.Equal(t, []string{"inv-new"}, f.notifier.Created)
}

func TestCreate_PreviousStateIgnored(t *testing.T) {
	f := newFixture(false)
	prev := State{Message: config.MsgCreateMissingFields, Errors: validation.FieldErrors{"amount": {"x"}}}

	out := f.svc.Create(context.Background(), prev, form("c1", "1", "paid"))

	assert.Equal(t, OutcomeRedirect, out.Kind)
	assert.Empty(t, out.State.Errors)
}

func TestCreate_ValidationFailure(t *testing.T) {
	f := newFixture(false)

	out := f.svc.Create(context.Background(), State{}, form("", "50", "pending"))

	assert.Equal(t, OutcomeError, out.Kind)
	assert.Equal(t, config.MsgCreateMissingFields, out.State.Message)
	assert.Equal(t, validation.FieldErrors{"customerId": {config.MsgSelectCustomer}}, out.State.Errors)
	assert.True(t, ierr.IsValidation(out.Err))
	assert.Empty(t, f.store.Inserted)
	assert.Empty(t, f.pages.Paths)
	assert.Empty(t, f.notifier.Created)
}

func TestCreate_StorageFailure(t *testing.T) {
	f := newFixture(false)
	f.store.ErrCreate = errConnectivity

	out := f.svc.Create(context.Background(), State{}, form("c1", "50", "pending"))

	assert.Equal(t, OutcomeError, out.Kind)
	assert.Equal(t, State{Message: config.MsgCreateDatabaseError}, out.State)
	assert.Nil(t, out.State.Errors)
	assert.True(t, ierr.IsDatabase(out.Err))
	assert.Empty(t, f.pages.Paths)
	assert.Equal(t, []string{"create invoice"}, f.notifier.Errors)
}

// --- UPDATE ---

func TestUpdate_Success(t *testing.T) {
	f := newFixture(false)

	out := f.svc.Update(context.Background(), "inv-1", form("c2", "20", "paid"))

	assert.Equal(t, OutcomeRedirect, out.Kind)
	assert.Equal(t, config.InvoicesPath, out.Target)
	require.Len(t, f.store.Updated, 1)
	assert.Equal(t, updateCall{"inv-1", "c2", 2000, domain.InvoiceStatusPaid}, f.store.Updated[0])
	assert.Empty(t, f.store.Inserted)
	assert.Equal(t, []string{config.InvoicesPath}, f.pages.Paths)
	assert.Equal(t, []string{"inv-1"}, f.notifier.Updated)
}

func TestUpdate_ValidationFailureIsReported(t *testing.T) {
	f := newFixture(false)

	out := f.svc.Update(context.Background(), "inv-1", form("c2", "0", "void"))

	assert.Equal(t, OutcomeError, out.Kind)
	assert.Equal(t, config.MsgUpdateMissingFields, out.State.Message)
	assert.Equal(t, []string{config.MsgAmountPositive}, out.State.Errors["amount"])
	assert.Equal(t, []string{config.MsgSelectStatus}, out.State.Errors["status"])
	assert.Empty(t, f.store.Updated)
	assert.Empty(t, f.pages.Paths)
}

func TestUpdate_StorageFailure(t *testing.T) {
	f := newFixture(false)
	f.store.ErrUpdate = errConnectivity

	out := f.svc.Update(context.Background(), "inv-1", form("c2", "20", "paid"))

	assert.Equal(t, OutcomeError, out.Kind)
	assert.Equal(t, State{Message: config.MsgUpdateDatabaseError}, out.State)
	assert.Empty(t, f.pages.Paths)
}

func TestUpdate_MissingInvoice(t *testing.T) {
	t.Run("lenient", func(t *testing.T) {
		f := newFixture(false)
		f.store.ErrUpdate = errMissing

		out := f.svc.Update(context.Background(), "inv-gone", form("c2", "20", "paid"))

		assert.Equal(t, OutcomeRedirect, out.Kind)
		assert.Equal(t, []string{config.InvoicesPath}, f.pages.Paths)
		assert.Empty(t, f.notifier.Updated)
	})

	t.Run("strict", func(t *testing.T) {
		f := newFixture(true)
		f.store.ErrUpdate = errMissing

		out := f.svc.Update(context.Background(), "inv-gone", form("c2", "20", "paid"))

		assert.Equal(t, OutcomeError, out.Kind)
		assert.Equal(t, State{Message: config.MsgUpdateNotFound}, out.State)
		assert.True(t, ierr.IsNotFound(out.Err))
		assert.Empty(t, f.pages.Paths)
	})
}

// --- DELETE ---

func TestDelete_Success(t *testing.T) {
	f := newFixture(false)

	out := f.svc.Delete(context.Background(), "inv-1")

	assert.Equal(t, OutcomeDone, out.Kind)
	assert.Empty(t, out.Target)
	assert.Equal(t, []string{"inv-1"}, f.store.Deleted)
	assert.Equal(t, []string{config.InvoicesPath}, f.pages.Paths)
	assert.Equal(t, []string{"inv-1"}, f.notifier.Deleted)
}

func TestDelete_ConnectivityFault(t *testing.T) {
	f := newFixture(false)
	f.store.ErrDelete = errConnectivity

	out := f.svc.Delete(context.Background(), "inv-1")

	assert.Equal(t, OutcomeError, out.Kind)
	assert.Equal(t, State{Message: "Database Error: Failed to Delete Invoice"}, out.State)
	assert.Empty(t, f.pages.Paths)
	assert.Empty(t, f.notifier.Deleted)
	assert.Equal(t, []string{"delete invoice"}, f.notifier.Errors)
}

func TestDelete_AlreadyDeleted(t *testing.T) {
	t.Run("no-op success", func(t *testing.T) {
		f := newFixture(false)
		f.store.ErrDelete = errMissing

		out := f.svc.Delete(context.Background(), "inv-1")

		assert.Equal(t, OutcomeDone, out.Kind)
		assert.Equal(t, State{}, out.State)
		assert.Equal(t, []string{config.InvoicesPath}, f.pages.Paths)
		assert.Empty(t, f.notifier.Errors)
	})

	t.Run("reported failure", func(t *testing.T) {
		f := newFixture(true)
		f.store.ErrDelete = errMissing

		out := f.svc.Delete(context.Background(), "inv-1")

		assert.Equal(t, OutcomeError, out.Kind)
		assert.Equal(t, State{Message: config.MsgDeleteNotFound}, out.State)
		assert.Empty(t, f.pages.Paths)
		assert.Empty(t, f.notifier.Errors)
	})
}

// --- DASHBOARD ---

func TestDashboard(t *testing.T) {
	f := newFixture(false)
	f.store.Items = []domain.InvoiceListItem{{Invoice: domain.Invoice{ID: "a"}, CustomerName: "Amy"}}
	f.svc.customers = &fakeCustomerStore{Customers: []domain.Customer{{ID: "c1", Name: "Amy"}}}

	d, err := f.svc.Dashboard(context.Background())
	require.NoError(t, err)
	assert.Len(t, d.Invoices, 1)
	assert.Len(t, d.Customers, 1)

	f.store.ErrList = errConnectivity
	_, err = f.svc.Dashboard(context.Background())
	assert.True(t, ierr.IsDatabase(err))
}

func TestNewInvoiceService_NilNotifier(t *testing.T) {
	store := &fakeInvoiceStore{}
	svc := NewInvoiceService(Deps{Invoices: store, Pages: &fakeRevalidator{}})

	assert.NotPanics(t, func() {
		svc.Delete(context.Background(), "inv-1")
	})
}
