package handler

import (
	"context"

	"github.com/set-night/invoicedash/internal/cache"
	"github.com/set-night/invoicedash/internal/config"
	"github.com/set-night/invoicedash/internal/domain"
	"github.com/set-night/invoicedash/internal/service"
)

// InvoiceService is the invoice core as seen by the HTTP boundary.
type InvoiceService interface {
	Create(ctx context.Context, prev service.State, form domain.InvoiceForm) service.Outcome
	Update(ctx context.Context, id string, form domain.InvoiceForm) service.Outcome
	Delete(ctx context.Context, id string) service.Outcome
	Dashboard(ctx context.Context) (*service.Dashboard, error)
}

type PageCache interface {
	Get(ctx context.Context, path string) (cache.Page, bool)
	Set(ctx context.Context, path string, page cache.Page)
}

// Handler holds all dependencies needed by the HTTP handlers.
type Handler struct {
	cfg      *config.Config
	invoices InvoiceService
	pages    PageCache
}

// Deps contains all dependencies required to construct a Handler.
type Deps struct {
	Cfg      *config.Config
	Invoices InvoiceService
	Pages    PageCache
}

// New creates a new Handler from the provided dependencies.
func New(deps Deps) *Handler {
	return &Handler{
		cfg:      deps.Cfg,
		invoices: deps.Invoices,
		pages:    deps.Pages,
	}
}
