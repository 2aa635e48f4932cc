package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/set-night/invoicedash/internal/cache"
	"github.com/set-night/invoicedash/internal/config"
	"github.com/set-night/invoicedash/internal/domain"
	ierr "github.com/set-night/invoicedash/internal/errors"
	"github.com/set-night/invoicedash/internal/service"
	"github.com/set-night/invoicedash/internal/view"
)

const (
	maxFormMemory = 1 << 20
	htmlType      = "text/html; charset=utf-8"
)

func (h *Handler) handleListInvoices(c *gin.Context) {
	ctx := c.Request.Context()

	if page, ok := h.pages.Get(ctx, config.InvoicesPath); ok {
		c.Header("X-Cache", "HIT")
		c.Data(http.StatusOK, page.ContentType, page.Body)
		return
	}

	dashboard, err := h.invoices.Dashboard(ctx)
	if err != nil {
		slog.Error("failed to load invoices", "error", err)
		_ = c.Error(ierr.WithError(err).WithHint("Failed to fetch invoices").Mark(ierr.ErrDatabase))
		return
	}

	body, err := view.RenderInvoices(dashboard.Invoices, dashboard.Customers)
	if err != nil {
		slog.Error("failed to render invoices", "error", err)
		_ = c.Error(ierr.WithError(err).WithHint("Failed to render invoices").Mark(ierr.ErrSystem))
		return
	}

	h.pages.Set(ctx, config.InvoicesPath, cache.Page{
		ContentType: htmlType,
		Body:        body,
		RenderedAt:  time.Now(),
	})

	c.Header("X-Cache", "MISS")
	c.Data(http.StatusOK, htmlType, body)
}

func (h *Handler) handleCreateInvoice(c *gin.Context) {
	form, ok := bindInvoiceForm(c)
	if !ok {
		return
	}
	h.respond(c, h.invoices.Create(c.Request.Context(), service.State{}, form))
}

func (h *Handler) handleUpdateInvoice(c *gin.Context) {
	form, ok := bindInvoiceForm(c)
	if !ok {
		return
	}
	h.respond(c, h.invoices.Update(c.Request.Context(), c.Param("id"), form))
}

func (h *Handler) handleDeleteInvoice(c *gin.Context) {
	h.respond(c, h.invoices.Delete(c.Request.Context(), c.Param("id")))
}

// respond interprets a mutation outcome: redirects navigate with 303 See
// Other, completed in-place mutations answer 204, and failures return the
// form state with a status derived from the failure kind.
func (h *Handler) respond(c *gin.Context, out service.Outcome) {
	switch out.Kind {
	case service.OutcomeRedirect:
		c.Redirect(http.StatusSeeOther, out.Target)
	case service.OutcomeDone:
		c.Status(http.StatusNoContent)
	default:
		c.JSON(ierr.HTTPStatusFromErr(out.Err), out.State)
	}
}

func bindInvoiceForm(c *gin.Context) (domain.InvoiceForm, bool) {
	err := c.Request.ParseMultipartForm(maxFormMemory)
	if err != nil && !errors.Is(err, http.ErrNotMultipart) {
		_ = c.Error(ierr.WithError(err).WithHint("Invalid form submission").Mark(ierr.ErrValidation))
		return domain.InvoiceForm{}, false
	}
	return domain.FormFromValues(c.Request.PostForm), true
}
