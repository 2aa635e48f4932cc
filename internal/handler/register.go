package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/set-night/invoicedash/internal/config"
	"github.com/set-night/invoicedash/internal/middleware"
)

// Register registers all routes on the engine.
func (h *Handler) Register(r *gin.Engine) {
	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	invoices := r.Group(config.InvoicesPath)
	invoices.GET("", h.handleListInvoices)

	mutations := invoices.Group("", middleware.RateLimit(h.cfg.MutationRatePerMinute))
	mutations.POST("", h.handleCreateInvoice)
	mutations.POST("/:id/edit", h.handleUpdateInvoice)
	mutations.POST("/:id/delete", h.handleDeleteInvoice)
}

// NewEngine builds a gin engine with the standard middleware chain and all routes.
func NewEngine(h *Handler) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.Recover(),
		middleware.Logging(),
		middleware.ErrorHandler(),
	)
	h.Register(r)
	return r
}
