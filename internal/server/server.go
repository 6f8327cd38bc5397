// Package server exposes the shop over HTTP for the chat frontend and
// the admin tooling.
package server

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/introlaser/shop-bot/internal/async"
	"github.com/introlaser/shop-bot/internal/common"
	"github.com/introlaser/shop-bot/internal/export"
	"github.com/introlaser/shop-bot/internal/notify"
	"github.com/introlaser/shop-bot/internal/pipeline"
	"github.com/introlaser/shop-bot/internal/repository"
)

type Server struct {
	products   repository.ProductRepository
	orders     repository.OrderRepository
	carts      repository.CartRepository
	receipts   repository.ReceiptRepository
	feedback   repository.FeedbackRepository
	validator  *pipeline.Validator
	dispatcher *notify.Dispatcher
	mailQueue  *async.MailQueue
	exporter   *export.Service
	logger     *slog.Logger
}

func NewServer(
	products repository.ProductRepository,
	orders repository.OrderRepository,
	carts repository.CartRepository,
	receipts repository.ReceiptRepository,
	feedback repository.FeedbackRepository,
	validator *pipeline.Validator,
	dispatcher *notify.Dispatcher,
	mailQueue *async.MailQueue,
	exporter *export.Service,
	logger *slog.Logger,
) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		products:   products,
		orders:     orders,
		carts:      carts,
		receipts:   receipts,
		feedback:   feedback,
		validator:  validator,
		dispatcher: dispatcher,
		mailQueue:  mailQueue,
		exporter:   exporter,
		logger:     logger,
	}
}

// Router builds the gin engine with all routes registered.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/products", s.listProducts)
	r.GET("/products/:id", s.getProduct)

	r.POST("/cart/items", s.addCartItem)
	r.DELETE("/cart/items/:id", s.removeCartItem)
	r.GET("/cart", s.listCart)

	r.POST("/orders", s.checkout)
	r.GET("/orders", s.listOrders)
	r.POST("/orders/:id/receipt", s.submitReceipt)

	r.POST("/suggestions", s.addSuggestion)
	r.POST("/questions", s.addQuestion)

	admin := r.Group("/admin")
	{
		admin.POST("/products", s.createProduct)
		admin.PUT("/products/:id", s.updateProduct)
		admin.DELETE("/products/:id", s.deleteProduct)
		admin.POST("/products/:id/photos", s.addProductPhoto)
		admin.POST("/orders/:id/cancel", s.cancelOrder)
		admin.GET("/orders/export", s.exportOrders)
	}

	return r
}

// writeError maps the error taxonomy onto HTTP statuses. Business
// rejections never travel this path; they are ordinary 200 responses.
func (s *Server) writeError(c *gin.Context, err error) {
	var appErr *common.AppError
	code := ""
	if errors.As(err, &appErr) {
		code = appErr.Code
	}

	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, common.ErrNotFound):
		status = http.StatusNotFound
	case code == "ORDER_NOT_PENDING":
		status = http.StatusConflict
	case errors.Is(err, common.ErrInvalidInput), errors.Is(err, common.ErrValidation):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(status, gin.H{"error": "internal error"})
		return
	}
	c.JSON(status, gin.H{"error": err.Error(), "code": code})
}
