package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/introlaser/shop-bot/internal/common"
	"github.com/introlaser/shop-bot/internal/entity"
)

type addCartItemRequest struct {
	UserID    string `json:"user_id" binding:"required"`
	ProductID uint   `json:"product_id" binding:"required"`
	Quantity  int    `json:"quantity"`
}

func (s *Server) addCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	// The product must exist and be purchasable before it enters a cart.
	p, err := s.products.GetByID(c.Request.Context(), req.ProductID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if !p.Available {
		c.JSON(http.StatusConflict, gin.H{"error": "product is not available"})
		return
	}

	if err := s.carts.AddItem(c.Request.Context(), req.UserID, req.ProductID, req.Quantity); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) removeCartItem(c *gin.Context) {
	productID, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	if err := s.carts.RemoveItem(c.Request.Context(), userID, productID); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) listCart(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	items, err := s.carts.List(c.Request.Context(), userID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

type checkoutRequest struct {
	UserID          string `json:"user_id" binding:"required"`
	CustomerName    string `json:"customer_name" binding:"required"`
	CustomerPhone   string `json:"customer_phone" binding:"required"`
	CustomerEmail   string `json:"customer_email"`
	DeliveryAddress string `json:"delivery_address" binding:"required"`
}

// checkout turns the user's cart into a pending order. Item names and
// prices are captured at this moment; later catalog edits do not touch
// placed orders.
func (s *Server) checkout(c *gin.Context) {
	var req checkoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	items, err := s.carts.List(c.Request.Context(), req.UserID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if len(items) == 0 {
		s.writeError(c, common.NewAppError("EMPTY_CART", "cart is empty", common.ErrInvalidInput))
		return
	}

	order := &entity.Order{
		UserID:          req.UserID,
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerEmail:   req.CustomerEmail,
		DeliveryAddress: req.DeliveryAddress,
	}
	for _, it := range items {
		order.Items = append(order.Items, entity.OrderItem{
			ProductID: it.ProductID,
			Name:      it.Product.Name,
			Quantity:  it.Quantity,
			Price:     it.Product.Price,
		})
		order.TotalAmount += it.Product.Price * float64(it.Quantity)
	}

	if err := s.orders.Create(c.Request.Context(), order); err != nil {
		s.writeError(c, err)
		return
	}
	if err := s.carts.Clear(c.Request.Context(), req.UserID); err != nil {
		// The order exists; a stale cart is an annoyance, not a failure.
		s.logger.Warn("cart not cleared after checkout", "user_id", req.UserID, "order_id", order.ID, "error", err)
	}

	s.logger.Info("order placed", "order_id", order.ID, "user_id", req.UserID, "total", order.TotalAmount)
	c.JSON(http.StatusCreated, order)
}

func (s *Server) listOrders(c *gin.Context) {
	userID := c.Query("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}
	orders, err := s.orders.ListByUser(c.Request.Context(), userID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}
