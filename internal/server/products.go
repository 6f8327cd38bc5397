package server

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/introlaser/shop-bot/constants"
	"github.com/introlaser/shop-bot/internal/common"
	"github.com/introlaser/shop-bot/internal/entity"
)

func (s *Server) listProducts(c *gin.Context) {
	category := c.Query("category")
	if category != "" {
		if _, ok := constants.ParseCategory(category); !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "unknown category", "categories": constants.CategoriesAsStrings()})
			return
		}
	}
	all := c.Query("all") == "true"
	products, err := s.products.List(c.Request.Context(), category, !all)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

func (s *Server) getProduct(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	p, err := s.products.GetByID(c.Request.Context(), id)
	if err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type productRequest struct {
	Name           string         `json:"name" binding:"required"`
	Description    string         `json:"description"`
	Specifications map[string]any `json:"specifications"`
	Price          float64        `json:"price" binding:"required,gt=0"`
	Category       string         `json:"category" binding:"required"`
	Available      *bool          `json:"available"`
	PaymentLink    string         `json:"payment_link"`
	PaymentQR      string         `json:"payment_qr"`
}

func (s *Server) createProduct(c *gin.Context) {
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.productFromRequest(&req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if err := s.products.Create(c.Request.Context(), p); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (s *Server) updateProduct(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var req productRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	p, err := s.productFromRequest(&req)
	if err != nil {
		s.writeError(c, err)
		return
	}
	p.ID = id
	if err := s.products.Update(c.Request.Context(), p); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) deleteProduct(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	if err := s.products.Delete(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (s *Server) addProductPhoto(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid product id"})
		return
	}
	var req struct {
		PhotoURL  string `json:"photo_url" binding:"required"`
		SortOrder int    `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	photo := &entity.ProductPhoto{ProductID: id, PhotoURL: req.PhotoURL, SortOrder: req.SortOrder}
	if err := s.products.AddPhoto(c.Request.Context(), photo); err != nil {
		s.writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, photo)
}

// productFromRequest validates the category and the specifications
// document before anything touches the database.
func (s *Server) productFromRequest(req *productRequest) (*entity.Product, error) {
	cat, ok := constants.ParseCategory(req.Category)
	if !ok {
		return nil, common.NewAppError("BAD_CATEGORY", "unknown product category", common.ErrInvalidInput)
	}
	if err := ValidateSpecifications(req.Specifications); err != nil {
		return nil, err
	}
	available := true
	if req.Available != nil {
		available = *req.Available
	}
	return &entity.Product{
		Name:           req.Name,
		Description:    req.Description,
		Specifications: req.Specifications,
		Price:          req.Price,
		Category:       string(cat),
		Available:      available,
		PaymentLink:    req.PaymentLink,
		PaymentQR:      req.PaymentQR,
	}, nil
}

func paramUint(c *gin.Context, name string) (uint, error) {
	v, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(v), nil
}
