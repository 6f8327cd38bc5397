package server

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/introlaser/shop-bot/constants"
	"github.com/introlaser/shop-bot/internal/entity"
	"github.com/introlaser/shop-bot/internal/pipeline"
)

type receiptResponse struct {
	Accepted    bool   `json:"accepted"`
	Message     string `json:"message"`
	PaymentDate string `json:"payment_date,omitempty"`
}

// submitReceipt takes the uploaded payment receipt for an order and
// runs it through the validation pipeline. Rejections are 200 with
// accepted=false; only infrastructure trouble becomes a 5xx.
func (s *Server) submitReceipt(c *gin.Context) {
	orderID, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	userID := c.PostForm("user_id")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user_id is required"})
		return
	}

	order, err := s.orders.GetByID(c.Request.Context(), orderID)
	if err != nil {
		s.writeError(c, err)
		return
	}
	if order.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "resource not found"})
		return
	}
	if order.PaymentStatus != constants.PaymentPending {
		c.JSON(http.StatusConflict, gin.H{"error": "order is not awaiting payment"})
		return
	}

	fh, err := c.FormFile("receipt")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "receipt file is required"})
		return
	}
	ext := constants.NormalizeExt(filepath.Ext(fh.Filename))
	format := constants.MapExtToFormat(ext)
	if format == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unsupported file type", "allowed": []string{"pdf", "jpg", "jpeg", "png"}})
		return
	}

	// Spool the upload to disk under its original extension; the
	// archive name is derived from it later.
	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("upload_%s.%s", uuid.New().String(), ext))
	if err := c.SaveUploadedFile(fh, tmpPath); err != nil {
		s.logger.Error("failed to spool upload", "order_id", orderID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}
	defer os.Remove(tmpPath)

	outcome, err := s.validator.Validate(c.Request.Context(), pipeline.Submission{
		FilePath: tmpPath,
		Format:   format,
		UserID:   userID,
		Order:    order,
	})
	if err != nil {
		s.logger.Error("receipt validation failed", "order_id", orderID, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "внутренняя ошибка, попробуйте позже"})
		return
	}

	resp := receiptResponse{Accepted: outcome.Accepted, Message: outcome.Message}
	if outcome.PaymentDate != nil {
		resp.PaymentDate = outcome.PaymentDate.Format("02.01.2006")
	}
	if outcome.Accepted {
		s.notifyPaid(c, order, outcome.ArchivedPath)
	}
	c.JSON(http.StatusOK, resp)
}

// notifyPaid queues the admin and customer mails for a freshly paid
// order. Mail problems never surface to the uploader.
func (s *Server) notifyPaid(c *gin.Context, order *entity.Order, archivedPath string) {
	if msg, ok := s.dispatcher.AdminMessage(order, archivedPath); ok {
		_ = s.mailQueue.Enqueue(c.Request.Context(), msg)
	}
	if msg, ok := s.dispatcher.CustomerMessage(order); ok {
		_ = s.mailQueue.Enqueue(c.Request.Context(), msg)
	}
}
