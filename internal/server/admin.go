package server

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

func (s *Server) cancelOrder(c *gin.Context) {
	id, err := paramUint(c, "id")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}
	if err := s.orders.Cancel(c.Request.Context(), id); err != nil {
		s.writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// exportOrders streams the orders workbook. Optional from/to query
// params are YYYY-MM-DD, inclusive.
func (s *Server) exportOrders(c *gin.Context) {
	from, err := queryDate(c, "from")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid from date, want YYYY-MM-DD"})
		return
	}
	to, err := queryDate(c, "to")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid to date, want YYYY-MM-DD"})
		return
	}

	data, err := s.exporter.ExportOrdersXLSX(c.Request.Context(), from, to)
	if err != nil {
		s.writeError(c, err)
		return
	}

	filename := fmt.Sprintf("orders_%s.xlsx", time.Now().Format("20060102"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func queryDate(c *gin.Context, name string) (*time.Time, error) {
	v := c.Query(name)
	if v == "" {
		return nil, nil
	}
	t, err := time.Parse("2006-01-02", v)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
