package export

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/introlaser/shop-bot/internal/clock"
	"github.com/introlaser/shop-bot/internal/repository"
)

// Service is a tiny façade over repositories that produces XLSX bytes for exports.
type Service struct {
	ordersRepo repository.OrderRepository
	clock      clock.Clock
	logger     *slog.Logger
}

func NewService(ordersRepo repository.OrderRepository, clk clock.Clock, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{ordersRepo: ordersRepo, clock: clk, logger: logger}
}

// ExportOrdersXLSX returns an XLSX workbook (as bytes) for the given date window.
// If only from is provided -> from..today (inclusive).
// If only to is provided   -> beginning..to (inclusive).
// If neither is provided   -> all orders.
func (s *Service) ExportOrdersXLSX(ctx context.Context, from, to *time.Time) ([]byte, error) {
	start := time.Now()

	// Normalize dates (date-only, shop zone)
	loc := s.clock.Location()
	var fromDate, toDate *time.Time
	if from != nil {
		f := clock.DateOf(*from, loc)
		fromDate = &f
	}
	if to != nil {
		t := clock.DateOf(*to, loc)
		toDate = &t
	}
	if fromDate != nil && toDate == nil {
		t := clock.DateOf(s.clock.Now(), loc)
		toDate = &t
	}

	orders, err := s.ordersRepo.ListAll(ctx, fromDate, toDate)
	if err != nil {
		return nil, fmt.Errorf("query orders: %w", err)
	}

	f := excelize.NewFile()
	const sheet = "Orders"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	headers := []string{
		"Order ID",
		"Created",
		"Customer",
		"Phone",
		"Email",
		"Delivery Address",
		"Items",
		"Total",
		"Payment Status",
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	row := 2
	for _, o := range orders {
		write := func(col int, v any) {
			cell, _ := excelize.CoordinatesToCellName(col, row)
			_ = f.SetCellValue(sheet, cell, v)
		}

		items := make([]string, 0, len(o.Items))
		for _, it := range o.Items {
			items = append(items, fmt.Sprintf("%s x%d", it.Name, it.Quantity))
		}

		write(1, o.ID)
		write(2, o.CreatedAt.Format("2006-01-02 15:04"))
		write(3, o.CustomerName)
		write(4, o.CustomerPhone)
		write(5, o.CustomerEmail)
		write(6, truncate(o.DeliveryAddress, 140))
		write(7, truncate(strings.Join(items, "; "), 200))
		write(8, o.TotalAmount)
		write(9, string(o.PaymentStatus))

		row++
	}

	// Widen a few columns
	_ = f.SetColWidth(sheet, "A", "A", 10)
	_ = f.SetColWidth(sheet, "B", "B", 18)
	_ = f.SetColWidth(sheet, "C", "C", 26)
	_ = f.SetColWidth(sheet, "D", "E", 20)
	_ = f.SetColWidth(sheet, "F", "F", 48)
	_ = f.SetColWidth(sheet, "G", "G", 60)
	_ = f.SetColWidth(sheet, "H", "I", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	s.logger.Info("export.xlsx.ok",
		"rows", len(orders),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

func truncate(s string, n int) string {
	if n <= 0 || len(s) <= n {
		return s
	}
	if n <= 1 {
		return s[:n]
	}
	return s[:n-1] + "…"
}
