package export

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/introlaser/shop-bot/constants"
	"github.com/introlaser/shop-bot/internal/common"
	"github.com/introlaser/shop-bot/internal/entity"
)

var exportTestNow = time.Date(2025, 3, 11, 1, 30, 0, 0, mustMoscow())

func mustMoscow() *time.Location {
	loc, err := time.LoadLocation("Europe/Moscow")
	if err != nil {
		panic(err)
	}
	return loc
}

type fixedClock struct{}

func (fixedClock) Now() time.Time           { return exportTestNow }
func (fixedClock) Location() *time.Location { return mustMoscow() }

type fakeOrderRepo struct {
	orders []*entity.Order
	from   *time.Time
	to     *time.Time
}

func (f *fakeOrderRepo) Create(context.Context, *entity.Order) error { return nil }

func (f *fakeOrderRepo) GetByID(context.Context, uint) (*entity.Order, error) {
	return nil, common.ErrNotFound
}

func (f *fakeOrderRepo) ListByUser(context.Context, string) ([]*entity.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) ListAll(_ context.Context, from, to *time.Time) ([]*entity.Order, error) {
	f.from, f.to = from, to
	return f.orders, nil
}

func (f *fakeOrderRepo) MarkPaid(context.Context, uint) error { return nil }
func (f *fakeOrderRepo) Cancel(context.Context, uint) error   { return nil }

func testOrders() []*entity.Order {
	return []*entity.Order{
		{
			ID:            1,
			CustomerName:  "Анна",
			CustomerPhone: "+7 900 000-00-01",
			TotalAmount:   1500,
			PaymentStatus: constants.PaymentPaid,
			CreatedAt:     exportTestNow.Add(-48 * time.Hour),
			Items:         []entity.OrderItem{{Name: "Крем для рук", Quantity: 3, Price: 500}},
		},
		{
			ID:            2,
			CustomerName:  "Борис",
			CustomerPhone: "+7 900 000-00-02",
			TotalAmount:   2000,
			PaymentStatus: constants.PaymentPending,
			CreatedAt:     exportTestNow.Add(-24 * time.Hour),
			Items:         []entity.OrderItem{{Name: "Наушники", Quantity: 1, Price: 2000}},
		},
		{
			ID:            3,
			CustomerName:  "Вера",
			CustomerPhone: "+7 900 000-00-03",
			TotalAmount:   500,
			PaymentStatus: constants.PaymentCancelled,
			CreatedAt:     exportTestNow,
		},
	}
}

func TestExportOrdersXLSX_OneRowPerOrder(t *testing.T) {
	repo := &fakeOrderRepo{orders: testOrders()}
	svc := NewService(repo, fixedClock{}, nil)

	data, err := svc.ExportOrdersXLSX(context.Background(), nil, nil)
	if err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows("Orders")
	if err != nil {
		t.Fatalf("read sheet: %v", err)
	}
	if len(rows) != len(repo.orders)+1 {
		t.Fatalf("expected header plus %d rows, got %d", len(repo.orders), len(rows))
	}
	if rows[0][0] != "Order ID" {
		t.Errorf("expected header row first, got %q", rows[0][0])
	}
	if rows[1][2] != "Анна" || rows[2][2] != "Борис" || rows[3][2] != "Вера" {
		t.Errorf("customer column mismatch: %v", rows)
	}
	if rows[2][8] != string(constants.PaymentPending) {
		t.Errorf("payment status column = %q", rows[2][8])
	}

	// Open window means no bounds reach the store.
	if repo.from != nil || repo.to != nil {
		t.Errorf("expected unbounded query, got from=%v to=%v", repo.from, repo.to)
	}
}

func TestExportOrdersXLSX_FromOnlyWindowEndsToday(t *testing.T) {
	repo := &fakeOrderRepo{}
	svc := NewService(repo, fixedClock{}, nil)

	from := exportTestNow.Add(-72 * time.Hour)
	if _, err := svc.ExportOrdersXLSX(context.Background(), &from, nil); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
	if repo.to == nil {
		t.Fatalf("from-only window must be closed at today")
	}

	// 01:30 on March 11 in Moscow is still March 10 in UTC; the window
	// end must follow the shop zone, not the host zone.
	want := time.Date(2025, 3, 11, 0, 0, 0, 0, mustMoscow())
	if !repo.to.Equal(want) {
		t.Errorf("window end = %v, want %v", repo.to, want)
	}
}
