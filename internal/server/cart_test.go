package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/introlaser/shop-bot/internal/common"
	"github.com/introlaser/shop-bot/internal/entity"
)

func newCheckoutServer(carts *fakeCartRepo, orders *fakeOrderRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	s := NewServer(nil, orders, carts, nil, nil, nil, nil, nil, nil, nil)
	return s.Router()
}

func postJSON(t *testing.T, r *gin.Engine, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

const checkoutBody = `{
	"user_id": "u1",
	"customer_name": "Анна",
	"customer_phone": "+7 900 000-00-00",
	"customer_email": "anna@example.com",
	"delivery_address": "Москва, ул. Ленина, 1"
}`

func TestCheckout_CapturesPricesAndClearsCart(t *testing.T) {
	carts := &fakeCartRepo{items: []*entity.CartItem{
		{UserID: "u1", ProductID: 10, Quantity: 2, Product: entity.Product{ID: 10, Name: "Крем для рук", Price: 500}},
		{UserID: "u1", ProductID: 11, Quantity: 1, Product: entity.Product{ID: 11, Name: "Наушники", Price: 2000}},
	}}
	orders := &fakeOrderRepo{}
	r := newCheckoutServer(carts, orders)

	w := postJSON(t, r, "/orders", checkoutBody)
	if w.Code != http.StatusCreated {
		t.Fatalf("status = %d, body %s", w.Code, w.Body.String())
	}

	if len(orders.created) != 1 {
		t.Fatalf("expected one order, got %d", len(orders.created))
	}
	order := orders.created[0]
	if order.PaymentStatus != "" && order.PaymentStatus != "pending" {
		t.Errorf("unexpected payment status %q", order.PaymentStatus)
	}
	if order.TotalAmount != 2*500+2000 {
		t.Errorf("total = %v, want 3000", order.TotalAmount)
	}
	if len(order.Items) != 2 {
		t.Fatalf("expected two order items, got %d", len(order.Items))
	}
	// Prices and names are frozen at checkout time from the catalog rows.
	if order.Items[0].Price != 500 || order.Items[0].Name != "Крем для рук" || order.Items[0].Quantity != 2 {
		t.Errorf("first item not captured from cart: %+v", order.Items[0])
	}
	if order.Items[1].Price != 2000 || order.Items[1].Name != "Наушники" {
		t.Errorf("second item not captured from cart: %+v", order.Items[1])
	}
	if !carts.cleared {
		t.Errorf("checkout must clear the cart")
	}

	var resp entity.Order
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.TotalAmount != 3000 {
		t.Errorf("response total = %v", resp.TotalAmount)
	}
}

func TestCheckout_EmptyCartRejected(t *testing.T) {
	carts := &fakeCartRepo{}
	orders := &fakeOrderRepo{}
	r := newCheckoutServer(carts, orders)

	w := postJSON(t, r, "/orders", checkoutBody)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
	if len(orders.created) != 0 {
		t.Errorf("no order may be created from an empty cart")
	}
}

func TestCheckout_MissingFieldsRejected(t *testing.T) {
	r := newCheckoutServer(&fakeCartRepo{}, &fakeOrderRepo{})
	w := postJSON(t, r, "/orders", `{"user_id": "u1"}`)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", w.Code)
	}
}

// fakes

type fakeCartRepo struct {
	items   []*entity.CartItem
	cleared bool
}

func (f *fakeCartRepo) AddItem(context.Context, string, uint, int) error { return nil }

func (f *fakeCartRepo) RemoveItem(context.Context, string, uint) error { return nil }

func (f *fakeCartRepo) List(context.Context, string) ([]*entity.CartItem, error) {
	return f.items, nil
}

func (f *fakeCartRepo) Clear(context.Context, string) error {
	f.cleared = true
	f.items = nil
	return nil
}

type fakeOrderRepo struct {
	created []*entity.Order
}

func (f *fakeOrderRepo) Create(_ context.Context, o *entity.Order) error {
	o.ID = uint(len(f.created) + 1)
	f.created = append(f.created, o)
	return nil
}

func (f *fakeOrderRepo) GetByID(context.Context, uint) (*entity.Order, error) {
	return nil, common.ErrNotFound
}

func (f *fakeOrderRepo) ListByUser(context.Context, string) ([]*entity.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) ListAll(context.Context, *time.Time, *time.Time) ([]*entity.Order, error) {
	return nil, nil
}

func (f *fakeOrderRepo) MarkPaid(context.Context, uint) error { return nil }
func (f *fakeOrderRepo) Cancel(context.Context, uint) error   { return nil }
