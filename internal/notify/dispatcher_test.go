package notify

import (
	"strings"
	"testing"

	"github.com/introlaser/shop-bot/internal/entity"
)

func testOrder() *entity.Order {
	return &entity.Order{
		ID:              42,
		CustomerName:    "Анна",
		CustomerPhone:   "+7 900 000-00-00",
		CustomerEmail:   "anna@example.com",
		DeliveryAddress: "Москва, ул. Ленина, 1",
		TotalAmount:     3000,
		Items: []entity.OrderItem{
			{Name: "Крем для рук", Quantity: 2, Price: 500},
			{Name: "Наушники", Quantity: 1, Price: 2000},
		},
	}
}

func TestAdminMessage(t *testing.T) {
	d := NewDispatcher("admin@example.com")
	msg, ok := d.AdminMessage(testOrder(), "/archive/receipt_user_20250310_143000.jpg")
	if !ok {
		t.Fatalf("expected a message")
	}
	if msg.To != "admin@example.com" {
		t.Errorf("To = %q", msg.To)
	}
	if msg.AttachmentPath == "" {
		t.Errorf("admin mail must carry the receipt attachment")
	}
	for _, want := range []string{"№42", "Анна", "Крем для рук x2", "Наушники x1", "3000.00"} {
		if !strings.Contains(msg.Body, want) {
			t.Errorf("body missing %q:\n%s", want, msg.Body)
		}
	}
}

func TestAdminMessage_NoAdminConfigured(t *testing.T) {
	d := NewDispatcher("")
	if _, ok := d.AdminMessage(testOrder(), "/x.jpg"); ok {
		t.Errorf("no admin email means no message")
	}
}

func TestCustomerMessage(t *testing.T) {
	d := NewDispatcher("admin@example.com")
	msg, ok := d.CustomerMessage(testOrder())
	if !ok {
		t.Fatalf("expected a message")
	}
	if msg.To != "anna@example.com" {
		t.Errorf("To = %q", msg.To)
	}
	if msg.AttachmentPath != "" {
		t.Errorf("customer mail carries no attachment")
	}
	if !strings.Contains(msg.Body, "№42") || !strings.Contains(msg.Body, "Ленина") {
		t.Errorf("body missing order details:\n%s", msg.Body)
	}
}

func TestCustomerMessage_NoEmail(t *testing.T) {
	order := testOrder()
	order.CustomerEmail = ""
	d := NewDispatcher("admin@example.com")
	if _, ok := d.CustomerMessage(order); ok {
		t.Errorf("no customer email means no message")
	}
}
