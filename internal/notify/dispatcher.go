package notify

import (
	"fmt"
	"strings"

	"github.com/introlaser/shop-bot/internal/entity"
)

// Dispatcher composes the order mails sent after a receipt is accepted.
type Dispatcher struct {
	adminEmail string
}

func NewDispatcher(adminEmail string) *Dispatcher {
	return &Dispatcher{adminEmail: adminEmail}
}

// AdminMessage returns the admin notification for a paid order. The
// archived receipt rides along as an attachment so the admin can verify
// without touching the database.
func (d *Dispatcher) AdminMessage(order *entity.Order, receiptPath string) (Message, bool) {
	if d.adminEmail == "" {
		return Message{}, false
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Оплачен заказ №%d\n\n", order.ID)
	fmt.Fprintf(&b, "Покупатель: %s\n", order.CustomerName)
	fmt.Fprintf(&b, "Телефон: %s\n", order.CustomerPhone)
	if order.CustomerEmail != "" {
		fmt.Fprintf(&b, "Email: %s\n", order.CustomerEmail)
	}
	fmt.Fprintf(&b, "Адрес доставки: %s\n\n", order.DeliveryAddress)
	writeItems(&b, order)
	fmt.Fprintf(&b, "\nИтого: %.2f руб.\n", order.TotalAmount)

	return Message{
		To:             d.adminEmail,
		Subject:        fmt.Sprintf("Новый оплаченный заказ №%d", order.ID),
		Body:           b.String(),
		AttachmentPath: receiptPath,
	}, true
}

// CustomerMessage returns the confirmation for the customer, or
// ok=false when the order has no email on file.
func (d *Dispatcher) CustomerMessage(order *entity.Order) (Message, bool) {
	if order.CustomerEmail == "" {
		return Message{}, false
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Здравствуйте, %s!\n\n", order.CustomerName)
	fmt.Fprintf(&b, "Ваш заказ №%d подтвержден, оплата получена.\n\n", order.ID)
	writeItems(&b, order)
	fmt.Fprintf(&b, "\nИтого: %.2f руб.\n", order.TotalAmount)
	fmt.Fprintf(&b, "Доставка по адресу: %s\n\nСпасибо за покупку!\n", order.DeliveryAddress)

	return Message{
		To:      order.CustomerEmail,
		Subject: fmt.Sprintf("Заказ №%d подтвержден", order.ID),
		Body:    b.String(),
	}, true
}

func writeItems(b *strings.Builder, order *entity.Order) {
	b.WriteString("Состав заказа:\n")
	for _, it := range order.Items {
		fmt.Fprintf(b, "  %s x%d, %.2f руб.\n", it.Name, it.Quantity, it.Price)
	}
}
