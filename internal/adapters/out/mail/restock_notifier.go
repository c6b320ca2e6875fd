// internal/adapters/out/mail/restock_notifier.go
package mail

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// EmailClient is the minimal send contract (implemented by SendGridClient).
type EmailClient interface {
	Send(ctx context.Context, from, to, subject, body string) error
}

// RestockNotifier implements restock.Notifier: mails a subscriber that the
// SKU they watched is purchasable again.
type RestockNotifier struct {
	client EmailClient
	from   string
}

func NewRestockNotifier(client EmailClient, from string) *RestockNotifier {
	return &RestockNotifier{
		client: client,
		from:   strings.TrimSpace(from),
	}
}

func (n *RestockNotifier) NotifyBackInStock(ctx context.Context, email, productName, skuID string) error {
	if n == nil || n.client == nil {
		return errors.New("restock_notifier: email client is nil")
	}

	to := strings.TrimSpace(email)
	if to == "" {
		return errors.New("restock_notifier: email is empty")
	}

	name := strings.TrimSpace(productName)
	if name == "" {
		name = "the item you were watching"
	}

	subject := fmt.Sprintf("Back in stock: %s", name)
	body := fmt.Sprintf(
		"Good news: %s is back in stock.\n\nVariant: %s\n\nStock is limited, so grab it while it lasts.",
		name, skuID,
	)

	return n.client.Send(ctx, n.from, to, subject, body)
}
