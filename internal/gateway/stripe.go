// Package gateway wraps the external payment provider behind the small
// interface the payment ledger consumes. Order creation goes through the
// provider's SDK; callback signatures are verified locally against the
// webhook secret.
package gateway

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/http"
	"time"

	stripe "github.com/stripe/stripe-go/v72"
	"github.com/stripe/stripe-go/v72/client"

	"github.com/eventcrew/catering-api/internal/config"
	"github.com/eventcrew/catering-api/internal/domain"
)

const defaultTimeout = 10 * time.Second

type StripeGateway struct {
	sc            *client.API
	currency      string
	webhookSecret string
}

func NewStripeGateway(conf *config.GatewayConfig) *StripeGateway {
	timeout := conf.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, &stripe.BackendConfig{
		HTTPClient: &http.Client{Timeout: timeout},
	})

	sc := client.New(conf.SecretKey, &stripe.Backends{API: backend})

	currency := conf.Currency
	if currency == "" {
		currency = "inr"
	}

	return &StripeGateway{
		sc:            sc,
		currency:      currency,
		webhookSecret: conf.WebhookSecret,
	}
}

// CreateOrder opens a payment intent for the given amount in minor units.
func (g *StripeGateway) CreateOrder(ctx context.Context, amountMinor int64, receipt string) (domain.OrderHandle, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(g.currency),
	}
	params.Context = ctx
	params.AddMetadata("receipt", receipt)

	intent, err := g.sc.PaymentIntents.New(params)
	if err != nil {
		return domain.OrderHandle{}, fmt.Errorf("sc.PaymentIntents.New -> %w", err)
	}

	return domain.OrderHandle{
		OrderID:  intent.ID,
		Amount:   amountMinor,
		Currency: g.currency,
	}, nil
}

// VerifySignature checks the callback signature: hex HMAC-SHA256 of
// "orderRef|paymentRef" keyed with the webhook secret, compared in constant
// time.
func (g *StripeGateway) VerifySignature(orderRef, paymentRef, signature string) bool {
	expected := Sign(g.webhookSecret, orderRef, paymentRef)

	return hmac.Equal([]byte(expected), []byte(signature))
}

// Sign computes the callback signature for an order/payment pair.
func Sign(secret, orderRef, paymentRef string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderRef + "|" + paymentRef))

	return hex.EncodeToString(mac.Sum(nil))
}
