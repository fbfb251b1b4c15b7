// Package stripeclient adapts the Stripe SDK to the PaymentProvider
// contract the reconciler depends on.
package stripeclient

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/ScholarStream/scholarship_service/internal/domain"
	"github.com/ScholarStream/scholarship_service/internal/interfaces"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"github.com/stripe/stripe-go/v79/webhook"
)

type Client struct {
	api           *client.API
	webhookSecret string
}

func New(secretKey, webhookSecret string) *Client {
	api := &client.API{}
	api.Init(secretKey, nil)
	return &Client{
		api:           api,
		webhookSecret: webhookSecret,
	}
}

func (c *Client) CreateIntent(ctx context.Context, amountMinor int64, currency string, metadata map[string]string) (*interfaces.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountMinor),
		Currency: stripe.String(currency),
	}
	params.Context = ctx
	for k, v := range metadata {
		params.AddMetadata(k, v)
	}

	pi, err := c.api.PaymentIntents.New(params)
	if err != nil {
		return nil, fmt.Errorf("create payment intent: %v: %w", err, domain.ErrUpstream)
	}
	return intentFromStripe(pi), nil
}

func (c *Client) RetrieveIntent(ctx context.Context, id string) (*interfaces.PaymentIntent, error) {
	params := &stripe.PaymentIntentParams{}
	params.Context = ctx

	pi, err := c.api.PaymentIntents.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("retrieve payment intent: %v: %w", err, domain.ErrUpstream)
	}
	return intentFromStripe(pi), nil
}

func (c *Client) CreateCheckoutSession(ctx context.Context, in interfaces.CheckoutSessionInput) (*interfaces.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{
		Mode:               stripe.String(string(stripe.CheckoutSessionModePayment)),
		PaymentMethodTypes: stripe.StringSlice([]string{"card"}),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency: stripe.String(in.Currency),
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(in.ProductName),
					},
					UnitAmount: stripe.Int64(in.AmountMinor),
				},
				Quantity: stripe.Int64(1),
			},
		},
		SuccessURL: stripe.String(in.SuccessURL),
		CancelURL:  stripe.String(in.CancelURL),
	}
	params.Context = ctx
	for k, v := range in.Metadata {
		params.AddMetadata(k, v)
	}

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, fmt.Errorf("create checkout session: %v: %w", err, domain.ErrUpstream)
	}
	return sessionFromStripe(s), nil
}

func (c *Client) RetrieveSession(ctx context.Context, id string) (*interfaces.CheckoutSession, error) {
	params := &stripe.CheckoutSessionParams{}
	params.Context = ctx
	params.AddExpand("payment_intent")

	s, err := c.api.CheckoutSessions.Get(id, params)
	if err != nil {
		return nil, fmt.Errorf("retrieve checkout session: %v: %w", err, domain.ErrUpstream)
	}
	return sessionFromStripe(s), nil
}

func (c *Client) ConstructEvent(payload []byte, signature string) (*interfaces.WebhookEvent, error) {
	event, err := webhook.ConstructEvent(payload, signature, c.webhookSecret)
	if err != nil {
		return nil, fmt.Errorf("webhook signature verification failed: %v: %w", err, domain.ErrInvalid)
	}

	out := &interfaces.WebhookEvent{Type: string(event.Type)}

	if out.Type == "payment_intent.succeeded" {
		var pi stripe.PaymentIntent
		// A malformed payload on a signature-valid event will never decode
		// on redelivery either, so surface it as an event with no intent
		// and let the handler acknowledge it.
		if err := json.Unmarshal(event.Data.Raw, &pi); err == nil {
			out.Intent = intentFromStripe(&pi)
		}
	}

	return out, nil
}

func intentFromStripe(pi *stripe.PaymentIntent) *interfaces.PaymentIntent {
	if pi == nil {
		return nil
	}
	return &interfaces.PaymentIntent{
		ID:           pi.ID,
		ClientSecret: pi.ClientSecret,
		Status:       string(pi.Status),
		Metadata:     pi.Metadata,
	}
}

func sessionFromStripe(s *stripe.CheckoutSession) *interfaces.CheckoutSession {
	if s == nil {
		return nil
	}
	return &interfaces.CheckoutSession{
		ID:       s.ID,
		URL:      s.URL,
		Metadata: s.Metadata,
		Intent:   intentFromStripe(s.PaymentIntent),
	}
}
