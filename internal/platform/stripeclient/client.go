package stripeclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	stripe "github.com/stripe/stripe-go/v76"
	"github.com/stripe/stripe-go/v76/client"
	"github.com/stripe/stripe-go/v76/webhook"
)

const (
	EventCheckoutSessionCompleted = "checkout.session.completed"
	EventInvoicePaymentSucceeded  = "invoice.payment_succeeded"
)

var ErrNotConfigured = errors.New("billing provider not configured")

type Config struct {
	SecretKey     string
	WebhookSecret string
	// PriceID selects a dashboard price; inline price data is used when empty.
	PriceID string
}

type CheckoutParams struct {
	UserID     string
	Email      string
	SuccessURL string
	CancelURL  string
}

type Subscription struct {
	ID               string
	CustomerID       string
	PriceID          string
	CurrentPeriodEnd time.Time
}

type Event struct {
	ID   string
	Type string
	Raw  json.RawMessage
}

type CheckoutCompleted struct {
	UserID         string
	CustomerID     string
	SubscriptionID string
}

// Client is the subset of the Stripe API the billing flow uses.
type Client interface {
	CreateCheckoutSession(ctx context.Context, p CheckoutParams) (string, error)
	CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error)
	GetSubscription(ctx context.Context, subscriptionID string) (*Subscription, error)
	VerifyWebhook(payload []byte, signature string) (*Event, error)
}

type stripeClient struct {
	api *client.API
	cfg Config
}

func New(cfg Config) (Client, error) {
	if strings.TrimSpace(cfg.SecretKey) == "" {
		return nil, ErrNotConfigured
	}
	api := &client.API{}
	api.Init(cfg.SecretKey, nil)
	return &stripeClient{api: api, cfg: cfg}, nil
}

func (c *stripeClient) CreateCheckoutSession(ctx context.Context, p CheckoutParams) (string, error) {
	item := &stripe.CheckoutSessionLineItemParams{Quantity: stripe.Int64(1)}
	if c.cfg.PriceID != "" {
		item.Price = stripe.String(c.cfg.PriceID)
	} else {
		item.PriceData = &stripe.CheckoutSessionLineItemPriceDataParams{
			Currency: stripe.String(string(stripe.CurrencyUSD)),
			ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
				Name:        stripe.String("Lingo Pro"),
				Description: stripe.String("Unlimited Hearts"),
			},
			UnitAmount: stripe.Int64(2000),
			Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
				Interval: stripe.String(string(stripe.PriceRecurringIntervalMonth)),
			},
		}
	}

	params := &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		PaymentMethodTypes:       stripe.StringSlice([]string{"card"}),
		BillingAddressCollection: stripe.String(string(stripe.CheckoutSessionBillingAddressCollectionAuto)),
		SuccessURL:               stripe.String(p.SuccessURL),
		CancelURL:                stripe.String(p.CancelURL),
		LineItems:                []*stripe.CheckoutSessionLineItemParams{item},
	}
	if p.Email != "" {
		params.CustomerEmail = stripe.String(p.Email)
	}
	params.Context = ctx
	params.AddMetadata("userId", p.UserID)

	sess, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}
	return sess.URL, nil
}

func (c *stripeClient) CreatePortalSession(ctx context.Context, customerID, returnURL string) (string, error) {
	params := &stripe.BillingPortalSessionParams{
		Customer:  stripe.String(customerID),
		ReturnURL: stripe.String(returnURL),
	}
	params.Context = ctx
	sess, err := c.api.BillingPortalSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create billing portal session: %w", err)
	}
	return sess.URL, nil
}

func (c *stripeClient) GetSubscription(ctx context.Context, subscriptionID string) (*Subscription, error) {
	params := &stripe.SubscriptionParams{}
	params.Context = ctx
	sub, err := c.api.Subscriptions.Get(subscriptionID, params)
	if err != nil {
		return nil, fmt.Errorf("retrieve subscription: %w", err)
	}
	return toSubscription(sub), nil
}

func (c *stripeClient) VerifyWebhook(payload []byte, signature string) (*Event, error) {
	if c.cfg.WebhookSecret == "" {
		return nil, ErrNotConfigured
	}
	ev, err := webhook.ConstructEventWithOptions(payload, signature, c.cfg.WebhookSecret, webhook.ConstructEventOptions{
		IgnoreAPIVersionMismatch: true,
	})
	if err != nil {
		return nil, err
	}
	out := &Event{ID: ev.ID, Type: string(ev.Type)}
	if ev.Data != nil {
		out.Raw = ev.Data.Raw
	}
	return out, nil
}

func toSubscription(sub *stripe.Subscription) *Subscription {
	if sub == nil {
		return nil
	}
	out := &Subscription{ID: sub.ID, CurrentPeriodEnd: time.Unix(sub.CurrentPeriodEnd, 0).UTC()}
	if sub.Customer != nil {
		out.CustomerID = sub.Customer.ID
	}
	if sub.Items != nil && len(sub.Items.Data) > 0 && sub.Items.Data[0].Price != nil {
		out.PriceID = sub.Items.Data[0].Price.ID
	}
	return out
}

// ParseCheckoutCompleted reads the session object of a checkout.session.completed event.
func ParseCheckoutCompleted(ev *Event) (*CheckoutCompleted, error) {
	var sess stripe.CheckoutSession
	if err := json.Unmarshal(ev.Raw, &sess); err != nil {
		return nil, fmt.Errorf("decode checkout session: %w", err)
	}
	out := &CheckoutCompleted{UserID: strings.TrimSpace(sess.Metadata["userId"])}
	if sess.Customer != nil {
		out.CustomerID = sess.Customer.ID
	}
	if sess.Subscription != nil {
		out.SubscriptionID = sess.Subscription.ID
	}
	return out, nil
}

// ParseInvoiceSubscriptionID reads the subscription id of an invoice event.
func ParseInvoiceSubscriptionID(ev *Event) (string, error) {
	var inv stripe.Invoice
	if err := json.Unmarshal(ev.Raw, &inv); err != nil {
		return "", fmt.Errorf("decode invoice: %w", err)
	}
	if inv.Subscription == nil || inv.Subscription.ID == "" {
		return "", errors.New("invoice has no subscription")
	}
	return inv.Subscription.ID, nil
}
