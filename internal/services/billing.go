package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/yungbote/lingo-backend/internal/data/repos"
	types "github.com/yungbote/lingo-backend/internal/domain"
	"github.com/yungbote/lingo-backend/internal/observability"
	"github.com/yungbote/lingo-backend/internal/platform/apierr"
	"github.com/yungbote/lingo-backend/internal/platform/ctxutil"
	"github.com/yungbote/lingo-backend/internal/platform/logger"
	"github.com/yungbote/lingo-backend/internal/platform/stripeclient"
	"github.com/yungbote/lingo-backend/internal/realtime"
)

type BillingService interface {
	// CheckoutURL returns a billing-portal URL for existing customers and a
	// checkout URL otherwise.
	CheckoutURL(ctx context.Context) (string, error)
	HandleWebhook(ctx context.Context, payload []byte, signature string) error
	// PurgeEvents deletes processed webhook records older than retention.
	PurgeEvents(ctx context.Context, retention time.Duration) (int64, error)
}

type billingService struct {
	db        *gorm.DB
	log       *logger.Logger
	subs      repos.UserSubscriptionRepo
	events    repos.BillingEventRepo
	stripe    stripeclient.Client
	publisher EventPublisher
	appURL    string
	clock     func() time.Time
}

func NewBillingService(
	db *gorm.DB,
	log *logger.Logger,
	subs repos.UserSubscriptionRepo,
	events repos.BillingEventRepo,
	stripe stripeclient.Client,
	publisher EventPublisher,
	appURL string,
) BillingService {
	return &billingService{
		db:        db,
		log:       log.With("service", "BillingService"),
		subs:      subs,
		events:    events,
		stripe:    stripe,
		publisher: publisher,
		appURL:    strings.TrimRight(appURL, "/"),
		clock:     time.Now,
	}
}

func upstreamBillingError(err error) *apierr.Error {
	return apierr.New(http.StatusBadGateway, apierr.CodeUpstreamBilling, err)
}

func (s *billingService) CheckoutURL(ctx context.Context) (string, error) {
	rd := ctxutil.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return "", ErrUnauthorized
	}
	if s.stripe == nil {
		return "", upstreamBillingError(stripeclient.ErrNotConfigured)
	}
	returnURL := s.appURL + "/shop"

	sub, err := s.subs.GetByUserID(ctx, nil, rd.UserID)
	if err != nil {
		return "", err
	}
	if sub != nil && sub.StripeCustomerID != "" {
		url, err := s.stripe.CreatePortalSession(ctx, sub.StripeCustomerID, returnURL)
		if err != nil {
			return "", upstreamBillingError(err)
		}
		return url, nil
	}

	url, err := s.stripe.CreateCheckoutSession(ctx, stripeclient.CheckoutParams{
		UserID:     rd.UserID.String(),
		Email:      rd.Email,
		SuccessURL: returnURL,
		CancelURL:  returnURL,
	})
	if err != nil {
		return "", upstreamBillingError(err)
	}
	return url, nil
}

func (s *billingService) HandleWebhook(ctx context.Context, payload []byte, signature string) error {
	if s.stripe == nil {
		return upstreamBillingError(stripeclient.ErrNotConfigured)
	}
	ev, err := s.stripe.VerifyWebhook(payload, signature)
	if err != nil {
		observability.Current().IncWebhookEvent("unknown", "invalid_signature")
		return apierr.New(http.StatusBadRequest, apierr.CodeWebhookSignature, fmt.Errorf("webhook error: %w", err))
	}

	seen, err := s.events.Exists(ctx, nil, ev.ID)
	if err != nil {
		return err
	}
	if seen {
		s.log.Info("webhook event already processed", "event_id", ev.ID, "type", ev.Type)
		observability.Current().IncWebhookEvent(ev.Type, "duplicate")
		return nil
	}

	var changed uuid.UUID
	switch ev.Type {
	case stripeclient.EventCheckoutSessionCompleted:
		changed, err = s.handleCheckoutCompleted(ctx, ev, payload)
	case stripeclient.EventInvoicePaymentSucceeded:
		changed, err = s.handleInvoicePaid(ctx, ev, payload)
	default:
		err = s.recordEvent(ctx, nil, ev, payload)
	}
	if err != nil {
		observability.Current().IncWebhookEvent(ev.Type, "error")
		s.log.Warn("webhook event failed", "event_id", ev.ID, "type", ev.Type, "error", err)
		return err
	}
	observability.Current().IncWebhookEvent(ev.Type, "ok")

	if changed != uuid.Nil && s.publisher != nil {
		s.publisher.SubscriptionChanged(ctx, realtime.ProgressChanged{UserID: changed})
	}
	return nil
}

func (s *billingService) handleCheckoutCompleted(ctx context.Context, ev *stripeclient.Event, payload []byte) (uuid.UUID, error) {
	session, err := stripeclient.ParseCheckoutCompleted(ev)
	if err != nil {
		return uuid.Nil, apierr.BadRequest(err)
	}
	if session.UserID == "" {
		return uuid.Nil, apierr.BadRequest(errors.New("user id is required"))
	}
	userID, err := uuid.Parse(session.UserID)
	if err != nil {
		return uuid.Nil, apierr.BadRequest(fmt.Errorf("invalid user id: %w", err))
	}
	if session.SubscriptionID == "" {
		return uuid.Nil, apierr.BadRequest(errors.New("checkout session has no subscription"))
	}

	remote, err := s.stripe.GetSubscription(ctx, session.SubscriptionID)
	if err != nil {
		return uuid.Nil, upstreamBillingError(err)
	}
	customerID := remote.CustomerID
	if customerID == "" {
		customerID = session.CustomerID
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.subs.UpsertByUserID(ctx, tx, &types.UserSubscription{
			UserID:                 userID,
			StripeCustomerID:       customerID,
			StripeSubscriptionID:   remote.ID,
			StripePriceID:          remote.PriceID,
			StripeCurrentPeriodEnd: remote.CurrentPeriodEnd,
		}); err != nil {
			return err
		}
		return s.recordEvent(ctx, tx, ev, payload)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

func (s *billingService) handleInvoicePaid(ctx context.Context, ev *stripeclient.Event, payload []byte) (uuid.UUID, error) {
	subID, err := stripeclient.ParseInvoiceSubscriptionID(ev)
	if err != nil {
		return uuid.Nil, apierr.BadRequest(err)
	}
	remote, err := s.stripe.GetSubscription(ctx, subID)
	if err != nil {
		return uuid.Nil, upstreamBillingError(err)
	}

	var userID uuid.UUID
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.subs.GetBySubscriptionID(ctx, tx, remote.ID)
		if err != nil {
			return err
		}
		if existing == nil {
			// Checkout completion has not landed yet; a non-2xx makes the provider retry.
			return apierr.NotFound(errNotFound("subscription"))
		}
		if _, err := s.subs.UpdatePeriodBySubscriptionID(ctx, tx, remote.ID, remote.PriceID, remote.CurrentPeriodEnd); err != nil {
			return err
		}
		userID = existing.UserID
		return s.recordEvent(ctx, tx, ev, payload)
	})
	if err != nil {
		return uuid.Nil, err
	}
	return userID, nil
}

func (s *billingService) recordEvent(ctx context.Context, tx *gorm.DB, ev *stripeclient.Event, payload []byte) error {
	_, err := s.events.Record(ctx, tx, &types.BillingEvent{
		ID:          ev.ID,
		Type:        ev.Type,
		Payload:     datatypes.JSON(payload),
		ProcessedAt: s.clock().UTC(),
	})
	return err
}

func (s *billingService) PurgeEvents(ctx context.Context, retention time.Duration) (int64, error) {
	if retention <= 0 {
		return 0, nil
	}
	return s.events.DeleteOlderThan(ctx, nil, s.clock().Add(-retention))
}
