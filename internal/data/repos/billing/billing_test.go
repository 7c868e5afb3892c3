package billing

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/yungbote/lingo-backend/internal/data/repos/testutil"
	types "github.com/yungbote/lingo-backend/internal/domain"
	"gorm.io/datatypes"
)

func TestUserSubscriptionRepoUpsert(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewUserSubscriptionRepo(db, testutil.Logger(t))

	userID := uuid.New()
	end := time.Now().UTC().Add(30 * 24 * time.Hour).Truncate(time.Second)

	if err := repo.UpsertByUserID(ctx, tx, &types.UserSubscription{
		UserID:                 userID,
		StripeCustomerID:       "cus_1",
		StripeSubscriptionID:   "sub_1",
		StripePriceID:          "price_1",
		StripeCurrentPeriodEnd: end,
	}); err != nil {
		t.Fatalf("UpsertByUserID(insert): %v", err)
	}
	if err := repo.UpsertByUserID(ctx, tx, &types.UserSubscription{
		UserID:                 userID,
		StripeCustomerID:       "cus_1",
		StripeSubscriptionID:   "sub_2",
		StripePriceID:          "price_2",
		StripeCurrentPeriodEnd: end,
	}); err != nil {
		t.Fatalf("UpsertByUserID(update): %v", err)
	}

	got, err := repo.GetByUserID(ctx, tx, userID)
	if err != nil {
		t.Fatalf("GetByUserID: %v", err)
	}
	if got == nil || got.StripeSubscriptionID != "sub_2" || got.StripePriceID != "price_2" {
		t.Fatalf("UpsertByUserID: expected overwritten row, got %+v", got)
	}

	newEnd := end.Add(30 * 24 * time.Hour)
	n, err := repo.UpdatePeriodBySubscriptionID(ctx, tx, "sub_2", "price_3", newEnd)
	if err != nil {
		t.Fatalf("UpdatePeriodBySubscriptionID: %v", err)
	}
	if n != 1 {
		t.Fatalf("UpdatePeriodBySubscriptionID: want=1 got=%d", n)
	}
	got, err = repo.GetBySubscriptionID(ctx, tx, "sub_2")
	if err != nil {
		t.Fatalf("GetBySubscriptionID: %v", err)
	}
	if got.StripePriceID != "price_3" || !got.StripeCurrentPeriodEnd.Equal(newEnd) {
		t.Fatalf("UpdatePeriodBySubscriptionID: got %+v", got)
	}

	n, err = repo.UpdatePeriodBySubscriptionID(ctx, tx, "sub_unknown", "price_3", newEnd)
	if err != nil || n != 0 {
		t.Fatalf("UpdatePeriodBySubscriptionID(unknown): n=%d err=%v", n, err)
	}
}

func TestBillingEventRepo(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)
	ctx := context.Background()
	repo := NewBillingEventRepo(db, testutil.Logger(t))

	ev := &types.BillingEvent{ID: "evt_1", Type: "invoice.payment_succeeded", Payload: datatypes.JSON([]byte(`{}`))}
	inserted, err := repo.Record(ctx, tx, ev)
	if err != nil || !inserted {
		t.Fatalf("Record: inserted=%v err=%v", inserted, err)
	}
	inserted, err = repo.Record(ctx, tx, &types.BillingEvent{ID: "evt_1", Type: "invoice.payment_succeeded"})
	if err != nil || inserted {
		t.Fatalf("Record(duplicate): inserted=%v err=%v", inserted, err)
	}

	exists, err := repo.Exists(ctx, tx, "evt_1")
	if err != nil || !exists {
		t.Fatalf("Exists: got=%v err=%v", exists, err)
	}

	old := &types.BillingEvent{ID: "evt_old", Type: "x", ProcessedAt: time.Now().UTC().Add(-90 * 24 * time.Hour)}
	if _, err := repo.Record(ctx, tx, old); err != nil {
		t.Fatalf("Record(old): %v", err)
	}
	n, err := repo.DeleteOlderThan(ctx, tx, time.Now().UTC().Add(-30*24*time.Hour))
	if err != nil {
		t.Fatalf("DeleteOlderThan: %v", err)
	}
	if n != 1 {
		t.Fatalf("DeleteOlderThan: want=1 got=%d", n)
	}
}
