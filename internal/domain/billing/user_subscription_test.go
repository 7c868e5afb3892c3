package billing

import (
	"testing"
	"time"
)

func TestIsActiveGraceWindow(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	cases := []struct {
		name string
		sub  *UserSubscription
		want bool
	}{
		{"nil", nil, false},
		{"no price", &UserSubscription{StripeCurrentPeriodEnd: now.Add(48 * time.Hour)}, false},
		{"future period", &UserSubscription{StripePriceID: "price_1", StripeCurrentPeriodEnd: now.Add(time.Hour)}, true},
		{"ended 12h ago", &UserSubscription{StripePriceID: "price_1", StripeCurrentPeriodEnd: now.Add(-12 * time.Hour)}, true},
		{"ended 36h ago", &UserSubscription{StripePriceID: "price_1", StripeCurrentPeriodEnd: now.Add(-36 * time.Hour)}, false},
		{"ended exactly 24h ago", &UserSubscription{StripePriceID: "price_1", StripeCurrentPeriodEnd: now.Add(-24 * time.Hour)}, false},
	}
	for _, tc := range cases {
		if got := tc.sub.IsActive(now); got != tc.want {
			t.Fatalf("%s: want=%v got=%v", tc.name, tc.want, got)
		}
	}
}
