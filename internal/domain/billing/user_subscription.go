package billing

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ActiveGracePeriod keeps a subscription active for a day past its billing period end,
// covering the gap before the renewal webhook lands.
const ActiveGracePeriod = 24 * time.Hour

type UserSubscription struct {
	ID                     uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID                 uuid.UUID `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	StripeCustomerID       string    `gorm:"not null;index;column:stripe_customer_id" json:"stripe_customer_id"`
	StripeSubscriptionID   string    `gorm:"not null;uniqueIndex;column:stripe_subscription_id" json:"stripe_subscription_id"`
	StripePriceID          string    `gorm:"not null;column:stripe_price_id" json:"stripe_price_id"`
	StripeCurrentPeriodEnd time.Time `gorm:"not null;column:stripe_current_period_end" json:"stripe_current_period_end"`

	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (UserSubscription) TableName() string { return "user_subscription" }

func (s *UserSubscription) BeforeCreate(*gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// IsActive is recomputed on every read and never persisted.
func (s *UserSubscription) IsActive(now time.Time) bool {
	if s == nil || s.StripePriceID == "" {
		return false
	}
	return s.StripeCurrentPeriodEnd.Add(ActiveGracePeriod).After(now)
}

// BillingEvent records a processed provider webhook so redeliveries are skipped.
type BillingEvent struct {
	ID          string         `gorm:"primaryKey;column:id" json:"id"`
	Type        string         `gorm:"not null;index;column:type" json:"type"`
	Payload     datatypes.JSON `gorm:"column:payload" json:"payload"`
	ProcessedAt time.Time      `gorm:"not null;index;column:processed_at" json:"processed_at"`
}

func (BillingEvent) TableName() string { return "billing_event" }
