package postgres

import (
	"gorm.io/gorm"

	"github.com/docconnect/docconnect/internal/core/datamodel/subscription"
	paymentpkg "github.com/docconnect/docconnect/internal/payment"
	paymentpg "github.com/docconnect/docconnect/internal/payment/postgres"
)

// AdminSubscriptionRepository runs with service scope; only the webhook path
// creates or cancels subscription rows. Both mutations share a transaction
// with their webhook ledger insert, so a replay is a no-op and a failed
// mutation leaves the delivery retryable.
type AdminSubscriptionRepository struct {
	db *gorm.DB
}

func NewAdminSubscriptionRepository(db *gorm.DB) paymentpkg.AdminSubscriptionRepositoryAPI {
	return &AdminSubscriptionRepository{db: db}
}

func (r *AdminSubscriptionRepository) Create(eventType string, s *subscription.Subscription) (bool, error) {
	applied := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		fresh, err := paymentpg.RecordDelivery(tx, eventType, s.PaystackSubCode)
		if err != nil {
			return err
		}
		if !fresh {
			return nil
		}

		if err := tx.Create(s).Error; err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

func (r *AdminSubscriptionRepository) CancelByCode(eventType, subscriptionCode string) (bool, error) {
	applied := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		fresh, err := paymentpg.RecordDelivery(tx, eventType, subscriptionCode)
		if err != nil {
			return err
		}
		if !fresh {
			return nil
		}

		err = tx.Model(&subscription.Subscription{}).
			Where("paystack_sub_code = ?", subscriptionCode).
			Update("status", subscription.StatusCancelled).Error
		if err != nil {
			return err
		}
		applied = true
		return nil
	})
	return applied, err
}

// SubscriptionRepository is the user-scoped read side.
type SubscriptionRepository struct {
	db *gorm.DB
}

func NewSubscriptionRepository(db *gorm.DB) *SubscriptionRepository {
	return &SubscriptionRepository{db: db}
}

func (r *SubscriptionRepository) ListByPatient(patientID string) ([]*subscription.Subscription, error) {
	var subs []*subscription.Subscription
	err := r.db.Where("patient_id = ?", patientID).Order("created_at DESC").Find(&subs).Error
	return subs, err
}
