package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/docconnect/docconnect/internal/core/datamodel/payment"
	"github.com/docconnect/docconnect/internal/core/datamodel/session"
	paymentpkg "github.com/docconnect/docconnect/internal/payment"
)

type PaymentRepository struct {
	db *gorm.DB
}

func NewPaymentRepository(db *gorm.DB) paymentpkg.RepositoryAPI {
	return &PaymentRepository{db: db}
}

func (r *PaymentRepository) Create(p *payment.Payment) error {
	return r.db.Create(p).Error
}

func (r *PaymentRepository) GetByReference(reference string) (*payment.Payment, error) {
	var p payment.Payment
	err := r.db.Where("paystack_ref = ?", reference).First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PaymentRepository) GetBySessionID(sessionID string) ([]*payment.Payment, error) {
	var payments []*payment.Payment
	err := r.db.Where("session_id = ?", sessionID).Order("created_at DESC").Find(&payments).Error
	return payments, err
}

// AdminPaymentRepository runs with service scope for the webhook path.
type AdminPaymentRepository struct {
	db *gorm.DB
}

func NewAdminPaymentRepository(db *gorm.DB) paymentpkg.AdminRepositoryAPI {
	return &AdminPaymentRepository{db: db}
}

// ApplyChargeSuccess records the delivery, marks the payment success and
// activates the session, all in a single transaction. A replayed delivery
// returns false without touching anything; a failed update rolls the ledger
// row back along with the mutation, so the delivery stays retryable.
func (r *AdminPaymentRepository) ApplyChargeSuccess(eventType, reference, sessionID string) (bool, error) {
	applied := false
	err := r.db.Transaction(func(tx *gorm.DB) error {
		fresh, err := RecordDelivery(tx, eventType, reference)
		if err != nil {
			return err
		}
		if !fresh {
			return nil
		}

		res := tx.Model(&payment.Payment{}).
			Where("paystack_ref = ?", reference).
			Update("status", payment.StatusSuccess)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("no payment row for reference %s", reference)
		}

		res = tx.Model(&session.ChatSession{}).
			Where("id = ?", sessionID).
			Updates(map[string]interface{}{
				"status":         session.StatusActive,
				"payment_status": session.PaymentSuccess,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("no session row for id %s", sessionID)
		}

		applied = true
		return nil
	})
	return applied, err
}
