package postgres

import (
	"gorm.io/gorm"

	"github.com/docconnect/docconnect/internal/core/datamodel/webhookevent"
)

// RecordDelivery inserts a ledger row for the (event type, reference) pair
// inside the caller's transaction. It returns false when the pair was already
// recorded, which callers treat as a replay and skip their mutation. Because
// the insert shares the mutation's transaction, a failed mutation rolls the
// ledger row back and the delivery stays retryable.
//
// An existence check runs before the insert so a replay does not abort the
// surrounding transaction with a unique violation. Two concurrent deliveries
// of the same event can still race past the check; the unique index rejects
// the loser, that transaction rolls back, and the gateway's retry then sees
// the committed row.
func RecordDelivery(tx *gorm.DB, eventType, reference string) (bool, error) {
	var count int64
	err := tx.Model(&webhookevent.WebhookEvent{}).
		Where("event_type = ? AND reference = ?", eventType, reference).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	if count > 0 {
		return false, nil
	}

	event := &webhookevent.WebhookEvent{
		EventType: eventType,
		Reference: reference,
	}
	if err := tx.Create(event).Error; err != nil {
		return false, err
	}
	return true, nil
}
