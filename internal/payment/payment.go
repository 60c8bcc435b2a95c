package payment

import (
	"github.com/docconnect/docconnect/internal/core/datamodel/payment"
	"github.com/docconnect/docconnect/internal/core/datamodel/subscription"
)

// RepositoryAPI is the request-scoped payment store used by the booking flow.
type RepositoryAPI interface {
	Create(p *payment.Payment) error
	GetByReference(reference string) (*payment.Payment, error)
	GetBySessionID(sessionID string) ([]*payment.Payment, error)
}

// AdminRepositoryAPI is the elevated store used only by the webhook path.
// Webhook deliveries carry no end-user session, so these mutations run with
// service scope; keeping them on a separate type keeps that privilege visible.
//
// Every method records the delivery in the webhook ledger inside the same
// transaction as its mutation and returns applied=false for a replay. A
// failed mutation rolls the ledger row back too, so the gateway's redelivery
// is not mistaken for a duplicate.
type AdminRepositoryAPI interface {
	// ApplyChargeSuccess marks the payment row matching reference success and
	// activates the session.
	ApplyChargeSuccess(eventType, reference, sessionID string) (applied bool, err error)
}

type AdminSubscriptionRepositoryAPI interface {
	Create(eventType string, s *subscription.Subscription) (applied bool, err error)
	CancelByCode(eventType, subscriptionCode string) (applied bool, err error)
}
