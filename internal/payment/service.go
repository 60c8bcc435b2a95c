package payment

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/docconnect/docconnect/internal/core/datamodel/subscription"
	"github.com/docconnect/docconnect/internal/core/events"
)

// Service applies verified gateway events to payment, session and subscription
// state. The repositories record each delivery in the webhook ledger inside
// the mutation transaction; a replayed delivery comes back as applied=false
// and short-circuits into a no-op.
type Service struct {
	payments      AdminRepositoryAPI
	subscriptions AdminSubscriptionRepositoryAPI
	eventBus      *events.EventBus
	logger        *slog.Logger
}

func NewService(
	payments AdminRepositoryAPI,
	subscriptions AdminSubscriptionRepositoryAPI,
	eventBus *events.EventBus,
	logger *slog.Logger,
) *Service {
	return &Service{
		payments:      payments,
		subscriptions: subscriptions,
		eventBus:      eventBus,
		logger:        logger,
	}
}

// ApplyChargeSuccess activates the chat session paid for by the charge. A
// charge with no session id in metadata (a manual top-up, for instance) is
// logged and ignored.
func (s *Service) ApplyChargeSuccess(ctx context.Context, ev ChargeSuccessEvent) error {
	if ev.Metadata.SessionID == "" {
		s.logger.Warn("charge.success with no session_id in metadata",
			"reference", ev.Reference,
			"patient_id", ev.Metadata.PatientID,
			"doctor_id", ev.Metadata.DoctorID)
		return nil
	}

	applied, err := s.payments.ApplyChargeSuccess(EventChargeSuccess, ev.Reference, ev.Metadata.SessionID)
	if err != nil {
		return fmt.Errorf("failed to apply charge.success for reference %s: %w", ev.Reference, err)
	}
	if !applied {
		s.logger.Info("duplicate charge.success delivery, skipping",
			"reference", ev.Reference,
			"session_id", ev.Metadata.SessionID)
		return nil
	}

	s.logger.Info("session activated by charge.success",
		"session_id", ev.Metadata.SessionID,
		"reference", ev.Reference,
		"amount_kobo", ev.AmountKobo)

	s.eventBus.Publish(ctx, events.NewPaymentSucceededEvent(ev.Reference, ev.Metadata.SessionID, ev.AmountKobo))
	s.eventBus.Publish(ctx, events.NewSessionActivatedEvent(ev.Metadata.SessionID, ev.Reference, ev.AmountKobo))

	return nil
}

// RecordSubscription stores a new recurring billing relationship. Missing
// required fields are logged and skipped; the gateway gets its 200 either way.
func (s *Service) RecordSubscription(ctx context.Context, ev SubscriptionCreateEvent) error {
	if ev.Metadata.PatientID == "" || ev.Metadata.DoctorID == "" || ev.SubscriptionCode == "" {
		s.logger.Warn("subscription.create missing required fields",
			"subscription_code", ev.SubscriptionCode,
			"patient_id", ev.Metadata.PatientID,
			"doctor_id", ev.Metadata.DoctorID)
		return nil
	}

	sub := &subscription.Subscription{
		PatientID:       ev.Metadata.PatientID,
		DoctorID:        ev.Metadata.DoctorID,
		PaystackSubCode: ev.SubscriptionCode,
		PlanAmountKobo:  ev.AmountKobo,
		Status:          subscription.StatusActive,
	}
	if ev.Plan.PlanCode != "" {
		sub.PaystackPlanCode = &ev.Plan.PlanCode
	}

	applied, err := s.subscriptions.Create(EventSubscriptionCreate, sub)
	if err != nil {
		return fmt.Errorf("failed to record subscription %s: %w", ev.SubscriptionCode, err)
	}
	if !applied {
		s.logger.Info("duplicate subscription.create delivery, skipping",
			"subscription_code", ev.SubscriptionCode)
		return nil
	}

	s.logger.Info("subscription recorded",
		"subscription_code", ev.SubscriptionCode,
		"patient_id", ev.Metadata.PatientID,
		"doctor_id", ev.Metadata.DoctorID)

	s.eventBus.Publish(ctx, events.NewSubscriptionCreatedEvent(
		ev.SubscriptionCode, ev.Metadata.PatientID, ev.Metadata.DoctorID, ev.AmountKobo))

	return nil
}

// CancelSubscription flips a subscription to cancelled by gateway code.
func (s *Service) CancelSubscription(ctx context.Context, ev SubscriptionDisableEvent) error {
	if ev.SubscriptionCode == "" {
		s.logger.Warn("subscription.disable with no subscription_code")
		return nil
	}

	applied, err := s.subscriptions.CancelByCode(EventSubscriptionDisable, ev.SubscriptionCode)
	if err != nil {
		return fmt.Errorf("failed to cancel subscription %s: %w", ev.SubscriptionCode, err)
	}
	if !applied {
		s.logger.Info("duplicate subscription.disable delivery, skipping",
			"subscription_code", ev.SubscriptionCode)
		return nil
	}

	s.logger.Info("subscription cancelled", "subscription_code", ev.SubscriptionCode)

	s.eventBus.Publish(ctx, events.NewSubscriptionCancelledEvent(ev.SubscriptionCode))

	return nil
}
