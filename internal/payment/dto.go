package payment

import (
	"encoding/json"
	"fmt"
)

// Gateway event names this platform reacts to. Anything else is acknowledged
// and dropped.
const (
	EventChargeSuccess       = "charge.success"
	EventSubscriptionCreate  = "subscription.create"
	EventSubscriptionDisable = "subscription.disable"
)

// eventEnvelope is the generic wire shape of a Paystack delivery before the
// event-specific payload is decoded.
type eventEnvelope struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data"`
}

type ChargeMetadata struct {
	SessionID string `json:"session_id"`
	DoctorID  string `json:"doctor_id"`
	PatientID string `json:"patient_id"`
}

type ChargeSuccessEvent struct {
	Reference  string         `json:"reference"`
	AmountKobo int64          `json:"amount"`
	Status     string         `json:"status"`
	Metadata   ChargeMetadata `json:"metadata"`
}

type SubscriptionCreateEvent struct {
	SubscriptionCode string         `json:"subscription_code"`
	AmountKobo       int64          `json:"amount"`
	Metadata         ChargeMetadata `json:"metadata"`
	Plan             struct {
		PlanCode string `json:"plan_code"`
	} `json:"plan"`
}

type SubscriptionDisableEvent struct {
	SubscriptionCode string `json:"subscription_code"`
}

// WebhookEvent is the tagged union of gateway deliveries. Exactly one of the
// variant pointers is set; Kind tells which.
type WebhookEvent struct {
	Kind                string
	ChargeSuccess       *ChargeSuccessEvent
	SubscriptionCreate  *SubscriptionCreateEvent
	SubscriptionDisable *SubscriptionDisableEvent
}

// DecodeWebhookEvent parses the envelope and narrows it to a typed variant.
// Unrecognized event names yield a WebhookEvent with only Kind set, which the
// handler acknowledges without acting on.
func DecodeWebhookEvent(body []byte) (WebhookEvent, error) {
	var env eventEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return WebhookEvent{}, fmt.Errorf("invalid event envelope: %w", err)
	}

	out := WebhookEvent{Kind: env.Event}

	switch env.Event {
	case EventChargeSuccess:
		var ev ChargeSuccessEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return WebhookEvent{}, fmt.Errorf("invalid charge.success payload: %w", err)
		}
		out.ChargeSuccess = &ev
	case EventSubscriptionCreate:
		var ev SubscriptionCreateEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return WebhookEvent{}, fmt.Errorf("invalid subscription.create payload: %w", err)
		}
		out.SubscriptionCreate = &ev
	case EventSubscriptionDisable:
		var ev SubscriptionDisableEvent
		if err := json.Unmarshal(env.Data, &ev); err != nil {
			return WebhookEvent{}, fmt.Errorf("invalid subscription.disable payload: %w", err)
		}
		out.SubscriptionDisable = &ev
	}

	return out, nil
}
