package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	EventTypeSessionActivated      = "session.activated"
	EventTypePaymentSucceeded      = "payment.succeeded"
	EventTypeSubscriptionCreated   = "subscription.created"
	EventTypeSubscriptionCancelled = "subscription.cancelled"
	EventTypeDoctorVerified        = "doctor.verified"
)

type SessionActivatedEvent struct {
	BaseEvent
	SessionID  string `json:"session_id"`
	Reference  string `json:"reference"`
	AmountKobo int64  `json:"amount_kobo"`
}

func NewSessionActivatedEvent(sessionID, reference string, amountKobo int64) *SessionActivatedEvent {
	return &SessionActivatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeSessionActivated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"session_id":  sessionID,
				"reference":   reference,
				"amount_kobo": amountKobo,
			},
		},
		SessionID:  sessionID,
		Reference:  reference,
		AmountKobo: amountKobo,
	}
}

type PaymentSucceededEvent struct {
	BaseEvent
	Reference  string `json:"reference"`
	SessionID  string `json:"session_id"`
	AmountKobo int64  `json:"amount_kobo"`
}

func NewPaymentSucceededEvent(reference, sessionID string, amountKobo int64) *PaymentSucceededEvent {
	return &PaymentSucceededEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypePaymentSucceeded,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"reference":   reference,
				"session_id":  sessionID,
				"amount_kobo": amountKobo,
			},
		},
		Reference:  reference,
		SessionID:  sessionID,
		AmountKobo: amountKobo,
	}
}

type SubscriptionCreatedEvent struct {
	BaseEvent
	SubscriptionCode string `json:"subscription_code"`
	PatientID        string `json:"patient_id"`
	DoctorID         string `json:"doctor_id"`
	PlanAmountKobo   int64  `json:"plan_amount_kobo"`
}

func NewSubscriptionCreatedEvent(subscriptionCode, patientID, doctorID string, planAmountKobo int64) *SubscriptionCreatedEvent {
	return &SubscriptionCreatedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeSubscriptionCreated,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"subscription_code": subscriptionCode,
				"patient_id":        patientID,
				"doctor_id":         doctorID,
				"plan_amount_kobo":  planAmountKobo,
			},
		},
		SubscriptionCode: subscriptionCode,
		PatientID:        patientID,
		DoctorID:         doctorID,
		PlanAmountKobo:   planAmountKobo,
	}
}

type SubscriptionCancelledEvent struct {
	BaseEvent
	SubscriptionCode string `json:"subscription_code"`
}

func NewSubscriptionCancelledEvent(subscriptionCode string) *SubscriptionCancelledEvent {
	return &SubscriptionCancelledEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeSubscriptionCancelled,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"subscription_code": subscriptionCode,
			},
		},
		SubscriptionCode: subscriptionCode,
	}
}

type DoctorVerifiedEvent struct {
	BaseEvent
	DoctorProfileID string `json:"doctor_profile_id"`
	Status          string `json:"status"`
}

func NewDoctorVerifiedEvent(doctorProfileID, status string) *DoctorVerifiedEvent {
	return &DoctorVerifiedEvent{
		BaseEvent: BaseEvent{
			ID:        uuid.NewString(),
			Type:      EventTypeDoctorVerified,
			Timestamp: time.Now(),
			Data: map[string]interface{}{
				"doctor_profile_id": doctorProfileID,
				"status":            status,
			},
		},
		DoctorProfileID: doctorProfileID,
		Status:          status,
	}
}
