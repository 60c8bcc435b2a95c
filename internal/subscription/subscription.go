package subscription

import (
	"context"
	"time"

	"github.com/docconnect/docconnect/internal/core/datamodel/subscription"
	"github.com/docconnect/docconnect/internal/payment"
)

type ServiceAPI interface {
	ListForPatient(ctx context.Context, patientID string) ([]View, error)
}

type RepositoryAPI interface {
	ListByPatient(patientID string) ([]*subscription.Subscription, error)
}

// View is the patient-facing shape of a subscription. Plan amounts are naira.
type View struct {
	ID               string    `json:"id"`
	DoctorID         string    `json:"doctor_id"`
	SubscriptionCode string    `json:"subscription_code"`
	PlanCode         *string   `json:"plan_code"`
	PlanAmount       float64   `json:"plan_amount"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

func ToView(s *subscription.Subscription) View {
	return View{
		ID:               s.ID,
		DoctorID:         s.DoctorID,
		SubscriptionCode: s.PaystackSubCode,
		PlanCode:         s.PaystackPlanCode,
		PlanAmount:       payment.KoboToNaira(s.PlanAmountKobo),
		Status:           s.Status,
		CreatedAt:        s.CreatedAt,
	}
}

type ListResponse struct {
	Subscriptions []View `json:"subscriptions"`
	Total         int    `json:"total"`
}
