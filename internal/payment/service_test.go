package payment_test

import (
	"context"
	"errors"
	"log/slog"
	"os"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/docconnect/docconnect/internal/core/datamodel/subscription"
	"github.com/docconnect/docconnect/internal/core/events"
	paymentPkg "github.com/docconnect/docconnect/internal/payment"
)

// mockAdminPaymentRepo mirrors the transactional repository contract: the
// delivery is remembered only when the mutation succeeds, so a failed apply
// stays retryable.
type mockAdminPaymentRepo struct {
	seen       map[string]bool
	applied    [][2]string
	applyError error
}

func newMockAdminPaymentRepo() *mockAdminPaymentRepo {
	return &mockAdminPaymentRepo{seen: make(map[string]bool)}
}

func (m *mockAdminPaymentRepo) ApplyChargeSuccess(eventType, reference, sessionID string) (bool, error) {
	key := eventType + "|" + reference
	if m.seen[key] {
		return false, nil
	}
	if m.applyError != nil {
		return false, m.applyError
	}
	m.seen[key] = true
	m.applied = append(m.applied, [2]string{reference, sessionID})
	return true, nil
}

type mockAdminSubscriptionRepo struct {
	seen      map[string]bool
	created   []*subscription.Subscription
	cancelled []string
	mutErr    error
}

func newMockAdminSubscriptionRepo() *mockAdminSubscriptionRepo {
	return &mockAdminSubscriptionRepo{seen: make(map[string]bool)}
}

func (m *mockAdminSubscriptionRepo) Create(eventType string, s *subscription.Subscription) (bool, error) {
	key := eventType + "|" + s.PaystackSubCode
	if m.seen[key] {
		return false, nil
	}
	if m.mutErr != nil {
		return false, m.mutErr
	}
	m.seen[key] = true
	m.created = append(m.created, s)
	return true, nil
}

func (m *mockAdminSubscriptionRepo) CancelByCode(eventType, code string) (bool, error) {
	key := eventType + "|" + code
	if m.seen[key] {
		return false, nil
	}
	if m.mutErr != nil {
		return false, m.mutErr
	}
	m.seen[key] = true
	m.cancelled = append(m.cancelled, code)
	return true, nil
}

var _ = Describe("PaymentService", func() {
	var (
		service  *paymentPkg.Service
		payments *mockAdminPaymentRepo
		subs     *mockAdminSubscriptionRepo
	)

	BeforeEach(func() {
		payments = newMockAdminPaymentRepo()
		subs = newMockAdminSubscriptionRepo()

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		service = paymentPkg.NewService(payments, subs, events.NewEventBus(logger), logger)
	})

	chargeEvent := func(reference, sessionID string) paymentPkg.ChargeSuccessEvent {
		return paymentPkg.ChargeSuccessEvent{
			Reference:  reference,
			AmountKobo: 500000,
			Status:     "success",
			Metadata: paymentPkg.ChargeMetadata{
				SessionID: sessionID,
				DoctorID:  "doc1",
				PatientID: "pat1",
			},
		}
	}

	Describe("ApplyChargeSuccess", func() {
		Context("when the delivery is fresh", func() {
			It("should apply the charge against the session", func() {
				err := service.ApplyChargeSuccess(context.Background(), chargeEvent("dc_sess1_1", "sess1"))

				Expect(err).ToNot(HaveOccurred())
				Expect(payments.applied).To(HaveLen(1))
				Expect(payments.applied[0]).To(Equal([2]string{"dc_sess1_1", "sess1"}))
			})
		})

		Context("when the same delivery arrives twice", func() {
			It("should apply the mutation only once", func() {
				ev := chargeEvent("dc_sess1_1", "sess1")

				Expect(service.ApplyChargeSuccess(context.Background(), ev)).To(Succeed())
				Expect(service.ApplyChargeSuccess(context.Background(), ev)).To(Succeed())

				Expect(payments.applied).To(HaveLen(1))
			})
		})

		Context("when metadata carries no session id", func() {
			It("should skip the charge without error", func() {
				err := service.ApplyChargeSuccess(context.Background(), chargeEvent("dc_x_1", ""))

				Expect(err).ToNot(HaveOccurred())
				Expect(payments.applied).To(BeEmpty())
			})
		})

		Context("when the repository fails", func() {
			It("should surface the failure", func() {
				payments.applyError = errors.New("no payment row")

				err := service.ApplyChargeSuccess(context.Background(), chargeEvent("dc_sess1_1", "sess1"))

				Expect(err).To(HaveOccurred())
				Expect(err.Error()).To(ContainSubstring("dc_sess1_1"))
			})
		})

		Context("when a failed delivery is redelivered", func() {
			It("should apply the mutation on the retry", func() {
				ev := chargeEvent("dc_sess1_1", "sess1")

				payments.applyError = errors.New("session row not yet visible")
				Expect(service.ApplyChargeSuccess(context.Background(), ev)).ToNot(Succeed())
				Expect(payments.applied).To(BeEmpty())

				payments.applyError = nil
				Expect(service.ApplyChargeSuccess(context.Background(), ev)).To(Succeed())
				Expect(payments.applied).To(HaveLen(1))
			})
		})
	})

	Describe("RecordSubscription", func() {
		subscriptionEvent := func(code string) paymentPkg.SubscriptionCreateEvent {
			ev := paymentPkg.SubscriptionCreateEvent{
				SubscriptionCode: code,
				AmountKobo:       1500000,
				Metadata: paymentPkg.ChargeMetadata{
					DoctorID:  "doc1",
					PatientID: "pat1",
				},
			}
			ev.Plan.PlanCode = "PLN_1"
			return ev
		}

		It("should store a new subscription with its plan code", func() {
			err := service.RecordSubscription(context.Background(), subscriptionEvent("SUB_1"))

			Expect(err).ToNot(HaveOccurred())
			Expect(subs.created).To(HaveLen(1))
			Expect(subs.created[0].PaystackSubCode).To(Equal("SUB_1"))
			Expect(subs.created[0].PlanAmountKobo).To(Equal(int64(1500000)))
			Expect(subs.created[0].Status).To(Equal(subscription.StatusActive))
			Expect(subs.created[0].PaystackPlanCode).ToNot(BeNil())
			Expect(*subs.created[0].PaystackPlanCode).To(Equal("PLN_1"))
		})

		It("should store a replayed delivery only once", func() {
			ev := subscriptionEvent("SUB_1")

			Expect(service.RecordSubscription(context.Background(), ev)).To(Succeed())
			Expect(service.RecordSubscription(context.Background(), ev)).To(Succeed())

			Expect(subs.created).To(HaveLen(1))
		})

		It("should store a failed delivery on redelivery", func() {
			ev := subscriptionEvent("SUB_1")

			subs.mutErr = errors.New("connection reset")
			Expect(service.RecordSubscription(context.Background(), ev)).ToNot(Succeed())

			subs.mutErr = nil
			Expect(service.RecordSubscription(context.Background(), ev)).To(Succeed())
			Expect(subs.created).To(HaveLen(1))
		})

		It("should skip an event missing patient or doctor ids", func() {
			ev := subscriptionEvent("SUB_1")
			ev.Metadata.PatientID = ""

			err := service.RecordSubscription(context.Background(), ev)

			Expect(err).ToNot(HaveOccurred())
			Expect(subs.created).To(BeEmpty())
		})
	})

	Describe("CancelSubscription", func() {
		It("should cancel by gateway code", func() {
			err := service.CancelSubscription(context.Background(), paymentPkg.SubscriptionDisableEvent{SubscriptionCode: "SUB_1"})

			Expect(err).ToNot(HaveOccurred())
			Expect(subs.cancelled).To(Equal([]string{"SUB_1"}))
		})

		It("should cancel a replayed delivery only once", func() {
			ev := paymentPkg.SubscriptionDisableEvent{SubscriptionCode: "SUB_1"}

			Expect(service.CancelSubscription(context.Background(), ev)).To(Succeed())
			Expect(service.CancelSubscription(context.Background(), ev)).To(Succeed())

			Expect(subs.cancelled).To(HaveLen(1))
		})

		It("should ignore an event with no subscription code", func() {
			err := service.CancelSubscription(context.Background(), paymentPkg.SubscriptionDisableEvent{})

			Expect(err).ToNot(HaveOccurred())
			Expect(subs.cancelled).To(BeEmpty())
		})
	})
})
