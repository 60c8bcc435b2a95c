package payment_test

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	paymentPkg "github.com/docconnect/docconnect/internal/payment"
	"github.com/docconnect/docconnect/internal/transport"
)

type mockWebhookService struct {
	chargeEvents   []paymentPkg.ChargeSuccessEvent
	createEvents   []paymentPkg.SubscriptionCreateEvent
	disableEvents  []paymentPkg.SubscriptionDisableEvent
	chargeError    error
	subscribeError error
	cancelError    error
}

func (m *mockWebhookService) ApplyChargeSuccess(ctx context.Context, ev paymentPkg.ChargeSuccessEvent) error {
	m.chargeEvents = append(m.chargeEvents, ev)
	return m.chargeError
}

func (m *mockWebhookService) RecordSubscription(ctx context.Context, ev paymentPkg.SubscriptionCreateEvent) error {
	m.createEvents = append(m.createEvents, ev)
	return m.subscribeError
}

func (m *mockWebhookService) CancelSubscription(ctx context.Context, ev paymentPkg.SubscriptionDisableEvent) error {
	m.disableEvents = append(m.disableEvents, ev)
	return m.cancelError
}

var _ = Describe("WebhookHandler", func() {
	const secret = "sk_test_webhook_secret"

	var (
		handler *paymentPkg.WebhookHandler
		service *mockWebhookService
		logger  *slog.Logger
	)

	sign := func(body string) string {
		mac := hmac.New(sha512.New, []byte(secret))
		mac.Write([]byte(body))
		return hex.EncodeToString(mac.Sum(nil))
	}

	deliver := func(body, signature string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/webhooks/paystack", strings.NewReader(body))
		if signature != "" {
			req.Header.Set(paymentPkg.SignatureHeader, signature)
		}
		rec := httptest.NewRecorder()
		handler.HandlePaystackWebhook(rec, req)
		return rec
	}

	BeforeEach(func() {
		service = &mockWebhookService{}
		logger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		handler = paymentPkg.NewWebhookHandler(transport.NewBaseHandler(logger), service, secret, logger)
	})

	Describe("signature verification", func() {
		It("should reject a delivery with no signature header", func() {
			rec := deliver(`{"event":"charge.success","data":{}}`, "")

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(service.chargeEvents).To(BeEmpty())
		})

		It("should reject a delivery signed with the wrong key", func() {
			body := `{"event":"charge.success","data":{"reference":"dc_abc_1"}}`
			mac := hmac.New(sha512.New, []byte("some-other-secret"))
			mac.Write([]byte(body))

			rec := deliver(body, hex.EncodeToString(mac.Sum(nil)))

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(service.chargeEvents).To(BeEmpty())
		})

		It("should reject a body mutated after signing", func() {
			body := `{"event":"charge.success","data":{"reference":"dc_abc_1","amount":500000}}`
			signature := sign(body)
			tampered := strings.Replace(body, "500000", "1", 1)

			rec := deliver(tampered, signature)

			Expect(rec.Code).To(Equal(http.StatusUnauthorized))
			Expect(service.chargeEvents).To(BeEmpty())
		})
	})

	Describe("charge.success", func() {
		It("should decode the payload and pass it to the service", func() {
			body := `{"event":"charge.success","data":{"reference":"dc_sess1_1714","amount":500000,"status":"success","metadata":{"session_id":"sess1","doctor_id":"doc1","patient_id":"pat1"}}}`

			rec := deliver(body, sign(body))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{"received":true}`))
			Expect(service.chargeEvents).To(HaveLen(1))

			ev := service.chargeEvents[0]
			Expect(ev.Reference).To(Equal("dc_sess1_1714"))
			Expect(ev.AmountKobo).To(Equal(int64(500000)))
			Expect(ev.Metadata.SessionID).To(Equal("sess1"))
			Expect(ev.Metadata.DoctorID).To(Equal("doc1"))
			Expect(ev.Metadata.PatientID).To(Equal("pat1"))
		})

		It("should still acknowledge with 200 when the service fails", func() {
			service.chargeError = errors.New("database down")
			body := `{"event":"charge.success","data":{"reference":"dc_sess1_1714","metadata":{"session_id":"sess1"}}}`

			rec := deliver(body, sign(body))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{"received":true}`))
		})
	})

	Describe("subscription events", func() {
		It("should dispatch subscription.create", func() {
			body := `{"event":"subscription.create","data":{"subscription_code":"SUB_1","amount":1500000,"plan":{"plan_code":"PLN_1"},"metadata":{"doctor_id":"doc1","patient_id":"pat1"}}}`

			rec := deliver(body, sign(body))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(service.createEvents).To(HaveLen(1))
			Expect(service.createEvents[0].SubscriptionCode).To(Equal("SUB_1"))
			Expect(service.createEvents[0].Plan.PlanCode).To(Equal("PLN_1"))
		})

		It("should dispatch subscription.disable", func() {
			body := `{"event":"subscription.disable","data":{"subscription_code":"SUB_1"}}`

			rec := deliver(body, sign(body))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(service.disableEvents).To(HaveLen(1))
			Expect(service.disableEvents[0].SubscriptionCode).To(Equal("SUB_1"))
		})
	})

	Describe("malformed and unknown events", func() {
		It("should return 400 for a body that is not JSON", func() {
			body := `this is not json`

			rec := deliver(body, sign(body))

			Expect(rec.Code).To(Equal(http.StatusBadRequest))
		})

		It("should acknowledge unknown event names without dispatching", func() {
			body := `{"event":"invoice.update","data":{"reference":"x"}}`

			rec := deliver(body, sign(body))

			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(service.chargeEvents).To(BeEmpty())
			Expect(service.createEvents).To(BeEmpty())
			Expect(service.disableEvents).To(BeEmpty())
		})
	})
})
