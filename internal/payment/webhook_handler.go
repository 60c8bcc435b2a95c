package payment

import (
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"io"
	"log/slog"
	"net/http"

	"github.com/docconnect/docconnect/internal/transport"
)

// SignatureHeader carries Paystack's HMAC-SHA512 digest of the raw body.
const SignatureHeader = "x-paystack-signature"

type WebhookServiceAPI interface {
	ApplyChargeSuccess(ctx context.Context, ev ChargeSuccessEvent) error
	RecordSubscription(ctx context.Context, ev SubscriptionCreateEvent) error
	CancelSubscription(ctx context.Context, ev SubscriptionDisableEvent) error
}

// WebhookHandler ingests gateway deliveries. The signature check is the sole
// trust boundary: past it, the event is treated as genuine. Mutation failures
// are logged and masked behind a 200 so the gateway does not redeliver an
// event we have already partially applied.
type WebhookHandler struct {
	*transport.BaseHandler
	service WebhookServiceAPI
	secret  []byte
	logger  *slog.Logger
}

func NewWebhookHandler(baseHandler *transport.BaseHandler, service WebhookServiceAPI, secret string, logger *slog.Logger) *WebhookHandler {
	return &WebhookHandler{
		BaseHandler: baseHandler,
		service:     service,
		secret:      []byte(secret),
		logger:      logger,
	}
}

func (h *WebhookHandler) HandlePaystackWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		h.logger.Error("failed to read webhook body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	if !h.verifySignature(body, r.Header.Get(SignatureHeader)) {
		h.logger.Error("webhook signature mismatch, possible spoofed request",
			"remote_addr", r.RemoteAddr)
		h.WriteError(w, http.StatusUnauthorized, "invalid signature")
		return
	}

	event, err := h.parseEvent(body)
	if err != nil {
		h.logger.Error("failed to parse webhook event", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	h.dispatch(r.Context(), event)

	// Always 200 once authenticated and parsed: anything else makes the
	// gateway redeliver, and our mutations are not safe to re-run blindly.
	h.WriteJSON(w, http.StatusOK, map[string]bool{"received": true})
}

func (h *WebhookHandler) verifySignature(body []byte, signature string) bool {
	if signature == "" {
		return false
	}

	mac := hmac.New(sha512.New, h.secret)
	mac.Write(body)
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(signature))
}

func (h *WebhookHandler) parseEvent(body []byte) (WebhookEvent, error) {
	return DecodeWebhookEvent(body)
}

func (h *WebhookHandler) dispatch(ctx context.Context, event WebhookEvent) {
	switch {
	case event.ChargeSuccess != nil:
		if err := h.service.ApplyChargeSuccess(ctx, *event.ChargeSuccess); err != nil {
			h.logger.Error("failed to apply charge.success",
				"error", err,
				"reference", event.ChargeSuccess.Reference)
		}
	case event.SubscriptionCreate != nil:
		if err := h.service.RecordSubscription(ctx, *event.SubscriptionCreate); err != nil {
			h.logger.Error("failed to record subscription",
				"error", err,
				"subscription_code", event.SubscriptionCreate.SubscriptionCode)
		}
	case event.SubscriptionDisable != nil:
		if err := h.service.CancelSubscription(ctx, *event.SubscriptionDisable); err != nil {
			h.logger.Error("failed to cancel subscription",
				"error", err,
				"subscription_code", event.SubscriptionDisable.SubscriptionCode)
		}
	default:
		h.logger.Info("ignoring unrecognized webhook event", "event", event.Kind)
	}
}
