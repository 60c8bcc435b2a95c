package paystack

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/google/uuid"
)

// Client wraps the handful of Paystack API operations the platform consumes.
// Every amount crossing this boundary is kobo (NGN * 100) as an int64.
type Client struct {
	baseURL   string
	secretKey string
	timeout   time.Duration
	client    *http.Client
	logger    *slog.Logger
}

type Config struct {
	BaseURL   string
	SecretKey string
	Timeout   time.Duration
}

func NewClient(cfg Config, logger *slog.Logger) *Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &Client{
		baseURL:   cfg.BaseURL,
		secretKey: cfg.SecretKey,
		timeout:   timeout,
		client:    &http.Client{Timeout: timeout},
		logger:    logger,
	}
}

// SecretKey exposes the shared secret for webhook signature verification.
// Paystack signs deliveries with the same key used for API auth.
func (c *Client) SecretKey() string { return c.secretKey }

type InitializeTransactionRequest struct {
	Email             string                 `json:"email"`
	AmountKobo        int64                  `json:"amount"`
	Reference         string                 `json:"reference"`
	Metadata          map[string]interface{} `json:"metadata,omitempty"`
	Subaccount        string                 `json:"subaccount,omitempty"`
	TransactionCharge int64                  `json:"transaction_charge,omitempty"`
	Bearer            string                 `json:"bearer,omitempty"`
}

type InitializeTransactionResponse struct {
	AuthorizationURL string `json:"authorization_url"`
	AccessCode       string `json:"access_code"`
	Reference        string `json:"reference"`
}

type TransactionStatus struct {
	Reference  string `json:"reference"`
	Status     string `json:"status"`
	AmountKobo int64  `json:"amount"`
	PaidAt     string `json:"paid_at"`
	Channel    string `json:"channel"`
}

type ResolvedAccount struct {
	AccountNumber string `json:"account_number"`
	AccountName   string `json:"account_name"`
}

type Subaccount struct {
	SubaccountCode   string  `json:"subaccount_code"`
	BusinessName     string  `json:"business_name"`
	PercentageCharge float64 `json:"percentage_charge"`
}

type Bank struct {
	Name string `json:"name"`
	Code string `json:"code"`
	Slug string `json:"slug"`
}

// envelope is Paystack's uniform response wrapper. Status false means the
// operation failed even when HTTP says 200.
type envelope struct {
	Status  bool            `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// InitializeTransaction creates a checkout URL for the patient to complete
// payment. When a subaccount is set, the platform's cut rides along as
// transaction_charge and the subaccount bears the remainder.
func (c *Client) InitializeTransaction(ctx context.Context, req InitializeTransactionRequest) (*InitializeTransactionResponse, error) {
	if req.Subaccount != "" {
		req.Bearer = "subaccount"
	}

	var out InitializeTransactionResponse
	if err := c.do(ctx, http.MethodPost, "/transaction/initialize", req, &out); err != nil {
		return nil, err
	}

	c.logger.Info("paystack transaction initialized",
		"reference", req.Reference,
		"amount_kobo", req.AmountKobo,
		"subaccount", req.Subaccount)

	return &out, nil
}

// VerifyTransaction fetches the settled state of a transaction by reference.
func (c *Client) VerifyTransaction(ctx context.Context, reference string) (*TransactionStatus, error) {
	var out TransactionStatus
	path := "/transaction/verify/" + url.PathEscape(reference)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// ResolveAccountNumber verifies a bank account before subaccount creation.
func (c *Client) ResolveAccountNumber(ctx context.Context, accountNumber, bankCode string) (*ResolvedAccount, error) {
	var out ResolvedAccount
	path := fmt.Sprintf("/bank/resolve?account_number=%s&bank_code=%s",
		url.QueryEscape(accountNumber), url.QueryEscape(bankCode))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

type CreateSubaccountRequest struct {
	BusinessName     string  `json:"business_name"`
	SettlementBank   string  `json:"settlement_bank"`
	AccountNumber    string  `json:"account_number"`
	PercentageCharge float64 `json:"percentage_charge"`
}

// CreateSubaccount registers a doctor's payout account with the gateway.
func (c *Client) CreateSubaccount(ctx context.Context, req CreateSubaccountRequest) (*Subaccount, error) {
	var out Subaccount
	if err := c.do(ctx, http.MethodPost, "/subaccount", req, &out); err != nil {
		return nil, err
	}

	c.logger.Info("paystack subaccount created",
		"subaccount_code", out.SubaccountCode,
		"business_name", req.BusinessName)

	return &out, nil
}

// ListBanks returns the banks supported for settlement in the given country.
func (c *Client) ListBanks(ctx context.Context, country string) ([]Bank, error) {
	if country == "" {
		country = "nigeria"
	}
	var out []Bank
	path := fmt.Sprintf("/bank?country=%s&perPage=100", url.QueryEscape(country))
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		reqBody = bytes.NewBuffer(data)
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Authorization", "Bearer "+c.secretKey)
	if body != nil {
		httpReq.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.client.Do(httpReq)
	if err != nil {
		c.logger.Error("paystack request failed", "method", method, "path", path, "error", err)
		return fmt.Errorf("paystack request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read paystack response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.logger.Error("paystack returned error",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"response", string(respBody))
		return fmt.Errorf("paystack error: status %d: %s", resp.StatusCode, string(respBody))
	}

	var env envelope
	if err := json.Unmarshal(respBody, &env); err != nil {
		return fmt.Errorf("failed to decode paystack response: %w", err)
	}

	if !env.Status {
		c.logger.Error("paystack operation rejected", "method", method, "path", path, "message", env.Message)
		return fmt.Errorf("paystack rejected request: %s", env.Message)
	}

	if out != nil && len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, out); err != nil {
			return fmt.Errorf("failed to decode paystack data: %w", err)
		}
	}

	return nil
}

// GenerateReference produces a unique, traceable transaction reference.
func GenerateReference(prefix string) string {
	if prefix == "" {
		prefix = "dc"
	}
	return fmt.Sprintf("%s_%s_%d", prefix, uuid.NewString()[:8], time.Now().UnixMilli())
}

// SessionReference builds the reference tied to a chat session, which the
// webhook later uses to correlate the charge back to the payment row.
func SessionReference(sessionID string) string {
	return fmt.Sprintf("dc_%s_%d", sessionID, time.Now().UnixMilli())
}
