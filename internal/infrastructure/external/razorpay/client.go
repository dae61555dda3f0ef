package razorpay

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/qshala/reimbursement-api/internal/apperrors"
	"github.com/qshala/reimbursement-api/internal/application/port"
	"go.uber.org/zap"
)

// Client implements port.PayoutGateway against the Razorpay X REST API.
// Every call is a basic-authenticated JSON POST. Responses are decoded even
// on non-2xx status because the API reports failures through an embedded
// error descriptor; when one is present its description aborts the call.
type Client struct {
	httpClient *http.Client
	baseURL    string
	keyID      string
	keySecret  string
	logger     *zap.Logger
}

// NewClient creates a gateway client. baseURL is configurable so tests can
// point it at a stub server.
func NewClient(baseURL, keyID, keySecret string, logger *zap.Logger) *Client {
	return &Client{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(baseURL, "/"),
		keyID:      keyID,
		keySecret:  keySecret,
		logger:     logger,
	}
}

// CreateContact creates the payee entity and returns its identifier.
func (c *Client) CreateContact(ctx context.Context, params port.ContactParams) (string, error) {
	payload := map[string]interface{}{
		"name": params.Name,
		"type": params.Type,
	}

	result, err := c.post(ctx, "/v1/contacts", payload)
	if err != nil {
		return "", fmt.Errorf("contact creation failed: %w", err)
	}
	return extractID(result, "contact")
}

// CreateFundAccount links a bank account to an existing contact and returns
// the fund account identifier.
func (c *Client) CreateFundAccount(ctx context.Context, params port.FundAccountParams) (string, error) {
	payload := map[string]interface{}{
		"contact_id":   params.ContactID,
		"account_type": "bank_account",
		"bank_account": map[string]interface{}{
			"name":           params.HolderName,
			"ifsc":           params.IFSC,
			"account_number": params.AccountNumber,
		},
	}

	result, err := c.post(ctx, "/v1/fund_accounts", payload)
	if err != nil {
		return "", fmt.Errorf("fund account creation failed: %w", err)
	}
	return extractID(result, "fund account")
}

// CreatePayout creates the disbursement and returns the gateway's full
// response body for the caller's audit trail.
func (c *Client) CreatePayout(ctx context.Context, params port.PayoutParams) (map[string]interface{}, error) {
	payload := map[string]interface{}{
		"account_number":       params.SourceAccountNumber,
		"fund_account_id":      params.FundAccountID,
		"amount":               params.AmountMinorUnits,
		"currency":             params.Currency,
		"mode":                 params.Mode,
		"purpose":              params.Purpose,
		"queue_if_low_balance": params.QueueIfLowBalance,
		"notes":                params.Notes,
	}

	result, err := c.post(ctx, "/v1/payouts", payload)
	if err != nil {
		return nil, fmt.Errorf("payout creation failed: %w", err)
	}
	return result, nil
}

// post issues one authenticated JSON POST and decodes the response body.
func (c *Client) post(ctx context.Context, path string, payload map[string]interface{}) (map[string]interface{}, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.SetBasicAuth(c.keyID, c.keySecret)
	req.Header.Set("Content-Type", "application/json")

	c.logger.Debug("Calling payout gateway", zap.String("path", path))

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, apperrors.NewUpstream("razorpay", "request failed", err)
	}
	defer resp.Body.Close()

	var result map[string]interface{}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, apperrors.NewUpstream("razorpay", "failed to decode response", err)
	}

	if desc := errorDescription(result); desc != "" {
		c.logger.Warn("Gateway returned error descriptor",
			zap.String("path", path),
			zap.String("description", desc))
		return nil, apperrors.NewUpstream("razorpay", desc, nil)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, apperrors.NewUpstream("razorpay",
			fmt.Sprintf("unexpected status %d", resp.StatusCode), nil)
	}

	return result, nil
}

// errorDescription pulls the description out of an embedded error object,
// if any.
func errorDescription(body map[string]interface{}) string {
	errObj, ok := body["error"].(map[string]interface{})
	if !ok {
		return ""
	}
	desc, _ := errObj["description"].(string)
	return desc
}

// extractID reads the created resource's id field.
func extractID(body map[string]interface{}, resource string) (string, error) {
	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", apperrors.NewUpstream("razorpay",
			fmt.Sprintf("%s response missing id", resource), nil)
	}
	return id, nil
}
