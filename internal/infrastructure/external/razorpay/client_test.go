package razorpay

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/qshala/reimbursement-api/internal/apperrors"
	"github.com/qshala/reimbursement-api/internal/application/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestClient_CreateContact(t *testing.T) {
	logger := zap.NewNop()

	t.Run("posts basic-authenticated JSON and returns the id", func(t *testing.T) {
		var gotPath, gotUser, gotPass string
		var gotBody map[string]interface{}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			gotUser, gotPass, _ = r.BasicAuth()
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "cont_123"})
		}))
		defer server.Close()

		client := NewClient(server.URL, "key", "secret", logger)
		id, err := client.CreateContact(context.Background(), port.ContactParams{
			Name: "Qshala Test Employee",
			Type: "employee",
		})

		require.NoError(t, err)
		assert.Equal(t, "cont_123", id)
		assert.Equal(t, "/v1/contacts", gotPath)
		assert.Equal(t, "key", gotUser)
		assert.Equal(t, "secret", gotPass)
		assert.Equal(t, "Qshala Test Employee", gotBody["name"])
		assert.Equal(t, "employee", gotBody["type"])
	})

	t.Run("surfaces the embedded error descriptor", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			json.NewEncoder(w).Encode(map[string]interface{}{
				"error": map[string]interface{}{"description": "Authentication failed"},
			})
		}))
		defer server.Close()

		client := NewClient(server.URL, "key", "secret", logger)
		_, err := client.CreateContact(context.Background(), port.ContactParams{})

		require.Error(t, err)
		var upstreamErr *apperrors.UpstreamError
		require.ErrorAs(t, err, &upstreamErr)
		assert.Contains(t, err.Error(), "Authentication failed")
	})

	t.Run("fails on a response without id", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			json.NewEncoder(w).Encode(map[string]interface{}{"entity": "contact"})
		}))
		defer server.Close()

		client := NewClient(server.URL, "key", "secret", logger)
		_, err := client.CreateContact(context.Background(), port.ContactParams{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "missing id")
	})
}

func TestClient_CreateFundAccount(t *testing.T) {
	logger := zap.NewNop()

	t.Run("sends nested bank account details", func(t *testing.T) {
		var gotBody map[string]interface{}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/fund_accounts", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "fa_456"})
		}))
		defer server.Close()

		client := NewClient(server.URL, "key", "secret", logger)
		id, err := client.CreateFundAccount(context.Background(), port.FundAccountParams{
			ContactID:     "cont_123",
			HolderName:    "Test Account Holder",
			IFSC:          "UTIB0000000",
			AccountNumber: "2323231234567890",
		})

		require.NoError(t, err)
		assert.Equal(t, "fa_456", id)
		assert.Equal(t, "cont_123", gotBody["contact_id"])
		assert.Equal(t, "bank_account", gotBody["account_type"])

		bank, ok := gotBody["bank_account"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "Test Account Holder", bank["name"])
		assert.Equal(t, "UTIB0000000", bank["ifsc"])
		assert.Equal(t, "2323231234567890", bank["account_number"])
	})
}

func TestClient_CreatePayout(t *testing.T) {
	logger := zap.NewNop()

	t.Run("sends the full payout payload and returns the body", func(t *testing.T) {
		var gotBody map[string]interface{}

		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/v1/payouts", r.URL.Path)
			require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
			json.NewEncoder(w).Encode(map[string]interface{}{"id": "pout_789", "status": "queued"})
		}))
		defer server.Close()

		client := NewClient(server.URL, "key", "secret", logger)
		details, err := client.CreatePayout(context.Background(), port.PayoutParams{
			SourceAccountNumber: "7878780080857996",
			FundAccountID:       "fa_456",
			AmountMinorUnits:    4999,
			Currency:            "INR",
			Mode:                "IMPS",
			Purpose:             "payout",
			QueueIfLowBalance:   true,
			Notes: map[string]string{
				"reimbursement_type": "Food",
				"description":        "Lunch",
				"invoice_url":        "u",
			},
		})

		require.NoError(t, err)
		assert.Equal(t, "pout_789", details["id"])
		assert.Equal(t, "7878780080857996", gotBody["account_number"])
		assert.Equal(t, "fa_456", gotBody["fund_account_id"])
		assert.Equal(t, float64(4999), gotBody["amount"])
		assert.Equal(t, "INR", gotBody["currency"])
		assert.Equal(t, "IMPS", gotBody["mode"])
		assert.Equal(t, "payout", gotBody["purpose"])
		assert.Equal(t, true, gotBody["queue_if_low_balance"])

		notes, ok := gotBody["notes"].(map[string]interface{})
		require.True(t, ok)
		assert.Equal(t, "u", notes["invoice_url"])
	})

	t.Run("fails on unexpected status without error body", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]interface{}{})
		}))
		defer server.Close()

		client := NewClient(server.URL, "key", "secret", logger)
		_, err := client.CreatePayout(context.Background(), port.PayoutParams{})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status 503")
	})
}
