package entity

import "github.com/shopspring/decimal"

// Amounts serialize as bare JSON numbers, matching the API contract.
func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// ExtractedInvoice is the structured result of running an uploaded invoice
// image through AI field extraction. It lives only for the duration of a
// request; the caller resubmits it (possibly edited) to create a payout.
type ExtractedInvoice struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	InvoiceURL  string          `json:"invoice_url"`
}

// ReimbursementRequest is the payload accepted by the create-reimbursement
// endpoint. Amount is a decimal so that both `"49.99"` and `49.99` decode.
type ReimbursementRequest struct {
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	InvoiceURL  string          `json:"invoice_url"`
}

// PayoutReceipt wraps the gateway's final payout response. The gateway is the
// system of record; nothing here is persisted locally.
type PayoutReceipt struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Details map[string]interface{} `json:"details"`
}
